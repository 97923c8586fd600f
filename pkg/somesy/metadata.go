package somesy

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/multierr"
)

var (
	urlPattern = regexp.MustCompile(`^https?://\S+$`)
	rorPattern = regexp.MustCompile(`^https://ror\.org/0[0-9a-hj-km-np-tv-z]{6}[0-9]{2}$`)

	// licensePattern accepts SPDX license expression tokens (the full
	// expression grammar is not enforced, only its lexical shape).
	licensePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.+-]*( (AND|OR|WITH) [A-Za-z0-9][A-Za-z0-9.+-]*)*$`)
)

// ProjectMetadata is the canonical project description read from the
// somesy input file and pushed into every target file.
type ProjectMetadata struct {
	Name        string
	Description string
	Version     string
	License     string

	// People and Entities together form the contributor pool. At least
	// one member of the pool must carry the author flag.
	People   []*Person
	Entities []*Entity

	Keywords   []string
	Homepage   string
	Repository string
	// Documentation is an optional URL to hosted documentation.
	Documentation string
}

// Pool returns all contributors (people first, then entities) in their
// declared order.
func (m *ProjectMetadata) Pool() []Contributor {
	out := make([]Contributor, 0, len(m.People)+len(m.Entities))
	for _, p := range m.People {
		out = append(out, p)
	}
	for _, e := range m.Entities {
		out = append(out, e)
	}
	return out
}

// Authors returns the contributors flagged as authors.
func (m *ProjectMetadata) Authors() []Contributor {
	var out []Contributor
	for _, c := range m.Pool() {
		if c.IsAuthor() {
			out = append(out, c)
		}
	}
	return out
}

// PublicationAuthors returns the contributors to list as authors of an
// academic citation. When nobody carries an explicit
// publication_author flag this is the same set as Authors.
func (m *ProjectMetadata) PublicationAuthors() []Contributor {
	var out []Contributor
	for _, c := range m.Pool() {
		if c.IsPublicationAuthor() {
			out = append(out, c)
		}
	}
	return out
}

// Maintainers returns the contributors flagged as maintainers.
func (m *ProjectMetadata) Maintainers() []Contributor {
	var out []Contributor
	for _, c := range m.Pool() {
		if c.IsMaintainer() {
			out = append(out, c)
		}
	}
	return out
}

// Contributors returns the pool members that are not authors.
func (m *ProjectMetadata) Contributors() []Contributor {
	var out []Contributor
	for _, c := range m.Pool() {
		if !c.IsAuthor() {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks the canonical metadata against its invariants. All
// violations are collected and reported together, wrapped in
// ErrInvalidMetadata.
func (m *ProjectMetadata) Validate() error {
	var errs error
	add := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}

	if m.Name == "" {
		add("project name is required")
	}
	if m.Description == "" {
		add("project description is required")
	}
	if m.Version != "" {
		if _, err := semver.NewVersion(m.Version); err != nil {
			add("invalid project version %q: %v", m.Version, err)
		}
	}
	if m.License == "" {
		add("project license is required")
	} else if !licensePattern.MatchString(m.License) {
		add("license %q is not an SPDX license expression", m.License)
	}
	for _, field := range []struct{ name, url string }{
		{"homepage", m.Homepage},
		{"repository", m.Repository},
		{"documentation", m.Documentation},
	} {
		if field.url != "" && !urlPattern.MatchString(field.url) {
			add("invalid %s URL %q", field.name, field.url)
		}
	}

	for _, p := range m.People {
		if err := p.Validate(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	for _, e := range m.Entities {
		if err := e.Validate(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	pool := m.Pool()
	if len(m.Authors()) == 0 {
		add("at least one contributor must have author=true")
	}
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			if SameContributor(pool[i], pool[j]) {
				add("contributors %q and %q look like the same party, merge their entries",
					pool[i].FullName(), pool[j].FullName())
			}
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMetadata, errs)
	}
	return nil
}
