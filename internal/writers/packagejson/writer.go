// Package packagejson synchronizes project metadata into NPM
// package.json files.
package packagejson

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

var mapping = somesy.FieldMapping{
	"authors":       somesy.Key("author"),
	"contributors":  somesy.Key("contributors"),
	"documentation": somesy.Ignore(),
}

// Writer syncs metadata into a package.json file.
type Writer struct {
	*somesy.BaseWriter
}

// New opens path as a package.json target. The file must exist.
func New(path string, log somesy.Logger) (*Writer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", somesy.ErrTargetNotFound, path)
	}
	doc, err := document.LoadJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
	}
	// npm requires both fields of every manifest
	for _, key := range []string{"name", "version"} {
		v, ok := doc.Get([]string{key})
		if !ok {
			return nil, fmt.Errorf("%w: %s: missing %s", somesy.ErrValidationFailed, path, key)
		}
		if _, isStr := v.(string); !isStr {
			return nil, fmt.Errorf("%w: %s: %s must be a string", somesy.ErrValidationFailed, path, key)
		}
	}
	return &Writer{somesy.NewBaseWriter(path, doc, mapping, binding{}, log)}, nil
}

// Sync implements somesy.Writer. package.json holds a single author,
// so only the first canonical author is synced there; the remaining
// pool members go to the contributors list. The repository field is
// written in its object form.
func (w *Writer) Sync(meta *somesy.ProjectMetadata) error {
	w.SetProperty("name", meta.Name)
	w.SetProperty("description", meta.Description)
	w.SetProperty("version", meta.Version)
	w.SetProperty("keywords", meta.Keywords)
	w.syncAuthor(meta)
	w.SyncMaintainers(meta)
	w.SyncPersonList("contributors", meta.Contributors())
	w.SetProperty("license", meta.License)
	w.SetProperty("homepage", meta.Homepage)
	if meta.Repository != "" {
		repo := document.NewMap()
		repo.Set("type", "git")
		repo.Set("url", meta.Repository)
		w.SetProperty("repository", repo)
	}
	return nil
}

// syncAuthor merges the first canonical author into the single-person
// author field.
func (w *Writer) syncAuthor(meta *somesy.ProjectMetadata) {
	authors := meta.Authors()
	if len(authors) == 0 {
		return
	}
	path, ok := w.Key("authors")
	if !ok {
		return
	}
	var existing []interface{}
	if v, found := w.Document().Get(path); found {
		existing = []interface{}{v}
	}
	merged := somesy.MergeContributors(w.ParsePeople(existing), authors[:1], w.Log())
	if len(merged) > 0 {
		w.Document().Set(path, binding{}.FromContributor(merged[0]))
	}
}

// binding renders contributors as package.json person objects with
// name, email and url keys, and parses both the object form and the
// `Name <email> (url)` string form.
type binding struct{}

func (binding) FromContributor(c somesy.Contributor) interface{} {
	m := document.NewMap()
	m.Set("name", c.FullName())
	if c.ContributorEmail() != "" {
		m.Set("email", c.ContributorEmail())
	}
	if id := c.ContributorID(); strings.HasPrefix(id, "http") {
		m.Set("url", id)
	}
	return m
}

var personString = regexp.MustCompile(`^\s*([^<(]+?)\s*(?:<([^>]+)>)?\s*(?:\(([^)]+)\))?\s*$`)

func (binding) ToContributor(v interface{}) (somesy.Contributor, error) {
	switch t := v.(type) {
	case *document.Map:
		name := document.GetString(t, "name")
		if name == "" {
			return nil, fmt.Errorf("person object has no name")
		}
		p := personFromParts(name, document.GetString(t, "email"), document.GetString(t, "url"))
		p.SetKeyOrder(document.MapKeys(t))
		return p, nil
	case string:
		m := personString.FindStringSubmatch(t)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			return nil, fmt.Errorf("not a person string: %q", t)
		}
		return personFromParts(m[1], m[2], m[3]), nil
	}
	return nil, fmt.Errorf("expected a person object or string, got %T", v)
}

func personFromParts(name, email, url string) *somesy.Person {
	names := strings.Fields(strings.TrimSpace(name))
	p := &somesy.Person{Email: strings.TrimSpace(email)}
	if strings.HasPrefix(url, "https://orcid.org/") {
		p.Orcid = url
	}
	if len(names) > 0 {
		p.GivenNames = strings.Join(names[:len(names)-1], " ")
		p.FamilyNames = names[len(names)-1]
	}
	return p
}
