package somesy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

// emailPattern matches the e-mail shape accepted in canonical metadata.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S{2,}$`)

// Contributor is a canonical contributor record: a Person or an Entity
// (organization). Writers convert between Contributor values and their
// own native person representation.
type Contributor interface {
	// FullName returns the display name: joined name parts for a
	// person, the organization name verbatim for an entity.
	FullName() string

	// ContributorID returns the stable external identifier (ORCID URL
	// for persons, ROR ID or website URL for entities), or "".
	ContributorID() string

	// ContributorEmail returns the record's e-mail address, or "".
	ContributorEmail() string

	// Role flags partitioning the contributor pool.
	IsAuthor() bool
	IsPublicationAuthor() bool
	IsMaintainer() bool

	// KeyOrder returns the preferred native field serialization order
	// (usually copied from an existing file), and SetKeyOrder replaces
	// it. The order has no effect on identity or merging.
	KeyOrder() []string
	SetKeyOrder(keys []string)

	// Clone returns a deep copy, including the key-order annotation.
	Clone() Contributor

	// updateFrom applies a partial update: every field carrying a
	// value in incoming overwrites the corresponding field of a copy
	// of the receiver; fields absent in incoming are kept. Reports
	// whether anything changed. Position and key order are preserved
	// by the caller.
	updateFrom(incoming Contributor) (Contributor, bool)
}

// SameContributor reports whether two contributor records denote the
// same real-world party.
//
// The heuristic checks, in priority order: equal stable identifiers if
// both records have one; equal e-mail addresses if both records have
// one; and finally equality of the full name. The relation is total and
// symmetric but not transitive across a list (two records can each
// match a third by different criteria), so callers must not assume
// transitivity.
func SameContributor(a, b Contributor) bool {
	if a.ContributorID() != "" && b.ContributorID() != "" {
		// a real identifier on both sides is decisive
		return a.ContributorID() == b.ContributorID()
	}

	if a.ContributorEmail() != "" && b.ContributorEmail() != "" {
		if a.ContributorEmail() == b.ContributorEmail() {
			// an email address belongs to exactly one party
			return true
		}
		// distinct addresses are not decisive, a person often has
		// multiple email addresses -> fall through to the name
	}

	return a.FullName() == b.FullName()
}

// Person is canonical metadata about a person in the context of a
// software project. The field set is based on CITATION.cff 1.2,
// extended with somesy-specific role annotations.
type Person struct {
	// Orcid is the person's ORCID URL (not required, but suggested).
	Orcid string
	// Email is the person's e-mail address.
	Email string
	// FamilyNames and GivenNames are the person's name parts.
	FamilyNames string
	GivenNames  string
	// NameParticle is e.g. a nobiliary particle ("von").
	NameParticle string
	// NameSuffix is e.g. "Jr." or "III".
	NameSuffix string
	Alias      string

	Affiliation string
	Address     string
	City        string
	Country     string
	Fax         string
	PostCode    string
	Region      string
	Tel         string

	// Author marks the person as a significant contributor.
	Author bool
	// PublicationAuthor marks the person for academic citation author
	// lists. Nil means unset; Author=true implies true.
	PublicationAuthor *bool
	// Maintainer marks the person as a project contact.
	Maintainer bool

	// Contribution describes how the person contributed.
	Contribution      string
	ContributionTypes []string
	ContributionBegin string
	ContributionEnd   string

	keyOrder []string
}

// FullName joins given names, name particle, family names and name
// suffix with single spaces.
func (p *Person) FullName() string {
	names := make([]string, 0, 4)
	if p.GivenNames != "" {
		names = append(names, p.GivenNames)
	}
	if p.NameParticle != "" {
		names = append(names, p.NameParticle)
	}
	if p.FamilyNames != "" {
		names = append(names, p.FamilyNames)
	}
	if p.NameSuffix != "" {
		names = append(names, p.NameSuffix)
	}
	return strings.Join(names, " ")
}

// ContributorID implements Contributor.
func (p *Person) ContributorID() string { return p.Orcid }

// ContributorEmail implements Contributor.
func (p *Person) ContributorEmail() string { return p.Email }

// IsAuthor implements Contributor.
func (p *Person) IsAuthor() bool { return p.Author }

// IsPublicationAuthor implements Contributor. Authors are always
// publication authors.
func (p *Person) IsPublicationAuthor() bool {
	if p.Author {
		return true
	}
	return p.PublicationAuthor != nil && *p.PublicationAuthor
}

// IsMaintainer implements Contributor.
func (p *Person) IsMaintainer() bool { return p.Maintainer }

// KeyOrder implements Contributor.
func (p *Person) KeyOrder() []string { return p.keyOrder }

// SetKeyOrder implements Contributor.
func (p *Person) SetKeyOrder(keys []string) {
	p.keyOrder = append([]string(nil), keys...)
}

// Clone implements Contributor.
func (p *Person) Clone() Contributor {
	cp := *p
	cp.keyOrder = append([]string(nil), p.keyOrder...)
	cp.ContributionTypes = append([]string(nil), p.ContributionTypes...)
	if p.PublicationAuthor != nil {
		v := *p.PublicationAuthor
		cp.PublicationAuthor = &v
	}
	return &cp
}

// NameEmailString renders the person in the `Full Name <x@y.z>` form
// used by poetry, julia, rust, fpm and mkdocs.
func (p *Person) NameEmailString() string {
	if p.Email == "" {
		return p.FullName()
	}
	return fmt.Sprintf("%s <%s>", p.FullName(), p.Email)
}

var nameEmailPattern = regexp.MustCompile(`^\s*([^<]+)<([^>]+)>`)

// PersonFromNameEmail parses a `Full Name <x@y.z>` string into a
// Person. For a name "A B C", "A B" become the given names and "C" the
// family name; this split does not matter for identity, which compares
// the full name.
func PersonFromNameEmail(s string) (*Person, error) {
	m := nameEmailPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("not a name/email string: %q", s)
	}
	names := strings.Fields(strings.TrimSpace(m[1]))
	if len(names) == 0 {
		return nil, fmt.Errorf("empty name in name/email string: %q", s)
	}
	return &Person{
		GivenNames:  strings.Join(names[:len(names)-1], " "),
		FamilyNames: names[len(names)-1],
		Email:       strings.TrimSpace(m[2]),
	}, nil
}

// Validate checks the fields required in canonical metadata input.
func (p *Person) Validate() error {
	if p.GivenNames == "" {
		return fmt.Errorf("person given-names is required")
	}
	if p.FamilyNames == "" {
		return fmt.Errorf("person family-names is required")
	}
	if p.Email == "" {
		return fmt.Errorf("person email is required (%s)", p.FullName())
	}
	if !emailPattern.MatchString(p.Email) {
		return fmt.Errorf("invalid email address %q (%s)", p.Email, p.FullName())
	}
	if p.Author && p.PublicationAuthor != nil && !*p.PublicationAuthor {
		return fmt.Errorf("combining author=true and publication_author=false is invalid (%s)", p.FullName())
	}
	return nil
}

// updateFrom implements Contributor.
func (p *Person) updateFrom(incoming Contributor) (Contributor, bool) {
	in, ok := incoming.(*Person)
	if !ok {
		// a cross-type match (person vs. entity via email or name):
		// replace wholesale, keeping the receiver's key order
		repl := incoming.Clone()
		repl.SetKeyOrder(p.keyOrder)
		return repl, true
	}

	out := p.Clone().(*Person)
	changed := false
	setStr := func(dst *string, v string) {
		if v != "" && *dst != v {
			*dst = v
			changed = true
		}
	}
	setStr(&out.Orcid, in.Orcid)
	setStr(&out.Email, in.Email)
	setStr(&out.FamilyNames, in.FamilyNames)
	setStr(&out.GivenNames, in.GivenNames)
	setStr(&out.NameParticle, in.NameParticle)
	setStr(&out.NameSuffix, in.NameSuffix)
	setStr(&out.Alias, in.Alias)
	setStr(&out.Affiliation, in.Affiliation)
	setStr(&out.Address, in.Address)
	setStr(&out.City, in.City)
	setStr(&out.Country, in.Country)
	setStr(&out.Fax, in.Fax)
	setStr(&out.PostCode, in.PostCode)
	setStr(&out.Region, in.Region)
	setStr(&out.Tel, in.Tel)
	setStr(&out.Contribution, in.Contribution)
	setStr(&out.ContributionBegin, in.ContributionBegin)
	setStr(&out.ContributionEnd, in.ContributionEnd)
	if len(in.ContributionTypes) > 0 && !equalStrings(out.ContributionTypes, in.ContributionTypes) {
		out.ContributionTypes = append([]string(nil), in.ContributionTypes...)
		changed = true
	}
	if in.Author && !out.Author {
		out.Author = true
		changed = true
	}
	if in.Maintainer && !out.Maintainer {
		out.Maintainer = true
		changed = true
	}
	if in.PublicationAuthor != nil &&
		(out.PublicationAuthor == nil || *out.PublicationAuthor != *in.PublicationAuthor) {
		v := *in.PublicationAuthor
		out.PublicationAuthor = &v
		changed = true
	}
	return out, changed
}

// cffFieldOrder is the natural serialization order of person fields in
// their CFF-style mapping form.
var cffFieldOrder = []string{
	"orcid", "email", "family-names", "given-names", "name-particle",
	"name-suffix", "alias", "affiliation", "address", "city", "country",
	"fax", "post-code", "region", "tel",
}

// CFFMap renders the person as a CFF-style mapping (dashed keys,
// role and contribution annotations excluded). Fields listed in the
// key-order annotation come first, in that order; remaining fields
// follow in their natural order.
func (p *Person) CFFMap() *document.Map {
	fields := map[string]string{
		"orcid":         p.Orcid,
		"email":         p.Email,
		"family-names":  p.FamilyNames,
		"given-names":   p.GivenNames,
		"name-particle": p.NameParticle,
		"name-suffix":   p.NameSuffix,
		"alias":         p.Alias,
		"affiliation":   p.Affiliation,
		"address":       p.Address,
		"city":          p.City,
		"country":       p.Country,
		"fax":           p.Fax,
		"post-code":     p.PostCode,
		"region":        p.Region,
		"tel":           p.Tel,
	}
	m := document.NewMap()
	for _, key := range orderedFieldKeys(p.keyOrder, cffFieldOrder) {
		if v, ok := fields[key]; ok && v != "" {
			m.Set(key, v)
		}
	}
	return m
}

// PersonFromMap builds a partial Person from a CFF-style mapping,
// accepting both dashed aliases ("family-names") and underscore field
// names ("family_names"). The mapping's key order is preserved as the
// person's key-order annotation.
func PersonFromMap(m *document.Map) *Person {
	p := &Person{}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		s, _ := pair.Value.(string)
		switch normalizeFieldKey(pair.Key) {
		case "orcid":
			p.Orcid = s
		case "email":
			p.Email = s
		case "family-names":
			p.FamilyNames = s
		case "given-names":
			p.GivenNames = s
		case "name-particle":
			p.NameParticle = s
		case "name-suffix":
			p.NameSuffix = s
		case "alias":
			p.Alias = s
		case "affiliation":
			p.Affiliation = s
		case "address":
			p.Address = s
		case "city":
			p.City = s
		case "country":
			p.Country = s
		case "fax":
			p.Fax = s
		case "post-code":
			p.PostCode = s
		case "region":
			p.Region = s
		case "tel":
			p.Tel = s
		}
	}
	p.SetKeyOrder(document.MapKeys(m))
	return p
}

// orderedFieldKeys merges a preferred key order with the natural order:
// preferred keys first (those actually known), then the remaining
// natural keys.
func orderedFieldKeys(preferred, natural []string) []string {
	known := make(map[string]bool, len(natural))
	for _, k := range natural {
		known[k] = true
	}
	out := make([]string, 0, len(natural))
	seen := make(map[string]bool, len(natural))
	for _, k := range preferred {
		k = normalizeFieldKey(k)
		if known[k] && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	for _, k := range natural {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

func normalizeFieldKey(k string) string {
	return strings.ReplaceAll(k, "_", "-")
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
