package somesy

import (
	"fmt"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

// Entity is canonical metadata about an organization contributing to a
// project, e.g. a research institute funding development.
type Entity struct {
	// Name is the entity's display name.
	Name string
	// Email is a contact address for the entity.
	Email string
	Alias string
	// Address is the entity's postal address (single free-text line).
	Address string
	// Website is the entity's homepage.
	Website string
	// RorID is the entity's Research Organization Registry URL
	// (https://ror.org/...), the preferred stable identifier.
	RorID string
	// DateStart and DateEnd bound the entity's involvement (ISO dates).
	DateStart string
	DateEnd   string

	Author            bool
	PublicationAuthor *bool
	Maintainer        bool

	Contribution      string
	ContributionTypes []string
	ContributionBegin string
	ContributionEnd   string

	keyOrder []string
}

// FullName implements Contributor.
func (e *Entity) FullName() string { return e.Name }

// ContributorID implements Contributor. The ROR ID is preferred; the
// website serves as a fallback identifier.
func (e *Entity) ContributorID() string {
	if e.RorID != "" {
		return e.RorID
	}
	return e.Website
}

// ContributorEmail implements Contributor.
func (e *Entity) ContributorEmail() string { return e.Email }

// IsAuthor implements Contributor.
func (e *Entity) IsAuthor() bool { return e.Author }

// IsPublicationAuthor implements Contributor.
func (e *Entity) IsPublicationAuthor() bool {
	if e.Author {
		return true
	}
	return e.PublicationAuthor != nil && *e.PublicationAuthor
}

// IsMaintainer implements Contributor.
func (e *Entity) IsMaintainer() bool { return e.Maintainer }

// KeyOrder implements Contributor.
func (e *Entity) KeyOrder() []string { return e.keyOrder }

// SetKeyOrder implements Contributor.
func (e *Entity) SetKeyOrder(keys []string) {
	e.keyOrder = append([]string(nil), keys...)
}

// Clone implements Contributor.
func (e *Entity) Clone() Contributor {
	cp := *e
	cp.keyOrder = append([]string(nil), e.keyOrder...)
	cp.ContributionTypes = append([]string(nil), e.ContributionTypes...)
	if e.PublicationAuthor != nil {
		v := *e.PublicationAuthor
		cp.PublicationAuthor = &v
	}
	return &cp
}

// NameEmailString renders the entity in `Name <x@y.z>` form.
func (e *Entity) NameEmailString() string {
	if e.Email == "" {
		return e.Name
	}
	return fmt.Sprintf("%s <%s>", e.Name, e.Email)
}

// Validate checks the fields required in canonical metadata input.
func (e *Entity) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("entity name is required")
	}
	if e.Email != "" && !emailPattern.MatchString(e.Email) {
		return fmt.Errorf("invalid email address %q (%s)", e.Email, e.Name)
	}
	if e.Website != "" && !urlPattern.MatchString(e.Website) {
		return fmt.Errorf("invalid website URL %q (%s)", e.Website, e.Name)
	}
	if e.RorID != "" && !rorPattern.MatchString(e.RorID) {
		return fmt.Errorf("invalid ROR ID %q (%s)", e.RorID, e.Name)
	}
	if e.Author && e.PublicationAuthor != nil && !*e.PublicationAuthor {
		return fmt.Errorf("combining author=true and publication_author=false is invalid (%s)", e.Name)
	}
	return nil
}

// updateFrom implements Contributor.
func (e *Entity) updateFrom(incoming Contributor) (Contributor, bool) {
	in, ok := incoming.(*Entity)
	if !ok {
		repl := incoming.Clone()
		repl.SetKeyOrder(e.keyOrder)
		return repl, true
	}

	out := e.Clone().(*Entity)
	changed := false
	setStr := func(dst *string, v string) {
		if v != "" && *dst != v {
			*dst = v
			changed = true
		}
	}
	setStr(&out.Name, in.Name)
	setStr(&out.Email, in.Email)
	setStr(&out.Alias, in.Alias)
	setStr(&out.Address, in.Address)
	setStr(&out.Website, in.Website)
	setStr(&out.RorID, in.RorID)
	setStr(&out.DateStart, in.DateStart)
	setStr(&out.DateEnd, in.DateEnd)
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

// cffEntityFieldOrder is the natural serialization order of entity
// fields in their CFF-style mapping form.
var cffEntityFieldOrder = []string{
	"name", "email", "alias", "address", "website",
	"date-start", "date-end",
}

// CFFMap renders the entity as a CFF-style mapping. CFF has no ROR
// field, so the website slot carries the ROR ID when no website is set.
func (e *Entity) CFFMap() *document.Map {
	website := e.Website
	if website == "" {
		website = e.RorID
	}
	fields := map[string]string{
		"name":       e.Name,
		"email":      e.Email,
		"alias":      e.Alias,
		"address":    e.Address,
		"website":    website,
		"date-start": e.DateStart,
		"date-end":   e.DateEnd,
	}
	m := document.NewMap()
	for _, key := range orderedFieldKeys(e.keyOrder, cffEntityFieldOrder) {
		if v, ok := fields[key]; ok && v != "" {
			m.Set(key, v)
		}
	}
	return m
}

// EntityFromMap builds a partial Entity from a CFF-style mapping. The
// mapping's key order is preserved as the entity's key-order
// annotation.
func EntityFromMap(m *document.Map) *Entity {
	e := &Entity{}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		s, _ := pair.Value.(string)
		switch normalizeFieldKey(pair.Key) {
		case "name":
			e.Name = s
		case "email":
			e.Email = s
		case "alias":
			e.Alias = s
		case "address":
			e.Address = s
		case "website":
			e.Website = s
		case "rorid", "ror-id":
			e.RorID = s
		case "date-start":
			e.DateStart = s
		case "date-end":
			e.DateEnd = s
		}
	}
	e.SetKeyOrder(document.MapKeys(m))
	return e
}
