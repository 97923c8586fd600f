// Package pomxml synchronizes project metadata into Maven pom.xml
// files.
package pomxml

import (
	"fmt"
	"os"
	"strings"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

var mapping = somesy.FieldMapping{
	"homepage":      somesy.Key("url"),
	"repository":    somesy.Key("scm", "url"),
	"license":       somesy.Key("licenses", "license", "name"),
	"authors":       somesy.Key("developers"),
	"contributors":  somesy.Key("contributors"),
	"keywords":      somesy.Ignore(),
	"maintainers":   somesy.Ignore(),
	"documentation": somesy.Ignore(),
}

// Writer syncs metadata into a pom.xml file.
type Writer struct {
	*somesy.BaseWriter
}

// New opens path as a pom.xml target. The file must exist.
func New(path string, log somesy.Logger) (*Writer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", somesy.ErrTargetNotFound, path)
	}
	doc, err := loadXMLDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
	}
	return &Writer{somesy.NewBaseWriter(path, doc, mapping, binding{}, log)}, nil
}

// Sync implements somesy.Writer. POM knows developers and
// contributors; the canonical authors map to developers and the rest
// of the pool to contributors.
func (w *Writer) Sync(meta *somesy.ProjectMetadata) error {
	w.SetProperty("name", meta.Name)
	w.SetProperty("description", meta.Description)
	w.SetProperty("version", meta.Version)
	w.SyncAuthors(meta)
	w.SyncPersonList("contributors", meta.Contributors())
	w.SetProperty("license", meta.License)
	w.SetProperty("homepage", meta.Homepage)
	w.SetProperty("repository", meta.Repository)
	return nil
}

// binding renders contributors as POM developer/contributor elements.
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
	if p, ok := c.(*somesy.Person); ok && p.Affiliation != "" {
		m.Set("organization", p.Affiliation)
	}
	return m
}

func (binding) ToContributor(v interface{}) (somesy.Contributor, error) {
	m, ok := v.(*document.Map)
	if !ok {
		return nil, fmt.Errorf("expected a developer element, got %T", v)
	}
	name := document.GetString(m, "name")
	if name == "" {
		return nil, fmt.Errorf("developer element has no name")
	}
	names := strings.Fields(name)
	p := &somesy.Person{
		GivenNames:  strings.Join(names[:len(names)-1], " "),
		FamilyNames: names[len(names)-1],
		Email:       document.GetString(m, "email"),
		Affiliation: document.GetString(m, "organization"),
	}
	if url := document.GetString(m, "url"); strings.HasPrefix(url, "https://orcid.org/") {
		p.Orcid = url
	}
	p.SetKeyOrder(document.MapKeys(m))
	return p, nil
}
