// Package pyproject synchronizes project metadata into pyproject.toml
// files, supporting both the PEP 621 [project] table and the legacy
// [tool.poetry] table.
package pyproject

import (
	"fmt"
	"os"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

var setuptoolsMapping = somesy.FieldMapping{
	"license":       somesy.Key("license", "text"),
	"homepage":      somesy.Key("urls", "homepage"),
	"repository":    somesy.Key("urls", "repository"),
	"documentation": somesy.Key("urls", "documentation"),
}

// poetry uses identity mappings throughout.
var poetryMapping = somesy.FieldMapping{}

// Writer syncs metadata into a pyproject.toml file. The flavor of the
// file ([project] vs. [tool.poetry]) is detected when the file is
// opened.
type Writer struct {
	*somesy.BaseWriter
}

// New opens path as a pyproject.toml target. The file must exist;
// somesy does not scaffold Python projects.
func New(path string, log somesy.Logger) (*Writer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", somesy.ErrTargetNotFound, path)
	}
	doc, err := document.LoadTOML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
	}

	var w *Writer
	switch {
	case has(doc, "project"):
		w = &Writer{somesy.NewBaseWriter(path, doc, setuptoolsMapping, setuptoolsBinding{}, log)}
		w.SetSection("project")
	case has(doc, "tool", "poetry"):
		w = &Writer{somesy.NewBaseWriter(path, doc, poetryMapping, poetryBinding{}, log)}
		w.SetSection("tool", "poetry")
	default:
		return nil, fmt.Errorf("%w: %s has neither a [project] nor a [tool.poetry] table",
			somesy.ErrValidationFailed, path)
	}
	return w, nil
}

func has(doc *document.TOML, path ...string) bool {
	_, ok := doc.Get(path)
	return ok
}

// poetryBinding renders contributors as `Name <email>` strings, the
// form poetry expects.
type poetryBinding struct{}

func (poetryBinding) FromContributor(c somesy.Contributor) interface{} {
	switch t := c.(type) {
	case *somesy.Person:
		return t.NameEmailString()
	case *somesy.Entity:
		return t.NameEmailString()
	}
	return nil
}

func (poetryBinding) ToContributor(v interface{}) (somesy.Contributor, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string, got %T", v)
	}
	return somesy.PersonFromNameEmail(s)
}

// setuptoolsBinding renders contributors as PEP 621 inline tables with
// name and email keys.
type setuptoolsBinding struct{}

func (setuptoolsBinding) FromContributor(c somesy.Contributor) interface{} {
	m := document.NewMap()
	m.Set("name", c.FullName())
	if c.ContributorEmail() != "" {
		m.Set("email", c.ContributorEmail())
	}
	return m
}

func (setuptoolsBinding) ToContributor(v interface{}) (somesy.Contributor, error) {
	m, ok := v.(*document.Map)
	if !ok {
		return nil, fmt.Errorf("expected a table, got %T", v)
	}
	name := document.GetString(m, "name")
	if name == "" {
		return nil, fmt.Errorf("person table has no name")
	}
	email := document.GetString(m, "email")
	p, err := somesy.PersonFromNameEmail(fmt.Sprintf("%s <%s>", name, email))
	if err != nil {
		return nil, err
	}
	p.SetKeyOrder(document.MapKeys(m))
	return p, nil
}
