// Package codemeta maintains a codemeta.json file (CodeMeta 2.0
// software metadata).
//
// Unlike the other targets, codemeta.json is owned by somesy: the file
// is regenerated from canonical metadata on every sync instead of
// being merged, so stale hand edits cannot linger in it.
package codemeta

import (
	"errors"
	"fmt"
	"os"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

const context = "https://doi.org/10.5063/schema/codemeta-2.0"

// Writer regenerates a codemeta.json file.
type Writer struct {
	*somesy.BaseWriter
	doc *document.JSON
}

// New opens path as a codemeta.json target. A missing file is allowed
// when create is true; the content is regenerated either way.
func New(path string, create bool, log somesy.Logger) (*Writer, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !create {
		return nil, fmt.Errorf("%w: %s", somesy.ErrTargetNotFound, path)
	}
	doc := document.NewJSON()
	return &Writer{
		BaseWriter: somesy.NewBaseWriter(path, doc, nil, nil, log),
		doc:        doc,
	}, nil
}

// Sync implements somesy.Writer by rebuilding the document from
// scratch.
func (w *Writer) Sync(meta *somesy.ProjectMetadata) error {
	root := w.doc.Root()
	for _, key := range document.MapKeys(root) {
		root.Delete(key)
	}

	root.Set("@context", []interface{}{context})
	root.Set("@type", "SoftwareSourceCode")
	set := func(key, value string) {
		if value != "" {
			root.Set(key, value)
		}
	}
	set("name", meta.Name)
	set("description", meta.Description)
	set("version", meta.Version)
	if len(meta.Keywords) > 0 {
		root.Set("keywords", toList(meta.Keywords))
	}
	if meta.License != "" {
		root.Set("license", "https://spdx.org/licenses/"+meta.License)
	}
	set("codeRepository", meta.Repository)
	set("url", meta.Homepage)
	set("softwareHelp", meta.Documentation)
	if authors := meta.Authors(); len(authors) > 0 {
		root.Set("author", contributorList(authors))
	}
	if maintainers := meta.Maintainers(); len(maintainers) > 0 {
		root.Set("maintainer", contributorList(maintainers))
	}
	if contributors := meta.Contributors(); len(contributors) > 0 {
		root.Set("contributor", contributorList(contributors))
	}
	return nil
}

func toList(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func contributorList(cs []somesy.Contributor) []interface{} {
	out := make([]interface{}, 0, len(cs))
	for _, c := range cs {
		out = append(out, contributorMap(c))
	}
	return out
}

// contributorMap renders a contributor as a schema.org Person or
// Organization node.
func contributorMap(c somesy.Contributor) *document.Map {
	m := document.NewMap()
	switch t := c.(type) {
	case *somesy.Person:
		m.Set("@type", "Person")
		if t.Orcid != "" {
			m.Set("@id", t.Orcid)
		}
		if t.GivenNames != "" {
			m.Set("givenName", t.GivenNames)
		}
		family := t.FamilyNames
		if t.NameParticle != "" {
			family = t.NameParticle + " " + family
		}
		if family != "" {
			m.Set("familyName", family)
		}
	case *somesy.Entity:
		m.Set("@type", "Organization")
		if t.RorID != "" {
			m.Set("@id", t.RorID)
		}
		m.Set("name", t.Name)
		if t.Website != "" {
			m.Set("url", t.Website)
		}
	}
	if c.ContributorEmail() != "" {
		m.Set("email", c.ContributorEmail())
	}
	return m
}
