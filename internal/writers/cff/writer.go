// Package cff synchronizes project metadata into CITATION.cff files
// (Citation File Format 1.2).
package cff

import (
	"errors"
	"fmt"
	"os"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

const defaultMessage = "If you use this software, please cite it using these metadata."

var mapping = somesy.FieldMapping{
	"name":          somesy.Key("title"),
	"description":   somesy.Key("abstract"),
	"homepage":      somesy.Key("url"),
	"repository":    somesy.Key("repository-code"),
	"documentation": somesy.Ignore(),
	"maintainers":   somesy.Key("contact"),
}

// Writer syncs metadata into a CITATION.cff file.
type Writer struct {
	*somesy.BaseWriter
}

// New opens path as a CITATION.cff target. A missing file is created
// with a minimal skeleton when create is true and is an error
// otherwise.
func New(path string, create bool, log somesy.Logger) (*Writer, error) {
	data, err := os.ReadFile(path)
	var doc *document.YAML
	switch {
	case err == nil:
		doc, err = document.LoadYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
		}
		if err := validate(doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && create:
		doc = document.NewYAML()
		doc.Set([]string{"cff-version"}, "1.2.0")
		doc.Set([]string{"message"}, defaultMessage)
		doc.Set([]string{"type"}, "software")
	default:
		return nil, fmt.Errorf("%w: %s", somesy.ErrTargetNotFound, path)
	}

	w := &Writer{somesy.NewBaseWriter(path, doc, mapping, binding{}, log)}
	w.SetAuthorsSource(func(meta *somesy.ProjectMetadata) []somesy.Contributor {
		return meta.PublicationAuthors()
	})
	return w, nil
}

// validate checks the shape a hand-written CITATION.cff must already
// have before somesy touches it.
func validate(doc *document.YAML) error {
	v, ok := doc.Get([]string{"cff-version"})
	if !ok {
		return fmt.Errorf("missing cff-version")
	}
	if s, isStr := v.(string); !isStr || s == "" {
		return fmt.Errorf("cff-version must be a string, got %v", v)
	}
	for _, key := range []string{"authors", "contact"} {
		if v, ok := doc.Get([]string{key}); ok {
			if _, isList := v.([]interface{}); !isList {
				return fmt.Errorf("%s must be a list", key)
			}
		}
	}
	return nil
}

// Sync implements somesy.Writer. CFF requires a citation message, so a
// missing one is filled with the default before the standard steps.
func (w *Writer) Sync(meta *somesy.ProjectMetadata) error {
	if _, ok := w.Document().Get([]string{"message"}); !ok {
		w.Document().Set([]string{"message"}, defaultMessage)
	}
	return w.BaseWriter.Sync(meta)
}

// binding renders contributors as CFF person or entity mappings.
type binding struct{}

func (binding) FromContributor(c somesy.Contributor) interface{} {
	switch t := c.(type) {
	case *somesy.Person:
		return t.CFFMap()
	case *somesy.Entity:
		return t.CFFMap()
	}
	return nil
}

func (binding) ToContributor(v interface{}) (somesy.Contributor, error) {
	m, ok := v.(*document.Map)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
	if document.GetString(m, "given-names") != "" || document.GetString(m, "family-names") != "" {
		return somesy.PersonFromMap(m), nil
	}
	if document.GetString(m, "name") != "" {
		return somesy.EntityFromMap(m), nil
	}
	return nil, fmt.Errorf("mapping is neither a person nor an entity")
}
