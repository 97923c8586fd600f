// Package julia synchronizes project metadata into Julia Project.toml
// files.
package julia

import (
	"fmt"
	"os"
	"regexp"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Project.toml carries only name, version and authors; the remaining
// canonical fields have no home there.
var mapping = somesy.FieldMapping{
	"description":   somesy.Ignore(),
	"keywords":      somesy.Ignore(),
	"license":       somesy.Ignore(),
	"homepage":      somesy.Ignore(),
	"repository":    somesy.Ignore(),
	"documentation": somesy.Ignore(),
	"maintainers":   somesy.Ignore(),
}

// Writer syncs metadata into a Project.toml file.
type Writer struct {
	*somesy.BaseWriter
}

// New opens path as a Project.toml target. The file must exist, since
// it carries a package UUID somesy cannot invent.
func New(path string, log somesy.Logger) (*Writer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", somesy.ErrTargetNotFound, path)
	}
	doc, err := document.LoadTOML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
	}
	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
	}
	return &Writer{somesy.NewBaseWriter(path, doc, mapping, binding{}, log)}, nil
}

// validate checks the fields Julia itself requires of a Project.toml.
func validate(doc *document.TOML) error {
	if name, ok := doc.Get([]string{"name"}); !ok {
		return fmt.Errorf("missing package name")
	} else if _, isStr := name.(string); !isStr {
		return fmt.Errorf("package name must be a string")
	}
	uuid, ok := doc.Get([]string{"uuid"})
	if !ok {
		return fmt.Errorf("missing package uuid")
	}
	s, isStr := uuid.(string)
	if !isStr || !uuidPattern.MatchString(s) {
		return fmt.Errorf("invalid package uuid %v", uuid)
	}
	return nil
}

// binding renders contributors as `Name <email>` strings.
type binding struct{}

func (binding) FromContributor(c somesy.Contributor) interface{} {
	switch t := c.(type) {
	case *somesy.Person:
		return t.NameEmailString()
	case *somesy.Entity:
		return t.NameEmailString()
	}
	return nil
}

func (binding) ToContributor(v interface{}) (somesy.Contributor, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string, got %T", v)
	}
	return somesy.PersonFromNameEmail(s)
}
