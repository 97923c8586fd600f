// Package fortran synchronizes project metadata into Fortran package
// manager (fpm.toml) manifests.
package fortran

import (
	"fmt"
	"os"
	"regexp"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

// package names fpm accepts
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]+([_-][A-Za-z0-9]+)*$`)

var mapping = somesy.FieldMapping{
	"authors":       somesy.Key("author"),
	"maintainers":   somesy.Key("maintainer"),
	"repository":    somesy.Ignore(),
	"documentation": somesy.Ignore(),
}

// Writer syncs metadata into an fpm.toml file.
type Writer struct {
	*somesy.BaseWriter
}

// New opens path as an fpm.toml target. The file must exist.
func New(path string, log somesy.Logger) (*Writer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", somesy.ErrTargetNotFound, path)
	}
	doc, err := document.LoadTOML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
	}
	name, ok := doc.Get([]string{"name"})
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing package name", somesy.ErrValidationFailed, path)
	}
	if s, isStr := name.(string); !isStr || !namePattern.MatchString(s) {
		return nil, fmt.Errorf("%w: %s: invalid package name %v", somesy.ErrValidationFailed, path, name)
	}
	return &Writer{somesy.NewBaseWriter(path, doc, mapping, nil, log)}, nil
}

// Sync implements somesy.Writer. fpm.toml holds a single author and a
// single maintainer string, so only the first of each canonical set is
// synced and no list merging takes place.
func (w *Writer) Sync(meta *somesy.ProjectMetadata) error {
	w.SetProperty("name", meta.Name)
	w.SetProperty("description", meta.Description)
	w.SetProperty("version", meta.Version)
	w.SetProperty("keywords", meta.Keywords)
	if authors := meta.Authors(); len(authors) > 0 {
		w.SetProperty("authors", nameEmail(authors[0]))
	}
	if maintainers := meta.Maintainers(); len(maintainers) > 0 {
		w.SetProperty("maintainers", nameEmail(maintainers[0]))
	}
	w.SetProperty("license", meta.License)
	w.SetProperty("homepage", meta.Homepage)
	return nil
}

func nameEmail(c somesy.Contributor) string {
	switch t := c.(type) {
	case *somesy.Person:
		return t.NameEmailString()
	case *somesy.Entity:
		return t.NameEmailString()
	}
	return fmt.Sprintf("%s <%s>", c.FullName(), c.ContributorEmail())
}
