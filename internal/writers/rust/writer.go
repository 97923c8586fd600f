// Package rust synchronizes project metadata into Cargo.toml
// manifests.
package rust

import (
	"fmt"
	"os"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

var mapping = somesy.FieldMapping{
	"maintainers": somesy.Ignore(),
}

// Writer syncs metadata into the [package] table of a Cargo.toml file.
type Writer struct {
	*somesy.BaseWriter
}

// New opens path as a Cargo.toml target. The file must exist and have
// a [package] table.
func New(path string, log somesy.Logger) (*Writer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", somesy.ErrTargetNotFound, path)
	}
	doc, err := document.LoadTOML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
	}
	if _, ok := doc.Get([]string{"package"}); !ok {
		return nil, fmt.Errorf("%w: %s has no [package] table", somesy.ErrValidationFailed, path)
	}
	w := &Writer{somesy.NewBaseWriter(path, doc, mapping, binding{}, log)}
	w.SetSection("package")
	return w, nil
}

// Sync implements somesy.Writer. Keywords are filtered to what
// crates.io accepts, and the license field is left alone when the
// package points at a license file instead (Cargo treats license and
// license-file as mutually exclusive).
func (w *Writer) Sync(meta *somesy.ProjectMetadata) error {
	w.SetProperty("name", meta.Name)
	w.SetProperty("description", meta.Description)
	w.SetProperty("version", meta.Version)
	w.SetProperty("keywords", crateKeywords(meta.Keywords, w.Log()))
	w.SyncAuthors(meta)
	if _, hasFile := w.GetProperty("license-file"); !hasFile {
		w.SetProperty("license", meta.License)
	} else if meta.License != "" {
		w.Log().Verbose("%s sets license-file, not syncing license", w.Path())
	}
	w.SetProperty("homepage", meta.Homepage)
	w.SetProperty("repository", meta.Repository)
	w.SetProperty("documentation", meta.Documentation)
	return nil
}

// crateKeywords filters keywords to the crates.io rules: at most five,
// each at most 20 characters, starting with a letter or digit and
// containing only letters, digits, _ and -.
func crateKeywords(keywords []string, log somesy.Logger) []string {
	var out []string
	for _, kw := range keywords {
		if !validKeyword(kw) {
			log.Verbose("dropping keyword %q, not allowed on crates.io", kw)
			continue
		}
		out = append(out, kw)
		if len(out) == 5 {
			break
		}
	}
	return out
}

func validKeyword(kw string) bool {
	if len(kw) == 0 || len(kw) > 20 {
		return false
	}
	for i, r := range kw {
		alnum := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
		if i == 0 && !alnum {
			return false
		}
		if !alnum && r != '_' && r != '-' {
			return false
		}
	}
	return true
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
