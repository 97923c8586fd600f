// Package mkdocs synchronizes project metadata into mkdocs.yml
// configuration files.
package mkdocs

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

var mapping = somesy.FieldMapping{
	"name":        somesy.Key("site_name"),
	"description": somesy.Key("site_description"),
	"homepage":    somesy.Key("site_url"),
	"repository":  somesy.Key("repo_url"),
	"authors":     somesy.Key("site_author"),
}

// Writer syncs metadata into a mkdocs.yml file.
type Writer struct {
	*somesy.BaseWriter
}

// New opens path as a mkdocs.yml target. The file must exist.
func New(path string, log somesy.Logger) (*Writer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", somesy.ErrTargetNotFound, path)
	}
	doc, err := document.LoadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", somesy.ErrValidationFailed, path, err)
	}
	// mkdocs itself refuses configs without a site_name
	if name, ok := doc.Get([]string{"site_name"}); !ok {
		return nil, fmt.Errorf("%w: %s: missing site_name", somesy.ErrValidationFailed, path)
	} else if _, isStr := name.(string); !isStr {
		return nil, fmt.Errorf("%w: %s: site_name must be a string", somesy.ErrValidationFailed, path)
	}
	return &Writer{somesy.NewBaseWriter(path, doc, mapping, nil, log)}, nil
}

// Sync implements somesy.Writer. mkdocs has no structured person
// fields, so site_author carries the first author as free text and no
// merging takes place. repo_name is derived from the repository URL.
func (w *Writer) Sync(meta *somesy.ProjectMetadata) error {
	w.SetProperty("name", meta.Name)
	w.SetProperty("description", meta.Description)
	w.SetProperty("homepage", meta.Homepage)
	w.SetProperty("repository", meta.Repository)
	if authors := meta.Authors(); len(authors) > 0 {
		w.SetProperty("authors", authors[0].FullName())
	}
	if slug := repoSlug(meta.Repository); slug != "" {
		w.Document().Set([]string{"repo_name"}, slug)
	}
	return nil
}

// repoSlug extracts the "org/repo" part of a repository URL.
func repoSlug(repo string) string {
	if repo == "" {
		return ""
	}
	u, err := url.Parse(repo)
	if err != nil {
		return ""
	}
	slug := strings.Trim(strings.TrimSuffix(u.Path, ".git"), "/")
	if slug == "" || strings.Count(slug, "/") != 1 {
		return ""
	}
	return slug
}
