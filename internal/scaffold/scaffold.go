// Package scaffold generates starter somesy input files.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed all:templates
var templatesFS embed.FS

// Params holds the values filled into a generated somesy input file.
type Params struct {
	Name        string
	Description string
	Version     string
	License     string
	Repository  string
	Homepage    string

	AuthorGivenNames  string
	AuthorFamilyNames string
	AuthorEmail       string
	AuthorOrcid       string
}

// Render produces the content of a starter somesy.toml.
func Render(p Params) ([]byte, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/somesy.toml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing input template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("rendering input template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteInput renders a starter input file to path. An existing file is
// never overwritten.
func WriteInput(path string, p Params) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, not overwriting", path)
	}
	content, err := Render(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
