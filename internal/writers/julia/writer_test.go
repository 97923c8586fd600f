package julia

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
)

func TestSync_NameVersionAuthorsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Project.toml")
	content := `name = "Old"
uuid = "7876af07-990d-54b4-ab0e-23690620f79a"
version = "0.0.1"
authors = ["Old Timer <old@example.org>"]

[deps]
JSON = "682c06a0-de6a-54ab-a142-c8b1cf79cde6"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	w, err := New(path, nil)
	require.NoError(t, err)
	meta := &somesy.ProjectMetadata{
		Name:        "Demo",
		Description: "ignored here",
		Version:     "1.2.3",
		License:     "MIT",
		People: []*somesy.Person{
			{GivenNames: "Jane", FamilyNames: "Doe", Email: "jane@example.org", Author: true},
		},
	}
	require.NoError(t, w.Sync(meta))
	require.NoError(t, w.Save(""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `name = "Demo"`)
	assert.Contains(t, out, `version = "1.2.3"`)
	assert.Contains(t, out, `"Jane Doe <jane@example.org>"`)
	// the UUID and dependencies are untouched
	assert.Contains(t, out, `uuid = "7876af07-990d-54b4-ab0e-23690620f79a"`)
	assert.Contains(t, out, `JSON = "682c06a0-de6a-54ab-a142-c8b1cf79cde6"`)
	// fields without a home in Project.toml never appear
	assert.NotContains(t, out, "description")
	assert.NotContains(t, out, "license")
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "Project.toml"), nil)
	assert.ErrorIs(t, err, somesy.ErrTargetNotFound)
}

func TestNew_RejectsInvalidProject(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "uuid = \"7876af07-990d-54b4-ab0e-23690620f79a\"\n"},
		{"missing uuid", "name = \"Demo\"\n"},
		{"malformed uuid", "name = \"Demo\"\nuuid = \"not-a-uuid\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Project.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := New(path, nil)
			assert.ErrorIs(t, err, somesy.ErrValidationFailed)
		})
	}
}
