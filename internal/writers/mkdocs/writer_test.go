package mkdocs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
)

func testMetadata() *somesy.ProjectMetadata {
	return &somesy.ProjectMetadata{
		Name:        "demo",
		Description: "A demo project",
		Homepage:    "https://example.org",
		Repository:  "https://github.com/example/demo",
		People: []*somesy.Person{
			{GivenNames: "Jane", FamilyNames: "Doe", Email: "jane@example.org", Author: true},
		},
	}
}

func TestSync_SiteFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mkdocs.yml")
	content := `site_name: old
theme:
  name: material
nav:
  - Home: index.md
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	w, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Sync(testMetadata()))
	require.NoError(t, w.Save(""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "site_name: demo")
	assert.Contains(t, out, "site_description: A demo project")
	assert.Contains(t, out, "site_author: Jane Doe")
	assert.Contains(t, out, "site_url: https://example.org")
	assert.Contains(t, out, "repo_url: https://github.com/example/demo")
	assert.Contains(t, out, "repo_name: example/demo")
	// theme and nav are unmanaged
	assert.Contains(t, out, "name: material")
	assert.Contains(t, out, "- Home: index.md")
}

func TestNew_RejectsConfigWithoutSiteName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mkdocs.yml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  name: material\n"), 0644))

	_, err := New(path, nil)
	assert.ErrorIs(t, err, somesy.ErrValidationFailed)
}

func TestRepoSlug(t *testing.T) {
	assert.Equal(t, "example/demo", repoSlug("https://github.com/example/demo"))
	assert.Equal(t, "example/demo", repoSlug("https://github.com/example/demo.git"))
	assert.Equal(t, "", repoSlug("https://example.org/just-one-segment"))
	assert.Equal(t, "", repoSlug(""))
}
