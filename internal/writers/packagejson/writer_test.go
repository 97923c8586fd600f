package packagejson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

func testMetadata() *somesy.ProjectMetadata {
	return &somesy.ProjectMetadata{
		Name:        "demo",
		Description: "A demo project",
		Version:     "1.2.3",
		License:     "MIT",
		Repository:  "https://github.com/example/demo",
		People: []*somesy.Person{
			{GivenNames: "Jane", FamilyNames: "Doe", Email: "jane@example.org", Author: true},
			{GivenNames: "John", FamilyNames: "Smith", Email: "john@example.org"},
		},
	}
}

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSync_SingleAuthorAndContributors(t *testing.T) {
	path := write(t, `{
  "name": "old",
  "version": "0.0.1",
  "scripts": {
    "test": "jest"
  },
  "author": {
    "name": "Jane Doe",
    "email": "jane@example.org"
  }
}
`)
	w, err := New(path, nil)
	require.NoError(t, err)
	meta := testMetadata()
	meta.People[0].Orcid = "https://orcid.org/0000-0001-2345-6789"
	require.NoError(t, w.Sync(meta))

	v, ok := w.Document().Get([]string{"author"})
	require.True(t, ok)
	author, isMap := v.(*document.Map)
	require.True(t, isMap)
	assert.Equal(t, "Jane Doe", document.GetString(author, "name"))
	assert.Equal(t, "https://orcid.org/0000-0001-2345-6789", document.GetString(author, "url"))

	v, ok = w.Document().Get([]string{"contributors"})
	require.True(t, ok)
	contributors, isList := v.([]interface{})
	require.True(t, isList)
	require.Len(t, contributors, 1)
	john := contributors[0].(*document.Map)
	assert.Equal(t, "John Smith", document.GetString(john, "name"))

	// unmanaged keys survive
	_, ok = w.Document().Get([]string{"scripts", "test"})
	assert.True(t, ok)
}

func TestSync_RepositoryObjectForm(t *testing.T) {
	path := write(t, `{"name": "old", "version": "0.0.1"}`)
	w, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Sync(testMetadata()))

	v, ok := w.Document().Get([]string{"repository"})
	require.True(t, ok)
	repo, isMap := v.(*document.Map)
	require.True(t, isMap)
	assert.Equal(t, "git", document.GetString(repo, "type"))
	assert.Equal(t, "https://github.com/example/demo", document.GetString(repo, "url"))
}

func TestSync_RepeatedSyncIsByteStable(t *testing.T) {
	path := write(t, `{
  "name": "old",
  "version": "0.0.1",
  "scripts": {
    "test": "jest"
  }
}
`)
	w, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Sync(testMetadata()))
	require.NoError(t, w.Save(""))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	w, err = New(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Sync(testMetadata()))
	require.NoError(t, w.Save(""))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestNew_RejectsInvalidManifest(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", `{"version": "1.0.0"}`},
		{"missing version", `{"name": "demo"}`},
		{"non-string version", `{"name": "demo", "version": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(write(t, tt.content), nil)
			assert.ErrorIs(t, err, somesy.ErrValidationFailed)
		})
	}
}

func TestBinding_ParsesPersonString(t *testing.T) {
	c, err := binding{}.ToContributor("Jane Doe <jane@example.org> (https://orcid.org/0000-0001-2345-6789)")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", c.FullName())
	assert.Equal(t, "jane@example.org", c.ContributorEmail())
	assert.Equal(t, "https://orcid.org/0000-0001-2345-6789", c.ContributorID())

	c, err = binding{}.ToContributor("Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", c.FullName())

	_, err = binding{}.ToContributor(42)
	assert.Error(t, err)
}
