package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (not available before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

const testInput = `[project]
name = "demo"
description = "A demo project"
version = "1.2.3"
license = "MIT"
repository = "https://github.com/example/demo"

[[project.people]]
given-names = "Jane"
family-names = "Doe"
email = "jane@example.org"
author = true
maintainer = true
`

func TestSyncCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("somesy.toml", []byte(testInput), 0644))
	require.NoError(t, os.WriteFile("mkdocs.yml", []byte("site_name: old\n"), 0644))

	rootCmd.SetArgs([]string{"sync"})
	require.NoError(t, rootCmd.Execute())

	// created targets
	cff, err := os.ReadFile("CITATION.cff")
	require.NoError(t, err)
	assert.Contains(t, string(cff), "title: demo")
	codemeta, err := os.ReadFile("codemeta.json")
	require.NoError(t, err)
	assert.Contains(t, string(codemeta), `"name": "demo"`)

	// existing target synced
	mkdocs, err := os.ReadFile("mkdocs.yml")
	require.NoError(t, err)
	assert.Contains(t, string(mkdocs), "site_name: demo")

	// absent targets stay absent
	_, err = os.Stat("Cargo.toml")
	assert.True(t, os.IsNotExist(err))
}

func TestSyncCommand_NoInputFile(t *testing.T) {
	chdir(t, t.TempDir())

	rootCmd.SetArgs([]string{"sync"})
	assert.Error(t, rootCmd.Execute())
}

func TestSyncCommand_InvalidMetadata(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	broken := `[project]
name = "demo"
`
	require.NoError(t, os.WriteFile("somesy.toml", []byte(broken), 0644))

	rootCmd.SetArgs([]string{"sync"})
	assert.Error(t, rootCmd.Execute())
}

func TestFillCommand_FromStdin(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("somesy.toml", []byte(testInput), 0644))

	var out bytes.Buffer
	rootCmd.SetIn(bytes.NewBufferString("{{ .Name }} {{ .Version }} by {{ (index .Authors 0).FullName }}"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"fill"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "demo 1.2.3 by Jane Doe", out.String())
}

func TestInitCommand_NonInteractiveFlags(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SOMESY_NON_INTERACTIVE", "1")

	rootCmd.SetArgs([]string{
		"init",
		"--name", "demo",
		"--description", "A demo project",
		"--author-given-names", "Jane",
		"--author-family-names", "Doe",
		"--author-email", "jane@example.org",
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "somesy.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `name = "demo"`)
	assert.Contains(t, string(data), `family-names = "Doe"`)
}

func TestInitConfigCommand_NonInteractive(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SOMESY_NON_INTERACTIVE", "1")
	src := "# canonical metadata\n" + testInput
	require.NoError(t, os.WriteFile("somesy.toml", []byte(src), 0644))

	rootCmd.SetArgs([]string{"init", "config"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile("somesy.toml")
	require.NoError(t, err)
	got := string(data)

	// settings materialized into the existing file
	assert.Contains(t, got, "[config]")
	assert.Contains(t, got, "no_sync_cff = false")
	assert.Contains(t, got, `cff_file = "CITATION.cff"`)
	assert.Contains(t, got, "show_info = false")

	// the rest of the file is untouched
	assert.Contains(t, got, "# canonical metadata")
	assert.Contains(t, got, `name = "demo"`)
	assert.Contains(t, got, `family-names = "Doe"`)
}

func TestInitConfigCommand_NoInputFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SOMESY_NON_INTERACTIVE", "1")

	rootCmd.SetArgs([]string{"init", "config"})
	assert.Error(t, rootCmd.Execute())
}

func TestInitCommand_MissingRequiredValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SOMESY_NON_INTERACTIVE", "1")
	initParams.Name = ""
	initParams.Description = ""
	initParams.AuthorGivenNames = ""
	initParams.AuthorFamilyNames = ""
	initParams.AuthorEmail = ""

	rootCmd.SetArgs([]string{"init"})
	assert.Error(t, rootCmd.Execute())
}
