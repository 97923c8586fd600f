package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAML_RoundTripKeepsCommentsAndOrder(t *testing.T) {
	src := `# project site config
site_name: old name
theme: material # keep this
nav:
  - Home: index.md
`
	doc, err := LoadYAML([]byte(src))
	require.NoError(t, err)

	doc.Set([]string{"site_name"}, "new name")

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(out), "# project site config")
	assert.Contains(t, string(out), "site_name: new name")
	assert.Contains(t, string(out), "theme: material # keep this")
	// untouched structure survives
	assert.Contains(t, string(out), "- Home: index.md")
}

func TestYAML_GetNestedValues(t *testing.T) {
	doc, err := LoadYAML([]byte(`a:
  b:
    c: deep
list:
  - one
  - two
count: 3
`))
	require.NoError(t, err)

	v, ok := doc.Get([]string{"a", "b", "c"})
	require.True(t, ok)
	assert.Equal(t, "deep", v)

	v, ok = doc.Get([]string{"list"})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"one", "two"}, v)

	v, ok = doc.Get([]string{"count"})
	require.True(t, ok)
	assert.Equal(t, int64(3), v)

	_, ok = doc.Get([]string{"a", "missing"})
	assert.False(t, ok)
}

func TestYAML_SetCreatesIntermediateMappings(t *testing.T) {
	doc := NewYAML()
	doc.Set([]string{"x", "y", "z"}, "value")

	v, ok := doc.Get([]string{"x", "y", "z"})
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestYAML_SetMapValueKeepsKeyOrder(t *testing.T) {
	m := NewMap()
	m.Set("family-names", "Doe")
	m.Set("given-names", "Jane")
	m.Set("email", "jane@example.org")

	doc := NewYAML()
	doc.Set([]string{"authors"}, []interface{}{m})

	out, err := doc.Encode()
	require.NoError(t, err)
	expected := `authors:
  - family-names: Doe
    given-names: Jane
    email: jane@example.org
`
	assert.Equal(t, expected, string(out))
}

func TestYAML_Delete(t *testing.T) {
	doc, err := LoadYAML([]byte("a: 1\nb: 2\n"))
	require.NoError(t, err)

	doc.Delete([]string{"a"})
	_, ok := doc.Get([]string{"a"})
	assert.False(t, ok)
	_, ok = doc.Get([]string{"b"})
	assert.True(t, ok)
}

func TestLoadYAML_RejectsNonMapping(t *testing.T) {
	_, err := LoadYAML([]byte("- just\n- a list\n"))
	assert.Error(t, err)
}

func TestLoadYAML_EmptyInput(t *testing.T) {
	doc, err := LoadYAML(nil)
	require.NoError(t, err)
	doc.Set([]string{"k"}, "v")
	v, ok := doc.Get([]string{"k"})
	require.True(t, ok)
	assert.Equal(t, "v", v)
}
