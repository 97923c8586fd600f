package somesy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMetadata() *ProjectMetadata {
	return &ProjectMetadata{
		Name:        "demo",
		Description: "A demo project",
		Version:     "1.2.3",
		License:     "MIT",
		Repository:  "https://github.com/example/demo",
		People: []*Person{
			{GivenNames: "Jane", FamilyNames: "Doe", Email: "jane@example.org", Author: true, Maintainer: true},
			{GivenNames: "John", FamilyNames: "Smith", Email: "john@example.org"},
		},
	}
}

func TestProjectMetadata_Validate_OK(t *testing.T) {
	require.NoError(t, validMetadata().Validate())
}

func TestProjectMetadata_Validate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *ProjectMetadata)
	}{
		{"missing name", func(m *ProjectMetadata) { m.Name = "" }},
		{"missing description", func(m *ProjectMetadata) { m.Description = "" }},
		{"bad version", func(m *ProjectMetadata) { m.Version = "one.two" }},
		{"missing license", func(m *ProjectMetadata) { m.License = "" }},
		{"bad license", func(m *ProjectMetadata) { m.License = "my cool license!!" }},
		{"bad repository URL", func(m *ProjectMetadata) { m.Repository = "git@github.com:example/demo" }},
		{"no author", func(m *ProjectMetadata) {
			for _, p := range m.People {
				p.Author = false
			}
		}},
		{"duplicate contributors", func(m *ProjectMetadata) {
			m.People = append(m.People, &Person{
				GivenNames: "Jane", FamilyNames: "Doe", Email: "jane@example.org",
			})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMetadata()
			tt.mutate(m)
			err := m.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidMetadata))
		})
	}
}

func TestProjectMetadata_RoleAccessors(t *testing.T) {
	m := validMetadata()
	m.Entities = []*Entity{
		{Name: "Some Lab", RorID: "https://ror.org/02nv7yv05", Maintainer: true},
	}

	assert.Equal(t, []string{"Jane Doe"}, fullNames(m.Authors()))
	assert.Equal(t, []string{"Jane Doe", "Some Lab"}, fullNames(m.Maintainers()))
	assert.Equal(t, []string{"John Smith", "Some Lab"}, fullNames(m.Contributors()))
	assert.Len(t, m.Pool(), 3)
}

func TestProjectMetadata_PublicationAuthors(t *testing.T) {
	m := validMetadata()
	// without explicit flags, publication authors equal authors
	assert.Equal(t, fullNames(m.Authors()), fullNames(m.PublicationAuthors()))

	yes := true
	m.People[1].PublicationAuthor = &yes
	assert.Equal(t, []string{"Jane Doe", "John Smith"}, fullNames(m.PublicationAuthors()))
}

func TestExitCodeForError(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeForError(nil))
	assert.Equal(t, ExitInvalidMetadata, ExitCodeForError(ErrInvalidMetadata))
	assert.Equal(t, ExitInputMissing, ExitCodeForError(ErrInputNotFound))
	assert.Equal(t, ExitTargetMissing, ExitCodeForError(ErrTargetNotFound))
	assert.Equal(t, ExitValidationFailed, ExitCodeForError(ErrValidationFailed))
	assert.Equal(t, ExitGeneralError, ExitCodeForError(errors.New("boom")))
}
