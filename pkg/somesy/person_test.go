package somesy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

func TestPerson_FullName(t *testing.T) {
	tests := []struct {
		name     string
		person   Person
		expected string
	}{
		{
			name:     "given and family",
			person:   Person{GivenNames: "Jane", FamilyNames: "Doe"},
			expected: "Jane Doe",
		},
		{
			name: "all name parts",
			person: Person{
				GivenNames: "Ludwig", NameParticle: "van",
				FamilyNames: "Beethoven", NameSuffix: "Jr.",
			},
			expected: "Ludwig van Beethoven Jr.",
		},
		{
			name:     "family only",
			person:   Person{FamilyNames: "Doe"},
			expected: "Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.person.FullName())
		})
	}
}

func TestPerson_NameEmailString(t *testing.T) {
	p := Person{GivenNames: "Jane", FamilyNames: "Doe", Email: "jane@example.org"}
	assert.Equal(t, "Jane Doe <jane@example.org>", p.NameEmailString())

	noEmail := Person{GivenNames: "Jane", FamilyNames: "Doe"}
	assert.Equal(t, "Jane Doe", noEmail.NameEmailString())
}

func TestPersonFromNameEmail(t *testing.T) {
	p, err := PersonFromNameEmail("Jane Ann Doe <jane@example.org>")
	require.NoError(t, err)
	assert.Equal(t, "Jane Ann", p.GivenNames)
	assert.Equal(t, "Doe", p.FamilyNames)
	assert.Equal(t, "jane@example.org", p.Email)

	_, err = PersonFromNameEmail("no email here")
	assert.Error(t, err)
}

func TestSameContributor_OrcidWins(t *testing.T) {
	a := &Person{GivenNames: "Jane", FamilyNames: "Doe", Orcid: "https://orcid.org/0000-0001-2345-6789"}
	b := &Person{GivenNames: "Jane M.", FamilyNames: "Doe-Smith", Orcid: "https://orcid.org/0000-0001-2345-6789"}
	c := &Person{GivenNames: "Jane", FamilyNames: "Doe", Orcid: "https://orcid.org/0000-0002-0000-0000"}

	assert.True(t, SameContributor(a, b), "same ORCID is the same person even with a different name")
	assert.False(t, SameContributor(a, c), "different ORCIDs are different people even with the same name")
}

func TestSameContributor_EmailThenName(t *testing.T) {
	a := &Person{GivenNames: "Jane", FamilyNames: "Doe", Email: "jane@example.org"}
	b := &Person{GivenNames: "Jane M.", FamilyNames: "Doe", Email: "jane@example.org"}
	assert.True(t, SameContributor(a, b), "same email is the same person")

	// distinct emails are not decisive, the name still matches
	c := &Person{GivenNames: "Jane", FamilyNames: "Doe", Email: "jd@other.org"}
	assert.True(t, SameContributor(a, c))

	d := &Person{GivenNames: "John", FamilyNames: "Doe"}
	assert.False(t, SameContributor(a, d))
}

func TestSameContributor_PersonEntityCrossType(t *testing.T) {
	p := &Person{GivenNames: "Jane", FamilyNames: "Doe", Email: "contact@lab.org"}
	e := &Entity{Name: "Some Lab", Email: "contact@lab.org"}
	assert.True(t, SameContributor(p, e), "shared email matches across person and entity")
}

func TestPerson_CFFMap_KeyOrder(t *testing.T) {
	p := &Person{
		GivenNames:  "Jane",
		FamilyNames: "Doe",
		Email:       "jane@example.org",
		Orcid:       "https://orcid.org/0000-0001-2345-6789",
	}

	// natural order by default
	m := p.CFFMap()
	assert.Equal(t, []string{"orcid", "email", "family-names", "given-names"}, document.MapKeys(m))

	// a key-order annotation reorders the serialized fields
	p.SetKeyOrder([]string{"family-names", "given-names", "email"})
	m = p.CFFMap()
	assert.Equal(t, []string{"family-names", "given-names", "email", "orcid"}, document.MapKeys(m))
}

func TestPersonFromMap_AcceptsDashedAndUnderscoredKeys(t *testing.T) {
	m := document.NewMap()
	m.Set("given_names", "Jane")
	m.Set("family-names", "Doe")
	m.Set("email", "jane@example.org")

	p := PersonFromMap(m)
	assert.Equal(t, "Jane", p.GivenNames)
	assert.Equal(t, "Doe", p.FamilyNames)
	assert.Equal(t, "jane@example.org", p.Email)
	assert.Equal(t, []string{"given_names", "family-names", "email"}, p.KeyOrder())
}

func TestPerson_Clone_IsIndependent(t *testing.T) {
	yes := true
	p := &Person{
		GivenNames: "Jane", FamilyNames: "Doe",
		PublicationAuthor: &yes,
		ContributionTypes: []string{"code"},
	}
	p.SetKeyOrder([]string{"email"})

	clone := p.Clone().(*Person)
	clone.GivenNames = "Janet"
	*clone.PublicationAuthor = false
	clone.ContributionTypes[0] = "doc"
	clone.SetKeyOrder([]string{"orcid"})

	assert.Equal(t, "Jane", p.GivenNames)
	assert.True(t, *p.PublicationAuthor)
	assert.Equal(t, []string{"code"}, p.ContributionTypes)
	assert.Equal(t, []string{"email"}, p.KeyOrder())
}

func TestPerson_IsPublicationAuthor(t *testing.T) {
	no := false
	assert.True(t, (&Person{Author: true}).IsPublicationAuthor(), "author implies publication author")
	assert.False(t, (&Person{Maintainer: true}).IsPublicationAuthor())
	assert.False(t, (&Person{PublicationAuthor: &no}).IsPublicationAuthor())
}

func TestPerson_Validate(t *testing.T) {
	valid := &Person{GivenNames: "Jane", FamilyNames: "Doe", Email: "jane@example.org"}
	require.NoError(t, valid.Validate())

	assert.Error(t, (&Person{FamilyNames: "Doe", Email: "a@b.cc"}).Validate())
	assert.Error(t, (&Person{GivenNames: "Jane", FamilyNames: "Doe", Email: "not-an-email"}).Validate())

	no := false
	contradiction := &Person{
		GivenNames: "Jane", FamilyNames: "Doe", Email: "jane@example.org",
		Author: true, PublicationAuthor: &no,
	}
	assert.Error(t, contradiction.Validate())
}

func TestEntity_ContributorID(t *testing.T) {
	e := &Entity{Name: "Some Lab", RorID: "https://ror.org/02nv7yv05", Website: "https://lab.org"}
	assert.Equal(t, "https://ror.org/02nv7yv05", e.ContributorID())

	noRor := &Entity{Name: "Some Lab", Website: "https://lab.org"}
	assert.Equal(t, "https://lab.org", noRor.ContributorID())
}

func TestEntity_CFFMap_RorFallsBackToWebsiteSlot(t *testing.T) {
	e := &Entity{Name: "Some Lab", RorID: "https://ror.org/02nv7yv05"}
	m := e.CFFMap()
	assert.Equal(t, "https://ror.org/02nv7yv05", document.GetString(m, "website"))
}
