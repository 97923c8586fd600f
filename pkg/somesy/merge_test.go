package somesy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func person(given, family, email string) *Person {
	return &Person{GivenNames: given, FamilyNames: family, Email: email}
}

func fullNames(cs []Contributor) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.FullName()
	}
	return out
}

func TestMergeContributors_AddAndRemove(t *testing.T) {
	existing := []Contributor{
		person("Jane", "Doe", "jane@example.org"),
		person("Old", "Timer", "old@example.org"),
	}
	incoming := []Contributor{
		person("Jane", "Doe", "jane@example.org"),
		person("New", "Comer", "new@example.org"),
	}

	merged := MergeContributors(existing, incoming, nil)
	assert.Equal(t, []string{"Jane Doe", "New Comer"}, fullNames(merged))
}

func TestMergeContributors_PreservesPositionOnUpdate(t *testing.T) {
	existing := []Contributor{
		person("First", "Author", "first@example.org"),
		person("Second", "Author", "second@example.org"),
		person("Third", "Author", "third@example.org"),
	}
	// update the middle record only
	update := person("Second", "Author", "second@example.org")
	update.Orcid = "https://orcid.org/0000-0001-2345-6789"

	merged := MergeContributors(existing, []Contributor{
		existing[0].Clone(), update, existing[2].Clone(),
	}, nil)

	require.Len(t, merged, 3)
	assert.Equal(t, "Second Author", merged[1].FullName())
	assert.Equal(t, "https://orcid.org/0000-0001-2345-6789", merged[1].ContributorID())
}

func TestMergeContributors_RenameViaOrcid(t *testing.T) {
	orcid := "https://orcid.org/0000-0001-2345-6789"
	old := person("Jane", "Doe", "jane@example.org")
	old.Orcid = orcid
	renamed := person("Jane", "Doe-Smith", "jane@example.org")
	renamed.Orcid = orcid

	merged := MergeContributors([]Contributor{old}, []Contributor{renamed}, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "Jane Doe-Smith", merged[0].FullName())
}

func TestMergeContributors_PartialUpdateKeepsExistingFields(t *testing.T) {
	old := person("Jane", "Doe", "jane@example.org")
	old.Affiliation = "Some Lab"
	// the incoming record knows nothing about the affiliation
	incoming := person("Jane", "Doe", "jane@example.org")
	incoming.Orcid = "https://orcid.org/0000-0001-2345-6789"

	merged := MergeContributors([]Contributor{old}, []Contributor{incoming}, nil)
	require.Len(t, merged, 1)
	got := merged[0].(*Person)
	assert.Equal(t, "Some Lab", got.Affiliation)
	assert.Equal(t, "https://orcid.org/0000-0001-2345-6789", got.Orcid)
}

func TestMergeContributors_KeyOrderSurvivesUpdate(t *testing.T) {
	old := person("Jane", "Doe", "jane@example.org")
	old.SetKeyOrder([]string{"family-names", "given-names", "email"})
	incoming := person("Jane", "Doe", "jane@example.org")
	incoming.Orcid = "https://orcid.org/0000-0001-2345-6789"

	merged := MergeContributors([]Contributor{old}, []Contributor{incoming}, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, []string{"family-names", "given-names", "email"}, merged[0].KeyOrder())
}

func TestMergeContributors_Idempotent(t *testing.T) {
	existing := []Contributor{
		person("Jane", "Doe", "jane@example.org"),
		person("Old", "Timer", "old@example.org"),
	}
	incoming := []Contributor{
		person("Jane", "Doe-Smith", "jane@example.org"),
		person("New", "Comer", "new@example.org"),
	}

	once := MergeContributors(existing, incoming, nil)
	twice := MergeContributors(once, incoming, nil)
	assert.Equal(t, fullNames(once), fullNames(twice))
	assert.Equal(t, once, twice)
}

func TestMergeContributors_DuplicatesInOldBothUpdated(t *testing.T) {
	// two records for the same party already in the target
	a := person("Jane", "Doe", "jane@example.org")
	b := person("Jane", "Doe", "jane@other.org")
	incoming := person("Jane", "Doe", "jane@example.org")
	incoming.Orcid = "https://orcid.org/0000-0001-2345-6789"

	merged := MergeContributors([]Contributor{a, b}, []Contributor{incoming}, nil)
	// both old records match (one by email, one by name) and are kept
	require.Len(t, merged, 2)
	assert.Equal(t, "https://orcid.org/0000-0001-2345-6789", merged[0].ContributorID())
	assert.Equal(t, "https://orcid.org/0000-0001-2345-6789", merged[1].ContributorID())
}

func TestMergeContributors_CrossTypeReplacement(t *testing.T) {
	old := person("Some", "Lab", "contact@lab.org")
	entity := &Entity{Name: "Some Lab", Email: "contact@lab.org", RorID: "https://ror.org/02nv7yv05"}

	merged := MergeContributors([]Contributor{old}, []Contributor{entity}, nil)
	require.Len(t, merged, 1)
	got, ok := merged[0].(*Entity)
	require.True(t, ok, "matching entity replaces the person record")
	assert.Equal(t, "https://ror.org/02nv7yv05", got.RorID)
}

func TestMergeContributors_DoesNotMutateInputs(t *testing.T) {
	old := person("Jane", "Doe", "jane@example.org")
	incoming := person("Jane", "Doe", "jane@example.org")
	incoming.Orcid = "https://orcid.org/0000-0001-2345-6789"

	MergeContributors([]Contributor{old}, []Contributor{incoming}, nil)
	assert.Empty(t, old.Orcid, "existing records must not be mutated in place")
}
