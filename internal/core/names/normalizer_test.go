package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNameStripsTitles(t *testing.T) {
	n := Default()

	assert.Equal(t, "john smith", n.NormalizeName("Dr. John Smith"))
	assert.Equal(t, "smith", n.NormalizeName("Mr Smith"))
	assert.Equal(t, "jane o'brien", n.NormalizeName("  Prof.   Jane   O'Brien "))
}

func TestNormalizeNameTitleOnlyInput(t *testing.T) {
	n := Default()

	// Stripping must not erase the whole string.
	assert.Equal(t, "dr", n.NormalizeName("Dr."))
	assert.Equal(t, "", n.NormalizeName(""))
	assert.Equal(t, "", n.NormalizeName("   ...   "))
}

func TestNameVariants(t *testing.T) {
	n := Default()

	variants := n.NameVariants("Dr. John Smith")
	assert.ElementsMatch(t, []string{
		"john smith", "smith", "j smith", "smith j", "smith, john",
	}, variants)

	assert.Equal(t, []string{"smith"}, n.NameVariants("Smith"))
	assert.Empty(t, n.NameVariants(""))
}

func TestNameVariantsOverlapForInitialForm(t *testing.T) {
	n := Default()

	a := n.NameVariants("Dr. John Smith")
	b := n.NameVariants("J. Smith")

	shared := make(map[string]bool)
	for _, v := range a {
		shared[v] = true
	}
	var overlap []string
	for _, v := range b {
		if shared[v] {
			overlap = append(overlap, v)
		}
	}
	assert.ElementsMatch(t, []string{"j smith", "smith", "smith j"}, overlap)
}

func TestPositionalExtraction(t *testing.T) {
	n := Default()

	assert.Equal(t, "john", n.FirstName("Dr. John Smith"))
	assert.Equal(t, "smith", n.LastName("Dr. John Smith"))
	assert.Equal(t, "js", n.Initials("Dr. John Smith"))
	assert.Equal(t, "", n.FirstName(""))
	assert.Equal(t, "", n.Initials(""))
}

func TestDetectRole(t *testing.T) {
	n := Default()

	assert.Equal(t, "social_worker", n.DetectRole("The social worker visited on Tuesday"))
	assert.Equal(t, "adjudicator", n.DetectRole("District Judge Brown presided"))
	assert.Equal(t, "social_worker", n.DetectRole("SW Jones"))
	assert.Equal(t, "", n.DetectRole("nothing relevant here"))
	assert.Equal(t, "", n.DetectRole(""))
}

func TestRoleForTitle(t *testing.T) {
	n := Default()

	assert.Equal(t, "social_worker", n.RoleForTitle("SW Jones"))
	assert.Equal(t, "doctor", n.RoleForTitle("Dr. John Smith"))
	assert.Equal(t, "", n.RoleForTitle("John Smith"))
}

func TestIsCourtName(t *testing.T) {
	n := Default()

	assert.True(t, n.IsCourtName("the Family Court"))
	assert.True(t, n.IsCourtName("Westminster Magistrates"))
	assert.False(t, n.IsCourtName("Smith Holdings"))
}

func TestNormalizeOrganization(t *testing.T) {
	n := Default()

	assert.Equal(t, "acme", n.NormalizeOrganization("Acme Ltd."))
	assert.Equal(t, "smith holdings", n.NormalizeOrganization("Smith Holdings LLP"))
	// Suffix-only input keeps its last token.
	assert.Equal(t, "ltd", n.NormalizeOrganization("Ltd"))
}

func TestOrganizationAliases(t *testing.T) {
	n := Default()

	group := n.OrganizationAliases("FBI")
	assert.Contains(t, group, "federal bureau of investigation")
	assert.Contains(t, group, "fbi")

	assert.Equal(t, group, n.OrganizationAliases("Federal Bureau of Investigation"))
	assert.Nil(t, n.OrganizationAliases("Smith Holdings"))
}

func TestRegistrationBody(t *testing.T) {
	n := Default()

	assert.Equal(t, "HCPC", n.RegistrationBody("registered with the HCPC since 2019"))
	assert.Equal(t, "", n.RegistrationBody("no regulator mentioned"))
}

func TestCustomVocabulary(t *testing.T) {
	vocab := DefaultVocabulary()
	vocab.OrganizationAliases = append(vocab.OrganizationAliases,
		[]string{"dwp", "department for work and pensions"})
	n := New(vocab)

	assert.Contains(t, n.OrganizationAliases("DWP"), "department for work and pensions")
}
