package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entgraph.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[matching]
min_confidence = 0.4
enable_partial = true

[graph]
min_confidence = 0.7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	opts := cfg.ResolverOptions()
	assert.Equal(t, 0.4, opts.Match.MinConfidence)
	assert.True(t, opts.Match.EnablePartial)
	assert.Equal(t, 0.7, opts.GraphMinConfidence)

	// Untouched sections keep their defaults.
	assert.Equal(t, 3, opts.Match.MaxEditDistance)
	assert.Equal(t, 0.3, opts.Extraction.MinConfidence)
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	path := writeConfig(t, `
[matching]
medium_threshold = 0.9
high_threshold = 0.5
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadAliasGroup(t *testing.T) {
	path := writeConfig(t, `
[vocabulary]
organization_aliases = [["lonely"]]
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[matching\nmin_confidence = ")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestMergedVocabulary(t *testing.T) {
	cfg := Default()
	cfg.Vocabulary.Honorifics = []string{"Fr", "mr"}
	cfg.Vocabulary.ProfessionalTitles = map[string]string{"OT": "occupational_therapist"}
	cfg.Vocabulary.OrganizationAliases = [][]string{{"ico", "information commissioner's office"}}

	v := cfg.MergedVocabulary()
	assert.Contains(t, v.Honorifics, "fr")
	assert.Contains(t, v.Honorifics, "mr")
	assert.Equal(t, "occupational_therapist", v.ProfessionalTitles["ot"])
	assert.Equal(t, "doctor", v.ProfessionalTitles["dr"])
	assert.Contains(t, v.OrganizationAliases, []string{"ico", "information commissioner's office"})

	norm := cfg.Normalizer()
	assert.True(t, norm.HasProfessionalTitle("OT Davies"))
}

func TestMergedVocabularyDedupes(t *testing.T) {
	cfg := Default()
	before := len(cfg.MergedVocabulary().Honorifics)
	cfg.Vocabulary.Honorifics = []string{"MR", "  "}
	assert.Len(t, cfg.MergedVocabulary().Honorifics, before)
}
