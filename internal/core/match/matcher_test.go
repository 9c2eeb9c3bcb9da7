package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docketlab/entgraph/internal/core/model"
)

func TestMatchTitleVariant(t *testing.T) {
	m := Default()

	result := m.MatchPersons("Dr. John Smith", "J. Smith", DefaultOptions())
	assert.True(t, result.IsMatch)
	assert.Equal(t, model.AlgorithmVariant, result.Algorithm)
	assert.GreaterOrEqual(t, result.Confidence, 0.6)
}

func TestMatchSurnameOnly(t *testing.T) {
	m := Default()

	result := m.MatchPersons("Dr. Smith", "John Smith", DefaultOptions())
	assert.True(t, result.IsMatch)
	assert.GreaterOrEqual(t, result.Confidence, 0.6)
}

func TestMatchNormalizedEquality(t *testing.T) {
	m := Default()

	result := m.MatchPersons("Dr. John Smith", "John Smith", DefaultOptions())
	assert.True(t, result.IsMatch)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, model.AlgorithmNormalized, result.Algorithm)
	assert.Equal(t, model.ConfidenceHigh, result.ConfidenceLevel)
}

func TestMatchExact(t *testing.T) {
	m := Default()

	result := m.MatchPersons("John Smith", "john smith", DefaultOptions())
	assert.True(t, result.IsMatch)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, model.AlgorithmExact, result.Algorithm)
}

func TestMatchRejectsUnrelatedNames(t *testing.T) {
	m := Default()

	result := m.MatchPersons("John Smith", "Jane Doe", DefaultOptions())
	assert.False(t, result.IsMatch)
	assert.Equal(t, model.MatchAlgorithm(""), result.Algorithm)
	// Best score seen during the cascade is kept, not reset to zero.
	assert.Greater(t, result.Confidence, 0.0)
}

func TestMatchEmptyInput(t *testing.T) {
	m := Default()

	for _, pair := range [][2]string{{"", "John Smith"}, {"John Smith", ""}, {"", ""}, {"   ", "x"}} {
		result := m.MatchPersons(pair[0], pair[1], DefaultOptions())
		assert.False(t, result.IsMatch)
		assert.Equal(t, 0.0, result.Confidence)
		assert.Equal(t, model.ConfidenceNoMatch, result.ConfidenceLevel)
	}
}

func TestMatchOrganizationAlias(t *testing.T) {
	m := Default()
	opts := DefaultOptions()
	opts.Kind = KindOrganization

	result := m.Match("FBI", "Federal Bureau of Investigation", opts)
	assert.True(t, result.IsMatch)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, model.AlgorithmAlias, result.Algorithm)
}

func TestMatchOrganizationSuffix(t *testing.T) {
	m := Default()
	opts := DefaultOptions()
	opts.Kind = KindOrganization

	result := m.Match("Acme Ltd", "Acme Limited", opts)
	assert.True(t, result.IsMatch)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, model.AlgorithmNormalized, result.Algorithm)
}

func TestMatchLevenshteinTypo(t *testing.T) {
	m := Default()

	result := m.MatchPersons("Jonathan Smithe", "Jonathan Smith", DefaultOptions())
	assert.True(t, result.IsMatch)
	assert.Greater(t, result.Confidence, 0.8)
}

func TestMatchPartialOptIn(t *testing.T) {
	m := Default()
	opts := DefaultOptions()

	def := m.MatchOrganizations("Children Services", "Hampshire Children Services Department", opts)
	assert.False(t, def.IsMatch)

	opts.Kind = KindOrganization
	opts.EnablePartial = true
	result := m.Match("Children Services", "Hampshire Children Services Department", opts)
	assert.True(t, result.IsMatch)
	assert.Equal(t, model.AlgorithmPartial, result.Algorithm)
	assert.GreaterOrEqual(t, result.Confidence, 0.6)
}

func TestMatchDeterminism(t *testing.T) {
	m := Default()
	opts := DefaultOptions()

	first := m.MatchPersons("Dr. John Smith", "J. Smith", opts)
	for i := 0; i < 10; i++ {
		again := m.MatchPersons("Dr. John Smith", "J. Smith", opts)
		assert.Equal(t, first, again)
	}
}

func TestMatchSymmetry(t *testing.T) {
	m := Default()
	opts := DefaultOptions()
	opts.EnablePartial = true

	pairs := [][2]string{
		{"John Smith", "John Smith"},
		{"Dr. John Smith", "J. Smith"},
		{"Jonathan Smithe", "Jonathan Smith"},
		{"John Smith", "Jane Doe"},
		{"Smith", "John Smith"},
	}
	for _, pair := range pairs {
		ab := m.MatchPersons(pair[0], pair[1], opts)
		ba := m.MatchPersons(pair[1], pair[0], opts)
		assert.Equal(t, ab.Confidence, ba.Confidence,
			"asymmetric confidence for %q / %q", pair[0], pair[1])
		assert.Equal(t, ab.IsMatch, ba.IsMatch)
	}
}

func TestSimilarityBoundaries(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("smith", "smith"))
	assert.Equal(t, 0.0, Similarity("", "y"))
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarityMonotonicity(t *testing.T) {
	// For fixed-length strings, more edits never increases similarity.
	base := "abcdef"
	variants := []string{"abcdef", "abcdeX", "abcdXY", "abcXYZ"}
	prev := 2.0
	for _, v := range variants {
		sim := Similarity(base, v)
		assert.LessOrEqual(t, sim, prev, "similarity rose at %q", v)
		prev = sim
	}
}

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"smith", "smyth", 1},
		{"smith", "smith", 0},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%s", tc.a, tc.b), func(t *testing.T) {
			assert.Equal(t, tc.want, EditDistance(tc.a, tc.b))
			assert.Equal(t, tc.want, EditDistance(tc.b, tc.a))
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())

	bad := DefaultOptions()
	bad.MinConfidence = 1.5
	assert.Error(t, bad.Validate())

	bad = DefaultOptions()
	bad.MaxEditDistance = -1
	assert.Error(t, bad.Validate())

	bad = DefaultOptions()
	bad.MediumThreshold = 0.9 // above high
	assert.Error(t, bad.Validate())

	bad = DefaultOptions()
	bad.Kind = "place"
	assert.Error(t, bad.Validate())
}
