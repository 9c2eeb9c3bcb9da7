// Package match scores whether two name strings refer to the same entity.
// Matching is a pure-function cascade: the first satisfying rule wins, which
// also defines the tie-break order between strategies.
package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docketlab/entgraph/internal/core/model"
	"github.com/docketlab/entgraph/internal/core/names"
)

// Hand-tuned cascade weights. Kept as named constants for behavioral
// compatibility with the tuning they encode.
const (
	variantBase       = 0.6
	variantRatioScale = 0.3
	variantMultiBonus = 0.1

	lastNameWeight    = 0.5
	firstNameWeight   = 0.35
	initialFirstScore = 0.35
	initialsFullBonus = 0.15
	initialsHalfBonus = 0.075

	partialPersonBase  = 0.5
	partialOrgBase     = 0.6
	partialRatioScale  = 0.2
)

const (
	partialMinPerson = 3
	partialMinOrg    = 4
)

type Matcher struct {
	norm *names.Normalizer
}

// New builds a Matcher around the given normalizer; vocabulary tables drive
// variant generation and the organization alias dictionary.
func New(norm *names.Normalizer) *Matcher {
	return &Matcher{norm: norm}
}

// Default returns a Matcher over the compiled-in vocabulary.
func Default() *Matcher {
	return New(names.Default())
}

// Match compares two names under opts, dispatching on opts.Kind.
// It is deterministic and symmetric in a and b.
func (m *Matcher) Match(a, b string, opts Options) model.MatchResult {
	if opts.Kind == KindOrganization {
		return m.MatchOrganizations(a, b, opts)
	}
	return m.MatchPersons(a, b, opts)
}

// MatchPersons runs the person cascade: exact, normalized, variant overlap,
// weighted name components, Levenshtein, then optional substring containment.
func (m *Matcher) MatchPersons(a, b string, opts Options) model.MatchResult {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return noMatch(opts, 0, "empty input")
	}

	if strings.EqualFold(a, b) {
		return matched(opts, 1, model.AlgorithmExact, "exact match", nil)
	}

	na := m.norm.NormalizeName(a)
	nb := m.norm.NormalizeName(b)
	if na == nb && na != "" {
		return matched(opts, 1, model.AlgorithmNormalized,
			fmt.Sprintf("identical after normalization (%q)", na), nil)
	}

	best := 0.0

	// Variant-set intersection.
	va := m.norm.NameVariants(a)
	vb := m.norm.NameVariants(b)
	if conf, shared, ok := variantScore(va, vb); ok {
		return matched(opts, conf, model.AlgorithmVariant,
			fmt.Sprintf("shared name variants: %s", strings.Join(shared, "; ")),
			map[string]string{"shared_variants": strconv.Itoa(len(shared))})
	}

	// Weighted component similarity.
	if conf, detail := m.componentScore(a, b); conf > 0 {
		if conf >= opts.MinConfidence {
			return matched(opts, conf, model.AlgorithmLevenshtein,
				"name components align", detail)
		}
		best = maxFloat(best, conf)
	}

	// Whole-string edit distance.
	dist := EditDistance(na, nb)
	sim := Similarity(na, nb)
	if dist <= opts.MaxEditDistance && sim >= opts.MinConfidence {
		return matched(opts, sim, model.AlgorithmLevenshtein,
			fmt.Sprintf("within %d edits", dist),
			map[string]string{"edit_distance": strconv.Itoa(dist)})
	}
	best = maxFloat(best, sim)

	if opts.EnablePartial {
		if conf, ok := partialScore(na, nb, partialMinPerson, partialPersonBase); ok {
			if conf >= opts.MinConfidence {
				return matched(opts, conf, model.AlgorithmPartial,
					"one name contains the other", nil)
			}
			best = maxFloat(best, conf)
		}
	}

	return noMatch(opts, best, "no strategy matched")
}

// MatchOrganizations runs the organization cascade: exact, normalized, the
// static alias dictionary, Levenshtein, then optional substring containment.
func (m *Matcher) MatchOrganizations(a, b string, opts Options) model.MatchResult {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return noMatch(opts, 0, "empty input")
	}

	if strings.EqualFold(a, b) {
		return matched(opts, 1, model.AlgorithmExact, "exact match", nil)
	}

	na := m.norm.NormalizeOrganization(a)
	nb := m.norm.NormalizeOrganization(b)
	if na == nb && na != "" {
		return matched(opts, 1, model.AlgorithmNormalized,
			fmt.Sprintf("identical after normalization (%q)", na), nil)
	}

	// Static alias dictionary; a hit forces full confidence.
	if group := m.norm.OrganizationAliases(a); group != nil {
		for _, alias := range group {
			if alias == nb {
				return matched(opts, 1, model.AlgorithmAlias,
					"known organization alias", nil)
			}
		}
	}

	best := 0.0

	dist := EditDistance(na, nb)
	sim := Similarity(na, nb)
	if dist <= opts.MaxEditDistance && sim >= opts.MinConfidence {
		return matched(opts, sim, model.AlgorithmLevenshtein,
			fmt.Sprintf("within %d edits", dist),
			map[string]string{"edit_distance": strconv.Itoa(dist)})
	}
	best = maxFloat(best, sim)

	if opts.EnablePartial {
		if conf, ok := partialScore(na, nb, partialMinOrg, partialOrgBase); ok {
			if conf >= opts.MinConfidence {
				return matched(opts, conf, model.AlgorithmPartial,
					"one name contains the other", nil)
			}
			best = maxFloat(best, conf)
		}
	}

	return noMatch(opts, best, "no strategy matched")
}

// variantScore computes the overlap confidence between two variant sets.
// matchRatio = |intersection| / max(|a|, |b|); a shared multi-token variant
// earns a fixed bonus.
func variantScore(va, vb []string) (float64, []string, bool) {
	if len(va) == 0 || len(vb) == 0 {
		return 0, nil, false
	}
	set := make(map[string]bool, len(va))
	for _, v := range va {
		set[v] = true
	}
	var shared []string
	multi := false
	for _, v := range vb {
		if set[v] {
			shared = append(shared, v)
			if len(strings.Fields(v)) >= 2 {
				multi = true
			}
		}
	}
	if len(shared) == 0 {
		return 0, nil, false
	}
	maxLen := len(va)
	if len(vb) > maxLen {
		maxLen = len(vb)
	}
	conf := variantBase + float64(len(shared))/float64(maxLen)*variantRatioScale
	if multi {
		conf += variantMultiBonus
	}
	return model.Clamp(conf), shared, true
}

// componentScore weighs last-name and first-name similarity separately, with
// a small bonus for matching initials. A bare initial against a full first
// name scores the full first-name weight directly.
func (m *Matcher) componentScore(a, b string) (float64, map[string]string) {
	lastA, lastB := m.norm.LastName(a), m.norm.LastName(b)
	firstA, firstB := m.norm.FirstName(a), m.norm.FirstName(b)
	if lastA == "" || lastB == "" {
		return 0, nil
	}

	lastSim := Similarity(lastA, lastB)
	score := lastSim * lastNameWeight

	firstScore := 0.0
	switch {
	case firstA == "" || firstB == "":
		// Single-token names carry no first-name evidence.
	case isInitialOf(firstA, firstB) || isInitialOf(firstB, firstA):
		firstScore = initialFirstScore
	default:
		firstScore = Similarity(firstA, firstB) * firstNameWeight
	}
	score += firstScore

	initA, initB := m.norm.Initials(a), m.norm.Initials(b)
	switch {
	case initA != "" && initA == initB:
		score += initialsFullBonus
	case initA != "" && initB != "" && initA[0] == initB[0]:
		score += initialsHalfBonus
	}

	return model.Clamp(score), map[string]string{
		"strategy":             "components",
		"last_name_similarity": fmt.Sprintf("%.2f", lastSim),
	}
}

func isInitialOf(short, full string) bool {
	return len(short) == 1 && len(full) > 1 && short[0] == full[0]
}

// partialScore scores substring containment of the shorter name in the
// longer one, gated on a minimum length for the shorter side.
func partialScore(na, nb string, minLen int, base float64) (float64, bool) {
	short, long := na, nb
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) < minLen || len(long) == 0 || !strings.Contains(long, short) {
		return 0, false
	}
	ratio := float64(len(short)) / float64(len(long))
	return model.Clamp(base + ratio*partialRatioScale), true
}

func matched(opts Options, conf float64, algo model.MatchAlgorithm, explanation string, details map[string]string) model.MatchResult {
	conf = model.Clamp(conf)
	return model.MatchResult{
		IsMatch:         conf >= opts.MinConfidence,
		Confidence:      conf,
		ConfidenceLevel: opts.Level(conf),
		Algorithm:       algo,
		Explanation:     explanation,
		Details:         details,
	}
}

// noMatch still reports the best score seen so far rather than silently
// resetting to zero.
func noMatch(opts Options, best float64, explanation string) model.MatchResult {
	best = model.Clamp(best)
	return model.MatchResult{
		IsMatch:         false,
		Confidence:      best,
		ConfidenceLevel: opts.Level(best),
		Algorithm:       "",
		Explanation:     explanation,
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
