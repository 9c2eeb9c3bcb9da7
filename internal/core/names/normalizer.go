// Package names canonicalizes inconsistently written person and organization
// names and generates the variant forms the fuzzy matcher compares on.
// Every function is total: any string, including empty input, yields a result.
package names

import (
	"sort"
	"strings"
)

type Normalizer struct {
	vocab      Vocabulary
	titles     map[string]bool
	profTitles map[string]string
	titleKeys  []string
	roleKeys   []string
	orgSuffix  map[string]bool
	orgAlias   map[string][]string
	regBodies  map[string]bool
}

// New builds a Normalizer around the given vocabulary tables.
func New(vocab Vocabulary) *Normalizer {
	n := &Normalizer{
		vocab:      vocab,
		titles:     make(map[string]bool),
		profTitles: make(map[string]string),
		orgSuffix:  make(map[string]bool),
		orgAlias:   make(map[string][]string),
		regBodies:  make(map[string]bool),
	}
	for _, t := range vocab.Honorifics {
		n.titles[strings.ToLower(t)] = true
	}
	for t, role := range vocab.ProfessionalTitles {
		t = strings.ToLower(t)
		n.profTitles[t] = role
		n.titleKeys = append(n.titleKeys, t)
		if !strings.Contains(t, " ") {
			n.titles[t] = true
		}
	}
	sort.Strings(n.titleKeys)
	for key := range vocab.RoleKeywords {
		n.roleKeys = append(n.roleKeys, strings.ToLower(key))
	}
	// Longest keyword first so "district judge" wins over "judge".
	sort.Slice(n.roleKeys, func(i, j int) bool {
		if len(n.roleKeys[i]) != len(n.roleKeys[j]) {
			return len(n.roleKeys[i]) > len(n.roleKeys[j])
		}
		return n.roleKeys[i] < n.roleKeys[j]
	})
	for _, s := range vocab.OrganizationSuffixes {
		n.orgSuffix[strings.ToLower(s)] = true
	}
	for _, group := range vocab.OrganizationAliases {
		normalized := make([]string, 0, len(group))
		for _, member := range group {
			normalized = append(normalized, strings.ToLower(member))
		}
		for _, member := range normalized {
			n.orgAlias[member] = normalized
		}
	}
	for _, b := range vocab.RegistrationBodies {
		n.regBodies[strings.ToLower(b)] = true
	}
	return n
}

// Default returns a Normalizer over the compiled-in vocabulary.
func Default() *Normalizer {
	return New(DefaultVocabulary())
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '\'' || c >= 0x80
}

// Tokens lowercases s and splits it on punctuation and whitespace.
// Hyphens and apostrophes stay inside tokens.
func Tokens(s string) []string {
	s = strings.ToLower(s)
	var tokens []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isWordByte(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// nameTokens returns the tokens of s with recognized titles removed. If
// stripping would leave nothing, the full token list is returned so that
// title-only strings still normalize to something comparable.
func (n *Normalizer) nameTokens(s string) []string {
	all := Tokens(s)
	kept := make([]string, 0, len(all))
	for _, t := range all {
		if n.titles[t] {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return all
	}
	return kept
}

// NormalizeName lowercases s, strips honorifics and professional titles, and
// collapses whitespace and punctuation to single spaces.
func (n *Normalizer) NormalizeName(s string) string {
	return strings.Join(n.nameTokens(s), " ")
}

// FirstName returns the first non-title token of s.
func (n *Normalizer) FirstName(s string) string {
	tokens := n.nameTokens(s)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// LastName returns the last non-title token of s.
func (n *Normalizer) LastName(s string) string {
	tokens := n.nameTokens(s)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// Initials concatenates the first letter of each non-title token.
func (n *Normalizer) Initials(s string) string {
	var b strings.Builder
	for _, t := range n.nameTokens(s) {
		b.WriteByte(t[0])
	}
	return b.String()
}

// NameVariants generates the alternate forms of a person name used for
// overlap-based matching: the full normalized name, last name only,
// first-initial + last, last + first-initial, and "last, first".
// Single-token names produce only themselves.
func (n *Normalizer) NameVariants(s string) []string {
	tokens := n.nameTokens(s)
	if len(tokens) == 0 {
		return nil
	}
	full := strings.Join(tokens, " ")
	if len(tokens) == 1 {
		return []string{full}
	}
	first := tokens[0]
	last := tokens[len(tokens)-1]
	seen := make(map[string]bool)
	var variants []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	add(full)
	add(last)
	add(first[:1] + " " + last)
	add(last + " " + first[:1])
	add(last + ", " + first)
	return variants
}

// HasProfessionalTitle reports whether any token of s is a recognized
// professional title.
func (n *Normalizer) HasProfessionalTitle(s string) bool {
	return n.RoleForTitle(s) != ""
}

// RoleForTitle returns the role implied by a professional title inside s,
// or "" when none is present.
func (n *Normalizer) RoleForTitle(s string) string {
	padded := " " + strings.Join(Tokens(s), " ") + " "
	for _, title := range n.titleKeys {
		if strings.Contains(padded, " "+title+" ") {
			return n.profTitles[title]
		}
	}
	return ""
}

// HasTitle reports whether any token of s is a recognized title of either
// kind (honorific or professional).
func (n *Normalizer) HasTitle(s string) bool {
	for _, t := range Tokens(s) {
		if n.titles[t] {
			return true
		}
	}
	return false
}

// DetectRole scans a sentence for role-vocabulary keywords and returns the
// mapped role, or "" when nothing matches. Longer keywords take precedence.
func (n *Normalizer) DetectRole(sentence string) string {
	padded := " " + strings.Join(Tokens(sentence), " ") + " "
	for _, key := range n.roleKeys {
		if strings.Contains(padded, " "+key+" ") {
			return n.vocab.RoleKeywords[key]
		}
	}
	return ""
}

// IsCourtName reports whether s contains a court-vocabulary keyword.
func (n *Normalizer) IsCourtName(s string) bool {
	padded := " " + strings.Join(Tokens(s), " ") + " "
	for _, key := range n.vocab.CourtKeywords {
		if strings.Contains(padded, " "+key+" ") {
			return true
		}
	}
	return false
}

// NormalizeOrganization lowercases s, strips punctuation, and drops trailing
// corporate-form suffixes.
func (n *Normalizer) NormalizeOrganization(s string) string {
	tokens := Tokens(s)
	for len(tokens) > 1 && n.orgSuffix[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// OrganizationAliases returns the static alias group containing s, or nil
// when s has no known aliases. The lookup is on the normalized form.
func (n *Normalizer) OrganizationAliases(s string) []string {
	return n.orgAlias[n.NormalizeOrganization(s)]
}

// RegistrationBody returns the first regulatory-body acronym appearing in
// text, uppercased, or "" when none is present.
func (n *Normalizer) RegistrationBody(text string) string {
	for _, t := range Tokens(text) {
		if n.regBodies[t] {
			return strings.ToUpper(t)
		}
	}
	return ""
}
