package extraction

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docketlab/entgraph/internal/core/names"
)

// GroupingOptions controls how mentions are merged into entities.
type GroupingOptions struct {
	// RequireDocumentOverlap gates variant-only merges: two mentions whose
	// only evidence is variant intersection merge only when they come from
	// the same document. Normalization equality always merges. Off by
	// default, preserving the engine's observed recall.
	RequireDocumentOverlap bool
}

// unionFind is a standard disjoint-set over mention indices. Using an
// explicit equivalence relation makes grouping independent of mention
// iteration order.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri == rj {
		return
	}
	if u.rank[ri] < u.rank[rj] {
		ri, rj = rj, ri
	}
	u.parent[rj] = ri
	if u.rank[ri] == u.rank[rj] {
		u.rank[ri]++
	}
}

// groupMentions partitions mentions into same-entity clusters. Two mentions
// are unioned when their normalized forms are equal, or when their variant
// sets intersect (subject to GroupingOptions). Groups are returned as index
// slices in first-appearance order, with each group's members ordered by
// input index.
func groupMentions(norm *names.Normalizer, mentions []scoredMention, opts GroupingOptions) ([][]int, []string) {
	if len(mentions) == 0 {
		return nil, nil
	}

	normalized := make([]string, len(mentions))
	variants := make([]map[string]bool, len(mentions))
	for i, m := range mentions {
		normalized[i] = m.NormalizedText
		set := make(map[string]bool)
		for _, v := range norm.NameVariants(m.Text) {
			set[v] = true
		}
		variants[i] = set
	}

	u := newUnionFind(len(mentions))
	var variantPairs [][2]int
	for i := 0; i < len(mentions); i++ {
		for j := i + 1; j < len(mentions); j++ {
			if normalized[i] == normalized[j] && normalized[i] != "" {
				u.union(i, j)
				continue
			}
			if !intersects(variants[i], variants[j]) {
				continue
			}
			if opts.RequireDocumentOverlap &&
				mentions[i].DocumentID != mentions[j].DocumentID {
				continue
			}
			u.union(i, j)
			variantPairs = append(variantPairs, [2]int{i, j})
		}
	}

	// Roots move as unions proceed, so variant-only merges are flagged
	// against the final roots only after the relation is complete.
	variantOnly := make(map[int]bool)
	for _, pair := range variantPairs {
		variantOnly[u.find(pair[0])] = true
	}

	groups := make(map[int][]int)
	var order []int
	for i := range mentions {
		root := u.find(i)
		if _, seen := groups[root]; !seen {
			order = append(order, root)
		}
		groups[root] = append(groups[root], i)
	}

	var diagnostics []string
	result := make([][]int, 0, len(order))
	for _, root := range order {
		members := groups[root]
		result = append(result, members)
		if !variantOnly[root] {
			continue
		}
		forms := distinctForms(normalized, members)
		if len(forms) >= 3 {
			diagnostics = append(diagnostics, fmt.Sprintf(
				"variant-overlap chain merged %d distinct forms: %s",
				len(forms), strings.Join(forms, "; ")))
		}
	}
	return result, diagnostics
}

func intersects(a, b map[string]bool) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for v := range a {
		if b[v] {
			return true
		}
	}
	return false
}

func distinctForms(normalized []string, members []int) []string {
	seen := make(map[string]bool)
	var forms []string
	for _, i := range members {
		if !seen[normalized[i]] {
			seen[normalized[i]] = true
			forms = append(forms, normalized[i])
		}
	}
	sort.Strings(forms)
	return forms
}
