// Package linkage proposes same-entity relationships between extracted name
// strings and tracks the human review decisions made on them.
package linkage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docketlab/entgraph/internal/core/match"
	"github.com/docketlab/entgraph/internal/core/model"
)

type Generator struct {
	matcher *match.Matcher
}

func NewGenerator(matcher *match.Matcher) *Generator {
	return &Generator{matcher: matcher}
}

const matchWorkers = 4

// Proposals matches every unordered name pair exactly once and emits a
// pending linkage for each accepted match, ranked by confidence descending.
// Duplicate input names collapse through the order-independent pair key.
// Pairs share no mutable state, so matching fans out over a small worker
// pool and the results are ordered afterwards.
func (g *Generator) Proposals(caseID string, names []string, opts match.Options) []model.EntityLinkage {
	type pair struct{ a, b string }
	seen := make(map[string]bool)
	var pairs []pair

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			key := model.PairKey(names[i], names[j])
			if seen[key] {
				continue
			}
			seen[key] = true
			if model.PairKey(names[i], names[i]) == key {
				// Same name twice is not a linkage.
				continue
			}
			pairs = append(pairs, pair{names[i], names[j]})
		}
	}

	results := make([]model.MatchResult, len(pairs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := matchWorkers
	if len(pairs) < workers {
		workers = len(pairs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = g.matcher.Match(pairs[i].a, pairs[i].b, opts)
			}
		}()
	}
	for i := range pairs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	now := time.Now().UTC()
	var proposals []model.EntityLinkage
	for i, result := range results {
		if !result.IsMatch {
			continue
		}
		proposals = append(proposals, model.EntityLinkage{
			ID:         uuid.New().String(),
			CaseID:     caseID,
			Entity1:    pairs[i].a,
			Entity2:    pairs[i].b,
			Confidence: result.Confidence,
			Algorithm:  result.Algorithm,
			Status:     model.StatusPending,
			CreatedAt:  now,
		})
	}

	sort.SliceStable(proposals, func(i, j int) bool {
		if proposals[i].Confidence != proposals[j].Confidence {
			return proposals[i].Confidence > proposals[j].Confidence
		}
		return model.PairKey(proposals[i].Entity1, proposals[i].Entity2) <
			model.PairKey(proposals[j].Entity1, proposals[j].Entity2)
	})
	return proposals
}
