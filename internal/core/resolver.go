// Package core composes extraction, matching and linkage generation into
// whole-case entity resolution.
package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/docketlab/entgraph/internal/core/extraction"
	"github.com/docketlab/entgraph/internal/core/linkage"
	"github.com/docketlab/entgraph/internal/core/match"
	"github.com/docketlab/entgraph/internal/core/model"
)

const extractionMethod = "tagger+rules"

// Options bundles the per-run tuning for a resolution.
type Options struct {
	Extraction extraction.Options
	Match      match.Options

	// GraphMinConfidence is the visualization cut for graph edges. It is
	// independent of the matcher's acceptance floor: linkages below it
	// stay in the result but are not drawn.
	GraphMinConfidence float64
}

func DefaultOptions() Options {
	return Options{
		Extraction:         extraction.DefaultOptions(),
		Match:              match.DefaultOptions(),
		GraphMinConfidence: 0.5,
	}
}

// Validate rejects out-of-range option values before any work runs.
func (o Options) Validate() error {
	if err := o.Extraction.Validate(); err != nil {
		return fmt.Errorf("extraction options: %w", err)
	}
	if err := o.Match.Validate(); err != nil {
		return fmt.Errorf("match options: %w", err)
	}
	if o.GraphMinConfidence < 0 || o.GraphMinConfidence > 1 {
		return fmt.Errorf("graph min confidence %v outside [0,1]", o.GraphMinConfidence)
	}
	return nil
}

// Resolver runs cross-document entity resolution for a case.
type Resolver struct {
	extractor *extraction.Extractor
	generator *linkage.Generator
	logger    *zap.Logger
}

// NewResolver wires a resolver from its collaborators. A nil logger
// disables logging.
func NewResolver(extractor *extraction.Extractor, generator *linkage.Generator, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		extractor: extractor,
		generator: generator,
		logger:    logger.Named("resolver"),
	}
}

// ResolveEntities extracts entities from every document in the case, matches
// the resulting names pairwise into linkage proposals, and assembles the
// review graph. An empty document set yields an empty result, not an error.
// Inputs are immutable snapshots; every run recomputes from scratch.
func (r *Resolver) ResolveEntities(ctx context.Context, documents []model.Document, caseID string, opts Options) model.ResolutionResult {
	start := time.Now()

	extracted := r.extractor.ExtractFromDocuments(ctx, documents, opts.Extraction)
	if len(extracted.FailedDocuments) > 0 {
		r.logger.Warn("documents failed extraction",
			zap.String("case_id", caseID),
			zap.Strings("document_ids", extracted.FailedDocuments))
	}

	entities := resolveDocuments(extracted.Entities)
	linkages := r.proposeLinkages(caseID, entities, opts.Match)
	graph := buildGraph(entities, linkages, opts.GraphMinConfidence)

	result := model.ResolutionResult{
		Entities: entities,
		Linkages: linkages,
		Graph:    graph,
		Summary:  summarize(entities, linkages, opts.Match),
		Metadata: model.ResolutionMetadata{
			CaseID:           caseID,
			DocumentCount:    len(documents),
			TextLength:       extracted.TextLength,
			Duration:         time.Since(start),
			ExtractionMethod: extractionMethod,
			FuzzyMatching:    len(entities) > 1,
			FailedDocuments:  extracted.FailedDocuments,
			Diagnostics:      extracted.Diagnostics,
		},
	}

	r.logger.Info("case resolved",
		zap.String("case_id", caseID),
		zap.Int("documents", len(documents)),
		zap.Int("entities", len(entities)),
		zap.Int("linkages", len(linkages)),
		zap.Duration("duration", result.Metadata.Duration))
	return result
}

// resolveDocuments lifts extracted entities into cross-document canonical
// records, collecting the distinct document ids their mentions span.
func resolveDocuments(extracted []model.ExtractedEntity) []model.ResolvedEntity {
	resolved := make([]model.ResolvedEntity, 0, len(extracted))
	for _, entity := range extracted {
		seen := make(map[string]bool)
		var docIDs []string
		for _, mention := range entity.Mentions {
			if mention.DocumentID != "" && !seen[mention.DocumentID] {
				seen[mention.DocumentID] = true
				docIDs = append(docIDs, mention.DocumentID)
			}
		}
		sort.Strings(docIDs)
		resolved = append(resolved, model.ResolvedEntity{
			ExtractedEntity: entity,
			DocumentIDs:     docIDs,
			MentionCount:    len(entity.Mentions),
		})
	}
	return resolved
}

// proposeLinkages gathers candidate names from canonical names and aliases,
// matching person-like entities with the person cascade and the rest with
// the organization cascade. Pairs inside one entity still surface here;
// buildGraph collapses them, but the linkage list keeps them for review.
func (r *Resolver) proposeLinkages(caseID string, entities []model.ResolvedEntity, opts match.Options) []model.EntityLinkage {
	var personNames, orgNames []string
	seenPerson := make(map[string]bool)
	seenOrg := make(map[string]bool)

	for _, entity := range entities {
		for _, name := range append([]string{entity.CanonicalName}, entity.Aliases...) {
			key := strings.ToLower(name)
			switch entity.Type {
			case model.TypeOrganization, model.TypeCourt:
				if !seenOrg[key] {
					seenOrg[key] = true
					orgNames = append(orgNames, name)
				}
			default:
				if !seenPerson[key] {
					seenPerson[key] = true
					personNames = append(personNames, name)
				}
			}
		}
	}

	personOpts := opts
	personOpts.Kind = match.KindPerson
	orgOpts := opts
	orgOpts.Kind = match.KindOrganization

	linkages := r.generator.Proposals(caseID, personNames, personOpts)
	linkages = append(linkages, r.generator.Proposals(caseID, orgNames, orgOpts)...)

	sort.SliceStable(linkages, func(i, j int) bool {
		if linkages[i].Confidence != linkages[j].Confidence {
			return linkages[i].Confidence > linkages[j].Confidence
		}
		return model.PairKey(linkages[i].Entity1, linkages[i].Entity2) <
			model.PairKey(linkages[j].Entity1, linkages[j].Entity2)
	})
	return linkages
}

// buildGraph emits one node per resolved entity and one edge per linkage
// clearing the visualization cut. Linkages between two names of the same
// entity produce no edge.
func buildGraph(entities []model.ResolvedEntity, linkages []model.EntityLinkage, minConfidence float64) model.EntityGraphData {
	nodes := make([]model.GraphNode, 0, len(entities))
	byName := make(map[string]string)
	for _, entity := range entities {
		nodes = append(nodes, model.GraphNode{
			ID:           entity.ID,
			Name:         entity.CanonicalName,
			Type:         entity.Type,
			Role:         entity.Role,
			Aliases:      entity.Aliases,
			MentionCount: entity.MentionCount,
			DocumentIDs:  entity.DocumentIDs,
			Confidence:   entity.Confidence,
		})
		for _, alias := range append([]string{entity.CanonicalName}, entity.Aliases...) {
			key := strings.ToLower(alias)
			if _, taken := byName[key]; !taken {
				byName[key] = entity.ID
			}
		}
	}

	var edges []model.GraphEdge
	for _, l := range linkages {
		if l.Confidence < minConfidence {
			continue
		}
		source := byName[strings.ToLower(l.Entity1)]
		target := byName[strings.ToLower(l.Entity2)]
		if source == "" || target == "" || source == target {
			continue
		}
		edges = append(edges, model.GraphEdge{
			ID:         l.ID,
			Source:     source,
			Target:     target,
			Confidence: l.Confidence,
			Algorithm:  l.Algorithm,
		})
	}

	return model.EntityGraphData{
		Nodes: nodes,
		Edges: edges,
		Metadata: model.GraphMetadata{
			NodeCount: len(nodes),
			EdgeCount: len(edges),
			Directed:  false,
			CreatedAt: time.Now().UTC(),
		},
	}
}

// keyPartyRoles are the proceeding roles whose holders count as key parties.
var keyPartyRoles = map[string]bool{
	"applicant":  true,
	"respondent": true,
	"subject":    true,
}

func summarize(entities []model.ResolvedEntity, linkages []model.EntityLinkage, opts match.Options) model.ResolutionSummary {
	summary := model.ResolutionSummary{
		TotalEntities: len(entities),
		TypeCounts:    make(map[string]int),
		LinkageCount:  len(linkages),
	}
	for _, entity := range entities {
		summary.TypeCounts[string(entity.Type)]++
		summary.AliasesResolved += len(entity.Aliases)
		if keyPartyRoles[entity.Role] {
			summary.KeyParties = append(summary.KeyParties, entity.CanonicalName)
		}
		switch opts.Level(entity.Confidence) {
		case model.ConfidenceHigh:
			summary.ConfidenceHigh++
		case model.ConfidenceMedium:
			summary.ConfidenceMed++
		default:
			summary.ConfidenceLow++
		}
	}
	sort.Strings(summary.KeyParties)
	return summary
}
