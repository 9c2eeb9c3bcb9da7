// Package extraction turns raw document text into scored entity mentions and
// groups them into per-document or per-case entities. The NLP tagger that
// surfaces candidate strings is an injected collaborator; everything else —
// position recovery, typing, scoring, grouping — is deterministic and local.
package extraction

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docketlab/entgraph/internal/core/model"
	"github.com/docketlab/entgraph/internal/core/names"
)

// Mention confidence scoring weights.
const (
	baseConfidence    = 0.6
	multiWordBonus    = 0.15
	threeWordBonus    = 0.05
	titleBonus        = 0.1
	professionalBonus = 0.05
	courtBonus        = 0.1
	shortNamePenalty  = 0.2
	shortNameLength   = 4
)

// Canonical-name selection weights.
const (
	canonicalWordWeight     = 10
	canonicalProfTitleBonus = 5
)

const defaultContextWindow = 60

// Options tunes extraction. Validate at the parsing boundary before use.
type Options struct {
	// MinConfidence drops mentions scoring below it.
	MinConfidence float64

	// IncludePlaces keeps place-labelled candidates that are not
	// reclassified as courts.
	IncludePlaces bool

	// ContextWindow is the number of bytes captured around a mention.
	ContextWindow int

	Grouping GroupingOptions
}

func DefaultOptions() Options {
	return Options{
		MinConfidence: 0.3,
		ContextWindow: defaultContextWindow,
	}
}

func (o Options) Validate() error {
	if o.MinConfidence < 0 || o.MinConfidence > 1 {
		return fmt.Errorf("min confidence %v outside [0,1]", o.MinConfidence)
	}
	if o.ContextWindow < 0 {
		return fmt.Errorf("context window %d is negative", o.ContextWindow)
	}
	return nil
}

// scoredMention is a located, typed, scored mention awaiting grouping.
type scoredMention struct {
	model.RawMention
	Type   model.EntityType
	Titled bool
}

type Extractor struct {
	tagger Tagger
	norm   *names.Normalizer
}

// New builds an Extractor around a tagger and a normalizer.
func New(tagger Tagger, norm *names.Normalizer) *Extractor {
	return &Extractor{tagger: tagger, norm: norm}
}

// Result is the output of extracting a single text.
type Result struct {
	Entities     []model.ExtractedEntity
	MentionCount int
	Duration     time.Duration
}

// Extract runs the full pipeline over one text. Empty input yields an empty
// result with zeroed timing; a tagger failure is returned as an error.
func (e *Extractor) Extract(text string, opts Options) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, nil
	}
	start := time.Now()

	mentions, err := e.extractMentions(text, "", opts)
	if err != nil {
		return Result{}, err
	}
	entities, _ := e.assemble(mentions, opts)

	return Result{
		Entities:     entities,
		MentionCount: len(mentions),
		Duration:     time.Since(start),
	}, nil
}

// DocumentsResult is the output of extracting a whole document set.
type DocumentsResult struct {
	Entities        []model.ExtractedEntity
	MentionCount    int
	TextLength      int
	FailedDocuments []string
	Diagnostics     []string
	Duration        time.Duration
}

const extractWorkers = 4

// ExtractFromDocuments extracts every document, tags each mention with its
// document id, and re-groups over the union so entities can span documents.
// Documents are processed concurrently; cancellation is cooperative between
// documents. A failing tagger costs only its own document, which is recorded
// in FailedDocuments.
func (e *Extractor) ExtractFromDocuments(ctx context.Context, docs []model.Document, opts Options) DocumentsResult {
	if len(docs) == 0 {
		return DocumentsResult{}
	}
	start := time.Now()

	perDoc := make([][]scoredMention, len(docs))
	errs := make([]error, len(docs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := extractWorkers
	if len(docs) < workers {
		workers = len(docs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					errs[i] = ctx.Err()
					continue
				}
				perDoc[i], errs[i] = e.extractDocument(docs[i], opts)
			}
		}()
	}
	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := DocumentsResult{}
	var all []scoredMention
	for i, doc := range docs {
		result.TextLength += len(doc.Text)
		if errs[i] != nil {
			result.FailedDocuments = append(result.FailedDocuments, doc.ID)
			continue
		}
		all = append(all, perDoc[i]...)
	}

	result.Entities, result.Diagnostics = e.assemble(all, opts)
	result.MentionCount = len(all)
	result.Duration = time.Since(start)
	return result
}

// extractDocument guards a single document against a panicking tagger.
func (e *Extractor) extractDocument(doc model.Document, opts Options) (mentions []scoredMention, err error) {
	defer func() {
		if r := recover(); r != nil {
			mentions = nil
			err = fmt.Errorf("tagger panicked on document %s: %v", doc.ID, r)
		}
	}()
	return e.extractMentions(doc.Text, doc.ID, opts)
}

// extractMentions obtains candidates from the tagger, recovers positions by
// case-insensitive substring search with an advancing cursor, reclassifies
// types (court vocabulary > professional titles > tagger label), scores, and
// filters.
func (e *Extractor) extractMentions(text, docID string, opts Options) ([]scoredMention, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	candidates, err := e.tagger.Tag(text)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)
	cursors := make(map[string]int)
	seen := make(map[model.Position]bool)
	var mentions []scoredMention

	for _, cand := range candidates {
		candText := strings.TrimSpace(cand.Text)
		if candText == "" {
			continue
		}
		lowerCand := strings.ToLower(candText)

		offset := strings.Index(lower[cursors[lowerCand]:], lowerCand)
		if offset < 0 {
			continue
		}
		start := cursors[lowerCand] + offset
		end := start + len(candText)
		cursors[lowerCand] = end

		pos := model.Position{Start: start, End: end}
		if seen[pos] {
			continue
		}

		entityType := e.classify(candText, cand.Label)
		if entityType == model.TypePlace && !opts.IncludePlaces {
			continue
		}

		titled := e.norm.HasTitle(candText)
		confidence := e.score(candText, entityType, titled)
		if confidence < opts.MinConfidence {
			continue
		}
		seen[pos] = true

		normalized := e.norm.NormalizeName(candText)
		if entityType == model.TypeOrganization {
			normalized = e.norm.NormalizeOrganization(candText)
		}

		mentions = append(mentions, scoredMention{
			RawMention: model.RawMention{
				Text:           text[start:end],
				NormalizedText: normalized,
				Position:       pos,
				Context:        contextWindow(text, start, end, opts.ContextWindow),
				Confidence:     confidence,
				DocumentID:     docID,
			},
			Type:   entityType,
			Titled: titled,
		})
	}

	return mentions, nil
}

// classify applies keyword precedence over the tagger's default label.
func (e *Extractor) classify(text, label string) model.EntityType {
	if e.norm.IsCourtName(text) {
		return model.TypeCourt
	}
	if e.norm.HasProfessionalTitle(text) {
		return model.TypeProfessional
	}
	switch label {
	case LabelOrganization:
		return model.TypeOrganization
	case LabelPlace:
		return model.TypePlace
	default:
		return model.TypePerson
	}
}

func (e *Extractor) score(text string, entityType model.EntityType, titled bool) float64 {
	confidence := baseConfidence

	words := len(names.Tokens(text))
	if words >= 2 {
		confidence += multiWordBonus
	}
	if words >= 3 {
		confidence += threeWordBonus
	}
	if titled {
		confidence += titleBonus
	}
	switch entityType {
	case model.TypeProfessional:
		confidence += professionalBonus
	case model.TypeCourt:
		confidence += courtBonus
	}
	if len(text) < shortNameLength {
		confidence -= shortNamePenalty
	}

	return model.Clamp(confidence)
}

func contextWindow(text string, start, end, window int) string {
	from := start - window
	if from < 0 {
		from = 0
	}
	to := end + window
	if to > len(text) {
		to = len(text)
	}
	return strings.TrimSpace(text[from:to])
}

// typePrecedence orders entity types for group typing; higher wins.
var typePrecedence = map[model.EntityType]int{
	model.TypePerson:       0,
	model.TypePlace:        1,
	model.TypeOrganization: 2,
	model.TypeProfessional: 3,
	model.TypeCourt:        4,
}

// assemble groups mentions into entities and derives each group's canonical
// name, type, role and confidence.
func (e *Extractor) assemble(mentions []scoredMention, opts Options) ([]model.ExtractedEntity, []string) {
	groups, diagnostics := groupMentions(e.norm, mentions, opts.Grouping)
	if len(groups) == 0 {
		return nil, diagnostics
	}

	entities := make([]model.ExtractedEntity, 0, len(groups))
	for _, members := range groups {
		entities = append(entities, e.buildEntity(mentions, members))
	}
	return entities, diagnostics
}

func (e *Extractor) buildEntity(mentions []scoredMention, members []int) model.ExtractedEntity {
	var (
		raw        []model.RawMention
		aliases    []string
		aliasSeen  = make(map[string]bool)
		confidence float64
		entityType = model.TypePerson
	)
	for _, i := range members {
		m := mentions[i]
		raw = append(raw, m.RawMention)
		confidence += m.Confidence
		if typePrecedence[m.Type] > typePrecedence[entityType] {
			entityType = m.Type
		}
		if !aliasSeen[m.Text] {
			aliasSeen[m.Text] = true
			aliases = append(aliases, m.Text)
		}
	}
	sort.Strings(aliases)
	confidence = model.Clamp(confidence / float64(len(members)))

	entity := model.ExtractedEntity{
		ID:            uuid.New().String(),
		CanonicalName: e.canonicalName(aliases),
		Type:          entityType,
		Role:          e.detectGroupRole(aliases),
		Mentions:      raw,
		Aliases:       aliases,
		Confidence:    confidence,
	}
	if entityType == model.TypeProfessional {
		entity.Registration = e.detectRegistration(raw)
	}
	return entity
}

// canonicalName picks the best display name from an alias set. The choice
// depends only on the set contents, never on input order: scores tie-break
// on the lexicographically smaller alias.
func (e *Extractor) canonicalName(aliases []string) string {
	best := ""
	bestScore := -1
	for _, alias := range aliases {
		words := len(names.Tokens(alias))
		score := words*canonicalWordWeight + len(e.norm.NormalizeName(alias))
		if words >= 2 && e.norm.HasProfessionalTitle(alias) {
			score += canonicalProfTitleBonus
		}
		if score > bestScore || (score == bestScore && alias < best) {
			best = alias
			bestScore = score
		}
	}
	return best
}

// detectGroupRole returns the first role-vocabulary hit over the aliases,
// falling back to the professional-title role map.
func (e *Extractor) detectGroupRole(aliases []string) string {
	for _, alias := range aliases {
		if role := e.norm.DetectRole(alias); role != "" {
			return role
		}
	}
	for _, alias := range aliases {
		if role := e.norm.RoleForTitle(alias); role != "" {
			return role
		}
	}
	return ""
}

// detectRegistration scans mention contexts for a regulatory-body acronym.
func (e *Extractor) detectRegistration(mentions []model.RawMention) *model.ProfessionalRegistration {
	for _, m := range mentions {
		if body := e.norm.RegistrationBody(m.Context); body != "" {
			return &model.ProfessionalRegistration{Body: body}
		}
	}
	return nil
}
