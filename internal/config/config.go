// Package config loads engine tuning and vocabulary extensions from TOML.
// Everything is validated here, at the parsing boundary, so the core packages
// can assume well-formed options.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/docketlab/entgraph/internal/core"
	"github.com/docketlab/entgraph/internal/core/extraction"
	"github.com/docketlab/entgraph/internal/core/match"
	"github.com/docketlab/entgraph/internal/core/names"
)

type MatchingConfig struct {
	MinConfidence   float64 `toml:"min_confidence"`
	MaxEditDistance int     `toml:"max_edit_distance"`
	EnablePartial   bool    `toml:"enable_partial"`
	HighThreshold   float64 `toml:"high_threshold"`
	MediumThreshold float64 `toml:"medium_threshold"`
	LowThreshold    float64 `toml:"low_threshold"`
}

type ExtractionConfig struct {
	MinConfidence          float64 `toml:"min_confidence"`
	IncludePlaces          bool    `toml:"include_places"`
	ContextWindow          int     `toml:"context_window"`
	RequireDocumentOverlap bool    `toml:"require_document_overlap"`
}

type GraphConfig struct {
	MinConfidence float64 `toml:"min_confidence"`
}

// VocabularyConfig extends the compiled-in lookup tables. Lists are merged
// into the defaults; map entries add to or override them.
type VocabularyConfig struct {
	Honorifics           []string          `toml:"honorifics"`
	ProfessionalTitles   map[string]string `toml:"professional_titles"`
	RoleKeywords         map[string]string `toml:"role_keywords"`
	CourtKeywords        []string          `toml:"court_keywords"`
	OrganizationAliases  [][]string        `toml:"organization_aliases"`
	OrganizationSuffixes []string          `toml:"organization_suffixes"`
	RegistrationBodies   []string          `toml:"registration_bodies"`
}

type Config struct {
	Matching   MatchingConfig   `toml:"matching"`
	Extraction ExtractionConfig `toml:"extraction"`
	Graph      GraphConfig      `toml:"graph"`
	Vocabulary VocabularyConfig `toml:"vocabulary"`
}

// Default mirrors the core packages' built-in tuning.
func Default() *Config {
	m := match.DefaultOptions()
	e := extraction.DefaultOptions()
	r := core.DefaultOptions()
	return &Config{
		Matching: MatchingConfig{
			MinConfidence:   m.MinConfidence,
			MaxEditDistance: m.MaxEditDistance,
			EnablePartial:   m.EnablePartial,
			HighThreshold:   m.HighThreshold,
			MediumThreshold: m.MediumThreshold,
			LowThreshold:    m.LowThreshold,
		},
		Extraction: ExtractionConfig{
			MinConfidence: e.MinConfidence,
			IncludePlaces: e.IncludePlaces,
			ContextWindow: e.ContextWindow,
		},
		Graph: GraphConfig{MinConfidence: r.GraphMinConfidence},
	}
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.ResolverOptions().Validate(); err != nil {
		return err
	}
	for _, group := range c.Vocabulary.OrganizationAliases {
		if len(group) < 2 {
			return fmt.Errorf("organization alias group %v needs at least two members", group)
		}
	}
	return nil
}

// ResolverOptions maps the config onto the core option structs.
func (c *Config) ResolverOptions() core.Options {
	return core.Options{
		Extraction: extraction.Options{
			MinConfidence: c.Extraction.MinConfidence,
			IncludePlaces: c.Extraction.IncludePlaces,
			ContextWindow: c.Extraction.ContextWindow,
			Grouping: extraction.GroupingOptions{
				RequireDocumentOverlap: c.Extraction.RequireDocumentOverlap,
			},
		},
		Match: match.Options{
			Kind:            match.KindPerson,
			MinConfidence:   c.Matching.MinConfidence,
			MaxEditDistance: c.Matching.MaxEditDistance,
			EnablePartial:   c.Matching.EnablePartial,
			HighThreshold:   c.Matching.HighThreshold,
			MediumThreshold: c.Matching.MediumThreshold,
			LowThreshold:    c.Matching.LowThreshold,
		},
		GraphMinConfidence: c.Graph.MinConfidence,
	}
}

// Normalizer builds a normalizer over the merged vocabulary.
func (c *Config) Normalizer() *names.Normalizer {
	return names.New(c.MergedVocabulary())
}

// MergedVocabulary folds the config's vocabulary extensions into the
// compiled-in tables.
func (c *Config) MergedVocabulary() names.Vocabulary {
	v := names.DefaultVocabulary()
	v.Honorifics = mergeList(v.Honorifics, c.Vocabulary.Honorifics)
	v.ProfessionalTitles = mergeMap(v.ProfessionalTitles, c.Vocabulary.ProfessionalTitles)
	v.RoleKeywords = mergeMap(v.RoleKeywords, c.Vocabulary.RoleKeywords)
	v.CourtKeywords = mergeList(v.CourtKeywords, c.Vocabulary.CourtKeywords)
	v.OrganizationSuffixes = mergeList(v.OrganizationSuffixes, c.Vocabulary.OrganizationSuffixes)
	v.RegistrationBodies = mergeList(v.RegistrationBodies, c.Vocabulary.RegistrationBodies)
	v.OrganizationAliases = append(v.OrganizationAliases, c.Vocabulary.OrganizationAliases...)
	return v
}

func mergeList(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range extra {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		base = append(base, key)
	}
	return base
}

func mergeMap(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		merged[k] = strings.ToLower(strings.TrimSpace(v))
	}
	return merged
}
