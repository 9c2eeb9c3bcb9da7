package model

import "time"

// Document is the unit of input supplied by the document store collaborator.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ResolutionSummary aggregates a resolution run for quick display.
type ResolutionSummary struct {
	TotalEntities   int            `json:"total_entities"`
	TypeCounts      map[string]int `json:"type_counts"`
	ConfidenceHigh  int            `json:"confidence_high"`
	ConfidenceMed   int            `json:"confidence_medium"`
	ConfidenceLow   int            `json:"confidence_low"`
	KeyParties      []string       `json:"key_parties"`
	AliasesResolved int            `json:"aliases_resolved"`
	LinkageCount    int            `json:"linkage_count"`
}

// ResolutionMetadata records how a run went, including per-document
// collaborator failures and grouping-ambiguity diagnostics.
type ResolutionMetadata struct {
	CaseID           string        `json:"case_id"`
	DocumentCount    int           `json:"document_count"`
	TextLength       int           `json:"text_length"`
	Duration         time.Duration `json:"duration_ns"`
	ExtractionMethod string        `json:"extraction_method"`
	FuzzyMatching    bool          `json:"fuzzy_matching"`
	FailedDocuments  []string      `json:"failed_documents,omitempty"`
	Diagnostics      []string      `json:"diagnostics,omitempty"`
}

// ResolutionResult is the complete output of resolving one case.
type ResolutionResult struct {
	Entities []ResolvedEntity   `json:"entities"`
	Linkages []EntityLinkage    `json:"linkages"`
	Graph    EntityGraphData    `json:"graph"`
	Summary  ResolutionSummary  `json:"summary"`
	Metadata ResolutionMetadata `json:"metadata"`
}
