package model

// MatchAlgorithm identifies which cascade rule produced a match result.
type MatchAlgorithm string

const (
	AlgorithmExact       MatchAlgorithm = "exact"
	AlgorithmNormalized  MatchAlgorithm = "normalized"
	AlgorithmLevenshtein MatchAlgorithm = "levenshtein"
	AlgorithmVariant     MatchAlgorithm = "variant"
	AlgorithmAlias       MatchAlgorithm = "alias"
	AlgorithmPartial     MatchAlgorithm = "partial"
)

// ConfidenceLevel buckets a numeric confidence score.
type ConfidenceLevel string

const (
	ConfidenceHigh    ConfidenceLevel = "high"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceNoMatch ConfidenceLevel = "no_match"
)

// MatchResult is the scored, explained outcome of comparing two names.
type MatchResult struct {
	IsMatch         bool              `json:"is_match"`
	Confidence      float64           `json:"confidence"`
	ConfidenceLevel ConfidenceLevel   `json:"confidence_level"`
	Algorithm       MatchAlgorithm    `json:"algorithm"`
	Explanation     string            `json:"explanation"`
	Details         map[string]string `json:"details,omitempty"`
}
