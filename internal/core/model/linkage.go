package model

import (
	"sort"
	"strings"
	"time"
)

// LinkageStatus tracks the human-review lifecycle of a linkage proposal.
// Pending may move to confirmed or rejected; both are terminal.
type LinkageStatus string

const (
	StatusPending   LinkageStatus = "pending"
	StatusConfirmed LinkageStatus = "confirmed"
	StatusRejected  LinkageStatus = "rejected"
)

// EntityLinkage is a proposed (or reviewed) same-entity relationship between
// two extracted name strings.
type EntityLinkage struct {
	ID         string         `json:"id"`
	CaseID     string         `json:"case_id,omitempty"`
	Entity1    string         `json:"entity1"`
	Entity2    string         `json:"entity2"`
	Confidence float64        `json:"confidence"`
	Algorithm  MatchAlgorithm `json:"algorithm"`
	Status     LinkageStatus  `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	ReviewedAt *time.Time     `json:"reviewed_at,omitempty"`
	ReviewerID string         `json:"reviewer_id,omitempty"`
}

// PairKey returns an order-independent key for a name pair.
func PairKey(a, b string) string {
	pair := []string{strings.ToLower(a), strings.ToLower(b)}
	sort.Strings(pair)
	return pair[0] + "||" + pair[1]
}
