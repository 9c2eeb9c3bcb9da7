package linkage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/docketlab/entgraph/internal/core/model"
)

var (
	ErrLinkageNotFound = errors.New("linkage not found")
	ErrAlreadyReviewed = errors.New("linkage already reviewed")
	ErrInvalidStatus   = errors.New("invalid review status")
)

// Store is the review-state persistence collaborator. Implementations must
// make Put atomic per linkage id; no cross-record transaction is required.
type Store interface {
	Get(ctx context.Context, linkageID string) (model.EntityLinkage, error)
	Put(ctx context.Context, record model.EntityLinkage) error
	ListByCase(ctx context.Context, caseID string) ([]model.EntityLinkage, error)
}

// MemoryStore is the in-process Store used when no external persistence
// collaborator is wired in.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.EntityLinkage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.EntityLinkage)}
}

func (s *MemoryStore) Get(_ context.Context, linkageID string) (model.EntityLinkage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[linkageID]
	if !ok {
		return model.EntityLinkage{}, fmt.Errorf("%w: %s", ErrLinkageNotFound, linkageID)
	}
	return record, nil
}

func (s *MemoryStore) Put(_ context.Context, record model.EntityLinkage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) ListByCase(_ context.Context, caseID string) ([]model.EntityLinkage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []model.EntityLinkage
	for _, record := range s.records {
		if record.CaseID == caseID {
			records = append(records, record)
		}
	}
	return records, nil
}

// Reviewer is the state machine over linkage records: pending may move to
// confirmed or rejected, both terminal.
type Reviewer struct {
	store Store
}

func NewReviewer(store Store) *Reviewer {
	return &Reviewer{store: store}
}

// Record stores a fresh proposal so it can be reviewed later.
func (r *Reviewer) Record(ctx context.Context, proposal model.EntityLinkage) error {
	if err := r.store.Put(ctx, proposal); err != nil {
		return fmt.Errorf("storing linkage %s: %w", proposal.ID, err)
	}
	return nil
}

// UpdateStatus applies a human decision to a pending linkage. Unlike
// resolution, this is a user-initiated mutation: any store failure is
// surfaced, never swallowed.
func (r *Reviewer) UpdateStatus(ctx context.Context, linkageID string, status model.LinkageStatus, reviewerID string) (model.EntityLinkage, error) {
	if status != model.StatusConfirmed && status != model.StatusRejected {
		return model.EntityLinkage{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	record, err := r.store.Get(ctx, linkageID)
	if err != nil {
		return model.EntityLinkage{}, err
	}
	if record.Status != model.StatusPending {
		return model.EntityLinkage{}, fmt.Errorf("%w: %s is %s", ErrAlreadyReviewed, linkageID, record.Status)
	}

	now := time.Now().UTC()
	record.Status = status
	record.ReviewedAt = &now
	record.ReviewerID = reviewerID

	if err := r.store.Put(ctx, record); err != nil {
		return model.EntityLinkage{}, fmt.Errorf("storing review of %s: %w", linkageID, err)
	}
	return record, nil
}

// Replay applies previously stored review decisions to freshly generated
// proposals, matching on the order-independent name pair rather than ids:
// resolution is recomputed from raw documents at any time, so fresh records
// get new ids while keeping their review history.
func (r *Reviewer) Replay(ctx context.Context, caseID string, proposals []model.EntityLinkage) ([]model.EntityLinkage, error) {
	stored, err := r.store.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("listing reviews for case %s: %w", caseID, err)
	}

	decisions := make(map[string]model.EntityLinkage)
	for _, record := range stored {
		if record.Status == model.StatusPending {
			continue
		}
		key := model.PairKey(record.Entity1, record.Entity2)
		// Last writer wins between conflicting historical decisions.
		if prev, ok := decisions[key]; !ok || reviewedAfter(record, prev) {
			decisions[key] = record
		}
	}

	replayed := make([]model.EntityLinkage, len(proposals))
	for i, proposal := range proposals {
		if decision, ok := decisions[model.PairKey(proposal.Entity1, proposal.Entity2)]; ok {
			proposal.Status = decision.Status
			proposal.ReviewedAt = decision.ReviewedAt
			proposal.ReviewerID = decision.ReviewerID
		}
		replayed[i] = proposal
	}
	return replayed, nil
}

func reviewedAfter(a, b model.EntityLinkage) bool {
	if a.ReviewedAt == nil {
		return false
	}
	if b.ReviewedAt == nil {
		return true
	}
	return a.ReviewedAt.After(*b.ReviewedAt)
}
