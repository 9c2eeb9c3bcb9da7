package linkage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docketlab/entgraph/internal/core/model"
)

func pendingLinkage(id, caseID, a, b string) model.EntityLinkage {
	return model.EntityLinkage{
		ID:         id,
		CaseID:     caseID,
		Entity1:    a,
		Entity2:    b,
		Confidence: 0.9,
		Algorithm:  model.AlgorithmVariant,
		Status:     model.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestReviewConfirm(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	reviewer := NewReviewer(store)

	require.NoError(t, reviewer.Record(ctx, pendingLinkage("l1", "case-1", "A", "B")))

	record, err := reviewer.UpdateStatus(ctx, "l1", model.StatusConfirmed, "reviewer-7")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, record.Status)
	assert.Equal(t, "reviewer-7", record.ReviewerID)
	require.NotNil(t, record.ReviewedAt)

	stored, err := store.Get(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, stored.Status)
}

func TestReviewTerminalStates(t *testing.T) {
	ctx := context.Background()
	reviewer := NewReviewer(NewMemoryStore())

	require.NoError(t, reviewer.Record(ctx, pendingLinkage("l1", "case-1", "A", "B")))
	_, err := reviewer.UpdateStatus(ctx, "l1", model.StatusRejected, "")
	require.NoError(t, err)

	// Both confirm and re-reject are refused once terminal.
	_, err = reviewer.UpdateStatus(ctx, "l1", model.StatusConfirmed, "")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	_, err = reviewer.UpdateStatus(ctx, "l1", model.StatusRejected, "")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewInvalidTransitions(t *testing.T) {
	ctx := context.Background()
	reviewer := NewReviewer(NewMemoryStore())

	_, err := reviewer.UpdateStatus(ctx, "missing", model.StatusConfirmed, "")
	assert.ErrorIs(t, err, ErrLinkageNotFound)

	require.NoError(t, reviewer.Record(ctx, pendingLinkage("l1", "case-1", "A", "B")))
	_, err = reviewer.UpdateStatus(ctx, "l1", model.StatusPending, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = reviewer.UpdateStatus(ctx, "l1", "archived", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

type failingStore struct{ *MemoryStore }

func (s *failingStore) Put(context.Context, model.EntityLinkage) error {
	return errors.New("disk full")
}

func TestReviewStoreWriteFailureSurfaced(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryStore()
	require.NoError(t, backing.Put(ctx, pendingLinkage("l1", "case-1", "A", "B")))

	reviewer := NewReviewer(&failingStore{backing})
	_, err := reviewer.UpdateStatus(ctx, "l1", model.StatusConfirmed, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// The failed write must not have mutated the record.
	stored, err := backing.Get(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, stored.Status)
}

func TestReviewReplayOntoFreshProposals(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	reviewer := NewReviewer(store)

	require.NoError(t, reviewer.Record(ctx, pendingLinkage("old-1", "case-1", "Dr. John Smith", "J. Smith")))
	require.NoError(t, reviewer.Record(ctx, pendingLinkage("old-2", "case-1", "Acme", "Acme Ltd")))
	_, err := reviewer.UpdateStatus(ctx, "old-1", model.StatusConfirmed, "reviewer-7")
	require.NoError(t, err)

	// Fresh run: new ids, reversed pair order for the confirmed linkage.
	fresh := []model.EntityLinkage{
		pendingLinkage("new-1", "case-1", "J. Smith", "Dr. John Smith"),
		pendingLinkage("new-2", "case-1", "Acme", "Acme Ltd"),
	}
	replayed, err := reviewer.Replay(ctx, "case-1", fresh)
	require.NoError(t, err)
	require.Len(t, replayed, 2)

	assert.Equal(t, "new-1", replayed[0].ID)
	assert.Equal(t, model.StatusConfirmed, replayed[0].Status)
	assert.Equal(t, "reviewer-7", replayed[0].ReviewerID)
	assert.Equal(t, model.StatusPending, replayed[1].Status)
}

func TestMemoryStoreListByCase(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, pendingLinkage("l1", "case-1", "A", "B")))
	require.NoError(t, store.Put(ctx, pendingLinkage("l2", "case-2", "C", "D")))

	records, err := store.ListByCase(ctx, "case-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "l1", records[0].ID)
}
