package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikogura/checkin-scorer/pkg/review"
	"github.com/nikogura/checkin-scorer/pkg/tiers"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	store, err := Open(path)
	require.NoError(t, err)

	_, err = store.AddCheckIn(context.Background(), "client-1", time.Now(), review.CheckIn{})
	require.NoError(t, err)

	// Reopening runs migrations again and keeps the data.
	require.NoError(t, store.Close())
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.ListCheckIns(context.Background(), "client-1", 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAddAndListCheckIns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	older := review.CheckIn{
		review.FieldTrainingFormQuality: {Value: 2.0},
	}
	newer := review.CheckIn{
		review.FieldTrainingFormQuality: {Value: 4.0},
		review.FieldTrainingWarmup:      {Value: true},
		review.FieldMindsetStress:       {Value: "high"},
	}

	// Insert out of order to check the sort.
	newerID, err := store.AddCheckIn(ctx, "client-1", base.Add(7*24*time.Hour), newer)
	require.NoError(t, err)
	_, err = store.AddCheckIn(ctx, "client-1", base, older)
	require.NoError(t, err)
	_, err = store.AddCheckIn(ctx, "client-2", base.Add(time.Hour), older)
	require.NoError(t, err)

	records, err := store.ListCheckIns(ctx, "client-1", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, newerID, records[0].ID)
	assert.Equal(t, "client-1", records[0].ClientID)
	assert.True(t, records[0].SubmittedAt.Equal(base.Add(7*24*time.Hour)))
	assert.Equal(t, 4.0, records[0].CheckIn.Number(review.FieldTrainingFormQuality))
	assert.True(t, records[0].CheckIn.Truthy(review.FieldTrainingWarmup))
	assert.Equal(t, "high", records[0].CheckIn[review.FieldMindsetStress].Value)
	assert.Equal(t, 2.0, records[1].CheckIn.Number(review.FieldTrainingFormQuality))

	limited, err := store.ListCheckIns(ctx, "client-1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newerID, limited[0].ID)

	none, err := store.ListCheckIns(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSubSecondOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := store.AddCheckIn(ctx, "client-1", base, review.CheckIn{"n": {Value: 1.0}})
	require.NoError(t, err)
	_, err = store.AddCheckIn(ctx, "client-1", base.Add(500*time.Millisecond), review.CheckIn{"n": {Value: 2.0}})
	require.NoError(t, err)

	records, err := store.ListCheckIns(ctx, "client-1", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2.0, records[0].CheckIn.Number("n"))
}

func TestAddCheckInRequiresClient(t *testing.T) {
	store := newTestStore(t)

	_, err := store.AddCheckIn(context.Background(), "", time.Now(), review.CheckIn{})
	assert.Error(t, err)
}

func TestAddNilCheckIn(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddCheckIn(ctx, "client-1", time.Now(), nil)
	require.NoError(t, err)

	records, err := store.ListCheckIns(ctx, "client-1", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].CheckIn)
	assert.NotNil(t, records[0].CheckIn)
}

func TestCheckIns(t *testing.T) {
	records := []Record{
		{ID: "a", CheckIn: review.CheckIn{"x": {Value: 1.0}}},
		{ID: "b", CheckIn: review.CheckIn{"x": {Value: 2.0}}},
	}

	checkIns := CheckIns(records)
	require.Len(t, checkIns, 2)
	assert.Equal(t, 1.0, checkIns[0].Number("x"))
	assert.Equal(t, 2.0, checkIns[1].Number("x"))
}

func TestSaveAndLatestReview(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	clock := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	reviewer := review.NewReviewer().WithClock(func() time.Time { return clock })
	first := reviewer.Review([]review.CheckIn{{review.FieldTrainingFormQuality: {Value: 1.0}}}, tiers.BeginnerID)
	_, err := store.SaveReview(ctx, "client-1", tiers.BeginnerID, first)
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	second := reviewer.Review([]review.CheckIn{{review.FieldTrainingFormQuality: {Value: 5.0}}}, tiers.ProfessionalID)
	secondID, err := store.SaveReview(ctx, "client-1", tiers.ProfessionalID, second)
	require.NoError(t, err)

	stored, err := store.LatestReview(ctx, "client-1")
	require.NoError(t, err)

	assert.Equal(t, secondID, stored.ID)
	assert.Equal(t, tiers.ProfessionalID, stored.TierID)
	assert.True(t, stored.CreatedAt.Equal(clock))
	assert.InDelta(t, second.Training.Score, stored.Review.Training.Score, 1e-9)
	assert.Equal(t, second.Training.Recommendations, stored.Review.Training.Recommendations)
	assert.True(t, stored.Review.LastUpdated.Equal(second.LastUpdated))
}

func TestLatestReviewNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LatestReview(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveReviewRequiresClient(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveReview(context.Background(), "", tiers.BeginnerID, review.CoachReview{})
	assert.Error(t, err)
}
