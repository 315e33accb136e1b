package survey

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-registry-backend/internal/model"
	"asset-registry-backend/internal/store"
)

// fakeDirectory serves a fixed set of assets per location.
type fakeDirectory struct {
	byLocation map[int64][]model.Asset
}

func (f *fakeDirectory) GetLocations(ctx context.Context) ([]model.Location, error) {
	return nil, nil
}

func (f *fakeDirectory) GetAssetsByLocation(ctx context.Context, locationID int64) ([]model.Asset, error) {
	assets, ok := f.byLocation[locationID]
	if !ok {
		return nil, store.ErrLocationNotFound
	}
	return assets, nil
}

func (f *fakeDirectory) UpdateCondition(ctx context.Context, assetID int64, condition model.Condition) (model.Asset, error) {
	panic("not used by the builder")
}

// fakeInventory records Create calls and assigns sequential ids.
type fakeInventory struct {
	store.InventoryStore
	created []*model.InventorySurvey
}

func (f *fakeInventory) Create(ctx context.Context, survey *model.InventorySurvey) (int64, error) {
	f.created = append(f.created, survey)
	return int64(len(f.created)), nil
}

func newTestBuilder() (*Builder, *fakeInventory) {
	dir := &fakeDirectory{byLocation: map[int64][]model.Asset{
		1: {
			{ID: 7, Tag: "EQ-007", LocationID: 1, Condition: model.ConditionGood},
			{ID: 8, Tag: "EQ-008", LocationID: 1, Condition: model.ConditionFair},
			{ID: 9, Tag: "EQ-009", LocationID: 1, Condition: model.ConditionGood},
		},
	}}
	inv := &fakeInventory{}
	return NewBuilder(dir, inv), inv
}

func TestBegin_UnknownLocation(t *testing.T) {
	b, _ := newTestBuilder()

	_, err := b.Begin(context.Background(), 999, 1, "2026-08-20")
	assert.ErrorIs(t, err, store.ErrLocationNotFound)
}

func TestBegin_InvalidDate(t *testing.T) {
	b, _ := newTestBuilder()

	for _, date := range []string{"", "20-08-2026", "2026/08/20", "yesterday"} {
		_, err := b.Begin(context.Background(), 1, 1, date)
		assert.ErrorIs(t, err, ErrInvalidDate, "date %q should be rejected", date)
	}
}

func TestAttach_OutOfScope(t *testing.T) {
	b, _ := newTestBuilder()

	draft, err := b.Begin(context.Background(), 1, 1, "2026-08-20")
	require.NoError(t, err)

	err = draft.Attach(999, model.ConditionGood, "")
	assert.ErrorIs(t, err, ErrAssetNotInScope)
	assert.Zero(t, draft.Len())
}

func TestAttach_ReplacesByAssetID(t *testing.T) {
	b, inv := newTestBuilder()

	draft, err := b.Begin(context.Background(), 1, 1, "2026-08-20")
	require.NoError(t, err)

	require.NoError(t, draft.Attach(7, model.ConditionGood, "first pass"))
	require.NoError(t, draft.Attach(8, model.ConditionFair, ""))
	require.NoError(t, draft.Attach(7, model.ConditionPoor, "second look"))

	finalized, err := b.Finalize(context.Background(), draft)
	require.NoError(t, err)

	// Exactly one line for asset 7, carrying the latest observation, still in
	// its original position.
	require.Len(t, finalized.Lines, 2)
	assert.Equal(t, int64(7), finalized.Lines[0].AssetID)
	assert.Equal(t, model.ConditionPoor, finalized.Lines[0].Condition)
	assert.Equal(t, "second look", finalized.Lines[0].Note)
	assert.Equal(t, 0, finalized.Lines[0].Position)
	assert.Equal(t, int64(8), finalized.Lines[1].AssetID)
	assert.Equal(t, 1, finalized.Lines[1].Position)

	require.Len(t, inv.created, 1)
}

func TestFinalize_EmptyDraft(t *testing.T) {
	b, inv := newTestBuilder()

	draft, err := b.Begin(context.Background(), 1, 1, "2026-08-20")
	require.NoError(t, err)

	_, err = b.Finalize(context.Background(), draft)
	assert.ErrorIs(t, err, ErrEmptySurvey)
	assert.Empty(t, inv.created, "the store must not see an empty survey")
}

func TestFinalize_AssignsID(t *testing.T) {
	b, _ := newTestBuilder()

	draft, err := b.Begin(context.Background(), 1, 42, "2026-08-20")
	require.NoError(t, err)
	require.NoError(t, draft.Attach(9, model.ConditionGood, ""))

	finalized, err := b.Finalize(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(1), finalized.ID)
	assert.Equal(t, int64(42), finalized.SubmitterID)
	assert.Equal(t, "2026-08-20", finalized.Date)
	assert.False(t, finalized.Reviewed)
}
