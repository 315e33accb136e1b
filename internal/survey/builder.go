// Package survey builds inventory survey drafts: a submitter walks one
// location, attaches an observed condition to any subset of its assets, and
// finalizes the draft into a persisted survey.
package survey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-registry-backend/internal/model"
	"asset-registry-backend/internal/store"
)

var (
	// ErrEmptySurvey is returned by Finalize when no observations were attached.
	ErrEmptySurvey = errors.New("survey has no observations")
	// ErrAssetNotInScope is returned when an observation targets an asset that
	// was not among the location's candidates when the draft was begun.
	ErrAssetNotInScope = errors.New("asset is not in the draft's location scope")
	// ErrInvalidDate is returned when the survey date is not an ISO calendar date.
	ErrInvalidDate = errors.New("invalid survey date")
)

// Draft is an in-progress survey. It is not persisted; only Finalize assigns
// an id. Scope is fixed at Begin time: assets moved to the location afterwards
// cannot be observed in this draft.
type Draft struct {
	locationID  int64
	submitterID int64
	date        string
	candidates  map[int64]model.Asset
	order       []int64 // attachment order, for stable line positions
	lines       map[int64]model.InventoryLine
}

// Builder constructs and persists inventory surveys.
type Builder struct {
	assets  store.AssetDirectory
	surveys store.InventoryStore
}

// NewBuilder creates a survey builder over the given data-access contracts.
func NewBuilder(assets store.AssetDirectory, surveys store.InventoryStore) *Builder {
	return &Builder{assets: assets, surveys: surveys}
}

// Begin starts a draft for one location on one date, loading the active
// assets currently assigned there as the draft's observation scope.
func (b *Builder) Begin(ctx context.Context, locationID, submitterID int64, date string) (*Draft, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	assets, err := b.assets.GetAssetsByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	candidates := make(map[int64]model.Asset, len(assets))
	for _, a := range assets {
		candidates[a.ID] = a
	}

	return &Draft{
		locationID:  locationID,
		submitterID: submitterID,
		date:        date,
		candidates:  candidates,
		lines:       make(map[int64]model.InventoryLine),
	}, nil
}

// Attach records an observation for one asset. Attaching twice for the same
// asset replaces the earlier observation in place; the line keeps its
// original position.
func (d *Draft) Attach(assetID int64, condition model.Condition, note string) error {
	if _, ok := d.candidates[assetID]; !ok {
		return fmt.Errorf("%w: asset %d", ErrAssetNotInScope, assetID)
	}

	if _, seen := d.lines[assetID]; !seen {
		d.order = append(d.order, assetID)
	}
	d.lines[assetID] = model.InventoryLine{
		AssetID:   assetID,
		Condition: condition,
		Note:      note,
	}
	return nil
}

// Len reports how many observations the draft currently holds.
func (d *Draft) Len() int {
	return len(d.lines)
}

// Finalize persists the draft as an inventory survey and returns it with its
// assigned id. An empty draft is rejected before the store is touched.
func (b *Builder) Finalize(ctx context.Context, d *Draft) (model.InventorySurvey, error) {
	if len(d.lines) == 0 {
		return model.InventorySurvey{}, ErrEmptySurvey
	}

	lines := make([]model.InventoryLine, 0, len(d.lines))
	for i, assetID := range d.order {
		line := d.lines[assetID]
		line.Position = i
		lines = append(lines, line)
	}

	result := model.InventorySurvey{
		Date:        d.date,
		SubmitterID: d.submitterID,
		LocationID:  d.locationID,
		Lines:       lines,
	}

	id, err := b.surveys.Create(ctx, &result)
	if err != nil {
		return model.InventorySurvey{}, fmt.Errorf("failed to persist survey: %w", err)
	}
	result.ID = id
	return result, nil
}
