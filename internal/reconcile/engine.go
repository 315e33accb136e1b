// Package reconcile implements the admin side of the inventory workflow:
// selectively committing a survey's accepted observations back onto the
// canonical asset records.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"asset-registry-backend/internal/store"
)

// ErrDecisionMismatch is returned when the decision vector does not match the
// survey's line count. Short vectors are a hard error, never an implicit
// accept.
var ErrDecisionMismatch = errors.New("decision count does not match line count")

// LineFailure records one line whose asset update could not be applied.
type LineFailure struct {
	Index     int    `json:"index"`
	AssetID   int64  `json:"asset_id"`
	ErrorKind string `json:"error_kind"`
}

// Report is the outcome of one reconciliation run. Per-line failures are a
// business outcome, not an error: the run itself still succeeds.
type Report struct {
	RunID        string        `json:"run_id"`
	SurveyID     int64         `json:"survey_id"`
	AppliedCount int           `json:"applied_count"`
	FailedLines  []LineFailure `json:"failed_lines"`
}

// Notifier receives ids of surveys whose review has just completed.
type Notifier interface {
	Dispatch(surveyID int64)
}

// Engine applies review decisions to persisted surveys. All reconciliation for
// one survey id is serialized through a per-id mutex so the check-reviewed /
// apply / set-reviewed sequence cannot interleave with itself.
type Engine struct {
	assets        store.AssetDirectory
	surveys       store.InventoryStore
	notifier      Notifier // may be nil
	maxConcurrent int

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewEngine creates a reconciliation engine. maxConcurrent bounds how many
// asset updates one run dispatches at a time.
func NewEngine(assets store.AssetDirectory, surveys store.InventoryStore, notifier Notifier, maxConcurrent int) *Engine {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Engine{
		assets:        assets,
		surveys:       surveys,
		notifier:      notifier,
		maxConcurrent: maxConcurrent,
		locks:         make(map[int64]*sync.Mutex),
	}
}

// surveyLock returns the mutex serializing reconciliation of one survey id.
func (e *Engine) surveyLock(surveyID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[surveyID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[surveyID] = lock
	}
	return lock
}

// Reconcile applies the accepted lines of a survey to the asset directory and
// marks the survey reviewed.
//
// Each accepted line is attempted independently: a failure on one line is
// recorded in the report and does not stop the rest of the batch. Rejected
// lines are never sent to the directory and never appear in the report. The
// reviewed flag is set once every line has been attempted, regardless of how
// many failed; a survey that is already reviewed short-circuits to an empty
// report without touching any asset.
//
// On cancellation, lines already dispatched run to completion, no further
// lines are dispatched, and the reviewed flag stays false so the review can be
// retried.
func (e *Engine) Reconcile(ctx context.Context, surveyID int64, decisions []bool) (Report, error) {
	lock := e.surveyLock(surveyID)
	lock.Lock()
	defer lock.Unlock()

	survey, err := e.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return Report{}, err
	}

	if len(decisions) != len(survey.Lines) {
		return Report{}, fmt.Errorf("%w: survey %d has %d lines, got %d decisions",
			ErrDecisionMismatch, surveyID, len(survey.Lines), len(decisions))
	}

	report := Report{
		RunID:       uuid.NewString(),
		SurveyID:    surveyID,
		FailedLines: []LineFailure{},
	}

	if survey.Reviewed {
		log.Printf("survey %d already reviewed, run %s is a no-op", surveyID, report.RunID)
		return report, nil
	}

	var (
		resMu    sync.Mutex
		applied  int
		failures []LineFailure
	)

	g := new(errgroup.Group)
	g.SetLimit(e.maxConcurrent)

	// Dispatched updates must finish even if the caller goes away: a half-sent
	// asset write left ambiguous is worse than a slow response.
	lineCtx := context.WithoutCancel(ctx)

	cancelled := false
	for i, line := range survey.Lines {
		if !decisions[i] {
			continue
		}
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		i, line := i, line
		g.Go(func() error {
			if _, err := e.assets.UpdateCondition(lineCtx, line.AssetID, line.Condition); err != nil {
				resMu.Lock()
				failures = append(failures, LineFailure{Index: i, AssetID: line.AssetID, ErrorKind: errorKind(err)})
				resMu.Unlock()
				log.Printf("survey %d line %d: condition update for asset %d failed: %v", surveyID, i, line.AssetID, err)
				return nil
			}
			resMu.Lock()
			applied++
			resMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failures, func(a, b int) bool { return failures[a].Index < failures[b].Index })
	report.AppliedCount = applied
	if failures != nil {
		report.FailedLines = failures
	}

	if cancelled || ctx.Err() != nil {
		// Reviewed stays false so a retry can pick up the remaining lines.
		log.Printf("survey %d run %s cancelled after %d applied", surveyID, report.RunID, applied)
		return report, ctx.Err()
	}

	flipped, err := e.surveys.MarkReviewed(lineCtx, surveyID)
	if err != nil {
		return report, fmt.Errorf("applied %d lines but failed to mark survey %d reviewed: %w", applied, surveyID, err)
	}
	if !flipped {
		// The conditional write found reviewed already true. With the per-id
		// lock held this means an out-of-band writer touched the flag.
		log.Printf("survey %d reviewed flag was already set outside run %s", surveyID, report.RunID)
	}

	log.Printf("survey %d reconciled by run %s: %d applied, %d failed", surveyID, report.RunID, applied, len(report.FailedLines))

	if e.notifier != nil {
		e.notifier.Dispatch(surveyID)
	}
	return report, nil
}

// errorKind maps a line-level failure to the stable kind reported to clients.
func errorKind(err error) string {
	switch {
	case errors.Is(err, store.ErrAssetNotFound):
		return "asset_not_found"
	case errors.Is(err, store.ErrAssetDecommissioned):
		return "asset_decommissioned"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "update_failed"
	}
}
