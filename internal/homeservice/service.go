// Package homeservice implements the home collection lifecycle: minimally
// validated create/read/list/update/delete over the store, plus on-demand
// summary rows derived through the scoring engine.
package homeservice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/rubric"
	"github.com/starford/othala/internal/scoring"
	"github.com/starford/othala/internal/store"
)

// SummaryRow is one home's derived display values: category subtotals in
// rubric order, the flat overall score, and the pass/fail tally.
type SummaryRow struct {
	ID      int64           `json:"id"`
	City    string          `json:"city"`
	MPC     string          `json:"mpc"`
	Builder string          `json:"builder"`
	Address string          `json:"address"`
	Notes   string          `json:"notes"`
	Scores  scoring.Summary `json:"scores"`
	Photo   string          `json:"photo"`
	Checks  string          `json:"checks"`
}

// Service coordinates store and scoring operations over one rubric.
//
// A single mutex wraps every mutating sequence, so exposing the service to
// concurrent callers cannot lose updates; the data model stays id-addressed
// rather than position-addressed for the same reason.
type Service struct {
	mu     sync.Mutex
	store  store.Provider
	rubric *rubric.Rubric
}

// NewService creates a new home service.
func NewService(st store.Provider, r *rubric.Rubric) *Service {
	return &Service{store: st, rubric: r}
}

// Rubric returns the rubric the service scores against.
func (s *Service) Rubric() *rubric.Rubric {
	return s.rubric
}

// validateDraft applies the only storage-side check: a non-blank address.
func validateDraft(draft models.HomeDraft) error {
	if strings.TrimSpace(draft.Info.Address) == "" {
		return fmt.Errorf("%w: address required", apperr.ErrValidation)
	}
	return nil
}

// normalize gives the draft's collections concrete, unshared values.
func normalize(draft models.HomeDraft) models.HomeDraft {
	if draft.Photos == nil {
		draft.Photos = []models.PhotoRef{}
	}
	if draft.Scores == nil {
		draft.Scores = models.ScoreSet{}
	} else {
		draft.Scores = draft.Scores.Clone()
	}
	return draft
}

// Create validates the draft and appends a new record, returning it with its
// assigned id. The collection is unchanged when validation fails.
func (s *Service) Create(_ context.Context, draft models.HomeDraft) (*models.HomeRecord, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	draft = normalize(draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rec := &models.HomeRecord{
		Info:      draft.Info,
		Photos:    draft.Photos,
		Scores:    draft.Scores,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.store.Insert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns one record by id.
func (s *Service) Get(_ context.Context, id int64) (*models.HomeRecord, error) {
	return s.store.Get(id)
}

// List returns records in insertion order with the total match count.
func (s *Service) List(_ context.Context, f store.Filter) ([]models.HomeRecord, int, error) {
	return s.store.List(f)
}

// Update atomically replaces the record's info, photos, and scores with the
// supplied draft. Partial updates are not supported: callers send the full
// merged draft. A stale id (e.g. an edit target deleted meanwhile) fails
// with apperr.ErrNotFound and leaves the collection unchanged.
func (s *Service) Update(_ context.Context, id int64, draft models.HomeDraft) (*models.HomeRecord, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	draft = normalize(draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	rec := &models.HomeRecord{
		ID:        id,
		Info:      draft.Info,
		Photos:    draft.Photos,
		Scores:    draft.Scores,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
	}
	if err := s.store.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a record. Deleting an absent id fails with
// apperr.ErrNotFound rather than no-opping, so stale edit targets surface
// to the caller instead of silently vanishing.
func (s *Service) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(id)
}

// AttachPhoto appends an uploaded blob to a record's photo list through a
// full-record replace. Blob bytes are stored opaquely and never inspected.
func (s *Service) AttachPhoto(_ context.Context, id int64, photo models.PhotoRef) (*models.HomeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	rec.Photos = append(rec.Photos, photo)
	rec.UpdatedAt = time.Now()
	if err := s.store.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Summaries derives a summary row per record, in insertion order. Values are
// recomputed from the current scores on every call.
func (s *Service) Summaries(_ context.Context, f store.Filter) ([]SummaryRow, int, error) {
	records, total, err := s.store.List(f)
	if err != nil {
		return nil, 0, err
	}
	rows := make([]SummaryRow, 0, len(records))
	for i := range records {
		rows = append(rows, s.summaryRow(&records[i]))
	}
	return rows, total, nil
}

// Summarize derives the summary row for a single record.
func (s *Service) Summarize(rec *models.HomeRecord) SummaryRow {
	return s.summaryRow(rec)
}

func (s *Service) summaryRow(rec *models.HomeRecord) SummaryRow {
	sum := scoring.Summarize(s.rubric, rec.Scores)
	return SummaryRow{
		ID:      rec.ID,
		City:    rec.Info.City,
		MPC:     rec.Info.Community,
		Builder: rec.Info.Builder,
		Address: rec.Info.Address,
		Notes:   rec.Info.Notes,
		Scores:  sum,
		Photo:   firstPhotoURL(rec.Photos),
		Checks:  fmt.Sprintf("%d/%d", sum.Passed, sum.Total),
	}
}

// firstPhotoURL returns the primary thumbnail's URL, or empty when the
// record has no photos or its first photo is an owned blob.
func firstPhotoURL(photos []models.PhotoRef) string {
	if len(photos) == 0 {
		return ""
	}
	return photos[0].URL
}
