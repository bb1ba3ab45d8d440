package homeservice

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/store"
	"github.com/starford/othala/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testutil.TestStore(t), testutil.TestRubric(t))
}

func draft(address string) models.HomeDraft {
	return models.HomeDraft{
		Info: models.HomeInfo{
			Address:   address,
			City:      "Austin",
			Community: "Easton Park",
			Builder:   "Brookfield",
		},
		Scores: models.ScoreSet{
			{Category: "Environmental", Name: "Flood zone"}: 4,
		},
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, draft("101 Oak Ln"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID <= 0 {
		t.Fatalf("id = %d, want positive", rec.ID)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	got, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Info != rec.Info {
		t.Errorf("info = %+v, want %+v", got.Info, rec.Info)
	}
	key := models.CriterionKey{Category: "Environmental", Name: "Flood zone"}
	if got.Scores[key] != 4 {
		t.Errorf("scores = %+v", got.Scores)
	}
}

func TestCreate_BlankAddressRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, addr := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, draft(addr))
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("address %q: error = %v, want ErrValidation", addr, err)
		}
	}

	// Rejected drafts must leave the collection untouched.
	_, total, err := svc.List(ctx, store.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("total = %d after rejected creates, want 0", total)
	}
}

func TestCreate_ScoresNotShared(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d := draft("101 Oak Ln")
	rec, err := svc.Create(ctx, d)
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's map after create must not leak into the record.
	key := models.CriterionKey{Category: "Environmental", Name: "Flood zone"}
	d.Scores[key] = 1

	got, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Scores[key] != 4 {
		t.Errorf("score = %d after caller mutation, want 4", got.Scores[key])
	}
}

func TestUpdate_FullReplace(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, draft("101 Oak Ln"))
	if err != nil {
		t.Fatal(err)
	}

	next := draft("101 Oak Ln")
	next.Info.Notes = "price dropped"
	next.Scores = models.ScoreSet{{Category: "Home", Name: "Lot shape"}: 5}
	updated, err := svc.Update(ctx, rec.ID, next)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Info.Notes != "price dropped" {
		t.Errorf("notes = %q", updated.Info.Notes)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("created_at changed: %v vs %v", updated.CreatedAt, rec.CreatedAt)
	}
	if _, stale := updated.Scores[models.CriterionKey{Category: "Environmental", Name: "Flood zone"}]; stale {
		t.Error("old score survived a full replace")
	}
}

func TestUpdate_BlankAddressRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, draft("101 Oak Ln"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.Update(ctx, rec.ID, draft("  "))
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}

	got, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Info.Address != "101 Oak Ln" {
		t.Errorf("record changed by rejected update: %+v", got.Info)
	}
}

func TestUpdate_Missing(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Update(context.Background(), 42, draft("101 Oak Ln"))
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, draft("101 Oak Ln"))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, rec.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, rec.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestAttachPhoto(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d := draft("101 Oak Ln")
	d.Photos = []models.PhotoRef{{URL: "https://example.com/front.jpg"}}
	rec, err := svc.Create(ctx, d)
	if err != nil {
		t.Fatal(err)
	}

	blob := models.PhotoRef{Name: "kitchen.jpg", MimeType: "image/jpeg", Bytes: []byte{0xff, 0xd8}}
	updated, err := svc.AttachPhoto(ctx, rec.ID, blob)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if len(updated.Photos) != 2 {
		t.Fatalf("photos = %d, want 2", len(updated.Photos))
	}
	if updated.Photos[1].Name != "kitchen.jpg" || !updated.Photos[1].IsBlob() {
		t.Errorf("photo = %+v", updated.Photos[1])
	}
}

func TestSummaries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d := draft("101 Oak Ln")
	d.Photos = []models.PhotoRef{{URL: "https://example.com/front.jpg"}}
	d.Scores = models.ScoreSet{}
	d.Scores[models.CriterionKey{Category: "Environmental", Name: "Flood zone"}] = 4
	d.Scores[models.CriterionKey{Category: "Vaastu", Name: "Main Entrance (East/North ok, South avoid)"}] = 5
	d.Scores[models.CriterionKey{Category: "Vaastu", Name: "Kitchen (SE/NW ok, NE avoid)"}] = 0
	if _, err := svc.Create(ctx, d); err != nil {
		t.Fatal(err)
	}

	rows, total, err := svc.Summaries(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("total = %d, rows = %d", total, len(rows))
	}

	row := rows[0]
	if row.Address != "101 Oak Ln" || row.City != "Austin" || row.MPC != "Easton Park" {
		t.Errorf("row = %+v", row)
	}
	if row.Photo != "https://example.com/front.jpg" {
		t.Errorf("photo = %q", row.Photo)
	}
	// Flood zone weight 5 * grade 4, Main Entrance weight 5 * grade 5.
	if row.Scores.Overall != 45 {
		t.Errorf("overall = %d, want 45", row.Scores.Overall)
	}
	if row.Checks != "1/4" {
		t.Errorf("checks = %q, want 1/4", row.Checks)
	}
	if len(row.Scores.Subtotals) != 7 {
		t.Errorf("subtotals = %d, want one per rubric category", len(row.Scores.Subtotals))
	}
}
