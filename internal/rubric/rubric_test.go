package rubric

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
)

func TestNew_DuplicateIdentity(t *testing.T) {
	_, err := New([]models.Criterion{
		{Category: "Env", Name: "Flood", Weight: 5},
		{Category: "Env", Name: "Flood", Weight: 3},
	})
	if err == nil {
		t.Fatal("expected error for duplicate criterion")
	}
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestNew_InvalidWeight(t *testing.T) {
	for _, w := range []int{0, -1} {
		_, err := New([]models.Criterion{{Category: "Env", Name: "Flood", Weight: w}})
		if !errors.Is(err, apperr.ErrConfiguration) {
			t.Errorf("weight %d: error = %v, want ErrConfiguration", w, err)
		}
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New([]models.Criterion{{Category: "Env", Name: "Flood", Weight: 5, Kind: "ternary"}})
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestNew_EmptyKindDefaultsGraded(t *testing.T) {
	r, err := New([]models.Criterion{{Category: "Env", Name: "Flood", Weight: 5}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c, ok := r.Lookup(models.CriterionKey{Category: "Env", Name: "Flood"})
	if !ok {
		t.Fatal("criterion not found")
	}
	if c.Kind != models.KindGraded {
		t.Errorf("kind = %q, want graded", c.Kind)
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	r, err := New([]models.Criterion{
		{Category: "B", Name: "one", Weight: 1},
		{Category: "A", Name: "one", Weight: 1},
		{Category: "B", Name: "two", Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cats := r.Categories()
	if len(cats) != 2 || cats[0] != "B" || cats[1] != "A" {
		t.Errorf("categories = %v, want [B A]", cats)
	}
	if n := len(r.CriteriaOf("B")); n != 2 {
		t.Errorf("criteria of B = %d, want 2", n)
	}
	if n := len(r.CriteriaOf("missing")); n != 0 {
		t.Errorf("criteria of missing category = %d, want 0", n)
	}
}

func TestMaxPossibleScore(t *testing.T) {
	r, err := New([]models.Criterion{
		{Category: "Env", Name: "Flood", Weight: 5},
		{Category: "Env", Name: "Noise", Weight: 3},
		{Category: "Vaastu", Name: "Entrance", Weight: 5, Kind: models.KindBoolean},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Booleans count at the top grade too.
	if got := r.MaxPossibleScore(); got != 65 {
		t.Errorf("max possible = %d, want 65", got)
	}
}

func TestNew_EmptyRubric(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("empty rubric should be valid: %v", err)
	}
	if r.Len() != 0 || r.MaxPossibleScore() != 0 {
		t.Errorf("len = %d, max = %d, want 0, 0", r.Len(), r.MaxPossibleScore())
	}
}

func TestDefault(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if r.Len() != 27 {
		t.Errorf("criteria = %d, want 27", r.Len())
	}
	cats := r.Categories()
	want := []string{"Environmental", "Neighborhood", "Community", "Home", "Builder", "School", "Vaastu"}
	if len(cats) != len(want) {
		t.Fatalf("categories = %v", cats)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category[%d] = %q, want %q", i, cats[i], want[i])
		}
	}
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
criteria:
  - {category: Env, name: Flood, weight: 5}
  - {category: Vaastu, name: Entrance, weight: 5, kind: boolean}
`)
	r, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Len() != 2 {
		t.Errorf("len = %d, want 2", r.Len())
	}
	c, _ := r.Lookup(models.CriterionKey{Category: "Vaastu", Name: "Entrance"})
	if c.Kind != models.KindBoolean {
		t.Errorf("kind = %q, want boolean", c.Kind)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("criteria: [[[["))
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Len() != 27 {
		t.Errorf("len = %d, want default rubric", r.Len())
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	err := os.WriteFile(path, []byte("criteria:\n  - {category: Env, name: Flood, weight: 5}\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("len = %d, want 1", r.Len())
	}
}
