package scoring

import (
	"testing"

	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/rubric"
)

func tourRubric(t *testing.T) *rubric.Rubric {
	t.Helper()
	r, err := rubric.New([]models.Criterion{
		{Category: "Env", Name: "Flood", Weight: 5},
		{Category: "Env", Name: "Noise", Weight: 3},
		{Category: "Vaastu", Name: "Entrance", Weight: 5, Kind: models.KindBoolean},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func key(cat, name string) models.CriterionKey {
	return models.CriterionKey{Category: cat, Name: name}
}

func TestScoringScenario(t *testing.T) {
	r := tourRubric(t)
	scores := models.ScoreSet{
		key("Env", "Flood"):       4,
		key("Env", "Noise"):       2,
		key("Vaastu", "Entrance"): 5,
	}

	if got := CategorySubtotal(r, scores, "Env"); got != 26 {
		t.Errorf("Env subtotal = %d, want 26", got)
	}
	if got := CategorySubtotal(r, scores, "Vaastu"); got != 25 {
		t.Errorf("Vaastu subtotal = %d, want 25", got)
	}
	if got := OverallScore(r, scores); got != 51 {
		t.Errorf("overall = %d, want 51", got)
	}
	if got := MaxPossibleScore(r); got != 65 {
		t.Errorf("max possible = %d, want 65", got)
	}
	passed, total := BooleanPassCount(r, scores)
	if passed != 1 || total != 1 {
		t.Errorf("pass count = %d/%d, want 1/1", passed, total)
	}
}

func TestOverallEqualsSumOfSubtotals(t *testing.T) {
	r, err := rubric.Default()
	if err != nil {
		t.Fatal(err)
	}
	// Spread of grades across the whole rubric.
	scores := models.ScoreSet{}
	for i, c := range r.Criteria() {
		if c.Kind == models.KindBoolean {
			scores[c.Key()] = 5 * (i % 2)
		} else {
			scores[c.Key()] = i % 6
		}
	}

	sum := 0
	for _, cat := range r.Categories() {
		sum += CategorySubtotal(r, scores, cat)
	}
	if overall := OverallScore(r, scores); overall != sum {
		t.Errorf("overall = %d, sum of subtotals = %d", overall, sum)
	}
	if overall := OverallScore(r, scores); overall > MaxPossibleScore(r) {
		t.Errorf("overall %d exceeds max possible %d", overall, MaxPossibleScore(r))
	}
}

func TestCategorySubtotal_UnknownCategory(t *testing.T) {
	r := tourRubric(t)
	if got := CategorySubtotal(r, models.ScoreSet{}, "Schools"); got != 0 {
		t.Errorf("unknown category subtotal = %d, want 0", got)
	}
}

func TestMissingGradesReadAsZero(t *testing.T) {
	r := tourRubric(t)
	scores := models.ScoreSet{key("Env", "Flood"): 3}
	if got := OverallScore(r, scores); got != 15 {
		t.Errorf("overall = %d, want 15", got)
	}
}

func TestBooleanPassCount(t *testing.T) {
	r, err := rubric.New([]models.Criterion{
		{Category: "V", Name: "a", Weight: 1, Kind: models.KindBoolean},
		{Category: "V", Name: "b", Weight: 1, Kind: models.KindBoolean},
		{Category: "V", Name: "c", Weight: 1, Kind: models.KindBoolean},
		{Category: "G", Name: "graded", Weight: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	scores := models.ScoreSet{
		key("V", "a"):      5,
		key("V", "b"):      0,
		key("G", "graded"): 5, // graded criteria never count toward the tally
	}
	passed, total := BooleanPassCount(r, scores)
	if passed != 1 {
		t.Errorf("passed = %d, want 1", passed)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	// Total is independent of the score set.
	_, total = BooleanPassCount(r, models.ScoreSet{})
	if total != 3 {
		t.Errorf("total with empty scores = %d, want 3", total)
	}
}

func TestEmptyRubric(t *testing.T) {
	r, err := rubric.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	scores := models.ScoreSet{key("Env", "Flood"): 5}
	if got := OverallScore(r, scores); got != 0 {
		t.Errorf("overall = %d, want 0", got)
	}
	if got := MaxPossibleScore(r); got != 0 {
		t.Errorf("max possible = %d, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	r := tourRubric(t)
	scores := models.ScoreSet{
		key("Env", "Flood"):       4,
		key("Env", "Noise"):       2,
		key("Vaastu", "Entrance"): 5,
	}
	sum := Summarize(r, scores)
	if len(sum.Subtotals) != 2 {
		t.Fatalf("subtotals = %d, want 2", len(sum.Subtotals))
	}
	if sum.Subtotals[0].Category != "Env" || sum.Subtotals[0].Subtotal != 26 {
		t.Errorf("subtotal[0] = %+v", sum.Subtotals[0])
	}
	if sum.Subtotals[1].Category != "Vaastu" || sum.Subtotals[1].Subtotal != 25 {
		t.Errorf("subtotal[1] = %+v", sum.Subtotals[1])
	}
	if sum.Overall != 51 || sum.MaxPossible != 65 {
		t.Errorf("overall = %d, max = %d", sum.Overall, sum.MaxPossible)
	}
	if sum.Passed != 1 || sum.Total != 1 {
		t.Errorf("checks = %d/%d", sum.Passed, sum.Total)
	}
}
