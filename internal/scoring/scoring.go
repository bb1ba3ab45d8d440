// Package scoring implements the pure scoring engine over a rubric and one
// home's score set. Every function is total: unknown categories and missing
// grades read as zero. Nothing here divides or normalizes; the overall score
// is a flat weighted sum, so categories with more or heavier criteria
// dominate it.
package scoring

import (
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/rubric"
)

// booleanPassGrade is the threshold at which a boolean criterion counts as
// passed. Boolean grades are stored as 0 or 5.
const booleanPassGrade = 5

// CategorySubtotal sums grade*weight over the criteria of one category.
// A category absent from the rubric yields 0.
func CategorySubtotal(r *rubric.Rubric, scores models.ScoreSet, category string) int {
	total := 0
	for _, c := range r.CriteriaOf(category) {
		total += scores.Grade(c.Key()) * c.Weight
	}
	return total
}

// BooleanPassCount tallies the pass/fail criteria: total counts every
// boolean-kind criterion in the rubric, passed counts those graded at the
// pass threshold or above.
func BooleanPassCount(r *rubric.Rubric, scores models.ScoreSet) (passed, total int) {
	for _, c := range r.Criteria() {
		if c.Kind != models.KindBoolean {
			continue
		}
		total++
		if scores.Grade(c.Key()) >= booleanPassGrade {
			passed++
		}
	}
	return passed, total
}

// OverallScore sums grade*weight across every criterion of every category.
func OverallScore(r *rubric.Rubric, scores models.ScoreSet) int {
	total := 0
	for _, c := range r.Criteria() {
		total += scores.Grade(c.Key()) * c.Weight
	}
	return total
}

// MaxPossibleScore is the overall score with every criterion at the top
// grade. It depends only on the rubric, never on a score set.
func MaxPossibleScore(r *rubric.Rubric) int {
	return r.MaxPossibleScore()
}

// CategoryScore is one category's subtotal in rubric order.
type CategoryScore struct {
	Category string `json:"category"`
	Subtotal int    `json:"subtotal"`
}

// Summary bundles every derived value for one home. It is computed on demand
// and never cached, so it always reflects the current scores.
type Summary struct {
	Subtotals   []CategoryScore `json:"subtotals"`
	Overall     int             `json:"overall"`
	Passed      int             `json:"passed"`
	Total       int             `json:"total"`
	MaxPossible int             `json:"max_possible"`
}

// Summarize derives the full summary for one score set.
func Summarize(r *rubric.Rubric, scores models.ScoreSet) Summary {
	cats := r.Categories()
	s := Summary{
		Subtotals:   make([]CategoryScore, 0, len(cats)),
		MaxPossible: r.MaxPossibleScore(),
	}
	for _, cat := range cats {
		s.Subtotals = append(s.Subtotals, CategoryScore{
			Category: cat,
			Subtotal: CategorySubtotal(r, scores, cat),
		})
	}
	s.Overall = OverallScore(r, scores)
	s.Passed, s.Total = BooleanPassCount(r, scores)
	return s
}
