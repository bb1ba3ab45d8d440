// Package rubric provides the immutable, versionable scoring rubric: an
// ordered table of weighted criteria grouped into categories. A rubric is
// validated once at construction and never mutated afterwards.
package rubric

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
)

// Rubric is an ordered sequence of criteria. Construction order defines
// display order; categories are kept in first-seen order.
type Rubric struct {
	criteria   []models.Criterion
	categories []string
	byKey      map[models.CriterionKey]models.Criterion
	byCategory map[string][]models.Criterion
}

// New builds a Rubric from criteria. It fails with apperr.ErrConfiguration
// on a duplicate (category, name) identity, a non-positive weight, or an
// unknown kind. An empty kind defaults to graded.
func New(criteria []models.Criterion) (*Rubric, error) {
	r := &Rubric{
		criteria:   make([]models.Criterion, 0, len(criteria)),
		byKey:      make(map[models.CriterionKey]models.Criterion, len(criteria)),
		byCategory: make(map[string][]models.Criterion),
	}
	for _, c := range criteria {
		if c.Kind == "" {
			c.Kind = models.KindGraded
		}
		if c.Kind != models.KindGraded && c.Kind != models.KindBoolean {
			return nil, fmt.Errorf("%w: criterion %s/%s: unknown kind %q", apperr.ErrConfiguration, c.Category, c.Name, c.Kind)
		}
		if c.Category == "" || c.Name == "" {
			return nil, fmt.Errorf("%w: criterion needs both category and name", apperr.ErrConfiguration)
		}
		if c.Weight <= 0 {
			return nil, fmt.Errorf("%w: criterion %s/%s: weight must be positive", apperr.ErrConfiguration, c.Category, c.Name)
		}
		key := c.Key()
		if _, ok := r.byKey[key]; ok {
			return nil, fmt.Errorf("%w: duplicate criterion %s/%s", apperr.ErrConfiguration, c.Category, c.Name)
		}
		if _, seen := r.byCategory[c.Category]; !seen {
			r.categories = append(r.categories, c.Category)
		}
		r.criteria = append(r.criteria, c)
		r.byKey[key] = c
		r.byCategory[c.Category] = append(r.byCategory[c.Category], c)
	}
	return r, nil
}

// Criteria returns all criteria in definition order.
func (r *Rubric) Criteria() []models.Criterion {
	out := make([]models.Criterion, len(r.criteria))
	copy(out, r.criteria)
	return out
}

// Categories returns the distinct categories in first-seen order.
func (r *Rubric) Categories() []string {
	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

// CriteriaOf returns the criteria of one category in definition order.
// An unknown category yields an empty slice, not an error.
func (r *Rubric) CriteriaOf(category string) []models.Criterion {
	src := r.byCategory[category]
	out := make([]models.Criterion, len(src))
	copy(out, src)
	return out
}

// Lookup returns the criterion with the given identity.
func (r *Rubric) Lookup(key models.CriterionKey) (models.Criterion, bool) {
	c, ok := r.byKey[key]
	return c, ok
}

// Len returns the number of criteria.
func (r *Rubric) Len() int {
	return len(r.criteria)
}

// MaxPossibleScore is the overall score if every criterion were graded at the
// top of the scale: sum of weight*5 across all criteria, booleans included
// (a pass maps to the top grade). Constant for a fixed rubric.
func (r *Rubric) MaxPossibleScore() int {
	total := 0
	for _, c := range r.criteria {
		total += c.Weight * 5
	}
	return total
}

// file is the YAML shape of a rubric definition.
type file struct {
	Criteria []models.Criterion `yaml:"criteria"`
}

// Parse builds a rubric from YAML bytes.
func Parse(data []byte) (*Rubric, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse rubric: %v", apperr.ErrConfiguration, err)
	}
	return New(f.Criteria)
}

// Load reads a rubric definition from a YAML file. A missing file falls back
// to the built-in default rubric; any other failure is fatal configuration.
func Load(path string) (*Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default()
		}
		return nil, fmt.Errorf("%w: read rubric %s: %v", apperr.ErrConfiguration, path, err)
	}
	return Parse(data)
}
