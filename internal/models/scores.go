package models

import (
	"encoding/json"
	"sort"
)

// ScoreSet maps criterion identity to the chosen grade for one home.
// Grades are 0-5 for graded criteria and {0,5} for boolean criteria.
// Missing entries read as 0. A ScoreSet belongs to exactly one HomeRecord.
type ScoreSet map[CriterionKey]int

// Grade returns the stored grade for key, or 0 when absent.
func (s ScoreSet) Grade(key CriterionKey) int {
	return s[key]
}

// Clone returns an independent copy so records never share score state.
func (s ScoreSet) Clone() ScoreSet {
	out := make(ScoreSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// scoreEntry is the wire form of one grade. The JSON representation is an
// array of entries rather than an object, since struct keys cannot be JSON
// object keys and a joined-string key would collide on separator characters.
type scoreEntry struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Grade    int    `json:"grade"`
}

// MarshalJSON encodes the set as an entry array sorted by (category, name)
// so the wire form is deterministic.
func (s ScoreSet) MarshalJSON() ([]byte, error) {
	entries := make([]scoreEntry, 0, len(s))
	for k, v := range s {
		entries = append(entries, scoreEntry{Category: k.Category, Name: k.Name, Grade: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].Name < entries[j].Name
	})
	return json.Marshal(entries)
}

// UnmarshalJSON decodes the entry-array wire form. Later duplicates win.
func (s *ScoreSet) UnmarshalJSON(data []byte) error {
	var entries []scoreEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	out := make(ScoreSet, len(entries))
	for _, e := range entries {
		out[CriterionKey{Category: e.Category, Name: e.Name}] = e.Grade
	}
	*s = out
	return nil
}
