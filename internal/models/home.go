// Package models defines the domain types for Othala.
package models

import "time"

// Kind distinguishes how a criterion is graded.
type Kind string

const (
	// KindGraded criteria are scored on an integer 1-5 scale (0 = unscored).
	KindGraded Kind = "graded"
	// KindBoolean criteria are pass/fail: grade 5 on pass, 0 on fail.
	KindBoolean Kind = "boolean"
)

// CriterionKey identifies a criterion within a rubric. Value equality makes
// it usable as a map key, so score lookups never depend on a string separator.
type CriterionKey struct {
	Category string `json:"category" yaml:"category"`
	Name     string `json:"name" yaml:"name"`
}

// Criterion is one scored line item of a rubric.
type Criterion struct {
	Category string `json:"category" yaml:"category"`
	Name     string `json:"name" yaml:"name"`
	Weight   int    `json:"weight" yaml:"weight"`
	Kind     Kind   `json:"kind" yaml:"kind"`
}

// Key returns the criterion's identity.
func (c Criterion) Key() CriterionKey {
	return CriterionKey{Category: c.Category, Name: c.Name}
}

// PhotoRef is either an external URL or an owned opaque blob. URL takes
// precedence when both are set; blob bytes are never inspected.
type PhotoRef struct {
	URL      string `json:"url,omitempty"`
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Bytes    []byte `json:"bytes,omitempty"`
}

// IsBlob reports whether the reference carries owned bytes rather than a URL.
func (p PhotoRef) IsBlob() bool {
	return p.URL == "" && len(p.Bytes) > 0
}

// HOAIncludes lists which utilities the HOA fee covers.
type HOAIncludes struct {
	Water    bool `json:"water"`
	Sewer    bool `json:"sewer"`
	Garbage  bool `json:"garbage"`
	Gas      bool `json:"gas"`
	Electric bool `json:"electric"`
	Internet bool `json:"internet"`
}

// HomeInfo holds the descriptive attributes of a candidate home. Every field
// is free-form; only Address is required at create time.
type HomeInfo struct {
	City         string      `json:"city"`
	Community    string      `json:"community"`
	Builder      string      `json:"builder"`
	Address      string      `json:"address"`
	PropertyTax  string      `json:"property_tax"`
	MUD          string      `json:"mud"`
	PID          string      `json:"pid"`
	HOA          string      `json:"hoa"`
	HOAIncludes  HOAIncludes `json:"hoa_includes"`
	Restrictions string      `json:"restrictions"`
	ISP          string      `json:"isp"`
	SchoolElem   string      `json:"school_elem"`
	SchoolMiddle string      `json:"school_middle"`
	SchoolHigh   string      `json:"school_high"`
	Notes        string      `json:"notes"`
}

// HomeDraft is the caller-supplied shape for create and update. Update is a
// full replace: the caller sends the complete merged draft, never a patch.
type HomeDraft struct {
	Info   HomeInfo   `json:"info"`
	Photos []PhotoRef `json:"photos"`
	Scores ScoreSet   `json:"scores"`
}

// HomeRecord is one candidate home with its descriptive data, photos, and
// scores. ID is a monotonically increasing surrogate assigned by the store
// and never reused, so identity survives deletes.
type HomeRecord struct {
	ID        int64      `json:"id"`
	Info      HomeInfo   `json:"info"`
	Photos    []PhotoRef `json:"photos"`
	Scores    ScoreSet   `json:"scores"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
