package api

import (
	"github.com/starford/othala/internal/homeservice"
	"github.com/starford/othala/internal/models"
)

// HomeDraftRequest is the request body for creating or updating a home.
// Scores travel as an entry array keyed by (category, name); photo blobs
// carry base64 bytes.
type HomeDraftRequest = models.HomeDraft

// HomeDetail is the full home response type (aliased from the domain layer).
type HomeDetail = models.HomeRecord

// HomeListResponse wraps paginated home listings.
type HomeListResponse struct {
	Homes []models.HomeRecord `json:"homes" validate:"required"`
	Total int                 `json:"total" example:"4" validate:"required"`
}

// SummaryResponse wraps derived summary rows.
type SummaryResponse struct {
	Rows  []homeservice.SummaryRow `json:"rows" validate:"required"`
	Total int                      `json:"total" example:"4" validate:"required"`
}

// RubricResponse describes the loaded rubric.
type RubricResponse struct {
	Criteria    []models.Criterion `json:"criteria" validate:"required"`
	Categories  []string           `json:"categories" validate:"required"`
	MaxPossible int                `json:"max_possible" example:"455" validate:"required"`
}

// PhotoUploadResponse is returned after a successful photo upload.
type PhotoUploadResponse struct {
	ID     int64  `json:"id" example:"3" validate:"required"`
	Name   string `json:"name" example:"frontyard.jpg" validate:"required"`
	Size   int64  `json:"size" example:"12345" validate:"required"`
	Photos int    `json:"photos" example:"2" validate:"required"`
}
