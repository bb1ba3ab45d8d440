// Package store persists the home collection. The default DSN is an
// in-memory SQLite database, so nothing survives a restart.
package store

import "github.com/starford/othala/internal/models"

// Filter narrows and pages List results. Zero values mean "no constraint";
// a Limit of 0 returns everything.
type Filter struct {
	City    string
	Builder string
	Limit   int
	Offset  int
}

// Provider is the interface for home record persistence. Records are listed
// in insertion order; ids are monotonically increasing and never reused.
type Provider interface {
	// Insert stores a new record and returns its assigned id.
	Insert(rec *models.HomeRecord) (int64, error)
	// Get returns the record with the given id, or apperr.ErrNotFound.
	Get(id int64) (*models.HomeRecord, error)
	// List returns matching records in insertion order plus the total
	// match count before paging.
	List(f Filter) ([]models.HomeRecord, int, error)
	// Update replaces the stored info, photos, and scores of one record
	// in a single statement, or fails with apperr.ErrNotFound.
	Update(rec *models.HomeRecord) error
	// Delete removes a record, or fails with apperr.ErrNotFound.
	Delete(id int64) error
	// Close releases the underlying database.
	Close() error
}
