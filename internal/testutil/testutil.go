// Package testutil provides shared test helpers for setting up stores and rubrics.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/othala/internal/rubric"
	"github.com/starford/othala/internal/store"
)

// TestStore creates a temporary SQLite-backed home store that is
// automatically cleaned up.
func TestStore(t *testing.T) *store.SQLite {
	t.Helper()
	dbFile, err := os.CreateTemp("", "othala-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	st, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestRubric returns the built-in default rubric.
func TestRubric(t *testing.T) *rubric.Rubric {
	t.Helper()
	r, err := rubric.Default()
	if err != nil {
		t.Fatal(err)
	}
	return r
}
