package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS homes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	address    TEXT NOT NULL,
	city       TEXT NOT NULL DEFAULT '',
	community  TEXT NOT NULL DEFAULT '',
	builder    TEXT NOT NULL DEFAULT '',
	info       TEXT NOT NULL DEFAULT '{}',
	photos     TEXT NOT NULL DEFAULT '[]',
	scores     TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_homes_city ON homes(city);
CREATE INDEX IF NOT EXISTS idx_homes_builder ON homes(builder);
`

// SQLite implements Provider on a SQLite database. AUTOINCREMENT ids give
// the stable, never-reused identity the API addresses records by.
type SQLite struct {
	conn *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// The ":memory:" path maps to a shared in-memory database so all pooled
// connections see the same data.
func Open(path string) (*SQLite, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	if path == ":memory:" {
		dsn = "file:othala?mode=memory&cache=shared"
	}
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	// A single connection keeps an in-memory database alive and serializes
	// writers; the collection sees at most one in-flight mutation anyway.
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// Insert stores a new record and assigns its id.
func (s *SQLite) Insert(rec *models.HomeRecord) (int64, error) {
	info, photos, scores, err := marshalColumns(rec)
	if err != nil {
		return 0, err
	}
	res, err := s.conn.Exec(`
		INSERT INTO homes (address, city, community, builder, info, photos, scores, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Info.Address, rec.Info.City, rec.Info.Community, rec.Info.Builder,
		info, photos, scores, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("store: insert home: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: last insert id: %w", err)
	}
	rec.ID = id
	return id, nil
}

// Get returns one record by id.
func (s *SQLite) Get(id int64) (*models.HomeRecord, error) {
	row := s.conn.QueryRow(`
		SELECT id, info, photos, scores, created_at, updated_at
		FROM homes WHERE id = ?
	`, id)
	rec, err := scanHome(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// List returns matching records in insertion order (id ascending).
func (s *SQLite) List(f Filter) ([]models.HomeRecord, int, error) {
	where, args := filterClause(f)

	var total int
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM homes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count homes: %w", err)
	}

	query := `
		SELECT id, info, photos, scores, created_at, updated_at
		FROM homes` + where + ` ORDER BY id ASC`
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list homes: %w", err)
	}
	defer rows.Close()

	out := make([]models.HomeRecord, 0)
	for rows.Next() {
		rec, err := scanHome(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *rec)
	}
	return out, total, rows.Err()
}

// Update replaces the record's info, photos, and scores in one statement.
func (s *SQLite) Update(rec *models.HomeRecord) error {
	info, photos, scores, err := marshalColumns(rec)
	if err != nil {
		return err
	}
	res, err := s.conn.Exec(`
		UPDATE homes SET
			address    = ?,
			city       = ?,
			community  = ?,
			builder    = ?,
			info       = ?,
			photos     = ?,
			scores     = ?,
			updated_at = ?
		WHERE id = ?
	`, rec.Info.Address, rec.Info.City, rec.Info.Community, rec.Info.Builder,
		info, photos, scores, rec.UpdatedAt, rec.ID)
	if err != nil {
		return fmt.Errorf("store: update home: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes one record. A missing id is an error, not a no-op.
func (s *SQLite) Delete(id int64) error {
	res, err := s.conn.Exec(`DELETE FROM homes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete home: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Verify *SQLite satisfies Provider at compile time.
var _ Provider = (*SQLite)(nil)

func filterClause(f Filter) (string, []any) {
	var conds []string
	var args []any
	if f.City != "" {
		conds = append(conds, "city = ?")
		args = append(args, f.City)
	}
	if f.Builder != "" {
		conds = append(conds, "builder = ?")
		args = append(args, f.Builder)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func marshalColumns(rec *models.HomeRecord) (info, photos, scores string, err error) {
	infoJSON, err := json.Marshal(rec.Info)
	if err != nil {
		return "", "", "", fmt.Errorf("store: marshal info: %w", err)
	}
	photoList := rec.Photos
	if photoList == nil {
		photoList = []models.PhotoRef{}
	}
	photosJSON, err := json.Marshal(photoList)
	if err != nil {
		return "", "", "", fmt.Errorf("store: marshal photos: %w", err)
	}
	scoreSet := rec.Scores
	if scoreSet == nil {
		scoreSet = models.ScoreSet{}
	}
	scoresJSON, err := json.Marshal(scoreSet)
	if err != nil {
		return "", "", "", fmt.Errorf("store: marshal scores: %w", err)
	}
	return string(infoJSON), string(photosJSON), string(scoresJSON), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHome(row rowScanner) (*models.HomeRecord, error) {
	var rec models.HomeRecord
	var info, photos, scores string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&rec.ID, &info, &photos, &scores, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("store: scan home: %w", err)
	}
	if err := json.Unmarshal([]byte(info), &rec.Info); err != nil {
		return nil, fmt.Errorf("store: unmarshal info: %w", err)
	}
	if err := json.Unmarshal([]byte(photos), &rec.Photos); err != nil {
		return nil, fmt.Errorf("store: unmarshal photos: %w", err)
	}
	if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
		return nil, fmt.Errorf("store: unmarshal scores: %w", err)
	}
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	if rec.Photos == nil {
		rec.Photos = []models.PhotoRef{}
	}
	if rec.Scores == nil {
		rec.Scores = models.ScoreSet{}
	}
	return &rec, nil
}
