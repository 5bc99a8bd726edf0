package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the single-slot queue backed by an in-memory SQLite database.
//
// The database is opened with a single connection so all operations are
// serialized; with a queue depth bounded at one, that is the only mutual
// exclusion the store needs.
type Store struct {
	db *sql.DB
}

// Open initializes the in-memory queue database and applies the schema.
// State is lost when the process exits.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A second connection would see its own empty :memory: database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Replace unconditionally discards any existing item and stores the given
// one as the sole queue entry. The evicted item's artifact is not removed
// from disk; it is orphaned, which is accepted behavior.
func (s *Store) Replace(ctx context.Context, storedName, originalName, artifactPath string) (*Item, error) {
	storedName = strings.TrimSpace(storedName)
	if storedName == "" {
		return nil, errors.New("stored name required")
	}
	if artifactPath == "" {
		return nil, errors.New("artifact path required")
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM queue_items`); err != nil {
		return nil, fmt.Errorf("evict previous item: %w", err)
	}

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO queue_items (
            stored_name, original_name, artifact_path, status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		storedName,
		originalName,
		artifactPath,
		StatusQueued,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace: %w", err)
	}
	return s.getByID(ctx, id)
}

// FindByStoredName returns the item matching a stored name, or nil when the
// queue holds no such item. Absence is not an error.
func (s *Store) FindByStoredName(ctx context.Context, storedName string) (*Item, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+itemColumns+` FROM queue_items WHERE stored_name = ?`,
		storedName,
	)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by stored name: %w", err)
	}
	return item, nil
}

// MergeClassification records a verdict against the item with the given
// stored name, stamping it with the server clock. A later verdict for the
// same name replaces the earlier one. When no item matches, the verdict is
// silently discarded and (nil, nil) is returned: orphan verdicts are normal.
func (s *Store) MergeClassification(ctx context.Context, storedName string, isHuman bool) (*Item, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE queue_items
         SET status = ?, verdict_is_human = ?, verdict_observed_at = ?, updated_at = ?
         WHERE stored_name = ?`,
		StatusClassified,
		boolToInt(isHuman),
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
		storedName,
	)
	if err != nil {
		return nil, fmt.Errorf("merge classification: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.FindByStoredName(ctx, storedName)
}

// List returns the queue contents ordered by creation time: an empty slice
// or a singleton, given the single-slot invariant.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM queue_items ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list queue items: %w", err)
	}
	defer rows.Close()

	items := make([]*Item, 0, 1)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Current returns the occupant of the queue slot, or nil when empty.
func (s *Store) Current(ctx context.Context) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM queue_items ORDER BY created_at LIMIT 1`)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current item: %w", err)
	}
	return item, nil
}

// Stats returns a count of items grouped by status. Every known status is
// present in the result, zero-valued when absent from the queue.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM queue_items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("queue stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int, len(allStatuses))
	for _, status := range AllStatuses() {
		stats[status] = 0
	}
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// Clear removes all items from the queue.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM queue_items`)
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) getByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM queue_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

const itemColumns = "id, stored_name, original_name, artifact_path, status, created_at, updated_at, verdict_is_human, verdict_observed_at"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id          int64
		storedName  string
		origName    string
		artifact    string
		statusStr   string
		createdRaw  string
		updatedRaw  string
		verdictHum  sql.NullInt64
		verdictSeen sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&storedName,
		&origName,
		&artifact,
		&statusStr,
		&createdRaw,
		&updatedRaw,
		&verdictHum,
		&verdictSeen,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:           id,
		StoredName:   storedName,
		OriginalName: origName,
		ArtifactPath: artifact,
		Status:       Status(statusStr),
	}

	created, err := parseTimeString(createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for %s: %w", storedName, err)
	}
	item.CreatedAt = created

	updated, err := parseTimeString(updatedRaw)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at for %s: %w", storedName, err)
	}
	item.UpdatedAt = updated

	if verdictHum.Valid && verdictSeen.Valid {
		observed, err := parseTimeString(verdictSeen.String)
		if err != nil {
			return nil, fmt.Errorf("parse verdict_observed_at for %s: %w", storedName, err)
		}
		item.Classification = &Classification{
			IsHuman:    verdictHum.Int64 != 0,
			ObservedAt: observed,
		}
	}
	return item, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
