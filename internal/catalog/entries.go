package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const entryColumns = `path, kind, codec, container, size, duration_ms, width, height,
	framerate, channels, payload, request_id, error, probed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry    Entry
		probedAt string
	)
	if err := row.Scan(
		&entry.Path,
		&entry.Kind,
		&entry.Codec,
		&entry.Container,
		&entry.Size,
		&entry.DurationMs,
		&entry.Width,
		&entry.Height,
		&entry.Framerate,
		&entry.Channels,
		&entry.Payload,
		&entry.RequestID,
		&entry.Error,
		&probedAt,
	); err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, probedAt); err == nil {
		entry.ProbedAt = ts
	}
	return &entry, nil
}

// Record inserts or replaces the entry for e.Path.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if strings.TrimSpace(e.Path) == "" {
		return errors.New("record entry: path is empty")
	}
	if strings.TrimSpace(e.Kind) == "" {
		return errors.New("record entry: kind is empty")
	}
	if e.ProbedAt.IsZero() {
		e.ProbedAt = time.Now().UTC()
	}

	_, err := s.execWithRetry(ctx, `INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			kind = excluded.kind,
			codec = excluded.codec,
			container = excluded.container,
			size = excluded.size,
			duration_ms = excluded.duration_ms,
			width = excluded.width,
			height = excluded.height,
			framerate = excluded.framerate,
			channels = excluded.channels,
			payload = excluded.payload,
			request_id = excluded.request_id,
			error = excluded.error,
			probed_at = excluded.probed_at`,
		e.Path, e.Kind, e.Codec, e.Container, e.Size, e.DurationMs, e.Width, e.Height,
		e.Framerate, e.Channels, e.Payload, e.RequestID, e.Error,
		e.ProbedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record entry %s: %w", e.Path, err)
	}
	return nil
}

// Get returns the entry for path, or nil when the path was never recorded.
func (s *Store) Get(ctx context.Context, path string) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE path = ?`, path)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// List returns entries ordered by path, optionally filtered to the given kinds.
func (s *Store) List(ctx context.Context, kinds ...string) ([]*Entry, error) {
	ctx = ensureContext(ctx)

	query := `SELECT ` + entryColumns + ` FROM entries`
	args := make([]any, 0, len(kinds))
	if len(kinds) > 0 {
		for _, kind := range kinds {
			args = append(args, kind)
		}
		query += ` WHERE kind IN (` + makePlaceholders(len(kinds)) + `)`
	}
	query += ` ORDER BY path`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Remove deletes the entry for path and reports whether a row existed.
func (s *Store) Remove(ctx context.Context, path string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM entries WHERE path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("remove entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove entry: %w", err)
	}
	return affected > 0, nil
}

// Count returns the number of entries per kind.
func (s *Store) Count(ctx context.Context) (map[string]int, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(1) FROM entries GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			kind  string
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[kind] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

func makePlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
