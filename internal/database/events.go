package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"media-scan/internal/logging"
	"media-scan/internal/metrics"
)

// closeRows closes a result set and logs the error, which is all a caller
// can do with it at that point.
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logging.Warn("failed to close result set: %v", err)
	}
}

// findChunkSize bounds the number of bound variables per set-membership
// query. SQLite caps bound parameters per statement, so very large scan
// results are answered in a few large queries rather than one.
const findChunkSize = 500

// FindExistingPaths returns the subset of paths that already have an event
// recorded for the given plugin. The lookup is batched: one query per chunk
// of paths, never a per-item lookup.
func (d *Database) FindExistingPaths(ctx context.Context, plugin string, paths []string) (map[string]struct{}, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("find_existing_paths", start, err) }()

	existing := make(map[string]struct{}, len(paths))
	if len(paths) == 0 {
		return existing, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for offset := 0; offset < len(paths); offset += findChunkSize {
		end := offset + findChunkSize
		if end > len(paths) {
			end = len(paths)
		}
		chunk := paths[offset:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
		query := fmt.Sprintf(
			"SELECT path FROM events WHERE plugin = ? AND path IN (%s)",
			placeholders,
		)

		args := make([]interface{}, 0, len(chunk)+1)
		args = append(args, plugin)
		for _, p := range chunk {
			args = append(args, p)
		}

		var rows *sql.Rows
		rows, err = d.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query existing paths: %w", err)
		}

		for rows.Next() {
			var path string
			if err = rows.Scan(&path); err != nil {
				closeRows(rows)
				return nil, fmt.Errorf("failed to scan existing path: %w", err)
			}
			existing[path] = struct{}{}
		}
		if err = rows.Err(); err != nil {
			closeRows(rows)
			return nil, fmt.Errorf("failed to iterate existing paths: %w", err)
		}
		closeRows(rows)
	}

	return existing, nil
}

// InsertEvents commits a batch of events in a single transaction.
// The caller is expected to have deduplicated against the store already;
// the unique (plugin, path) constraint is the final safety net.
func (d *Database) InsertEvents(ctx context.Context, events []Event) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("insert_events", start, err) }()

	if len(events) == 0 {
		return nil
	}

	tx, err := d.BeginBatch()
	if err != nil {
		return fmt.Errorf("failed to begin insert transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (plugin, path, location, timing, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(plugin, path) DO NOTHING
	`)
	if err != nil {
		err = fmt.Errorf("failed to prepare insert: %w", err)
		return d.EndBatch(tx, err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			logging.Warn("failed to close insert statement: %v", closeErr)
		}
	}()

	var inserted int64
	for i := range events {
		ev := &events[i]

		payload, marshalErr := json.Marshal(ev.Media)
		if marshalErr != nil {
			err = fmt.Errorf("failed to encode payload for %s: %w", ev.Path, marshalErr)
			return d.EndBatch(tx, err)
		}

		result, execErr := stmt.ExecContext(ctx,
			ev.Plugin,
			ev.Path,
			ev.Media.LocationName,
			ev.Timing.Unix(),
			string(payload),
		)
		if execErr != nil {
			err = fmt.Errorf("failed to insert event %s: %w", ev.Path, execErr)
			return d.EndBatch(tx, err)
		}
		if rows, raErr := result.RowsAffected(); raErr == nil {
			inserted += rows
		}
	}

	if err = d.EndBatch(tx, nil); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}

	if inserted > 0 {
		metrics.DBRowsAffected.WithLabelValues("insert_events").Observe(float64(inserted))
	}
	return nil
}

// EventsBetween returns all events for the plugin whose timing falls within
// [from, to], ordered oldest first.
func (d *Database) EventsBetween(ctx context.Context, plugin string, from, to time.Time) ([]Event, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("events_between", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, plugin, path, timing, payload
		FROM events
		WHERE plugin = ? AND timing >= ? AND timing <= ?
		ORDER BY timing ASC
	`, plugin, from.Unix(), to.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer closeRows(rows)

	var events []Event
	for rows.Next() {
		var (
			ev      Event
			timing  int64
			payload string
		)
		if err = rows.Scan(&ev.ID, &ev.Plugin, &ev.Path, &timing, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Timing = time.Unix(timing, 0).UTC()
		if err = json.Unmarshal([]byte(payload), &ev.Media); err != nil {
			return nil, fmt.Errorf("failed to decode payload for %s: %w", ev.Path, err)
		}
		events = append(events, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// CountEvents returns the number of events recorded for the plugin.
func (d *Database) CountEvents(ctx context.Context, plugin string) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count_events", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var count int64
	err = d.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE plugin = ?", plugin,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
