/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetHistoryData returns the newest history row of a patient. A patient
// without history yields (nil, nil).
func GetHistoryData(ctx context.Context, pid int64) (*HistoryRecord, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var record HistoryRecord
	err := pool.QueryRow(ctx, `
		SELECT id, pid, date, fields
		FROM history_data
		WHERE pid = $1
		ORDER BY date DESC, id DESC
		LIMIT 1
	`, pid).Scan(&record.ID, &record.PID, &record.Date, &record.Fields)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get history data: %w", err)
	}

	if record.Fields == nil {
		record.Fields = map[string]string{}
	}

	return &record, nil
}

// NewHistoryData inserts a blank history row for a patient and returns its id.
func NewHistoryData(ctx context.Context, pid int64) (int64, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	var id int64
	if err := pool.QueryRow(ctx,
		`INSERT INTO history_data (pid) VALUES ($1) RETURNING id`, pid,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create history data: %w", err)
	}

	return id, nil
}

// UpdateHistoryData merges values into the newest history row of a patient
// and records the replaced values as a revision. A patient without history
// gets a new row.
func UpdateHistoryData(ctx context.Context, pid int64, values map[string]string, changedBy *uuid.UUID) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("Failed to roll back history update", "pid", pid, "error", err)
		}
	}()

	var (
		historyID int64
		previous  map[string]string
	)

	err = tx.QueryRow(ctx, `
		SELECT id, fields
		FROM history_data
		WHERE pid = $1
		ORDER BY date DESC, id DESC
		LIMIT 1
		FOR UPDATE
	`, pid).Scan(&historyID, &previous)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if _, err := tx.Exec(ctx,
			`INSERT INTO history_data (pid, fields) VALUES ($1, $2::jsonb)`, pid, values,
		); err != nil {
			return fmt.Errorf("failed to insert history data: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to lock history data: %w", err)
	default:
		if previous == nil {
			previous = map[string]string{}
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO history_revisions (history_id, pid, changed_by, fields)
			VALUES ($1, $2, $3, $4::jsonb)
		`, historyID, pid, changedBy, previous); err != nil {
			return fmt.Errorf("failed to record history revision: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE history_data
			SET fields = fields || $2::jsonb, date = NOW()
			WHERE id = $1
		`, historyID, values); err != nil {
			return fmt.Errorf("failed to update history data: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit history update: %w", err)
	}

	return nil
}

// ListHistoryRevisions returns the newest revisions of a patient's history.
func ListHistoryRevisions(ctx context.Context, pid int64, limit int) ([]HistoryRevision, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := pool.Query(ctx, `
		SELECT id, history_id, pid, changed_by, changed_at, fields
		FROM history_revisions
		WHERE pid = $1
		ORDER BY changed_at DESC, id DESC
		LIMIT $2
	`, pid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history revisions: %w", err)
	}
	defer rows.Close()

	var revisions []HistoryRevision
	for rows.Next() {
		var revision HistoryRevision
		if err := rows.Scan(
			&revision.ID,
			&revision.HistoryID,
			&revision.PID,
			&revision.ChangedBy,
			&revision.ChangedAt,
			&revision.Fields,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history revision: %w", err)
		}
		revisions = append(revisions, revision)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history revisions: %w", err)
	}

	return revisions, nil
}
