package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gramops/gramops/internal/models"
)

// ActivityLogRepository stores and retrieves dispatched-action records.
type ActivityLogRepository struct {
	db *sql.DB
}

// NewActivityLogRepository creates a new activity log repository.
func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create inserts a new entry and returns it with its assigned id and
// timestamps. Ids are monotonically increasing.
func (r *ActivityLogRepository) Create(ctx context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `
		INSERT INTO activity_logs (user_id, action, target, status, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID,
		entry.Action,
		entry.Target,
		entry.Status,
		entry.Message,
		entry.CreatedAt,
		entry.UpdatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return models.ActivityLog{}, fmt.Errorf("failed to insert activity log: %w", err)
	}

	return entry, nil
}

// UpdateStatus moves an entry to the given status, refreshing updated_at.
// The returned bool reports whether the entry existed.
func (r *ActivityLogRepository) UpdateStatus(ctx context.Context, id int64, status models.ActivityStatus, message string) (bool, error) {
	query := `
		UPDATE activity_logs
		SET status = $1, message = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, status, message, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to update activity log %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// ListByUser retrieves a user's entries, newest first, truncated to limit.
func (r *ActivityLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	query := `
		SELECT id, user_id, action, target, status, message, created_at, updated_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ActivityLog{}
	for rows.Next() {
		var entry models.ActivityLog
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.Target,
			&entry.Status,
			&entry.Message,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
