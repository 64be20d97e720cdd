package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gramops/gramops/internal/models"
)

// CredentialRepository stores captured session credentials.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new credential repository.
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create stores a new credential and returns it with its assigned id.
func (r *CredentialRepository) Create(ctx context.Context, cred models.Credential) (models.Credential, error) {
	if cred.ID == "" {
		cred.ID = uuid.New().String()
	}
	cred.CreatedAt = time.Now()

	query := `
		INSERT INTO credentials (id, user_id, label, cookie, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, cred.ID, cred.UserID, cred.Label, cred.Cookie, cred.CreatedAt)
	if err != nil {
		return models.Credential{}, fmt.Errorf("failed to insert credential: %w", err)
	}

	return cred, nil
}

// Get retrieves a credential by id.
func (r *CredentialRepository) Get(ctx context.Context, id string) (*models.Credential, error) {
	query := `
		SELECT id, user_id, label, cookie, created_at
		FROM credentials
		WHERE id = $1
	`

	var cred models.Credential
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cred.ID,
		&cred.UserID,
		&cred.Label,
		&cred.Cookie,
		&cred.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

// ListByUser retrieves a user's credentials, oldest first, so "first
// credential" selection by the dispatcher stays deterministic.
func (r *CredentialRepository) ListByUser(ctx context.Context, userID string) ([]models.Credential, error) {
	query := `
		SELECT id, user_id, label, cookie, created_at
		FROM credentials
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creds := []models.Credential{}
	for rows.Next() {
		var cred models.Credential
		if err := rows.Scan(&cred.ID, &cred.UserID, &cred.Label, &cred.Cookie, &cred.CreatedAt); err != nil {
			return nil, err
		}
		creds = append(creds, cred)
	}

	return creds, rows.Err()
}

// Delete removes a credential owned by the user. The returned bool reports
// whether a row was deleted.
func (r *CredentialRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete credential %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
