package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"instaclone/internal/models"
)

type ConfirmationRepository interface {
	Create(userID int, code string, authType models.AuthType, expiresAt time.Time) (*models.UserConfirmation, error)
	GetByUserAndCode(userID int, code string) (*models.UserConfirmation, error)
	HasUnexpired(userID int, now time.Time) (bool, error)
	Delete(id int64) error
}

type confirmationRepository struct {
	DB *sql.DB
}

func NewConfirmationRepository(db *sql.DB) ConfirmationRepository {
	return &confirmationRepository{DB: db}
}

// Create inserts a fresh row per dispatch; expiry is computed by the caller
// from the auth channel.
func (r *confirmationRepository) Create(userID int, code string, authType models.AuthType, expiresAt time.Time) (*models.UserConfirmation, error) {
	const q = `
		INSERT INTO user_confirmations (user_id, code, auth_type, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	c := &models.UserConfirmation{
		UserID:    userID,
		Code:      code,
		AuthType:  authType,
		ExpiresAt: expiresAt,
	}
	if err := r.DB.QueryRow(q, userID, code, authType, expiresAt).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("confirmation create: %w", err)
	}
	return c, nil
}

func (r *confirmationRepository) GetByUserAndCode(userID int, code string) (*models.UserConfirmation, error) {
	const q = `
		SELECT id, user_id, code, auth_type, is_verified, expires_at, created_at
		FROM user_confirmations
		WHERE user_id = $1 AND code = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := r.DB.QueryRow(q, userID, code)
	var c models.UserConfirmation
	if err := row.Scan(&c.ID, &c.UserID, &c.Code, &c.AuthType, &c.IsVerified, &c.ExpiresAt, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("confirmation lookup: %w", err)
	}
	return &c, nil
}

// HasUnexpired backs the resend throttle: one live code per user at a time.
func (r *confirmationRepository) HasUnexpired(userID int, now time.Time) (bool, error) {
	const q = `
		SELECT EXISTS(
			SELECT 1 FROM user_confirmations WHERE user_id = $1 AND expires_at > $2
		)
	`
	var exists bool
	if err := r.DB.QueryRow(q, userID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("confirmation unexpired check: %w", err)
	}
	return exists, nil
}

// Delete removes a consumed confirmation.
func (r *confirmationRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM user_confirmations WHERE id=$1`, id)
	return err
}
