package repositories

import (
	"database/sql"
	"time"

	"instaclone/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	UsernameTaken(username string, excludeUserID int) (bool, error)
	Update(user *models.User) error
	UpdatePassword(userID int, passwordHash string) error
	Delete(id int) error

	// refresh helpers
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int) error
	GetByRefreshToken(token string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userCols = `
	id, COALESCE(email,''), COALESCE(phone_number,''), auth_type, user_status,
	username, first_name, last_name, password_hash, photo,
	refresh_token, refresh_expires_at, refresh_revoked, created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var (
		rt  sql.NullString
		rte sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PhoneNumber, &u.AuthType, &u.UserStatus,
		&u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Photo,
		&rt, &rte, &u.RefreshRevoked, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rt.Valid {
		s := rt.String
		u.RefreshToken = &s
	}
	if rte.Valid {
		t := rte.Time
		u.RefreshExpiresAt = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			email, phone_number, auth_type, user_status,
			username, first_name, last_name, password_hash, photo
		)
		VALUES (NULLIF($1,''), NULLIF($2,''), $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q,
		user.Email,
		user.PhoneNumber,
		user.AuthType,
		user.UserStatus,
		user.Username,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.Photo,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userCols+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userCols+` FROM users WHERE phone_number = $1`, phone))
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userCols+` FROM users WHERE LOWER(username) = LOWER($1)`, username))
}

func (r *userRepository) UsernameTaken(username string, excludeUserID int) (bool, error) {
	const q = `
		SELECT EXISTS(
			SELECT 1 FROM users WHERE LOWER(username) = LOWER($1) AND id <> $2
		)
	`
	var taken bool
	err := r.DB.QueryRow(q, username, excludeUserID).Scan(&taken)
	return taken, err
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET
			email=NULLIF($1,''),
			phone_number=NULLIF($2,''),
			user_status=$3,
			username=$4,
			first_name=$5,
			last_name=$6,
			password_hash=$7,
			photo=$8
		WHERE id=$9
	`
	_, err := r.DB.Exec(q,
		user.Email,
		user.PhoneNumber,
		user.UserStatus,
		user.Username,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.Photo,
		user.ID,
	)
	return err
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, userID)
	return err
}

func (r *userRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	return err
}

// ===== refresh helpers =====

func (r *userRepository) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, token, expiresAt, userID)
	return err
}

func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE refresh_token=$3
		RETURNING ` + userCols
	return scanUser(r.DB.QueryRow(q, newToken, newExpiresAt, oldToken))
}

func (r *userRepository) ClearRefresh(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET refresh_token=NULL, refresh_expires_at=NULL, refresh_revoked=TRUE
		WHERE id=$1
	`, userID)
	return err
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userCols+` FROM users WHERE refresh_token = $1`, token))
}
