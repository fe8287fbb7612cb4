package models

import "time"

type AuthType string

const (
	AuthTypeEmail AuthType = "email"
	AuthTypePhone AuthType = "phone"
)

// UserStatus is the registration-progress state machine value:
// new -> code_verified -> done -> photo_done, forward only.
type UserStatus string

const (
	StatusNew          UserStatus = "new"
	StatusCodeVerified UserStatus = "code_verified"
	StatusDone         UserStatus = "done"
	StatusPhotoDone    UserStatus = "photo_done"
)

// LoginEligible reports whether the registration is far enough for login.
func (s UserStatus) LoginEligible() bool {
	return s == StatusDone || s == StatusPhotoDone
}

type User struct {
	ID          int        `json:"id"`
	Email       string     `json:"email,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	AuthType    AuthType   `json:"auth_type"`
	UserStatus  UserStatus `json:"user_status"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Photo       string     `json:"photo,omitempty"`

	PasswordHash string `json:"-"`

	// refresh token stored on the user row, opaque string
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`
	RefreshRevoked   bool       `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// UserBrief is the author snippet embedded in feed payloads.
type UserBrief struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Photo    string `json:"photo,omitempty"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{ID: u.ID, Username: u.Username, Photo: u.Photo}
}

type LoginRequest struct {
	UserInput string `json:"userinput"`
	Password  string `json:"password"`
}

// TokenPair is the envelope every auth-flow endpoint returns.
type TokenPair struct {
	Success    bool       `json:"success"`
	Access     string     `json:"access"`
	Refresh    string     `json:"refresh"`
	UserStatus UserStatus `json:"user_status"`
}
