package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"instaclone/internal/middleware"
	"instaclone/internal/models"
	"instaclone/internal/repositories"
	"instaclone/internal/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthService interface {
	HashPassword(plain string) (string, error)
	CheckPassword(hash, plain string) error

	// IssueTokenPair signs a fresh access JWT and rotates the opaque
	// refresh token stored on the user row.
	IssueTokenPair(user *models.User) (*models.TokenPair, error)
	RefreshTokenPair(refreshToken string) (*models.TokenPair, error)
	Logout(userID int) error
}

type authService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt generate: %w", err)
	}
	return string(b), nil
}

func (s *authService) CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

func (s *authService) signAccess(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		Status: string(user.UserStatus),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTKey)
}

func (s *authService) IssueTokenPair(user *models.User) (*models.TokenPair, error) {
	access, err := s.signAccess(user)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := utils.NewRefreshToken(32)
	if err != nil {
		return nil, fmt.Errorf("new refresh token: %w", err)
	}
	if err := s.users.UpdateRefresh(user.ID, refresh, time.Now().Add(refreshTokenTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &models.TokenPair{
		Success:    true,
		Access:     access,
		Refresh:    refresh,
		UserStatus: user.UserStatus,
	}, nil
}

// RefreshTokenPair rotates an unexpired refresh token for a new pair.
func (s *authService) RefreshTokenPair(refreshToken string) (*models.TokenPair, error) {
	user, err := s.users.GetByRefreshToken(refreshToken)
	if err != nil || user == nil || user.RefreshExpiresAt == nil || user.RefreshRevoked {
		return nil, ErrInvalidCredentials
	}
	if time.Now().After(*user.RefreshExpiresAt) {
		return nil, ErrInvalidCredentials
	}

	newRefresh, err := utils.NewRefreshToken(32)
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	rotated, err := s.users.RotateRefresh(refreshToken, newRefresh, time.Now().Add(refreshTokenTTL))
	if err != nil || rotated == nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.signAccess(rotated)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &models.TokenPair{
		Success:    true,
		Access:     access,
		Refresh:    newRefresh,
		UserStatus: rotated.UserStatus,
	}, nil
}

func (s *authService) Logout(userID int) error {
	return s.users.ClearRefresh(userID)
}
