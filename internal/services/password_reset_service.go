package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"instaclone/internal/models"
	"instaclone/internal/repositories"
	"instaclone/internal/utils"
)

type PasswordResetService interface {
	RequestReset(emailOrPhone string) error
	ResetPassword(token, newPassword, confirmPassword string) error
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	repo     repositories.PasswordResetRepository
	emails   EmailService
	sms      *utils.SMSClient
	auth     AuthService
}

func NewPasswordResetService(
	userRepo repositories.UserRepository,
	repo repositories.PasswordResetRepository,
	emails EmailService,
	sms *utils.SMSClient,
	auth AuthService,
) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		repo:     repo,
		emails:   emails,
		sms:      sms,
		auth:     auth,
	}
}

// RequestReset accepts the same identifier shapes as signup. It never leaks
// account existence to the caller.
func (s *passwordResetService) RequestReset(emailOrPhone string) error {
	value := strings.TrimSpace(strings.ToLower(emailOrPhone))
	inputType, err := utils.ClassifyEmailOrPhone(value)
	if err != nil {
		return ValidationErrors{{Field: "email_or_phone", Message: err.Error()}}
	}

	var user *models.User
	if inputType == utils.InputEmail {
		user, err = s.userRepo.GetByEmail(value)
	} else {
		user, err = s.userRepo.GetByPhone(value)
	}
	if errors.Is(err, sql.ErrNoRows) || user == nil {
		log.Printf("[password-reset] request for %q: no such user", value)
		return nil
	}
	if err != nil {
		return err
	}

	token, err := utils.NewRefreshToken(32)
	if err != nil {
		return err
	}
	if _, err := s.repo.Create(user.ID, token, time.Now().Add(1*time.Hour)); err != nil {
		return err
	}

	if user.AuthType == models.AuthTypePhone {
		if _, err := s.sms.SendSMS(user.PhoneNumber, fmt.Sprintf("Instaclone password reset token: %s", token)); err != nil {
			log.Printf("[password-reset] failed to send SMS to %s: %v", user.PhoneNumber, err)
		}
		return nil
	}
	if err := s.emails.SendPasswordResetEmail(user.Email, token); err != nil {
		log.Printf("[password-reset] failed to send email to %s: %v", user.Email, err)
	}
	return nil
}

func (s *passwordResetService) ResetPassword(token, newPassword, confirmPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ValidationErrors{{Field: "token", Message: "Token is required."}}
	}
	if len(newPassword) < 8 {
		return ValidationErrors{{Field: "password", Message: "Password must be at least 8 characters."}}
	}
	if newPassword != confirmPassword {
		return ValidationErrors{{Field: "confirm_password", Message: "Passwords do not match."}}
	}

	pr, err := s.repo.GetByToken(token)
	if err != nil {
		return err
	}
	if pr == nil || pr.UsedAt != nil || time.Now().After(pr.ExpiresAt) {
		return errors.New("invalid or expired token")
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(pr.UserID, hash); err != nil {
		return err
	}
	return s.repo.MarkUsed(pr.ID)
}
