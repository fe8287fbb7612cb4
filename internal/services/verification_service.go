package services

import (
	"fmt"
	"time"

	"instaclone/internal/models"
	"instaclone/internal/repositories"
	"instaclone/internal/utils"
)

// VerificationService owns the confirmation-code lifecycle of the
// registration state machine: issue on signup, verify once, resend with a
// single-active-code throttle.
type VerificationService interface {
	IssueCode(user *models.User) error
	Verify(user *models.User, code string) error
	Resend(user *models.User) error
}

type verificationService struct {
	confirmations repositories.ConfirmationRepository
	users         repositories.UserRepository
	notifier      CodeNotifier
	now           func() time.Time
}

func NewVerificationService(
	confirmations repositories.ConfirmationRepository,
	users repositories.UserRepository,
	notifier CodeNotifier,
) VerificationService {
	return &verificationService{
		confirmations: confirmations,
		users:         users,
		notifier:      notifier,
		now:           time.Now,
	}
}

// IssueCode creates a fresh confirmation and hands it to the notifier. The
// expiry window depends on the channel (3m phone, 5m email).
func (s *verificationService) IssueCode(user *models.User) error {
	code, err := utils.NewConfirmationCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	expiresAt := s.now().Add(models.CodeTTL(user.AuthType))
	if _, err := s.confirmations.Create(user.ID, code, user.AuthType, expiresAt); err != nil {
		return err
	}
	// explicit dispatch call, no hidden post-save hooks
	s.notifier.NotifyCode(user, code)
	return nil
}

// Verify consumes a confirmation: valid only while the user is still `new`,
// the code matches, and the expiry has not passed. On success the
// confirmation row is deleted and the user moves to code_verified.
func (s *verificationService) Verify(user *models.User, code string) error {
	conf, err := s.confirmations.GetByUserAndCode(user.ID, code)
	if err != nil {
		return err
	}
	if conf == nil {
		return ErrCodeInvalid
	}
	if user.UserStatus != models.StatusNew {
		return ErrAlreadyVerified
	}
	if conf.Expired(s.now()) {
		return ErrCodeExpired
	}

	user.UserStatus = models.StatusCodeVerified
	if err := s.users.Update(user); err != nil {
		return err
	}
	return s.confirmations.Delete(conf.ID)
}

// Resend refuses while an unexpired code is still live: at most one active
// code per user.
func (s *verificationService) Resend(user *models.User) error {
	if user.UserStatus != models.StatusNew {
		return ErrAlreadyVerified
	}
	live, err := s.confirmations.HasUnexpired(user.ID, s.now())
	if err != nil {
		return err
	}
	if live {
		return ErrActiveCodeExists
	}
	return s.IssueCode(user)
}
