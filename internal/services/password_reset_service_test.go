package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instaclone/internal/models"
	"instaclone/internal/utils"
)

type fakeResetRepo struct {
	nextID int
	resets []*models.PasswordReset
}

func (r *fakeResetRepo) Create(userID int, token string, expiresAt time.Time) (*models.PasswordReset, error) {
	r.nextID++
	pr := &models.PasswordReset{
		ID:        r.nextID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.resets = append(r.resets, pr)
	return pr, nil
}

func (r *fakeResetRepo) GetByToken(token string) (*models.PasswordReset, error) {
	for _, pr := range r.resets {
		if pr.Token == token {
			cp := *pr
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeResetRepo) MarkUsed(id int) error {
	for _, pr := range r.resets {
		if pr.ID == id {
			now := time.Now()
			pr.UsedAt = &now
		}
	}
	return nil
}

// fakeEmailSender records outbound mail instead of dialing SMTP.
type fakeEmailSender struct {
	verifications []string
	resetTokens   []string
}

func (f *fakeEmailSender) SendVerificationEmail(email, code string) error {
	f.verifications = append(f.verifications, code)
	return nil
}

func (f *fakeEmailSender) SendPasswordResetEmail(email, token string) error {
	f.resetTokens = append(f.resetTokens, token)
	return nil
}

func newResetFixture(t *testing.T) (PasswordResetService, AuthService, *fakeUserRepo, *fakeResetRepo, *fakeEmailSender, *models.User) {
	t.Helper()
	users := newFakeUserRepo()
	resets := &fakeResetRepo{}
	emails := &fakeEmailSender{}
	auth := NewAuthService(users)
	sms := utils.NewSMSClient("", "", true)

	user := &models.User{
		Email:      "someone@example.com",
		AuthType:   models.AuthTypeEmail,
		UserStatus: models.StatusDone,
		Username:   "johndoe",
	}
	require.NoError(t, users.Create(user))

	svc := NewPasswordResetService(users, resets, emails, sms, auth)
	return svc, auth, users, resets, emails, user
}

func TestRequestResetSendsToken(t *testing.T) {
	svc, _, _, resets, emails, user := newResetFixture(t)

	require.NoError(t, svc.RequestReset("someone@example.com"))
	require.Len(t, emails.resetTokens, 1)
	require.Len(t, resets.resets, 1)
	assert.Equal(t, user.ID, resets.resets[0].UserID)
	assert.Equal(t, resets.resets[0].Token, emails.resetTokens[0])
}

func TestRequestResetHidesUnknownAccounts(t *testing.T) {
	svc, _, _, resets, emails, _ := newResetFixture(t)

	require.NoError(t, svc.RequestReset("nobody@example.com"))
	assert.Empty(t, emails.resetTokens)
	assert.Empty(t, resets.resets)
}

func TestRequestResetRejectsMalformedInput(t *testing.T) {
	svc, _, _, _, _, _ := newResetFixture(t)
	err := svc.RequestReset("???")
	_, ok := AsValidation(err)
	assert.True(t, ok)
}

func TestResetPasswordHappyPath(t *testing.T) {
	svc, auth, users, resets, _, user := newResetFixture(t)

	require.NoError(t, svc.RequestReset("someone@example.com"))
	token := resets.resets[0].Token

	require.NoError(t, svc.ResetPassword(token, "brandnewpass", "brandnewpass"))

	stored, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, auth.CheckPassword(stored.PasswordHash, "brandnewpass"))

	// the token is single-use
	err = svc.ResetPassword(token, "anotherpass1", "anotherpass1")
	assert.Error(t, err)
}

func TestResetPasswordValidation(t *testing.T) {
	svc, _, _, _, _, _ := newResetFixture(t)

	err := svc.ResetPassword("", "brandnewpass", "brandnewpass")
	verrs, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "token", verrs[0].Field)

	err = svc.ResetPassword("tok", "short", "short")
	verrs, ok = AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "password", verrs[0].Field)

	err = svc.ResetPassword("tok", "brandnewpass", "different")
	verrs, ok = AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "confirm_password", verrs[0].Field)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, _, _, resets, _, _ := newResetFixture(t)

	require.NoError(t, svc.RequestReset("someone@example.com"))
	resets.resets[0].ExpiresAt = time.Now().Add(-time.Minute)

	err := svc.ResetPassword(resets.resets[0].Token, "brandnewpass", "brandnewpass")
	assert.Error(t, err)
}
