package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"instaclone/internal/models"
	"instaclone/internal/repositories"
	"instaclone/internal/utils"
)

// ProfileInfo is the change-info payload after JSON binding, validated by an
// explicit ordered pipeline rather than scattered per-field hooks.
type ProfileInfo struct {
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type UserService interface {
	// SignUp is the idempotent get-or-create entry to the state machine:
	// a repeat signup for a user still in `new` reuses the record and just
	// issues a fresh code.
	SignUp(emailOrPhone string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	CompleteProfile(user *models.User, info ProfileInfo) error
	SetPhoto(user *models.User, photoPath string) error
	Login(userInput, password string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	verification VerificationService
	auth         AuthService
}

func NewUserService(repo repositories.UserRepository, verification VerificationService, auth AuthService) UserService {
	return &userService{
		repo:         repo,
		verification: verification,
		auth:         auth,
	}
}

func (s *userService) findByChannel(inputType utils.InputType, value string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if inputType == utils.InputEmail {
		user, err = s.repo.GetByEmail(value)
	} else {
		user, err = s.repo.GetByPhone(value)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (s *userService) SignUp(emailOrPhone string) (*models.User, error) {
	value := strings.ToLower(strings.TrimSpace(emailOrPhone))
	inputType, err := utils.ClassifyEmailOrPhone(value)
	if err != nil {
		return nil, ValidationErrors{{Field: "email_or_phone", Message: err.Error()}}
	}

	user, err := s.findByChannel(inputType, value)
	if err != nil {
		return nil, err
	}
	if user != nil && user.UserStatus != models.StatusNew {
		label := "email"
		if inputType == utils.InputPhone {
			label = "phone number"
		}
		return nil, ValidationErrors{{Field: "email_or_phone", Message: fmt.Sprintf("User with this %s already exists.", label)}}
	}

	if user == nil {
		user, err = s.createFresh(inputType, value)
		if err != nil {
			return nil, err
		}
	}

	if err := s.verification.IssueCode(user); err != nil {
		return nil, err
	}
	return user, nil
}

// createFresh makes a status=new record with an auto-generated placeholder
// username and an unusable random password.
func (s *userService) createFresh(inputType utils.InputType, value string) (*models.User, error) {
	username := utils.NewPlaceholderUsername()
	for i := 0; i < 5; i++ {
		taken, err := s.repo.UsernameTaken(username, 0)
		if err != nil {
			return nil, err
		}
		if !taken {
			break
		}
		username = utils.NewPlaceholderUsername()
	}

	hash, err := s.auth.HashPassword(utils.NewPlaceholderPassword())
	if err != nil {
		return nil, err
	}

	user := &models.User{
		AuthType:     models.AuthTypeEmail,
		UserStatus:   models.StatusNew,
		Username:     username,
		PasswordHash: hash,
	}
	if inputType == utils.InputPhone {
		user.AuthType = models.AuthTypePhone
		user.PhoneNumber = value
	} else {
		user.Email = value
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	log.Printf("[user][signup] created id=%d auth_type=%s", user.ID, user.AuthType)
	return user, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return user, err
}

// CompleteProfile runs the ordered validation pipeline and, on success,
// advances the state machine to `done`.
func (s *userService) CompleteProfile(user *models.User, info ProfileInfo) error {
	var verrs ValidationErrors

	username := strings.TrimSpace(info.Username)
	if username == "" {
		verrs = append(verrs, FieldError{Field: "username", Message: "Username is required."})
	} else {
		taken, err := s.repo.UsernameTaken(username, user.ID)
		if err != nil {
			return err
		}
		if taken {
			verrs = append(verrs, FieldError{Field: "username", Message: "Username is already taken."})
		}
	}
	if !utils.IsAlpha(info.FirstName) {
		verrs = append(verrs, FieldError{Field: "first_name", Message: "First name must contain only alphabetic characters."})
	}
	if !utils.IsAlpha(info.LastName) {
		verrs = append(verrs, FieldError{Field: "last_name", Message: "Last name must contain only alphabetic characters."})
	}
	if info.Password == "" {
		verrs = append(verrs, FieldError{Field: "password", Message: "Password is required."})
	} else if info.Password != info.ConfirmPassword {
		verrs = append(verrs, FieldError{Field: "confirm_password", Message: "Passwords do not match."})
	}
	if len(verrs) > 0 {
		return verrs
	}

	hash, err := s.auth.HashPassword(info.Password)
	if err != nil {
		return err
	}
	user.Username = username
	user.FirstName = info.FirstName
	user.LastName = info.LastName
	user.PasswordHash = hash
	user.UserStatus = models.StatusDone
	return s.repo.Update(user)
}

func (s *userService) SetPhoto(user *models.User, photoPath string) error {
	user.Photo = photoPath
	user.UserStatus = models.StatusPhotoDone
	return s.repo.Update(user)
}

// Login resolves the caller-supplied identifier (username, email or phone)
// to a user, then authenticates by password. Identifier and password
// failures collapse into one generic error; an incomplete registration is
// reported distinctly.
func (s *userService) Login(userInput, password string) (*models.User, error) {
	value := strings.TrimSpace(userInput)
	inputType, err := utils.ClassifyUserInput(value)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var user *models.User
	switch inputType {
	case utils.InputUsername:
		user, err = s.repo.GetByUsername(value)
	case utils.InputEmail:
		user, err = s.repo.GetByEmail(strings.ToLower(value))
	case utils.InputPhone:
		user, err = s.repo.GetByPhone(value)
	}
	if errors.Is(err, sql.ErrNoRows) || user == nil {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.UserStatus == models.StatusNew || user.UserStatus == models.StatusCodeVerified {
		return nil, ErrRegistrationIncomplete
	}
	if !user.UserStatus.LoginEligible() {
		return nil, ErrRegistrationIncomplete
	}

	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		log.Printf("[user][login] password mismatch for userID=%d", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
