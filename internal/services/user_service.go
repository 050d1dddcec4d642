//go:generate mockgen -source=user_service.go -destination=mocks/user_service.go -package=mock_services

package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"polling_system/internal/db/models"
	"polling_system/internal/db/repositories"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
	maxPasswordBytes  = 72
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type RegisterRequest struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
	Avatar    string
}

type UpdateProfileRequest struct {
	Username string
	Email    string
	Avatar   string
}

// FileRemover deletes stored media files by their relative path.
type FileRemover interface {
	Remove(path string) error
}

type UserService interface {
	Register(ctx context.Context, request RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Get(ctx context.Context, userID int64) (*models.User, error)
	GetProfile(ctx context.Context, user *models.User) (*models.Profile, error)
	UpdateProfile(ctx context.Context, user *models.User, request UpdateProfileRequest) (*models.User, error)
	Delete(ctx context.Context, user *models.User) error
}

type userService struct {
	userRepository    repositories.UserRepository
	profileRepository repositories.ProfileRepository
	files             FileRemover
	logger            *zap.SugaredLogger
}

func NewUserService(
	userRepository repositories.UserRepository,
	profileRepository repositories.ProfileRepository,
	files FileRemover,
	logger *zap.SugaredLogger,
) UserService {
	return &userService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		files:             files,
		logger:            logger,
	}
}

// Register creates the user and its profile in one transaction.
func (s *userService) Register(ctx context.Context, request RegisterRequest) (*models.User, error) {
	username, err := validateUsername(request.Username)
	if err != nil {
		return nil, err
	}

	email, err := validateEmail(request.Email)
	if err != nil {
		return nil, err
	}

	if request.Password1 != request.Password2 {
		return nil, ErrPasswordMismatch
	}
	if utf8.RuneCountInString(request.Password1) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(request.Password1) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	if request.Avatar == "" {
		return nil, ErrAvatarRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepository.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}, &models.Profile{
		Avatar: request.Avatar,
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, ErrUsernameTaken
	} else if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infow("user registered", "userID", user.ID, "username", user.Username)

	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepository.GetOneByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) Get(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepository.GetOne(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, user *models.User) (*models.Profile, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}

	profile, err := s.profileRepository.GetOneByUserID(ctx, user.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// UpdateProfile changes username and email. A non-empty request.Avatar
// replaces the stored avatar in the same transaction; the previous file is
// removed only once the transaction committed.
func (s *userService) UpdateProfile(ctx context.Context, user *models.User, request UpdateProfileRequest) (*models.User, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}

	username, err := validateUsername(request.Username)
	if err != nil {
		return nil, err
	}

	email, err := validateEmail(request.Email)
	if err != nil {
		return nil, err
	}

	updated := *user
	updated.Username = username
	updated.Email = email

	var profile *models.Profile
	previousAvatar := ""

	if request.Avatar != "" {
		profile, err = s.profileRepository.GetOneByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}

		previousAvatar = profile.Avatar
		profile.Avatar = request.Avatar
	}

	result, err := s.userRepository.Update(ctx, &updated, profile)
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, ErrUsernameTaken
	} else if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if previousAvatar != "" && previousAvatar != request.Avatar {
		s.removeFile(previousAvatar)
	}

	return result, nil
}

// Delete removes the user with everything it owns. Choice counters of the
// removed votes are decremented in the same transaction.
func (s *userService) Delete(ctx context.Context, user *models.User) error {
	if user == nil {
		return ErrUnauthenticated
	}

	profile, err := s.profileRepository.GetOneByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if err := s.userRepository.Delete(ctx, user); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if profile.HasAvatar() {
		s.removeFile(profile.Avatar)
	}

	s.logger.Infow("user deleted", "userID", user.ID)

	return nil
}

func (s *userService) removeFile(path string) {
	if err := s.files.Remove(path); err != nil {
		s.logger.Warnw("failed to remove file", "path", path, "error", err)
	}
}

func validateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)

	switch {
	case username == "":
		return "", ErrUsernameRequired
	case utf8.RuneCountInString(username) > maxUsernameLength:
		return "", ErrUsernameTooLong
	case !usernamePattern.MatchString(username):
		return "", ErrUsernameInvalid
	}

	return username, nil
}

func validateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)

	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return "", ErrEmailInvalid
	}

	return email, nil
}
