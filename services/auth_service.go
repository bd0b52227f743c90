package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"poirec-server/logging"
	"poirec-server/models"
	"poirec-server/utils/errors"
	"poirec-server/validation"
)

var (
	ErrInvalidCredentials = errors.NewAPIError("INVALID_CREDENTIALS", "Invalid username or password", http.StatusUnauthorized)
	ErrUsernameTaken      = errors.NewAPIError("USERNAME_TAKEN", "Username is already taken", http.StatusConflict)
	ErrUserNotFound       = errors.NewAPIError("USER_NOT_FOUND", "user not found", http.StatusNotFound)
	ErrWeakPassword       = errors.NewAPIError("WEAK_PASSWORD", "Password must be at least 8 characters and contain a digit, a lower-case and an upper-case letter", http.StatusBadRequest)
)

type RegisterInput struct {
	Username    string        `json:"username" validate:"required,min=3,max=50"`
	Password    string        `json:"password" validate:"required"`
	DateOfBirth *time.Time    `json:"date_of_birth,omitempty"`
	Gender      models.Gender `json:"gender"`
}

// AuthService registers users and issues HS256 tokens.
type AuthService struct {
	users      UserRepository
	userCache  *UserService
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users UserRepository, userService *UserService, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		userCache:  userService,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Register creates a user and returns it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return models.User{}, errors.ErrInvalidInput
	}
	if err := validation.CheckPassword(in.Password); err != nil {
		weak := *ErrWeakPassword
		weak.Details = err.Error()
		return models.User{}, &weak
	}

	if _, found, err := s.users.FindByUsername(ctx, username); err != nil {
		return models.User{}, fmt.Errorf("find user %s: %w", username, err)
	} else if found {
		return models.User{}, ErrUsernameTaken
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		DateOfBirth:  in.DateOfBirth,
		Gender:       in.Gender,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("insert user %s: %w", username, err)
	}
	s.userCache.cacheUser(ctx, user)

	logging.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

// Login verifies the password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, found, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("find user %s: %w", username, err)
	}
	if !found {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID":   user.ID,
		"username": user.Username,
		"exp":      s.now().Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, "JWT_ERROR", "Failed to generate token", http.StatusInternalServerError)
	}

	s.userCache.cacheUser(ctx, user)
	return signed, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user %s: %w", userID, err)
	}
	if !found {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := validation.CheckPassword(newPassword); err != nil {
		weak := *ErrWeakPassword
		weak.Details = err.Error()
		return &weak
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	updated, err := s.users.UpdatePassword(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("update password for %s: %w", userID, err)
	}
	if !updated {
		return ErrUserNotFound
	}
	s.userCache.evict(ctx, userID)

	logging.Info().Str("user_id", userID).Msg("Password changed")
	return nil
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "HASH_ERROR", "failed to hash password", http.StatusInternalServerError)
	}
	return string(hash), nil
}
