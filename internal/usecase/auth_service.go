package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joystick-informer/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt truncates passwords after 72 bytes
const (
	minPasswordLength = 6
	maxPasswordLength = 72
)

// ValidationError is the 422 payload returned for rejected registrations
type ValidationError struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Reason, e.Message, e.Location)
}

func validationError(message, location string) *ValidationError {
	return &ValidationError{
		Code:     422,
		Reason:   "ValidationError",
		Message:  message,
		Location: location,
	}
}

// Claims are the JWT claims issued at login
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and JWT lifecycle
type AuthService struct {
	users      domain.UserRepository
	watchlists domain.WatchlistRepository
	secret     []byte
	expiry     time.Duration
}

// NewAuthService creates a new auth service. Tokens are signed with
// HMAC-SHA256 and expire after the configured duration.
func NewAuthService(users domain.UserRepository, watchlists domain.WatchlistRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		watchlists: watchlists,
		secret:     []byte(secret),
		expiry:     expiry,
	}
}

// Register validates and creates a new account, along with its empty
// watchlist. Validation failures return a *ValidationError.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	if verr := validateRegistration(username, password, email); verr != nil {
		return nil, verr
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil, validationError("Username already taken", "username")
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Every account starts with an empty watchlist
	emptyList := &domain.Watchlist{UserID: user.ID, GameIDs: []int{}, RelatedIDs: []int{}}
	if err := s.watchlists.Save(ctx, emptyList); err != nil {
		return nil, err
	}

	return user, nil
}

// validateRegistration applies the account field rules: required
// fields, no surrounding whitespace in credentials, bounded password
// length, minimally plausible email
func validateRegistration(username, password, email string) *ValidationError {
	fields := map[string]string{
		"username": username,
		"password": password,
		"email":    email,
	}
	for _, location := range []string{"username", "password", "email"} {
		if fields[location] == "" {
			return validationError("Missing field", location)
		}
	}

	if strings.TrimSpace(username) != username {
		return validationError("Cannot start or end with whitespace", "username")
	}
	if strings.TrimSpace(password) != password {
		return validationError("Cannot start or end with whitespace", "password")
	}

	if len(password) < minPasswordLength {
		return validationError(fmt.Sprintf("Must be at least %d characters long", minPasswordLength), "password")
	}
	if len(password) > maxPasswordLength {
		return validationError(fmt.Sprintf("Must be at most %d characters long", maxPasswordLength), "password")
	}

	if !strings.Contains(email, "@") {
		return validationError("Must be a valid email address", "email")
	}

	return nil
}

// Login verifies credentials and issues a signed token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(user.ID, user.Username, user.Email)
}

// Refresh issues a fresh token for an already-authenticated identity
func (s *AuthService) Refresh(claims *Claims) (string, error) {
	return s.generateToken(claims.UserID, claims.Username, claims.Email)
}

// generateToken signs an HS256 token for the given identity
func (s *AuthService) generateToken(userID, username, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies a token's signature, expiry and signing
// method, and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
