package services

import (
	"errors"
	"fmt"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 8

// tokenDuration is how long an issued bearer token stays valid.
const tokenDuration = 18 * time.Hour

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords, so login responses never reveal which one failed.
var ErrInvalidCredentials = errors.New("Email or Password invalid")

// AuthService handles the credential lifecycle: hashing, verification and
// token issuance. Tokens are self-contained; no session state is kept.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// HashPassword produces a salted bcrypt hash of the plaintext. Empty input
// is rejected before it can become a hashed empty credential.
func (s *AuthService) HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("password must not be empty: %w", apperrors.ErrInvalidInput)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext hashes to storedHash.
func (s *AuthService) CheckPassword(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// IssueToken signs a stateless bearer token carrying the user id, expiring
// 18 hours from issuance. No token is returned when signing fails.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(tokenDuration).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a bearer token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}
	return claims, nil
}

// Register stores a new user with a hashed password and returns a bearer
// token for the created account.
func (s *AuthService) Register(user *models.User) (string, error) {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return "", fmt.Errorf("username '%s' already taken: %w", user.Username, apperrors.ErrConflict)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return "", fmt.Errorf("email '%s' already registered: %w", user.Email, apperrors.ErrConflict)
	}

	if user.Roles == "" {
		user.Roles = models.RolePublisher
	}
	user.Status = true

	hashed, err := s.HashPassword(user.Password)
	if err != nil {
		return "", err
	}
	user.Password = hashed

	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	return s.IssueToken(user.ID)
}

// Login authenticates by email and password and returns a bearer token.
// Unknown email and wrong password produce the identical failure.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("login lookup failed")
		return "", err
	}

	if !s.CheckPassword(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user.ID)
}
