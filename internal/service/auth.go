package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skyfinder/weather-search/internal/auth"
)

// RoleAdmin is the only role issued by the service.
const RoleAdmin = "admin"

var (
	// ErrInvalidCredentials is returned when the email or password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginDisabled is returned when no admin account is configured.
	ErrLoginDisabled = errors.New("admin login is not configured")
)

// AuthService coordinates credential validation and token issuance for the
// configured admin account.
type AuthService struct {
	email        string
	passwordHash []byte
	jwt          *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(adminEmail, adminPasswordHash string, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		email:        strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: []byte(adminPasswordHash),
		jwt:          jwtManager,
	}
}

// Enabled reports whether an admin account is configured.
func (s *AuthService) Enabled() bool {
	return s.email != "" && len(s.passwordHash) > 0
}

// TokenTTL returns the lifetime of issued tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.jwt.TTL()
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New("email and password must not be empty")
	}
	if !s.Enabled() {
		return "", ErrLoginDisabled
	}

	email = strings.ToLower(strings.TrimSpace(email))
	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil || !emailMatch {
		return "", ErrInvalidCredentials
	}

	subject := uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+s.email)).String()
	token, err := s.jwt.GenerateToken(subject, s.email, RoleAdmin)
	if err != nil {
		return "", err
	}

	return token, nil
}
