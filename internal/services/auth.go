package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

const tokenValidity = 24 * time.Hour

// AdminClaims are the JWT claims issued to dashboard users
type AdminClaims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService authenticates dashboard users and issues bearer tokens
type AuthService struct {
	store  storage.Store
	secret []byte
	audit  *AuditService
}

// NewAuthService creates a new auth service
func NewAuthService(store storage.Store, secret string, audit *AuditService) *AuthService {
	return &AuthService{store: store, secret: []byte(secret), audit: audit}
}

// Login verifies credentials and returns a signed token. Disabled accounts
// and unknown emails fail the same way as a wrong password.
func (s *AuthService) Login(email, password string) (string, *models.AdminUser, error) {
	user, err := s.store.GetAdminUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, models.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	now := time.Now()
	claims := &AdminClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}

	user.LastLoginAt = &now
	if err := s.store.UpdateAdminUser(user); err != nil {
		return "", nil, err
	}

	s.audit.Write(user.ID, user.Email, models.AuditActionLogin, "admin_user", user.Email, nil)
	return token, user, nil
}

// ParseToken validates a bearer token and returns its claims
func (s *AuthService) ParseToken(tokenStr string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrUnauthorized
	}
	return claims, nil
}

// HashPassword produces a bcrypt hash for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
