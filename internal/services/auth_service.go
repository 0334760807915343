package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bloo-az/bloo/internal/models"
)

type AuthStore interface {
	FindAdminByEmail(email string) (*models.AdminUser, error)
	AddAdmin(u *models.AdminUser) error
}

type TokenSigner func(uid, email string, ttl time.Duration) (string, error)

// AdminAuthService handles moderator login. There is no self-service signup;
// the first admin account is seeded from the environment at startup.
type AdminAuthService struct {
	store     AuthStore
	now       func() time.Time
	idGen     func() string
	signToken TokenSigner
	tokenTTL  time.Duration
}

type AuthResult struct {
	Token  string
	UserID string
}

func NewAdminAuthService(store AuthStore, signer TokenSigner) *AdminAuthService {
	return &AdminAuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		idGen:     func() string { return shortID(12) },
		signToken: signer,
		tokenTTL:  24 * time.Hour,
	}
}

func (s *AdminAuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, NewInvalidError("email/password required")
	}
	u, err := s.store.FindAdminByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	tok, err := s.signToken(u.ID, u.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: tok, UserID: u.ID}, nil
}

// EnsureAdmin creates the admin account if it does not exist yet. Called once
// at startup with credentials from the environment.
func (s *AdminAuthService) EnsureAdmin(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.store.FindAdminByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.AddAdmin(&models.AdminUser{
		ID:        s.idGen(),
		Email:     email,
		PassHash:  hash,
		CreatedAt: s.now(),
	})
}
