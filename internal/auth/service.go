// Package auth implements the authentication gate: credential verification,
// bearer token issuance and validation, and the one-time admin setup flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eagd-org/donation-server/internal/domain"
	"github.com/eagd-org/donation-server/internal/store"
)

// BootstrapAdmin is the externally configured first-run credential pair.
// When nil, only directory accounts can log in.
type BootstrapAdmin struct {
	Username string
	Password string
	Email    string
}

// Service is the auth gate. Safe for concurrent use; all state is read-only
// after construction.
type Service struct {
	admins    store.AdminRepository
	secret    string
	issuer    string
	tokenTTL  time.Duration
	bootstrap *BootstrapAdmin
	logger    zerolog.Logger

	now func() time.Time
}

// NewService wires the auth gate to the admin directory.
func NewService(admins store.AdminRepository, secret, issuer string, tokenTTL time.Duration, bootstrap *BootstrapAdmin, logger zerolog.Logger) *Service {
	return &Service{
		admins:    admins,
		secret:    secret,
		issuer:    issuer,
		tokenTTL:  tokenTTL,
		bootstrap: bootstrap,
		logger:    logger,
		now:       time.Now,
	}
}

// Login authenticates the username/password pair and issues a signed bearer
// token valid for the configured window. The bootstrap pair, when configured,
// is accepted without a directory lookup so the panel stays reachable before
// the first account exists. Bad credentials of either kind surface as
// domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	if s.bootstrap != nil && username == s.bootstrap.Username && password == s.bootstrap.Password {
		now := s.now().UTC()
		admin := &domain.Admin{
			ID:          BootstrapAdminID,
			Username:    s.bootstrap.Username,
			Email:       s.bootstrap.Email,
			Role:        domain.RoleSuperAdmin,
			LastLoginAt: &now,
		}
		token, err := SignToken(s.secret, s.issuer, admin, s.tokenTTL, now)
		if err != nil {
			return "", nil, fmt.Errorf("bootstrap login: %w", err)
		}
		s.logger.Info().Str("username", username).Msg("bootstrap admin login")
		return token, admin, nil
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find admin by username: %w", err)
	}

	if !CheckPassword(admin.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.admins.TouchLastLogin(ctx, admin.ID, now); err != nil {
		s.logger.Error().Err(err).Str("admin_id", admin.ID).Msg("failed to update last login")
	} else {
		admin.LastLoginAt = &now
	}

	token, err := SignToken(s.secret, s.issuer, admin, s.tokenTTL, now)
	if err != nil {
		return "", nil, fmt.Errorf("sign login token: %w", err)
	}
	return token, admin, nil
}

// Verify validates a raw bearer token and resolves the admin identity it
// references. Signature or expiry failures yield domain.ErrTokenExpired; a
// token whose admin no longer exists yields domain.ErrTokenInvalid.
func (s *Service) Verify(ctx context.Context, tokenString string) (*domain.Admin, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, domain.ErrMissingToken
	}

	claims, err := ParseToken(s.secret, s.issuer, tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Subject == BootstrapAdminID {
		if s.bootstrap == nil {
			return nil, domain.ErrTokenInvalid
		}
		return &domain.Admin{
			ID:       BootstrapAdminID,
			Username: s.bootstrap.Username,
			Email:    s.bootstrap.Email,
			Role:     domain.RoleSuperAdmin,
		}, nil
	}

	admin, err := s.admins.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return admin, nil
}

// Setup creates the first administrator account. It refuses with
// domain.ErrAlreadyInitialized once any account exists and enforces the
// password complexity policy. The created account gets the super_admin role.
func (s *Service) Setup(ctx context.Context, username, password, email string) (*domain.Admin, error) {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil, domain.ErrAlreadyInitialized
	}

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, domain.NewValidationError("username", "required")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "required")
	}
	if email == "" {
		return nil, domain.NewValidationError("email", "required")
	}
	if err := ValidatePasswordComplexity(password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("initial admin account created")
	return admin, nil
}
