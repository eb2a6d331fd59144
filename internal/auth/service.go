// Package auth implements backoffice authentication: admin login with bcrypt
// password checks and HS256 JWT issuance, plus the default-admin bootstrap.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// Repository is the public-store surface for admin accounts.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, admin *domain.AdminUser) error
	Update(ctx context.Context, admin *domain.AdminUser) error
}

// Service issues admin tokens and bootstraps the first account.
type Service struct {
	repo      Repository
	jwtSecret string
	jwtExpiry time.Duration
	logger    logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, jwtSecret string, jwtExpiry time.Duration, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		logger:    log,
		now:       time.Now,
	}
}

// LoginRequest captures credentials for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresAt   time.Time         `json:"expires_at"`
	Admin       *domain.AdminUser `json:"admin"`
}

// InitAdminRequest bootstraps the first admin account.
type InitAdminRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName *string `json:"full_name,omitempty"`
}

// Login authenticates an admin and returns a signed token. Disabled accounts
// are refused even with the right password.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	now := s.now()
	admin.LastLoginAt = &now
	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, apperrors.Wrap(err, "record login")
	}

	return s.generateToken(admin)
}

// InitAdmin creates the bootstrap admin account. It refuses to run once any
// admin with the given email exists.
func (s *Service) InitAdmin(ctx context.Context, req *InitAdminRequest) (*domain.AdminUser, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, "check admin account")
	}
	if exists {
		return nil, apperrors.ErrAdminAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.AdminUser{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, apperrors.ErrAdminAlreadyExists
		}
		return nil, apperrors.Wrap(err, "create admin account")
	}

	s.logger.Info("Admin account created", map[string]interface{}{"email": admin.Email})
	return admin, nil
}

func (s *Service) generateToken(admin *domain.AdminUser) (*TokenResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.jwtExpiry)

	claims := jwt.MapClaims{
		"admin_id": admin.ID.String(),
		"email":    admin.Email,
		"exp":      expiresAt.Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Admin:       admin,
	}, nil
}
