package admin

import (
	"context"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
)

// UserPage is one page of users plus the unpaged total.
type UserPage struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total"`
}

// UserUpdateRequest carries the fields an operator may edit. Nil fields are
// left unchanged.
type UserUpdateRequest struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	UserTier      *string `json:"user_tier,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	EmailVerified *bool   `json:"email_verified,omitempty"`
}

func (s *Service) ListUsers(ctx context.Context, params ListParams) (*UserPage, error) {
	params = params.Normalize()
	users, err := s.users.FindAll(ctx, params)
	if err != nil {
		return nil, apperrors.Wrap(err, "list users")
	}
	total, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "count users")
	}
	return &UserPage{Users: users, Total: total}, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateUser applies the non-nil fields of req.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *UserUpdateRequest) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.UserTier != nil {
		tier, err := domain.ParseUserTier(*req.UserTier)
		if err != nil {
			return nil, err
		}
		user.UserTier = tier
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.EmailVerified != nil {
		user.EmailVerified = *req.EmailVerified
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.Wrap(err, "update user")
	}
	return user, nil
}

// DeactivateUser is the soft delete behind DELETE /users/{id}: the row stays,
// the account is switched off.
func (s *Service) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return nil
	}
	user.IsActive = false
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.Wrap(err, "deactivate user")
	}
	s.logger.Info("User deactivated", map[string]interface{}{"user_id": id.String()})
	return nil
}
