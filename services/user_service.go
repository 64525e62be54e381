package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
)

// UpdateProfileRequest carries the self-service profile fields. Nil
// pointers leave the stored value untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// UserService handles account management for users and admins.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// Update applies profile changes to the given account.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, req UpdateProfileRequest) (*models.User, error) {
	updates := bson.M{}
	if req.FirstName != nil {
		updates["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["lastName"] = *req.LastName
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("No update fields provided")
	}

	user, err := s.users.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes an account: logins are refused until an
// admin reactivates it.
func (s *UserService) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.ToggleActive(ctx, id, false)
	return err
}

// Delete permanently removes an account. Admin only.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("User not found")
		}
		return err
	}
	return nil
}

// List returns all accounts, newest first. Admin only.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

// Count returns the number of accounts.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

// ToggleActive activates or deactivates an account. Admin only.
func (s *UserService) ToggleActive(ctx context.Context, id primitive.ObjectID, isActive bool) (*models.User, error) {
	user, err := s.users.Update(ctx, id, bson.M{"isActive": isActive})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// SetRole changes an account's role. Admin only.
func (s *UserService) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, apperrors.BadRequest("Invalid role")
	}

	user, err := s.users.Update(ctx, id, bson.M{"role": role})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}
