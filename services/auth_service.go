package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
)

const deactivatedMessage = "Your account has been deactivated. Please contact support."

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// AuthResult bundles the authenticated user with a fresh access token.
type AuthResult struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// AuthService handles registration, login and profile lookup.
type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new customer account and logs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := ValidatePassword(req.Password); err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleCustomer,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login authenticates an account by email and password. Deactivated
// accounts are rejected even with valid credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.Forbidden(deactivatedMessage)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	return s.issue(user)
}

// Profile loads the account behind a token subject, rejecting
// deactivated accounts.
func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("User not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Forbidden(deactivatedMessage)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}
