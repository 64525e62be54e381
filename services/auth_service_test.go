package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
)

func newTestTokens() *TokenService {
	return NewTokenService("test-secret", time.Hour)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	password := "strongpassword123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	testUser := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "test@example.com",
		Password: string(hashed),
		Role:     models.RoleCustomer,
		IsActive: true,
	}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newTestTokens())
		users.On("FindByEmail", ctx, testUser.Email).Return(testUser, nil).Once()

		result, err := svc.Login(ctx, testUser.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, testUser.Email, result.User.Email)
		users.AssertExpectations(t)
	})

	t.Run("User Not Found", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newTestTokens())
		users.On("FindByEmail", ctx, "notfound@example.com").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Login(ctx, "notfound@example.com", password)

		assert.Error(t, err)
		assert.Equal(t, "Invalid email or password", apperrors.From(err).Message)
	})

	t.Run("Incorrect Password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newTestTokens())
		users.On("FindByEmail", ctx, testUser.Email).Return(testUser, nil).Once()

		_, err := svc.Login(ctx, testUser.Email, "wrongpassword")

		assert.Error(t, err)
		assert.Equal(t, "Invalid email or password", apperrors.From(err).Message)
	})

	t.Run("Deactivated Account", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newTestTokens())

		deactivated := *testUser
		deactivated.IsActive = false
		users.On("FindByEmail", ctx, deactivated.Email).Return(&deactivated, nil).Once()

		_, err := svc.Login(ctx, deactivated.Email, password)

		assert.Error(t, err)
		assert.Equal(t, 403, apperrors.From(err).Code)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	req := RegisterRequest{
		Email:     "New.User@Example.com",
		Password:  "password123",
		FirstName: "New",
		LastName:  "User",
	}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newTestTokens())

		users.On("FindByEmail", ctx, "new.user@example.com").Return(nil, repository.ErrNotFound).Once()
		users.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			user := args.Get(1).(*models.User)
			user.ID = primitive.NewObjectID()
		}).Return(nil).Once()

		result, err := svc.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "new.user@example.com", result.User.Email)
		assert.Equal(t, models.RoleCustomer, result.User.Role)
		assert.True(t, result.User.IsActive)
		assert.NotEqual(t, req.Password, result.User.Password)
		assert.NotEmpty(t, result.AccessToken)
		users.AssertExpectations(t)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newTestTokens())
		users.On("FindByEmail", ctx, "new.user@example.com").Return(&models.User{}, nil).Once()

		_, err := svc.Register(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, "Email already registered", apperrors.From(err).Message)
	})

	t.Run("Weak Password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newTestTokens())

		weak := req
		weak.Password = "short1"
		_, err := svc.Register(ctx, weak)

		assert.Error(t, err)
		assert.Equal(t, 400, apperrors.From(err).Code)
	})
}
