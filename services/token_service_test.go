package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NgocDuong9/be-betaw/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "jane@example.com",
		Role:  models.RoleAdmin,
	}

	token, err := svc.Generate(user)
	assert.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenValidateRejectsBadInput(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour)
		token, _ := other.Generate(&models.User{ID: primitive.NewObjectID(), Role: models.RoleCustomer})

		_, err := svc.Validate(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenService("test-secret", -time.Minute)
		token, _ := expired.Generate(&models.User{ID: primitive.NewObjectID(), Role: models.RoleCustomer})

		_, err := svc.Validate(token)
		assert.Error(t, err)
	})
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password1"))
	assert.ErrorIs(t, ValidatePassword("pass1"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword("12345678"), ErrPasswordNoLetter)
	assert.ErrorIs(t, ValidatePassword("passwords"), ErrPasswordNoNumber)
}
