package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/NgocDuong9/be-betaw/models"
)

// AuthClaims is the identity carried by a validated access token.
type AuthClaims struct {
	UserID string
	Email  string
	Role   models.UserRole
}

// TokenService creates and validates the HS256 bearer tokens used for
// authentication.
type TokenService struct {
	secretKey []byte
	expiry    time.Duration
}

// NewTokenService creates a TokenService with the given signing secret
// and token lifetime.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secretKey: []byte(secret), expiry: expiry}
}

// Generate signs an access token for the given user.
func (s *TokenService) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   now.Add(s.expiry).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Validate parses a token string and returns its claims.
func (s *TokenService) Validate(tokenStr string) (*AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("invalid token: missing subject")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &AuthClaims{
		UserID: sub,
		Email:  email,
		Role:   models.UserRole(role),
	}, nil
}
