package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/common/response"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/services"
)

const (
	ctxUserID = "userID"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// Authenticate validates the Bearer token and stores the caller's
// identity in the request context.
func Authenticate(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, apperrors.Unauthorized("Authorization header is required"))
			c.Abort()
			return
		}

		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			response.Error(c, apperrors.Unauthorized("Invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			response.Error(c, apperrors.Unauthorized("Invalid or expired token"))
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			response.Error(c, apperrors.Unauthorized("Invalid token subject"))
			c.Abort()
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// Authorize reports whether a caller with the given role may act at
// the required level. Admins may do anything a customer may.
func Authorize(role, required models.UserRole) error {
	if role == models.RoleAdmin {
		return nil
	}
	if role == required {
		return nil
	}
	return apperrors.Forbidden("Insufficient permissions")
}

// RequireRole rejects callers whose role does not authorize the
// required level. Must run after Authenticate.
func RequireRole(required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Authorize(GetRole(c), required); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// GetUserID returns the authenticated user's ID from the context.
func GetUserID(c *gin.Context) primitive.ObjectID {
	if id, ok := c.Get(ctxUserID); ok {
		if userID, ok := id.(primitive.ObjectID); ok {
			return userID
		}
	}
	return primitive.NilObjectID
}

// GetRole returns the authenticated user's role from the context.
func GetRole(c *gin.Context) models.UserRole {
	if role, ok := c.Get(ctxRole); ok {
		if userRole, ok := role.(models.UserRole); ok {
			return userRole
		}
	}
	return ""
}
