package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lenarsag/foodgram/backend/internal/service"
	"github.com/lenarsag/foodgram/backend/internal/types"
)

const (
	userIDKey = "user_id"
	claimsKey = "claims"
)

// TokenValidator is an interface for validating auth tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

var (
	errMissingAuth = &service.Error{Kind: service.ErrUnauthorized, Message: "Authentication credentials were not provided"}
	errBadHeader   = &service.Error{Kind: service.ErrUnauthorized, Message: "Invalid authorization header format"}
)

// AuthMiddleware rejects requests without a valid token
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWith(c, errMissingAuth)
			return
		}
		authenticate(c, validator, token)
	}
}

// OptionalAuth identifies the caller when a token is sent and lets
// anonymous requests through. A token that is sent but invalid is still
// rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		token, ok := bearerToken(c)
		if !ok {
			abortWith(c, errBadHeader)
			return
		}
		authenticate(c, validator, token)
	}
}

func authenticate(c *gin.Context, validator TokenValidator, token string) {
	claims, err := validator.ValidateToken(c.Request.Context(), token)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.Set(userIDKey, claims.UserID)
	c.Set(claimsKey, claims)
	c.Next()
}

// bearerToken accepts "Bearer <t>" and the "Token <t>" scheme used by the
// web client.
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 {
		return "", false
	}
	switch parts[0] {
	case "Bearer", "Token":
		return parts[1], true
	}
	return "", false
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// UserID returns the authenticated user id
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// ViewerID returns the authenticated user id, or nil for anonymous requests
func ViewerID(c *gin.Context) *uint {
	if id, ok := UserID(c); ok {
		return &id
	}
	return nil
}

// Claims returns the token claims of the authenticated request
func Claims(c *gin.Context) *types.TokenClaims {
	if v, ok := c.Get(claimsKey); ok {
		claims, _ := v.(*types.TokenClaims)
		return claims
	}
	return nil
}
