package types

import "github.com/golang-jwt/jwt/v5"

// TokenClaims represents the claims in a JWT token. The subject and UserID
// both carry the user id; ID (jti) identifies the token for revocation.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}
