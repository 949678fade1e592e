package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claim names of access tokens issued by the auth service
const (
	ClaimUserID  = "user_id"
	ClaimIsAdmin = "is_admin"
	ClaimType    = "type"
	ClaimExpiry  = "exp"

	TokenTypeAccess = "access"
)

// NewJWTAuth builds the HS256 verifier shared by every protected route.
func NewJWTAuth(secretKey string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second))
}

// EncodeAccessToken signs an access token. Production tokens come from the auth
// service; this is used for local development and tests.
func EncodeAccessToken(ja *jwtauth.JWTAuth, userID string, isAdmin bool, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	_, token, err := ja.Encode(map[string]interface{}{
		ClaimUserID:  userID,
		ClaimIsAdmin: isAdmin,
		ClaimType:    TokenTypeAccess,
		ClaimExpiry:  time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}
