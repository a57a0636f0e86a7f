package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/ports/adapter"
)

var _ adapter.TokenVerifier = (*JWTVerifier)(nil)

// IDClaims mirrors the auth provider's ID token payload: subject carries the
// user id, Admin is the moderation custom claim.
type IDClaims struct {
	Email string `json:"email,omitempty"`
	Admin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 bearer ID tokens against a shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(ctx context.Context, idToken string) (*adapter.Identity, error) {
	claims := &IDClaims{}
	tkn, err := jwt.ParseWithClaims(idToken, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}
	return &adapter.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Admin:  claims.Admin,
	}, nil
}
