package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// UserMetadata is the subset of Supabase user_metadata set at sign-up.
type UserMetadata struct {
	UserType      string `json:"user_type"`
	FullName      string `json:"full_name,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
}

// Claims are the Supabase access token claims the API relies on.
type Claims struct {
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Verifier checks Supabase access tokens. RS256 tokens are verified against
// the JWKS provider, HS256 tokens against the project secret. Either may be
// unset, in which case that algorithm is rejected.
type Verifier struct {
	jwks   *Provider
	secret []byte
}

func NewVerifier(jwks *Provider, secret string) *Verifier {
	v := &Verifier{jwks: jwks}
	if secret != "" {
		v.secret = []byte(secret)
	}
	return v
}

func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc(ctx),
		jwt.WithValidMethods([]string{"RS256", "HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (v *Verifier) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodRSA:
			if v.jwks == nil {
				return nil, fmt.Errorf("RS256 tokens not accepted")
			}
			return v.jwks.KeyFunc(ctx)(token)
		case *jwt.SigningMethodHMAC:
			if v.secret == nil {
				return nil, fmt.Errorf("HS256 tokens not accepted")
			}
			return v.secret, nil
		default:
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
	}
}
