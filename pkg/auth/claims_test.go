package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signHS(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims(userType string) Claims {
	return Claims{
		Email:        "asha@example.com",
		UserMetadata: UserMetadata{UserType: userType},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "2b7c1a4e-0000-4000-8000-000000000001",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerifyHS256(t *testing.T) {
	v := NewVerifier(nil, "top-secret")

	claims, err := v.Verify(context.Background(), signHS(t, "top-secret", validClaims("patient")))
	require.NoError(t, err)
	assert.Equal(t, "patient", claims.UserMetadata.UserType)
	assert.Equal(t, "asha@example.com", claims.Email)
}

func TestVerifyRejects(t *testing.T) {
	v := NewVerifier(nil, "top-secret")

	expired := validClaims("patient")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noSub := validClaims("patient")
	noSub.Subject = ""

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", signHS(t, "other", validClaims("patient"))},
		{"expired", signHS(t, "top-secret", expired)},
		{"no subject", signHS(t, "top-secret", noSub)},
		{"garbage", "not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyHS256DisabledWithoutSecret(t *testing.T) {
	v := NewVerifier(nil, "")
	_, err := v.Verify(context.Background(), signHS(t, "x", validClaims("patient")))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRS256ViaJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims("dietitian"))
	tok.Header["kid"] = "k1"
	signed, err := tok.SignedString(key)
	require.NoError(t, err)

	v := NewVerifier(NewProvider(srv.URL), "")
	for i := 0; i < 2; i++ {
		claims, err := v.Verify(context.Background(), signed)
		require.NoError(t, err)
		assert.Equal(t, "dietitian", claims.UserMetadata.UserType)
	}
	assert.Equal(t, 1, hits)
}

func TestSupabaseJWKSURL(t *testing.T) {
	assert.Equal(t, "https://abc.supabase.co/auth/v1/.well-known/jwks.json", SupabaseJWKSURL("https://abc.supabase.co"))
}
