package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func validClaims(now time.Time) Claims {
	return Claims{
		UserID:    "u1",
		Role:      "patient",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "identity",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
	}
}

func TestTokenVerifier_ParseAccessToken(t *testing.T) {
	now := time.Now().UTC()
	v := NewTokenVerifier("secret", "identity")

	claims, err := v.ParseAccessToken(signTestToken(t, "secret", validClaims(now)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "patient" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenVerifier_Rejects(t *testing.T) {
	now := time.Now().UTC()
	v := NewTokenVerifier("secret", "identity")

	tests := []struct {
		name    string
		token   func() string
		wantErr error
	}{
		{"empty", func() string { return "  " }, ErrJWTInvalid},
		{"garbage", func() string { return "not-a-jwt" }, ErrJWTInvalid},
		{"wrong secret", func() string { return signTestToken(t, "other", validClaims(now)) }, ErrJWTInvalid},
		{"expired", func() string {
			c := validClaims(now.Add(-time.Hour))
			return signTestToken(t, "secret", c)
		}, ErrJWTExpired},
		{"refresh token", func() string {
			c := validClaims(now)
			c.TokenType = "refresh"
			return signTestToken(t, "secret", c)
		}, ErrJWTInvalid},
		{"subject mismatch", func() string {
			c := validClaims(now)
			c.Subject = "u2"
			return signTestToken(t, "secret", c)
		}, ErrJWTInvalid},
		{"wrong issuer", func() string {
			c := validClaims(now)
			c.Issuer = "someone-else"
			return signTestToken(t, "secret", c)
		}, ErrJWTInvalid},
		{"wrong algorithm", func() string {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, validClaims(now)).SignedString([]byte("secret"))
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			return token
		}, ErrJWTInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.ParseAccessToken(tt.token()); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTokenVerifier_Disabled(t *testing.T) {
	var nilVerifier *TokenVerifier
	if nilVerifier.Enabled() || NewTokenVerifier("", "").Enabled() {
		t.Fatalf("expected verifier without secret to be disabled")
	}
	if _, err := NewTokenVerifier("", "").ParseAccessToken("x"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestTokenVerifier_AnyIssuerWhenUnset(t *testing.T) {
	c := validClaims(time.Now().UTC())
	c.Issuer = "whoever"
	if _, err := NewTokenVerifier("secret", "").ParseAccessToken(signTestToken(t, "secret", c)); err != nil {
		t.Fatalf("expected token to be accepted, got %v", err)
	}
}
