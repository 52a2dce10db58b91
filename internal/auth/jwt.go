// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLength guards against weak HMAC keys.
const minSecretLength = 32

// Claims are the JWT claims carried by Borderwatch access tokens.
type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager creates and validates access tokens. Tokens are stateless and
// signed with HMAC-SHA256; they cannot be revoked before expiry.
type JWTManager struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewJWTManager builds a token manager. The secret must be at least 32
// bytes; shorter keys undermine the HMAC.
func NewJWTManager(secret string, tokenTTL time.Duration) (*JWTManager, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &JWTManager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}, nil
}

// GenerateToken issues a signed token for an authenticated user.
func (m *JWTManager) GenerateToken(username string, role Role) (string, error) {
	now := m.now()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies a token's signature, algorithm, and time bounds,
// and returns its claims. Only HMAC-signed tokens are accepted; anything
// else is treated as an algorithm confusion attempt.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q in token", claims.Role)
	}
	return claims, nil
}

// TokenTTL exposes the configured token lifetime for login responses.
func (m *JWTManager) TokenTTL() time.Duration {
	return m.tokenTTL
}
