// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/borderwatch/internal/metrics"
)

// bcryptCost balances verification latency against brute-force resistance.
const bcryptCost = 12

// ErrInvalidCredentials is returned for any failed login. The message is
// deliberately uniform so callers cannot distinguish a bad username from a
// bad password.
var ErrInvalidCredentials = fmt.Errorf("invalid username or password")

type account struct {
	passwordHash []byte
	role         Role
}

// CredentialStore holds user accounts in memory with bcrypt password
// hashes. Passwords are hashed once at registration, not per request.
type CredentialStore struct {
	mu       sync.RWMutex
	accounts map[string]account
}

// NewCredentialStore builds an empty store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{accounts: make(map[string]account)}
}

// AddUser registers an account, replacing any existing account with the
// same username.
func (s *CredentialStore) AddUser(username, password string, role Role) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	s.accounts[username] = account{passwordHash: hash, role: role}
	s.mu.Unlock()
	return nil
}

// Authenticate verifies a username/password pair and returns the account's
// role. Verification runs in constant time relative to which credential was
// wrong.
func (s *CredentialStore) Authenticate(username, password string) (Role, error) {
	s.mu.RLock()
	acct, found := s.accounts[username]
	s.mu.RUnlock()

	if !found {
		// Burn a bcrypt comparison so unknown usernames cost the same
		// as wrong passwords.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return "", ErrInvalidCredentials
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	return acct.role, nil
}

// dummyHash is a fixed bcrypt hash of an unguessable value used to equalise
// timing for unknown usernames.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("borderwatch-timing-pad"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return h
}()
