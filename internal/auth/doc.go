// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package auth provides JWT-based authentication and role-based access
// control for the API. Tokens are HMAC-SHA256 signed and carry the user's
// role; passwords are verified against bcrypt hashes held in an in-memory
// credential store seeded from configuration.
package auth
