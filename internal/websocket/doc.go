// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package websocket pushes live threat updates to dashboard clients. A hub
// fans broadcast messages out to every connected client; each client runs
// separate read and write pumps with ping/pong keepalive. Threat updates
// are broadcast after every feed refresh.
package websocket
