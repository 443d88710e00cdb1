// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package service

import (
	"sync"
	"time"

	"github.com/abbasl7/e-vault/internal/crypto"
)

// Session represents one authenticated vault session. It owns the key
// capability for its lifetime and tracks the last-activity timestamp the
// inactivity watcher polls.
//
// Sessions are created only by [SessionService] and passed explicitly to
// every engine call that needs the key. There is no ambient session state;
// tests can hold several sessions side by side without cross-contamination.
type Session struct {
	mu           sync.Mutex
	username     string
	key          *crypto.KeyCapability
	lastActivity time.Time
}

func newSession(username string, key *crypto.KeyCapability) *Session {
	return &Session{username: username, key: key, lastActivity: time.Now()}
}

// Username returns the display name of the authenticated user.
func (s *Session) Username() string {
	return s.username
}

// Key returns the session's key capability, or nil after the session has
// been destroyed. Callers must not retain the returned pointer past the
// current operation.
func (s *Session) Key() *crypto.KeyCapability {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Touch records user activity now, pushing back the inactivity deadline.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// LastActivity returns the time of the most recent Touch.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// replaceKey swaps in a new capability and destroys the old one. Used by
// password change while a session is live.
func (s *Session) replaceKey(key *crypto.KeyCapability) {
	s.mu.Lock()
	old := s.key
	s.key = key
	s.mu.Unlock()

	if old != nil {
		old.Destroy()
	}
}

// destroy wipes the key capability. Idempotent.
func (s *Session) destroy() {
	s.mu.Lock()
	key := s.key
	s.key = nil
	s.mu.Unlock()

	if key != nil {
		key.Destroy()
	}
}

// CheckInactivity reports whether a session last active at lastActivity has
// been idle longer than timeout as of now. Pure; the caller decides whether
// to log out.
func CheckInactivity(now, lastActivity time.Time, timeout time.Duration) bool {
	return now.Sub(lastActivity) > timeout
}
