// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abbasl7/e-vault/internal/crypto"
	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/internal/store"
	"github.com/abbasl7/e-vault/models"
)

type sessionService struct {
	credentials store.CredentialRepository
	keychain    crypto.KeyChainService
	logger      *logger.Logger

	// mu serializes every session-state transition. Encrypt/decrypt calls
	// elsewhere run concurrently; login, logout and password updates do not.
	mu      sync.Mutex
	current *Session
}

// NewSessionService creates the credential and session manager backed by
// the given credential repository and key derivation service.
func NewSessionService(credentials store.CredentialRepository, keychain crypto.KeyChainService, log *logger.Logger) SessionService {
	return &sessionService{credentials: credentials, keychain: keychain, logger: log}
}

func (s *sessionService) Setup(ctx context.Context, username, password, question1, answer1, question2, answer2 string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.credentials.GetCredential(ctx)
	switch {
	case err == nil:
		return nil, ErrAlreadyInitialized
	case !errors.Is(err, store.ErrCredentialNotFound):
		return nil, fmt.Errorf("check existing credential: %w", err)
	}

	saltHex, err := s.keychain.GenerateSaltHex()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	now := time.Now().UnixMilli()
	credential := models.Credential{
		ID:                  models.CredentialID,
		MasterHash:          s.keychain.DeriveVerification(password, saltHex),
		Salt:                saltHex,
		Username:            username,
		SecurityQuestion1:   question1,
		SecurityAnswer1Hash: s.keychain.DeriveVerification(strings.ToLower(answer1), saltHex),
		SecurityQuestion2:   question2,
		SecurityAnswer2Hash: s.keychain.DeriveVerification(strings.ToLower(answer2), saltHex),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err = s.credentials.SaveCredential(ctx, credential); err != nil {
		return nil, fmt.Errorf("save credential: %w", err)
	}

	key, err := s.keychain.DeriveCapability(password, saltHex)
	if err != nil {
		return nil, fmt.Errorf("derive capability: %w", err)
	}

	s.current = newSession(username, key)
	s.logger.Info().Str("func", "Setup").Str("username", username).Msg("vault initialized")
	return s.current, nil
}

func (s *sessionService) Login(ctx context.Context, password string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	credential, err := s.getCredential(ctx)
	if err != nil {
		return nil, err
	}

	if !verificationMatches(s.keychain.DeriveVerification(password, credential.Salt), credential.MasterHash) {
		return nil, ErrInvalidCredentials
	}

	key, err := s.keychain.DeriveCapability(password, credential.Salt)
	if err != nil {
		return nil, fmt.Errorf("derive capability: %w", err)
	}

	if s.current != nil {
		s.current.destroy()
	}
	s.current = newSession(credential.Username, key)
	s.logger.Info().Str("func", "Login").Msg("session opened")
	return s.current, nil
}

func (s *sessionService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	credential, err := s.getCredential(ctx)
	if err != nil {
		return err
	}

	if !verificationMatches(s.keychain.DeriveVerification(oldPassword, credential.Salt), credential.MasterHash) {
		return ErrInvalidCredentials
	}

	// Same salt, new password. Existing envelopes stay under the old key.
	credential.MasterHash = s.keychain.DeriveVerification(newPassword, credential.Salt)
	credential.UpdatedAt = time.Now().UnixMilli()

	if err = s.credentials.SaveCredential(ctx, credential); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}

	if s.current != nil {
		key, err := s.keychain.DeriveCapability(newPassword, credential.Salt)
		if err != nil {
			return fmt.Errorf("derive capability: %w", err)
		}
		s.current.replaceKey(key)
	}

	s.logger.Info().Str("func", "ChangePassword").Msg("master password changed")
	return nil
}

func (s *sessionService) ResetPassword(ctx context.Context, answer1, answer2, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	credential, err := s.getCredential(ctx)
	if err != nil {
		return err
	}

	answer1Matches := verificationMatches(
		s.keychain.DeriveVerification(strings.ToLower(answer1), credential.Salt),
		credential.SecurityAnswer1Hash,
	)
	answer2Matches := verificationMatches(
		s.keychain.DeriveVerification(strings.ToLower(answer2), credential.Salt),
		credential.SecurityAnswer2Hash,
	)
	if !answer1Matches || !answer2Matches {
		return ErrWrongAnswer
	}

	credential.MasterHash = s.keychain.DeriveVerification(newPassword, credential.Salt)
	credential.UpdatedAt = time.Now().UnixMilli()

	if err = s.credentials.SaveCredential(ctx, credential); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}

	// Records encrypted before the reset are now permanently unreadable
	// unless the user still knows the old password.
	s.logger.Warn().Str("func", "ResetPassword").Msg("master password reset; existing envelopes not re-encrypted")
	return nil
}

func (s *sessionService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.destroy()
		s.current = nil
		s.logger.Info().Str("func", "Logout").Msg("session closed")
	}
}

func (s *sessionService) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *sessionService) SecurityQuestions(ctx context.Context) (string, string, error) {
	credential, err := s.getCredential(ctx)
	if err != nil {
		return "", "", err
	}
	return credential.SecurityQuestion1, credential.SecurityQuestion2, nil
}

func (s *sessionService) ExpireIfInactive(now time.Time, timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	if !CheckInactivity(now, s.current.LastActivity(), timeout) {
		return false
	}

	s.current.destroy()
	s.current = nil
	s.logger.Info().Str("func", "ExpireIfInactive").Msg("session expired after inactivity")
	return true
}

func (s *sessionService) getCredential(ctx context.Context) (models.Credential, error) {
	credential, err := s.credentials.GetCredential(ctx)
	if err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			return models.Credential{}, ErrNoAccount
		}
		return models.Credential{}, fmt.Errorf("load credential: %w", err)
	}
	return credential, nil
}

// verificationMatches compares two hex-encoded verification values in
// constant time.
func verificationMatches(derived, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(derived), []byte(stored)) == 1
}
