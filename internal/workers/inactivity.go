// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/internal/service"
)

// InactivityWatcher polls the session manager and expires the session once
// it has been idle past the configured timeout. Polling is idempotent and
// safe to run with no session open.
type InactivityWatcher struct {
	sessions service.SessionService
	timeout  time.Duration
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewInactivityWatcher creates a watcher that logs the session out after
// timeout of idleness, checking every interval. Non-positive values fall
// back to 5 minutes and 15 seconds respectively. The watcher is idle until
// Start or Run is called.
func NewInactivityWatcher(sessions service.SessionService, timeout, interval time.Duration, log *logger.Logger) *InactivityWatcher {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &InactivityWatcher{sessions: sessions, timeout: timeout, interval: interval, logger: log}
}

// Run implements Worker. It starts the watcher with a background context.
func (w *InactivityWatcher) Run() {
	w.Start(context.Background())
}

// Start stops any previously running watcher, then launches a background
// goroutine that polls every interval. The goroutine exits when ctx is
// cancelled or Stop is called.
func (w *InactivityWatcher) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-watchCtx.Done():
				return
			case <-t.C:
				if w.sessions.ExpireIfInactive(time.Now(), w.timeout) {
					w.logger.Info().Str("func", "InactivityWatcher").Msg("idle session expired")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the watcher is not running.
func (w *InactivityWatcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
