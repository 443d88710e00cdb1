// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

// Package tui is the terminal front end of the vault. It is a thin layer
// over the service interfaces: every screen issues commands that call a
// service method and report back with a typed message, so no business
// logic lives here.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/internal/service"
)

type TUI struct {
	services *service.Services
	logger   *logger.Logger
}

func New(services *service.Services, log *logger.Logger) *TUI {
	return &TUI{services: services, logger: log}
}

// Run blocks until the user quits or ctx is canceled.
func (t *TUI) Run(ctx context.Context) error {
	log := t.logger.GetChildLogger().With().Str("func", "TUI.Run").Logger()

	program := tea.NewProgram(
		newAppModel(ctx, t.services),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("terminal ui stopped: %w", err)
	}

	if app, ok := final.(appModel); ok && app.quitByUser {
		log.Debug().Msg("quit requested by user")
	}
	t.services.SessionService.Logout()

	return nil
}
