// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abbasl7/e-vault/internal/service"
)

type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenSetup
	screenReset
	screenChangePassword
	screenMenu
	screenList
	screenDetail
	screenForm
	screenSearch
	screenBackup
)

// appModel is the TUI router: it keeps the active screen, owns the session
// reference, handles global hotkeys and cross-screen navigation, and
// delegates everything else to the active screen's model.
type appModel struct {
	ctx           context.Context
	services      *service.Services
	currentScreen screen
	sess          *service.Session

	welcome        welcomeModel
	login          loginModel
	setup          setupModel
	reset          resetModel
	changePassword changePasswordModel
	menu           menuModel
	list           listModel
	detail         detailModel
	recordForm     recordFormModel
	search         searchModel
	backup         backupModel

	quitByUser bool
}

func newAppModel(ctx context.Context, services *service.Services) appModel {
	return appModel{
		ctx:            ctx,
		services:       services,
		currentScreen:  screenWelcome,
		welcome:        newWelcomeModel(),
		login:          newLoginModel(ctx, services.SessionService),
		setup:          newSetupModel(ctx, services.SessionService),
		reset:          newResetModel(ctx, services.SessionService),
		changePassword: newChangePasswordModel(ctx, services.SessionService),
		menu:           newMenuModel(),
		list:           newListModel(ctx, services.RecordService),
		detail:         newDetailModel(),
		recordForm:     newRecordFormModel(ctx, services.RecordService),
		search:         newSearchModel(ctx, services.RecordService),
		backup:         newBackupModel(ctx, services.BackupService),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.cmdCheckAccount()
}

func (m appModel) cmdCheckAccount() tea.Cmd {
	ctx, sessions := m.ctx, m.services.SessionService
	return func() tea.Msg {
		_, _, err := sessions.SecurityQuestions(ctx)
		if err != nil {
			if errors.Is(err, service.ErrNoAccount) {
				return accountCheckedMsg{exists: false}
			}
			return accountCheckedMsg{err: err}
		}
		return accountCheckedMsg{exists: true}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			m.quitByUser = true
			return m, tea.Quit
		case "esc":
			return m.navigateBack()
		}
	}

	switch result := msg.(type) {
	case accountCheckedMsg:
		m.welcome = m.welcome.withAccount(result.exists)
		return m, nil

	case authDoneMsg:
		if result.err == nil && result.sess != nil {
			m.sess = result.sess
			m.currentScreen = screenMenu
			m.menu.status = ""
			m.login.form.reset()
			m.setup.form.reset()
			return m, nil
		}

	case passwordUpdatedMsg:
		if result.err == nil {
			switch m.currentScreen {
			case screenReset:
				m.currentScreen = screenWelcome
				m.welcome = m.welcome.withAccount(true)
				m.welcome.status = "Password reset. Unlock with your new password."
				m.reset.form.reset()
				return m, nil
			case screenChangePassword:
				m.currentScreen = screenMenu
				m.menu.status = "Master password changed"
				m.changePassword.form.reset()
				return m, nil
			}
		}

	case recordSavedMsg:
		if result.err == nil && m.currentScreen == screenForm {
			m.currentScreen = screenList
			updated, cmd := m.list.open(m.list.category, m.sess)
			m.list = updated
			return m, cmd
		}

	case recordDeletedMsg:
		if result.err == nil && m.currentScreen == screenList {
			updated, cmd := m.list.open(m.list.category, m.sess)
			m.list = updated
			return m, cmd
		}
	}

	return m.delegate(msg)
}

// navigateBack implements esc for every screen.
func (m appModel) navigateBack() (tea.Model, tea.Cmd) {
	switch m.currentScreen {
	case screenWelcome:
		m.quitByUser = true
		return m, tea.Quit
	case screenLogin, screenSetup, screenReset:
		m.currentScreen = screenWelcome
	case screenMenu:
		m.lock()
	case screenList, screenSearch, screenBackup, screenChangePassword:
		m.currentScreen = screenMenu
	case screenDetail:
		m.currentScreen = screenList
	case screenForm:
		m.currentScreen = screenList
	}
	return m, nil
}

// lock discards the session and returns to the welcome screen.
func (m *appModel) lock() {
	m.services.SessionService.Logout()
	m.sess = nil
	m.currentScreen = screenWelcome
	m.welcome = m.welcome.withAccount(true)
	m.welcome.status = "Vault locked"
}

func (m appModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentScreen {
	case screenWelcome:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
			return m.openWelcomeSelection()
		}
		m.welcome, cmd = m.welcome.update(msg)

	case screenLogin:
		m.login, cmd = m.login.update(msg)

	case screenSetup:
		m.setup, cmd = m.setup.update(msg)

	case screenReset:
		m.reset, cmd = m.reset.update(msg)

	case screenChangePassword:
		m.changePassword, cmd = m.changePassword.update(msg)

	case screenMenu:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
			return m.openMenuSelection()
		}
		m.menu, cmd = m.menu.update(msg)

	case screenList:
		return m.updateList(msg)

	case screenDetail:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "e" {
			record := m.detail.record
			m.recordForm = m.recordForm.open(record.Category, &record)
			m.currentScreen = screenForm
			return m, nil
		}
		m.detail, cmd = m.detail.update(msg)

	case screenForm:
		m.recordForm, cmd = m.recordForm.update(msg, m.sess)

	case screenSearch:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+o" {
			if record, ok := m.search.selected(); ok {
				m.detail = m.detail.open(record)
				m.currentScreen = screenDetail
			}
			return m, nil
		}
		m.search, cmd = m.search.update(msg, m.sess)

	case screenBackup:
		m.backup, cmd = m.backup.update(msg)
	}

	return m, cmd
}

func (m appModel) openWelcomeSelection() (tea.Model, tea.Cmd) {
	if m.welcome.hasAccount {
		switch m.welcome.idx {
		case 0:
			m.currentScreen = screenLogin
			return m, nil
		case 1:
			m.reset = newResetModel(m.ctx, m.services.SessionService)
			m.currentScreen = screenReset
			return m, m.reset.init()
		}
		return m, nil
	}
	m.currentScreen = screenSetup
	return m, nil
}

func (m appModel) openMenuSelection() (tea.Model, tea.Cmd) {
	entry := m.menu.selected()

	switch entry.action {
	case "search":
		m.search = newSearchModel(m.ctx, m.services.RecordService)
		m.currentScreen = screenSearch
		return m, nil
	case "backup":
		m.backup = newBackupModel(m.ctx, m.services.BackupService)
		m.currentScreen = screenBackup
		return m, nil
	case "change-password":
		m.changePassword = newChangePasswordModel(m.ctx, m.services.SessionService)
		m.currentScreen = screenChangePassword
		return m, nil
	case "logout":
		m.lock()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.open(entry.category, m.sess)
	m.currentScreen = screenList
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if record, ok := m.list.selected(); ok {
				m.detail = m.detail.open(record)
				m.currentScreen = screenDetail
			}
			return m, nil
		case "n":
			m.recordForm = m.recordForm.open(m.list.category, nil)
			m.currentScreen = screenForm
			return m, nil
		case "e":
			if record, ok := m.list.selected(); ok {
				m.recordForm = m.recordForm.open(record.Category, &record)
				m.currentScreen = screenForm
			}
			return m, nil
		case "d":
			if record, ok := m.list.selected(); ok {
				return m, m.cmdDelete(record.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.update(msg)
	return m, cmd
}

func (m appModel) cmdDelete(id string) tea.Cmd {
	ctx, records, sess := m.ctx, m.services.RecordService, m.sess
	return func() tea.Msg {
		return recordDeletedMsg{err: records.Delete(ctx, sess, id)}
	}
}

func (m appModel) View() string {
	switch m.currentScreen {
	case screenWelcome:
		return m.welcome.view()
	case screenLogin:
		return m.login.view()
	case screenSetup:
		return m.setup.view()
	case screenReset:
		return m.reset.view()
	case screenChangePassword:
		return m.changePassword.view()
	case screenMenu:
		username := ""
		if m.sess != nil {
			username = m.sess.Username()
		}
		return m.menu.view(username)
	case screenList:
		return m.list.view()
	case screenDetail:
		return m.detail.view()
	case screenForm:
		return m.recordForm.view()
	case screenSearch:
		return m.search.view()
	case screenBackup:
		return m.backup.view()
	}
	return renderPage("E-VAULT", "", "")
}
