// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abbasl7/e-vault/internal/service"
)

type backupMode int

const (
	backupModeExport backupMode = iota
	backupModeImport
)

type backupModel struct {
	ctx     context.Context
	backups service.BackupService

	mode       backupMode
	form       form
	submitting bool
	status     string
	errMsg     string
}

func newBackupModel(ctx context.Context, backups service.BackupService) backupModel {
	labels := []string{"Backup file", "Backup password"}
	inputs := []textinput.Model{
		newInput(defaultBackupPath(), false),
		newInput("password", true),
	}
	return backupModel{ctx: ctx, backups: backups, form: newForm(labels, inputs)}
}

func defaultBackupPath() string {
	return fmt.Sprintf("evault-backup-%s.vault", time.Now().Format("2006-01-02"))
}

func (m backupModel) update(msg tea.Msg) (backupModel, tea.Cmd) {
	switch result := msg.(type) {
	case backupExportedMsg:
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeRecordError(result.err)
			return m, nil
		}
		m.status = "Backup written to " + result.path
		return m, nil
	case backupImportedMsg:
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeRecordError(result.err)
			return m, nil
		}
		m.status = "Backup restored. Lock and unlock the vault to reload."
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "left", "right":
		if m.mode == backupModeExport {
			m.mode = backupModeImport
		} else {
			m.mode = backupModeExport
		}
		return m, nil
	case "tab", "down":
		m.form.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.form.focusPrev()
		return m, nil
	case "enter":
		if m.submitting {
			return m, nil
		}
		path := m.form.value(0)
		if path == "" {
			path = defaultBackupPath()
		}
		password := m.form.rawValue(1)
		if len(password) < 6 {
			m.errMsg = "Backup password must be at least 6 characters"
			return m, nil
		}
		m.errMsg = ""
		m.status = ""
		m.submitting = true
		if m.mode == backupModeExport {
			return m, m.cmdExport(path, password)
		}
		return m, m.cmdImport(path, password)
	}

	cmd := m.form.updateFocused(msg)
	return m, cmd
}

func (m backupModel) cmdExport(path, password string) tea.Cmd {
	ctx, backups := m.ctx, m.backups
	return func() tea.Msg {
		envelope, err := backups.Export(ctx, password)
		if err != nil {
			return backupExportedMsg{err: err}
		}
		if err = os.WriteFile(path, []byte(envelope), 0600); err != nil {
			return backupExportedMsg{err: fmt.Errorf("write backup file: %w", err)}
		}
		return backupExportedMsg{path: path}
	}
}

func (m backupModel) cmdImport(path, password string) tea.Cmd {
	ctx, backups := m.ctx, m.backups
	return func() tea.Msg {
		envelope, err := os.ReadFile(path)
		if err != nil {
			return backupImportedMsg{err: fmt.Errorf("read backup file: %w", err)}
		}
		payload, err := backups.Import(ctx, string(envelope), password)
		if err != nil {
			return backupImportedMsg{err: err}
		}
		return backupImportedMsg{err: backups.Restore(ctx, payload)}
	}
}

func (m backupModel) view() string {
	var b strings.Builder

	exportTab, importTab := "[ Export ]", "  Import  "
	if m.mode == backupModeImport {
		exportTab, importTab = "  Export  ", "[ Import ]"
	}
	b.WriteString(exportTab + " " + importTab + "\n\n")
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Working...]\n")
	} else if m.mode == backupModeExport {
		b.WriteString("\n[Export backup]\n")
	} else {
		b.WriteString("\n[Restore backup]\n")
	}

	b.WriteString("\n" + helpStyle.Render("The backup is encrypted with the backup password alone; pick a strong one."))
	if m.status != "" {
		b.WriteString("\nOK: " + m.status)
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg))
	}

	return renderPage("BACKUP & RESTORE", strings.TrimRight(b.String(), "\n"),
		"←/→: mode │ tab: next field │ enter: run │ esc: back")
}
