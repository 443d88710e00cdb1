// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abbasl7/e-vault/internal/service"
)

// ── welcome ──────────────────────────────────────────────────────────────────

type welcomeModel struct {
	hasAccount bool
	items      []string
	idx        int
	status     string
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{items: []string{"Checking vault..."}}
}

func (m welcomeModel) withAccount(exists bool) welcomeModel {
	m.hasAccount = exists
	m.idx = 0
	if exists {
		m.items = []string{"Unlock vault", "Forgot password"}
	} else {
		m.items = []string{"Create vault"}
	}
	return m
}

func (m welcomeModel) update(msg tea.Msg) (welcomeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	}
	return m, nil
}

func (m welcomeModel) view() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString("OK: " + m.status + "\n\n")
	}
	b.WriteString("Select an action:\n\n")
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(cursor + item + "\n")
	}
	return renderPage("E-VAULT", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: move")
}

// ── login ────────────────────────────────────────────────────────────────────

type loginModel struct {
	ctx      context.Context
	sessions service.SessionService

	form       form
	submitting bool
	errMsg     string
}

func newLoginModel(ctx context.Context, sessions service.SessionService) loginModel {
	return loginModel{
		ctx:      ctx,
		sessions: sessions,
		form:     newForm([]string{"Master password"}, []textinput.Model{newInput("password", true)}),
	}
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	if result, ok := msg.(authDoneMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeAuthError(result.err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter":
		if m.submitting {
			return m, nil
		}
		password := m.form.rawValue(0)
		if password == "" {
			m.errMsg = "Password is required"
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		return m, m.cmdLogin(password)
	}

	cmd := m.form.updateFocused(msg)
	return m, cmd
}

func (m loginModel) view() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	if m.submitting {
		b.WriteString("\n[Unlocking...]\n")
	} else {
		b.WriteString("\n[Unlock]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg))
	}
	return renderPage("UNLOCK VAULT", strings.TrimRight(b.String(), "\n"), "esc: back │ enter: unlock")
}

func (m loginModel) cmdLogin(password string) tea.Cmd {
	ctx, sessions := m.ctx, m.sessions
	return func() tea.Msg {
		sess, err := sessions.Login(ctx, password)
		return authDoneMsg{sess: sess, err: err}
	}
}

// ── setup ────────────────────────────────────────────────────────────────────

type setupModel struct {
	ctx      context.Context
	sessions service.SessionService

	form       form
	submitting bool
	errMsg     string
}

func newSetupModel(ctx context.Context, sessions service.SessionService) setupModel {
	labels := []string{
		"Username",
		"Master password",
		"Confirm password",
		"Security question 1",
		"Answer 1",
		"Security question 2",
		"Answer 2",
	}
	inputs := []textinput.Model{
		newInput("username", false),
		newInput("password", true),
		newInput("repeat password", true),
		newInput("e.g. first pet's name", false),
		newInput("answer", true),
		newInput("e.g. city of birth", false),
		newInput("answer", true),
	}
	return setupModel{ctx: ctx, sessions: sessions, form: newForm(labels, inputs)}
}

func (m setupModel) update(msg tea.Msg) (setupModel, tea.Cmd) {
	if result, ok := msg.(authDoneMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeAuthError(result.err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
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
		if m.form.focus != len(m.form.inputs)-1 {
			m.form.focusNext()
			return m, nil
		}
		return m.submit()
	}

	cmd := m.form.updateFocused(msg)
	return m, cmd
}

func (m setupModel) submit() (setupModel, tea.Cmd) {
	username := m.form.value(0)
	password := m.form.rawValue(1)
	confirm := m.form.rawValue(2)
	question1, answer1 := m.form.value(3), m.form.rawValue(4)
	question2, answer2 := m.form.value(5), m.form.rawValue(6)

	switch {
	case username == "" || password == "":
		m.errMsg = "Username and password are required"
	case len(password) < 8:
		m.errMsg = "Password must be at least 8 characters"
	case password != confirm:
		m.errMsg = "Passwords do not match"
	case question1 == "" || answer1 == "" || question2 == "" || answer2 == "":
		m.errMsg = "Both security questions and answers are required"
	default:
		m.errMsg = ""
		m.submitting = true
		return m, m.cmdSetup(username, password, question1, answer1, question2, answer2)
	}
	return m, nil
}

func (m setupModel) view() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	if m.submitting {
		b.WriteString("\n[Creating vault...]\n")
	} else {
		b.WriteString("\n[Create vault]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg))
	}
	return renderPage("CREATE VAULT", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: confirm")
}

func (m setupModel) cmdSetup(username, password, question1, answer1, question2, answer2 string) tea.Cmd {
	ctx, sessions := m.ctx, m.sessions
	return func() tea.Msg {
		sess, err := sessions.Setup(ctx, username, password, question1, answer1, question2, answer2)
		return authDoneMsg{sess: sess, err: err}
	}
}

// ── reset password ───────────────────────────────────────────────────────────

type resetModel struct {
	ctx      context.Context
	sessions service.SessionService

	question1  string
	question2  string
	form       form
	loading    bool
	submitting bool
	errMsg     string
}

func newResetModel(ctx context.Context, sessions service.SessionService) resetModel {
	labels := []string{"Answer 1", "Answer 2", "New password"}
	inputs := []textinput.Model{
		newInput("answer", true),
		newInput("answer", true),
		newInput("password", true),
	}
	return resetModel{ctx: ctx, sessions: sessions, form: newForm(labels, inputs), loading: true}
}

func (m resetModel) init() tea.Cmd {
	ctx, sessions := m.ctx, m.sessions
	return func() tea.Msg {
		question1, question2, err := sessions.SecurityQuestions(ctx)
		return questionsLoadedMsg{question1: question1, question2: question2, err: err}
	}
}

func (m resetModel) update(msg tea.Msg) (resetModel, tea.Cmd) {
	switch result := msg.(type) {
	case questionsLoadedMsg:
		m.loading = false
		if result.err != nil {
			m.errMsg = humanizeAuthError(result.err)
			return m, nil
		}
		m.question1, m.question2 = result.question1, result.question2
		return m, nil
	case passwordUpdatedMsg:
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeAuthError(result.err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.form.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.form.focusPrev()
		return m, nil
	case "enter":
		if m.submitting || m.loading {
			return m, nil
		}
		if m.form.focus != len(m.form.inputs)-1 {
			m.form.focusNext()
			return m, nil
		}
		answer1, answer2 := m.form.rawValue(0), m.form.rawValue(1)
		password := m.form.rawValue(2)
		if answer1 == "" || answer2 == "" || password == "" {
			m.errMsg = "Both answers and a new password are required"
			return m, nil
		}
		if len(password) < 8 {
			m.errMsg = "Password must be at least 8 characters"
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		return m, m.cmdReset(answer1, answer2, password)
	}

	cmd := m.form.updateFocused(msg)
	return m, cmd
}

func (m resetModel) view() string {
	if m.loading {
		return renderPage("RESET PASSWORD", "Loading security questions...", "esc: back")
	}

	var b strings.Builder
	b.WriteString("Q1: " + m.question1 + "\n")
	b.WriteString("Q2: " + m.question2 + "\n\n")
	b.WriteString(m.form.view())
	if m.submitting {
		b.WriteString("\n[Resetting...]\n")
	} else {
		b.WriteString("\n[Reset password]\n")
	}
	b.WriteString("\n" + helpStyle.Render("Warning: records encrypted under the old password stay unreadable."))
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg))
	}
	return renderPage("RESET PASSWORD", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: confirm")
}

func (m resetModel) cmdReset(answer1, answer2, password string) tea.Cmd {
	ctx, sessions := m.ctx, m.sessions
	return func() tea.Msg {
		return passwordUpdatedMsg{err: sessions.ResetPassword(ctx, answer1, answer2, password)}
	}
}

// ── change password ──────────────────────────────────────────────────────────

type changePasswordModel struct {
	ctx      context.Context
	sessions service.SessionService

	form       form
	submitting bool
	errMsg     string
}

func newChangePasswordModel(ctx context.Context, sessions service.SessionService) changePasswordModel {
	labels := []string{"Current password", "New password", "Confirm new password"}
	inputs := []textinput.Model{
		newInput("password", true),
		newInput("password", true),
		newInput("repeat password", true),
	}
	return changePasswordModel{ctx: ctx, sessions: sessions, form: newForm(labels, inputs)}
}

func (m changePasswordModel) update(msg tea.Msg) (changePasswordModel, tea.Cmd) {
	if result, ok := msg.(passwordUpdatedMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeAuthError(result.err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
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
		if m.form.focus != len(m.form.inputs)-1 {
			m.form.focusNext()
			return m, nil
		}
		oldPassword := m.form.rawValue(0)
		newPassword, confirm := m.form.rawValue(1), m.form.rawValue(2)
		switch {
		case oldPassword == "" || newPassword == "":
			m.errMsg = "Both passwords are required"
		case len(newPassword) < 8:
			m.errMsg = "Password must be at least 8 characters"
		case newPassword != confirm:
			m.errMsg = "Passwords do not match"
		default:
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdChange(oldPassword, newPassword)
		}
		return m, nil
	}

	cmd := m.form.updateFocused(msg)
	return m, cmd
}

func (m changePasswordModel) view() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	if m.submitting {
		b.WriteString("\n[Changing...]\n")
	} else {
		b.WriteString("\n[Change password]\n")
	}
	b.WriteString("\n" + helpStyle.Render("Existing records are not re-encrypted under the new password."))
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg))
	}
	return renderPage("CHANGE PASSWORD", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: confirm")
}

func (m changePasswordModel) cmdChange(oldPassword, newPassword string) tea.Cmd {
	ctx, sessions := m.ctx, m.sessions
	return func() tea.Msg {
		return passwordUpdatedMsg{err: sessions.ChangePassword(ctx, oldPassword, newPassword)}
	}
}
