// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abbasl7/e-vault/internal/service"
	"github.com/abbasl7/e-vault/models"
)

// ── menu ─────────────────────────────────────────────────────────────────────

// menuEntry is one row of the main menu: either a category or an action.
type menuEntry struct {
	label    string
	category models.Category
	action   string
}

type menuModel struct {
	entries []menuEntry
	idx     int
	status  string
}

func newMenuModel() menuModel {
	entries := make([]menuEntry, 0, len(models.Categories())+4)
	for _, category := range models.Categories() {
		entries = append(entries, menuEntry{label: categoryTitles[category], category: category})
	}
	entries = append(entries,
		menuEntry{label: "Search", action: "search"},
		menuEntry{label: "Backup & restore", action: "backup"},
		menuEntry{label: "Change password", action: "change-password"},
		menuEntry{label: "Lock vault", action: "logout"},
	)
	return menuModel{entries: entries}
}

func (m menuModel) update(msg tea.Msg) (menuModel, tea.Cmd) {
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
		if m.idx < len(m.entries)-1 {
			m.idx++
		}
	}
	return m, nil
}

func (m menuModel) selected() menuEntry {
	return m.entries[m.idx]
}

func (m menuModel) view(username string) string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString("OK: " + m.status + "\n\n")
	}
	b.WriteString("Vault of " + username + "\n\n")
	for i, entry := range m.entries {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(cursor + entry.label + "\n")
	}
	return renderPage("MAIN MENU", strings.TrimRight(b.String(), "\n"), "enter: open │ ↑/↓: move │ esc: lock")
}

// ── record list ──────────────────────────────────────────────────────────────

type listModel struct {
	ctx     context.Context
	records service.RecordService

	category models.Category
	items    []models.Record
	idx      int
	loading  bool
	errMsg   string
}

func newListModel(ctx context.Context, records service.RecordService) listModel {
	return listModel{ctx: ctx, records: records}
}

func (m listModel) open(category models.Category, sess *service.Session) (listModel, tea.Cmd) {
	m.category = category
	m.items = nil
	m.idx = 0
	m.loading = true
	m.errMsg = ""
	return m, m.cmdLoad(sess)
}

func (m listModel) cmdLoad(sess *service.Session) tea.Cmd {
	ctx, records, category := m.ctx, m.records, m.category
	return func() tea.Msg {
		items, err := records.ListByCategory(ctx, sess, category)
		return listLoadedMsg{category: category, records: items, err: err}
	}
}

func (m listModel) update(msg tea.Msg) (listModel, tea.Cmd) {
	switch result := msg.(type) {
	case listLoadedMsg:
		if result.category != m.category {
			return m, nil
		}
		m.loading = false
		if result.err != nil {
			m.errMsg = humanizeRecordError(result.err)
			return m, nil
		}
		m.items = result.records
		if m.idx >= len(m.items) {
			m.idx = 0
		}
		return m, nil
	case tea.KeyMsg:
		switch result.String() {
		case "up", "k":
			if m.idx > 0 {
				m.idx--
			}
		case "down", "j":
			if m.idx < len(m.items)-1 {
				m.idx++
			}
		}
	}
	return m, nil
}

func (m listModel) selected() (models.Record, bool) {
	if len(m.items) == 0 {
		return models.Record{}, false
	}
	return m.items[m.idx], true
}

func (m listModel) view() string {
	title := strings.ToUpper(categoryTitles[m.category])
	if m.loading {
		return renderPage(title, "Loading...", "esc: back")
	}
	if m.errMsg != "" {
		return renderPage(title, errorStyle.Render("Error: "+m.errMsg), "esc: back")
	}
	if len(m.items) == 0 {
		return renderPage(title, "No records yet.", "n: new │ esc: back")
	}

	var b strings.Builder
	for i, record := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		line := fitText(recordTitle(record), 40)
		if n := len(record.Attachments); n > 0 {
			line += fmt.Sprintf(" [%d file(s)]", n)
		}
		b.WriteString(cursor + line + "\n")
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"enter: open │ n: new │ e: edit │ d: delete │ esc: back")
}

// ── record detail ────────────────────────────────────────────────────────────

type detailModel struct {
	record models.Record
	idx    int
	status string
}

func newDetailModel() detailModel {
	return detailModel{}
}

func (m detailModel) open(record models.Record) detailModel {
	m.record = record
	m.idx = 0
	m.status = ""
	return m
}

func (m detailModel) fields() []fieldSpec {
	return categoryFields[m.record.Category]
}

func (m detailModel) update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch result := msg.(type) {
	case copiedMsg:
		m.status = "Copied to clipboard"
		return m, clearStatusAfter(3 * time.Second)
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		fields := m.fields()
		switch result.String() {
		case "up", "k":
			if m.idx > 0 {
				m.idx--
			}
		case "down", "j":
			if m.idx < len(fields)-1 {
				m.idx++
			}
		case "c":
			if m.idx < len(fields) {
				value := m.record.Fields[fields[m.idx].Name]
				if value != "" {
					return m, cmdCopyToClipboard(value)
				}
			}
		}
	}
	return m, nil
}

func (m detailModel) view() string {
	var b strings.Builder
	labelWidth := 0
	fields := m.fields()
	for _, spec := range fields {
		if len(spec.Label) > labelWidth {
			labelWidth = len(spec.Label)
		}
	}

	for i, spec := range fields {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(cursor + padRight(spec.Label, labelWidth) + " │ " + valueOrDash(fitText(m.record.Fields[spec.Name], 44)) + "\n")
	}

	if len(m.record.Attachments) > 0 {
		b.WriteString("\nAttachments:\n")
		for _, attachment := range m.record.Attachments {
			b.WriteString(fmt.Sprintf("  %s (%s, %d bytes)\n", attachment.Name, attachment.MimeType, attachment.Size))
		}
	}

	if m.status != "" {
		b.WriteString("\nOK: " + m.status)
	}

	return renderPage(strings.ToUpper(categoryTitles[m.record.Category])+" / DETAIL",
		strings.TrimRight(b.String(), "\n"),
		"c: copy field │ e: edit │ esc: back")
}

func cmdCopyToClipboard(value string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(value); err != nil {
			return nil
		}
		return copiedMsg{}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// ── record form (create / edit) ──────────────────────────────────────────────

type recordFormModel struct {
	ctx     context.Context
	records service.RecordService

	category   models.Category
	recordID   string // empty for create
	form       form
	submitting bool
	errMsg     string
}

func newRecordFormModel(ctx context.Context, records service.RecordService) recordFormModel {
	return recordFormModel{ctx: ctx, records: records}
}

func (m recordFormModel) open(category models.Category, existing *models.Record) recordFormModel {
	m.category = category
	m.recordID = ""
	m.submitting = false
	m.errMsg = ""

	specs := categoryFields[category]
	labels := make([]string, len(specs))
	inputs := make([]textinput.Model, len(specs))
	for i, spec := range specs {
		labels[i] = spec.Label
		inputs[i] = newInput("", false)
		if existing != nil {
			inputs[i].SetValue(existing.Fields[spec.Name])
		}
	}
	if existing != nil {
		m.recordID = existing.ID
	}
	m.form = newForm(labels, inputs)
	return m
}

func (m recordFormModel) update(msg tea.Msg, sess *service.Session) (recordFormModel, tea.Cmd) {
	if result, ok := msg.(recordSavedMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeRecordError(result.err)
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
		m.errMsg = ""
		m.submitting = true
		return m, m.cmdSave(sess)
	}

	cmd := m.form.updateFocused(msg)
	return m, cmd
}

func (m recordFormModel) cmdSave(sess *service.Session) tea.Cmd {
	record := models.Record{
		ID:       m.recordID,
		Category: m.category,
		Fields:   make(map[string]string, len(m.form.inputs)),
	}
	for i, spec := range categoryFields[m.category] {
		record.Fields[spec.Name] = m.form.rawValue(i)
	}

	ctx, records := m.ctx, m.records
	isUpdate := m.recordID != ""
	return func() tea.Msg {
		var (
			saved models.Record
			err   error
		)
		if isUpdate {
			saved, err = records.Update(ctx, sess, record)
		} else {
			saved, err = records.Create(ctx, sess, record)
		}
		return recordSavedMsg{record: saved, err: err}
	}
}

func (m recordFormModel) view() string {
	mode := "NEW"
	if m.recordID != "" {
		mode = "EDIT"
	}

	var b strings.Builder
	b.WriteString(m.form.view())
	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg))
	}
	return renderPage(strings.ToUpper(categoryTitles[m.category])+" / "+mode,
		strings.TrimRight(b.String(), "\n"),
		"esc: cancel │ tab: next field │ enter: confirm")
}

// ── search ───────────────────────────────────────────────────────────────────

type searchModel struct {
	ctx     context.Context
	records service.RecordService

	input     textinput.Model
	results   []models.Record
	idx       int
	searching bool
	searched  bool
	errMsg    string
}

func newSearchModel(ctx context.Context, records service.RecordService) searchModel {
	input := newInput("search over public fields", false)
	input.Focus()
	return searchModel{ctx: ctx, records: records, input: input}
}

func (m searchModel) update(msg tea.Msg, sess *service.Session) (searchModel, tea.Cmd) {
	switch result := msg.(type) {
	case searchDoneMsg:
		m.searching = false
		m.searched = true
		if result.err != nil {
			m.errMsg = humanizeRecordError(result.err)
			return m, nil
		}
		m.results = result.records
		m.idx = 0
		return m, nil
	case tea.KeyMsg:
		switch result.String() {
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.searching {
				return m, nil
			}
			m.errMsg = ""
			m.searching = true
			return m, m.cmdSearch(query, sess)
		case "up", "k":
			if m.idx > 0 {
				m.idx--
			}
			return m, nil
		case "down", "j":
			if m.idx < len(m.results)-1 {
				m.idx++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m searchModel) cmdSearch(query string, sess *service.Session) tea.Cmd {
	ctx, records := m.ctx, m.records
	return func() tea.Msg {
		found, err := records.Search(ctx, sess, query)
		return searchDoneMsg{records: found, err: err}
	}
}

func (m searchModel) selected() (models.Record, bool) {
	if len(m.results) == 0 {
		return models.Record{}, false
	}
	return m.results[m.idx], true
}

func (m searchModel) view() string {
	var b strings.Builder
	b.WriteString("Query │ [" + m.input.View() + "]\n\n")

	switch {
	case m.searching:
		b.WriteString("Searching...\n")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: "+m.errMsg) + "\n")
	case m.searched && len(m.results) == 0:
		b.WriteString("No matches.\n")
	default:
		for i, record := range m.results {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(cursor + categoryTitles[record.Category] + " │ " + fitText(recordTitle(record), 36) + "\n")
		}
	}

	return renderPage("SEARCH", strings.TrimRight(b.String(), "\n"),
		"enter: search │ ↑/↓: move │ ctrl+o: open │ esc: back")
}
