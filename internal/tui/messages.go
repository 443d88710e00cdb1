package tui

import (
	"github.com/abbasl7/e-vault/internal/service"
	"github.com/abbasl7/e-vault/models"
)

type accountCheckedMsg struct {
	exists bool
	err    error
}

type authDoneMsg struct {
	sess *service.Session
	err  error
}

type questionsLoadedMsg struct {
	question1 string
	question2 string
	err       error
}

type passwordUpdatedMsg struct {
	err error
}

type listLoadedMsg struct {
	category models.Category
	records  []models.Record
	err      error
}

type searchDoneMsg struct {
	records []models.Record
	err     error
}

type recordSavedMsg struct {
	record models.Record
	err    error
}

type recordDeletedMsg struct {
	err error
}

type backupExportedMsg struct {
	path string
	err  error
}

type backupImportedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
