package service

import "errors"

var (
	ErrNoAccount          = errors.New("no account found")
	ErrAlreadyInitialized = errors.New("account already initialized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongAnswer        = errors.New("wrong security answer")
	ErrNotAuthenticated   = errors.New("not authenticated")

	ErrUnknownCategory    = errors.New("unknown record category")
	ErrAttachmentTooLarge = errors.New("attachment exceeds size limit")
	ErrAttachmentNotFound = errors.New("attachment not found")

	ErrInvalidBackupPassword = errors.New("invalid backup password")
	ErrMalformedBackup       = errors.New("malformed backup file")
)
