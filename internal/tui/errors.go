package tui

import (
	"errors"

	"github.com/abbasl7/e-vault/internal/service"
)

func humanizeAuthError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrNoAccount):
		return "No vault found. Create one first."
	case errors.Is(err, service.ErrAlreadyInitialized):
		return "A vault already exists on this device."
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Wrong password."
	case errors.Is(err, service.ErrWrongAnswer):
		return "One or both security answers are wrong."
	}
	return err.Error()
}

func humanizeRecordError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return "Session expired. Unlock the vault again."
	case errors.Is(err, service.ErrAttachmentTooLarge):
		return "Attachment is larger than the configured limit."
	case errors.Is(err, service.ErrAttachmentNotFound):
		return "Attachment not found."
	case errors.Is(err, service.ErrInvalidBackupPassword):
		return "Wrong backup password or corrupted backup file."
	case errors.Is(err, service.ErrMalformedBackup):
		return "This file is not a valid vault backup."
	}
	return err.Error()
}
