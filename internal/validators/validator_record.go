package validators

import (
	"context"
	"strings"

	"github.com/abbasl7/e-vault/models"
)

const (
	FieldID       = "id"
	FieldCategory = "category"
	FieldFields   = "fields"
	FieldName     = "name"
	FieldSize     = "size"
)

type RecordValidator struct {
}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.Attachment:
		return v.validateAttachment(ctx, value, fields...)
	case *models.Attachment:
		return v.validateAttachment(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(_ context.Context, record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldCategory, FieldFields}
	}

	for _, field := range fields {
		switch field {
		case FieldID:
			if strings.TrimSpace(record.ID) == "" {
				return ErrMissingID
			}
		case FieldCategory:
			if !record.Category.Valid() {
				return ErrInvalidCategory
			}
		case FieldFields:
			for name := range record.Fields {
				if strings.TrimSpace(name) == "" {
					return ErrEmptyFieldName
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateAttachment(_ context.Context, attachment models.Attachment, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldSize}
	}

	for _, field := range fields {
		switch field {
		case FieldName:
			if strings.TrimSpace(attachment.Name) == "" {
				return ErrEmptyAttachmentName
			}
		case FieldSize:
			if attachment.Size < 0 {
				return ErrInvalidAttachmentSize
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
