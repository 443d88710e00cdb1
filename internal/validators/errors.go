package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingID             = errors.New("record ID is required")
	ErrInvalidCategory       = errors.New("invalid record category")
	ErrEmptyFieldName        = errors.New("record field names cannot be empty")
	ErrEmptyAttachmentName   = errors.New("attachment name is required")
	ErrInvalidAttachmentSize = errors.New("attachment size cannot be negative")
)
