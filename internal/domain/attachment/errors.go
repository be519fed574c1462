package attachment

import "errors"

var (
	ErrAttachmentNotFound  = errors.New("attachment not found")
	ErrFileTooLarge        = errors.New("file size must be less than the configured limit")
	ErrUnsupportedFileType = errors.New("file type not supported")
	ErrUnknownEntity       = errors.New("unknown attachment entity type")
	ErrInvalidInput        = errors.New("invalid attachment input")
)
