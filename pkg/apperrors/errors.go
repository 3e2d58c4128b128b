package apperrors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("conflict")
	ErrValidation            = errors.New("validation failed")
	ErrTranscriptionFailed   = errors.New("transcription failed")
	ErrExtractionParseFailed = errors.New("extraction parse failed")
)
