package errors

import "errors"

var (
	ErrTranscriptNotFound = errors.New("transcript was not found")
	ErrEmptyTranscript    = errors.New("transcript text is empty")
	ErrStateOutOfRange    = errors.New("state index is out of range")
	ErrCacheMiss          = errors.New("replay is not cached")
	ErrInternal           = errors.New("internal error")
)
