package execctx

import "errors"

// Errors returned when a handler needs a collaborator that is not wired.
var (
	ErrMissingDocuments = errors.New("execctx: no document set")
	ErrMissingStore     = errors.New("execctx: no file store")
	ErrMissingClipboard = errors.New("execctx: no clipboard")
	ErrMissingRunner    = errors.New("execctx: no runner")
	ErrMissingView      = errors.New("execctx: no view")
)
