package models

import "errors"

// Error kinds shared by the service layer. Handlers map these to HTTP
// statuses; the schedule engine aborts a whole tick on ErrNotFound or
// ErrValidation. ErrConflict maps to 409 for duplicate resources such
// as a second budget on the same category.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
