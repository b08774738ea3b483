package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database. It is also the uniform answer
// when a caller touches a check-in they do not own: the existence of another
// user's record is never revealed.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. hours exceeding the storage width).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrEmptyInput is returned by the check-in parser when the raw input is
// blank after trimming. User-visible; corrected by re-entry.
var ErrEmptyInput = errors.New("check-in input is empty")

// ErrInvalidFormat is returned by the check-in parser when the input does
// not match the check-in grammar. User-visible; corrected by re-entry.
var ErrInvalidFormat = errors.New("invalid check-in input string")

// ErrDuplicateTag is returned by the tag repo when an insert loses the
// get-or-create race on the tags.name unique constraint. The tag service
// retries the lookup; this error only reaches a handler when the retry
// budget is exhausted.
var ErrDuplicateTag = errors.New("duplicate tag")

// ErrForbidden is returned when a caller lacks the privilege an operation
// requires (admin-only listings). Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")
