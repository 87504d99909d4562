package domain

import "errors"

// ErrNotFound is returned when the requested resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing author name, message too long).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when an operation requires a signed-in visitor
// and no valid session was presented. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidTransition is returned by Flow when a state change is not allowed
// from the current state.
var ErrInvalidTransition = errors.New("invalid flow transition")

// ErrPersistenceRead marks a stored slot that is absent, corrupt, or could not
// be read. It is logged by the store and never returned past the service layer.
var ErrPersistenceRead = errors.New("persistence read error")

// ErrMalformed marks a stored value that was read but does not decode into
// the expected shape. Unlike a failed read it will not fix itself on retry.
var ErrMalformed = errors.New("malformed stored data")

// ErrPersistenceWrite marks a failed write to the persistence facility.
// Like ErrPersistenceRead it is logged, not propagated.
var ErrPersistenceWrite = errors.New("persistence write error")

// ErrQuotaExceeded is returned by a facility that refuses a value larger than
// its configured per-entry quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")
