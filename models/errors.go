package models

import "errors"

// Error kinds surfaced by board mutations. Handlers map these to HTTP status
// codes; wrap them with fmt.Errorf("...: %w", Err...) to add context.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrRemoteFailure    = errors.New("remote request failed")
)
