package toast

import "errors"

var (
	// ErrInvalidLevel indicates a level tag outside success|error|info|warning
	ErrInvalidLevel = errors.New("toast.invalid_level")

	// ErrInvalidPosition indicates a position outside the six supported anchors
	ErrInvalidPosition = errors.New("toast.invalid_position")

	// ErrInvalidConfig indicates a configuration that cannot be used
	ErrInvalidConfig = errors.New("toast.invalid_config")

	// ErrInvalidPayload indicates a durable value that cannot be decoded into records
	ErrInvalidPayload = errors.New("toast.invalid_payload")

	// ErrNoSession indicates the delivery middleware could not obtain a session
	ErrNoSession = errors.New("toast.no_session")
)
