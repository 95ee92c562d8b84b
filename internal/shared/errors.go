package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Remote API errors
	ErrTransport        = fmt.Errorf("remote call failed")
	ErrQuotaExceeded    = fmt.Errorf("quota exceeded")
	ErrItemAdd          = fmt.Errorf("failed to add item")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")

	// Record and queue errors
	ErrDecode                = fmt.Errorf("unsupported record")
	ErrCapabilityUnavailable = fmt.Errorf("capability unavailable")
	ErrQueueBusy             = fmt.Errorf("restore queue already running")
	ErrJobNotFound           = fmt.Errorf("job not found")
	ErrCancelled             = fmt.Errorf("operation cancelled")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
