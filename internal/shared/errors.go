package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrMissingPasscode = fmt.Errorf("missing passcode")
	ErrInvalidPasscode = fmt.Errorf("invalid passcode")
	ErrNoSession       = fmt.Errorf("no session")

	// Upstream and webhook errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrWebhookFailed      = fmt.Errorf("webhook call failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrStreamingDisabled  = fmt.Errorf("streaming is disabled")
	ErrNoStreamURL        = fmt.Errorf("no stream URL in response")
	ErrAllHostsFailed     = fmt.Errorf("all mirror hosts failed")

	// Store errors
	ErrEntryNotFound = fmt.Errorf("entry not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
