package services

import "errors"

// Service errors
var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSensitivityInputs is returned when no premium or forward rate is
	// given and none can be taken from the curve
	ErrNoSensitivityInputs = errors.New("no sensitivity inputs")

	// ErrPremiumsUnavailable wraps premium source failures, which abort a run
	ErrPremiumsUnavailable = errors.New("premium tables unavailable")

	ErrUnknownProvider = errors.New("unknown provider")
)
