package emc

import "errors"

// Errors that end the bring-up. None of them can be retried; the caller is
// expected to halt.
var (
	ErrPLLLockTimeout     = errors.New("PLLM did not lock")
	ErrCalibrationTimeout = errors.New("calibration did not converge")
	ErrTrainingFailed     = errors.New("training reported an error")
	ErrMRRTimeout         = errors.New("mode register read timed out")
	ErrAlreadyInitialized = errors.New("controller already initialized")
	ErrControllerFailed   = errors.New("controller failed earlier")
	ErrNotInitialized     = errors.New("controller not initialized")
)
