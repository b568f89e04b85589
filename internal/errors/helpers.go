package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join combines errors, see errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMessage extracts the player-facing message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsInvalidIndex checks if an error is an invalid index error
func IsInvalidIndex(err error) bool {
	return GetCode(err) == CodeInvalidIndex
}

// IsInsufficientResources checks if an error is an insufficient resources error
func IsInsufficientResources(err error) bool {
	return GetCode(err) == CodeInsufficientResources
}

// IsInvalidTarget checks if an error is an invalid target error
func IsInvalidTarget(err error) bool {
	return GetCode(err) == CodeInvalidTarget
}

// IsNoEligibleCandidates checks if an error is a no eligible candidates error
func IsNoEligibleCandidates(err error) bool {
	return GetCode(err) == CodeNoEligibleCandidates
}

// IsAlreadyOwned checks if an error is an already owned error
func IsAlreadyOwned(err error) bool {
	return GetCode(err) == CodeAlreadyOwned
}
