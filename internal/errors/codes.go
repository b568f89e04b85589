package errors

// Code represents an error code
type Code string

// Infrastructure codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// Game rule codes. Every rejected engine operation carries one of these.
const (
	// CodeInvalidIndex: a shop or inventory slot is out of bounds or already sold
	CodeInvalidIndex Code = "INVALID_INDEX"
	// CodeInsufficientResources: not enough money, or no free slot
	CodeInsufficientResources Code = "INSUFFICIENT_RESOURCES"
	// CodeInvalidTarget: a die/face selection is missing or illegal
	CodeInvalidTarget Code = "INVALID_TARGET"
	// CodeNoEligibleCandidates: an item-granting effect has nothing left to grant
	CodeNoEligibleCandidates Code = "NO_ELIGIBLE_CANDIDATES"
	// CodeAlreadyOwned: duplicate purchase or selection of an owned item
	CodeAlreadyOwned Code = "ALREADY_OWNED"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// IsRuleViolation reports whether the code describes a rejected game action
// rather than an infrastructure failure.
func (c Code) IsRuleViolation() bool {
	switch c {
	case CodeInvalidIndex, CodeInsufficientResources, CodeInvalidTarget,
		CodeNoEligibleCandidates, CodeAlreadyOwned, CodeFailedPrecondition:
		return true
	default:
		return false
	}
}
