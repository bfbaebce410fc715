package dtype

import (
	"errors"
	"fmt"
)

// CastError represents a type error detected during promotion, casting or
// validation.
//
// Cast errors include:
//   - Configuration: bad call-site arguments (empty type list, non-scalar
//     fill against a non-object type)
//   - Incompatible cast: unsupported kind crossing
//   - Overflow: narrower integer target cannot hold the magnitude, or
//     negative values into an unsigned target
//   - Precision loss: float/object values cannot become integers losslessly
//   - Missing unit: temporal family named without a resolution
//   - Non-finite: NaN or Infinity into an integer target
//
// All cast errors are synchronous and caller-visible; the engine never
// swallows one. Falling back to the object type is policy, not failure.
type CastError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// From is the source descriptor spelling, when known.
	From string

	// To is the target descriptor spelling, when known.
	To string
}

// ErrorCode categorizes cast errors.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates bad call-site arguments.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"

	// ErrCodeIncompatibleCast indicates an unsupported kind crossing.
	ErrCodeIncompatibleCast ErrorCode = "INCOMPATIBLE_CAST"

	// ErrCodeOverflow indicates an integer target too narrow for the data.
	ErrCodeOverflow ErrorCode = "OVERFLOW"

	// ErrCodePrecisionLoss indicates a lossy float/object to integer cast.
	ErrCodePrecisionLoss ErrorCode = "PRECISION_LOSS"

	// ErrCodeMissingUnit indicates a temporal family without a resolution.
	ErrCodeMissingUnit ErrorCode = "MISSING_UNIT"

	// ErrCodeNonFinite indicates NaN or Infinity into an integer target.
	ErrCodeNonFinite ErrorCode = "NON_FINITE"
)

// Error implements the error interface.
func (e *CastError) Error() string {
	if e.From != "" && e.To != "" {
		return fmt.Sprintf("%s: %s (from=%s, to=%s)", e.Code, e.Message, e.From, e.To)
	}
	if e.To != "" {
		return fmt.Sprintf("%s: %s (to=%s)", e.Code, e.Message, e.To)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConfigurationError creates a CastError for bad call-site arguments.
func NewConfigurationError(msg string) *CastError {
	return &CastError{Code: ErrCodeConfiguration, Message: msg}
}

// NewIncompatibleCast creates a CastError for an unsupported kind crossing.
func NewIncompatibleCast(from, to Descriptor) *CastError {
	return &CastError{
		Code:    ErrCodeIncompatibleCast,
		Message: "cannot cast between these kinds",
		From:    from.String(),
		To:      to.String(),
	}
}

// NewOverflowError creates a CastError naming the target type that could
// not hold the data.
func NewOverflowError(msg string, to Descriptor) *CastError {
	return &CastError{Code: ErrCodeOverflow, Message: msg, To: to.String()}
}

// NewPrecisionLossError creates a CastError for a lossy integer cast.
func NewPrecisionLossError(msg string, to Descriptor) *CastError {
	return &CastError{Code: ErrCodePrecisionLoss, Message: msg, To: to.String()}
}

// NewMissingUnitError creates a CastError for a unitless temporal family.
func NewMissingUnitError(family Kind) *CastError {
	return &CastError{
		Code:    ErrCodeMissingUnit,
		Message: fmt.Sprintf("the %q family has no unit; pass %s[ns] instead", family, family),
	}
}

// NewNonFiniteError creates a CastError for non-finite values entering an
// integer target.
func NewNonFiniteError(msg string, to Descriptor) *CastError {
	return &CastError{Code: ErrCodeNonFinite, Message: msg, To: to.String()}
}

// codeIs reports whether err is a CastError with the given code,
// unwrapping as needed.
func codeIs(err error, code ErrorCode) bool {
	var ce *CastError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return codeIs(err, ErrCodeConfiguration) }

// IsIncompatibleCast reports whether err is an incompatible-cast error.
func IsIncompatibleCast(err error) bool { return codeIs(err, ErrCodeIncompatibleCast) }

// IsOverflow reports whether err is an overflow error.
func IsOverflow(err error) bool { return codeIs(err, ErrCodeOverflow) }

// IsPrecisionLoss reports whether err is a precision-loss error.
func IsPrecisionLoss(err error) bool { return codeIs(err, ErrCodePrecisionLoss) }

// IsMissingUnit reports whether err is a missing-unit error.
func IsMissingUnit(err error) bool { return codeIs(err, ErrCodeMissingUnit) }

// IsNonFinite reports whether err is a non-finite error.
func IsNonFinite(err error) bool { return codeIs(err, ErrCodeNonFinite) }
