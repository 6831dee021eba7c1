package tokenledger

import (
	"errors"
	"fmt"

	"github.com/xraph/tokenledger/reflection"
)

// Sentinel errors for common failure scenarios. Every failure is detected
// before any state mutation for that call, so a returned error always
// means the ledger is exactly as it was.
var (
	// Access errors
	ErrUnauthorized = errors.New("tokenledger: unauthorized")
	ErrPaused       = errors.New("tokenledger: paused")

	// Balance errors
	ErrInsufficientBalance = reflection.ErrInsufficientBalance
	ErrAllowanceExceeded   = errors.New("tokenledger: allowance exceeded")

	// Batch errors
	ErrTooManyRecipients = errors.New("tokenledger: too many recipients")

	// Parameter errors
	ErrInvalidParameter = errors.New("tokenledger: invalid parameter")
)

// ValidationError reports an invalid configuration or argument with the
// field that caused it. It matches ErrInvalidParameter under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("tokenledger: validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap makes ValidationError match ErrInvalidParameter.
func (e ValidationError) Unwrap() error { return ErrInvalidParameter }
