package gainers

import (
	"errors"
	"fmt"
)

// Errors of the run. They are wrapped with the ticker or file they apply to
// and tested with errors.Is.
var (
	// ErrDataUnavailable reports a missing or partial snapshot for one ticker.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrDuplicatePosition reports an attempt to reopen an existing position.
	// OpenPosition treats it as a no-op, it is only used to describe it.
	ErrDuplicatePosition = errors.New("duplicate position")
	// ErrInvalidNumeric reports a value that cannot be used, like a zero price.
	ErrInvalidNumeric = errors.New("invalid numeric value")
	// ErrPersistence reports a ledger, scan or summary file that cannot be read or written.
	ErrPersistence = errors.New("persistence failure")
)

// Warnings collects the non fatal errors of a run, in order.
type Warnings []error

// Add appends err if not nil.
func (w *Warnings) Add(err error) {
	if err != nil {
		*w = append(*w, err)
	}
}

// Addf appends a formatted error.
func (w *Warnings) Addf(format string, args ...any) {
	w.Add(fmt.Errorf(format, args...))
}

// Count returns the number of warnings matching target.
func (w Warnings) Count(target error) int {
	n := 0
	for _, err := range w {
		if errors.Is(err, target) {
			n++
		}
	}
	return n
}

// Err joins all warnings into one error, or nil.
func (w Warnings) Err() error { return errors.Join(w...) }
