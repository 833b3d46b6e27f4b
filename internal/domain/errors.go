package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("rate store unavailable")
	ErrPartialUpdate    = errors.New("not all rates were updated")
)

const (
	KindInvalidInput     = "invalid_input"
	KindStoreUnavailable = "store_unavailable"
	KindPartialUpdate    = "partial_update_failure"
	KindInternal         = "internal"
)

// ErrorKind maps an error to its stable machine-readable kind.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrPartialUpdate):
		return KindPartialUpdate
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}

// PartialUpdateError reports a bulk update where at least one key failed.
// Applied keys stay applied.
type PartialUpdateError struct {
	Applied []string
	Failed  []string
	Causes  []error
}

func (e *PartialUpdateError) Error() string {
	return fmt.Sprintf("%s: failed %d of %d (%s)",
		ErrPartialUpdate, len(e.Failed), len(e.Failed)+len(e.Applied), strings.Join(e.Failed, ", "))
}

func (e *PartialUpdateError) Unwrap() []error {
	return append([]error{ErrPartialUpdate}, e.Causes...)
}
