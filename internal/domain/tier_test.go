package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateSheet_MarshalJSON_KeepsOrder(t *testing.T) {
	sheet := RateSheet{{Name: "b", Rate: 2}, {Name: "a", Rate: 1.5}}

	raw, err := json.Marshal(sheet)
	require.NoError(t, err)
	require.Equal(t, `{"b":2,"a":1.5}`, string(raw))
}

func TestRateSheet_MarshalJSON_Empty(t *testing.T) {
	raw, err := json.Marshal(RateSheet{})
	require.NoError(t, err)
	require.Equal(t, `{}`, string(raw))
}

func TestRateSheet_Map(t *testing.T) {
	require.Equal(t, map[string]float64{
		"Level I":   0.00005,
		"Level II":  0.000055,
		"Level III": 0.00006,
	}, DefaultTiers.Map())
}

func TestErrorKind(t *testing.T) {
	partial := &PartialUpdateError{Applied: []string{"a"}, Failed: []string{"b"}, Causes: []error{errors.New("boom")}}

	require.Equal(t, KindInvalidInput, ErrorKind(fmt.Errorf("%w: rates must be an object", ErrInvalidInput)))
	require.Equal(t, KindStoreUnavailable, ErrorKind(fmt.Errorf("%w: conn refused", ErrStoreUnavailable)))
	require.Equal(t, KindPartialUpdate, ErrorKind(partial))
	require.Equal(t, KindInternal, ErrorKind(errors.New("other")))
}

func TestPartialUpdateError_Message(t *testing.T) {
	cause := errors.New("boom")
	err := &PartialUpdateError{Applied: []string{"Level I"}, Failed: []string{"Level II"}, Causes: []error{cause}}

	require.ErrorIs(t, err, ErrPartialUpdate)
	require.ErrorIs(t, err, cause)
	require.EqualError(t, err, "not all rates were updated: failed 1 of 2 (Level II)")
}
