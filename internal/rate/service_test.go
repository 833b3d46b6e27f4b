package rate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"bonusrates/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateStore struct{ mock.Mock }

func (m *MockRateStore) ReadAll(ctx context.Context) (domain.RateSheet, error) {
	args := m.Called(ctx)
	sheet, _ := args.Get(0).(domain.RateSheet)
	return sheet, args.Error(1)
}

func (m *MockRateStore) BulkUpdate(ctx context.Context, updates map[string]float64) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

// --- GetRates ---

func TestService_GetRates_Success(t *testing.T) {
	mockStore := new(MockRateStore)
	svc := NewService(mockStore)

	mockStore.On("ReadAll", mock.Anything).Return(domain.DefaultTiers, nil).Once()

	sheet, err := svc.GetRates(context.Background())

	require.NoError(t, err)
	require.Equal(t, domain.DefaultTiers, sheet)
	mockStore.AssertExpectations(t)
}

func TestService_GetRates_StoreUnavailable(t *testing.T) {
	mockStore := new(MockRateStore)
	svc := NewService(mockStore)

	mockStore.On("ReadAll", mock.Anything).Return(nil, domain.ErrStoreUnavailable).Once()

	_, err := svc.GetRates(context.Background())

	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	mockStore.AssertExpectations(t)
}

// --- UpdateRates ---

func TestService_UpdateRates_Success(t *testing.T) {
	mockStore := new(MockRateStore)
	svc := NewService(mockStore)

	mockStore.On("BulkUpdate", mock.Anything, map[string]float64{"Level I": 0.0001, "Level II": 0}).Return(nil).Once()

	msg, err := svc.UpdateRates(context.Background(), json.RawMessage(`{"Level I": 0.0001, "Level II": 0}`))

	require.NoError(t, err)
	require.Equal(t, UpdatedMessage, msg)
	mockStore.AssertExpectations(t)
}

func TestService_UpdateRates_EmptyObjectDelegates(t *testing.T) {
	mockStore := new(MockRateStore)
	svc := NewService(mockStore)

	mockStore.On("BulkUpdate", mock.Anything, map[string]float64{}).Return(nil).Once()

	msg, err := svc.UpdateRates(context.Background(), json.RawMessage(`{}`))

	require.NoError(t, err)
	require.Equal(t, UpdatedMessage, msg)
	mockStore.AssertExpectations(t)
}

func TestService_UpdateRates_InvalidPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{name: "absent", payload: ``},
		{name: "null", payload: `null`},
		{name: "string", payload: `"not-an-object"`},
		{name: "array", payload: `[1, 2]`},
		{name: "number", payload: `0.5`},
		{name: "string value", payload: `{"Level I": "0.1"}`},
		{name: "null value", payload: `{"Level I": null}`},
		{name: "nested value", payload: `{"Level I": {"rate": 0.1}}`},
		{name: "broken json", payload: `{"Level I": `},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockStore := new(MockRateStore)
			svc := NewService(mockStore)

			msg, err := svc.UpdateRates(context.Background(), json.RawMessage(tc.payload))

			require.ErrorIs(t, err, domain.ErrInvalidInput)
			require.Empty(t, msg)
			mockStore.AssertNotCalled(t, "BulkUpdate", mock.Anything, mock.Anything)
		})
	}
}

func TestService_UpdateRates_PartialFailure(t *testing.T) {
	mockStore := new(MockRateStore)
	svc := NewService(mockStore)

	partial := &domain.PartialUpdateError{Applied: []string{"Level I"}, Failed: []string{"Level II"}}
	mockStore.On("BulkUpdate", mock.Anything, mock.Anything).Return(partial).Once()

	_, err := svc.UpdateRates(context.Background(), json.RawMessage(`{"Level I": 1, "Level II": 2}`))

	require.ErrorIs(t, err, domain.ErrPartialUpdate)
	mockStore.AssertExpectations(t)
}

func TestService_UpdateRates_StoreError(t *testing.T) {
	mockStore := new(MockRateStore)
	svc := NewService(mockStore)

	wantErr := errors.New("unexpected")
	mockStore.On("BulkUpdate", mock.Anything, mock.Anything).Return(wantErr).Once()

	_, err := svc.UpdateRates(context.Background(), json.RawMessage(`{"Level I": 1}`))

	require.Equal(t, wantErr, err)
}

// --- Service over Store ---

func TestService_UpdateRates_InvalidPayloadLeavesRatesUnchanged(t *testing.T) {
	store := NewStore(newMemTierRepository(), nil)
	svc := NewService(store)
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	_, err := svc.UpdateRates(ctx, json.RawMessage(`null`))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.UpdateRates(ctx, json.RawMessage(`"not-an-object"`))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	sheet, err := svc.GetRates(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultTiers, sheet)
}
