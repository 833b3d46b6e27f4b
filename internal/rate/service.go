package rate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"bonusrates/internal/domain"
)

const UpdatedMessage = "Bonus rates updated successfully"

type RateStore interface {
	ReadAll(ctx context.Context) (domain.RateSheet, error)
	BulkUpdate(ctx context.Context, updates map[string]float64) error
}

type Service struct {
	store RateStore
}

func (s *Service) GetRates(ctx context.Context) (domain.RateSheet, error) {
	return s.store.ReadAll(ctx)
}

// UpdateRates validates payload is a JSON object of numbers and applies it.
func (s *Service) UpdateRates(ctx context.Context, payload json.RawMessage) (string, error) {
	updates, err := ParseRates(payload)
	if err != nil {
		return "", err
	}
	if err = s.store.BulkUpdate(ctx, updates); err != nil {
		return "", err
	}
	return UpdatedMessage, nil
}

// ParseRates decodes a {"<tier>": <number>} object. Anything else is domain.ErrInvalidInput.
func ParseRates(payload json.RawMessage) (map[string]float64, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: rates are required", domain.ErrInvalidInput)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: rates must be an object", domain.ErrInvalidInput)
	}

	var raw map[string]*float64
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: rates must map tier names to numbers", domain.ErrInvalidInput)
	}

	updates := make(map[string]float64, len(raw))
	for name, v := range raw {
		if v == nil {
			return nil, fmt.Errorf("%w: rate for %q must be a number", domain.ErrInvalidInput, name)
		}
		updates[name] = *v
	}
	return updates, nil
}

func NewService(store RateStore) *Service {
	return &Service{store: store}
}
