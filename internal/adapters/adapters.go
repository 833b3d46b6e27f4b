package adapters

import (
	"context"

	"bonusrates/internal/domain"
)

type TierRepository interface {
	// EnsureSchema creates the backing table if absent.
	EnsureSchema(ctx context.Context) error
	// SeedDefaults inserts every tier whose name is not present yet and returns how many were inserted.
	SeedDefaults(ctx context.Context, tiers domain.RateSheet) (int64, error)
	ReadTiers(ctx context.Context) ([]domain.Tier, error)
	// UpdateRate sets rate and refreshes updated_at for one tier. Reports false when no tier matched.
	UpdateRate(ctx context.Context, name string, rate float64) (bool, error)
}

type RateSheetCache interface {
	Get(generation uint64) (domain.RateSheet, bool)
	Set(generation uint64, sheet domain.RateSheet)
	Del(generation uint64)
}
