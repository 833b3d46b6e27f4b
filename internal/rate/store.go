package rate

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"sync/atomic"

	"bonusrates/internal/adapters"
	"bonusrates/internal/domain"

	"github.com/sirupsen/logrus"
)

// Store is the bonus rate store. Each key of a bulk update is written independently;
// there is no all-or-nothing guarantee across a batch.
type Store struct {
	repo  adapters.TierRepository
	cache adapters.RateSheetCache // optional
	// generation changes after every write so cached sheets of older generations are never served
	generation atomic.Uint64
}

// Initialize creates the backing table if needed and inserts missing default tiers.
// Existing tiers are left untouched, so it is safe to call on every start.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("%w: failed to ensure schema: %w", domain.ErrStoreUnavailable, err)
	}
	inserted, err := s.repo.SeedDefaults(ctx, domain.DefaultTiers)
	if err != nil {
		return fmt.Errorf("%w: failed to seed default tiers: %w", domain.ErrStoreUnavailable, err)
	}
	if inserted > 0 {
		s.invalidate()
	}
	logrus.WithField("inserted", inserted).Info("Bonus rate tiers initialized")
	return nil
}

// ReadTiers returns every tier with its last update time, ordered by name.
func (s *Store) ReadTiers(ctx context.Context) ([]domain.Tier, error) {
	tiers, err := s.repo.ReadTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return tiers, nil
}

// ReadAll returns name -> rate for every tier, ordered by name.
func (s *Store) ReadAll(ctx context.Context) (domain.RateSheet, error) {
	gen := s.generation.Load()
	if s.cache != nil {
		if sheet, ok := s.cache.Get(gen); ok {
			return sheet, nil
		}
	}
	return s.load(ctx, gen)
}

// Refresh reloads the sheet into the cache and returns the number of tiers read.
func (s *Store) Refresh(ctx context.Context) (int, error) {
	sheet, err := s.load(ctx, s.generation.Load())
	if err != nil {
		return 0, err
	}
	return len(sheet), nil
}

func (s *Store) load(ctx context.Context, gen uint64) (domain.RateSheet, error) {
	tiers, err := s.ReadTiers(ctx)
	if err != nil {
		return nil, err
	}
	sheet := make(domain.RateSheet, 0, len(tiers))
	for _, t := range tiers {
		sheet = append(sheet, domain.TierRate{Name: t.Name, Rate: t.Rate})
	}
	if s.cache != nil {
		s.cache.Set(gen, sheet)
	}
	return sheet, nil
}

// BulkUpdate sets the rate of every named tier. Keys are applied one by one in name order
// and a failing key does not stop the others. Names with no matching tier are skipped.
// If any key fails the returned error is a *domain.PartialUpdateError; keys applied before
// or after the failure stay applied.
func (s *Store) BulkUpdate(ctx context.Context, updates map[string]float64) error {
	if updates == nil {
		return fmt.Errorf("%w: rates are required", domain.ErrInvalidInput)
	}
	for name, v := range updates {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: rate for %q is not a finite number", domain.ErrInvalidInput, name)
		}
	}
	if len(updates) == 0 {
		return nil
	}
	defer s.invalidate()

	var (
		applied = make([]string, 0, len(updates))
		failed  []string
		causes  []error
	)
	for _, name := range slices.Sorted(maps.Keys(updates)) {
		matched, err := s.repo.UpdateRate(ctx, name, updates[name])
		if err != nil {
			logrus.WithError(err).WithField("tier", name).Warn("Bonus rate wasn't updated")
			failed = append(failed, name)
			causes = append(causes, err)
			continue
		}
		if !matched {
			logrus.WithField("tier", name).Debug("Unknown tier, update skipped")
		}
		applied = append(applied, name)
	}

	if len(failed) > 0 {
		return &domain.PartialUpdateError{Applied: applied, Failed: failed, Causes: causes}
	}
	return nil
}

func (s *Store) invalidate() {
	old := s.generation.Add(1) - 1
	if s.cache != nil {
		s.cache.Del(old)
	}
}

func NewStore(repo adapters.TierRepository, cache adapters.RateSheetCache) *Store {
	return &Store{repo: repo, cache: cache}
}
