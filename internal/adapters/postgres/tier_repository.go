package postgres

import (
	"context"
	"fmt"

	"bonusrates/internal/domain"
	"bonusrates/internal/platform/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TierRepository struct {
	pool *pgxpool.Pool
}

func (r *TierRepository) EnsureSchema(ctx context.Context) error {
	return db.Migrate(ctx, r.pool)
}

func (r *TierRepository) SeedDefaults(ctx context.Context, tiers domain.RateSheet) (int64, error) {
	if len(tiers) == 0 {
		return 0, nil
	}

	const q = `
		insert into bonus_rates(name, rate, updated_at) values ($1, $2, now())
		on conflict (name) do nothing;
	`

	batch := &pgx.Batch{}
	for _, t := range tiers {
		batch.Queue(q, t.Name, t.Rate)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	var inserted int64
	for _, t := range tiers {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to seed tier %q: %w", t.Name, err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

func (r *TierRepository) ReadTiers(ctx context.Context) ([]domain.Tier, error) {
	const q = `
		select name, rate, updated_at
		from bonus_rates
		order by name collate "C";
	`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query bonus rates: %w", err)
	}
	defer rows.Close()

	tiers := make([]domain.Tier, 0, 8)
	for rows.Next() {
		var t domain.Tier
		if err = rows.Scan(&t.Name, &t.Rate, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bonus rate: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bonus rates: %w", err)
	}
	return tiers, nil
}

func (r *TierRepository) UpdateRate(ctx context.Context, name string, rate float64) (bool, error) {
	const q = `update bonus_rates set rate = $2, updated_at = now() where name = $1;`

	tag, err := r.pool.Exec(ctx, q, name, rate)
	if err != nil {
		return false, fmt.Errorf("failed to update rate for %q: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}

func NewTierRepository(pool *pgxpool.Pool) *TierRepository {
	return &TierRepository{pool: pool}
}
