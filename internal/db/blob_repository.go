package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JorgeBC420/caminosdelafe/internal/game/economy"
)

// Fixed blob keys. Loaders treat a missing key as "use defaults".
const (
	BlobDailyLimits    = "DailyLimits"
	BlobEventCurrency  = "EventCurrency"
	BlobFaithPass      = "FaithPassData"
	BlobRevenueToday   = "TotalRevenueToday"
	BlobRevenueAllTime = "TotalRevenueAllTime"
	BlobGoldSold       = "TotalGoldSold"
	BlobGoldBurned     = "TotalGoldBurned"
)

// BlobRepository stores per-character JSONB state under fixed keys.
type BlobRepository struct {
	db *pgxpool.Pool
}

// NewBlobRepository creates a BlobRepository.
func NewBlobRepository(db *pgxpool.Pool) *BlobRepository {
	return &BlobRepository{db: db}
}

// Load unmarshals the blob under key into dest.
// Returns false and leaves dest untouched when the key does not exist.
func (r *BlobRepository) Load(ctx context.Context, characterID int64, key string, dest any) (bool, error) {
	var data []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM character_blobs WHERE character_id = $1 AND key = $2`,
		characterID, key,
	).Scan(&data)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying blob %s/%d: %w", key, characterID, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decoding blob %s/%d: %w", key, characterID, err)
	}
	return true, nil
}

// Save upserts the blob under key.
func (r *BlobRepository) Save(ctx context.Context, characterID int64, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding blob %s/%d: %w", key, characterID, err)
	}
	if _, err := r.db.Exec(ctx, `
		INSERT INTO character_blobs (character_id, key, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (character_id, key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		characterID, key, data,
	); err != nil {
		return fmt.Errorf("saving blob %s/%d: %w", key, characterID, err)
	}
	return nil
}

// LoadLimits restores the daily limits and event currency from their
// blobs. Missing keys leave the fresh defaults in place.
func (r *BlobRepository) LoadLimits(ctx context.Context, characterID int64, limits *economy.DailyLimits, events *economy.EventCurrency) error {
	var limitsSnap economy.DailyLimitsSnapshot
	found, err := r.Load(ctx, characterID, BlobDailyLimits, &limitsSnap)
	if err != nil {
		return err
	}
	if found {
		limits.Restore(limitsSnap)
	}

	var eventsSnap economy.EventCurrencySnapshot
	found, err = r.Load(ctx, characterID, BlobEventCurrency, &eventsSnap)
	if err != nil {
		return err
	}
	if found {
		events.Restore(eventsSnap)
	}
	return nil
}

// SaveLimits persists the daily limits and event currency blobs.
func (r *BlobRepository) SaveLimits(ctx context.Context, characterID int64, limits *economy.DailyLimits, events *economy.EventCurrency) error {
	if err := r.Save(ctx, characterID, BlobDailyLimits, limits.Snapshot()); err != nil {
		return err
	}
	return r.Save(ctx, characterID, BlobEventCurrency, events.Snapshot())
}

// LoadPass restores the faith pass from its blob, leaving defaults when
// the key is missing.
func (r *BlobRepository) LoadPass(ctx context.Context, characterID int64, pass *economy.FaithPass) error {
	var snap economy.FaithPassSnapshot
	found, err := r.Load(ctx, characterID, BlobFaithPass, &snap)
	if err != nil {
		return err
	}
	if found {
		pass.Restore(snap)
	}
	return nil
}

// SavePass persists the faith pass blob.
func (r *BlobRepository) SavePass(ctx context.Context, characterID int64, pass *economy.FaithPass) error {
	return r.Save(ctx, characterID, BlobFaithPass, pass.Snapshot())
}

// LoadLedger restores the economy ledger totals from their individual
// key blobs. Missing keys restore as zero.
func (r *BlobRepository) LoadLedger(ctx context.Context, characterID int64, ledger *economy.Ledger) error {
	snap := ledger.Snapshot()
	if _, err := r.Load(ctx, characterID, BlobRevenueToday, &snap.RevenueToday); err != nil {
		return err
	}
	if _, err := r.Load(ctx, characterID, BlobRevenueAllTime, &snap.RevenueAllTime); err != nil {
		return err
	}
	if _, err := r.Load(ctx, characterID, BlobGoldSold, &snap.GoldSold); err != nil {
		return err
	}
	if _, err := r.Load(ctx, characterID, BlobGoldBurned, &snap.GoldBurned); err != nil {
		return err
	}
	ledger.Restore(snap)
	return nil
}

// SaveLedger persists the ledger totals under their individual keys.
func (r *BlobRepository) SaveLedger(ctx context.Context, characterID int64, ledger *economy.Ledger) error {
	snap := ledger.Snapshot()
	if err := r.Save(ctx, characterID, BlobRevenueToday, snap.RevenueToday); err != nil {
		return err
	}
	if err := r.Save(ctx, characterID, BlobRevenueAllTime, snap.RevenueAllTime); err != nil {
		return err
	}
	if err := r.Save(ctx, characterID, BlobGoldSold, snap.GoldSold); err != nil {
		return err
	}
	return r.Save(ctx, characterID, BlobGoldBurned, snap.GoldBurned)
}
