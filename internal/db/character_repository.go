package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JorgeBC420/caminosdelafe/internal/model"
)

// CharacterRepository manages character rows.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create inserts a new character from its snapshot and returns the new
// character ID.
func (r *CharacterRepository) Create(ctx context.Context, snap model.PlayerSnapshot) (int64, error) {
	stats, err := json.Marshal(snap.Stats)
	if err != nil {
		return 0, fmt.Errorf("encoding stats for %q: %w", snap.Name, err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO characters
			(name, faction, gold, experience, current_health, current_mana,
			 war_contribution, last_contribution, stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING character_id`,
		snap.Name, snap.Faction, snap.Gold, snap.Experience,
		snap.CurrentHealth, snap.CurrentMana,
		snap.WarContribution, nullableTime(snap.LastContribution), stats,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating character %q: %w", snap.Name, err)
	}
	return id, nil
}

// LoadByID loads a character snapshot by ID.
// Returns zero snapshot and false when the character does not exist.
func (r *CharacterRepository) LoadByID(ctx context.Context, characterID int64) (model.PlayerSnapshot, bool, error) {
	return r.load(ctx, `WHERE character_id = $1`, characterID)
}

// LoadByName loads a character snapshot by name.
// Returns zero snapshot and false when the character does not exist.
func (r *CharacterRepository) LoadByName(ctx context.Context, name string) (model.PlayerSnapshot, bool, error) {
	return r.load(ctx, `WHERE name = $1`, name)
}

func (r *CharacterRepository) load(ctx context.Context, where string, arg any) (model.PlayerSnapshot, bool, error) {
	query := `
		SELECT name, faction, gold, experience, current_health, current_mana,
		       war_contribution, last_contribution, stats
		FROM characters ` + where

	var snap model.PlayerSnapshot
	var lastContribution *time.Time
	var stats []byte

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&snap.Name, &snap.Faction, &snap.Gold, &snap.Experience,
		&snap.CurrentHealth, &snap.CurrentMana,
		&snap.WarContribution, &lastContribution, &stats,
	)
	if err == pgx.ErrNoRows {
		return model.PlayerSnapshot{}, false, nil
	}
	if err != nil {
		return model.PlayerSnapshot{}, false, fmt.Errorf("querying character: %w", err)
	}

	if lastContribution != nil {
		snap.LastContribution = *lastContribution
	}
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &snap.Stats); err != nil {
			return model.PlayerSnapshot{}, false, fmt.Errorf("decoding stats for %q: %w", snap.Name, err)
		}
	}
	return snap, true, nil
}

// Save updates an existing character row from its snapshot.
func (r *CharacterRepository) Save(ctx context.Context, characterID int64, snap model.PlayerSnapshot) error {
	stats, err := json.Marshal(snap.Stats)
	if err != nil {
		return fmt.Errorf("encoding stats for %q: %w", snap.Name, err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE characters SET
			faction = $2, gold = $3, experience = $4,
			current_health = $5, current_mana = $6,
			war_contribution = $7, last_contribution = $8,
			stats = $9, updated_at = now()
		WHERE character_id = $1`,
		characterID,
		snap.Faction, snap.Gold, snap.Experience,
		snap.CurrentHealth, snap.CurrentMana,
		snap.WarContribution, nullableTime(snap.LastContribution), stats,
	)
	if err != nil {
		return fmt.Errorf("saving character %d: %w", characterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saving character %d: no such row", characterID)
	}
	return nil
}

// Delete removes a character and its blobs (cascade).
func (r *CharacterRepository) Delete(ctx context.Context, characterID int64) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM characters WHERE character_id = $1`, characterID,
	); err != nil {
		return fmt.Errorf("deleting character %d: %w", characterID, err)
	}
	return nil
}

// nullableTime maps the zero time to SQL NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
