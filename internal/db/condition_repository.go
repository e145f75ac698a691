package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConditionRepository stores the serialized condition list of each character.
type ConditionRepository struct {
	pool *pgxpool.Pool
}

// NewConditionRepository creates a new condition repository
func NewConditionRepository(pool *pgxpool.Pool) *ConditionRepository {
	return &ConditionRepository{pool: pool}
}

// Load returns the saved conditions of a character.
// Returns nil, nil if nothing is stored.
func (r *ConditionRepository) Load(ctx context.Context, characterID uint32) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data FROM character_conditions WHERE character_id = $1`,
		int64(characterID),
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading conditions of character %d: %w", characterID, err)
	}
	return data, nil
}

// Save replaces the saved conditions of a character. Empty data deletes
// the row.
func (r *ConditionRepository) Save(ctx context.Context, characterID uint32, data []byte) error {
	if len(data) == 0 {
		return r.Delete(ctx, characterID)
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO character_conditions (character_id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (character_id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, int64(characterID), data)
	if err != nil {
		return fmt.Errorf("saving conditions of character %d: %w", characterID, err)
	}
	return nil
}

// SaveAll stores every snapshot entry in one transaction.
func (r *ConditionRepository) SaveAll(ctx context.Context, snapshot map[uint32][]byte) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for id, data := range snapshot {
		if len(data) == 0 {
			batch.Queue(`DELETE FROM character_conditions WHERE character_id = $1`, int64(id))
			continue
		}
		batch.Queue(`
			INSERT INTO character_conditions (character_id, data, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (character_id) DO UPDATE
			SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
		`, int64(id), data)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving condition snapshot: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing condition snapshot: %w", err)
	}
	return nil
}

// Delete removes the saved conditions of a character.
func (r *ConditionRepository) Delete(ctx context.Context, characterID uint32) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM character_conditions WHERE character_id = $1`,
		int64(characterID))
	if err != nil {
		return fmt.Errorf("deleting conditions of character %d: %w", characterID, err)
	}
	return nil
}
