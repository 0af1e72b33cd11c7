package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"battle-analyzer/internal/domain"

	"github.com/rs/zerolog"
)

type BossRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewBossRepository(sqlDB *sql.DB, logger zerolog.Logger) *BossRepository {
	return &BossRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Upsert creates or updates the catalog entry for (name, difficulty,
// gate). Concurrent upserts for the same key serialize on the unique
// constraint; only the HP and timestamp change on conflict.
func (r *BossRepository) Upsert(ctx context.Context, name, difficulty string, gate int, hp int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO boss_info (boss_name, difficulty, gate_number, boss_hp, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (boss_name, difficulty, gate_number)
		DO UPDATE SET boss_hp = excluded.boss_hp, updated_at = excluded.updated_at`,
		name, difficulty, gate, hp, time.Now().UTC())
	if err != nil {
		r.logger.Error().Err(err).Str("boss_name", name).Str("difficulty", difficulty).Int("gate", gate).Msg("failed to upsert boss")
		return fmt.Errorf("failed to upsert boss %s (%s, %d관문): %w", name, difficulty, gate, err)
	}

	r.logger.Debug().Str("boss_name", name).Str("difficulty", difficulty).Int("gate", gate).Int64("hp", hp).Msg("boss upserted")
	return nil
}

// Lookup returns the catalog entry for (name, difficulty, gate), or
// (nil, nil) when none is registered.
func (r *BossRepository) Lookup(ctx context.Context, name, difficulty string, gate int) (*domain.Boss, error) {
	var b domain.Boss
	err := r.db.QueryRowContext(ctx, `
		SELECT id, boss_name, difficulty, gate_number, boss_hp, updated_at
		FROM boss_info
		WHERE boss_name = ? AND difficulty = ? AND gate_number = ?`,
		name, difficulty, gate).
		Scan(&b.ID, &b.Name, &b.Difficulty, &b.Gate, &b.HP, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up boss %s (%s, %d관문): %w", name, difficulty, gate, err)
	}
	return &b, nil
}

func (r *BossRepository) GetByID(ctx context.Context, id int64) (*domain.Boss, error) {
	var b domain.Boss
	err := r.db.QueryRowContext(ctx, `
		SELECT id, boss_name, difficulty, gate_number, boss_hp, updated_at
		FROM boss_info WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &b.Difficulty, &b.Gate, &b.HP, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get boss %d: %w", id, err)
	}
	return &b, nil
}
