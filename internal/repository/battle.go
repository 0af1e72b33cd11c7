package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"battle-analyzer/internal/domain"

	"github.com/rs/zerolog"
)

type BattleRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewBattleRepository(sqlDB *sql.DB, logger zerolog.Logger) *BattleRepository {
	return &BattleRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// GetOrCreate returns the battle with the given key, creating it on
// first sighting. The insert-then-select order makes concurrent
// submissions of the same key converge on one row: the losing insert
// no-ops on the unique constraint and the select picks up the winner.
func (r *BattleRepository) GetOrCreate(ctx context.Context, bossID int64, recordInfo, battleTime, battleKey string) (*domain.Battle, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO battle (boss_id, record_info, battle_time, battle_key, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (battle_key) DO NOTHING`,
		bossID, recordInfo, battleTime, battleKey, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert battle %s: %w", battleKey, err)
	}

	var b domain.Battle
	err = r.db.QueryRowContext(ctx, `
		SELECT id, boss_id, record_info, battle_time, battle_key, created_at
		FROM battle WHERE battle_key = ?`, battleKey).
		Scan(&b.ID, &b.BossID, &b.RecordInfo, &b.BattleTime, &b.BattleKey, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load battle %s: %w", battleKey, err)
	}

	r.logger.Debug().Str("battle_key", battleKey).Int64("battle_id", b.ID).Msg("battle resolved")
	return &b, nil
}

func (r *BattleRepository) GetByID(ctx context.Context, id int64) (*domain.Battle, error) {
	var b domain.Battle
	err := r.db.QueryRowContext(ctx, `
		SELECT id, boss_id, record_info, battle_time, battle_key, created_at
		FROM battle WHERE id = ?`, id).
		Scan(&b.ID, &b.BossID, &b.RecordInfo, &b.BattleTime, &b.BattleKey, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get battle %d: %w", id, err)
	}
	return &b, nil
}

// List returns battles joined with their boss, newest record first.
func (r *BattleRepository) List(ctx context.Context) ([]domain.BattleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, bi.boss_name, bi.difficulty, bi.gate_number, b.record_info, b.battle_time, b.created_at
		FROM battle b
		JOIN boss_info bi ON bi.id = b.boss_id
		ORDER BY b.record_info DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list battles: %w", err)
	}
	defer rows.Close()

	var result []domain.BattleSummary
	for rows.Next() {
		var s domain.BattleSummary
		if err := rows.Scan(&s.ID, &s.BossName, &s.Difficulty, &s.Gate, &s.RecordInfo, &s.BattleTime, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan battle row: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
