package repository

import (
	"context"
	"database/sql"
	"fmt"

	"battle-analyzer/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerDamageRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerDamageRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerDamageRepository {
	return &PlayerDamageRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Record inserts one player damage line, deduplicated on
// (battle_id, damage). A repeat sighting of the same damage value in
// the same battle is treated as a re-upload of the same player's
// screenshot: only the diagnostic OCR dump is refreshed, never the
// damage or role. Two distinct players reporting identical damage fold
// into one row; that loss is the documented trade-off of the key.
func (r *PlayerDamageRepository) Record(ctx context.Context, battleID int64, role domain.Role, damage int64, ocrResults string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO player_damage (battle_id, role, damage, ocr_results)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (battle_id, damage)
		DO UPDATE SET ocr_results = excluded.ocr_results`,
		battleID, string(role), damage, ocrResults)
	if err != nil {
		r.logger.Error().Err(err).Int64("battle_id", battleID).Int64("damage", damage).Msg("failed to record player damage")
		return fmt.Errorf("failed to record player damage for battle %d: %w", battleID, err)
	}
	return nil
}

// GetByBattle returns the battle's damage lines, highest damage first.
func (r *PlayerDamageRepository) GetByBattle(ctx context.Context, battleID int64) ([]domain.PlayerDamage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, battle_id, role, damage, ocr_results
		FROM player_damage
		WHERE battle_id = ?
		ORDER BY damage DESC`, battleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player damage for battle %d: %w", battleID, err)
	}
	defer rows.Close()

	var result []domain.PlayerDamage
	for rows.Next() {
		var p domain.PlayerDamage
		var role, ocr sql.NullString
		if err := rows.Scan(&p.ID, &p.BattleID, &role, &p.Damage, &ocr); err != nil {
			return nil, fmt.Errorf("failed to scan player damage row: %w", err)
		}
		p.Role = domain.Role(role.String)
		p.OCRResults = ocr.String
		result = append(result, p)
	}
	return result, rows.Err()
}
