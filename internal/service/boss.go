package service

import (
	"context"
	"fmt"

	"battle-analyzer/internal/catalog"
	"battle-analyzer/internal/constants"
	"battle-analyzer/internal/repository"

	"github.com/rs/zerolog"
)

type BossService struct {
	repo   *repository.BossRepository
	logger zerolog.Logger
}

func NewBossService(repo *repository.BossRepository, logger zerolog.Logger) *BossService {
	return &BossService{repo: repo, logger: logger}
}

func (s *BossService) Upsert(ctx context.Context, name, difficulty string, gate int, hp int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if name == "" || difficulty == "" || hp <= 0 || gate < 0 {
		return fmt.Errorf("invalid boss entry %q (%s, %d관문, hp=%d)", name, difficulty, gate, hp)
	}

	return s.repo.Upsert(ctx, name, difficulty, gate, hp)
}

// SeedCatalog upserts the fixed boss list at startup. Re-running is
// harmless: entries are keyed on (name, difficulty, gate) and only the
// HP totals change when the seed list is updated.
func (s *BossService) SeedCatalog(ctx context.Context) error {
	for _, e := range catalog.Seed {
		if err := s.repo.Upsert(ctx, e.Name, e.Difficulty, e.Gate, e.HP); err != nil {
			return fmt.Errorf("failed to seed boss catalog: %w", err)
		}
	}
	s.logger.Info().Int("count", len(catalog.Seed)).Msg("boss catalog seeded")
	return nil
}
