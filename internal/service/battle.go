package service

import (
	"context"
	"fmt"
	"math"

	"battle-analyzer/internal/constants"
	"battle-analyzer/internal/domain"
	"battle-analyzer/internal/repository"

	"github.com/rs/zerolog"
)

type BattleService struct {
	battleRepo *repository.BattleRepository
	bossRepo   *repository.BossRepository
	damageRepo *repository.PlayerDamageRepository
	logger     zerolog.Logger
}

func NewBattleService(
	battleRepo *repository.BattleRepository,
	bossRepo *repository.BossRepository,
	damageRepo *repository.PlayerDamageRepository,
	logger zerolog.Logger,
) *BattleService {
	return &BattleService{
		battleRepo: battleRepo,
		bossRepo:   bossRepo,
		damageRepo: damageRepo,
		logger:     logger,
	}
}

func (s *BattleService) List(ctx context.Context) ([]domain.BattleSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.battleRepo.List(ctx)
}

// Detail returns one battle with its damage lines ranked by damage,
// each annotated with its share of the boss HP and of the battle's
// total damage. Role labels are numbered per rank (딜러1, 딜러2, ...)
// the way the result chart displays them.
func (s *BattleService) Detail(ctx context.Context, battleID int64) (*domain.BattleDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	battle, err := s.battleRepo.GetByID(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if battle == nil {
		return nil, nil
	}

	boss, err := s.bossRepo.GetByID(ctx, battle.BossID)
	if err != nil {
		return nil, err
	}
	if boss == nil {
		return nil, fmt.Errorf("battle %d references missing boss %d", battleID, battle.BossID)
	}

	players, err := s.damageRepo.GetByBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}

	var totalDamage int64
	for _, p := range players {
		totalDamage += p.Damage
	}

	detail := &domain.BattleDetail{
		BossName:    boss.Name,
		Difficulty:  boss.Difficulty,
		Gate:        boss.Gate,
		TotalHP:     boss.HP,
		TotalDamage: totalDamage,
		BattleTime:  battle.BattleTime,
		Players:     make([]domain.BattlePlayer, 0, len(players)),
	}

	for idx, p := range players {
		detail.Players = append(detail.Players, domain.BattlePlayer{
			Role:        fmt.Sprintf("%s%d", p.Role, idx+1),
			Damage:      p.Damage,
			Percent:     sharePercent(p.Damage, boss.HP),
			DamageRatio: sharePercent(p.Damage, totalDamage),
			OCRResults:  p.OCRResults,
		})
	}

	return detail, nil
}

func sharePercent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}
