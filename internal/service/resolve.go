package service

import (
	"context"
	"fmt"
	"strings"

	"battle-analyzer/internal/constants"
	"battle-analyzer/internal/domain"
	"battle-analyzer/internal/parser"
	"battle-analyzer/internal/repository"

	"github.com/rs/zerolog"
)

// ResolveService is the battle-record resolution engine: it classifies
// an OCR token sequence, resolves the boss identity against the
// catalog, and reconciles the result into persisted records. It holds
// no state between calls and is safe for concurrent uploads; the
// battle-key and (battle, damage) unique constraints make repeated
// submissions of the same screenshot idempotent.
type ResolveService struct {
	bossRepo   *repository.BossRepository
	battleRepo *repository.BattleRepository
	damageRepo *repository.PlayerDamageRepository
	statsRepo  *repository.StatsRepository
	logger     zerolog.Logger
}

func NewResolveService(
	bossRepo *repository.BossRepository,
	battleRepo *repository.BattleRepository,
	damageRepo *repository.PlayerDamageRepository,
	statsRepo *repository.StatsRepository,
	logger zerolog.Logger,
) *ResolveService {
	return &ResolveService{
		bossRepo:   bossRepo,
		battleRepo: battleRepo,
		damageRepo: damageRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

// Resolve turns one upload's token sequence into a reconciled battle
// record. Rejections (no OCR text, incomplete extraction, unresolved
// or unregistered boss) come back as the domain sentinel errors and
// leave no persisted state behind.
func (s *ResolveService) Resolve(ctx context.Context, tokens []string) (*domain.UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if len(tokens) == 0 {
		return nil, domain.ErrNoOCROutput
	}

	fields, err := parser.ExtractFields(tokens)
	if err != nil {
		s.logger.Info().Err(err).Int("token_count", len(tokens)).Msg("extraction rejected")
		return nil, err
	}

	resolved := parser.ResolveBossName(fields.BossNameRaw)
	if !resolved.Matched {
		s.logger.Info().Str("boss_name_raw", fields.BossNameRaw).Str("cleaned", resolved.Name).Msg("boss name matched no keyword set")
		return nil, fmt.Errorf("%q: %w", resolved.Name, domain.ErrUnresolvedBossName)
	}
	if !resolved.GateKnown {
		// A raid boss without a readable gate number can never match a
		// catalog entry.
		s.logger.Info().Str("boss_name", resolved.Name).Msg("no gate number recognized")
		return nil, fmt.Errorf("%s: %w", resolved.Name, domain.ErrUnknownBoss)
	}

	boss, err := s.bossRepo.Lookup(ctx, resolved.Name, resolved.Difficulty, resolved.Gate)
	if err != nil {
		return nil, err
	}
	if boss == nil {
		s.logger.Info().
			Str("boss_name", resolved.Name).
			Str("difficulty", resolved.Difficulty).
			Int("gate", resolved.Gate).
			Msg("no catalog entry for resolved boss")
		return nil, fmt.Errorf("%s (%s, %d관문): %w", resolved.Name, resolved.Difficulty, resolved.Gate, domain.ErrUnknownBoss)
	}

	battleKey := fmt.Sprintf("%s_%s_%d", fields.RecordInfo, fields.BattleTime, boss.ID)
	battle, err := s.battleRepo.GetOrCreate(ctx, boss.ID, fields.RecordInfo, fields.BattleTime, battleKey)
	if err != nil {
		return nil, err
	}

	if fields.HasDamage {
		if err := s.damageRepo.Record(ctx, battle.ID, fields.Role, fields.DamageValue, strings.Join(tokens, "\n")); err != nil {
			return nil, err
		}
	}

	if err := s.statsRepo.IncrementUploads(ctx); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("boss_name", boss.Name).
		Str("difficulty", boss.Difficulty).
		Int("gate", boss.Gate).
		Str("battle_key", battleKey).
		Int64("battle_id", battle.ID).
		Str("role", string(fields.Role)).
		Bool("has_damage", fields.HasDamage).
		Msg("upload reconciled")

	return &domain.UploadResult{
		BossNameRaw: fields.BossNameRaw,
		BossName:    boss.Name,
		Difficulty:  boss.Difficulty,
		Gate:        boss.Gate,
		RecordInfo:  fields.RecordInfo,
		BattleTime:  fields.BattleTime,
		BattleKey:   battleKey,
		BattleID:    battle.ID,
		Role:        fields.Role,
		DamageLabel: fields.DamageLabel,
		DamageValue: fields.DamageValue,
		OCRResults:  tokens,
	}, nil
}
