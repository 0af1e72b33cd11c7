package service

import (
	"context"

	"battle-analyzer/internal/constants"
	"battle-analyzer/internal/domain"
	"battle-analyzer/internal/repository"

	"github.com/rs/zerolog"
)

type StatsService struct {
	repo   *repository.StatsRepository
	logger zerolog.Logger
}

func NewStatsService(repo *repository.StatsRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, logger: logger}
}

func (s *StatsService) Get(ctx context.Context) (*domain.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.Get(ctx)
}

func (s *StatsService) RecordVisit(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.IncrementVisits(ctx)
}
