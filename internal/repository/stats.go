package repository

import (
	"context"
	"database/sql"
	"fmt"

	"battle-analyzer/internal/domain"

	"github.com/rs/zerolog"
)

type StatsRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewStatsRepository(sqlDB *sql.DB, logger zerolog.Logger) *StatsRepository {
	return &StatsRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// IncrementUploads bumps the upload counter. A single UPDATE keeps the
// increment atomic under concurrent workers; the singleton row is
// seeded by the initial migration.
func (r *StatsRepository) IncrementUploads(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE stats SET upload_count = upload_count + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to increment upload count: %w", err)
	}
	return nil
}

func (r *StatsRepository) IncrementVisits(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE stats SET visit_count = visit_count + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to increment visit count: %w", err)
	}
	return nil
}

func (r *StatsRepository) Get(ctx context.Context) (*domain.Stats, error) {
	var s domain.Stats
	err := r.db.QueryRowContext(ctx, `SELECT visit_count, upload_count FROM stats WHERE id = 1`).
		Scan(&s.VisitCount, &s.UploadCount)
	if err == sql.ErrNoRows {
		return &domain.Stats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &s, nil
}
