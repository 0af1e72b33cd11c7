package main

import (
	"context"
	"database/sql"

	fxmodules "battle-analyzer/internal/fx"
	"battle-analyzer/internal/queue"
	"battle-analyzer/internal/worker"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runWorker),
	).Run()
}

func runWorker(
	lc fx.Lifecycle,
	pool *worker.Pool,
	q *queue.Queue,
	db *sql.DB,
	logger zerolog.Logger,
) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				if err := pool.Run(runCtx); err != nil {
					logger.Fatal().Err(err).Msg("worker pool failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down worker pool")
			cancel()

			select {
			case <-done:
			case <-ctx.Done():
				logger.Warn().Msg("worker pool shutdown timed out")
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			if err := q.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing queue connection")
			}
			logger.Info().Msg("worker stopped gracefully")
			return nil
		},
	})
}
