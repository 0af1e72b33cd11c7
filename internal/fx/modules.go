package fx

import (
	"battle-analyzer/internal/config"
	"battle-analyzer/internal/database"
	"battle-analyzer/internal/logger"
	"battle-analyzer/internal/ocr"
	"battle-analyzer/internal/queue"
	"battle-analyzer/internal/repository"
	"battle-analyzer/internal/server"
	"battle-analyzer/internal/service"
	"battle-analyzer/internal/worker"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(queue.New),
	// repos
	fx.Provide(repository.NewBossRepository),
	fx.Provide(repository.NewBattleRepository),
	fx.Provide(repository.NewPlayerDamageRepository),
	fx.Provide(repository.NewStatsRepository),
	// ocr client
	fx.Provide(ocr.NewClient),
	// svc
	fx.Provide(service.NewResolveService),
	fx.Provide(service.NewBattleService),
	fx.Provide(service.NewBossService),
	fx.Provide(service.NewStatsService),
	// server + worker pool
	fx.Provide(server.New),
	fx.Provide(worker.NewPool),
)
