// Package worker drains the upload queue: each job is one screenshot,
// processed end to end (OCR, field extraction, boss resolution,
// reconciliation) and reported back through the task status store.
package worker

import (
	"context"
	"os"

	"battle-analyzer/internal/config"
	"battle-analyzer/internal/constants"
	"battle-analyzer/internal/domain"
	"battle-analyzer/internal/ocr"
	"battle-analyzer/internal/queue"
	"battle-analyzer/internal/service"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) ([]string, error)
}

type Pool struct {
	queue      *queue.Queue
	ocr        Recognizer
	resolveSvc *service.ResolveService
	workers    int
	logger     zerolog.Logger
}

func NewPool(cfg *config.Config, q *queue.Queue, ocrClient *ocr.Client, resolveSvc *service.ResolveService, logger zerolog.Logger) *Pool {
	return &Pool{
		queue:      q,
		ocr:        ocrClient,
		resolveSvc: resolveSvc,
		workers:    cfg.WorkerCount,
		logger:     logger,
	}
}

// Run blocks until ctx is cancelled, keeping p.workers goroutines
// polling the queue. A failed job never takes a worker down; only a
// broken queue connection stops the pool.
func (p *Pool) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	for i := 0; i < p.workers; i++ {
		workerID := i
		g.Go(func() error {
			logger := p.logger.With().Int("worker_id", workerID).Logger()
			logger.Info().Msg("worker started")

			for {
				select {
				case <-gCtx.Done():
					logger.Info().Msg("worker stopping")
					return nil
				default:
				}

				task, err := p.queue.Dequeue(gCtx, constants.DequeueTimeout)
				if err != nil {
					if gCtx.Err() != nil {
						return nil
					}
					logger.Error().Err(err).Msg("dequeue failed")
					return err
				}
				if task == nil {
					continue
				}

				p.process(gCtx, logger, task)
			}
		})
	}

	return g.Wait()
}

func (p *Pool) process(ctx context.Context, logger zerolog.Logger, task *queue.Task) {
	logger = logger.With().Str("task_id", task.ID).Logger()
	logger.Info().Str("image_path", task.ImagePath).Msg("processing upload")

	// The uploaded file is single-use; remove it whatever the outcome.
	defer func() {
		if err := os.Remove(task.ImagePath); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("image_path", task.ImagePath).Msg("failed to remove uploaded file")
		}
	}()

	ocrCtx, cancel := context.WithTimeout(ctx, constants.OCRTimeout)
	tokens, err := p.ocr.Recognize(ocrCtx, task.ImagePath)
	cancel()
	if err != nil {
		logger.Error().Err(err).Msg("ocr failed")
		p.report(ctx, logger, task.ID, nil, domain.ErrNoOCROutput)
		return
	}

	result, err := p.resolveSvc.Resolve(ctx, tokens)
	p.report(ctx, logger, task.ID, result, err)
}

func (p *Pool) report(ctx context.Context, logger zerolog.Logger, taskID string, result *domain.UploadResult, err error) {
	if err == nil {
		if serr := p.queue.SetSuccess(ctx, taskID, result); serr != nil {
			logger.Error().Err(serr).Msg("failed to report success")
		}
		return
	}

	reason := domain.RejectionMessage(err)
	if !domain.IsRejection(err) {
		logger.Error().Err(err).Msg("upload processing failed")
	} else {
		logger.Info().Err(err).Msg("upload rejected")
	}
	if serr := p.queue.SetFailure(ctx, taskID, reason); serr != nil {
		logger.Error().Err(serr).Msg("failed to report failure")
	}
}
