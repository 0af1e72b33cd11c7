// Package queue is the boundary to the asynchronous worker transport:
// a Redis list carries pending jobs, and per-task status keys act as
// the result backend the status endpoint polls.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"battle-analyzer/internal/config"
	"battle-analyzer/internal/constants"
	"battle-analyzer/internal/domain"

	"github.com/go-redis/redis/v8"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

const (
	StatusPending = "PENDING"
	StatusSuccess = "SUCCESS"
	StatusFail    = "FAIL"
	StatusUnknown = "UNKNOWN"
)

type Task struct {
	ID         string    `json:"id"`
	ImagePath  string    `json:"image_path"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

type TaskStatus struct {
	Status string               `json:"status"`
	Result *domain.UploadResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

type Queue struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) (*Queue, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &Queue{rdb: redis.NewClient(opts), logger: logger}, nil
}

// NewWithClient wires an existing redis client, used by tests.
func NewWithClient(rdb *redis.Client, logger zerolog.Logger) *Queue {
	return &Queue{rdb: rdb, logger: logger}
}

func (q *Queue) Close() error {
	return q.rdb.Close()
}

// Enqueue registers one upload job and marks it pending. The returned
// task id is what the upload endpoint hands back for polling.
func (q *Queue) Enqueue(ctx context.Context, imagePath string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate task id: %w", err)
	}

	task := Task{ID: id, ImagePath: imagePath, EnqueuedAt: time.Now().UTC()}
	payload, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := q.setStatus(ctx, id, TaskStatus{Status: StatusPending}); err != nil {
		return "", err
	}
	if err := q.rdb.LPush(ctx, constants.TaskQueueKey, payload).Err(); err != nil {
		return "", fmt.Errorf("failed to enqueue task: %w", err)
	}

	q.logger.Debug().Str("task_id", id).Str("image_path", imagePath).Msg("task enqueued")
	return id, nil
}

// Dequeue blocks up to timeout for the next job. It returns (nil, nil)
// when the timeout elapses with an empty queue, so worker loops can
// check for cancellation between polls.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	res, err := q.rdb.BRPop(ctx, timeout, constants.TaskQueueKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue task: %w", err)
	}

	// BRPop returns [key, value].
	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return &task, nil
}

func (q *Queue) SetSuccess(ctx context.Context, taskID string, result *domain.UploadResult) error {
	return q.setStatus(ctx, taskID, TaskStatus{Status: StatusSuccess, Result: result})
}

func (q *Queue) SetFailure(ctx context.Context, taskID, reason string) error {
	return q.setStatus(ctx, taskID, TaskStatus{Status: StatusFail, Error: reason})
}

// Status returns the task's reported state; tasks never seen (or
// expired) come back as unknown rather than an error.
func (q *Queue) Status(ctx context.Context, taskID string) (*TaskStatus, error) {
	raw, err := q.rdb.Get(ctx, constants.TaskStatusKeyBase+taskID).Result()
	if err == redis.Nil {
		return &TaskStatus{Status: StatusUnknown}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task status: %w", err)
	}

	var status TaskStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task status: %w", err)
	}
	return &status, nil
}

func (q *Queue) setStatus(ctx context.Context, taskID string, status TaskStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal task status: %w", err)
	}
	if err := q.rdb.Set(ctx, constants.TaskStatusKeyBase+taskID, payload, constants.TaskStatusTTL).Err(); err != nil {
		return fmt.Errorf("failed to set task status: %w", err)
	}
	return nil
}
