package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"battle-analyzer/internal/config"
	"battle-analyzer/internal/database"
	"battle-analyzer/internal/queue"
	"battle-analyzer/internal/repository"
	"battle-analyzer/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	tokens []string
	err    error
}

func (f *fakeRecognizer) Recognize(ctx context.Context, imagePath string) ([]string, error) {
	return f.tokens, f.err
}

func newTestPool(t *testing.T, rec Recognizer) (*Pool, *queue.Queue) {
	t.Helper()
	nop := zerolog.Nop()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "worker-test.db"), WorkerCount: 1}
	db, err := database.New(cfg, nop)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bossRepo := repository.NewBossRepository(db, nop)
	require.NoError(t, service.NewBossService(bossRepo, nop).SeedCatalog(context.Background()))

	resolveSvc := service.NewResolveService(
		bossRepo,
		repository.NewBattleRepository(db, nop),
		repository.NewPlayerDamageRepository(db, nop),
		repository.NewStatsRepository(db, nop),
		nop,
	)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	q := queue.NewWithClient(rdb, nop)

	return &Pool{queue: q, ocr: rec, resolveSvc: resolveSvc, workers: 1, logger: nop}, q
}

func writeUpload(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.png")
	require.NoError(t, os.WriteFile(path, []byte("not really a png"), 0o644))
	return path
}

func TestProcessSuccess(t *testing.T) {
	rec := &fakeRecognizer{tokens: []string{
		"대지를 부수는 업화의 궤적 [하드] 1관문",
		"기록정보 123",
		"전투시간 04:30",
		"피해량",
		"12억",
		"1,234,567",
	}}
	p, q := newTestPool(t, rec)
	ctx := context.Background()

	path := writeUpload(t)
	id, err := q.Enqueue(ctx, path)
	require.NoError(t, err)
	task, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)

	p.process(ctx, p.logger, task)

	status, err := q.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, queue.StatusSuccess, status.Status)
	require.NotNil(t, status.Result)
	assert.Equal(t, "대지를 부수는 업화의 궤적", status.Result.BossName)
	assert.Equal(t, int64(1234567), status.Result.DamageValue)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "uploaded file should be removed after processing")
}

func TestProcessRejectionReportsFailure(t *testing.T) {
	// Missing record/battle-time tokens, so resolution rejects the job.
	rec := &fakeRecognizer{tokens: []string{"대지를 부수는 업화의 궤적 [하드] 1관문"}}
	p, q := newTestPool(t, rec)
	ctx := context.Background()

	path := writeUpload(t)
	id, err := q.Enqueue(ctx, path)
	require.NoError(t, err)
	task, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)

	p.process(ctx, p.logger, task)

	status, err := q.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, queue.StatusFail, status.Status)
	assert.Equal(t, "이미지에서 유효한 값을 인식하지 못했습니다. 이미지 확인 후 다시 시도해주세요.", status.Error)
	assert.Nil(t, status.Result)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "uploaded file should be removed even on rejection")
}

func TestProcessOCRFailure(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("engine unreachable")}
	p, q := newTestPool(t, rec)
	ctx := context.Background()

	path := writeUpload(t)
	id, err := q.Enqueue(ctx, path)
	require.NoError(t, err)
	task, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)

	p.process(ctx, p.logger, task)

	status, err := q.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, queue.StatusFail, status.Status)
	assert.Equal(t, "이미지에서 유효한 값을 인식하지 못했습니다. 이미지 확인 후 다시 시도해주세요.", status.Error)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	p, _ := newTestPool(t, &fakeRecognizer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, p.Run(ctx))
}
