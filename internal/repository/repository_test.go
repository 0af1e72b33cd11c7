package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"battle-analyzer/internal/config"
	"battle-analyzer/internal/database"
	"battle-analyzer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "battle-test.db")}
	db, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedBoss(t *testing.T, repo *BossRepository) *domain.Boss {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, "대지를 부수는 업화의 궤적", "하드", 1, 269870428126))
	boss, err := repo.Lookup(ctx, "대지를 부수는 업화의 궤적", "하드", 1)
	require.NoError(t, err)
	require.NotNil(t, boss)
	return boss
}

func TestBossUpsertAndLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewBossRepository(db, zerolog.Nop())
	ctx := context.Background()

	boss := seedBoss(t, repo)
	assert.Equal(t, int64(269870428126), boss.HP)

	// Same key updates HP in place.
	require.NoError(t, repo.Upsert(ctx, "대지를 부수는 업화의 궤적", "하드", 1, 300000000000))
	updated, err := repo.Lookup(ctx, "대지를 부수는 업화의 궤적", "하드", 1)
	require.NoError(t, err)
	assert.Equal(t, boss.ID, updated.ID)
	assert.Equal(t, int64(300000000000), updated.HP)

	// Different gate is a distinct entry.
	require.NoError(t, repo.Upsert(ctx, "대지를 부수는 업화의 궤적", "하드", 2, 398607605792))
	other, err := repo.Lookup(ctx, "대지를 부수는 업화의 궤적", "하드", 2)
	require.NoError(t, err)
	assert.NotEqual(t, boss.ID, other.ID)
}

func TestBossLookupMiss(t *testing.T) {
	db := newTestDB(t)
	repo := NewBossRepository(db, zerolog.Nop())

	boss, err := repo.Lookup(context.Background(), "없는 보스", "노말", 1)
	require.NoError(t, err)
	assert.Nil(t, boss)
}

func TestBattleGetOrCreateIdempotent(t *testing.T) {
	db := newTestDB(t)
	bossRepo := NewBossRepository(db, zerolog.Nop())
	battleRepo := NewBattleRepository(db, zerolog.Nop())
	ctx := context.Background()

	boss := seedBoss(t, bossRepo)
	key := "123_0430_1"

	first, err := battleRepo.GetOrCreate(ctx, boss.ID, "123", "0430", key)
	require.NoError(t, err)
	second, err := battleRepo.GetOrCreate(ctx, boss.ID, "123", "0430", key)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM battle`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestPlayerDamageDedupFoldsSameValue(t *testing.T) {
	db := newTestDB(t)
	bossRepo := NewBossRepository(db, zerolog.Nop())
	battleRepo := NewBattleRepository(db, zerolog.Nop())
	damageRepo := NewPlayerDamageRepository(db, zerolog.Nop())
	ctx := context.Background()

	boss := seedBoss(t, bossRepo)
	battle, err := battleRepo.GetOrCreate(ctx, boss.ID, "123", "0430", "123_0430_x")
	require.NoError(t, err)

	require.NoError(t, damageRepo.Record(ctx, battle.ID, domain.RoleDealer, 1234567, "first dump"))
	// A second sighting of the same damage value folds into the first
	// row: only the OCR dump is refreshed, role and damage stay.
	require.NoError(t, damageRepo.Record(ctx, battle.ID, domain.RoleSupport, 1234567, "second dump"))

	players, err := damageRepo.GetByBattle(ctx, battle.ID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, domain.RoleDealer, players[0].Role)
	assert.Equal(t, int64(1234567), players[0].Damage)
	assert.Equal(t, "second dump", players[0].OCRResults)
}

func TestPlayerDamageDistinctValuesRankedDescending(t *testing.T) {
	db := newTestDB(t)
	bossRepo := NewBossRepository(db, zerolog.Nop())
	battleRepo := NewBattleRepository(db, zerolog.Nop())
	damageRepo := NewPlayerDamageRepository(db, zerolog.Nop())
	ctx := context.Background()

	boss := seedBoss(t, bossRepo)
	battle, err := battleRepo.GetOrCreate(ctx, boss.ID, "55", "1200", "55_1200_x")
	require.NoError(t, err)

	require.NoError(t, damageRepo.Record(ctx, battle.ID, domain.RoleDealer, 100, "a"))
	require.NoError(t, damageRepo.Record(ctx, battle.ID, domain.RoleSupport, 50, "b"))
	require.NoError(t, damageRepo.Record(ctx, battle.ID, domain.RoleDealer, 300, "c"))

	players, err := damageRepo.GetByBattle(ctx, battle.ID)
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, int64(300), players[0].Damage)
	assert.Equal(t, int64(100), players[1].Damage)
	assert.Equal(t, int64(50), players[2].Damage)
}

func TestPlayerDamageCascadeDelete(t *testing.T) {
	db := newTestDB(t)
	bossRepo := NewBossRepository(db, zerolog.Nop())
	battleRepo := NewBattleRepository(db, zerolog.Nop())
	damageRepo := NewPlayerDamageRepository(db, zerolog.Nop())
	ctx := context.Background()

	boss := seedBoss(t, bossRepo)
	battle, err := battleRepo.GetOrCreate(ctx, boss.ID, "1", "0100", "1_0100_x")
	require.NoError(t, err)
	require.NoError(t, damageRepo.Record(ctx, battle.ID, domain.RoleDealer, 42, ""))

	_, err = db.Exec(`DELETE FROM battle WHERE id = ?`, battle.ID)
	require.NoError(t, err)

	players, err := damageRepo.GetByBattle(ctx, battle.ID)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestStatsCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatsRepository(db, zerolog.Nop())
	ctx := context.Background()

	stats, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.UploadCount)
	assert.Equal(t, int64(0), stats.VisitCount)

	require.NoError(t, repo.IncrementUploads(ctx))
	require.NoError(t, repo.IncrementUploads(ctx))
	require.NoError(t, repo.IncrementVisits(ctx))

	stats, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.UploadCount)
	assert.Equal(t, int64(1), stats.VisitCount)
}

func TestBattleListNewestRecordFirst(t *testing.T) {
	db := newTestDB(t)
	bossRepo := NewBossRepository(db, zerolog.Nop())
	battleRepo := NewBattleRepository(db, zerolog.Nop())
	ctx := context.Background()

	boss := seedBoss(t, bossRepo)
	_, err := battleRepo.GetOrCreate(ctx, boss.ID, "100", "0400", "100_0400_x")
	require.NoError(t, err)
	_, err = battleRepo.GetOrCreate(ctx, boss.ID, "200", "0500", "200_0500_x")
	require.NoError(t, err)

	battles, err := battleRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, battles, 2)
	assert.Equal(t, "200", battles[0].RecordInfo)
	assert.Equal(t, "100", battles[1].RecordInfo)
	assert.Equal(t, "대지를 부수는 업화의 궤적", battles[0].BossName)
	assert.Equal(t, "하드", battles[0].Difficulty)
}
