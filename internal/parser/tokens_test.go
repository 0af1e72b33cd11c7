package parser

import (
	"testing"

	"battle-analyzer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultScreenTokens() []string {
	return []string{
		"전투분석기",
		"대지를 부수는 업화의 궤적 [하드] 1관문",
		"기록정보 123",
		"전투시간 04:30",
		"피해량",
		"12억",
		"1,234,567",
		"딜러",
	}
}

func TestExtractFieldsFullResultScreen(t *testing.T) {
	fields, err := ExtractFields(resultScreenTokens())
	require.NoError(t, err)

	assert.Equal(t, "대지를 부수는 업화의 궤적 [하드] 1관문", fields.BossNameRaw)
	assert.Equal(t, "123", fields.RecordInfo)
	assert.Equal(t, "0430", fields.BattleTime)
	assert.Equal(t, "피해량", fields.DamageTitle)
	assert.Equal(t, "12억", fields.DamageLabel)
	assert.True(t, fields.HasDamage)
	assert.Equal(t, int64(1234567), fields.DamageValue)
	assert.Equal(t, domain.RoleDealer, fields.Role)
}

func TestExtractFieldsMissingRecordInfo(t *testing.T) {
	tokens := []string{
		"대지를 부수는 업화의 궤적 [하드] 1관문",
		"전투시간 04:30",
		"피해량",
		"1,234,567",
	}
	_, err := ExtractFields(tokens)
	assert.ErrorIs(t, err, domain.ErrIncompleteExtraction)
}

func TestExtractFieldsMissingBattleTime(t *testing.T) {
	tokens := []string{
		"대지를 부수는 업화의 궤적 [하드] 1관문",
		"기록정보 123",
	}
	_, err := ExtractFields(tokens)
	assert.ErrorIs(t, err, domain.ErrIncompleteExtraction)
}

func TestExtractFieldsRecordAndInfoSplitAcrossToken(t *testing.T) {
	// Containment is order-independent within the token, not a fixed
	// "기록정보" concatenation.
	tokens := []string{"정보 기록 456", "전투 시간 12:34"}
	fields, err := ExtractFields(tokens)
	require.NoError(t, err)
	assert.Equal(t, "456", fields.RecordInfo)
	assert.Equal(t, "1234", fields.BattleTime)
}

func TestExtractFieldsSupportTitleWinsOverDealerTokens(t *testing.T) {
	tokens := []string{
		"부유하는 악몽의 진혼곡 [노말] 1관문",
		"기록정보 77",
		"전투시간 10:00",
		"조력 기여도",
		"8억",
		"812,345,678",
		"딜러",
	}
	fields, err := ExtractFields(tokens)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupport, fields.Role)
}

func TestExtractFieldsSupportFromAnyToken(t *testing.T) {
	for _, marker := range []string{"서포터", "낙인 효과"} {
		tokens := []string{
			"기록정보 1", "전투시간 00:30", marker,
		}
		fields, err := ExtractFields(tokens)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleSupport, fields.Role, "marker %q", marker)
	}
}

func TestExtractFieldsDefaultsToDealer(t *testing.T) {
	fields, err := ExtractFields([]string{"기록정보 1", "전투시간 00:30"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDealer, fields.Role)
	assert.False(t, fields.HasDamage)
}

func TestExtractFieldsDamageValueOnlyAfterMagnitudeLabel(t *testing.T) {
	// The comma-number before the anchor belongs to some other counter
	// and must not be read as the damage value.
	tokens := []string{
		"9,999",
		"기록정보 1",
		"전투시간 03:00",
		"피해량",
		"3억",
		"345,678,901",
	}
	fields, err := ExtractFields(tokens)
	require.NoError(t, err)
	assert.Equal(t, int64(345678901), fields.DamageValue)
	assert.Equal(t, "3억", fields.DamageLabel)
}

func TestFindBossNameSkipsChromeTokens(t *testing.T) {
	tokens := []string{
		"전투분석기",  // UI chrome
		"관리",     // too short anyway, also banned
		"12/25",  // digits and slashes
		"85.5%",  // percent readout
		"04:30",  // clock
		"밤",      // single rune
		"칠흑 폭풍의 밤 [노말] 2관문",
	}
	assert.Equal(t, "칠흑 폭풍의 밤 [노말] 2관문", findBossName(tokens))
}

func TestFindBossNameAbsent(t *testing.T) {
	assert.Equal(t, "", findBossName([]string{"기록정보 123", "전투시간 04:30", "100%"}))
}

func TestExtractFieldsNamelessSequenceStillExtracts(t *testing.T) {
	// No boss-name candidate is not an extraction failure; the record
	// is still produced and fails later at resolution.
	fields, err := ExtractFields([]string{"기록정보 9", "전투시간 01:00"})
	require.NoError(t, err)
	assert.Equal(t, "", fields.BossNameRaw)
	assert.Equal(t, "9", fields.RecordInfo)
}
