// Package parser turns the unordered, noisy token list coming out of
// OCR into typed battle-record fields, and maps free-text boss names
// onto the catalog. Token order roughly follows the screen layout
// top-to-bottom, but token boundaries are unreliable, so every field
// uses the most specific containment test available plus a position
// anchor, scanned first-match-wins.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"battle-analyzer/internal/domain"
)

// UI chrome terms that disqualify a token as a boss-name candidate.
var bossNameBanned = []string{"기록", "정보", "전투분석기", "전투", "관리"}

var (
	digitsSlashesRe = regexp.MustCompile(`^[0-9/]+$`)
	percentOnlyRe   = regexp.MustCompile(`^\d+(\.\d+)?%$`)
	clockRe         = regexp.MustCompile(`^\d{2}:\d{2}$`)
	nonDigitRe      = regexp.MustCompile(`[^0-9]`)
)

// ExtractFields classifies an ordered OCR token sequence into battle
// fields. It returns domain.ErrIncompleteExtraction when the record
// sequence or battle duration is missing; a missing boss name is not
// an extraction failure (the resolver rejects it later).
func ExtractFields(tokens []string) (domain.ExtractedFields, error) {
	var f domain.ExtractedFields

	f.BossNameRaw = findBossName(tokens)

	for _, t := range tokens {
		if strings.Contains(t, "기록") && strings.Contains(t, "정보") {
			f.RecordInfo = nonDigitRe.ReplaceAllString(strings.TrimSpace(t), "")
			break
		}
	}
	for _, t := range tokens {
		if strings.Contains(t, "전투") && strings.Contains(t, "시간") {
			f.BattleTime = nonDigitRe.ReplaceAllString(strings.TrimSpace(t), "")
			break
		}
	}

	if f.RecordInfo == "" || f.BattleTime == "" {
		return f, domain.ErrIncompleteExtraction
	}

	// The damage title anchors the magnitude/value scan; the label in
	// turn anchors the value scan. Both scans run strictly after their
	// anchor so a separator number above the title is never mistaken
	// for the damage figure.
	anchor := -1
	for idx, t := range tokens {
		if strings.Contains(t, "피해량") || strings.Contains(t, "조력") {
			f.DamageTitle = strings.TrimSpace(t)
			anchor = idx
			break
		}
	}
	for idx := anchor + 1; idx < len(tokens); idx++ {
		if strings.Contains(tokens[idx], "억") {
			f.DamageLabel = strings.TrimSpace(tokens[idx])
			anchor = idx
			break
		}
	}
	for idx := anchor + 1; idx < len(tokens); idx++ {
		stripped := strings.ReplaceAll(tokens[idx], ",", "")
		if strings.Contains(tokens[idx], ",") && isAllDigits(stripped) {
			v, err := strconv.ParseInt(stripped, 10, 64)
			if err != nil {
				return f, fmt.Errorf("parse damage value %q: %w", tokens[idx], err)
			}
			f.DamageValue = v
			f.HasDamage = true
			break
		}
	}

	f.Role = classifyRole(f.DamageTitle, tokens)

	return f, nil
}

// findBossName returns the first token plausible as a boss name, or ""
// when nothing qualifies.
func findBossName(tokens []string) string {
	for _, t := range tokens {
		clean := strings.TrimSpace(t)
		if utf8.RuneCountInString(clean) <= 2 {
			continue
		}
		if containsAny(clean, bossNameBanned) {
			continue
		}
		if digitsSlashesRe.MatchString(clean) {
			continue
		}
		if strings.Contains(clean, "%") || percentOnlyRe.MatchString(clean) {
			continue
		}
		if clockRe.MatchString(clean) {
			continue
		}
		return clean
	}
	return ""
}

func classifyRole(damageTitle string, tokens []string) domain.Role {
	if damageTitle != "" && strings.Contains(damageTitle, "조력") {
		return domain.RoleSupport
	}
	for _, t := range tokens {
		if strings.Contains(t, "서포터") || strings.Contains(t, "낙인") {
			return domain.RoleSupport
		}
	}
	return domain.RoleDealer
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
