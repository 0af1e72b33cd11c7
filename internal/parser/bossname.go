package parser

import (
	"regexp"
	"strconv"
	"strings"

	"battle-analyzer/internal/catalog"
	"battle-analyzer/internal/domain"
)

var (
	gateRe       = regexp.MustCompile(`(\d+)관문`)
	difficultyRe = regexp.MustCompile(`\[(.*?)\]`)
	actPrefixRe  = regexp.MustCompile(`\d+막[: ]?`)
	bracketRe    = regexp.MustCompile(`\[.*?\]`)
	normalizeRe  = regexp.MustCompile(`[^가-힣a-zA-Z0-9]`)
)

// ResolveBossName maps a raw boss-name candidate onto the catalog.
// Structural noise is stripped first: a leading "<n>막" act marker, a
// bracketed difficulty (default 노말 when absent), and a "<n>관문"
// gate suffix. The remainder is normalized to Korean syllables, ASCII
// letters and digits, then scored against each catalog keyword set in
// declaration order; the first set with at least one hit wins.
// Guardians ignore any parsed difficulty/gate and come back as
// (전체, gate 0).
func ResolveBossName(raw string) domain.ResolvedBoss {
	res := domain.ResolvedBoss{Difficulty: catalog.DefaultDifficulty}

	if m := gateRe.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			res.Gate = n
			res.GateKnown = true
		}
	}
	if m := difficultyRe.FindStringSubmatch(raw); m != nil {
		res.Difficulty = m[1]
	}

	name := actPrefixRe.ReplaceAllString(raw, "")
	name = bracketRe.ReplaceAllString(name, "")
	name = gateRe.ReplaceAllString(name, "")
	res.Name = strings.TrimSpace(name)

	normalized := normalizeRe.ReplaceAllString(res.Name, "")

	for _, entry := range catalog.Keywords {
		hits := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(normalized, kw) {
				hits++
			}
		}
		if hits >= 1 {
			res.Name = entry.Name
			res.Matched = true
			if catalog.IsGuardian(entry.Name) {
				res.Difficulty = catalog.GuardianDifficulty
				res.Gate = catalog.GuardianGate
				res.GateKnown = true
			}
			return res
		}
	}

	return res
}
