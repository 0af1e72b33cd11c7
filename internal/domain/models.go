package domain

import (
	"time"
)

type Role string

const (
	RoleDealer  Role = "딜러"
	RoleSupport Role = "서포터"
)

type Boss struct {
	ID         int64
	Name       string
	Difficulty string
	Gate       int
	HP         int64
	UpdatedAt  time.Time
}

type Battle struct {
	ID         int64
	BossID     int64
	RecordInfo string
	BattleTime string
	BattleKey  string
	CreatedAt  time.Time
}

type PlayerDamage struct {
	ID         int64
	BattleID   int64
	Role       Role
	Damage     int64
	OCRResults string
}

type Stats struct {
	VisitCount  int64
	UploadCount int64
}

// ExtractedFields holds what the token classifier pulled out of one
// screenshot's OCR output. RecordInfo and BattleTime are digit-only
// strings; DamageLabel is the human-readable magnitude (e.g. "12억").
type ExtractedFields struct {
	BossNameRaw string
	RecordInfo  string
	BattleTime  string
	DamageTitle string
	DamageLabel string
	DamageValue int64
	HasDamage   bool
	Role        Role
}

// ResolvedBoss is the resolver's verdict on a raw boss-name candidate.
// Matched reports whether a catalog keyword set claimed the name; an
// unmatched identity still carries the cleaned name and parsed
// difficulty/gate for diagnostics.
type ResolvedBoss struct {
	Name       string
	Difficulty string
	Gate       int
	GateKnown  bool
	Matched    bool
}

type UploadResult struct {
	BossNameRaw string `json:"boss_name"`
	BossName    string `json:"canonical_boss_name"`
	Difficulty  string `json:"difficulty"`
	Gate        int    `json:"gate_number"`
	RecordInfo  string `json:"record_info"`
	BattleTime  string `json:"battle_time"`
	BattleKey   string `json:"battle_key"`
	BattleID    int64  `json:"battle_id"`
	Role        Role   `json:"role"`
	DamageLabel string `json:"damage,omitempty"`
	DamageValue int64  `json:"damage_value,omitempty"`

	OCRResults []string `json:"ocr_results"`
}

type BattleSummary struct {
	ID         int64     `json:"id"`
	BossName   string    `json:"boss_name"`
	Difficulty string    `json:"difficulty"`
	Gate       int       `json:"gate_number"`
	RecordInfo string    `json:"record_info"`
	BattleTime string    `json:"battle_time"`
	CreatedAt  time.Time `json:"created_at"`
}

type BattlePlayer struct {
	Role        string  `json:"role"`
	Damage      int64   `json:"damage"`
	Percent     float64 `json:"percent"`
	DamageRatio float64 `json:"damage_ratio"`
	OCRResults  string  `json:"ocr_results"`
}

type BattleDetail struct {
	BossName    string         `json:"boss_name"`
	Difficulty  string         `json:"difficulty"`
	Gate        int            `json:"gate_number"`
	TotalHP     int64          `json:"total_hp"`
	TotalDamage int64          `json:"total_damage"`
	BattleTime  string         `json:"battle_time"`
	Players     []BattlePlayer `json:"players"`
}
