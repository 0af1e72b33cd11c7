// Package catalog holds the boss reference data: the keyword table the
// name resolver scores against, the guardian set, and the seed list
// loaded at server start. Declaration order matters — the resolver
// takes the first entry whose keyword set matches, so overlapping
// keyword sets tie-break on position in this table.
package catalog

type KeywordEntry struct {
	Name     string
	Keywords []string
}

var Keywords = []KeywordEntry{
	{Name: "드렉탈라스", Keywords: []string{"드렉", "탈라", "탈라스", "라스"}},
	{Name: "스콜라키아", Keywords: []string{"스콜", "콜라", "라키아", "키아"}},
	{Name: "아게오로스", Keywords: []string{"아게", "게오", "오로", "오로스"}},
	{Name: "폭풍의 지휘관 베히모스", Keywords: []string{"폭풍의 지휘관", "지휘관", "베히모스", "베히", "모스"}},
	{Name: "붉어진 백야의 나선", Keywords: []string{"서막", "붉어진", "백야", "나선"}},
	{Name: "대지를 부수는 업화의 궤적", Keywords: []string{"1막", "대지", "부수", "업화", "궤적"}},
	{Name: "부유하는 악몽의 진혼곡", Keywords: []string{"2막", "부유", "악몽", "진혼", "진혼곡"}},
	{Name: "칠흑 폭풍의 밤", Keywords: []string{"3막", "칠흑", "폭풍의 밤", "밤"}},
}

// Guardians have no difficulty or gate structure; the resolver forces
// them to (전체, gate 0) no matter what the raw text carried.
var guardians = map[string]struct{}{
	"드렉탈라스": {},
	"스콜라키아": {},
	"아게오로스": {},
}

func IsGuardian(name string) bool {
	_, ok := guardians[name]
	return ok
}

const (
	GuardianDifficulty = "전체"
	GuardianGate       = 0

	DefaultDifficulty = "노말"
)

type SeedEntry struct {
	Name       string
	Difficulty string
	Gate       int
	HP         int64
}

var Seed = []SeedEntry{
	// 가디언
	{Name: "드렉탈라스", Difficulty: "전체", Gate: 0, HP: 150000000000},
	{Name: "스콜라키아", Difficulty: "전체", Gate: 0, HP: 106000000000},
	{Name: "아게오로스", Difficulty: "전체", Gate: 0, HP: 25000000000},
	// 에픽 레이드 (노말만 존재)
	{Name: "폭풍의 지휘관 베히모스", Difficulty: "노말", Gate: 1, HP: 280688129478},
	{Name: "폭풍의 지휘관 베히모스", Difficulty: "노말", Gate: 2, HP: 395706606604},
	// 카제로스 레이드 — 서막
	{Name: "붉어진 백야의 나선", Difficulty: "노말", Gate: 1, HP: 62802745968},
	{Name: "붉어진 백야의 나선", Difficulty: "하드", Gate: 1, HP: 108972915945},
	{Name: "붉어진 백야의 나선", Difficulty: "노말", Gate: 2, HP: 80672317989},
	{Name: "붉어진 백야의 나선", Difficulty: "하드", Gate: 2, HP: 154486187002},
	// 1막
	{Name: "대지를 부수는 업화의 궤적", Difficulty: "노말", Gate: 1, HP: 161517294610},
	{Name: "대지를 부수는 업화의 궤적", Difficulty: "하드", Gate: 1, HP: 269870428126},
	{Name: "대지를 부수는 업화의 궤적", Difficulty: "노말", Gate: 2, HP: 213231745024},
	{Name: "대지를 부수는 업화의 궤적", Difficulty: "하드", Gate: 2, HP: 398607605792},
	// 2막
	{Name: "부유하는 악몽의 진혼곡", Difficulty: "노말", Gate: 1, HP: 275449621248},
	{Name: "부유하는 악몽의 진혼곡", Difficulty: "하드", Gate: 1, HP: 516125060783},
	{Name: "부유하는 악몽의 진혼곡", Difficulty: "노말", Gate: 2, HP: 399401950809},
	{Name: "부유하는 악몽의 진혼곡", Difficulty: "하드", Gate: 2, HP: 911639983772},
	// 3막
	{Name: "칠흑 폭풍의 밤", Difficulty: "노말", Gate: 1, HP: 368773967531},
	{Name: "칠흑 폭풍의 밤", Difficulty: "하드", Gate: 1, HP: 652499653375},
	{Name: "칠흑 폭풍의 밤", Difficulty: "노말", Gate: 2, HP: 334691604286},
	{Name: "칠흑 폭풍의 밤", Difficulty: "하드", Gate: 2, HP: 663116555628},
	{Name: "칠흑 폭풍의 밤", Difficulty: "노말", Gate: 3, HP: 731975350664},
	{Name: "칠흑 폭풍의 밤", Difficulty: "하드", Gate: 3, HP: 1473779836172},
}
