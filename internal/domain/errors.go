package domain

import "errors"

// Rejection reasons for a single upload. Each maps to a structured
// fail status for the caller; none of them should take a worker down.
var (
	// ErrNoOCROutput: the OCR engine produced no recognized text at all.
	ErrNoOCROutput = errors.New("ocr produced no recognized text")

	// ErrIncompleteExtraction: record-info or battle-time token missing.
	ErrIncompleteExtraction = errors.New("record info or battle time not recognized")

	// ErrUnresolvedBossName: a name was parsed but matched no keyword set.
	ErrUnresolvedBossName = errors.New("boss name not recognized")

	// ErrUnknownBoss: the name resolved to a canonical boss, but no
	// catalog entry is registered for (name, difficulty, gate).
	ErrUnknownBoss = errors.New("boss not registered in catalog")
)

// IsRejection reports whether err is an expected per-upload rejection
// rather than an internal fault.
func IsRejection(err error) bool {
	return errors.Is(err, ErrNoOCROutput) ||
		errors.Is(err, ErrIncompleteExtraction) ||
		errors.Is(err, ErrUnresolvedBossName) ||
		errors.Is(err, ErrUnknownBoss)
}

// RejectionMessage returns the user-facing message for a rejection,
// mirroring what the upload UI shows for each failure mode.
func RejectionMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoOCROutput), errors.Is(err, ErrIncompleteExtraction):
		return "이미지에서 유효한 값을 인식하지 못했습니다. 이미지 확인 후 다시 시도해주세요."
	case errors.Is(err, ErrUnresolvedBossName):
		return "보스 이름을 인식하지 못 했습니다. 확인 후 다시 시도해주세요."
	case errors.Is(err, ErrUnknownBoss):
		return "등록되지 않은 보스입니다. 보스 정보 등록 후 다시 시도해주세요."
	default:
		return "처리 중 오류가 발생했습니다."
	}
}
