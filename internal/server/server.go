package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"battle-analyzer/internal/config"
	"battle-analyzer/internal/constants"
	"battle-analyzer/internal/queue"
	"battle-analyzer/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Server struct {
	battleSvc *service.BattleService
	bossSvc   *service.BossService
	statsSvc  *service.StatsService
	queue     *queue.Queue
	uploadDir string
	logger    zerolog.Logger
}

func New(
	cfg *config.Config,
	battleSvc *service.BattleService,
	bossSvc *service.BossService,
	statsSvc *service.StatsService,
	q *queue.Queue,
	logger zerolog.Logger,
) *Server {
	return &Server{
		battleSvc: battleSvc,
		bossSvc:   bossSvc,
		statsSvc:  statsSvc,
		queue:     q,
		uploadDir: cfg.UploadDir,
		logger:    logger,
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /task/{id}", s.handleTaskStatus)
	mux.HandleFunc("GET /battle-list", s.handleBattleList)
	mux.HandleFunc("GET /battle/{id}", s.handleBattleDetail)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /visit", s.handleVisit)
	mux.HandleFunc("POST /bossinfo/upsert", s.handleBossUpsert)
}

// handleUpload stores the image and enqueues one OCR job. The actual
// processing is asynchronous; the client polls /task/{id}.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadBodyBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "파일이 필요합니다.")
		return
	}
	defer file.Close()

	// Sniff the real content; the client-supplied type is not trusted.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && n == 0 {
		writeError(w, http.StatusBadRequest, "파일을 읽을 수 없습니다.")
		return
	}

	var ext string
	switch http.DetectContentType(head[:n]) {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpeg"
	default:
		writeError(w, http.StatusBadRequest, "이미지 파일만 업로드 가능합니다.")
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.uploadDir).Msg("failed to create upload dir")
		writeError(w, http.StatusInternalServerError, "업로드 저장 실패")
		return
	}

	path := filepath.Join(s.uploadDir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create upload file")
		writeError(w, http.StatusInternalServerError, "업로드 저장 실패")
		return
	}

	if _, err := dst.Write(head[:n]); err == nil {
		_, err = dst.ReadFrom(file)
	}
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write upload file")
		writeError(w, http.StatusInternalServerError, "업로드 저장 실패")
		return
	}

	taskID, err := s.queue.Enqueue(r.Context(), path)
	if err != nil {
		os.Remove(path)
		s.logger.Error().Err(err).Msg("failed to enqueue upload")
		writeError(w, http.StatusInternalServerError, "시스템 오류! 전송 실패")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"task_id": taskID})
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.queue.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get task status")
		writeError(w, http.StatusInternalServerError, "상태 조회 실패")
		return
	}

	switch status.Status {
	case queue.StatusSuccess:
		writeJSON(w, http.StatusOK, map[string]any{"status": status.Status, "result": status.Result})
	case queue.StatusFail:
		writeJSON(w, http.StatusOK, map[string]any{"status": status.Status, "error": status.Error})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"status": status.Status})
	}
}

func (s *Server) handleBattleList(w http.ResponseWriter, r *http.Request) {
	battles, err := s.battleSvc.List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list battles")
		writeError(w, http.StatusInternalServerError, "전투 목록 조회 실패")
		return
	}
	writeJSON(w, http.StatusOK, battles)
}

func (s *Server) handleBattleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "잘못된 전투 ID")
		return
	}

	detail, err := s.battleSvc.Detail(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Int64("battle_id", id).Msg("failed to get battle detail")
		writeError(w, http.StatusInternalServerError, "전투 상세 조회 실패")
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, "전투 기록 없음")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsSvc.Get(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get stats")
		writeError(w, http.StatusInternalServerError, "통계 조회 실패")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"visit_count":  stats.VisitCount,
		"upload_count": stats.UploadCount,
	})
}

func (s *Server) handleVisit(w http.ResponseWriter, r *http.Request) {
	if err := s.statsSvc.RecordVisit(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("failed to record visit")
		writeError(w, http.StatusInternalServerError, "방문 기록 실패")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bossUpsertRequest struct {
	BossName   string `json:"boss_name"`
	Difficulty string `json:"difficulty"`
	GateNumber int    `json:"gate_number"`
	BossHP     int64  `json:"boss_hp"`
}

func (s *Server) handleBossUpsert(w http.ResponseWriter, r *http.Request) {
	var req bossUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "잘못된 요청 본문")
		return
	}
	if req.BossName == "" || req.Difficulty == "" || req.BossHP <= 0 {
		writeError(w, http.StatusBadRequest, "모든 필드가 필요합니다.")
		return
	}

	if err := s.bossSvc.Upsert(r.Context(), req.BossName, req.Difficulty, req.GateNumber, req.BossHP); err != nil {
		s.logger.Error().Err(err).Str("boss_name", req.BossName).Msg("failed to upsert boss")
		writeError(w, http.StatusInternalServerError, "보스 정보 저장 실패")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s (%s, %d관문) 저장 완료", req.BossName, req.Difficulty, req.GateNumber),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
