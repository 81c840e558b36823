package worker

import (
	"encoding/json"
	"log"
	"net/http"

	"revup-server/modules/common/database"

	"github.com/gorilla/mux"
)

// StatusHandler - Job 상태 조회 핸들러
type StatusHandler struct {
	db *database.Client
}

func NewStatusHandler() *StatusHandler {
	dbClient := database.NewClient()
	if dbClient == nil {
		log.Println("❌ [StatusHandler] Failed to initialize Database client")
		return nil
	}
	return &StatusHandler{db: dbClient}
}

// RegisterRoutes - 라우트 등록
func (h *StatusHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/jobs/{jobId}", h.JobStatus).Methods("GET", "OPTIONS")
	log.Println("✅ [StatusHandler] Routes registered: GET /api/jobs/{jobId}")
}

// JobStatus - GET /api/jobs/{jobId}
// 폴링 클라이언트용 (WebSocket 없이도 진행 상황 확인 가능)
func (h *StatusHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	jobID := mux.Vars(r)["jobId"]

	job, err := h.db.FetchJob(r.Context(), jobID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Job not found",
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"job":     job,
	})
}
