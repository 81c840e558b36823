package worker

import (
	"encoding/json"
	"log"
	"net/http"

	"revup-server/modules/common/config"
	"revup-server/modules/common/database"
	"revup-server/modules/common/model"
	redisutil "revup-server/modules/common/redis"
	"revup-server/modules/live"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// CancelHandler - Job 취소 API 핸들러
type CancelHandler struct {
	rdb *redis.Client
	db  *database.Client
	hub *live.Hub
}

// NewCancelHandler - 핸들러 생성
func NewCancelHandler(hub *live.Hub) *CancelHandler {
	cfg := config.GetConfig()
	if cfg == nil {
		log.Println("❌ [CancelHandler] Failed to get config")
		return nil
	}

	rdb := redisutil.Connect(cfg)
	if rdb == nil {
		log.Println("❌ [CancelHandler] Failed to connect to Redis")
		return nil
	}

	dbClient := database.NewClient()
	if dbClient == nil {
		log.Println("❌ [CancelHandler] Failed to initialize Database client")
		return nil
	}

	return &CancelHandler{
		rdb: rdb,
		db:  dbClient,
		hub: hub,
	}
}

// RegisterRoutes - 라우트 등록
func (h *CancelHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/jobs/{jobId}/cancel", h.CancelJob).Methods("POST", "OPTIONS")
	log.Println("✅ [CancelHandler] Routes registered: POST /api/jobs/{jobId}/cancel")
}

// CancelJob - POST /api/jobs/{jobId}/cancel
// Redis 취소 플래그 설정 후 Job row 상태 갱신
func (h *CancelHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	jobID := mux.Vars(r)["jobId"]
	if jobID == "" {
		http.Error(w, `{"error": "jobId is required"}`, http.StatusBadRequest)
		return
	}

	log.Printf("🛑 [CancelHandler] Cancel requested for job: %s", jobID)

	job, err := h.db.FetchJob(r.Context(), jobID)
	if err != nil {
		log.Printf("❌ [CancelHandler] Job not found: %s", jobID)
		http.Error(w, `{"error": "Job not found"}`, http.StatusNotFound)
		return
	}

	// 이미 끝난 Job은 취소 불가
	if job.JobStatus == model.StatusCompleted || job.JobStatus == model.StatusFailed || job.JobStatus == model.StatusUserCancelled {
		log.Printf("⚠️ [CancelHandler] Job already %s: %s", job.JobStatus, jobID)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":        false,
			"message":        "Job already " + job.JobStatus,
			"jobId":          jobID,
			"jobStatus":      job.JobStatus,
			"completedCount": job.CompletedCount,
		})
		return
	}

	// 1. Redis에 취소 플래그 설정 (worker가 variant 경계에서 확인)
	if err := redisutil.MarkJobCancelled(h.rdb, jobID); err != nil {
		log.Printf("❌ [CancelHandler] Failed to set cancel flag: %v", err)
		http.Error(w, `{"error": "Failed to set cancel flag"}`, http.StatusInternalServerError)
		return
	}

	// 2. 아직 pending이면 worker가 집기 전에 바로 상태 갱신
	if job.JobStatus == model.StatusPending {
		if err := h.db.UpdateJobStatus(r.Context(), jobID, model.StatusUserCancelled); err != nil {
			log.Printf("⚠️ [CancelHandler] Failed to update job status: %v", err)
		}
		h.hub.Broadcast(job.TenantID, live.Event{
			Type:  live.EventJobCancelled,
			JobID: jobID,
			Tool:  job.Tool,
		})
	}

	log.Printf("✅ [CancelHandler] Cancel flag set for job: %s (status: %s, completed: %d)",
		jobID, job.JobStatus, job.CompletedCount)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":        true,
		"message":        "Cancel request sent. Job will stop at the next variant boundary.",
		"jobId":          jobID,
		"currentStatus":  job.JobStatus,
		"completedCount": job.CompletedCount,
		"totalCount":     job.TotalCount,
	})
}
