package worker

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"revup-server/modules/common/config"
	"revup-server/modules/common/database"
	"revup-server/modules/common/model"
	redisClient "revup-server/modules/common/redis"
	"revup-server/modules/live"

	carofday "revup-server/modules/car-of-day"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// EnqueueHandler - 비동기 생성 Job 접수 Handler
type EnqueueHandler struct {
	rdb *redis.Client
	db  *database.Client
	hub *live.Hub
}

// EnqueueRequest - Enqueue 요청
type EnqueueRequest struct {
	Tool     string                 `json:"tool"`
	TenantID string                 `json:"tenantId"`
	UserID   string                 `json:"userId"`
	Input    map[string]interface{} `json:"input"`
}

// EnqueueResponse - Enqueue 응답
type EnqueueResponse struct {
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	JobID         string `json:"jobId,omitempty"`
	Queue         string `json:"queue,omitempty"`
	QueuePosition int64  `json:"queuePosition,omitempty"`
}

// NewEnqueueHandler - EnqueueHandler 생성
func NewEnqueueHandler(hub *live.Hub) *EnqueueHandler {
	cfg := config.GetConfig()

	rdb := redisClient.Connect(cfg)
	if rdb == nil {
		log.Println("⚠️ [Enqueue] Failed to connect to Redis")
		return nil
	}

	dbClient := database.NewClient()
	if dbClient == nil {
		log.Println("⚠️ [Enqueue] Failed to initialize Database client")
		return nil
	}

	log.Println("✅ [Enqueue] Handler initialized with Redis connection")
	return &EnqueueHandler{
		rdb: rdb,
		db:  dbClient,
		hub: hub,
	}
}

// RegisterRoutes - 라우트 등록
func (h *EnqueueHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/enqueue", h.HandleEnqueue).Methods("POST", "OPTIONS")
	log.Println("✅ Enqueue routes registered: /api/enqueue")
}

// HandleEnqueue - POST /api/enqueue
// Job row 생성 → Redis LPUSH → queue 위치 반환
func (h *EnqueueHandler) HandleEnqueue(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Invalid request body"})
		return
	}

	if req.TenantID == "" {
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Tenant ID is required"})
		return
	}
	if req.Tool != model.ToolCarOfDay && req.Tool != model.ToolReviewReply {
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Unknown tool: " + req.Tool})
		return
	}
	if !h.db.IsTenantActive(r.Context(), req.TenantID) {
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Tenant is not active"})
		return
	}

	jobID := uuid.New().String()
	job := &model.GenerationJob{
		JobID:      jobID,
		TenantID:   req.TenantID,
		UserID:     req.UserID,
		Tool:       req.Tool,
		JobStatus:  model.StatusPending,
		JobInput:   req.Input,
		TotalCount: totalCountFor(req),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.db.CreateJob(ctx, job); err != nil {
		log.Printf("❌ [Enqueue] Failed to create job row: %v", err)
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Failed to create job"})
		return
	}

	position, err := h.rdb.LPush(ctx, redisClient.JobQueueKey, jobID).Result()
	if err != nil {
		log.Printf("❌ [Enqueue] Redis LPUSH failed: %v", err)
		h.db.UpdateJobFailed(ctx, jobID, "failed to enqueue job")
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: err.Error()})
		return
	}

	log.Printf("📥 [Enqueue] Job queued: %s (tool: %s, position: %d)", jobID, req.Tool, position)

	h.hub.Broadcast(req.TenantID, live.Event{
		Type:       live.EventJobQueued,
		JobID:      jobID,
		Tool:       req.Tool,
		TotalCount: job.TotalCount,
	})

	json.NewEncoder(w).Encode(EnqueueResponse{
		Success:       true,
		JobID:         jobID,
		Queue:         redisClient.JobQueueKey,
		QueuePosition: position,
	})
}

// totalCountFor - tool별 진행 단위 수
// car_of_day는 variant 수, review_reply는 항상 1
func totalCountFor(req EnqueueRequest) int {
	if req.Tool == model.ToolReviewReply {
		return 1
	}
	if variants, ok := req.Input["variants"].([]interface{}); ok && len(variants) > 0 {
		return len(variants)
	}
	return len(carofday.DefaultVariants)
}
