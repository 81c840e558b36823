package worker

import (
	"context"
	"log"
	"time"

	carofday "revup-server/modules/car-of-day"
	"revup-server/modules/common/config"
	"revup-server/modules/common/database"
	"revup-server/modules/common/model"
	redisClient "revup-server/modules/common/redis"
	"revup-server/modules/live"
	reviewreply "revup-server/modules/review-reply"

	"github.com/redis/go-redis/v9"
)

// StartWorker - Redis Queue Worker 시작
// Queue에서 job ID를 꺼내 tool별 모듈로 라우팅
func StartWorker(hub *live.Hub) {
	log.Println("🔄 Redis Queue Worker starting...")

	cfg := config.GetConfig()

	rdb := redisClient.Connect(cfg)
	if rdb == nil {
		log.Fatal("❌ Failed to connect to Redis")
		return
	}
	log.Println("✅ Redis connected successfully")

	dbClient := database.NewClient()
	if dbClient == nil {
		log.Fatal("❌ Failed to initialize Database client")
		return
	}

	log.Printf("👀 Watching queue: %s", redisClient.JobQueueKey)

	ctx := context.Background()

	// 무한 루프로 Queue 감시
	for {
		// Job 받기 (BRPOP - Blocking Right Pop)
		result, err := rdb.BRPop(ctx, 0, redisClient.JobQueueKey).Result()
		if err != nil {
			log.Printf("❌ Redis BRPOP error: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		// result[0]은 queue 키, result[1]이 실제 job_id
		jobID := result[1]
		log.Printf("🎯 Received new job: %s", jobID)

		// Job 처리 (goroutine으로 비동기)
		go processJob(ctx, dbClient, rdb, hub, jobID)
	}
}

// processJob - Job 조회 후 tool 기반 라우팅
func processJob(ctx context.Context, dbClient *database.Client, rdb *redis.Client, hub *live.Hub, jobID string) {
	log.Printf("🚀 Processing job: %s", jobID)

	job, err := dbClient.FetchJob(ctx, jobID)
	if err != nil {
		log.Printf("❌ Failed to fetch job %s: %v", jobID, err)
		return
	}

	log.Printf("📦 Job: id=%s tool=%s status=%s tenant=%s",
		job.JobID, job.Tool, job.JobStatus, job.TenantID)

	// 이미 취소된 Job은 건너뜀
	if job.JobStatus == model.StatusUserCancelled {
		log.Printf("🛑 Job %s already cancelled, skipping", jobID)
		return
	}

	switch job.Tool {
	case model.ToolCarOfDay:
		log.Printf("🚗 Routing to Car of the Day module")
		carofday.ProcessJob(ctx, job, rdb, hub)

	case model.ToolReviewReply:
		log.Printf("💬 Routing to Review Reply module")
		reviewreply.ProcessJob(ctx, job, rdb, hub)

	default:
		log.Printf("⚠️ Unknown tool: %s, marking job failed", job.Tool)
		if err := dbClient.UpdateJobFailed(ctx, jobID, "unknown tool: "+job.Tool); err != nil {
			log.Printf("⚠️ Failed to mark job failed: %v", err)
		}
	}

	log.Printf("✅ Job %s processing completed", jobID)
}
