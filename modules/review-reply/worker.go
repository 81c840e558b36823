package reviewreply

import (
	"context"
	"fmt"
	"log"

	"revup-server/modules/common/database"
	"revup-server/modules/common/fallback"
	"revup-server/modules/common/model"
	redisutil "revup-server/modules/common/redis"
	"revup-server/modules/live"

	"github.com/redis/go-redis/v9"
)

// ProcessJob - Queue로 들어온 Review Reply Job 처리
func ProcessJob(ctx context.Context, job *model.GenerationJob, rdb *redis.Client, hub *live.Hub) {
	log.Printf("💬 [ReviewReply] Starting job processing: %s", job.JobID)

	service := NewService()
	if service == nil {
		log.Printf("❌ [ReviewReply] Failed to initialize service for job: %s", job.JobID)
		failJob(ctx, job, hub, "Failed to initialize review-reply service")
		return
	}

	req, err := parseJobRequest(job)
	if err != nil {
		log.Printf("❌ [ReviewReply] Invalid job input: %v", err)
		failJob(ctx, job, hub, err.Error())
		return
	}

	dbClient := database.NewClient()
	if err := dbClient.UpdateJobStatus(ctx, job.JobID, model.StatusProcessing); err != nil {
		log.Printf("⚠️ [ReviewReply] Failed to update job status: %v", err)
	}

	if redisutil.IsJobCancelled(rdb, job.JobID) {
		log.Printf("🛑 [ReviewReply] Job %s cancelled before start", job.JobID)
		dbClient.UpdateJobStatus(ctx, job.JobID, model.StatusUserCancelled)
		hub.Broadcast(job.TenantID, live.Event{
			Type:  live.EventJobCancelled,
			JobID: job.JobID,
			Tool:  model.ToolReviewReply,
		})
		return
	}

	result, err := service.Generate(ctx, req)
	if err != nil {
		failJob(ctx, job, hub, err.Error())
		return
	}

	payload := map[string]interface{}{
		"entryId":      result.EntryID,
		"responseText": result.ResponseText,
		"analysis":     result.Analysis,
		"alternatives": result.Alternatives,
		"tips":         result.Tips,
	}
	if err := dbClient.UpdateJobCompleted(ctx, job.JobID, payload); err != nil {
		log.Printf("⚠️ [ReviewReply] Failed to mark job completed: %v", err)
	}
	hub.Broadcast(job.TenantID, live.Event{
		Type:           live.EventJobCompleted,
		JobID:          job.JobID,
		Tool:           model.ToolReviewReply,
		CompletedCount: 1,
		TotalCount:     1,
		Payload:        payload,
	})

	log.Printf("🎉 [ReviewReply] Job %s completed: entry=%s", job.JobID, result.EntryID)
}

// failJob - Job 실패 기록 + 브로드캐스트
func failJob(ctx context.Context, job *model.GenerationJob, hub *live.Hub, message string) {
	dbClient := database.NewClient()
	if dbClient != nil {
		if err := dbClient.UpdateJobFailed(ctx, job.JobID, message); err != nil {
			log.Printf("⚠️ [ReviewReply] Failed to mark job failed: %v", err)
		}
	}
	hub.Broadcast(job.TenantID, live.Event{
		Type:         live.EventJobFailed,
		JobID:        job.JobID,
		Tool:         model.ToolReviewReply,
		ErrorMessage: message,
	})
}

// parseJobRequest - job_input 맵을 ReplyRequest로 변환
func parseJobRequest(job *model.GenerationJob) (*ReplyRequest, error) {
	input := job.JobInput
	if input == nil {
		return nil, fmt.Errorf("missing job input")
	}

	req := &ReplyRequest{
		TenantID:       job.TenantID,
		UserID:         job.UserID,
		ReviewText:     fallback.SafeString(input["reviewText"], ""),
		ReviewerName:   fallback.SafeString(input["reviewerName"], ""),
		Platform:       fallback.SafeString(input["platform"], ""),
		Tone:           fallback.SafeOneOf(input["tone"], ValidTones, ""),
		ServiceMention: fallback.SafeString(input["serviceMention"], ""),
		ExtraPoints:    fallback.SafeStringList(input["extraPoints"]),
		Rating:         fallback.SafeRating(input["rating"]),
	}

	if raw, ok := input["includeOffer"].(bool); ok {
		req.IncludeOffer = &raw
	}
	if raw, ok := input["inviteBack"].(bool); ok {
		req.InviteBack = &raw
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
