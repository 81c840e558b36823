package carofday

import (
	"context"
	"fmt"
	"log"
	"strings"

	"revup-server/modules/common/database"
	"revup-server/modules/common/fallback"
	"revup-server/modules/common/model"
	redisutil "revup-server/modules/common/redis"
	"revup-server/modules/live"

	"github.com/redis/go-redis/v9"
)

// ProcessJob - Queue로 들어온 Car of the Day Job 처리
// 동기 Generate와 같은 실패 격리 규칙에 취소 확인과 진행 상황 브로드캐스트가 더해짐
func ProcessJob(ctx context.Context, job *model.GenerationJob, rdb *redis.Client, hub *live.Hub) {
	log.Printf("🚗 [CarOfDay] Starting job processing: %s", job.JobID)

	service := NewService()
	if service == nil {
		log.Printf("❌ [CarOfDay] Failed to initialize service for job: %s", job.JobID)
		failJob(ctx, job, hub, "Failed to initialize car-of-day service")
		return
	}

	req, err := parseJobRequest(job)
	if err != nil {
		log.Printf("❌ [CarOfDay] Invalid job input: %v", err)
		failJob(ctx, job, hub, err.Error())
		return
	}

	dbClient := database.NewClient()
	if err := dbClient.UpdateJobStatus(ctx, job.JobID, model.StatusProcessing); err != nil {
		log.Printf("⚠️ [CarOfDay] Failed to update job status: %v", err)
	}

	variants := req.ResolvedVariants()
	facts, source, ownerRef, err := service.prepare(ctx, req)
	if err != nil {
		failJob(ctx, job, hub, err.Error())
		return
	}

	assets := []GeneratedAsset{}
	failures := []string{}

	for _, tag := range variants {
		// variant마다 취소 플래그 확인
		if redisutil.IsJobCancelled(rdb, job.JobID) {
			log.Printf("🛑 [CarOfDay] Job %s cancelled, stopping at variant %s", job.JobID, tag)
			dbClient.UpdateJobStatus(ctx, job.JobID, model.StatusUserCancelled)
			hub.Broadcast(job.TenantID, live.Event{
				Type:  live.EventJobCancelled,
				JobID: job.JobID,
				Tool:  model.ToolCarOfDay,
			})
			return
		}

		asset, err := service.generateVariant(ctx, VariantSpecs[tag], facts, source, ownerRef, req)
		if err != nil {
			log.Printf("❌ [CarOfDay] Variant %s failed: %v", tag, err)
			failures = append(failures, fmt.Sprintf("%s: %v", tag, err))
		} else {
			log.Printf("✅ [CarOfDay] Variant %s generated: %s", tag, asset.EntryID)
			assets = append(assets, *asset)
		}

		if err := dbClient.UpdateJobProgress(ctx, job.JobID, len(assets)); err != nil {
			log.Printf("⚠️ [CarOfDay] Failed to update progress: %v", err)
		}
		hub.Broadcast(job.TenantID, live.Event{
			Type:           live.EventJobProgress,
			JobID:          job.JobID,
			Tool:           model.ToolCarOfDay,
			Variant:        tag,
			CompletedCount: len(assets),
			TotalCount:     len(variants),
		})
	}

	if len(assets) == 0 {
		failJob(ctx, job, hub, fmt.Sprintf("all variants failed - %s", strings.Join(failures, "; ")))
		return
	}

	result := map[string]interface{}{
		"displayName": facts.DisplayName,
		"assets":      assets,
		"count":       len(assets),
	}
	if len(failures) > 0 {
		result["failures"] = failures
	}

	if err := dbClient.UpdateJobCompleted(ctx, job.JobID, result); err != nil {
		log.Printf("⚠️ [CarOfDay] Failed to mark job completed: %v", err)
	}
	hub.Broadcast(job.TenantID, live.Event{
		Type:           live.EventJobCompleted,
		JobID:          job.JobID,
		Tool:           model.ToolCarOfDay,
		CompletedCount: len(assets),
		TotalCount:     len(variants),
		Payload:        result,
	})

	log.Printf("🎉 [CarOfDay] Job %s completed: %d/%d variants", job.JobID, len(assets), len(variants))
}

// failJob - Job 실패 기록 + 브로드캐스트
func failJob(ctx context.Context, job *model.GenerationJob, hub *live.Hub, message string) {
	dbClient := database.NewClient()
	if dbClient != nil {
		if err := dbClient.UpdateJobFailed(ctx, job.JobID, message); err != nil {
			log.Printf("⚠️ [CarOfDay] Failed to mark job failed: %v", err)
		}
	}
	hub.Broadcast(job.TenantID, live.Event{
		Type:         live.EventJobFailed,
		JobID:        job.JobID,
		Tool:         model.ToolCarOfDay,
		ErrorMessage: message,
	})
}

// parseJobRequest - job_input 맵을 GenerateRequest로 변환
// 프론트가 보낸 느슨한 JSON을 방어적으로 읽음
func parseJobRequest(job *model.GenerationJob) (*GenerateRequest, error) {
	input := job.JobInput
	if input == nil {
		return nil, fmt.Errorf("missing job input")
	}

	req := &GenerateRequest{
		TenantID: job.TenantID,
		UserID:   job.UserID,
	}

	carImage, ok := parseImagePayload(input["carImage"])
	if !ok {
		return nil, fmt.Errorf("car image with base64 data and mime type is required")
	}
	req.CarImage = *carImage

	if ownerImage, ok := parseImagePayload(input["ownerImage"]); ok {
		req.OwnerImage = ownerImage
	}
	if mascot, ok := parseImagePayload(input["mascotImage"]); ok {
		req.MascotImage = mascot
	}
	if logos, ok := input["logoImages"].([]interface{}); ok {
		for _, raw := range logos {
			if logo, ok := parseImagePayload(raw); ok {
				req.LogoImages = append(req.LogoImages, *logo)
			}
		}
	}

	if vehicle, ok := input["vehicle"].(map[string]interface{}); ok {
		req.Vehicle = VehicleInfo{
			Year:     fallback.SafeString(vehicle["year"], ""),
			Make:     fallback.SafeString(vehicle["make"], ""),
			Model:    fallback.SafeString(vehicle["model"], ""),
			Color:    fallback.SafeString(vehicle["color"], ""),
			Nickname: fallback.SafeString(vehicle["nickname"], ""),
		}
	}
	if owner, ok := input["owner"].(map[string]interface{}); ok {
		req.Owner = OwnerInfo{
			Name:   fallback.SafeString(owner["name"], ""),
			Handle: fallback.SafeString(owner["handle"], ""),
		}
	}

	req.Variants = fallback.SafeStringList(input["variants"])
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// parseImagePayload - {base64, mimeType} 맵 파싱
func parseImagePayload(raw interface{}) (*ImagePayload, bool) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, false
	}
	payload := &ImagePayload{
		Base64:   fallback.SafeString(m["base64"], ""),
		MimeType: fallback.SafeString(m["mimeType"], ""),
	}
	if !payload.IsPresent() {
		return nil, false
	}
	return payload, true
}
