package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"revup-server/modules/common/config"
	"revup-server/modules/common/model"
)

type Client struct {
	supabase *supabase.Client
}

// NewClient - Database 클라이언트 생성
func NewClient() *Client {
	cfg := config.GetConfig()

	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("❌ Failed to create Supabase client: %v", err)
		return nil
	}

	return &Client{
		supabase: supabaseClient,
	}
}

// CreateHistory - revup_history 레코드 생성, entry_id 반환
func (c *Client) CreateHistory(ctx context.Context, entry *model.HistoryEntry) (string, error) {
	log.Printf("💾 Creating history entry: tenant=%s, tool=%s", entry.TenantID, entry.Tool)

	insertData := map[string]interface{}{
		"tenant_id": entry.TenantID,
		"user_id":   entry.UserID,
		"tool":      entry.Tool,
		"content":   entry.Content,
		"metadata":  entry.Metadata,
	}

	data, _, err := c.supabase.From("revup_history").
		Insert(insertData, false, "", "", "").
		Execute()

	if err != nil {
		return "", fmt.Errorf("failed to insert history entry: %w", err)
	}

	var rows []model.HistoryEntry
	if err := json.Unmarshal(data, &rows); err != nil {
		return "", fmt.Errorf("failed to parse history response: %w", err)
	}

	if len(rows) == 0 {
		return "", fmt.Errorf("no history row returned")
	}

	log.Printf("✅ History entry created: %s", rows[0].EntryID)
	return rows[0].EntryID, nil
}

// ListHistory - 테넌트의 히스토리 조회 (최신순)
// tool이 빈 문자열이면 전체 툴 조회
func (c *Client) ListHistory(ctx context.Context, tenantID, tool string, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := c.supabase.From("revup_history").
		Select("*", "exact", false).
		Eq("tenant_id", tenantID)

	if tool != "" {
		query = query.Eq("tool", tool)
	}

	data, _, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	var rows []model.HistoryEntry
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse history rows: %w", err)
	}

	return rows, nil
}

// FindHistory - entry_id + tenant_id로 단일 히스토리 조회
func (c *Client) FindHistory(ctx context.Context, tenantID, entryID string) (*model.HistoryEntry, error) {
	data, _, err := c.supabase.From("revup_history").
		Select("*", "exact", false).
		Eq("tenant_id", tenantID).
		Eq("entry_id", entryID).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query history entry: %w", err)
	}

	var rows []model.HistoryEntry
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse history entry: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// DeleteHistory - 히스토리 삭제 (테넌트 스코프)
func (c *Client) DeleteHistory(ctx context.Context, tenantID, entryID string) error {
	log.Printf("🗑️  Deleting history entry: %s (tenant: %s)", entryID, tenantID)

	_, _, err := c.supabase.From("revup_history").
		Delete("", "").
		Eq("tenant_id", tenantID).
		Eq("entry_id", entryID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	log.Printf("✅ History entry deleted: %s", entryID)
	return nil
}

// FetchTenantProfile - revup_tenant에서 브랜딩 정보 조회
// 조회 실패/미존재 시 기본값 프로필 반환 (절대 에러로 실패하지 않음)
func (c *Client) FetchTenantProfile(ctx context.Context, tenantID string) *model.TenantProfile {
	cfg := config.GetConfig()

	fallbackProfile := &model.TenantProfile{
		TenantID:     tenantID,
		BusinessName: cfg.DefaultBusinessName,
		Location:     cfg.DefaultLocation,
		TenantStatus: model.TenantStatusActive,
	}

	if tenantID == "" {
		return fallbackProfile
	}

	data, _, err := c.supabase.From("revup_tenant").
		Select("*", "exact", false).
		Eq("tenant_id", tenantID).
		Execute()

	if err != nil {
		log.Printf("⚠️ [Tenant] Failed to fetch profile for %s: %v", tenantID, err)
		return fallbackProfile
	}

	var tenants []model.TenantProfile
	if err := json.Unmarshal(data, &tenants); err != nil {
		log.Printf("⚠️ [Tenant] Failed to parse profile for %s: %v", tenantID, err)
		return fallbackProfile
	}

	if len(tenants) == 0 {
		log.Printf("⚠️ [Tenant] Tenant not found: %s, using defaults", tenantID)
		return fallbackProfile
	}

	profile := &tenants[0]
	if profile.BusinessName == "" {
		profile.BusinessName = cfg.DefaultBusinessName
	}
	if profile.Location == "" {
		profile.Location = cfg.DefaultLocation
	}

	log.Printf("✅ [Tenant] Profile loaded: %s (%s)", profile.BusinessName, profile.TenantID)
	return profile
}

// IsTenantActive - 테넌트가 active 상태인지 확인
func (c *Client) IsTenantActive(ctx context.Context, tenantID string) bool {
	if tenantID == "" {
		return false
	}

	var tenants []struct {
		TenantStatus string `json:"tenant_status"`
	}

	data, _, err := c.supabase.From("revup_tenant").
		Select("tenant_status", "", false).
		Eq("tenant_id", tenantID).
		Execute()

	if err != nil {
		log.Printf("⚠️ [Tenant] Failed to check tenant_status for %s: %v", tenantID, err)
		return false
	}

	if err := json.Unmarshal(data, &tenants); err != nil {
		log.Printf("⚠️ [Tenant] Failed to parse tenant data for %s: %v", tenantID, err)
		return false
	}

	if len(tenants) == 0 {
		return false
	}

	return tenants[0].TenantStatus == model.TenantStatusActive
}

// FetchJob - revup_jobs에서 Job 조회
func (c *Client) FetchJob(ctx context.Context, jobID string) (*model.GenerationJob, error) {
	log.Printf("🔍 Fetching job from Supabase: %s", jobID)

	var jobs []model.GenerationJob

	data, _, err := c.supabase.From("revup_jobs").
		Select("*", "exact", false).
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query revup_jobs: %w", err)
	}

	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse job response: %w", err)
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	job := &jobs[0]
	log.Printf("✅ Job fetched: %s (tool: %s, status: %s)", job.JobID, job.Tool, job.JobStatus)
	return job, nil
}

// CreateJob - revup_jobs 레코드 생성 (enqueue 시)
func (c *Client) CreateJob(ctx context.Context, job *model.GenerationJob) error {
	insertData := map[string]interface{}{
		"job_id":      job.JobID,
		"tenant_id":   job.TenantID,
		"user_id":     job.UserID,
		"tool":        job.Tool,
		"job_status":  model.StatusPending,
		"job_input":   job.JobInput,
		"total_count": job.TotalCount,
	}

	_, _, err := c.supabase.From("revup_jobs").
		Insert(insertData, false, "", "", "").
		Execute()

	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	log.Printf("✅ Job created: %s (tool: %s)", job.JobID, job.Tool)
	return nil
}

// UpdateJobStatus - Job 상태 업데이트
func (c *Client) UpdateJobStatus(ctx context.Context, jobID string, status string) error {
	log.Printf("📝 Updating job %s status to: %s", jobID, status)

	updateData := map[string]interface{}{
		"job_status": status,
		"updated_at": "now()",
	}

	if status == model.StatusProcessing {
		updateData["started_at"] = "now()"
	} else if status == model.StatusCompleted || status == model.StatusFailed {
		updateData["completed_at"] = "now()"
	}

	_, _, err := c.supabase.From("revup_jobs").
		Update(updateData, "", "").
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	return nil
}

// UpdateJobProgress - Job 진행 상황 업데이트
func (c *Client) UpdateJobProgress(ctx context.Context, jobID string, completedCount int) error {
	updateData := map[string]interface{}{
		"completed_count": completedCount,
		"updated_at":      "now()",
	}

	_, _, err := c.supabase.From("revup_jobs").
		Update(updateData, "", "").
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to update job progress: %w", err)
	}

	return nil
}

// UpdateJobCompleted - Job 완료 처리 (결과 포함)
func (c *Client) UpdateJobCompleted(ctx context.Context, jobID string, result map[string]interface{}) error {
	updateData := map[string]interface{}{
		"job_status":   model.StatusCompleted,
		"result":       result,
		"completed_at": "now()",
		"updated_at":   "now()",
	}

	_, _, err := c.supabase.From("revup_jobs").
		Update(updateData, "", "").
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to update job completed: %w", err)
	}

	log.Printf("✅ Job %s marked completed", jobID)
	return nil
}

// UpdateJobFailed - Job 실패 처리
func (c *Client) UpdateJobFailed(ctx context.Context, jobID string, errorMsg string) error {
	updateData := map[string]interface{}{
		"job_status":    model.StatusFailed,
		"error_message": errorMsg,
		"completed_at":  "now()",
		"updated_at":    "now()",
	}

	_, _, err := c.supabase.From("revup_jobs").
		Update(updateData, "", "").
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to update job failed: %w", err)
	}

	log.Printf("❌ Job %s marked failed: %s", jobID, errorMsg)
	return nil
}
