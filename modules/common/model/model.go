package model

import "time"

// Tool 태그 - revup_history.tool / revup_jobs.tool 값
const (
	ToolCarOfDay    = "car_of_day"
	ToolReviewReply = "review_reply"
)

// Job 상태 상수
const (
	StatusPending       = "pending"
	StatusProcessing    = "processing"
	StatusCompleted     = "completed"
	StatusFailed        = "failed"
	StatusUserCancelled = "user_cancelled"
)

// HistoryEntry - revup_history 테이블 구조
// 생성된 컨텐츠(이미지 URL 또는 답글 텍스트)와 메타데이터를 보관
type HistoryEntry struct {
	EntryID   string                 `json:"entry_id,omitempty"`
	TenantID  string                 `json:"tenant_id"`
	UserID    string                 `json:"user_id"`
	Tool      string                 `json:"tool"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at,omitempty"`
}

// TenantProfile - revup_tenant 테이블 구조 (브랜딩 컨텍스트)
type TenantProfile struct {
	TenantID     string `json:"tenant_id"`
	BusinessName string `json:"business_name"`
	Location     string `json:"location"`
	TenantStatus string `json:"tenant_status"`
}

// Tenant 상태 상수
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
	TenantStatusDeleted   = "deleted"
)

// GenerationJob - revup_jobs 테이블 구조 (비동기 Queue 처리용)
type GenerationJob struct {
	JobID           string                 `json:"job_id"`
	TenantID        string                 `json:"tenant_id"`
	UserID          string                 `json:"user_id"`
	Tool            string                 `json:"tool"`
	JobStatus       string                 `json:"job_status"`
	JobInput        map[string]interface{} `json:"job_input"`
	Result          map[string]interface{} `json:"result,omitempty"`
	ErrorMessage    *string                `json:"error_message"`
	CompletedCount  int                    `json:"completed_count"`
	TotalCount      int                    `json:"total_count"`
	CreatedAt       time.Time              `json:"created_at"`
	StartedAt       *time.Time             `json:"started_at"`
	CompletedAt     *time.Time             `json:"completed_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
