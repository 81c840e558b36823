package reviewreply

import (
	"fmt"
	"strings"
)

// Sentiment 값 - 닫힌 집합
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

// Tone 값 - 닫힌 집합 (5종)
const (
	ToneProfessional = "professional"
	ToneFriendly     = "friendly"
	ToneGrateful     = "grateful"
	ToneEmpathetic   = "empathetic"
	ToneApologetic   = "apologetic"
)

// Urgency 값
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// 파싱/폴백 시 필드 기본값
const (
	DefaultSentiment = SentimentNeutral
	DefaultTone      = ToneProfessional
	DefaultUrgency   = UrgencyMedium
)

// ValidTones - 요청/응답에서 허용되는 톤 집합
var ValidTones = []string{ToneProfessional, ToneFriendly, ToneGrateful, ToneEmpathetic, ToneApologetic}

// IsValidTone - 유효한 톤인지 확인
func IsValidTone(tone string) bool {
	for _, t := range ValidTones {
		if t == tone {
			return true
		}
	}
	return false
}

// ReplyRequest - 리뷰 답글 생성 요청
type ReplyRequest struct {
	// 리뷰 원문 (필수, 공백만 있으면 안 됨)
	ReviewText string `json:"reviewText"`

	// 작성자 이름 (선택)
	ReviewerName string `json:"reviewerName,omitempty"`

	// 별점 1~5 (선택)
	Rating *int `json:"rating,omitempty"`

	// 플랫폼 태그 (google, yelp 등 - 선택)
	Platform string `json:"platform,omitempty"`

	// 원하는 톤 (선택, 없으면 분석 결과의 추천 톤 사용)
	Tone string `json:"tone,omitempty"`

	// 보상 제안 포함 여부 (nil이면 부정 리뷰일 때만 포함)
	IncludeOffer *bool `json:"includeOffer,omitempty"`

	// 재방문 권유 포함 여부 (nil이면 포함)
	InviteBack *bool `json:"inviteBack,omitempty"`

	// 언급할 서비스명 (선택)
	ServiceMention string `json:"serviceMention,omitempty"`

	// 추가로 다룰 포인트 (선택)
	ExtraPoints []string `json:"extraPoints,omitempty"`

	// 테넌트/사용자 식별
	TenantID string `json:"tenantId"`
	UserID   string `json:"userId"`
}

// Validate - 생성 시도 전 요청 검증
func (r *ReplyRequest) Validate() error {
	if strings.TrimSpace(r.ReviewText) == "" {
		return fmt.Errorf("review text is required")
	}
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if r.Tone != "" && !IsValidTone(r.Tone) {
		return fmt.Errorf("unknown tone: %s", r.Tone)
	}
	return nil
}

// ReviewAnalysis - 리뷰 분석 결과
// AI 경로와 로컬 휴리스틱 경로 모두 동일한 이 형태를 반환 (호출자가 출처를 구분할 수 없음)
type ReviewAnalysis struct {
	Sentiment     string   `json:"sentiment"`
	KeyPoints     []string `json:"keyPoints"`
	Complaints    []string `json:"complaints"`
	Praises       []string `json:"praises"`
	SuggestedTone string   `json:"suggestedTone"`
	Urgency       string   `json:"urgency"`
}

// ReplyResult - 생성된 답글 집계
type ReplyResult struct {
	// History Store가 발급한 ID
	EntryID string `json:"entryId"`

	// 대표 답글 텍스트
	ResponseText string `json:"responseText"`

	// 사용된 분석 결과
	Analysis ReviewAnalysis `json:"analysis"`

	// 대체 문구 (best-effort, 비어있을 수 있음)
	Alternatives []string `json:"alternatives"`

	// 어드바이스 팁 (순수 파생, 차단 없음)
	Tips []string `json:"tips"`
}

// ReplyResponse - HTTP 응답
type ReplyResponse struct {
	Success      bool         `json:"success"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
	ErrorCode    string       `json:"errorCode,omitempty"`
	Reply        *ReplyResult `json:"reply,omitempty"`
}

// Error codes
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeTextRequired   = "TEXT_REQUIRED"
	ErrCodeInvalidTone    = "INVALID_TONE"
	ErrCodeGenerateFailed = "GENERATE_FAILED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)
