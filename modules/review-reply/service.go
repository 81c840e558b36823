package reviewreply

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"revup-server/modules/common/database"
	"revup-server/modules/common/fallback"
	"revup-server/modules/common/gemini"
	"revup-server/modules/common/model"
)

// TextGateway - 텍스트 생성 게이트웨이
type TextGateway interface {
	GenerateText(ctx context.Context, prompt string, opts gemini.TextOptions) (string, error)
}

// HistoryStore - 생성 결과 영속화
type HistoryStore interface {
	CreateHistory(ctx context.Context, entry *model.HistoryEntry) (string, error)
}

// TenantProvider - 테넌트 프로필 조회
type TenantProvider interface {
	FetchTenantProfile(ctx context.Context, tenantID string) *model.TenantProfile
}

// Service - 리뷰 답글 생성 서비스
type Service struct {
	gateway TextGateway
	store   HistoryStore
	tenants TenantProvider
}

// NewService - 서비스 초기화
func NewService() *Service {
	gatewayClient := gemini.NewClient()
	if gatewayClient == nil {
		log.Println("❌ [ReviewReply] Gemini 클라이언트 초기화 실패")
		return nil
	}

	dbClient := database.NewClient()
	if dbClient == nil {
		log.Println("❌ [ReviewReply] Database 클라이언트 초기화 실패")
		return nil
	}

	return &Service{
		gateway: gatewayClient,
		store:   dbClient,
		tenants: dbClient,
	}
}

// Generate - 리뷰 답글 파이프라인 실행
// 분석 → 톤 결정 → 답글 작성 → 대체 문구 → 팁 → 저장 (고정 5단계)
func (s *Service) Generate(ctx context.Context, req *ReplyRequest) (*ReplyResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile := s.tenants.FetchTenantProfile(ctx, req.TenantID)

	log.Printf("💬 [ReviewReply] 답글 생성 시작: tenant=%s platform=%s", req.TenantID, req.Platform)

	// 1단계: 분석 (AI 실패 시 로컬 휴리스틱으로 조용히 전환)
	analysis := s.analyze(ctx, req)

	// 2단계: 톤 결정 (요청 톤이 우선, 없으면 분석 추천 톤)
	tone := analysis.SuggestedTone
	if req.Tone != "" {
		tone = req.Tone
	}

	// 3단계: 대표 답글 작성 (필수 단계, 실패하면 파이프라인 실패)
	responsePrompt := BuildResponsePrompt(req, analysis, tone, profile.BusinessName)
	responseText, err := s.gateway.GenerateText(ctx, responsePrompt, gemini.TextOptions{})
	if err != nil {
		log.Printf("❌ [ReviewReply] 답글 생성 실패: %v", err)
		return nil, fmt.Errorf("reply generation failed: %w", err)
	}
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return nil, fmt.Errorf("reply generation failed: empty response")
	}

	// 4단계: 대체 문구 (best-effort, 어떤 실패도 삼킴)
	alternatives := s.generateAlternatives(ctx, responseText)

	// 5단계: 팁 파생 (순수 함수, 실패 없음)
	tips := DeriveTips(analysis)

	// 저장 (필수 단계)
	entryID, err := s.persist(ctx, req, analysis, tone, responseText)
	if err != nil {
		log.Printf("❌ [ReviewReply] 히스토리 저장 실패: %v", err)
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}

	log.Printf("✅ [ReviewReply] 답글 생성 완료: entry=%s tone=%s sentiment=%s", entryID, tone, analysis.Sentiment)

	return &ReplyResult{
		EntryID:      entryID,
		ResponseText: responseText,
		Analysis:     analysis,
		Alternatives: alternatives,
		Tips:         tips,
	}, nil
}

// Regenerate - 톤을 바꿔 파이프라인 전체 재실행
func (s *Service) Regenerate(ctx context.Context, req *ReplyRequest, tone string) (*ReplyResult, error) {
	if !IsValidTone(tone) {
		return nil, fmt.Errorf("unknown tone: %s", tone)
	}
	override := *req
	override.Tone = tone
	return s.Generate(ctx, &override)
}

// analyze - AI 분석 시도, 실패 시 로컬 휴리스틱 폴백
// 호출자는 어느 경로였는지 구분할 수 없음 (동일한 형태 반환)
func (s *Service) analyze(ctx context.Context, req *ReplyRequest) ReviewAnalysis {
	prompt := BuildAnalysisPrompt(req.ReviewText, req.Rating)

	raw, err := s.gateway.GenerateText(ctx, prompt, gemini.TextOptions{})
	if err != nil {
		log.Printf("⚠️ [ReviewReply] AI 분석 실패, 로컬 분석으로 전환: %v", err)
		return AnalyzeLocally(req.ReviewText, req.Rating)
	}

	jsonText, ok := ExtractJSONObject(raw)
	if !ok {
		log.Println("⚠️ [ReviewReply] AI 분석 응답에 JSON 없음, 로컬 분석으로 전환")
		return AnalyzeLocally(req.ReviewText, req.Rating)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		log.Printf("⚠️ [ReviewReply] AI 분석 JSON 파싱 실패, 로컬 분석으로 전환: %v", err)
		return AnalyzeLocally(req.ReviewText, req.Rating)
	}

	return normalizeAnalysis(parsed)
}

// normalizeAnalysis - 파싱된 맵을 기본값 규칙으로 정규화
func normalizeAnalysis(parsed map[string]interface{}) ReviewAnalysis {
	validSentiments := []string{SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed}
	validUrgencies := []string{UrgencyHigh, UrgencyMedium, UrgencyLow}

	return ReviewAnalysis{
		Sentiment:     fallback.SafeOneOf(parsed["sentiment"], validSentiments, DefaultSentiment),
		KeyPoints:     fallback.SafeStringList(parsed["keyPoints"]),
		Complaints:    fallback.SafeStringList(parsed["complaints"]),
		Praises:       fallback.SafeStringList(parsed["praises"]),
		SuggestedTone: fallback.SafeOneOf(parsed["suggestedTone"], ValidTones, DefaultTone),
		Urgency:       fallback.SafeOneOf(parsed["urgency"], validUrgencies, DefaultUrgency),
	}
}

// generateAlternatives - 대체 문구 2개 생성 (모든 실패를 삼키고 빈 목록 반환)
func (s *Service) generateAlternatives(ctx context.Context, responseText string) []string {
	prompt := BuildAlternativesPrompt(responseText)

	raw, err := s.gateway.GenerateText(ctx, prompt, gemini.TextOptions{})
	if err != nil {
		log.Printf("⚠️ [ReviewReply] 대체 문구 생성 실패 (무시): %v", err)
		return []string{}
	}

	jsonText, ok := ExtractJSONArray(raw)
	if !ok {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(jsonText), &list); err != nil {
		return []string{}
	}

	cleaned := make([]string, 0, len(list))
	for _, alt := range list {
		if trimmed := strings.TrimSpace(alt); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	// 계약은 정확히 2개짜리 배열, 모자라면 잘못된 형태로 보고 버림
	if len(cleaned) < 2 {
		return []string{}
	}
	return cleaned[:2]
}

// DeriveTips - 분석 결과에서 어드바이스 팁 파생 (순수 함수)
func DeriveTips(analysis ReviewAnalysis) []string {
	tips := []string{}

	switch analysis.Sentiment {
	case SentimentNegative:
		tips = append(tips,
			"Respond within 24 hours. Speed matters most for negative reviews.",
			"Take the conversation offline: share a direct phone number or email in your reply.",
		)
		if analysis.Urgency == UrgencyHigh {
			tips = append(tips, "This review needs immediate attention. Consider calling the customer today.")
		}
	case SentimentPositive:
		tips = append(tips,
			"Share this review with your team. It's great for morale.",
			"Ask the customer if you can feature their words in your marketing.",
		)
	case SentimentMixed:
		tips = append(tips, "Thank them for the praise first, then address the concern head-on.")
	}

	if len(analysis.Complaints) > 0 {
		tips = append(tips, "Address each complaint point-by-point so the reviewer feels heard.")
	}

	return tips
}

// persist - 답글을 히스토리에 저장하고 entry ID 반환
func (s *Service) persist(ctx context.Context, req *ReplyRequest, analysis ReviewAnalysis, tone, responseText string) (string, error) {
	metadata := map[string]interface{}{
		"originalText": req.ReviewText,
		"sentiment":    analysis.Sentiment,
		"tone":         tone,
	}
	if req.Platform != "" {
		metadata["platform"] = req.Platform
	}
	if req.ReviewerName != "" {
		metadata["reviewerName"] = req.ReviewerName
	}
	if req.Rating != nil {
		metadata["rating"] = *req.Rating
	}

	entry := &model.HistoryEntry{
		TenantID: req.TenantID,
		UserID:   req.UserID,
		Tool:     model.ToolReviewReply,
		Content:  responseText,
		Metadata: metadata,
	}

	return s.store.CreateHistory(ctx, entry)
}
