package reviewreply

import (
	"fmt"
	"strings"
)

// BuildAnalysisPrompt - 리뷰 분석용 프롬프트 (JSON 계약 포함)
func BuildAnalysisPrompt(reviewText string, rating *int) string {
	var sb strings.Builder

	sb.WriteString("You are analyzing a customer review left for an auto service business.\n\n")
	sb.WriteString("REVIEW:\n")
	sb.WriteString(reviewText)
	sb.WriteString("\n")
	if rating != nil {
		sb.WriteString(fmt.Sprintf("STAR RATING: %d out of 5\n", *rating))
	}
	sb.WriteString("\nRespond with ONLY a JSON object in this exact shape, no markdown, no commentary:\n")
	sb.WriteString(`{
  "sentiment": "positive|negative|neutral|mixed",
  "keyPoints": ["short phrases the reviewer emphasized"],
  "complaints": ["specific complaints, empty array if none"],
  "praises": ["specific praises, empty array if none"],
  "suggestedTone": "professional|friendly|grateful|empathetic|apologetic",
  "urgency": "high|medium|low"
}`)
	sb.WriteString("\n")

	return sb.String()
}

// BuildResponsePrompt - 대표 답글 작성용 프롬프트
func BuildResponsePrompt(req *ReplyRequest, analysis ReviewAnalysis, tone, businessName string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Write a public reply from %s, an auto service business, to the customer review below.\n\n", businessName))

	sb.WriteString("REVIEW:\n")
	sb.WriteString(req.ReviewText)
	sb.WriteString("\n")
	if req.Rating != nil {
		sb.WriteString(fmt.Sprintf("STAR RATING: %d out of 5\n", *req.Rating))
	}
	sb.WriteString("\n")

	sb.WriteString("ANALYSIS:\n")
	sb.WriteString(fmt.Sprintf("- Sentiment: %s\n", analysis.Sentiment))
	if len(analysis.Complaints) > 0 {
		sb.WriteString(fmt.Sprintf("- Complaints to address: %s\n", strings.Join(analysis.Complaints, "; ")))
	}
	if len(analysis.Praises) > 0 {
		sb.WriteString(fmt.Sprintf("- Praises to acknowledge: %s\n", strings.Join(analysis.Praises, "; ")))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIREMENTS:\n")
	sb.WriteString(fmt.Sprintf("- Tone: %s\n", tone))
	if req.ReviewerName != "" {
		sb.WriteString(fmt.Sprintf("- Address the reviewer by name: %s\n", req.ReviewerName))
	} else {
		sb.WriteString("- Do not invent a name for the reviewer, open with a generic greeting\n")
	}
	if req.Platform != "" {
		sb.WriteString(fmt.Sprintf("- This reply will be posted publicly on %s\n", req.Platform))
	}
	if req.ServiceMention != "" {
		sb.WriteString(fmt.Sprintf("- Mention this service naturally: %s\n", req.ServiceMention))
	}
	for _, point := range req.ExtraPoints {
		sb.WriteString(fmt.Sprintf("- Also cover: %s\n", point))
	}
	if shouldIncludeOffer(req, analysis) {
		sb.WriteString("- Offer to make things right (a follow-up visit or a direct conversation), without promising specific discounts\n")
	}
	if shouldInviteBack(req) {
		sb.WriteString("- Warmly invite the customer to come back\n")
	}
	sb.WriteString("- Keep it to 3-5 sentences, sign off with the business name\n")
	sb.WriteString("- Output ONLY the reply text, nothing else\n")

	return sb.String()
}

// BuildAlternativesPrompt - 대체 문구 2개 요청용 프롬프트
func BuildAlternativesPrompt(responseText string) string {
	var sb strings.Builder

	sb.WriteString("Here is a reply to a customer review:\n\n")
	sb.WriteString(responseText)
	sb.WriteString("\n\nWrite exactly 2 alternative versions of this reply with different wording but the same meaning and tone.\n")
	sb.WriteString("Respond with ONLY a JSON array of 2 strings, no markdown, no commentary.\n")

	return sb.String()
}

// shouldIncludeOffer - 보상 제안 포함 여부
// 명시적 지정이 우선, 없으면 부정 리뷰일 때만 포함
func shouldIncludeOffer(req *ReplyRequest, analysis ReviewAnalysis) bool {
	if req.IncludeOffer != nil {
		return *req.IncludeOffer
	}
	return analysis.Sentiment == SentimentNegative
}

// shouldInviteBack - 재방문 권유 포함 여부 (기본 포함)
func shouldInviteBack(req *ReplyRequest) bool {
	if req.InviteBack != nil {
		return *req.InviteBack
	}
	return true
}
