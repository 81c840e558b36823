package reviewreply

import "strings"

// 로컬 휴리스틱 분석에 쓰이는 고정 단어 목록
var positiveWords = []string{
	"great", "excellent", "amazing", "awesome", "fantastic", "friendly",
	"honest", "fast", "quick", "professional", "recommend", "helpful",
	"fair", "clean", "courteous", "love", "best", "happy", "thank",
	"perfect", "reliable", "trustworthy",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "rude", "slow", "overpriced",
	"expensive", "dirty", "scam", "dishonest", "worst", "disappointed",
	"disappointing", "broken", "wrong", "waited", "waiting", "never again",
	"ripped off", "unprofessional", "poor", "refund",
}

// AnalyzeLocally - 외부 호출 없이 동작하는 결정적 리뷰 분석
// AI 분석이 실패했을 때의 폴백 경로. 같은 입력에 대해 항상 같은 결과를 낸다.
// total function - 어떤 입력에도 실패하지 않음
func AnalyzeLocally(reviewText string, rating *int) ReviewAnalysis {
	lower := strings.ToLower(reviewText)

	posCount := countOccurrences(lower, positiveWords)
	negCount := countOccurrences(lower, negativeWords)

	sentiment := lexicalSentiment(posCount, negCount)

	// 별점이 있으면 어휘 판정보다 우선
	if rating != nil {
		switch {
		case *rating >= 4:
			sentiment = SentimentPositive
		case *rating <= 2:
			sentiment = SentimentNegative
		default:
			sentiment = SentimentNeutral
		}
	}

	tone := DefaultTone
	switch sentiment {
	case SentimentPositive:
		tone = ToneGrateful
	case SentimentNegative:
		tone = ToneEmpathetic
	}

	urgency := DefaultUrgency
	switch {
	case sentiment == SentimentNegative && ((rating != nil && *rating == 1) || negCount >= 3):
		urgency = UrgencyHigh
	case sentiment == SentimentPositive:
		urgency = UrgencyLow
	}

	return ReviewAnalysis{
		Sentiment:     sentiment,
		KeyPoints:     []string{},
		Complaints:    []string{},
		Praises:       []string{},
		SuggestedTone: tone,
		Urgency:       urgency,
	}
}

// lexicalSentiment - 단어 수 기반 감성 판정 (별점 없을 때)
func lexicalSentiment(posCount, negCount int) string {
	switch {
	case posCount > negCount+1:
		return SentimentPositive
	case negCount > posCount+1:
		return SentimentNegative
	case posCount > 0 && negCount > 0:
		return SentimentMixed
	default:
		return SentimentNeutral
	}
}

// countOccurrences - 소문자 텍스트에서 목록 단어의 등장 횟수 합산
func countOccurrences(lowerText string, words []string) int {
	count := 0
	for _, w := range words {
		count += strings.Count(lowerText, w)
	}
	return count
}
