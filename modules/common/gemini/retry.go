package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	maxAttemptsPerKey = 3
	retryBackoff      = 2 * time.Second
)

// GenerateContentWithRetry - 429(쿼터) 에러 시 키 로테이션으로 재시도하는 헬퍼
// 키 순서대로 시도하고, 각 키당 최대 maxAttemptsPerKey번 재시도.
// 429가 아닌 에러는 재시도 없이 즉시 반환.
func GenerateContentWithRetry(
	ctx context.Context,
	apiKeys []string,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {

	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("no API keys provided")
	}

	var lastErr error

	for keyIndex, apiKey := range apiKeys {
		result, err := tryWithKey(ctx, apiKey, keyIndex, model, contents, config)
		if err == nil {
			return result, nil
		}

		lastErr = err

		// 429가 아닌 에러는 키를 바꿔도 소용없음
		if !isQuotaError(err) {
			return nil, err
		}

		log.Printf("⚠️  [Gemini Retry] Key #%d/%d exhausted, trying next key...", keyIndex+1, len(apiKeys))
	}

	return nil, fmt.Errorf("all %d API keys exhausted: %w", len(apiKeys), lastErr)
}

// tryWithKey - 단일 키로 재시도 포함 호출
func tryWithKey(
	ctx context.Context,
	apiKey string,
	keyIndex int,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {

	var lastErr error

	for attempt := 1; attempt <= maxAttemptsPerKey; attempt++ {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Printf("⚠️  [Gemini Retry] Failed to create client with key #%d: %v", keyIndex+1, err)
			lastErr = err
			continue
		}

		result, err := client.Models.GenerateContent(ctx, model, contents, config)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !isQuotaError(err) {
			return nil, err
		}

		log.Printf("⚠️  [Gemini Retry] Key #%d hit rate limit (attempt %d/%d)", keyIndex+1, attempt, maxAttemptsPerKey)

		if attempt < maxAttemptsPerKey {
			time.Sleep(retryBackoff)
		}
	}

	return nil, lastErr
}

// isQuotaError - 429 Rate Limit / 쿼터 에러인지 확인
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
