package fallback

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SafeString - 앞뒤 공백을 제거한 문자열 또는 기본값 반환
func SafeString(value interface{}, fallbackValue string) string {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return fallbackValue
}

// SafeInt - 흔한 숫자 형태들을 int로 변환 (실패 시 기본값)
func SafeInt(value interface{}, fallbackValue int) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := strconv.Atoi(v.String()); err == nil {
			return n
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallbackValue
}

// SafeBool - bool 또는 "true"/"false" 문자열 파싱 (실패 시 기본값)
func SafeBool(value interface{}, fallbackValue bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallbackValue
}

// SafeRating - 별점 파싱. 1~5 범위를 벗어나거나 없으면 nil
func SafeRating(value interface{}) *int {
	n := SafeInt(value, 0)
	if n < 1 || n > 5 {
		return nil
	}
	return &n
}

// SafeStringList - []interface{} 형태의 JSONB 배열을 []string으로 변환
// 빈 문자열 항목은 버림, 실패 시 빈 리스트
func SafeStringList(value interface{}) []string {
	out := []string{}

	switch v := value.(type) {
	case []string:
		for _, item := range v {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

// SafeOneOf - 닫힌 후보 집합 안의 값인지 확인 (아니면 기본값)
func SafeOneOf(value interface{}, allowed []string, fallbackValue string) string {
	s := SafeString(value, "")
	if s == "" {
		return fallbackValue
	}
	for _, candidate := range allowed {
		if strings.EqualFold(s, candidate) {
			return candidate
		}
	}
	return fallbackValue
}
