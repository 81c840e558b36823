package reviewreply

// ExtractJSONObject - 텍스트에서 첫 번째 균형 잡힌 JSON 객체를 잘라냄
// 모델 응답이 마크다운 펜스나 설명문 안에 JSON을 섞어 보낼 때 대비
func ExtractJSONObject(text string) (string, bool) {
	return extractBalanced(text, '{', '}')
}

// ExtractJSONArray - 텍스트에서 첫 번째 균형 잡힌 JSON 배열을 잘라냄
func ExtractJSONArray(text string) (string, bool) {
	return extractBalanced(text, '[', ']')
}

// extractBalanced - open 문자부터 대응되는 close 문자까지의 부분 문자열 추출
// 문자열 리터럴 내부의 괄호와 이스케이프는 건너뜀
func extractBalanced(text string, open, close byte) (string, bool) {
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == open {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == open:
			depth++
		case !inString && c == close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
