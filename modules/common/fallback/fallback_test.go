package fallback

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, "hello", SafeString("hello", "fb"))
	assert.Equal(t, "hello", SafeString("  hello  ", "fb"))
	assert.Equal(t, "fb", SafeString("   ", "fb"))
	assert.Equal(t, "fb", SafeString(nil, "fb"))
	assert.Equal(t, "fb", SafeString(42, "fb"))
}

func TestSafeInt(t *testing.T) {
	// JSON 역직렬화는 숫자를 float64로 내려줌
	assert.Equal(t, 3, SafeInt(float64(3), 0))
	assert.Equal(t, 3, SafeInt(3, 0))
	assert.Equal(t, 3, SafeInt(int64(3), 0))
	assert.Equal(t, 3, SafeInt(json.Number("3"), 0))
	assert.Equal(t, 3, SafeInt(" 3 ", 0))
	assert.Equal(t, 7, SafeInt("abc", 7))
	assert.Equal(t, 7, SafeInt(nil, 7))
}

func TestSafeBool(t *testing.T) {
	assert.True(t, SafeBool(true, false))
	assert.True(t, SafeBool("true", false))
	assert.False(t, SafeBool("false", true))
	assert.True(t, SafeBool("banana", true))
	assert.False(t, SafeBool(nil, false))
}

func TestSafeRating(t *testing.T) {
	for n := 1; n <= 5; n++ {
		got := SafeRating(float64(n))
		require.NotNil(t, got)
		assert.Equal(t, n, *got)
	}
	assert.Nil(t, SafeRating(float64(0)))
	assert.Nil(t, SafeRating(float64(6)))
	assert.Nil(t, SafeRating(nil))
	assert.Nil(t, SafeRating("banana"))
}

func TestSafeStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SafeStringList([]interface{}{"a", "b"}))
	assert.Equal(t, []string{"a"}, SafeStringList([]interface{}{"a", "", 42}))
	assert.Equal(t, []string{"a", "b"}, SafeStringList([]string{"a", " b "}))
	assert.Empty(t, SafeStringList("not-a-list"))
	assert.Empty(t, SafeStringList(nil))

	// 항상 빈 슬라이스, nil 아님
	assert.NotNil(t, SafeStringList(nil))
}

func TestSafeOneOf(t *testing.T) {
	allowed := []string{"high", "medium", "low"}
	assert.Equal(t, "high", SafeOneOf("high", allowed, "medium"))
	assert.Equal(t, "high", SafeOneOf("HIGH", allowed, "medium"))
	assert.Equal(t, "medium", SafeOneOf("extreme", allowed, "medium"))
	assert.Equal(t, "medium", SafeOneOf(nil, allowed, "medium"))
	assert.Equal(t, "medium", SafeOneOf("", allowed, "medium"))
}
