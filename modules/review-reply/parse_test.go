package reviewreply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		got, ok := ExtractJSONObject(`{"sentiment": "positive"}`)
		require.True(t, ok)
		assert.Equal(t, `{"sentiment": "positive"}`, got)
	})

	t.Run("object inside markdown fence", func(t *testing.T) {
		raw := "Here is the analysis:\n```json\n{\"sentiment\": \"negative\", \"urgency\": \"high\"}\n```\nDone."
		got, ok := ExtractJSONObject(raw)
		require.True(t, ok)
		assert.Equal(t, `{"sentiment": "negative", "urgency": "high"}`, got)
	})

	t.Run("nested braces", func(t *testing.T) {
		raw := `prefix {"a": {"b": 1}, "c": [2]} suffix`
		got, ok := ExtractJSONObject(raw)
		require.True(t, ok)
		assert.Equal(t, `{"a": {"b": 1}, "c": [2]}`, got)
	})

	t.Run("braces inside strings ignored", func(t *testing.T) {
		raw := `{"text": "smile } face", "esc": "quote \" here"}`
		got, ok := ExtractJSONObject(raw)
		require.True(t, ok)
		assert.Equal(t, raw, got)
	})

	t.Run("no object", func(t *testing.T) {
		_, ok := ExtractJSONObject("plain text only")
		assert.False(t, ok)
	})

	t.Run("unbalanced object", func(t *testing.T) {
		_, ok := ExtractJSONObject(`{"never": "closed"`)
		assert.False(t, ok)
	})
}

func TestExtractJSONArray(t *testing.T) {
	t.Run("array inside commentary", func(t *testing.T) {
		got, ok := ExtractJSONArray(`Sure! ["first reply", "second reply"]`)
		require.True(t, ok)
		assert.Equal(t, `["first reply", "second reply"]`, got)
	})

	t.Run("brackets inside strings ignored", func(t *testing.T) {
		raw := `["see [note]", "plain"]`
		got, ok := ExtractJSONArray(raw)
		require.True(t, ok)
		assert.Equal(t, raw, got)
	})

	t.Run("no array", func(t *testing.T) {
		_, ok := ExtractJSONArray("nothing here")
		assert.False(t, ok)
	})
}
