package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	t.Run("plain base64", func(t *testing.T) {
		data, err := DecodeBase64Image("aGVsbG8=")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("data URL prefix stripped", func(t *testing.T) {
		data, err := DecodeBase64Image("data:image/png;base64,aGVsbG8=")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		data, err := DecodeBase64Image("  aGVsbG8=\n")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := DecodeBase64Image("!!not-base64!!")
		require.Error(t, err)
	})
}

func TestBuildDataURL(t *testing.T) {
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", BuildDataURL([]byte("hello"), "image/jpeg"))

	// MIME 누락 시 png로 기본 처리
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", BuildDataURL([]byte("hello"), ""))
}

func TestDataURLRoundTrip(t *testing.T) {
	original := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff}
	url := BuildDataURL(original, "image/png")

	decoded, err := DecodeBase64Image(url)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
