package gemini

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQuotaError(t *testing.T) {
	assert.True(t, isQuotaError(fmt.Errorf("googleapi: Error 429: Resource exhausted")))
	assert.True(t, isQuotaError(fmt.Errorf("Rate Limit exceeded")))
	assert.True(t, isQuotaError(fmt.Errorf("quota exceeded for this project")))

	assert.False(t, isQuotaError(nil))
	assert.False(t, isQuotaError(fmt.Errorf("context deadline exceeded")))
	assert.False(t, isQuotaError(fmt.Errorf("invalid argument")))
}
