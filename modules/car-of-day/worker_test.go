package carofday

import (
	"encoding/base64"
	"testing"

	"revup-server/modules/common/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobWithInput(input map[string]interface{}) *model.GenerationJob {
	return &model.GenerationJob{
		JobID:    "job-1",
		TenantID: "tenant-1",
		UserID:   "user-1",
		Tool:     model.ToolCarOfDay,
		JobInput: input,
	}
}

func carImageInput() map[string]interface{} {
	return map[string]interface{}{
		"base64":   base64.StdEncoding.EncodeToString([]byte("fake-car-photo")),
		"mimeType": "image/jpeg",
	}
}

func TestParseJobRequest(t *testing.T) {
	job := jobWithInput(map[string]interface{}{
		"carImage": carImageInput(),
		"vehicle": map[string]interface{}{
			"year":     "1969",
			"make":     "Chevrolet",
			"model":    "Camaro",
			"nickname": "Betty",
		},
		"owner": map[string]interface{}{
			"name":   "Sam",
			"handle": "@speedy_sam",
		},
		"variants": []interface{}{"comic", "official"},
	})

	req, err := parseJobRequest(job)
	require.NoError(t, err)

	assert.Equal(t, "tenant-1", req.TenantID)
	assert.Equal(t, "user-1", req.UserID)
	assert.Equal(t, "Betty", req.Vehicle.Nickname)
	assert.Equal(t, "@speedy_sam", req.Owner.Handle)
	assert.Equal(t, []string{"comic", "official"}, req.Variants)
	assert.True(t, req.CarImage.IsPresent())
	assert.Nil(t, req.OwnerImage)
}

func TestParseJobRequest_DefaultsWhenOptionalFieldsMissing(t *testing.T) {
	job := jobWithInput(map[string]interface{}{
		"carImage": carImageInput(),
	})

	req, err := parseJobRequest(job)
	require.NoError(t, err)

	assert.Equal(t, DefaultVariants, req.ResolvedVariants())
	assert.Empty(t, req.Vehicle.Make)
	assert.Nil(t, req.OwnerImage)
	assert.Nil(t, req.MascotImage)
	assert.Empty(t, req.LogoImages)
}

func TestParseJobRequest_MissingCarImage(t *testing.T) {
	_, err := parseJobRequest(jobWithInput(map[string]interface{}{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "car image")

	_, err = parseJobRequest(jobWithInput(nil))
	require.Error(t, err)
}

func TestParseJobRequest_UnknownVariantRejected(t *testing.T) {
	job := jobWithInput(map[string]interface{}{
		"carImage": carImageInput(),
		"variants": []interface{}{"watercolor"},
	})

	_, err := parseJobRequest(job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown variant")
}

func TestParseImagePayload(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload, ok := parseImagePayload(map[string]interface{}{
			"base64":   "aGVsbG8=",
			"mimeType": "image/png",
		})
		require.True(t, ok)
		assert.Equal(t, "image/png", payload.MimeType)
	})

	t.Run("missing mime type", func(t *testing.T) {
		_, ok := parseImagePayload(map[string]interface{}{"base64": "aGVsbG8="})
		assert.False(t, ok)
	})

	t.Run("not a map", func(t *testing.T) {
		_, ok := parseImagePayload("nope")
		assert.False(t, ok)
	})
}
