package carofday

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *GenerateRequest {
	return &GenerateRequest{
		CarImage: ImagePayload{
			Base64:   base64.StdEncoding.EncodeToString([]byte("fake-car-photo")),
			MimeType: "image/jpeg",
		},
		Vehicle: VehicleInfo{
			Year:  "1969",
			Make:  "Chevrolet",
			Model: "Camaro",
		},
		TenantID: "tenant-1",
		UserID:   "user-1",
	}
}

func newTestService() (*Service, *mockGateway, *mockStore, *mockUploader) {
	gateway := &mockGateway{}
	store := &mockStore{}
	uploader := &mockUploader{}
	service := &Service{
		gateway:  gateway,
		store:    store,
		tenants:  &mockTenants{},
		uploader: uploader,
	}
	return service, gateway, store, uploader
}

func TestGenerate_AllVariantsByDefault(t *testing.T) {
	service, gateway, store, _ := newTestService()

	result, err := service.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Count)
	assert.Len(t, result.Assets, 4)
	assert.Len(t, gateway.calls, 4)
	assert.Len(t, store.entries, 4)

	// 요청 순서 보존
	for i, tag := range DefaultVariants {
		assert.Equal(t, tag, result.Assets[i].Variant)
	}
}

func TestGenerate_FailureIsolation(t *testing.T) {
	service, _, _, _ := newTestService()
	service.gateway = &mockGateway{failContains: "comic book"}

	result, err := service.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Count)
	for _, asset := range result.Assets {
		assert.NotEqual(t, VariantComic, asset.Variant)
	}
}

func TestGenerate_AllFailed(t *testing.T) {
	service, _, _, _ := newTestService()
	service.gateway = &mockGateway{failAll: true}

	_, err := service.Generate(context.Background(), testRequest())
	require.Error(t, err)

	// 전체 실패 시 variant별 이유가 모두 담김
	for _, tag := range DefaultVariants {
		assert.Contains(t, err.Error(), tag+": ")
	}
	assert.Contains(t, err.Error(), "all variants failed")
}

func TestGenerate_SubsetAndOrder(t *testing.T) {
	service, gateway, _, _ := newTestService()

	req := testRequest()
	req.Variants = []string{VariantMoviePoster, VariantOfficial}

	result, err := service.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Assets, 2)
	assert.Equal(t, VariantMoviePoster, result.Assets[0].Variant)
	assert.Equal(t, VariantOfficial, result.Assets[1].Variant)
	assert.Len(t, gateway.calls, 2)
}

func TestGenerate_UnknownVariantRejected(t *testing.T) {
	service, gateway, _, _ := newTestService()

	req := testRequest()
	req.Variants = []string{"watercolor"}

	_, err := service.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown variant")
	assert.Empty(t, gateway.calls)
}

func TestGenerate_MissingCarImage(t *testing.T) {
	service, _, _, _ := newTestService()

	req := testRequest()
	req.CarImage = ImagePayload{}

	_, err := service.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "car image")
}

func TestGenerate_OwnerReferenceOnlyForStylizedVariants(t *testing.T) {
	service, gateway, _, _ := newTestService()

	req := testRequest()
	req.OwnerImage = &ImagePayload{
		Base64:   base64.StdEncoding.EncodeToString([]byte("owner-photo")),
		MimeType: "image/png",
	}

	_, err := service.Generate(context.Background(), req)
	require.NoError(t, err)

	// official은 인물 레퍼런스를 쓰지 않음: 4개 중 3개만 reference 호출
	assert.Equal(t, 3, gateway.referenceCalls)
}

func TestGenerate_BrokenOwnerImageContinuesWithout(t *testing.T) {
	service, gateway, _, _ := newTestService()

	req := testRequest()
	req.OwnerImage = &ImagePayload{Base64: "!!not-base64!!", MimeType: "image/png"}

	result, err := service.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Count)
	assert.Zero(t, gateway.referenceCalls)
}

func TestGenerate_UploadFailureFallsBackToDataURL(t *testing.T) {
	service, _, _, uploader := newTestService()
	uploader.failAll = true

	result, err := service.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	for _, asset := range result.Assets {
		assert.True(t, strings.HasPrefix(asset.ImageURL, "data:image/png;base64,"),
			"expected data URL fallback, got %s", asset.ImageURL)
	}
}

func TestGenerate_PersistFailureIsVariantFailure(t *testing.T) {
	service, _, _, _ := newTestService()
	service.store = &mockStore{failAll: true}

	_, err := service.Generate(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all variants failed")
	assert.Contains(t, err.Error(), "failed to persist asset")
}

func TestGenerateSingle(t *testing.T) {
	service, gateway, _, _ := newTestService()

	asset, err := service.GenerateSingle(context.Background(), testRequest(), VariantComic)
	require.NoError(t, err)
	assert.Equal(t, VariantComic, asset.Variant)
	assert.Len(t, gateway.calls, 1)

	_, err = service.GenerateSingle(context.Background(), testRequest(), "sketch")
	require.Error(t, err)
}

func TestGenerateSingle_PropagatesFailure(t *testing.T) {
	service, _, _, _ := newTestService()
	service.gateway = &mockGateway{failAll: true}

	_, err := service.GenerateSingle(context.Background(), testRequest(), VariantOfficial)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "all variants failed")
}
