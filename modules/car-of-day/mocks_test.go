package carofday

import (
	"context"
	"fmt"
	"strings"

	"revup-server/modules/common/gemini"
	"revup-server/modules/common/model"
)

// mockGateway - 이미지 생성 게이트웨이 mock
// failVariants에 담긴 프롬프트 substring이 포함되면 실패를 흉내냄
type mockGateway struct {
	calls          []string
	referenceCalls int
	failAll        bool
	failContains   string
}

func (m *mockGateway) GenerateImage(ctx context.Context, prompt string, source *gemini.ImageInput, opts gemini.ImageOptions) (*gemini.ImageResult, error) {
	return m.respond(prompt)
}

func (m *mockGateway) GenerateImageWithReference(ctx context.Context, prompt string, source *gemini.ImageInput, reference *gemini.ImageInput, opts gemini.ImageOptions) (*gemini.ImageResult, error) {
	m.referenceCalls++
	return m.respond(prompt)
}

func (m *mockGateway) respond(prompt string) (*gemini.ImageResult, error) {
	m.calls = append(m.calls, prompt)
	if m.failAll {
		return nil, fmt.Errorf("model unavailable")
	}
	if m.failContains != "" && containsFold(prompt, m.failContains) {
		return nil, fmt.Errorf("model unavailable")
	}
	return &gemini.ImageResult{Data: []byte("generated-bytes"), MIMEType: "image/png"}, nil
}

// mockStore - 히스토리 저장 mock
type mockStore struct {
	entries []*model.HistoryEntry
	failAll bool
	nextID  int
}

func (m *mockStore) CreateHistory(ctx context.Context, entry *model.HistoryEntry) (string, error) {
	if m.failAll {
		return "", fmt.Errorf("storage unavailable")
	}
	m.nextID++
	m.entries = append(m.entries, entry)
	return fmt.Sprintf("entry-%d", m.nextID), nil
}

// mockTenants - 테넌트 프로필 mock
type mockTenants struct {
	profile *model.TenantProfile
}

func (m *mockTenants) FetchTenantProfile(ctx context.Context, tenantID string) *model.TenantProfile {
	if m.profile != nil {
		return m.profile
	}
	return &model.TenantProfile{
		TenantID:     tenantID,
		BusinessName: "Rev Garage",
		Location:     "Austin, TX",
	}
}

// mockUploader - Storage 업로드 mock
type mockUploader struct {
	uploads int
	failAll bool
}

func (m *mockUploader) UploadGeneratedImage(ctx context.Context, imageData []byte, tenantID, variant string) (string, int64, error) {
	m.uploads++
	if m.failAll {
		return "", 0, fmt.Errorf("bucket unreachable")
	}
	return fmt.Sprintf("https://cdn.example.com/%s/%s.webp", tenantID, variant), int64(len(imageData)), nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
