package carofday

import (
	"context"
	"fmt"
	"log"
	"strings"

	"revup-server/modules/common/database"
	"revup-server/modules/common/gemini"
	"revup-server/modules/common/model"
	"revup-server/modules/common/storage"
	"revup-server/modules/common/utils"
)

// ImageGateway - 이미지 생성 게이트웨이 (gemini.Client가 구현)
type ImageGateway interface {
	GenerateImage(ctx context.Context, prompt string, source *gemini.ImageInput, opts gemini.ImageOptions) (*gemini.ImageResult, error)
	GenerateImageWithReference(ctx context.Context, prompt string, source *gemini.ImageInput, reference *gemini.ImageInput, opts gemini.ImageOptions) (*gemini.ImageResult, error)
}

// HistoryStore - 생성 결과 영속화 (database.Client가 구현)
type HistoryStore interface {
	CreateHistory(ctx context.Context, entry *model.HistoryEntry) (string, error)
}

// TenantProvider - 테넌트 브랜딩 조회 (database.Client가 구현)
type TenantProvider interface {
	FetchTenantProfile(ctx context.Context, tenantID string) *model.TenantProfile
}

// ImageUploader - Storage 업로드 (storage.Client가 구현)
type ImageUploader interface {
	UploadGeneratedImage(ctx context.Context, imageData []byte, tenantID, variant string) (string, int64, error)
}

type Service struct {
	gateway  ImageGateway
	store    HistoryStore
	tenants  TenantProvider
	uploader ImageUploader
}

// NewService - Service 생성 (실제 클라이언트 연결)
func NewService() *Service {
	geminiClient := gemini.NewClient()
	if geminiClient == nil {
		log.Println("❌ [CarOfDay] Failed to create Gemini client")
		return nil
	}

	dbClient := database.NewClient()
	if dbClient == nil {
		log.Println("❌ [CarOfDay] Failed to create Database client")
		return nil
	}

	log.Println("✅ [CarOfDay] Service initialized")
	return &Service{
		gateway:  geminiClient,
		store:    dbClient,
		tenants:  dbClient,
		uploader: storage.NewClient(),
	}
}

// Generate - 요청된 전체 variant 생성
// variant 하나의 실패는 나머지를 중단시키지 않고, 전부 실패했을 때만 에러 반환
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	variants := req.ResolvedVariants()
	facts, source, ownerRef, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Printf("🚗 [CarOfDay] Generating %d variants for %s (tenant: %s)",
		len(variants), facts.DisplayName, req.TenantID)

	assets := []GeneratedAsset{}
	failures := []string{}

	for _, tag := range variants {
		asset, err := s.generateVariant(ctx, VariantSpecs[tag], facts, source, ownerRef, req)
		if err != nil {
			// 실패 격리: 이 variant만 기록하고 다음으로
			log.Printf("❌ [CarOfDay] Variant %s failed: %v", tag, err)
			failures = append(failures, fmt.Sprintf("%s: %v", tag, err))
			continue
		}

		log.Printf("✅ [CarOfDay] Variant %s generated: %s", tag, asset.EntryID)
		assets = append(assets, *asset)
	}

	if len(assets) == 0 {
		return nil, fmt.Errorf("all variants failed - %s", strings.Join(failures, "; "))
	}

	if len(failures) > 0 {
		log.Printf("⚠️ [CarOfDay] Partial success: %d/%d variants (failed: %s)",
			len(assets), len(variants), strings.Join(failures, "; "))
	}

	return &GenerateResult{
		DisplayName: facts.DisplayName,
		Assets:      assets,
		Count:       len(assets),
	}, nil
}

// GenerateSingle - 단일 variant 생성 (집계 없이 실패를 그대로 전파)
func (s *Service) GenerateSingle(ctx context.Context, req *GenerateRequest, variantTag string) (*GeneratedAsset, error) {
	if !IsValidVariant(variantTag) {
		return nil, fmt.Errorf("unknown variant: %s", variantTag)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	facts, source, ownerRef, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Printf("🚗 [CarOfDay] Generating single variant %s for %s", variantTag, facts.DisplayName)
	return s.generateVariant(ctx, VariantSpecs[variantTag], facts, source, ownerRef, req)
}

// prepare - 공통 전처리: 이미지 디코딩, 테넌트 조회, 표시 이름 결정
func (s *Service) prepare(ctx context.Context, req *GenerateRequest) (PromptFacts, *gemini.ImageInput, *gemini.ImageInput, error) {
	sourceData, err := utils.DecodeBase64Image(req.CarImage.Base64)
	if err != nil {
		return PromptFacts{}, nil, nil, fmt.Errorf("invalid car image: %w", err)
	}
	source := &gemini.ImageInput{Data: sourceData, MIMEType: req.CarImage.MimeType}

	var ownerRef *gemini.ImageInput
	if req.OwnerImage.IsPresent() {
		ownerData, err := utils.DecodeBase64Image(req.OwnerImage.Base64)
		if err != nil {
			// 차주 사진이 깨져도 전체를 실패시키지 않음 (likeness 없이 진행)
			log.Printf("⚠️ [CarOfDay] Failed to decode owner image, continuing without: %v", err)
		} else {
			ownerRef = &gemini.ImageInput{Data: ownerData, MIMEType: req.OwnerImage.MimeType}
		}
	}

	// 테넌트 브랜딩은 주입 컨텍스트 (조회 실패 시 기본값, 절대 실패하지 않음)
	profile := s.tenants.FetchTenantProfile(ctx, req.TenantID)

	facts := PromptFacts{
		Vehicle:       req.Vehicle,
		Owner:         req.Owner,
		DisplayName:   DeriveDisplayName(req.Vehicle),
		BusinessName:  profile.BusinessName,
		Location:      profile.Location,
		HasOwnerPhoto: ownerRef != nil,
		HasMascot:     req.MascotImage.IsPresent(),
		LogoCount:     len(req.LogoImages),
	}

	return facts, source, ownerRef, nil
}

// generateVariant - 단일 variant 처리: 프롬프트 → 생성 → 업로드 → 캡션 → 히스토리
func (s *Service) generateVariant(
	ctx context.Context,
	spec VariantSpec,
	facts PromptFacts,
	source *gemini.ImageInput,
	ownerRef *gemini.ImageInput,
	req *GenerateRequest,
) (*GeneratedAsset, error) {

	prompt := spec.Compose(facts)
	opts := gemini.ImageOptions{AspectRatio: spec.AspectRatio}

	// 인물 레퍼런스는 스타일이 활용하는 variant + 사진이 있을 때만
	var result *gemini.ImageResult
	var err error
	if spec.UsesOwnerReference && ownerRef != nil {
		result, err = s.gateway.GenerateImageWithReference(ctx, prompt, source, ownerRef, opts)
	} else {
		result, err = s.gateway.GenerateImage(ctx, prompt, source, opts)
	}
	if err != nil {
		return nil, err
	}

	// Storage 업로드 실패는 variant 실패가 아님 - data URL로 대체
	imageURL, _, uploadErr := s.uploader.UploadGeneratedImage(ctx, result.Data, req.TenantID, spec.Tag)
	if uploadErr != nil {
		log.Printf("⚠️ [CarOfDay] Storage upload failed for %s, falling back to data URL: %v", spec.Tag, uploadErr)
		imageURL = utils.BuildDataURL(result.Data, result.MIMEType)
	}

	caption := BuildCaption(spec.Tag, facts.DisplayName, facts.Owner.Handle, facts.BusinessName)

	entryID, err := s.store.CreateHistory(ctx, &model.HistoryEntry{
		TenantID: req.TenantID,
		UserID:   req.UserID,
		Tool:     model.ToolCarOfDay,
		Content:  imageURL,
		Metadata: map[string]interface{}{
			"variant":     spec.Tag,
			"displayName": facts.DisplayName,
			"caption":     caption,
			"vehicle":     req.Vehicle,
			"ownerHandle": req.Owner.Handle,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist asset: %w", err)
	}

	return &GeneratedAsset{
		EntryID:  entryID,
		Variant:  spec.Tag,
		ImageURL: imageURL,
		Caption:  caption,
	}, nil
}
