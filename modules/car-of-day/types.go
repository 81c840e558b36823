package carofday

import (
	"fmt"
	"strings"
)

// Variant 태그 - 닫힌 집합. 새 스타일 추가 시 VariantSpecs에 composer도 함께 등록할 것
const (
	VariantOfficial     = "official"
	VariantComic        = "comic"
	VariantActionFigure = "action-figure"
	VariantMoviePoster  = "movie-poster"
)

// DefaultVariants - variants 생략 시 생성되는 전체 스타일 (순서 고정)
var DefaultVariants = []string{VariantOfficial, VariantComic, VariantActionFigure, VariantMoviePoster}

// VariantSpec - 스타일별 정의: 표시명, 설명, 프롬프트 composer, 인물 레퍼런스 사용 여부
type VariantSpec struct {
	Tag                string
	DisplayName        string
	Description        string
	AspectRatio        string
	UsesOwnerReference bool
	Compose            func(facts PromptFacts) string
}

// VariantSpecs - 태그 → 스펙 매핑 (런타임에 절대 변경하지 않음)
var VariantSpecs = map[string]VariantSpec{
	VariantOfficial: {
		Tag:         VariantOfficial,
		DisplayName: "Official Feature",
		Description: "Glossy dealership-style feature shot",
		AspectRatio: "16:9",
		Compose:     composeOfficial,
	},
	VariantComic: {
		Tag:                VariantComic,
		DisplayName:        "Comic Book",
		Description:        "Retro comic book cover",
		AspectRatio:        "3:4",
		UsesOwnerReference: true,
		Compose:            composeComic,
	},
	VariantActionFigure: {
		Tag:                VariantActionFigure,
		DisplayName:        "Action Figure",
		Description:        "Collectible action figure in blister packaging",
		AspectRatio:        "1:1",
		UsesOwnerReference: true,
		Compose:            composeActionFigure,
	},
	VariantMoviePoster: {
		Tag:                VariantMoviePoster,
		DisplayName:        "Movie Poster",
		Description:        "Blockbuster movie poster",
		AspectRatio:        "3:4",
		UsesOwnerReference: true,
		Compose:            composeMoviePoster,
	},
}

// IsValidVariant - 유효한 variant 태그인지 확인
func IsValidVariant(tag string) bool {
	_, ok := VariantSpecs[tag]
	return ok
}

// ImagePayload - base64 인코딩 이미지 + MIME 타입
type ImagePayload struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}

// IsPresent - 바이트와 MIME 타입이 모두 있는지
func (p *ImagePayload) IsPresent() bool {
	return p != nil && strings.TrimSpace(p.Base64) != "" && strings.TrimSpace(p.MimeType) != ""
}

// VehicleInfo - 차량 정보 (전부 선택)
type VehicleInfo struct {
	Year     string `json:"year,omitempty"`
	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	Color    string `json:"color,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

// OwnerInfo - 차주 정보 (전부 선택)
type OwnerInfo struct {
	Name   string `json:"name,omitempty"`
	Handle string `json:"handle,omitempty"`
}

// GenerateRequest - Car of the Day 생성 요청
type GenerateRequest struct {
	// 차량 사진 (필수)
	CarImage ImagePayload `json:"carImage"`

	// 차주 사진 (선택) - comic/action-figure/movie-poster에서 인물 레퍼런스로 사용
	OwnerImage *ImagePayload `json:"ownerImage,omitempty"`

	Vehicle VehicleInfo `json:"vehicle"`
	Owner   OwnerInfo   `json:"owner"`

	// 생성할 스타일 목록 (생략 시 전체 4종)
	Variants []string `json:"variants,omitempty"`

	// 업체 로고 (선택)
	LogoImages []ImagePayload `json:"logoImages,omitempty"`

	// 마스코트 레퍼런스 (선택)
	MascotImage *ImagePayload `json:"mascotImage,omitempty"`

	// 테넌트/사용자 식별
	TenantID string `json:"tenantId"`
	UserID   string `json:"userId"`
}

// Validate - 생성 시도 전 요청 검증
func (r *GenerateRequest) Validate() error {
	if !r.CarImage.IsPresent() {
		return fmt.Errorf("car image with base64 data and mime type is required")
	}
	for _, tag := range r.Variants {
		if !IsValidVariant(tag) {
			return fmt.Errorf("unknown variant: %s", tag)
		}
	}
	return nil
}

// ResolvedVariants - 요청된 variant 목록 (비어있으면 기본 4종, 순서 유지)
func (r *GenerateRequest) ResolvedVariants() []string {
	if len(r.Variants) == 0 {
		return DefaultVariants
	}
	return r.Variants
}

// GeneratedAsset - 생성된 단일 에셋
type GeneratedAsset struct {
	// History Store가 발급한 ID
	EntryID string `json:"entryId"`

	// Variant 태그
	Variant string `json:"variant"`

	// 이미지 위치 (Storage URL 또는 base64 data URL)
	ImageURL string `json:"imageUrl"`

	// 캡션 (variant + 차량 이름 기반으로 결정적으로 생성)
	Caption string `json:"caption"`
}

// GenerateResult - 성공한 에셋들의 집계
type GenerateResult struct {
	// 차량 표시 이름 (전체 variant에서 공유)
	DisplayName string `json:"displayName"`

	Assets []GeneratedAsset `json:"assets"`
	Count  int              `json:"count"`
}

// GenerateResponse - HTTP 응답
type GenerateResponse struct {
	Success      bool             `json:"success"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
	ErrorCode    string           `json:"errorCode,omitempty"`
	DisplayName  string           `json:"displayName,omitempty"`
	Assets       []GeneratedAsset `json:"assets,omitempty"`
	Count        int              `json:"count,omitempty"`
}

// Error codes
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeInvalidVariant = "INVALID_VARIANT"
	ErrCodeImageRequired  = "IMAGE_REQUIRED"
	ErrCodeGenerateFailed = "GENERATE_FAILED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)
