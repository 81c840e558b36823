package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"revup-server/modules/common/config"
)

// ImageInput - 인라인 이미지 입력 (원본 사진, 레퍼런스 사진)
type ImageInput struct {
	Data     []byte
	MIMEType string
}

// ImageOptions - 이미지 생성 옵션
type ImageOptions struct {
	AspectRatio string
	Temperature *float32
}

// TextOptions - 텍스트 생성 옵션
type TextOptions struct {
	Temperature     *float32
	MaxOutputTokens int32
}

// ImageResult - 이미지 생성 결과
type ImageResult struct {
	Data     []byte
	MIMEType string
}

// Client - Gemini API 클라이언트 (이미지/텍스트 생성 게이트웨이)
type Client struct {
	apiKeys    []string
	imageModel string
	textModel  string
}

// NewClient - Gemini 클라이언트 생성
func NewClient() *Client {
	cfg := config.GetConfig()

	keys := cfg.AllGeminiKeys()
	if len(keys) == 0 {
		log.Println("❌ [Gemini] No API keys configured")
		return nil
	}

	return &Client{
		apiKeys:    keys,
		imageModel: cfg.GeminiImageModel,
		textModel:  cfg.GeminiTextModel,
	}
}

// GenerateImage - 원본 이미지 + 프롬프트로 이미지 생성
func (c *Client) GenerateImage(ctx context.Context, prompt string, source *ImageInput, opts ImageOptions) (*ImageResult, error) {
	return c.generate(ctx, prompt, source, nil, opts)
}

// GenerateImageWithReference - 레퍼런스 이미지(인물 사진 등)를 추가해서 이미지 생성
func (c *Client) GenerateImageWithReference(ctx context.Context, prompt string, source *ImageInput, reference *ImageInput, opts ImageOptions) (*ImageResult, error) {
	return c.generate(ctx, prompt, source, reference, opts)
}

// generate - 공통 이미지 생성 경로
func (c *Client) generate(ctx context.Context, prompt string, source, reference *ImageInput, opts ImageOptions) (*ImageResult, error) {
	var parts []*genai.Part

	if source != nil && len(source.Data) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: mimeOrDefault(source.MIMEType),
				Data:     source.Data,
			},
		})
	}

	if reference != nil && len(reference.Data) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: mimeOrDefault(reference.MIMEType),
				Data:     reference.Data,
			},
		})
	}

	parts = append(parts, genai.NewPartFromText(prompt))

	content := &genai.Content{
		Parts: parts,
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: opts.Temperature,
	}
	if opts.AspectRatio != "" {
		genConfig.ImageConfig = &genai.ImageConfig{
			AspectRatio: opts.AspectRatio,
		}
	}

	result, err := GenerateContentWithRetry(ctx, c.apiKeys, c.imageModel, []*genai.Content{content}, genConfig)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	// 응답에서 이미지 추출
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "image/png"
				}
				log.Printf("✅ [Gemini] Image generated: %d bytes (%s)", len(part.InlineData.Data), mimeType)
				return &ImageResult{
					Data:     part.InlineData.Data,
					MIMEType: mimeType,
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("no image in API response")
}

// GenerateText - 텍스트 생성
func (c *Client) GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	content := &genai.Content{
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: opts.Temperature,
	}
	if opts.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = opts.MaxOutputTokens
	}

	result, err := GenerateContentWithRetry(ctx, c.apiKeys, c.textModel, []*genai.Content{content}, genConfig)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	// 응답에서 텍스트 추출 (여러 파트면 이어붙임)
	var sb strings.Builder
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text in API response")
	}

	return text, nil
}

// mimeOrDefault - MIME 타입 기본값 처리
func mimeOrDefault(mimeType string) string {
	if mimeType == "" {
		return "image/png"
	}
	return mimeType
}
