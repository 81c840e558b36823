package carofday

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler() *Handler {
	return &Handler{
		service: NewService(),
	}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/car-of-day/generate", h.HandleGenerate).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/car-of-day/generate/{variant}", h.HandleGenerateSingle).Methods("POST", "OPTIONS")
	log.Println("✅ Car of the Day routes registered")
}

// HandleGenerate - POST /api/car-of-day/generate
// 요청된 전체 variant 생성 (부분 성공 허용)
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	log.Printf("🔄 [CarOfDay] Processing request: tenant=%s, user=%s, variants=%v",
		req.TenantID, req.UserID, req.ResolvedVariants())

	result, err := h.service.Generate(r.Context(), req)
	if err != nil {
		log.Printf("❌ [CarOfDay] Generation failed: %v", err)
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: err.Error(),
			ErrorCode:    ErrCodeGenerateFailed,
		})
		return
	}

	log.Printf("✅ [CarOfDay] Response sent: %d/%d assets", result.Count, len(req.ResolvedVariants()))
	json.NewEncoder(w).Encode(GenerateResponse{
		Success:     true,
		DisplayName: result.DisplayName,
		Assets:      result.Assets,
		Count:       result.Count,
	})
}

// HandleGenerateSingle - POST /api/car-of-day/generate/{variant}
// 단일 variant 생성 (실패 시 그대로 에러)
func (h *Handler) HandleGenerateSingle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	variant := mux.Vars(r)["variant"]
	if !IsValidVariant(variant) {
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "Unknown variant: " + variant,
			ErrorCode:    ErrCodeInvalidVariant,
		})
		return
	}

	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	asset, err := h.service.GenerateSingle(r.Context(), req, variant)
	if err != nil {
		log.Printf("❌ [CarOfDay] Single variant %s failed: %v", variant, err)
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: err.Error(),
			ErrorCode:    ErrCodeGenerateFailed,
		})
		return
	}

	json.NewEncoder(w).Encode(GenerateResponse{
		Success:     true,
		DisplayName: DeriveDisplayName(req.Vehicle),
		Assets:      []GeneratedAsset{*asset},
		Count:       1,
	})
}

// decodeAndValidate - 요청 파싱 + 생성 전 검증 (실패 시 응답까지 처리)
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (*GenerateRequest, bool) {
	if h.service == nil {
		log.Println("❌ [CarOfDay] Service not initialized")
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "Service unavailable",
			ErrorCode:    ErrCodeInternalError,
		})
		return nil, false
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [CarOfDay] Invalid request: %v", err)
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
			ErrorCode:    ErrCodeInvalidRequest,
		})
		return nil, false
	}

	if strings.TrimSpace(req.TenantID) == "" {
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "Tenant ID is required. Please sign in.",
			ErrorCode:    ErrCodeUnauthorized,
		})
		return nil, false
	}

	if !req.CarImage.IsPresent() {
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "Car image is required",
			ErrorCode:    ErrCodeImageRequired,
		})
		return nil, false
	}

	for _, tag := range req.Variants {
		if !IsValidVariant(tag) {
			json.NewEncoder(w).Encode(GenerateResponse{
				Success:      false,
				ErrorMessage: "Unknown variant: " + tag,
				ErrorCode:    ErrCodeInvalidVariant,
			})
			return nil, false
		}
	}

	return &req, true
}
