package reviewreply

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
	r.HandleFunc("/api/review-reply/generate", h.HandleGenerate).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/review-reply/regenerate", h.HandleRegenerate).Methods("POST", "OPTIONS")
	log.Println("✅ Review Reply routes registered")
}

// HandleGenerate - POST /api/review-reply/generate
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

	result, err := h.service.Generate(r.Context(), req)
	if err != nil {
		log.Printf("❌ [ReviewReply] Generation failed: %v", err)
		json.NewEncoder(w).Encode(ReplyResponse{
			Success:      false,
			ErrorMessage: err.Error(),
			ErrorCode:    ErrCodeGenerateFailed,
		})
		return
	}

	json.NewEncoder(w).Encode(ReplyResponse{
		Success: true,
		Reply:   result,
	})
}

// HandleRegenerate - POST /api/review-reply/regenerate
// 동일 요청을 다른 톤으로 전체 재실행
func (h *Handler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	if req.Tone == "" {
		h.writeError(w, "tone is required for regeneration", ErrCodeInvalidTone)
		return
	}

	result, err := h.service.Regenerate(r.Context(), req, req.Tone)
	if err != nil {
		log.Printf("❌ [ReviewReply] Regeneration failed: %v", err)
		json.NewEncoder(w).Encode(ReplyResponse{
			Success:      false,
			ErrorMessage: err.Error(),
			ErrorCode:    ErrCodeGenerateFailed,
		})
		return
	}

	json.NewEncoder(w).Encode(ReplyResponse{
		Success: true,
		Reply:   result,
	})
}

// decodeAndValidate - 요청 디코딩 + 공통 검증
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (*ReplyRequest, bool) {
	if h.service == nil {
		h.writeError(w, "Review reply service unavailable", ErrCodeInternalError)
		return nil, false
	}

	var req ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", ErrCodeInvalidRequest)
		return nil, false
	}

	if req.TenantID == "" {
		h.writeError(w, "Tenant ID is required", ErrCodeUnauthorized)
		return nil, false
	}

	if strings.TrimSpace(req.ReviewText) == "" {
		h.writeError(w, "Review text is required", ErrCodeTextRequired)
		return nil, false
	}

	if req.Tone != "" && !IsValidTone(req.Tone) {
		h.writeError(w, "Unknown tone: "+req.Tone, ErrCodeInvalidTone)
		return nil, false
	}

	return &req, true
}

func (h *Handler) writeError(w http.ResponseWriter, message, code string) {
	json.NewEncoder(w).Encode(ReplyResponse{
		Success:      false,
		ErrorMessage: message,
		ErrorCode:    code,
	})
}
