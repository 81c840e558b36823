package history

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"revup-server/modules/common/database"
	"revup-server/modules/common/model"

	"github.com/gorilla/mux"
)

// Response - 히스토리 API 공통 응답
type Response struct {
	Success      bool                 `json:"success"`
	ErrorMessage string               `json:"errorMessage,omitempty"`
	Entries      []model.HistoryEntry `json:"entries,omitempty"`
	Entry        *model.HistoryEntry  `json:"entry,omitempty"`
	Count        int                  `json:"count,omitempty"`
}

type Handler struct {
	db *database.Client
}

func NewHandler() *Handler {
	return &Handler{
		db: database.NewClient(),
	}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/history", h.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/history/{entryId}", h.HandleGet).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/history/{entryId}", h.HandleDelete).Methods("DELETE", "OPTIONS")
	log.Println("✅ History routes registered")
}

// HandleList - GET /api/history?tenant=...&tool=...&limit=...
// 최신순 정렬, tool 필터는 선택
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	tenantID := r.URL.Query().Get("tenant")
	if tenantID == "" {
		h.writeError(w, http.StatusBadRequest, "tenant parameter is required")
		return
	}

	tool := r.URL.Query().Get("tool")
	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.db.ListHistory(r.Context(), tenantID, tool, limit)
	if err != nil {
		log.Printf("❌ [History] Failed to list entries: %v", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	json.NewEncoder(w).Encode(Response{
		Success: true,
		Entries: entries,
		Count:   len(entries),
	})
}

// HandleGet - GET /api/history/{entryId}?tenant=...
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	tenantID := r.URL.Query().Get("tenant")
	if tenantID == "" {
		h.writeError(w, http.StatusBadRequest, "tenant parameter is required")
		return
	}
	entryID := mux.Vars(r)["entryId"]

	entry, err := h.db.FindHistory(r.Context(), tenantID, entryID)
	if err != nil {
		log.Printf("❌ [History] Failed to fetch entry %s: %v", entryID, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load history entry")
		return
	}
	if entry == nil {
		h.writeError(w, http.StatusNotFound, "History entry not found")
		return
	}

	json.NewEncoder(w).Encode(Response{
		Success: true,
		Entry:   entry,
	})
}

// HandleDelete - DELETE /api/history/{entryId}?tenant=...
// 테넌트 스코프 밖의 entry는 지울 수 없음
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	tenantID := r.URL.Query().Get("tenant")
	if tenantID == "" {
		h.writeError(w, http.StatusBadRequest, "tenant parameter is required")
		return
	}
	entryID := mux.Vars(r)["entryId"]

	if err := h.db.DeleteHistory(r.Context(), tenantID, entryID); err != nil {
		log.Printf("❌ [History] Failed to delete entry %s: %v", entryID, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete history entry")
		return
	}

	log.Printf("🗑️ [History] Deleted entry %s (tenant: %s)", entryID, tenantID)
	json.NewEncoder(w).Encode(Response{Success: true})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Success:      false,
		ErrorMessage: message,
	})
}
