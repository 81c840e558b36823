package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	carofday "revup-server/modules/car-of-day"
	"revup-server/modules/common/config"
	"revup-server/modules/history"
	"revup-server/modules/live"
	reviewreply "revup-server/modules/review-reply"
	"revup-server/modules/worker"

	"github.com/gorilla/mux"
)

var startTime = time.Now()

// enableCORS - CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthCheck - 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "revup-server",
		"uptime":  time.Since(startTime).String(),
	})
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Live 진행 상황 Hub
	hub := live.NewHub()
	hub.StartCleanupRoutine()

	// Redis Queue Worker 시작 (백그라운드)
	go worker.StartWorker(hub)

	// 라우터 설정
	r := mux.NewRouter()
	r.Use(enableCORS)

	// 헬스 체크
	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")

	// 모듈 라우트
	carofday.NewHandler().RegisterRoutes(r)
	reviewreply.NewHandler().RegisterRoutes(r)
	history.NewHandler().RegisterRoutes(r)
	hub.RegisterRoutes(r)

	if enqueueHandler := worker.NewEnqueueHandler(hub); enqueueHandler != nil {
		enqueueHandler.RegisterRoutes(r)
	} else {
		log.Println("⚠️ Enqueue handler disabled (Redis unavailable)")
	}
	if cancelHandler := worker.NewCancelHandler(hub); cancelHandler != nil {
		cancelHandler.RegisterRoutes(r)
	}
	if statusHandler := worker.NewStatusHandler(); statusHandler != nil {
		statusHandler.RegisterRoutes(r)
	}

	log.Printf("🚀 RevUp Server starting on port %s", cfg.Port)
	log.Printf("📡 WebSocket endpoint: ws://localhost:%s/ws/progress", cfg.Port)
	log.Printf("❤️ Health check: http://localhost:%s/health", cfg.Port)

	// 서버 시작
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
