package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// 개발용 - 모든 origin 허용
		return true
	},
}

// 진행 상황 이벤트 타입
const (
	EventJobQueued    = "job_queued"
	EventJobProgress  = "job_progress"
	EventJobCompleted = "job_completed"
	EventJobFailed    = "job_failed"
	EventJobCancelled = "job_cancelled"
)

// Event - 테넌트 룸으로 내려보내는 진행 상황 메시지
type Event struct {
	Type           string                 `json:"type"`
	JobID          string                 `json:"jobId,omitempty"`
	Tool           string                 `json:"tool,omitempty"`
	CompletedCount int                    `json:"completedCount,omitempty"`
	TotalCount     int                    `json:"totalCount,omitempty"`
	Variant        string                 `json:"variant,omitempty"`
	ErrorMessage   string                 `json:"errorMessage,omitempty"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
}

// subscriber - 룸에 연결된 단일 클라이언트
type subscriber struct {
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

// Room - 테넌트 단위 구독자 묶음
type Room struct {
	tenantID     string
	subscribers  map[string]*subscriber
	mutex        sync.RWMutex
	lastActivity time.Time
}

// Hub - 테넌트별 룸 관리
type Hub struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]*Room),
	}
}

// getOrCreateRoom - 테넌트 룸 조회, 없으면 생성
func (h *Hub) getOrCreateRoom(tenantID string) *Room {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, exists := h.rooms[tenantID]
	if !exists {
		room = &Room{
			tenantID:     tenantID,
			subscribers:  make(map[string]*subscriber),
			lastActivity: time.Now(),
		}
		h.rooms[tenantID] = room
		log.Printf("✅ [Live] Created room for tenant %s", tenantID)
		return room
	}

	// lastActivity는 room.mutex로 보호
	room.mutex.Lock()
	room.lastActivity = time.Now()
	room.mutex.Unlock()
	return room
}

// Broadcast - 테넌트 룸의 모든 구독자에게 이벤트 전송
// 룸이 없으면 조용히 무시 (구독자 없는 테넌트는 정상 상황)
func (h *Hub) Broadcast(tenantID string, event Event) {
	h.mutex.RLock()
	room, exists := h.rooms[tenantID]
	h.mutex.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ [Live] Failed to marshal event: %v", err)
		return
	}

	room.mutex.Lock()
	defer room.mutex.Unlock()
	for userID, sub := range room.subscribers {
		select {
		case sub.send <- data:
		default:
			// 송신 버퍼가 가득 찬 구독자는 끊음
			close(sub.send)
			delete(room.subscribers, userID)
		}
	}
	room.lastActivity = time.Now()
}

// addSubscriber - 구독자 등록 (같은 user의 기존 연결은 교체)
func (r *Room) addSubscriber(sub *subscriber) {
	r.mutex.Lock()
	if old, exists := r.subscribers[sub.userID]; exists {
		close(old.send)
	}
	r.subscribers[sub.userID] = sub
	count := len(r.subscribers)
	r.mutex.Unlock()

	log.Printf("👤 [Live] User %s subscribed to tenant %s (subscribers: %d)", sub.userID, r.tenantID, count)
}

// removeSubscriber - 구독자 제거
// 같은 user id로 새 연결이 들어와 교체된 뒤 죽은 옛 연결이
// 새 구독자를 지우지 않도록 등록된 구독자가 본인일 때만 제거
func (r *Room) removeSubscriber(sub *subscriber) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if current, exists := r.subscribers[sub.userID]; exists && current == sub {
		close(current.send)
		delete(r.subscribers, sub.userID)
		log.Printf("👋 [Live] User %s left tenant %s (remaining: %d)", sub.userID, r.tenantID, len(r.subscribers))
	}
}

// cleanupIdleRooms - 비어있고 오래된 룸 정리
func (h *Hub) cleanupIdleRooms() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	idleThreshold := 30 * time.Minute
	now := time.Now()

	cleaned := 0
	for tenantID, room := range h.rooms {
		room.mutex.RLock()
		idle := len(room.subscribers) == 0 && now.Sub(room.lastActivity) > idleThreshold
		room.mutex.RUnlock()

		if idle {
			delete(h.rooms, tenantID)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("🧹 [Live] Cleaned up %d idle rooms (active: %d)", cleaned, len(h.rooms))
	}
}

// StartCleanupRoutine - 유휴 룸 정리 루틴 시작
func (h *Hub) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			h.cleanupIdleRooms()
		}
	}()
	log.Println("🔄 [Live] Started room cleanup routine (10min)")
}

// RegisterRoutes - 라우트 등록
func (h *Hub) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ws/progress", h.HandleWebSocket)
	log.Println("✅ Live progress routes registered")
}

// HandleWebSocket - GET /ws/progress?tenant=...&user=...
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [Live] WebSocket upgrade failed: %v", err)
		return
	}

	tenantID := r.URL.Query().Get("tenant")
	userID := r.URL.Query().Get("user")
	if tenantID == "" || userID == "" {
		log.Println("⚠️ [Live] Missing tenant or user parameter")
		conn.Close()
		return
	}

	sub := &subscriber{
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 64),
	}

	room := h.getOrCreateRoom(tenantID)
	room.addSubscriber(sub)

	go sub.writePump()
	go sub.readPump(room)
}

// readPump - 연결 유지용 읽기 루프
// 클라이언트는 수신 전용이라 메시지 내용은 버리고 연결 종료만 감지
func (s *subscriber) readPump(room *Room) {
	defer func() {
		room.removeSubscriber(s)
		s.conn.Close()
	}()

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ [Live] WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump - 송신 채널을 연결로 흘려보냄
func (s *subscriber) writePump() {
	defer s.conn.Close()

	for message := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("⚠️ [Live] WebSocket write error: %v", err)
			return
		}
	}
	s.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
