package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast_DeliversToTenantRoomOnly(t *testing.T) {
	hub := NewHub()

	subA := &subscriber{userID: "user-a", send: make(chan []byte, 4)}
	subB := &subscriber{userID: "user-b", send: make(chan []byte, 4)}
	hub.getOrCreateRoom("tenant-1").addSubscriber(subA)
	hub.getOrCreateRoom("tenant-2").addSubscriber(subB)

	hub.Broadcast("tenant-1", Event{
		Type:           EventJobProgress,
		JobID:          "job-1",
		Tool:           "car_of_day",
		Variant:        "comic",
		CompletedCount: 1,
		TotalCount:     4,
	})

	require.Len(t, subA.send, 1)
	assert.Empty(t, subB.send)

	var got Event
	require.NoError(t, json.Unmarshal(<-subA.send, &got))
	assert.Equal(t, EventJobProgress, got.Type)
	assert.Equal(t, "job-1", got.JobID)
	assert.Equal(t, "comic", got.Variant)
	assert.Equal(t, 1, got.CompletedCount)
}

func TestBroadcast_UnknownTenantIsNoOp(t *testing.T) {
	hub := NewHub()

	// 구독자 없는 테넌트로의 브로드캐스트는 조용히 무시
	hub.Broadcast("nobody-home", Event{Type: EventJobCompleted, JobID: "job-9"})
}

func TestBroadcast_DropsSubscriberWithFullBuffer(t *testing.T) {
	hub := NewHub()

	stuck := &subscriber{userID: "stuck", send: make(chan []byte)}
	healthy := &subscriber{userID: "healthy", send: make(chan []byte, 4)}
	room := hub.getOrCreateRoom("tenant-1")
	room.addSubscriber(stuck)
	room.addSubscriber(healthy)

	hub.Broadcast("tenant-1", Event{Type: EventJobProgress, JobID: "job-1"})

	room.mutex.RLock()
	defer room.mutex.RUnlock()
	assert.NotContains(t, room.subscribers, "stuck")
	assert.Contains(t, room.subscribers, "healthy")
	assert.Len(t, healthy.send, 1)
}

func TestAddSubscriber_ReplacesExistingConnection(t *testing.T) {
	hub := NewHub()
	room := hub.getOrCreateRoom("tenant-1")

	first := &subscriber{userID: "user-a", send: make(chan []byte, 1)}
	second := &subscriber{userID: "user-a", send: make(chan []byte, 1)}
	room.addSubscriber(first)
	room.addSubscriber(second)

	// 기존 연결의 send 채널은 닫힘
	_, open := <-first.send
	assert.False(t, open)

	hub.Broadcast("tenant-1", Event{Type: EventJobQueued, JobID: "job-1"})
	assert.Len(t, second.send, 1)
}

func TestRemoveSubscriber_IgnoresStaleConnection(t *testing.T) {
	hub := NewHub()
	room := hub.getOrCreateRoom("tenant-1")

	first := &subscriber{userID: "user-a", send: make(chan []byte, 1)}
	second := &subscriber{userID: "user-a", send: make(chan []byte, 1)}
	room.addSubscriber(first)
	room.addSubscriber(second)

	// 교체로 끊긴 옛 연결의 뒷정리가 새 구독자를 지우면 안 됨
	room.removeSubscriber(first)

	room.mutex.RLock()
	assert.Same(t, second, room.subscribers["user-a"])
	room.mutex.RUnlock()

	hub.Broadcast("tenant-1", Event{Type: EventJobQueued, JobID: "job-1"})
	assert.Len(t, second.send, 1)
}

func TestHandleWebSocket_ReconnectKeepsReplacement(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?tenant=tenant-1&user=user-a"

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()

	// 첫 연결은 교체되면서 서버가 닫음
	first.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = first.ReadMessage()
	require.Error(t, err)

	// 옛 연결의 readPump 정리가 돌고 난 뒤에도 새 구독자가 남아있어야 함
	room := hub.getOrCreateRoom("tenant-1")
	time.Sleep(100 * time.Millisecond)
	room.mutex.RLock()
	remaining := len(room.subscribers)
	room.mutex.RUnlock()
	require.Equal(t, 1, remaining)

	hub.Broadcast("tenant-1", Event{Type: EventJobCompleted, JobID: "job-1"})

	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := second.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, EventJobCompleted, got.Type)
	assert.Equal(t, "job-1", got.JobID)
}

func TestCleanupIdleRooms(t *testing.T) {
	hub := NewHub()

	empty := hub.getOrCreateRoom("idle-tenant")
	empty.lastActivity = empty.lastActivity.Add(-time.Hour)

	active := hub.getOrCreateRoom("active-tenant")
	active.addSubscriber(&subscriber{userID: "user-a", send: make(chan []byte, 1)})
	active.lastActivity = active.lastActivity.Add(-time.Hour)

	hub.cleanupIdleRooms()

	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	assert.NotContains(t, hub.rooms, "idle-tenant")
	// 구독자가 남아있는 룸은 유지
	assert.Contains(t, hub.rooms, "active-tenant")
}
