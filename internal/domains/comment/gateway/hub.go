package gateway

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber là một connection có thể nhận message.
// Send trả false khi không giao được (buffer đầy hoặc đã đóng).
type Subscriber interface {
	Send(msg Message) bool
}

// Hub giữ bảng book id → tập subscriber, cùng index ngược để gỡ khi disconnect.
// Mọi thay đổi bảng đi qua mu; Broadcast gửi ngoài lock.
type Hub struct {
	mu          sync.RWMutex
	groups      map[uuid.UUID]map[Subscriber]struct{}
	memberships map[Subscriber]map[uuid.UUID]struct{}
}

func NewHub() *Hub {
	return &Hub{
		groups:      make(map[uuid.UUID]map[Subscriber]struct{}),
		memberships: make(map[Subscriber]map[uuid.UUID]struct{}),
	}
}

func (h *Hub) Subscribe(s Subscriber, bookID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[bookID]
	if !ok {
		group = make(map[Subscriber]struct{})
		h.groups[bookID] = group
	}
	group[s] = struct{}{}

	books, ok := h.memberships[s]
	if !ok {
		books = make(map[uuid.UUID]struct{})
		h.memberships[s] = books
	}
	books[bookID] = struct{}{}
}

func (h *Hub) Unsubscribe(s Subscriber, bookID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leave(s, bookID)
}

// Remove gỡ subscriber khỏi mọi group
func (h *Hub) Remove(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for bookID := range h.memberships[s] {
		h.leave(s, bookID)
	}
	delete(h.memberships, s)
}

// leave - caller giữ h.mu
func (h *Hub) leave(s Subscriber, bookID uuid.UUID) {
	if group, ok := h.groups[bookID]; ok {
		delete(group, s)
		if len(group) == 0 {
			delete(h.groups, bookID)
		}
	}

	if books, ok := h.memberships[s]; ok {
		delete(books, bookID)
		if len(books) == 0 {
			delete(h.memberships, s)
		}
	}
}

// Broadcast gửi msg tới mọi subscriber của bookID, trả về số lần giao thành công.
// Subscriber không nhận được bị gỡ khỏi hub.
func (h *Hub) Broadcast(bookID uuid.UUID, msg Message) int {
	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.groups[bookID]))
	for s := range h.groups[bookID] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, s := range targets {
		if s.Send(msg) {
			delivered++
			continue
		}
		h.Remove(s)
	}
	return delivered
}

// Subscribers - số subscriber hiện tại của một book
func (h *Hub) Subscribers(bookID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.groups[bookID])
}

// Groups - số book đang có ít nhất một subscriber
func (h *Hub) Groups() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.groups)
}
