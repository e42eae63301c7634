package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/remixgames/backend/internal/goroutine"
	"github.com/remixgames/backend/internal/logger"
)

// Hub управляет всеми WebSocket клиентами. Сообщения адресуются либо
// конкретному пользователю, либо всем подключённым модераторам.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	moderators map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	outbox     chan message
	ctx        context.Context
}

type message struct {
	userID       uuid.UUID
	toModerators bool
	payload      []byte
}

func NewHub(ctx context.Context) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		moderators: make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbox:     make(chan message, 32),
		ctx:        ctx,
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.outbox:
			h.deliver(msg)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// PushToUser отправляет готовый payload во все соединения пользователя.
func (h *Hub) PushToUser(userID uuid.UUID, payload []byte) {
	select {
	case h.outbox <- message{userID: userID, payload: payload}:
	case <-h.ctx.Done():
	}
}

// PushToModerators отправляет payload всем подключённым модераторам,
// например о новом элементе в очереди.
func (h *Hub) PushToModerators(payload []byte) {
	select {
	case h.outbox <- message{toModerators: true, payload: payload}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
	if client.isModerator {
		h.moderators[client] = struct{}{}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
	delete(h.moderators, client)
}

func (h *Hub) deliver(msg message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.toModerators {
		for client := range h.moderators {
			h.sendTo(client, msg.payload)
		}
		return
	}
	for client := range h.clients[msg.userID] {
		h.sendTo(client, msg.payload)
	}
}

func (h *Hub) sendTo(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		// Переполненный буфер означает мёртвое соединение.
		logger.WithComponent("ws").WithField("user_id", client.userID).Warn("Буфер клиента переполнен, закрываем соединение")
		goroutine.SafeGo(func() {
			client.Close()
		})
	}
}
