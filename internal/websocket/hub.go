package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/pkg/logger"
)

const (
	// Rate limiting: max inbound messages per second per client.
	maxMessagesPerSecond = 10
)

// ClientMessage is an inbound message from a tracking client.
type ClientMessage struct {
	Type        string `json:"type"` // subscribe, unsubscribe
	OrderNumber string `json:"order_number"`
}

// StatusEvent is pushed to clients tracking an order.
type StatusEvent struct {
	Type        string `json:"type"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
}

// Client is a single WebSocket session.
type Client struct {
	Hub           *Hub
	Conn          *Conn
	UserID        uint
	Send          chan []byte
	Orders        map[string]bool // order numbers this session is tracking
	mu            sync.RWMutex
	MessageCount  int       // inbound messages in the current window
	LastResetTime time.Time // start of the current rate window
	RateMu        sync.Mutex
}

// OwnershipFunc reports whether a user may track an order.
type OwnershipFunc func(userID uint, orderNumber string) bool

// Hub manages tracking sessions and fans out order status events.
type Hub struct {
	// registered clients (UserID -> sessions, multi-device)
	clients map[uint][]*Client

	// tracking subscriptions (order number -> user IDs)
	orders map[string]map[uint]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *orderEvent

	// ownership check applied on subscribe
	canTrack OwnershipFunc

	mu sync.RWMutex
}

type orderEvent struct {
	OrderNumber string
	Payload     []byte
}

// NewHub creates a Hub. canTrack may be nil, in which case every
// authenticated client may subscribe to any order number.
func NewHub(canTrack OwnershipFunc) *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		orders:     make(map[string]map[uint]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *orderEvent, 1024),
		canTrack:   canTrack,
	}
}

// Run processes register, unregister and broadcast events. Call it in
// its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.UserID]; ok {
				// The same client can reach this channel twice: once from
				// the full-buffer disconnect and once from ReadPump's
				// deferred unregister. Only the pass that actually removes
				// it may close Send.
				found := false
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					} else {
						found = true
					}
				}

				if !found {
					h.mu.Unlock()
					continue
				}

				if len(newList) == 0 {
					delete(h.clients, client.UserID)

					// drop the user's subscriptions with the last session
					client.mu.RLock()
					for orderNumber := range client.Orders {
						if users, ok := h.orders[orderNumber]; ok {
							delete(users, client.UserID)
							if len(users) == 0 {
								delete(h.orders, orderNumber)
							}
						}
					}
					client.mu.RUnlock()
				} else {
					h.clients[client.UserID] = newList
				}

				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"user_id":            client.UserID,
				"remaining_sessions": len(h.clients[client.UserID]),
			})

		case event := <-h.broadcast:
			h.mu.RLock()
			if users, ok := h.orders[event.OrderNumber]; ok {
				for userID := range users {
					if clientList, ok := h.clients[userID]; ok {
						for _, client := range clientList {
							select {
							case client.Send <- event.Payload:
							default:
								// send buffer full, clean up asynchronously
								go h.Unregister(client)
								logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
									"user_id": userID,
								})
							}
						}
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyStatus pushes an order status change to every session tracking
// the order. Delivery is best effort: when no one is tracking the order
// or the broadcast queue is full the event is dropped.
func (h *Hub) NotifyStatus(orderNumber string, status model.OrderStatus, message string) {
	event := StatusEvent{
		Type:        "order_status",
		OrderNumber: orderNumber,
		Status:      string(status),
		Message:     message,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal status event", err, nil)
		return
	}

	select {
	case h.broadcast <- &orderEvent{OrderNumber: orderNumber, Payload: data}:
	default:
		logger.Warn("Broadcast channel full, status event dropped", map[string]interface{}{
			"order_number": orderNumber,
		})
	}
}

// Subscribe starts tracking an order for all of a user's sessions.
func (h *Hub) Subscribe(userID uint, orderNumber string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clientList, ok := h.clients[userID]; ok {
		for _, client := range clientList {
			client.mu.Lock()
			client.Orders[orderNumber] = true
			client.mu.Unlock()
		}

		if _, ok := h.orders[orderNumber]; !ok {
			h.orders[orderNumber] = make(map[uint]bool)
		}
		h.orders[orderNumber][userID] = true

		logger.Info("User tracking order", map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
		})
	}
}

// Unsubscribe stops tracking an order for all of a user's sessions.
func (h *Hub) Unsubscribe(userID uint, orderNumber string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clientList, ok := h.clients[userID]; ok {
		for _, client := range clientList {
			client.mu.Lock()
			delete(client.Orders, orderNumber)
			client.mu.Unlock()
		}
	}

	if users, ok := h.orders[orderNumber]; ok {
		delete(users, userID)
		if len(users) == 0 {
			delete(h.orders, orderNumber)
		}

		logger.Info("User stopped tracking order", map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
		})
	}
}

// Register queues a client for registration.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister queues a client for removal.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsUserOnline reports whether a user has at least one open session.
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// HandleClientMessage processes an inbound subscribe/unsubscribe message.
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	// rate limit check
	client.RateMu.Lock()
	now := time.Now()
	if now.Sub(client.LastResetTime) >= time.Second {
		client.MessageCount = 0
		client.LastResetTime = now
	}
	client.MessageCount++
	count := client.MessageCount
	client.RateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"user_id": client.UserID,
			"count":   count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", map[string]interface{}{
			"user_id": client.UserID,
			"error":   err.Error(),
		})
		return
	}

	if msg.OrderNumber == "" {
		return
	}

	switch msg.Type {
	case "subscribe":
		if h.canTrack != nil && !h.canTrack(client.UserID, msg.OrderNumber) {
			logger.Warn("Subscription rejected, order not owned by user", map[string]interface{}{
				"user_id":      client.UserID,
				"order_number": msg.OrderNumber,
			})
			return
		}
		h.Subscribe(client.UserID, msg.OrderNumber)
	case "unsubscribe":
		h.Unsubscribe(client.UserID, msg.OrderNumber)
	}
}
