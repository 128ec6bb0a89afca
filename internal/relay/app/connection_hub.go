package app

import (
	"encoding/json"
	"sync"

	"presence_relay_service/internal/relay/domain"
	"presence_relay_service/pkg/logger"

	"go.uber.org/zap"
)

// Client send side of one live connection
type Client struct {
	ID   domain.ConnectionID
	Send chan []byte
}

// ConnectionHub ConnectionID -> send queue of every live connection
type ConnectionHub struct {
	mu      sync.RWMutex
	clients map[domain.ConnectionID]*Client
}

// NewConnectionHub create ConnectionHub
func NewConnectionHub() *ConnectionHub {
	return &ConnectionHub{clients: make(map[domain.ConnectionID]*Client)}
}

// Register add a connection with a buffered send queue
func (h *ConnectionHub) Register(id domain.ConnectionID, buffer int) *Client {
	if buffer <= 0 {
		buffer = 1
	}
	c := &Client{ID: id, Send: make(chan []byte, buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	// 同一 id 重複註冊時關閉舊的 queue
	if old, ok := h.clients[id]; ok {
		close(old.Send)
	}
	h.clients[id] = c
	return c
}

// Unregister remove the connection and close its send queue
func (h *ConnectionHub) Unregister(id domain.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.Send)
	}
}

// Count number of live connections
func (h *ConnectionHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Deliver encode once, then enqueue to the target or to every connection
func (h *ConnectionHub) Deliver(out domain.Outbound) {
	frame, err := json.Marshal(out.Response)
	if err != nil {
		logger.Log.Error("encode outbound failed", zap.String("action", out.Response.Action), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if out.Broadcast {
		for _, c := range h.clients {
			h.enqueue(c, out.Response.Action, frame)
		}
		return
	}

	c, ok := h.clients[out.Target]
	if !ok {
		// 連線已關閉，忽略
		logger.Log.Debug("deliver to closed connection", zap.String("conn", string(out.Target)), zap.String("action", out.Response.Action))
		return
	}
	h.enqueue(c, out.Response.Action, frame)
}

func (h *ConnectionHub) enqueue(c *Client, action string, frame []byte) {
	select {
	case c.Send <- frame:
	default:
		logger.Log.Warn("send queue full, frame dropped", zap.String("conn", string(c.ID)), zap.String("action", action))
	}
}
