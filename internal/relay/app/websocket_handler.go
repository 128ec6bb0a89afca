package app

import (
	"context"
	"errors"
	"time"

	"presence_relay_service/internal/relay/domain"
	"presence_relay_service/pkg/config"
	"presence_relay_service/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// WSConn the part of a websocket connection a session uses
type WSConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// EventSubmitter queue inbound events for dispatch
type EventSubmitter interface {
	Submit(ctx context.Context, evt domain.InboundEvent) error
}

// RelayWebsocketHandler one session per websocket connection
type RelayWebsocketHandler struct {
	hub          *ConnectionHub
	submitter    EventSubmitter
	sendBuffer   int
	pingInterval time.Duration
	readLimit    int64
	newID        func() domain.ConnectionID
}

// NewRelayWebsocketHandler create RelayWebsocketHandler
func NewRelayWebsocketHandler(hub *ConnectionHub, submitter EventSubmitter, cfg config.SessionConfig) *RelayWebsocketHandler {
	return &RelayWebsocketHandler{
		hub:          hub,
		submitter:    submitter,
		sendBuffer:   cfg.SendBuffer,
		pingInterval: cfg.PingInterval,
		readLimit:    cfg.ReadLimit,
		newID: func() domain.ConnectionID {
			return domain.ConnectionID(uuid.NewString())
		},
	}
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *RelayWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	if h.readLimit > 0 {
		conn.SetReadLimit(h.readLimit)
	}

	// server 發出 ping, client 回 pong 時延長 read deadline
	if h.pingInterval > 0 {
		pongWait := 2 * h.pingInterval
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Debug("websocket close frame", zap.Int("code", code), zap.String("text", text))
		return nil
	})

	h.serve(ctx, conn)
}

func (h *RelayWebsocketHandler) serve(ctx context.Context, conn WSConn) {
	id := h.newID()
	client := h.hub.Register(id, h.sendBuffer)
	logger.Log.Info("websocket open", zap.String("conn", string(id)))

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(conn, client)
	}()

	// disconnect 只在 readLoop 結束後送出, 排在這個連線所有事件之後
	reason := h.readLoop(ctx, conn, id)

	// 先移出 hub, 之後的 update_users 不會再送到這個連線
	h.hub.Unregister(id)
	if err := h.submitter.Submit(ctx, domain.DisconnectEvent{Conn: id}); err != nil {
		logger.Log.Warn("submit disconnect failed", zap.String("conn", string(id)), zap.Error(err))
	}
	_ = conn.Close()
	<-writerDone
	logger.Log.Info("websocket close", zap.String("conn", string(id)), zap.String("reason", reason))
}

// writeLoop 寫入失敗時只關閉連線, 讓 readLoop 的 ReadMessage 返回
func (h *RelayWebsocketHandler) writeLoop(conn WSConn, client *Client) {
	var tick <-chan time.Time
	if h.pingInterval > 0 {
		ticker := time.NewTicker(h.pingInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case frame, ok := <-client.Send:
			if !ok {
				// hub 已關閉 queue
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Log.Warn("websocket write failed", zap.String("conn", string(client.ID)), zap.Error(err))
				_ = conn.Close()
				return
			}
		case <-tick:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.Log.Warn("websocket ping failed", zap.String("conn", string(client.ID)), zap.Error(err))
				_ = conn.Close()
				return
			}
		}
	}
}

func (h *RelayWebsocketHandler) readLoop(ctx context.Context, conn WSConn, id domain.ConnectionID) string {
	var boundUser string
	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				return "closed by client"
			}
			logger.Log.Debug("websocket read error", zap.String("conn", string(id)), zap.Error(err))
			return "read error"
		}

		if mt != websocket.TextMessage {
			logger.Log.Warn("non-text frame ignored", zap.String("conn", string(id)), zap.Int("type", mt))
			continue
		}

		evt, err := ParseRequest(id, boundUser, msg)
		if err != nil {
			logger.Log.Warn("frame rejected", zap.String("conn", string(id)), zap.Error(err))
			continue
		}
		if join, ok := evt.(domain.JoinEvent); ok {
			boundUser = join.Username
		}

		if err := h.submitter.Submit(ctx, evt); err != nil {
			if !errors.Is(err, ErrDispatcherStopped) && !errors.Is(err, context.Canceled) {
				logger.Log.Error("submit event failed", zap.String("conn", string(id)), zap.Error(err))
			}
			return "dispatcher unavailable"
		}
	}
}
