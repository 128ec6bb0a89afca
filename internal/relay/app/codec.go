package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"presence_relay_service/internal/relay/domain"
)

var (
	// ErrMalformedFrame frame or payload is not valid JSON of the expected shape
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrUnknownAction action is not accepted from a client
	ErrUnknownAction = errors.New("unknown action")
	// ErrMissingField a required payload field is empty
	ErrMissingField = errors.New("missing field")
)

// ParseRequest decode one client frame into an inbound event.
// boundUser is the username the connection last joined with, used when sender is omitted.
func ParseRequest(conn domain.ConnectionID, boundUser string, raw []byte) (domain.InboundEvent, error) {
	var req domain.WSRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch domain.Action(req.Action) {
	case domain.Join:
		username, err := decodeJoin(req.Payload)
		if err != nil {
			return nil, err
		}
		if username == "" {
			return nil, fmt.Errorf("%w: username", ErrMissingField)
		}
		return domain.JoinEvent{Conn: conn, Username: username}, nil

	case domain.SendPrivateMessage:
		var p domain.PrivateMessagePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		sender := orDefault(p.Sender, boundUser)
		if sender == "" {
			return nil, fmt.Errorf("%w: sender", ErrMissingField)
		}
		if p.Recipient == "" {
			return nil, fmt.Errorf("%w: recipient", ErrMissingField)
		}
		return domain.SendPrivateMessageEvent{Conn: conn, Sender: sender, Recipient: p.Recipient, Text: p.Text}, nil

	case domain.MarkMessagesAsRead:
		var p domain.MarkReadPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		if p.User == "" {
			return nil, fmt.Errorf("%w: user", ErrMissingField)
		}
		if p.Sender == "" {
			return nil, fmt.Errorf("%w: sender", ErrMissingField)
		}
		return domain.MarkMessagesAsReadEvent{Conn: conn, User: p.User, Sender: p.Sender}, nil

	case domain.Typing:
		var p domain.TypingPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		if p.Recipient == "" {
			return nil, fmt.Errorf("%w: recipient", ErrMissingField)
		}
		return domain.TypingEvent{Conn: conn, Sender: orDefault(p.Sender, boundUser), Recipient: p.Recipient}, nil

	case domain.StopTyping:
		var p domain.TypingPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		if p.Recipient == "" {
			return nil, fmt.Errorf("%w: recipient", ErrMissingField)
		}
		return domain.StopTypingEvent{Conn: conn, Recipient: p.Recipient}, nil

	default:
		// disconnect 只能由連線關閉產生
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

// join payload 可以是 "alice" 或 {"username":"alice"}
func decodeJoin(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var username string
		if err := json.Unmarshal(trimmed, &username); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedFrame, err)
		}
		return username, nil
	}
	var p domain.JoinPayload
	if err := decodePayload(raw, &p); err != nil {
		return "", err
	}
	return p.Username, nil
}

func decodePayload(raw json.RawMessage, v interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%w: empty payload", ErrMalformedFrame)
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return nil
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
