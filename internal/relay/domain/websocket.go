package domain

import "encoding/json"

// Action websocket event name
type Action string

const (
	// Join websocket action join
	Join Action = "join"
	// SendPrivateMessage websocket action send_private_message
	SendPrivateMessage Action = "send_private_message"
	// MarkMessagesAsRead websocket action mark_messages_as_read
	MarkMessagesAsRead Action = "mark_messages_as_read"
	// Typing websocket action typing
	Typing Action = "typing"
	// StopTyping websocket action stop_typing
	StopTyping Action = "stop_typing"
	// Disconnect transport close, never accepted from a client frame
	Disconnect Action = "disconnect"

	// UpdateUsers websocket event update_users
	UpdateUsers Action = "update_users"
	// ReceivePrivateMessage websocket event receive_private_message
	ReceivePrivateMessage Action = "receive_private_message"
	// UpdateUnreadMessages websocket event update_unread_messages
	UpdateUnreadMessages Action = "update_unread_messages"
	// UserTyping websocket event user_typing
	UserTyping Action = "user_typing"
	// UserStoppedTyping websocket event user_stopped_typing
	UserStoppedTyping Action = "user_stopped_typing"
	// SessionDisplaced websocket event session_displaced
	SessionDisplaced Action = "session_displaced"
)

// WSRequest websocket Request
type WSRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
}

// JoinPayload join payload
type JoinPayload struct {
	Username string `json:"username"`
}

// PrivateMessagePayload send_private_message payload
type PrivateMessagePayload struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// MarkReadPayload mark_messages_as_read payload
type MarkReadPayload struct {
	User   string `json:"user"`
	Sender string `json:"sender"`
}

// TypingPayload typing / stop_typing payload
type TypingPayload struct {
	Sender    string `json:"sender,omitempty"`
	Recipient string `json:"recipient"`
}

// ReceivedMessage receive_private_message payload
type ReceivedMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// DisplacedPayload session_displaced payload
type DisplacedPayload struct {
	Username string `json:"username"`
}
