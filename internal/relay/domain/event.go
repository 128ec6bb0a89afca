package domain

// ConnectionID opaque handle of one live transport session
type ConnectionID string

// UnreadSnapshot sender -> unread count, scoped to one recipient
type UnreadSnapshot map[string]int

// InboundEvent one event entering the router. Implemented only by the types below.
type InboundEvent interface {
	Action() Action
	Origin() ConnectionID
}

// JoinEvent bind Username to the origin connection
type JoinEvent struct {
	Conn     ConnectionID
	Username string
}

// SendPrivateMessageEvent direct message
type SendPrivateMessageEvent struct {
	Conn      ConnectionID
	Sender    string
	Recipient string
	Text      string
}

// MarkMessagesAsReadEvent clear User's unread thread from Sender
type MarkMessagesAsReadEvent struct {
	Conn   ConnectionID
	User   string
	Sender string
}

// TypingEvent Sender is typing to Recipient
type TypingEvent struct {
	Conn      ConnectionID
	Sender    string
	Recipient string
}

// StopTypingEvent typing stopped towards Recipient
type StopTypingEvent struct {
	Conn      ConnectionID
	Recipient string
}

// DisconnectEvent transport closed
type DisconnectEvent struct {
	Conn ConnectionID
}

// Action event name
func (e JoinEvent) Action() Action { return Join }

// Origin connection the event came from
func (e JoinEvent) Origin() ConnectionID { return e.Conn }

// Action event name
func (e SendPrivateMessageEvent) Action() Action { return SendPrivateMessage }

// Origin connection the event came from
func (e SendPrivateMessageEvent) Origin() ConnectionID { return e.Conn }

// Action event name
func (e MarkMessagesAsReadEvent) Action() Action { return MarkMessagesAsRead }

// Origin connection the event came from
func (e MarkMessagesAsReadEvent) Origin() ConnectionID { return e.Conn }

// Action event name
func (e TypingEvent) Action() Action { return Typing }

// Origin connection the event came from
func (e TypingEvent) Origin() ConnectionID { return e.Conn }

// Action event name
func (e StopTypingEvent) Action() Action { return StopTyping }

// Origin connection the event came from
func (e StopTypingEvent) Origin() ConnectionID { return e.Conn }

// Action event name
func (e DisconnectEvent) Action() Action { return Disconnect }

// Origin connection the event came from
func (e DisconnectEvent) Origin() ConnectionID { return e.Conn }

// Outbound one addressed (or broadcast) event leaving the router
type Outbound struct {
	Broadcast bool
	Target    ConnectionID
	Response  WSResponse
}

// To build an outbound addressed to a single connection
func To(target ConnectionID, action Action, payload interface{}) Outbound {
	return Outbound{Target: target, Response: WSResponse{Action: string(action), Payload: payload}}
}

// ToAll build a broadcast outbound
func ToAll(action Action, payload interface{}) Outbound {
	return Outbound{Broadcast: true, Response: WSResponse{Action: string(action), Payload: payload}}
}
