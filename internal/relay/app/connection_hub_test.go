package app

import (
	"encoding/json"
	"testing"

	"presence_relay_service/internal/relay/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFrame(t *testing.T, frame []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(frame, &m))
	return m
}

func TestConnectionHub_DeliverTargeted(t *testing.T) {
	hub := NewConnectionHub()
	a := hub.Register("ca", 4)
	b := hub.Register("cb", 4)

	hub.Deliver(domain.To("cb", domain.ReceivePrivateMessage, domain.ReceivedMessage{Sender: "alice", Text: "hi"}))

	require.Len(t, b.Send, 1)
	assert.Len(t, a.Send, 0)
	assert.JSONEq(t, `{"action":"receive_private_message","payload":{"sender":"alice","text":"hi"}}`, string(<-b.Send))
}

func TestConnectionHub_DeliverBroadcast(t *testing.T) {
	hub := NewConnectionHub()
	a := hub.Register("ca", 4)
	b := hub.Register("cb", 4)

	hub.Deliver(domain.ToAll(domain.UpdateUsers, []string{"alice", "bob"}))

	for _, c := range []*Client{a, b} {
		require.Len(t, c.Send, 1)
		m := decodeFrame(t, <-c.Send)
		assert.Equal(t, "update_users", m["action"])
		assert.Equal(t, []interface{}{"alice", "bob"}, m["payload"])
	}
}

func TestConnectionHub_EmptyPayloadShapes(t *testing.T) {
	hub := NewConnectionHub()
	c := hub.Register("c", 4)

	hub.Deliver(domain.ToAll(domain.UpdateUsers, []string{}))
	hub.Deliver(domain.To("c", domain.UpdateUnreadMessages, domain.UnreadSnapshot{}))
	hub.Deliver(domain.To("c", domain.UserStoppedTyping, nil))

	assert.JSONEq(t, `{"action":"update_users","payload":[]}`, string(<-c.Send))
	assert.JSONEq(t, `{"action":"update_unread_messages","payload":{}}`, string(<-c.Send))
	assert.JSONEq(t, `{"action":"user_stopped_typing"}`, string(<-c.Send))
}

func TestConnectionHub_UnknownTargetIsNoOp(t *testing.T) {
	hub := NewConnectionHub()
	c := hub.Register("c", 1)

	assert.NotPanics(t, func() {
		hub.Deliver(domain.To("gone", domain.UserTyping, "alice"))
	})
	assert.Len(t, c.Send, 0)
}

func TestConnectionHub_FullQueueDropsWithoutBlocking(t *testing.T) {
	hub := NewConnectionHub()
	slow := hub.Register("slow", 1)
	fast := hub.Register("fast", 4)

	hub.Deliver(domain.ToAll(domain.UpdateUsers, []string{"a"}))
	hub.Deliver(domain.ToAll(domain.UpdateUsers, []string{"a", "b"}))

	assert.Len(t, slow.Send, 1)
	assert.Len(t, fast.Send, 2)
	m := decodeFrame(t, <-slow.Send)
	assert.Equal(t, []interface{}{"a"}, m["payload"])
}

func TestConnectionHub_Unregister(t *testing.T) {
	hub := NewConnectionHub()
	c := hub.Register("c", 1)
	assert.Equal(t, 1, hub.Count())

	hub.Unregister("c")
	assert.Equal(t, 0, hub.Count())
	_, ok := <-c.Send
	assert.False(t, ok)

	assert.NotPanics(t, func() {
		hub.Unregister("c")
		hub.Deliver(domain.ToAll(domain.UpdateUsers, []string{}))
	})
}

func TestConnectionHub_RegisterSameIDReplacesQueue(t *testing.T) {
	hub := NewConnectionHub()
	old := hub.Register("c", 1)
	cur := hub.Register("c", 1)

	_, ok := <-old.Send
	assert.False(t, ok)
	assert.Equal(t, 1, hub.Count())

	hub.Deliver(domain.To("c", domain.UserTyping, "bob"))
	assert.Len(t, cur.Send, 1)
}
