package repository

import (
	"testing"

	"presence_relay_service/internal/relay/domain"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_JoinAndLookup(t *testing.T) {
	r := NewRegistry()

	_, replaced := r.Join("alice", "conn-a")
	assert.False(t, replaced)

	conn, ok := r.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, domain.ConnectionID("conn-a"), conn)

	_, ok = r.Lookup("carol")
	assert.False(t, ok)
}

func TestRegistry_RejoinLastWriterWins(t *testing.T) {
	r := NewRegistry()
	r.Join("alice", "conn-a")
	r.Join("bob", "conn-b")

	previous, replaced := r.Join("alice", "conn-c")
	assert.True(t, replaced)
	assert.Equal(t, domain.ConnectionID("conn-a"), previous)

	conn, _ := r.Lookup("alice")
	assert.Equal(t, domain.ConnectionID("conn-c"), conn)
	// 重新 join 保留原本順序, 不重複
	assert.Equal(t, []string{"alice", "bob"}, r.Usernames())
}

func TestRegistry_RemoveByConnection(t *testing.T) {
	r := NewRegistry()
	r.Join("alice", "conn-a")
	r.Join("bob", "conn-b")
	r.Join("dave", "conn-d")

	username, ok := r.RemoveByConnection("conn-b")
	assert.True(t, ok)
	assert.Equal(t, "bob", username)
	assert.Equal(t, []string{"alice", "dave"}, r.Usernames())

	_, ok = r.RemoveByConnection("conn-b")
	assert.False(t, ok)
}

func TestRegistry_RemoveByConnection_FirstMatchOnly(t *testing.T) {
	r := NewRegistry()
	r.Join("alice", "conn-a")
	r.Join("alias", "conn-a")

	username, ok := r.RemoveByConnection("conn-a")
	assert.True(t, ok)
	assert.Equal(t, "alice", username)
	assert.Equal(t, []string{"alias"}, r.Usernames())
}

func TestRegistry_DisplacedConnectionRemovesNothing(t *testing.T) {
	r := NewRegistry()
	r.Join("alice", "conn-a")
	r.Join("alice", "conn-b")

	_, ok := r.RemoveByConnection("conn-a")
	assert.False(t, ok)

	conn, ok := r.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, domain.ConnectionID("conn-b"), conn)
}

func TestRegistry_UsernamesNeverNil(t *testing.T) {
	r := NewRegistry()
	assert.NotNil(t, r.Usernames())
	assert.Empty(t, r.Usernames())

	r.Join("alice", "conn-a")
	list := r.Usernames()
	list[0] = "mallory"
	assert.Equal(t, []string{"alice"}, r.Usernames())
}
