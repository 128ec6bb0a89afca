package repository

import (
	"sync"

	"presence_relay_service/internal/relay/domain"
)

// SessionDirectory who is online and what they have not read yet
type SessionDirectory interface {
	Join(username string, conn domain.ConnectionID) (previous domain.ConnectionID, replaced bool)
	Lookup(username string) (domain.ConnectionID, bool)
	RemoveByConnection(conn domain.ConnectionID) (string, bool)
	Usernames() []string

	RecordDelivery(sender, recipient string) int
	MarkRead(recipient, sender string)
	SnapshotFor(recipient string) domain.UnreadSnapshot

	Stats() DirectoryStats
}

// DirectoryStats sizes of the directory maps
type DirectoryStats struct {
	Online     int
	Recipients int
}

type sessionDirectory struct {
	mu       sync.Mutex
	registry *Registry
	ledger   *UnreadLedger
}

// NewSessionDirectory create an in-memory SessionDirectory, one lock over registry and ledger
func NewSessionDirectory() SessionDirectory {
	return &sessionDirectory{
		registry: NewRegistry(),
		ledger:   NewUnreadLedger(),
	}
}

func (d *sessionDirectory) Join(username string, conn domain.ConnectionID) (domain.ConnectionID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.Join(username, conn)
}

func (d *sessionDirectory) Lookup(username string) (domain.ConnectionID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.Lookup(username)
}

func (d *sessionDirectory) RemoveByConnection(conn domain.ConnectionID) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.RemoveByConnection(conn)
}

func (d *sessionDirectory) Usernames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.Usernames()
}

func (d *sessionDirectory) RecordDelivery(sender, recipient string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ledger.RecordDelivery(sender, recipient)
}

func (d *sessionDirectory) MarkRead(recipient, sender string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ledger.MarkRead(recipient, sender)
}

func (d *sessionDirectory) SnapshotFor(recipient string) domain.UnreadSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ledger.SnapshotFor(recipient)
}

func (d *sessionDirectory) Stats() DirectoryStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DirectoryStats{Online: d.registry.Len(), Recipients: d.ledger.Recipients()}
}
