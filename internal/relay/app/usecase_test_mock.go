package app

import (
	"context"
	"sync"

	"presence_relay_service/internal/relay/domain"
	"presence_relay_service/internal/relay/repository"

	"github.com/stretchr/testify/mock"
)

// MockSessionDirectory Mock repository.SessionDirectory
type MockSessionDirectory struct {
	mock.Mock
}

// Join moke join
func (m *MockSessionDirectory) Join(username string, conn domain.ConnectionID) (domain.ConnectionID, bool) {
	args := m.Called(username, conn)
	return args.Get(0).(domain.ConnectionID), args.Bool(1)
}

// Lookup moke lookup
func (m *MockSessionDirectory) Lookup(username string) (domain.ConnectionID, bool) {
	args := m.Called(username)
	return args.Get(0).(domain.ConnectionID), args.Bool(1)
}

// RemoveByConnection moke remove
func (m *MockSessionDirectory) RemoveByConnection(conn domain.ConnectionID) (string, bool) {
	args := m.Called(conn)
	return args.String(0), args.Bool(1)
}

// Usernames moke usernames
func (m *MockSessionDirectory) Usernames() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// RecordDelivery moke record delivery
func (m *MockSessionDirectory) RecordDelivery(sender, recipient string) int {
	args := m.Called(sender, recipient)
	return args.Int(0)
}

// MarkRead moke mark read
func (m *MockSessionDirectory) MarkRead(recipient, sender string) {
	m.Called(recipient, sender)
}

// SnapshotFor moke snapshot
func (m *MockSessionDirectory) SnapshotFor(recipient string) domain.UnreadSnapshot {
	args := m.Called(recipient)
	return args.Get(0).(domain.UnreadSnapshot)
}

// Stats moke stats
func (m *MockSessionDirectory) Stats() repository.DirectoryStats {
	args := m.Called()
	return args.Get(0).(repository.DirectoryStats)
}

// MockRecorder Mock ActivityRecorder
type MockRecorder struct {
	mock.Mock
}

// Offer moke offer
func (m *MockRecorder) Offer(record domain.TapRecord) {
	m.Called(record)
}

// MockDeliverer Mock Deliverer
type MockDeliverer struct {
	mock.Mock
}

// Deliver moke deliver
func (m *MockDeliverer) Deliver(out domain.Outbound) {
	m.Called(out)
}

// MockSubmitter Mock EventSubmitter, keeps every submitted event
type MockSubmitter struct {
	mock.Mock
	mu     sync.Mutex
	events []domain.InboundEvent
}

// Submit moke submit
func (m *MockSubmitter) Submit(ctx context.Context, evt domain.InboundEvent) error {
	m.mu.Lock()
	m.events = append(m.events, evt)
	m.mu.Unlock()
	args := m.Called(evt)
	return args.Error(0)
}

// Events submitted events in order
func (m *MockSubmitter) Events() []domain.InboundEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.InboundEvent(nil), m.events...)
}
