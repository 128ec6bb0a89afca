package repository

import "presence_relay_service/internal/relay/domain"

// UnreadLedger recipient -> sender -> unread count. Every stored count is >= 1.
// Not safe for concurrent use; SessionDirectory serializes access.
type UnreadLedger struct {
	entries map[string]map[string]int
}

// NewUnreadLedger create an empty UnreadLedger
func NewUnreadLedger() *UnreadLedger {
	return &UnreadLedger{entries: make(map[string]map[string]int)}
}

// RecordDelivery count one more message from sender to recipient, return the new count
func (l *UnreadLedger) RecordDelivery(sender, recipient string) int {
	threads, ok := l.entries[recipient]
	if !ok {
		threads = make(map[string]int)
		l.entries[recipient] = threads
	}
	threads[sender]++
	return threads[sender]
}

// MarkRead drop the (recipient, sender) entry, no-op when absent
func (l *UnreadLedger) MarkRead(recipient, sender string) {
	threads, ok := l.entries[recipient]
	if !ok {
		return
	}
	delete(threads, sender)
	if len(threads) == 0 {
		delete(l.entries, recipient)
	}
}

// SnapshotFor copy of recipient's unread map, empty when none
func (l *UnreadLedger) SnapshotFor(recipient string) domain.UnreadSnapshot {
	threads := l.entries[recipient]
	out := make(domain.UnreadSnapshot, len(threads))
	for sender, count := range threads {
		out[sender] = count
	}
	return out
}

// Recipients number of recipients holding at least one unread entry
func (l *UnreadLedger) Recipients() int {
	return len(l.entries)
}
