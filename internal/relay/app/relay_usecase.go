package app

import (
	"fmt"

	"presence_relay_service/internal/relay/domain"
	"presence_relay_service/internal/relay/repository"
	"presence_relay_service/pkg/logger"

	"go.uber.org/zap"
)

// ActivityRecorder receives one activity record per dispatched event
type ActivityRecorder interface {
	Offer(record domain.TapRecord)
}

type nopRecorder struct{}

func (nopRecorder) Offer(domain.TapRecord) {}

// RelayUseCase event router, turns one inbound event into addressed outbound events
type RelayUseCase struct {
	directory      repository.SessionDirectory
	recorder       ActivityRecorder
	displaceNotify bool
}

// NewRelayUseCase create RelayUseCase, recorder may be nil
func NewRelayUseCase(directory repository.SessionDirectory, recorder ActivityRecorder, displaceNotify bool) *RelayUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &RelayUseCase{
		directory:      directory,
		recorder:       recorder,
		displaceNotify: displaceNotify,
	}
}

// Dispatch apply the event to the directory and return what must be sent, in order
func (uc *RelayUseCase) Dispatch(evt domain.InboundEvent) []domain.Outbound {
	switch e := evt.(type) {
	case domain.JoinEvent:
		return uc.join(e)
	case domain.SendPrivateMessageEvent:
		return uc.sendPrivateMessage(e)
	case domain.MarkMessagesAsReadEvent:
		return uc.markRead(e)
	case domain.TypingEvent:
		return uc.typing(e)
	case domain.StopTypingEvent:
		return uc.stopTyping(e)
	case domain.DisconnectEvent:
		return uc.disconnect(e)
	default:
		logger.Log.Warn("dispatch unknown event", zap.String("type", fmt.Sprintf("%T", evt)))
		return nil
	}
}

func (uc *RelayUseCase) join(e domain.JoinEvent) []domain.Outbound {
	previous, replaced := uc.directory.Join(e.Username, e.Conn)
	users := uc.directory.Usernames()
	logger.Log.Info("user join", zap.String("username", e.Username), zap.String("conn", string(e.Conn)), zap.Int("online", len(users)))

	out := make([]domain.Outbound, 0, 2)
	// 同名重複登入，舊連線失去綁定
	if replaced && previous != e.Conn {
		logger.Log.Info("username rebound", zap.String("username", e.Username), zap.String("previous", string(previous)))
		uc.recorder.Offer(domain.TapRecord{Kind: domain.TapDisplaced, Users: []string{e.Username}})
		if uc.displaceNotify {
			out = append(out, domain.To(previous, domain.SessionDisplaced, domain.DisplacedPayload{Username: e.Username}))
		}
	}

	uc.recorder.Offer(domain.TapRecord{Kind: domain.TapPresence, Users: users})
	return append(out, domain.ToAll(domain.UpdateUsers, users))
}

func (uc *RelayUseCase) sendPrivateMessage(e domain.SendPrivateMessageEvent) []domain.Outbound {
	count := uc.directory.RecordDelivery(e.Sender, e.Recipient)
	target, online := uc.directory.Lookup(e.Recipient)

	uc.recorder.Offer(domain.TapRecord{
		Kind:      domain.TapDelivery,
		Sender:    e.Sender,
		Recipient: e.Recipient,
		Unread:    count,
		Delivered: online,
	})

	if !online {
		logger.Log.Debug("recipient offline", zap.String("sender", e.Sender), zap.String("recipient", e.Recipient), zap.Int("unread", count))
		return nil
	}

	return []domain.Outbound{
		domain.To(target, domain.ReceivePrivateMessage, domain.ReceivedMessage{Sender: e.Sender, Text: e.Text}),
		domain.To(target, domain.UpdateUnreadMessages, uc.directory.SnapshotFor(e.Recipient)),
	}
}

func (uc *RelayUseCase) markRead(e domain.MarkMessagesAsReadEvent) []domain.Outbound {
	uc.directory.MarkRead(e.User, e.Sender)
	uc.recorder.Offer(domain.TapRecord{Kind: domain.TapRead, Sender: e.Sender, Recipient: e.User})

	target, online := uc.directory.Lookup(e.User)
	if !online {
		return nil
	}
	return []domain.Outbound{
		domain.To(target, domain.UpdateUnreadMessages, uc.directory.SnapshotFor(e.User)),
	}
}

func (uc *RelayUseCase) typing(e domain.TypingEvent) []domain.Outbound {
	target, online := uc.directory.Lookup(e.Recipient)
	if !online {
		return nil
	}
	return []domain.Outbound{domain.To(target, domain.UserTyping, e.Sender)}
}

func (uc *RelayUseCase) stopTyping(e domain.StopTypingEvent) []domain.Outbound {
	target, online := uc.directory.Lookup(e.Recipient)
	if !online {
		return nil
	}
	return []domain.Outbound{domain.To(target, domain.UserStoppedTyping, nil)}
}

func (uc *RelayUseCase) disconnect(e domain.DisconnectEvent) []domain.Outbound {
	username, removed := uc.directory.RemoveByConnection(e.Conn)
	users := uc.directory.Usernames()
	if removed {
		logger.Log.Info("user disconnect", zap.String("username", username), zap.String("conn", string(e.Conn)), zap.Int("online", len(users)))
	} else {
		logger.Log.Debug("anonymous disconnect", zap.String("conn", string(e.Conn)))
	}

	uc.recorder.Offer(domain.TapRecord{Kind: domain.TapPresence, Users: users})
	return []domain.Outbound{domain.ToAll(domain.UpdateUsers, users)}
}

// Stats current directory sizes
func (uc *RelayUseCase) Stats() repository.DirectoryStats {
	return uc.directory.Stats()
}
