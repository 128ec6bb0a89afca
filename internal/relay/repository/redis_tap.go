package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"presence_relay_service/internal/relay/domain"
	"presence_relay_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// RedisTap publish tap records to a redis pub/sub channel
type RedisTap struct {
	client  redisPublisher
	channel string
}

// NewRedisTap create RedisTap
func NewRedisTap(client redisPublisher, channel string) *RedisTap {
	return &RedisTap{client: client, channel: channel}
}

// Publish 將 record 序列化後，發布到 channel
func (r *RedisTap) Publish(ctx context.Context, record domain.TapRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel, data).Err()
}

// Close close the redis client
func (r *RedisTap) Close() error {
	return r.client.Close()
}

// WatchRedisTap 訂閱 tap channel，收到 record 後呼叫 handler, ctx 結束時關閉訂閱
func WatchRedisTap(ctx context.Context, client *redis.Client, channel string, handler func(domain.TapRecord)) error {
	sub := client.Subscribe(ctx, channel)
	// 等待訂閱確認
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				var record domain.TapRecord
				if err := json.Unmarshal([]byte(m.Payload), &record); err != nil {
					logger.Log.Warn("tap record unmarshal failed", zap.String("channel", channel), zap.Error(err))
					continue
				}
				handler(record)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				return
			}
		}
	}()
	return nil
}
