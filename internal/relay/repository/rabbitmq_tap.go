package repository

import (
	"context"
	"encoding/json"
	"time"

	"presence_relay_service/internal/relay/domain"
	"presence_relay_service/pkg/database"

	"github.com/streadway/amqp"
)

// RabbitTap publish tap records to a rabbitmq exchange
type RabbitTap struct {
	repo       database.RabbitRepo
	exchange   string
	routingKey string
}

// NewRabbitTap create RabbitTap
func NewRabbitTap(repo database.RabbitRepo, exchange, routingKey string) *RabbitTap {
	return &RabbitTap{repo: repo, exchange: exchange, routingKey: routingKey}
}

// Publish publish one record, routing key is "<routingKey>.<kind>"
func (r *RabbitTap) Publish(ctx context.Context, record domain.TapRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.repo.Publish(r.exchange, r.routingKey+"."+string(record.Kind), false, false, amqp.Publishing{
		ContentType: "application/json",
		Type:        string(record.Kind),
		Timestamp:   time.UnixMilli(record.Timestamp),
		Body:        data,
	})
}

// Close close channel and connection
func (r *RabbitTap) Close() error {
	return r.repo.Close()
}
