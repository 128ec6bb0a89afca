package repository

import (
	"context"

	"presence_relay_service/internal/relay/domain"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/mock"
)

// MockEventTap Mock EventTap
type MockEventTap struct {
	mock.Mock
}

// Publish moke publish
func (m *MockEventTap) Publish(ctx context.Context, record domain.TapRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// Close moke close
func (m *MockEventTap) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRedisPublisher Mock redis client
type MockRedisPublisher struct {
	mock.Mock
}

// Publish moke redis publish
func (m *MockRedisPublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	args := m.Called(channel, message)
	return redis.NewIntResult(1, args.Error(0))
}

// Close moke close
func (m *MockRedisPublisher) Close() error {
	return m.Called().Error(0)
}

// MockKafkaWriter Mock kafka writer
type MockKafkaWriter struct {
	mock.Mock
}

// WriteMessages moke write
func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(msgs)
	return args.Error(0)
}

// Close moke close
func (m *MockKafkaWriter) Close() error {
	return m.Called().Error(0)
}

// MockRabbitRepo Mock database.RabbitRepo
type MockRabbitRepo struct {
	mock.Mock
}

// GetRabbit moke channel getter
func (m *MockRabbitRepo) GetRabbit() *amqp.Channel {
	return nil
}

// DeclareExchange moke declare
func (m *MockRabbitRepo) DeclareExchange(exchange string) error {
	return m.Called(exchange).Error(0)
}

// Publish moke publish
func (m *MockRabbitRepo) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, msg)
	return args.Error(0)
}

// Close moke close
func (m *MockRabbitRepo) Close() error {
	return m.Called().Error(0)
}
