package repository

import (
	"context"
	"encoding/json"
	"time"

	"presence_relay_service/internal/relay/domain"

	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaTap write tap records to a kafka topic, keyed by record kind
type KafkaTap struct {
	writer kafkaWriter
}

// NewKafkaTap create KafkaTap
func NewKafkaTap(writer kafkaWriter) *KafkaTap {
	return &KafkaTap{writer: writer}
}

// Publish write one record
func (k *KafkaTap) Publish(ctx context.Context, record domain.TapRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(record.Kind),
		Value: data,
		Time:  time.UnixMilli(record.Timestamp),
	})
}

// Close flush and close the writer
func (k *KafkaTap) Close() error {
	return k.writer.Close()
}
