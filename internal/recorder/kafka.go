package recorder

import (
	"context"
	"encoding/json"
	"fmt"

	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/segmentio/kafka-go"
)

const eventOrderRecorded = "order_recorded"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaRecorder publishes each order to a topic keyed by order id.
type KafkaRecorder struct {
	writer messageWriter
}

func NewKafkaRecorder(topic string, brokers ...string) *KafkaRecorder {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		MaxAttempts:            1,
		RequiredAcks:           kafka.RequireOne,
	}
	return &KafkaRecorder{writer: w}
}

func (k *KafkaRecorder) Record(ctx context.Context, order *d.OrderRecord) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order record: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventOrderRecorded)},
		},
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order record: %w", err)
	}
	return nil
}

func (k *KafkaRecorder) Close() error {
	return k.writer.Close()
}
