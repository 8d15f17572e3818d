package recorder

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	d "github.com/fjod/go_storefront/internal/domain"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

func setupKafka(t *testing.T) string {
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers, "broker address should not be empty")

	return brokers[0]
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	err = conn.CreateTopics(kafkaGo.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil {
		t.Logf("topic creation error (may already exist): %v", err)
	}
}

func TestKafkaRecorder_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping kafka integration test in short mode")
	}
	broker := setupKafka(t)
	topic := "orders-recorded"
	createTopic(t, broker, topic)

	rec := NewKafkaRecorder(topic, broker)
	defer rec.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.Eventually(t, func() bool {
		return rec.Record(ctx, testRecord()) == nil
	}, 20*time.Second, 500*time.Millisecond)

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)

	assert.Equal(t, "order_1", string(msg.Key))
	var back d.OrderRecord
	require.NoError(t, json.Unmarshal(msg.Value, &back))
	assert.Equal(t, "pay_1", back.PaymentID)
	assert.Len(t, back.Items, 2)
}
