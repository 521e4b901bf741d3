package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/office-market-explorer/internal/config"
	"github.com/couchcryptid/office-market-explorer/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces selection-change events to a Kafka topic.
// It implements explorer.EventPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured selection topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSelectionTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes one selection change. Changes for the same city share a key
// and therefore a partition, so they stay ordered.
func (w *Writer) Publish(ctx context.Context, change domain.SelectionChange) error {
	msg, err := serializeToMessage(change)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish selection change %s: %w", change.ID, err)
	}
	w.logger.Debug("selection change published", "id", change.ID, "kind", change.Kind)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a SelectionChange into a Kafka message.
func serializeToMessage(change domain.SelectionChange) (kafkago.Message, error) {
	data, err := json.Marshal(change)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize selection change: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(change.To.Country + "/" + change.To.City),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(change.Kind)},
			{Key: "occurred_at", Value: []byte(change.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
