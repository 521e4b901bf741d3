//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/office-market-explorer/internal/adapter/kafka"
	"github.com/couchcryptid/office-market-explorer/internal/adapter/source"
	"github.com/couchcryptid/office-market-explorer/internal/config"
	"github.com/couchcryptid/office-market-explorer/internal/domain"
	"github.com/couchcryptid/office-market-explorer/internal/explorer"
	"github.com/couchcryptid/office-market-explorer/internal/observability"
	"github.com/couchcryptid/office-market-explorer/internal/selection"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSelectionTopic = "test-selection-events"

var fixturePath = filepath.Join("..", "..", "data", "mock", "market_data.json")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("market-explorer-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestSelectionEventsPublished drives a selector change through the explorer
// and reads the resulting event back from Kafka.
func TestSelectionEventsPublished(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSelectionTopic)

	cfg := &config.Config{
		KafkaBrokers:        []string{broker},
		KafkaSelectionTopic: testSelectionTopic,
		EventsEnabled:       true,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	exp := explorer.New(source.NewFileSource(fixturePath), writer, discardLogger(), metrics, 16)
	require.NoError(t, exp.Load(ctx))

	from := domain.Selection{Country: "Czech Republic", City: "Prague", Period: "Q4 2023"}
	res, err := exp.Select(ctx, from, selection.Event{Kind: selection.SelectCountry, Value: "Hungary"})
	require.NoError(t, err)
	require.Equal(t, "Budapest", res.Selection.City)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.EventsPublished), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.PublishErrors), 0)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testSelectionTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from selection topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "Hungary/Budapest", string(msg.Key))
	assert.Equal(t, "select_country", headers["kind"])
	assert.NotEmpty(t, headers["occurred_at"])

	var change domain.SelectionChange
	require.NoError(t, json.Unmarshal(msg.Value, &change))
	assert.Equal(t, from, change.From)
	assert.Equal(t, res.Selection, change.To)
	assert.Equal(t, "Hungary", change.Value)
	assert.Contains(t, change.ID, "select_country-")
}

// TestSelectionEvents_NoChangeNotPublished checks that a selector event that
// leaves the state unchanged produces no message.
func TestSelectionEvents_NoChangeNotPublished(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSelectionTopic)

	writer := kafka.NewWriter(&config.Config{
		KafkaBrokers:        []string{broker},
		KafkaSelectionTopic: testSelectionTopic,
	}, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	exp := explorer.New(source.NewFileSource(fixturePath), writer, discardLogger(), metrics, 16)
	require.NoError(t, exp.Load(ctx))

	sel := domain.Selection{Country: "Hungary", City: "Budapest", Period: "Q3 2023"}
	_, err := exp.Select(ctx, sel, selection.Event{Kind: selection.SelectPeriod, Value: "Q3 2023"})
	require.NoError(t, err)

	assert.InDelta(t, 0, testutil.ToFloat64(metrics.EventsPublished), 0)
}
