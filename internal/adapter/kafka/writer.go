package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/calendar-map-service/internal/domain"
)

// Writer publishes enriched map pins to a Kafka sink topic for downstream
// consumers. It implements mapview.PinPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishPins serializes and publishes multiple pins in a single
// WriteMessages call for efficiency.
func (w *Writer) PublishPins(ctx context.Context, pins []domain.MapPin) error {
	if len(pins) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(pins))
	for i := range pins {
		msg, err := serializeToMessage(pins[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a pin into a Kafka message keyed by event ID.
func serializeToMessage(pin domain.MapPin) (kafkago.Message, error) {
	data, err := json.Marshal(pin)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize map pin: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(pin.EventID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "published_at", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}, nil
}
