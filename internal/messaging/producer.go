package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

var producerTracer = otel.Tracer("messaging/producer")

type Producer struct {
	writer *kafka.Writer
	topic  string
}

type ProducerOption func(*kafka.Writer)

// WithAsync makes Publish return once the message is queued. Delivery
// failures are only logged.
func WithAsync(logger *slog.Logger) ProducerOption {
	return func(w *kafka.Writer) {
		w.Async = true
		w.Completion = func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("failed to deliver change events", "error", err, "count", len(messages))
			}
		}
	}
}

func NewProducer(brokers []string, topic string, opts ...ProducerOption) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return &Producer{writer: w, topic: topic}
}

// EventKey routes every event of one entity to the same partition.
func EventKey(event domain.ChangeEvent) string {
	return fmt.Sprintf("%s:%d", event.Collection, event.EntityID)
}

func (p *Producer) Publish(ctx context.Context, event domain.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}

	key := EventKey(event)
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	ctx, span := producerTracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
			semconv.MessagingMessageID(event.EventID),
			attribute.String("crm.collection", string(event.Collection)),
			attribute.String("crm.op", string(event.Op)),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("write change event: %w", err)
	}

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
