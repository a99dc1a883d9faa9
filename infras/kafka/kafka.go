package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"parkflow/config"
	"parkflow/infras/otel"
	"parkflow/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	otelAttrTopic = "kafka.topic"
	otelAttrKey   = "kafka.key"

	writeTimeout = 5 * time.Second
)

var ErrEmptyTopic = errors.New("kafka topic cannot be empty")

// Handler processes one record. Returning an error leaves the offset uncommitted.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	Publish(ctx context.Context, topic, key string, value any) (err error)
	Consume(ctx context.Context, groupID, topic string, handler Handler) (err error)
	Close() error
}

type kafkaClientImpl struct {
	config    *config.Config
	dialer    *kafkaGo.Dialer
	transport *kafkaGo.Transport
	otel      otel.Otel

	mu      sync.Mutex
	writers map[string]*kafkaGo.Writer
}

func New(config *config.Config, otel otel.Otel) Client {
	mechanism := plain.Mechanism{
		Username: config.Kafka.SASL.Username,
		Password: config.Kafka.SASL.Password,
	}

	dialer := &kafkaGo.Dialer{
		DualStack:     true,
		SASLMechanism: mechanism,
	}

	transport := &kafkaGo.Transport{
		SASL: mechanism,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config:    config,
		dialer:    dialer,
		transport: transport,
		otel:      otel,
		writers:   map[string]*kafkaGo.Writer{},
	}
}

func (k *kafkaClientImpl) writer(topic string) *kafkaGo.Writer {
	k.mu.Lock()
	defer k.mu.Unlock()

	if w, ok := k.writers[topic]; ok {
		return w
	}

	w := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(k.config.Kafka.Brokers...),
		Topic:                  topic,
		Transport:              k.transport,
		Balancer:               &kafkaGo.Hash{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	}
	k.writers[topic] = w

	return w
}

// Publish writes value as JSON. Records with the same key land on the same
// partition, so events for one row stay ordered.
func (k *kafkaClientImpl) Publish(ctx context.Context, topic, key string, value any) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if topic == "" {
		return ErrEmptyTopic
	}

	scope.SetAttributes(map[string]any{
		otelAttrTopic: topic,
		otelAttrKey:   key,
	})

	payload, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal kafka message value")

		return fmt.Errorf("failed to marshal kafka message value: %w", err)
	}

	err = k.writer(topic).WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to publish kafka message")

		return fmt.Errorf("failed to publish kafka message: %w", err)
	}

	return nil
}

// Consume blocks until ctx is cancelled.
func (k *kafkaClientImpl) Consume(ctx context.Context, groupID, topic string, handler Handler) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	if groupID == "" {
		groupID = k.config.Kafka.ConsumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close kafka reader")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Kafka consumer stopped")

				return nil
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to fetch kafka message")

			continue
		}

		msgCtx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Consume")
		scope.SetAttributes(map[string]any{
			otelAttrTopic: topic,
			otelAttrKey:   string(msg.Key),
		})

		if err := handler(msgCtx, msg); err != nil {
			scope.TraceError(err)
			scope.End()
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to handle kafka message")

			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to commit kafka offset")
		}

		scope.End()
	}
}

func (k *kafkaClientImpl) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	var errs []error

	for topic, w := range k.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close writer %s: %w", topic, err))
		}
	}

	k.writers = map[string]*kafkaGo.Writer{}

	return errors.Join(errs...)
}
