// Package changefeed broadcasts row changes on bookings and parking lots so
// dashboards can refresh without polling.
//
// Services publish through Publisher. When Kafka is enabled events go to one
// topic per table and every instance relays what it consumes into its local
// Hub; otherwise events go straight to the Hub.
package changefeed

//go:generate go run go.uber.org/mock/mockgen -source=./changefeed.go -destination=./mocks/changefeed_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"parkflow/config"
	"parkflow/infras/kafka"
	"parkflow/shared/timezone"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

const (
	TableBookings    = "bookings"
	TableParkingLots = "parking_lots"

	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Tables lists what clients may subscribe to.
var Tables = []string{TableBookings, TableParkingLots}

type Event struct {
	Table  string    `json:"table"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	LotID  string    `json:"lot_id,omitempty"`
	At     time.Time `json:"at"`
}

func NewEvent(table, action, id, lotID string) Event {
	return Event{
		Table:  table,
		Action: action,
		ID:     id,
		LotID:  lotID,
		At:     timezone.Now(),
	}
}

func IsKnownTable(table string) bool {
	return slices.Contains(Tables, table)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type Feed interface {
	Publisher
	Subscribe(table string) (<-chan Event, func())
	Run(ctx context.Context) error
}

type feedImpl struct {
	cfg     *config.Config
	kafka   kafka.Client
	hub     *Hub
	groupID string
}

// New builds the feed. Each instance consumes with its own group so that
// every instance sees every event.
func New(cfg *config.Config, kafkaClient kafka.Client) Feed {
	return &feedImpl{
		cfg:     cfg,
		kafka:   kafkaClient,
		hub:     NewHub(),
		groupID: cfg.Kafka.ConsumerGroup + "." + uuid.NewString(),
	}
}

func (f *feedImpl) topic(table string) string {
	return f.cfg.Kafka.TopicPrefix + table
}

func (f *feedImpl) Publish(ctx context.Context, event Event) error {
	if !f.cfg.Kafka.Enable {
		f.hub.Broadcast(event)

		return nil
	}

	if err := f.kafka.Publish(ctx, f.topic(event.Table), event.ID, event); err != nil {
		return fmt.Errorf("failed to publish %s change: %w", event.Table, err)
	}

	return nil
}

func (f *feedImpl) Subscribe(table string) (<-chan Event, func()) {
	return f.hub.Subscribe(table)
}

// Run relays Kafka topics into the local hub until ctx ends. With Kafka
// disabled it only waits for ctx.
func (f *feedImpl) Run(ctx context.Context) error {
	if !f.cfg.Kafka.Enable {
		<-ctx.Done()

		return nil
	}

	group, gctx := errgroup.WithContext(ctx)

	for _, table := range Tables {
		topic := f.topic(table)

		group.Go(func() error {
			return f.kafka.Consume(gctx, f.groupID, topic, f.relay) //nolint:wrapcheck
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("change feed consumer stopped: %w", err)
	}

	return nil
}

func (f *feedImpl) relay(_ context.Context, msg kafkaGo.Message) error {
	var event Event

	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error().Err(err).Str("topic", msg.Topic).Msg("dropping malformed change event")

		return nil
	}

	f.hub.Broadcast(event)

	return nil
}

// NewPublisher narrows a feed to its publishing side for services.
func NewPublisher(feed Feed) Publisher {
	return feed
}
