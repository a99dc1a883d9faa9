package changefeed_test

import (
	"context"
	"encoding/json"
	"errors"
	"parkflow/config"
	"parkflow/infras/kafka"
	kafkaMocks "parkflow/infras/kafka/mocks"
	"parkflow/shared/changefeed"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func receive(t *testing.T, ch <-chan changefeed.Event) changefeed.Event {
	t.Helper()

	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")

		return changefeed.Event{}
	}
}

func TestHub_DeliversOnlyToTable(t *testing.T) {
	hub := changefeed.NewHub()

	bookings, cancelBookings := hub.Subscribe(changefeed.TableBookings)
	defer cancelBookings()

	lots, cancelLots := hub.Subscribe(changefeed.TableParkingLots)
	defer cancelLots()

	hub.Broadcast(changefeed.NewEvent(changefeed.TableBookings, changefeed.ActionInsert, "b1", "lot-1"))

	ev := receive(t, bookings)
	assert.Equal(t, "b1", ev.ID)
	assert.Equal(t, "lot-1", ev.LotID)

	select {
	case ev := <-lots:
		t.Fatalf("unexpected event on lots: %+v", ev)
	default:
	}
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := changefeed.NewHub()

	ch, cancel := hub.Subscribe(changefeed.TableBookings)
	assert.Equal(t, 1, hub.Subscribers(changefeed.TableBookings))

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers(changefeed.TableBookings))

	hub.Broadcast(changefeed.NewEvent(changefeed.TableBookings, changefeed.ActionUpdate, "b1", ""))
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := changefeed.NewHub()

	_, cancel := hub.Subscribe(changefeed.TableBookings)
	defer cancel()

	done := make(chan struct{})

	go func() {
		for range 100 {
			hub.Broadcast(changefeed.NewEvent(changefeed.TableBookings, changefeed.ActionUpdate, "b1", ""))
		}

		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full subscriber")
	}
}

func TestFeed_PublishWithoutKafkaGoesToHub(t *testing.T) {
	cfg := &config.Config{}
	feed := changefeed.New(cfg, nil)

	ch, cancel := feed.Subscribe(changefeed.TableParkingLots)
	defer cancel()

	err := feed.Publish(context.Background(), changefeed.NewEvent(changefeed.TableParkingLots, changefeed.ActionUpdate, "lot-1", "lot-1"))
	require.NoError(t, err)

	assert.Equal(t, "lot-1", receive(t, ch).ID)
}

func TestFeed_PublishWithKafka(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.TopicPrefix = "parkflow."

	feed := changefeed.New(cfg, client)
	event := changefeed.NewEvent(changefeed.TableBookings, changefeed.ActionInsert, "b1", "lot-1")

	client.EXPECT().Publish(gomock.Any(), "parkflow.bookings", "b1", event).Return(nil)
	assert.NoError(t, feed.Publish(context.Background(), event))

	client.EXPECT().Publish(gomock.Any(), "parkflow.bookings", "b1", event).Return(errors.New("broker down"))
	assert.Error(t, feed.Publish(context.Background(), event))
}

func TestFeed_RunRelaysConsumedEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.TopicPrefix = "parkflow."

	feed := changefeed.New(cfg, client)

	ch, cancel := feed.Subscribe(changefeed.TableBookings)
	defer cancel()

	payload, err := json.Marshal(changefeed.NewEvent(changefeed.TableBookings, changefeed.ActionUpdate, "b9", "lot-1"))
	require.NoError(t, err)

	client.EXPECT().
		Consume(gomock.Any(), gomock.Any(), "parkflow.bookings", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, handler kafka.Handler) error {
			_ = handler(ctx, kafkaGo.Message{Value: []byte("not json")})

			return handler(ctx, kafkaGo.Message{Value: payload})
		})
	client.EXPECT().
		Consume(gomock.Any(), gomock.Any(), "parkflow.parking_lots", gomock.Any()).
		Return(nil)

	require.NoError(t, feed.Run(context.Background()))
	assert.Equal(t, "b9", receive(t, ch).ID)
}

func TestIsKnownTable(t *testing.T) {
	assert.True(t, changefeed.IsKnownTable("bookings"))
	assert.True(t, changefeed.IsKnownTable("parking_lots"))
	assert.False(t, changefeed.IsKnownTable("users"))
}
