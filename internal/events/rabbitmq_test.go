package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testEvent() domain.BookingEvent {
	return domain.BookingEvent{
		Type:        domain.BookingConfirmedEvent,
		BookingID:   3,
		BookingCode: "BK0123456789",
		UserID:      7,
		ShowtimeID:  1,
		Status:      domain.BookingPaid,
		TotalPrice:  decimal.RequireFromString("150000"),
		SeatIDs:     []int{1, 2},
		OccurredAt:  time.Date(2095, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishUsesEventTypeAsRoutingKey(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{ch: ch, exchange: DefaultExchange}

	err := p.Publish(context.Background(), testEvent())
	require.NoError(t, err)

	assert.Equal(t, "bookings", ch.exchange)
	assert.Equal(t, "booking.confirmed", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, "BK0123456789", body["bookingCode"])
	assert.Equal(t, "PAID", body["status"])
	assert.Equal(t, "150000", body["totalPrice"])
}

func TestPublishWrapsChannelError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &RabbitPublisher{ch: ch, exchange: DefaultExchange}

	err := p.Publish(context.Background(), testEvent())

	assert.ErrorContains(t, err, "booking.confirmed")
	assert.ErrorContains(t, err, "channel closed")
}

func TestRecordingPublisher(t *testing.T) {
	var r RecordingPublisher

	require.NoError(t, r.Publish(context.Background(), testEvent()))

	events := r.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.BookingConfirmedEvent, events[0].Type)
}
