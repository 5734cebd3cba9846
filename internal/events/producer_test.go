package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func fixedProducer(w *fakeWriter) *Producer {
	p := newProducer(w, "stockglass-test")
	p.now = func() time.Time { return time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC) }
	return p
}

func TestPublishAlertCrossed(t *testing.T) {
	w := &fakeWriter{}
	p := fixedProducer(w)

	err := p.PublishAlertCrossed(context.Background(), AlertCrossed{
		StockID:       1,
		Symbol:        "RELIANCE",
		Name:          "Reliance Industries Ltd",
		TargetPrice:   decimal.RequireFromString("2567.35"),
		PreviousPrice: decimal.RequireFromString("2550"),
		Price:         decimal.RequireFromString("2570"),
		Direction:     DirectionUp,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	assert.Equal(t, "RELIANCE", string(w.msgs[0].Key))

	var got struct {
		EventType string          `json:"event_type"`
		Key       string          `json:"key"`
		Payload   json.RawMessage `json:"payload"`
		Timestamp time.Time       `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, TypeAlertCrossed, got.EventType)
	assert.Equal(t, "RELIANCE", got.Key)
	assert.True(t, got.Timestamp.Equal(time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC)))

	var payload AlertCrossed
	require.NoError(t, json.Unmarshal(got.Payload, &payload))
	assert.True(t, payload.TargetPrice.Equal(decimal.RequireFromString("2567.35")))
	assert.Equal(t, DirectionUp, payload.Direction)
}

func TestPublishEmailRequested(t *testing.T) {
	w := &fakeWriter{}
	p := fixedProducer(w)

	err := p.PublishEmailRequested(context.Background(), EmailRequested{
		UserID:  "user-1",
		Email:   "a@example.com",
		Subject: "hello",
		Message: "world",
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "user-1", string(w.msgs[0].Key))
	assert.Contains(t, string(w.msgs[0].Value), TypeEmailRequested)
}

func TestPublish_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := fixedProducer(w)

	err := p.PublishEmailRequested(context.Background(), EmailRequested{UserID: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	p := fixedProducer(w)
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
	assert.Equal(t, "stockglass-test", p.Topic())
}
