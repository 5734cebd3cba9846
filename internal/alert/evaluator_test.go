package alert

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vignesh678/stock-glass-visualizer/internal/events"
	"github.com/vignesh678/stock-glass-visualizer/internal/feed"
	"github.com/vignesh678/stock-glass-visualizer/internal/watchlist"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestCrossed(t *testing.T) {
	tests := []struct {
		name            string
		prev, next, tgt string
		want            bool
	}{
		{name: "up through", prev: "2550", next: "2570", tgt: "2567.35", want: true},
		{name: "down through", prev: "2570", next: "2550", tgt: "2567.35", want: true},
		{name: "up onto target", prev: "99", next: "100", tgt: "100", want: true},
		{name: "down onto target", prev: "101", next: "100", tgt: "100", want: true},
		{name: "leaving target upward", prev: "100", next: "101", tgt: "100", want: false},
		{name: "leaving target downward", prev: "100", next: "99", tgt: "100", want: false},
		{name: "resting on target", prev: "100", next: "100", tgt: "100", want: false},
		{name: "stays below", prev: "90", next: "95", tgt: "100", want: false},
		{name: "stays above", prev: "110", next: "105", tgt: "100", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Crossed(d(tt.prev), d(tt.next), d(tt.tgt)))
		})
	}
}

func TestEvaluate_Reliance(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	entry := watchlist.Entry{ID: 1, Symbol: "RELIANCE", Name: "Reliance Industries Ltd", Price: d("2550"), TargetPrice: dp("2567.35")}

	updated, ev := Evaluate(entry, feed.Snapshot{ID: 1, Price: d("2570"), At: at})

	assert.True(t, updated.Price.Equal(d("2570")))
	require.NotNil(t, updated.TargetPrice)
	assert.True(t, updated.TargetPrice.Equal(d("2567.35")))
	require.NotNil(t, ev)
	assert.Equal(t, "RELIANCE", ev.Symbol)
	assert.True(t, ev.TargetPrice.Equal(d("2567.35")))
	assert.True(t, ev.PreviousPrice.Equal(d("2550")))
	assert.Equal(t, events.DirectionUp, ev.Direction)
	assert.Equal(t, at, ev.At)
}

func TestEvaluate_Down(t *testing.T) {
	entry := watchlist.Entry{ID: 2, Symbol: "TCS", Price: d("3460"), TargetPrice: dp("3450")}
	_, ev := Evaluate(entry, feed.Snapshot{ID: 2, Price: d("3449.99")})
	require.NotNil(t, ev)
	assert.Equal(t, events.DirectionDown, ev.Direction)
}

func TestEvaluate_NoTarget(t *testing.T) {
	entry := watchlist.Entry{ID: 1, Symbol: "RELIANCE", Price: d("2550")}
	updated, ev := Evaluate(entry, feed.Snapshot{ID: 1, Price: d("2570")})
	assert.Nil(t, ev)
	assert.True(t, updated.Price.Equal(d("2570")))
}

func TestSubjectAndMessage(t *testing.T) {
	e := events.AlertCrossed{Symbol: "RELIANCE", Name: "Reliance Industries Ltd", TargetPrice: d("2567.35")}
	assert.Equal(t, "StockGlass Alert: RELIANCE Target Price Reached", Subject(e))
	assert.Equal(t, "RELIANCE (Reliance Industries Ltd) has reached your target price of ₹2,567.35!", Message(e))
}
