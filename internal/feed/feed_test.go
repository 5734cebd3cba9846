package feed

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
)

func init() {
	logger.Init("test")
}

// sequence returns the given values in order, repeating the last one.
func sequence(values ...float64) func() float64 {
	var mu sync.Mutex
	i := 0
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func TestNew_Defaults(t *testing.T) {
	f := New(Options{})
	assert.Equal(t, DefaultInterval, f.Interval())
	assert.True(t, f.maxDelta.Equal(DefaultMaxDelta))
}

func TestQuote_Step(t *testing.T) {
	tests := []struct {
		name  string
		r     float64
		price string
	}{
		{name: "no movement", r: 0.5, price: "2567.35"},
		{name: "max down", r: 0, price: "2562.35"},
		{name: "up 2.5", r: 0.75, price: "2569.85"},
		{name: "rounded to paise", r: 0.5123, price: "2567.47"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(Options{Float64: sequence(tt.r)})
			snap, err := f.Quote(1)
			require.NoError(t, err)
			assert.Equal(t, "RELIANCE", snap.Symbol)
			assert.Equal(t, tt.price, snap.Price.StringFixed(2))
			assert.Equal(t, "2567.35", snap.PreviousPrice.StringFixed(2))
			assert.True(t, snap.Change.Equal(snap.Price.Sub(snap.PreviousPrice)))
		})
	}
}

func TestQuote_Walks(t *testing.T) {
	f := New(Options{Float64: sequence(1.0, 1.0)})
	first, err := f.Quote(1)
	require.NoError(t, err)
	second, err := f.Quote(1)
	require.NoError(t, err)

	assert.Equal(t, "2572.35", first.Price.StringFixed(2))
	assert.True(t, second.PreviousPrice.Equal(first.Price))
	assert.Equal(t, "2577.35", second.Price.StringFixed(2))
}

func TestQuote_FloorsAtOneRupee(t *testing.T) {
	f := New(Options{Float64: sequence(0), MaxDelta: decimal.NewFromInt(10000)})
	snap, err := f.Quote(7)
	require.NoError(t, err)
	assert.Equal(t, "1.00", snap.Price.StringFixed(2))
}

func TestQuote_UnknownStock(t *testing.T) {
	f := New(Options{})
	_, err := f.Quote(99)
	assert.ErrorIs(t, err, apperrors.ErrStockNotFound)
}

func TestSubscribe_DeliversKnownIDs(t *testing.T) {
	f := New(Options{Interval: 5 * time.Millisecond, Float64: sequence(0.5)})

	got := make(chan []Snapshot, 1)
	unsubscribe := f.Subscribe([]int{1, 99, 2}, func(s []Snapshot) {
		select {
		case got <- s:
		default:
		}
	})
	defer unsubscribe()

	select {
	case snaps := <-got:
		require.Len(t, snaps, 2)
		assert.Equal(t, 1, snaps[0].ID)
		assert.Equal(t, 2, snaps[1].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no tick delivered")
	}
}

func TestSubscribe_UnsubscribeStopsCallbacks(t *testing.T) {
	f := New(Options{Interval: 2 * time.Millisecond})

	var calls atomic.Int32
	unsubscribe := f.Subscribe([]int{1}, func([]Snapshot) { calls.Add(1) })

	require.Eventually(t, func() bool { return calls.Load() > 0 }, 2*time.Second, time.Millisecond)

	unsubscribe()
	unsubscribe()
	stoppedAt := calls.Load()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stoppedAt, calls.Load())
}

func TestSubscribe_CallbacksDoNotOverlap(t *testing.T) {
	f := New(Options{Interval: time.Millisecond})

	var active, overlaps, calls atomic.Int32
	unsubscribe := f.Subscribe([]int{1, 2, 3}, func([]Snapshot) {
		if active.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(3 * time.Millisecond)
		active.Add(-1)
		calls.Add(1)
	})

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, time.Millisecond)
	unsubscribe()
	assert.Zero(t, overlaps.Load())
}
