// Package feed simulates live quotes for catalog stocks. Prices walk from the
// catalog price by a bounded random step on every tick.
package feed

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vignesh678/stock-glass-visualizer/internal/catalog"
	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultInterval = 30 * time.Second
)

var (
	DefaultMaxDelta = decimal.NewFromInt(5)
	minPrice        = decimal.NewFromInt(1)
)

// Snapshot is one simulated quote.
type Snapshot struct {
	ID            int             `json:"id"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	PreviousPrice decimal.Decimal `json:"previousPrice"`
	Change        decimal.Decimal `json:"change"`
	At            time.Time       `json:"at"`
}

// Options configures a Feed.
type Options struct {
	Interval time.Duration
	MaxDelta decimal.Decimal
	// Float64 returns a uniform value in [0, 1). Tests inject a fixed sequence.
	Float64 func() float64
	Now     func() time.Time
}

// Feed holds the current simulated price of every stock it has quoted.
type Feed struct {
	interval time.Duration
	maxDelta decimal.Decimal
	rnd      func() float64
	now      func() time.Time

	mu     sync.Mutex
	prices map[int]decimal.Decimal
}

// New returns a Feed seeded from the catalog.
func New(opts Options) *Feed {
	f := &Feed{
		interval: opts.Interval,
		maxDelta: opts.MaxDelta,
		rnd:      opts.Float64,
		now:      opts.Now,
		prices:   map[int]decimal.Decimal{},
	}
	if f.interval <= 0 {
		f.interval = DefaultInterval
	}
	if !f.maxDelta.IsPositive() {
		f.maxDelta = DefaultMaxDelta
	}
	if f.rnd == nil {
		f.rnd = rand.Float64
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

// Interval returns the tick period used by Subscribe.
func (f *Feed) Interval() time.Duration { return f.interval }

// Quote advances and returns the price of a single stock.
func (f *Feed) Quote(id int) (Snapshot, error) {
	s, err := catalog.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step(s), nil
}

// Subscribe calls fn every interval with fresh snapshots for the ids that
// exist in the catalog; unknown ids are dropped. Ticks for one subscription
// never overlap. The returned func stops the subscription. It is safe to call
// more than once, waits for a callback in flight to return, and must not be
// called from inside fn.
func (f *Feed) Subscribe(ids []int, fn func([]Snapshot)) (unsubscribe func()) {
	stocks := make([]catalog.Stock, 0, len(ids))
	for _, id := range ids {
		if s, ok := catalog.ByID(id); ok {
			stocks = append(stocks, s)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := &subscription{}
	go f.run(ctx, sub, stocks, fn)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			sub.mu.Lock()
			sub.stopped = true
			sub.mu.Unlock()
		})
	}
}

type subscription struct {
	mu      sync.Mutex
	stopped bool
}

func (f *Feed) run(ctx context.Context, sub *subscription, stocks []catalog.Stock, fn func([]Snapshot)) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	log := logger.Named("feed")
	log.Debugw("Subscription started", "stocks", len(stocks), "interval", f.interval)
	for {
		select {
		case <-ctx.Done():
			log.Debug("Subscription stopped")
			return
		case <-ticker.C:
		}

		sub.mu.Lock()
		if sub.stopped {
			sub.mu.Unlock()
			return
		}
		fn(f.tick(stocks))
		sub.mu.Unlock()
	}
}

func (f *Feed) tick(stocks []catalog.Stock) []Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Snapshot, len(stocks))
	for i, s := range stocks {
		out[i] = f.step(s)
	}
	return out
}

// step must be called with f.mu held.
func (f *Feed) step(s catalog.Stock) Snapshot {
	prev, ok := f.prices[s.ID]
	if !ok {
		prev = s.Price
	}
	next := prev.Add(f.delta()).Round(2)
	if next.LessThan(minPrice) {
		next = minPrice
	}
	f.prices[s.ID] = next

	return Snapshot{
		ID:            s.ID,
		Symbol:        s.Symbol,
		Name:          s.Name,
		Price:         next,
		PreviousPrice: prev,
		Change:        next.Sub(prev),
		At:            f.now(),
	}
}

// delta is uniform in [-maxDelta, +maxDelta).
func (f *Feed) delta() decimal.Decimal {
	r := decimal.NewFromFloat(f.rnd()*2 - 1)
	return r.Mul(f.maxDelta)
}
