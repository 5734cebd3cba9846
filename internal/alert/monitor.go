package alert

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/vignesh678/stock-glass-visualizer/internal/events"
	"github.com/vignesh678/stock-glass-visualizer/internal/feed"
	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
	"github.com/vignesh678/stock-glass-visualizer/internal/watchlist"
)

// ErrAlreadyStarted is returned by Start on a running Monitor.
var ErrAlreadyStarted = errors.New("alert monitor already started")

// Subscriber is the feed side of a Monitor.
type Subscriber interface {
	Subscribe(ids []int, fn func([]feed.Snapshot)) (unsubscribe func())
}

// Monitor feeds quotes for every watched stock through Evaluate, writes the
// new prices back to the watchlist and fans crossings out to the notifiers.
type Monitor struct {
	store     *watchlist.Store
	feed      Subscriber
	notifiers []Notifier
	log       *zap.SugaredLogger

	mu          sync.Mutex
	ctx         context.Context
	running     bool
	unsubscribe func()
}

// NewMonitor creates a stopped Monitor.
func NewMonitor(store *watchlist.Store, f Subscriber, notifiers ...Notifier) *Monitor {
	return &Monitor{
		store:     store,
		feed:      f,
		notifiers: notifiers,
		log:       logger.Named("monitor"),
	}
}

// Start subscribes to the stocks currently in the watchlist. ctx is passed to
// the store and the notifiers for the lifetime of the subscription.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return ErrAlreadyStarted
	}

	ids := m.store.IDs(ctx)
	m.ctx = ctx
	m.running = true
	m.unsubscribe = m.feed.Subscribe(ids, m.handle)
	m.log.Infow("Monitoring watchlist", "stocks", len(ids))
	return nil
}

// Stop ends the subscription. Ticks that arrive afterwards are discarded.
// Stop is idempotent and must not be called from a Notifier.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	unsubscribe()
	m.log.Info("Monitor stopped")
}

func (m *Monitor) handle(snaps []feed.Snapshot) {
	m.mu.Lock()
	running, ctx := m.running, m.ctx
	m.mu.Unlock()
	if !running {
		return
	}

	for _, snap := range snaps {
		var crossed *events.AlertCrossed
		_, found, err := m.store.Apply(ctx, snap.ID, func(e watchlist.Entry) watchlist.Entry {
			updated, ev := Evaluate(e, snap)
			crossed = ev
			return updated
		})
		if err != nil {
			m.log.Warnw("Failed to store price", "symbol", snap.Symbol, "error", err)
			continue
		}
		if !found || crossed == nil {
			continue
		}
		m.dispatch(ctx, *crossed)
	}
}

func (m *Monitor) dispatch(ctx context.Context, e events.AlertCrossed) {
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, e); err != nil {
			m.log.Warnw("Notifier failed", "symbol", e.Symbol, "error", err)
		}
	}
}
