// Package alert turns simulated quotes into target-price alerts. The
// evaluator is pure; Monitor wires it between the feed, the watchlist and the
// notifiers.
package alert

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vignesh678/stock-glass-visualizer/internal/catalog"
	"github.com/vignesh678/stock-glass-visualizer/internal/events"
	"github.com/vignesh678/stock-glass-visualizer/internal/feed"
	"github.com/vignesh678/stock-glass-visualizer/internal/watchlist"
)

// Crossed reports whether a move from prev to next crosses target. Reaching
// the target counts as crossing in the direction of travel; leaving it does not.
func Crossed(prev, next, target decimal.Decimal) bool {
	up := next.GreaterThanOrEqual(target) && prev.LessThan(target)
	down := next.LessThanOrEqual(target) && prev.GreaterThan(target)
	return up || down
}

// Evaluate applies snap to entry. The returned entry always carries the new
// price; the event is non-nil only when the move crosses the entry's target.
func Evaluate(entry watchlist.Entry, snap feed.Snapshot) (watchlist.Entry, *events.AlertCrossed) {
	old := entry.Price
	entry.Price = snap.Price
	if entry.TargetPrice == nil || !Crossed(old, snap.Price, *entry.TargetPrice) {
		return entry, nil
	}

	direction := events.DirectionUp
	if snap.Price.LessThan(old) {
		direction = events.DirectionDown
	}
	return entry, &events.AlertCrossed{
		StockID:       entry.ID,
		Symbol:        entry.Symbol,
		Name:          entry.Name,
		TargetPrice:   *entry.TargetPrice,
		PreviousPrice: old,
		Price:         snap.Price,
		Direction:     direction,
		At:            snap.At,
	}
}

// Subject is the email subject line for e.
func Subject(e events.AlertCrossed) string {
	return fmt.Sprintf("StockGlass Alert: %s Target Price Reached", e.Symbol)
}

// Message is the human-readable alert text for e.
func Message(e events.AlertCrossed) string {
	return fmt.Sprintf("%s (%s) has reached your target price of %s!", e.Symbol, e.Name, catalog.FormatPrice(e.TargetPrice))
}
