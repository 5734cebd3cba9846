// Package watchlist persists the client session's watched stocks and the
// user's notification preferences in a kv.Store.
package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
	"github.com/vignesh678/stock-glass-visualizer/internal/kv"
	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
)

// Storage keys.
const (
	KeyWatchlist   = "watchlist"
	KeyPreferences = "notificationSettings"
)

// Entry is one watched stock. TargetPrice is nil when no alert is armed.
type Entry struct {
	ID          int              `json:"id"`
	Symbol      string           `json:"symbol"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	TargetPrice *decimal.Decimal `json:"targetPrice,omitempty"`
	AddedDate   time.Time        `json:"addedDate"`
}

// Preferences controls the email notifier.
type Preferences struct {
	Email        bool   `json:"email"`
	EmailAddress string `json:"emailAddress"`
}

// EmailEnabled reports whether alerts should also be sent by email.
func (p Preferences) EmailEnabled() bool {
	return p.Email && p.EmailAddress != ""
}

// Store owns the watchlist. Every mutation is one kv.Update, so writers in
// other processes sharing the backend never overwrite each other's changes.
type Store struct {
	kv  kv.Store
	now func() time.Time
	log *zap.SugaredLogger
}

// NewStore returns a Store backed by s.
func NewStore(s kv.Store) *Store {
	return &Store{kv: s, now: time.Now, log: logger.Named("watchlist")}
}

// Load returns the persisted watchlist. A missing or unreadable list is
// reported as empty.
func (s *Store) Load(ctx context.Context) []Entry {
	data, err := s.kv.Get(ctx, KeyWatchlist)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warnw("Failed to read watchlist", "error", err)
		}
		return []Entry{}
	}
	return s.decode(data)
}

// decode maps malformed data to an empty list.
func (s *Store) decode(data []byte) []Entry {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warnw("Ignoring malformed watchlist", "error", err)
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

func encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode watchlist: %w", err)
	}
	return data, nil
}

// update runs fn on the current list inside one kv.Update. A missing or
// malformed list is passed as empty; any other read failure aborts before fn
// runs and nothing is written. fn returns the new list, or nil to leave the
// stored list as is.
func (s *Store) update(ctx context.Context, fn func([]Entry) ([]Entry, error)) error {
	err := s.kv.Update(ctx, KeyWatchlist, func(old []byte, found bool) ([]byte, error) {
		entries := []Entry{}
		if found {
			entries = s.decode(old)
		}
		next, err := fn(entries)
		if err != nil || next == nil {
			return nil, err
		}
		return encode(next)
	})
	if err != nil && !errors.Is(err, apperrors.ErrAlreadyInWatchlist) {
		return fmt.Errorf("update watchlist: %w", err)
	}
	return err
}

// Save replaces the persisted watchlist.
func (s *Store) Save(ctx context.Context, entries []Entry) error {
	data, err := encode(entries)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyWatchlist, data); err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	return nil
}

// Add appends entry with AddedDate set to now. If the id is already watched
// the list is left as is and the existing entry is returned with
// ErrAlreadyInWatchlist.
func (s *Store) Add(ctx context.Context, entry Entry) (Entry, error) {
	var result Entry
	err := s.update(ctx, func(entries []Entry) ([]Entry, error) {
		for _, e := range entries {
			if e.ID == entry.ID {
				result = e
				return nil, apperrors.ErrAlreadyInWatchlist
			}
		}
		result = entry
		result.AddedDate = s.now()
		return append(entries, result), nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrAlreadyInWatchlist) {
		return Entry{}, err
	}
	return result, err
}

// Remove drops the entry with id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id int) error {
	return s.update(ctx, func(entries []Entry) ([]Entry, error) {
		kept := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(entries) {
			return nil, nil
		}
		return kept, nil
	})
}

// SetTarget sets or, with a nil target, clears the alert price of id. It
// reports whether the id was in the watchlist.
func (s *Store) SetTarget(ctx context.Context, id int, target *decimal.Decimal) (bool, error) {
	_, found, err := s.Apply(ctx, id, func(e Entry) Entry {
		if target == nil {
			e.TargetPrice = nil
		} else {
			t := *target
			e.TargetPrice = &t
		}
		return e
	})
	return found, err
}

// ApplyPrice records a new price for id without touching its target.
func (s *Store) ApplyPrice(ctx context.Context, id int, price decimal.Decimal) (Entry, bool, error) {
	return s.Apply(ctx, id, func(e Entry) Entry {
		e.Price = price
		return e
	})
}

// Apply replaces the entry for id with fn(entry) in one atomic
// read-modify-write. fn is not called when id is absent, may be called more
// than once when another writer races the update, and must not call back
// into the Store.
func (s *Store) Apply(ctx context.Context, id int, fn func(Entry) Entry) (Entry, bool, error) {
	var (
		updated Entry
		found   bool
	)
	err := s.update(ctx, func(entries []Entry) ([]Entry, error) {
		updated, found = Entry{}, false
		for i, e := range entries {
			if e.ID != id {
				continue
			}
			next := fn(e)
			next.ID = e.ID
			entries[i] = next
			updated, found = next, true
			return entries, nil
		}
		return nil, nil
	})
	if err != nil {
		return Entry{}, false, err
	}
	return updated, found, nil
}

// IDs returns the watched stock ids in list order.
func (s *Store) IDs(ctx context.Context) []int {
	entries := s.Load(ctx)
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// Preferences returns the saved notification preferences, or the zero value
// when none are saved or they cannot be read.
func (s *Store) Preferences(ctx context.Context) Preferences {
	data, err := s.kv.Get(ctx, KeyPreferences)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warnw("Failed to read notification settings", "error", err)
		}
		return Preferences{}
	}
	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warnw("Ignoring malformed notification settings", "error", err)
		return Preferences{}
	}
	return p
}

// SavePreferences replaces the notification preferences.
func (s *Store) SavePreferences(ctx context.Context, p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode notification settings: %w", err)
	}
	if err := s.kv.Set(ctx, KeyPreferences, data); err != nil {
		return fmt.Errorf("save notification settings: %w", err)
	}
	return nil
}
