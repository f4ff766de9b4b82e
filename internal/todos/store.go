// Package todos owns the todo collection: the mutation API, the hooks that
// run after each committed change, and the read views built from it.
//
// A Store is meant to be driven from one goroutine. It does no locking.
package todos

import (
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// DefaultKey is the slot the collection is saved under.
const DefaultKey = "todos"

// Hook runs after every committed mutation with a snapshot of the whole
// collection. Hooks must not modify the slice.
type Hook func(items []model.Todo)

// Store holds the todos newest first. That order is the only one it keeps;
// nothing is ever re-sorted.
type Store struct {
	items  []model.Todo
	hooks  []Hook
	now    func() time.Time
	newID  func() string
	logger *log.Logger
	key    string
	err    error
}

type Option func(*Store)

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc replaces the UUID generator.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithKey changes the slot key Open reads and writes.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithHook(h Hook) Option {
	return func(s *Store) { s.hooks = append(s.hooks, h) }
}

// New returns an empty store that persists nowhere.
func New(opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logging.Discard(),
		key:    DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the collection from slot and saves it back after every
// mutation. Missing or unreadable data starts an empty collection; that is
// logged, never returned.
func Open(slot store.Slot, opts ...Option) *Store {
	s := New(opts...)
	s.items = s.load(slot)
	s.hooks = append([]Hook{s.saveTo(slot)}, s.hooks...)
	return s
}

func (s *Store) load(slot store.Slot) []model.Todo {
	b, err := slot.Get(s.key)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("no saved todos", "key", s.key)
		return nil
	}
	if err != nil {
		s.logger.Warn("reading todos failed, starting empty", "key", s.key, "err", err)
		return nil
	}
	items, err := store.Decode(b)
	if err != nil {
		s.logger.Warn("stored todos are unreadable, starting empty", "key", s.key, "err", err)
		return nil
	}
	s.logger.Debug("loaded todos", "key", s.key, "count", len(items))
	return items
}

// saveTo writes the full collection on each commit. A failed write is not
// retried; it is logged and kept for Err.
func (s *Store) saveTo(slot store.Slot) Hook {
	return func(items []model.Todo) {
		b, err := store.Encode(items)
		if err == nil {
			err = slot.Set(s.key, b)
		}
		s.err = err
		if err != nil {
			s.logger.Error("saving todos failed", "key", s.key, "err", err)
			return
		}
		s.logger.Debug("saved todos", "key", s.key, "count", len(items))
	}
}

// Err is the result of the most recent save, nil when it succeeded or when
// the store has no slot.
func (s *Store) Err() error { return s.err }

func (s *Store) commit() {
	snapshot := s.All()
	for _, h := range s.hooks {
		h(snapshot)
	}
}

// Add prepends a new open todo. The title is taken as given; callers
// validate input first. An empty category becomes personal.
func (s *Store) Add(title string, category model.Category, due *model.Date) model.Todo {
	if category == "" {
		category = model.Personal
	}
	id := s.uniqueID()
	t := model.Todo{
		ID:        id,
		Title:     title,
		Category:  category,
		CreatedAt: s.now().UTC().Round(0),
	}
	if due != nil {
		d := *due
		t.DueDate = &d
	}
	s.items = slices.Insert(s.items, 0, t)
	s.commit()
	return t
}

// maxIDAttempts bounds how often a colliding generator is retried before
// Add falls back to a random UUID.
const maxIDAttempts = 64

func (s *Store) uniqueID() string {
	for range maxIDAttempts {
		if id := s.newID(); s.indexOf(id) < 0 {
			return id
		}
	}
	s.logger.Warn("id generator keeps colliding, using a random id", "attempts", maxIDAttempts)
	return uuid.NewString()
}

// Toggle flips Completed. Unknown ids are ignored.
func (s *Store) Toggle(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items[i].Completed = !s.items[i].Completed
	s.commit()
}

// Remove deletes the todo with id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.commit()
}

// Update replaces the fields named in p. Unknown ids are ignored.
func (s *Store) Update(id string, p model.Patch) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items[i] = p.Apply(s.items[i])
	s.commit()
}

// ClearCompleted drops every completed todo and reports how many went.
// It commits even when nothing was removed.
func (s *Store) ClearCompleted() int {
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(t model.Todo) bool { return t.Completed })
	s.commit()
	return before - len(s.items)
}

func (s *Store) Get(id string) (model.Todo, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.items[i].Clone(), true
}

// All returns a deep copy of the collection in store order.
func (s *Store) All() []model.Todo {
	out := make([]model.Todo, len(s.items))
	for i, t := range s.items {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(t model.Todo) bool { return t.ID == id })
}
