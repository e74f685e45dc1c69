package notify

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/inbox/internal/core/kv"
	"github.com/hay-kot/inbox/internal/core/logging"
	"github.com/hay-kot/inbox/pkg/randid"
)

// StorageKey is the slot the message list is persisted under.
const StorageKey = "notificationMessages"

// Persistence operations reported to an ErrorHook.
const (
	OpLoad = "load"
	OpSave = "save"
)

// Listener is called after every change. It carries no payload; listeners
// re-read state through Messages or UnreadCount.
type Listener func()

// ErrorHook observes persistence failures that the Store swallows. It runs
// while the Store's write lock is held and must not call back into the Store.
type ErrorHook func(op string, err error)

// Option configures a Store.
type Option func(*Store)

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock sets the time source used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc replaces the ID generator.
func WithIDFunc(fn func(time.Time) string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithErrorHook registers a hook called for every swallowed persistence error.
func WithErrorHook(fn ErrorHook) Option {
	return func(s *Store) { s.onError = fn }
}

// NewID returns the default identifier for a message created at t: the Unix
// time in milliseconds followed by nine random characters.
func NewID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + randid.Generate(9)
}

// Store is the notification inbox. It keeps messages newest first, mirrors
// the full list to a KV slot after every change, then calls every listener.
//
// Store never returns persistence errors: a failed read starts from an empty
// list and a failed write keeps the in-memory change. Both are logged and
// passed to the ErrorHook.
type Store struct {
	slot    *kv.Slot[[]Message]
	key     string
	now     func() time.Time
	newID   func(time.Time) string
	log     zerolog.Logger
	onError ErrorHook

	// writeMu orders slot reads and writes with the mutations that caused
	// them, so the slot always ends up holding the latest list. It is taken
	// before mu.
	writeMu sync.Mutex

	mu        sync.Mutex
	messages  []Message
	listeners map[uint64]Listener
	nextSub   uint64
}

// NewStore creates an empty Store persisting to store. Call Load to read the
// persisted list.
func NewStore(store kv.KV, opts ...Option) *Store {
	s := &Store{
		key:       StorageKey,
		now:       time.Now,
		newID:     NewID,
		log:       logging.Component("notify"),
		messages:  []Message{},
		listeners: make(map[uint64]Listener),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.slot = kv.NewSlot[[]Message](store, s.key)
	return s
}

// Load replaces the in-memory list with the persisted one and notifies
// listeners. A missing slot, unreadable slot or backend failure leaves the
// store empty.
func (s *Store) Load(ctx context.Context) {
	s.writeMu.Lock()
	msgs, err := s.slot.Get(ctx)
	switch {
	case kv.IsNotFound(err):
		msgs = nil
	case err != nil:
		s.log.Warn().Ctx(ctx).Err(err).Str("key", s.key).Msg("failed to load notifications, starting empty")
		s.reportError(OpLoad, err)
		msgs = nil
	}

	if msgs == nil {
		msgs = []Message{}
	}

	s.mu.Lock()
	s.messages = msgs
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.notify()
}

// Save writes the current list to the slot.
func (s *Store) Save(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	snapshot := slices.Clone(s.messages)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

// Add creates a message from d, prepends it, and returns it.
func (s *Store) Add(d Draft) Message {
	now := s.now()
	msg := Message{
		ID:        s.newID(now),
		Type:      d.Type,
		Title:     d.Title,
		Content:   d.Content,
		Timestamp: FormatTimestamp(now),
		Read:      false,
	}

	s.mutate(func(msgs []Message) ([]Message, bool) {
		return append([]Message{msg}, msgs...), true
	})

	return msg
}

// Remove deletes the message with id. An unknown id changes nothing and
// does not persist or notify.
func (s *Store) Remove(id string) {
	s.mutate(func(msgs []Message) ([]Message, bool) {
		i := slices.IndexFunc(msgs, func(m Message) bool { return m.ID == id })
		if i < 0 {
			return msgs, false
		}
		return slices.Delete(msgs, i, i+1), true
	})
}

// ClearAll removes every message. It always persists and notifies.
func (s *Store) ClearAll() {
	s.mutate(func([]Message) ([]Message, bool) {
		return []Message{}, true
	})
}

// MarkAsRead flags the message with id as read. An unknown id is a no-op.
func (s *Store) MarkAsRead(id string) {
	s.mutate(func(msgs []Message) ([]Message, bool) {
		i := slices.IndexFunc(msgs, func(m Message) bool { return m.ID == id })
		if i < 0 {
			return msgs, false
		}
		msgs[i].Read = true
		return msgs, true
	})
}

// MarkAllAsRead flags every message as read. It always persists and notifies.
func (s *Store) MarkAllAsRead() {
	s.mutate(func(msgs []Message) ([]Message, bool) {
		for i := range msgs {
			msgs[i].Read = true
		}
		return msgs, true
	})
}

// Messages returns a copy of the list, newest first.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Get returns the message with id.
func (s *Store) Get(id string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// UnreadCount returns the number of unread messages.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, m := range s.messages {
		if !m.Read {
			n++
		}
	}
	return n
}

// Subscribe registers fn and returns a func that removes this registration.
// Each call is a separate registration, even for the same fn. The returned
// func may be called any number of times.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// mutate applies fn to the list under the lock. When fn reports a change the
// new list is persisted and listeners are notified, in that order. Saves
// happen in mutation order; listeners run after both locks are released.
func (s *Store) mutate(fn func([]Message) ([]Message, bool)) {
	s.writeMu.Lock()

	s.mu.Lock()
	next, changed := fn(s.messages)
	if !changed {
		s.mu.Unlock()
		s.writeMu.Unlock()
		return
	}
	s.messages = next
	snapshot := slices.Clone(next)
	s.mu.Unlock()

	s.persist(context.Background(), snapshot)
	s.writeMu.Unlock()

	s.notify()
}

func (s *Store) persist(ctx context.Context, msgs []Message) {
	if msgs == nil {
		msgs = []Message{}
	}

	if err := s.slot.Set(ctx, msgs); err != nil {
		s.log.Error().Ctx(ctx).Err(err).Str("key", s.key).Int("count", len(msgs)).Msg("failed to save notifications")
		s.reportError(OpSave, err)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (s *Store) reportError(op string, err error) {
	if s.onError != nil {
		s.onError(op, err)
	}
}
