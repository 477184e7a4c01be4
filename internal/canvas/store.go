package canvas

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"stickies/internal/domain"
)

// BoardKey is the fixed key the snapshot is persisted under.
const BoardKey = "stickys"

// Medium is the durable key-value store snapshots are written to.
type Medium interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// Store is the single source of truth for card geometry and content.
// Every mutation rewrites the whole snapshot to the medium before returning.
type Store struct {
	mu       sync.RWMutex
	medium   Medium
	key      string
	minSize  domain.Size
	cards    domain.Snapshot
	raw      string
	loadErr  error
	onChange []func(domain.Snapshot)
	onSync   []func(domain.Snapshot)
	log      *slog.Logger
}

// NewStore creates a store persisting to medium. Call Load before use.
func NewStore(medium Medium, minSize domain.Size, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		medium:  medium,
		key:     BoardKey,
		minSize: minSize,
		cards:   domain.Snapshot{},
		raw:     "{}",
		log:     log,
	}
}

// Load reads the persisted snapshot. A missing or unreadable snapshot yields
// an empty board; the cause is kept in LoadErr and never returned.
func (s *Store) Load() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards, s.raw, s.loadErr = s.read()
	if s.loadErr != nil {
		s.log.Warn("board store: starting empty", "err", s.loadErr)
	}
	return s.cards.Clone()
}

func (s *Store) read() (domain.Snapshot, string, error) {
	value, ok, err := s.medium.Get(s.key)
	if err != nil {
		return domain.Snapshot{}, "{}", fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
	}
	if !ok {
		return domain.Snapshot{}, "{}", fmt.Errorf("%w: no board saved", domain.ErrPersistenceUnavailable)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		return domain.Snapshot{}, "{}", fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
	}
	if snap == nil {
		snap = domain.Snapshot{}
	}
	return snap, value, nil
}

// LoadErr reports why the last Load started from an empty board, if it did.
func (s *Store) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// MinSize is the smallest card size the store accepts, in grid units.
func (s *Store) MinSize() domain.Size {
	return s.minSize
}

// Get returns the card with the given id.
func (s *Store) Get(id string) (domain.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[id]
	if ok {
		c.ID = id
	}
	return c, ok
}

// All returns a copy of the full snapshot.
func (s *Store) All() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cards.Clone()
}

// Raw returns the exact text last persisted.
func (s *Store) Raw() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// Upsert merges patch into the card stored under id, creating it when absent,
// and persists the snapshot. Size fields are raised to the minimum. The
// stored board is re-read first, so cards written by another process since
// the last load are kept.
func (s *Store) Upsert(id string, patch domain.CardPatch) (domain.Card, error) {
	return s.UpsertFunc(id, func(domain.Snapshot) domain.CardPatch { return patch })
}

// UpsertFunc is Upsert with a patch computed from the freshly read board,
// for patches such as a new stacking order that depend on every other card.
func (s *Store) UpsertFunc(id string, fn func(live domain.Snapshot) domain.CardPatch) (domain.Card, error) {
	s.mu.Lock()
	synced := s.sync()

	next := s.cards.Clone()
	patch := fn(s.cards.Clone())
	c, existed := next[id]
	patch.Apply(&c)
	if patch.Width != nil || patch.Height != nil || !existed {
		c.Width, c.Height = s.minSize.Fit(c.Width, c.Height)
	}
	next[id] = c
	c.ID = id
	err := s.commit(next)
	s.mu.Unlock()

	s.notifySync(synced)
	return c, err
}

// Remove deletes the card and persists. Removing an unknown id does nothing.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	synced := s.sync()

	var err error
	if _, ok := s.cards[id]; ok {
		next := s.cards.Clone()
		delete(next, id)
		err = s.commit(next)
	}
	s.mu.Unlock()

	s.notifySync(synced)
	return err
}

// Replace swaps in snap wholesale and persists it. Subscribers registered with
// OnReplace are called afterwards with a copy; anything caching cards must
// re-read from the store at that point.
func (s *Store) Replace(snap domain.Snapshot) error {
	return s.Update(func(domain.Snapshot) domain.Snapshot { return snap })
}

// Update persists fn applied to the current stored board. fn gets a copy and
// may return it modified. Nothing changes in memory unless the write succeeds.
func (s *Store) Update(fn func(live domain.Snapshot) domain.Snapshot) error {
	s.mu.Lock()
	synced := s.sync()
	next := fn(s.cards.Clone()).Clone()
	for id, c := range next {
		c.Width, c.Height = s.minSize.Fit(c.Width, c.Height)
		next[id] = c
	}
	err := s.commit(next)
	fresh := s.cards.Clone()
	subs := append([]func(domain.Snapshot){}, s.onChange...)
	s.mu.Unlock()

	if err != nil {
		s.notifySync(synced)
		return err
	}
	for _, fn := range subs {
		fn(fresh.Clone())
	}
	return nil
}

// Reload re-reads the medium, for when another process has written it, and
// notifies subscribers like Replace does.
func (s *Store) Reload() domain.Snapshot {
	snap := s.Load()
	s.mu.RLock()
	subs := append([]func(domain.Snapshot){}, s.onChange...)
	syncs := append([]func(domain.Snapshot){}, s.onSync...)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(snap.Clone())
	}
	for _, fn := range syncs {
		fn(snap.Clone())
	}
	return snap
}

// OnReplace registers fn to run after every Replace, Update or Reload.
func (s *Store) OnReplace(fn func(domain.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// OnSync registers fn to run whenever the store picks up a board another
// process wrote, either on Reload or while re-reading before a write.
func (s *Store) OnSync(fn func(domain.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSync = append(s.onSync, fn)
}

// sync adopts the stored board when it differs from the last text this store
// read or wrote. An unreadable medium keeps the cached board. Callers hold mu.
func (s *Store) sync() bool {
	value, ok, err := s.medium.Get(s.key)
	if err != nil || !ok || value == s.raw {
		return false
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		s.log.Warn("board store: ignoring unreadable stored board", "err", err)
		return false
	}
	if snap == nil {
		snap = domain.Snapshot{}
	}
	s.cards, s.raw = snap, value
	return true
}

func (s *Store) notifySync(synced bool) {
	if !synced {
		return
	}
	s.mu.RLock()
	snap := s.cards.Clone()
	syncs := append([]func(domain.Snapshot){}, s.onSync...)
	s.mu.RUnlock()
	for _, fn := range syncs {
		fn(snap.Clone())
	}
}

// commit writes next and only then makes it the live board. Callers hold mu.
func (s *Store) commit(next domain.Snapshot) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if err := s.medium.Put(s.key, string(data)); err != nil {
		return fmt.Errorf("persist board: %w", err)
	}
	s.cards = next
	s.raw = string(data)
	return nil
}
