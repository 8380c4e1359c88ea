package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/discovery/internal/domain"
)

// Cap is the maximum number of remembered searches. Recording beyond the cap
// evicts the oldest entry.
const Cap = 10

// storageKey is the single KV key the full history list is serialized under.
const storageKey = "discovery:search_history"

// flushTimeout bounds each background write to the KV store.
const flushTimeout = 5 * time.Second

// Store keeps the bounded, deduplicated list of past text searches. The
// in-memory list is the source of truth for the session; every mutation is
// flushed to the KV store on a background goroutine, and flush failures are
// logged without ever reaching the caller. Lifecycle is explicit: Init loads
// persisted state once at startup, Flush writes synchronously at shutdown.
type Store struct {
	mu      sync.Mutex
	entries []domain.SearchHistoryEntry

	kv     KV
	logger *slog.Logger
	cap    int

	now   func() time.Time
	newID func() string
}

// NewStore creates a history store over the given KV backend. Call Init
// before first use.
func NewStore(kv KV, logger *slog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger,
		cap:    Cap,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Init loads the persisted history. An absent key, a malformed blob, or a
// read failure all yield an empty history; none of them is an error to the
// caller.
func (s *Store) Init(ctx context.Context) error {
	data, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		if err != ErrKeyNotFound {
			s.logger.WarnContext(ctx, "history load failed, starting empty",
				slog.String("error", err.Error()),
			)
		}
		return nil
	}

	var entries []domain.SearchHistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed persisted history",
			slog.String("error", err.Error()),
		)
		return nil
	}

	if len(entries) > s.cap {
		entries = entries[:s.cap]
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "search history loaded", slog.Int("entries", len(entries)))
	return nil
}

// Record remembers a completed text search. The query is normalized; an
// empty result is a no-op. Any prior entry with the same normalized text is
// replaced, the new entry goes to the front, and the list is truncated to the
// cap. Record returns once the in-memory list is updated; the durable write
// happens in the background.
func (s *Store) Record(query string, resultCount int) {
	q := domain.NormalizeQuery(query)
	if q == "" {
		return
	}

	entry := domain.SearchHistoryEntry{
		ID:          s.newID(),
		Query:       q,
		Timestamp:   s.now().UnixMilli(),
		ResultCount: resultCount,
	}

	s.mu.Lock()
	kept := make([]domain.SearchHistoryEntry, 0, len(s.entries)+1)
	kept = append(kept, entry)
	for _, e := range s.entries {
		if e.Query != q {
			kept = append(kept, e)
		}
	}
	if len(kept) > s.cap {
		kept = kept[:s.cap]
	}
	s.entries = kept
	s.mu.Unlock()

	go s.flushLatest()
}

// List returns the remembered searches, most recent first, already capped.
func (s *Store) List() []domain.SearchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Clear empties the store and persists the empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()

	go s.flushLatest()
}

// Flush writes the current list synchronously. Used as a shutdown hook.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKey, data)
}

// snapshotLocked copies the entry list; callers must hold s.mu.
func (s *Store) snapshotLocked() []domain.SearchHistoryEntry {
	out := make([]domain.SearchHistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// flushLatest persists the current list in the background. The snapshot is
// taken at write time so a slow earlier flush can never clobber newer state.
// Failures are logged; the in-memory list stays authoritative and the next
// mutation writes again.
func (s *Store) flushLatest() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := s.Flush(ctx); err != nil {
		s.logger.Warn("history flush failed, keeping in-memory state",
			slog.String("error", err.Error()),
		)
	}
}
