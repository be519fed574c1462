package cache

import (
	"strings"
	"sync"
	"time"
)

// Key is a hierarchical query key, e.g. ["stops", "list", <itineraryID>].
// Invalidation matches by prefix, so invalidating ["stops"] drops every
// stops query while ["stops", "detail", id] drops a single record.
type Key []string

func NewKey(parts ...string) Key {
	return Key(parts)
}

func (k Key) String() string {
	return strings.Join(k, "/")
}

func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, part := range prefix {
		if k[i] != part {
			return false
		}
	}
	return true
}

// QueryCache is the contract entity services program against: read-through
// population plus prefix invalidation after mutations.
type QueryCache interface {
	Get(key Key) (any, bool)
	Set(key Key, value any)
	Invalidate(prefixes ...Key)
}

// Store is an in-process QueryCache with stale-time expiry and subscriber
// notification. It is process-wide; there is no cross-process coordination.
type Store struct {
	mu        sync.RWMutex
	entries   map[string]entry
	staleTime time.Duration
	nextSub   int
	subs      map[int]*subscription
	now       func() time.Time
}

type entry struct {
	key      Key
	value    any
	storedAt time.Time
}

type subscription struct {
	prefix Key
	ch     chan Key
}

const DefaultStaleTime = 5 * time.Minute

func New(staleTime time.Duration) *Store {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return &Store{
		entries:   make(map[string]entry),
		staleTime: staleTime,
		subs:      make(map[int]*subscription),
		now:       time.Now,
	}
}

// Get returns the cached value for key, or a miss if absent or stale.
func (s *Store) Get(key Key) (any, bool) {
	s.mu.RLock()
	item, ok := s.entries[key.String()]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().Sub(item.storedAt) >= s.staleTime {
		s.mu.Lock()
		if item, ok = s.entries[key.String()]; ok && s.now().Sub(item.storedAt) >= s.staleTime {
			delete(s.entries, key.String())
		}
		s.mu.Unlock()
		return nil, false
	}
	return item.value, true
}

func (s *Store) Set(key Key, value any) {
	s.mu.Lock()
	s.entries[key.String()] = entry{key: key, value: value, storedAt: s.now()}
	s.mu.Unlock()
}

// Invalidate drops every entry whose key matches one of the prefixes and
// notifies subscribers watching an overlapping prefix.
func (s *Store) Invalidate(prefixes ...Key) {
	if len(prefixes) == 0 {
		return
	}

	s.mu.Lock()
	for id, item := range s.entries {
		for _, prefix := range prefixes {
			if item.key.HasPrefix(prefix) {
				delete(s.entries, id)
				break
			}
		}
	}
	for _, sub := range s.subs {
		for _, prefix := range prefixes {
			if prefix.HasPrefix(sub.prefix) || sub.prefix.HasPrefix(prefix) {
				select {
				case sub.ch <- prefix:
				default:
				}
				break
			}
		}
	}
	s.mu.Unlock()
}

// Subscribe registers interest in invalidations under prefix. The returned
// channel receives the invalidated prefix; slow consumers drop notifications
// rather than block mutations. The second return value unsubscribes.
func (s *Store) Subscribe(prefix Key) (<-chan Key, func()) {
	sub := &subscription{prefix: prefix, ch: make(chan Key, 16)}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub.ch)
		}
		s.mu.Unlock()
	}
	return sub.ch, cancel
}

// GetTyped is a typed convenience wrapper around QueryCache.Get.
func GetTyped[T any](c QueryCache, key Key) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	value, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Noop satisfies QueryCache for callers that do not want caching.
type Noop struct{}

func (Noop) Get(Key) (any, bool) { return nil, false }
func (Noop) Set(Key, any)        {}
func (Noop) Invalidate(...Key)   {}
