// Package cache keeps named, versioned copies of remote catalog reads
// consistent with catalog mutations. Reads follow a stale-while-revalidate
// policy; invalidation bumps a per-key version so that a fetch issued under
// a superseded version is discarded on completion, never merged
// (last-request-wins, not last-response-wins).
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Key identifies one cached remote read.
type Key string

// Singleton keys. File-list keys are derived per filter state.
const (
	KeyStats     Key = "stats"
	KeyFileTypes Key = "file_types"
)

const fileListPrefix = "files?"

// FileListKey returns the cache key for the file list under the given
// encoded filter query.
func FileListKey(encodedQuery string) Key {
	return Key(fileListPrefix + encodedQuery)
}

// IsFileList reports whether k names a file-list result.
func IsFileList(k Key) bool {
	return strings.HasPrefix(string(k), fileListPrefix)
}

// FileListQuery returns the encoded filter query a file-list key was built
// from.
func FileListQuery(k Key) (string, bool) {
	if !IsFileList(k) {
		return "", false
	}
	return strings.TrimPrefix(string(k), fileListPrefix), true
}

// Status tags the lifecycle stage of a cache entry.
type Status int

// Entry statuses.
const (
	StatusLoading Status = iota
	StatusFresh
	StatusStale
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusFresh:
		return "fresh"
	case StatusStale:
		return "stale"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Entry is the status-tagged result of a read. Payload may carry data even
// when Status is stale or error: a previous result stays visible while a
// refresh runs or after it fails.
type Entry struct {
	Key        Key
	Version    uint64
	Payload    any
	HasPayload bool
	Status     Status
	Err        error
	UpdatedAt  time.Time
}

// Mutation classifies a catalog write for invalidation purposes.
type Mutation int

// Mutation kinds.
const (
	MutationUpload Mutation = iota
	MutationDelete
	MutationTagEdit
)

// FetchFunc resolves a key to its payload against the remote catalog.
type FetchFunc func(ctx context.Context, key Key) (any, error)

const (
	defaultTTL          = 30 * time.Second
	defaultListCapacity = 64
)

type record struct {
	version    uint64
	payload    any
	hasPayload bool
	status     Status
	err        error
	updatedAt  time.Time
	inflight   bool
}

// Coordinator is the process-wide registry of cached catalog reads.
type Coordinator struct {
	mu       sync.Mutex
	ctx      context.Context
	fetch    FetchFunc
	ttl      time.Duration
	pinned   map[Key]*record
	lists    *expirable.LRU[Key, *record]
	subs     map[Key]int
	onUpdate func(Entry)
}

// Options tune a Coordinator. Zero values select defaults.
type Options struct {
	TTL          time.Duration // freshness window per entry
	ListCapacity int           // bound on distinct file-list entries
	OnUpdate     func(Entry)   // called after every committed completion
}

// NewCoordinator builds a coordinator whose background fetches run under
// ctx. File-list entries live in a size-bounded LRU; stats and the file type
// enumeration are pinned.
func NewCoordinator(ctx context.Context, fetch FetchFunc, opts Options) *Coordinator {
	if ctx == nil {
		ctx = context.Background()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	capacity := opts.ListCapacity
	if capacity <= 0 {
		capacity = defaultListCapacity
	}
	return &Coordinator{
		ctx:    ctx,
		fetch:  fetch,
		ttl:    ttl,
		pinned: make(map[Key]*record),
		// LRU TTL only bounds abandoned list entries; freshness is decided
		// by the coordinator's own window, so keep entries around longer.
		lists:    expirable.NewLRU[Key, *record](capacity, nil, 10*ttl),
		subs:     make(map[Key]int),
		onUpdate: opts.OnUpdate,
	}
}

// Read returns the entry for key under stale-while-revalidate: a fresh entry
// is returned as-is; otherwise any previous payload is returned with status
// loading/stale and a background fetch is issued. Read never returns an
// error; failures surface as StatusError entries.
func (c *Coordinator) Read(key Key) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := c.lookup(key)
	if rec == nil {
		rec = &record{status: StatusLoading}
		c.store(key, rec)
	}
	if rec.status == StatusFresh && time.Since(rec.updatedAt) < c.ttl {
		return c.snapshot(key, rec)
	}
	c.issueFetch(key, rec)
	return c.snapshot(key, rec)
}

// Peek returns the entry without triggering a fetch.
func (c *Coordinator) Peek(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := c.lookup(key)
	if rec == nil {
		return Entry{}, false
	}
	return c.snapshot(key, rec), true
}

// Invalidate bumps the version of every key matching the predicate, marking
// it stale; subscribed keys refetch in the background immediately, others on
// their next read. An in-flight fetch for a bumped key is logically
// abandoned: its completion fails the version check.
func (c *Coordinator) Invalidate(pred func(Key) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, rec := range c.pinned {
		if pred(key) {
			c.invalidateLocked(key, rec)
		}
	}
	for _, key := range c.lists.Keys() {
		if !pred(key) {
			continue
		}
		if rec, ok := c.lists.Get(key); ok {
			c.invalidateLocked(key, rec)
		}
	}
}

// OnMutation applies the invalidation rules for a successful catalog write.
// Uploads and deletes touch the statistics, the file type enumeration and
// the current file list; tag edits touch only the current file list.
// fileListKey is the key of the list the interface is showing.
func (c *Coordinator) OnMutation(kind Mutation, fileListKey Key) {
	c.Invalidate(func(k Key) bool {
		if k == fileListKey {
			return true
		}
		switch kind {
		case MutationUpload, MutationDelete:
			return k == KeyStats || k == KeyFileTypes
		}
		return false
	})
}

// BumpRefreshSignal reacts to an external refresh signal: statistics are
// immediately stale regardless of their freshness window, so the view always
// reflects the latest mutations after the signal.
func (c *Coordinator) BumpRefreshSignal() {
	c.Invalidate(func(k Key) bool { return k == KeyStats })
}

// Subscribe marks key as actively watched: invalidations trigger background
// refetches while at least one subscription is held. The returned cancel
// stops revalidation but never evicts the cached payload.
func (c *Coordinator) Subscribe(key Key) (cancel func()) {
	c.mu.Lock()
	c.subs[key]++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.subs[key] > 1 {
				c.subs[key]--
			} else {
				delete(c.subs, key)
			}
		})
	}
}

// SubscribedKeys returns the keys currently under subscription.
func (c *Coordinator) SubscribedKeys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]Key, 0, len(c.subs))
	for key := range c.subs {
		keys = append(keys, key)
	}
	return keys
}

func (c *Coordinator) lookup(key Key) *record {
	if rec, ok := c.pinned[key]; ok {
		return rec
	}
	if rec, ok := c.lists.Get(key); ok {
		return rec
	}
	return nil
}

func (c *Coordinator) store(key Key, rec *record) {
	if IsFileList(key) {
		c.lists.Add(key, rec)
		return
	}
	c.pinned[key] = rec
}

func (c *Coordinator) snapshot(key Key, rec *record) Entry {
	return Entry{
		Key:        key,
		Version:    rec.version,
		Payload:    rec.payload,
		HasPayload: rec.hasPayload,
		Status:     rec.status,
		Err:        rec.err,
		UpdatedAt:  rec.updatedAt,
	}
}

// invalidateLocked supersedes any in-flight fetch and refetches immediately
// when the key is watched.
func (c *Coordinator) invalidateLocked(key Key, rec *record) {
	rec.version++
	rec.inflight = false
	if rec.hasPayload {
		rec.status = StatusStale
	} else {
		rec.status = StatusLoading
	}
	if c.subs[key] > 0 {
		c.issueFetch(key, rec)
	}
}

// issueFetch starts a background fetch for key unless one issued under the
// current version is already running. Callers hold c.mu.
func (c *Coordinator) issueFetch(key Key, rec *record) {
	if rec.inflight {
		return
	}
	rec.inflight = true
	// An error status survives until the retry resolves; otherwise the
	// entry shows stale (payload still usable) or loading (nothing yet).
	if rec.status != StatusError {
		if rec.hasPayload {
			rec.status = StatusStale
		} else {
			rec.status = StatusLoading
		}
	}
	version := rec.version
	go func() {
		payload, err := c.fetch(c.ctx, key)
		c.complete(key, version, payload, err)
	}()
}

// complete commits a fetch result, unless the version it was issued under
// has been superseded, in which case the result is discarded silently.
func (c *Coordinator) complete(key Key, version uint64, payload any, err error) {
	c.mu.Lock()
	rec := c.lookup(key)
	if rec == nil || rec.version != version {
		c.mu.Unlock()
		return
	}
	rec.inflight = false
	rec.updatedAt = time.Now()
	if err != nil {
		// Keep the previous payload visible; a later success clears the
		// error status.
		rec.status = StatusError
		rec.err = err
	} else {
		rec.payload = payload
		rec.hasPayload = true
		rec.status = StatusFresh
		rec.err = nil
	}
	entry := c.snapshot(key, rec)
	notify := c.onUpdate
	c.mu.Unlock()

	if notify != nil {
		notify(entry)
	}
}
