package snapstore

import (
	"context"
	"sync"

	"github.com/tarantool/go-snapstore/watch"
)

type watcher struct {
	key  string
	opts watch.Options
	ch   chan watch.Event
}

// watchHub fans committed writes out to registered watchers.
type watchHub struct {
	mu       sync.Mutex
	nextID   uint64
	buffer   int
	watchers map[uint64]watcher
}

func newWatchHub(buffer int) *watchHub {
	return &watchHub{
		mu:       sync.Mutex{},
		nextID:   0,
		buffer:   buffer,
		watchers: make(map[uint64]watcher),
	}
}

// Watch streams events for writes to key, or to every key starting with key
// when watch.WithPrefix is given. The channel is closed when ctx is done or
// the returned stop function is called. Events are dropped while the
// channel is full.
func (s *Store) Watch(ctx context.Context, key string, opts ...watch.Option) (<-chan watch.Event, func()) {
	watchOpts := watch.Options{Prefix: false}
	for _, opt := range opts {
		opt(&watchOpts)
	}

	return s.watchers.add(ctx, key, watchOpts)
}

func (h *watchHub) add(ctx context.Context, key string, opts watch.Options) (<-chan watch.Event, func()) {
	h.mu.Lock()
	h.nextID++

	wid := h.nextID
	wch := make(chan watch.Event, h.buffer)

	h.watchers[wid] = watcher{key: key, opts: opts, ch: wch}
	h.mu.Unlock()

	var (
		stopOnce = sync.Once{}
		stopped  = make(chan struct{})
	)

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
		}

		h.mu.Lock()
		defer h.mu.Unlock()

		delete(h.watchers, wid)
		close(wch)
	}()

	return wch, func() { stopOnce.Do(func() { close(stopped) }) }
}

func (h *watchHub) notify(event watch.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, w := range h.watchers {
		if !w.opts.Matches(w.key, event.Key) {
			continue
		}

		select {
		case w.ch <- event:
		default:
		}
	}
}
