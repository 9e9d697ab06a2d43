package calendar

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a window's events stay cached.
const DefaultTTL = 5 * time.Minute

// CachedProvider wraps another Provider with a TTL cache keyed by the
// requested window, so the overview page does not hit the upstream
// calendar on every load.
type CachedProvider struct {
	inner Provider
	cache *gocache.Cache
}

type cachedWindow struct {
	events []Event
	synced bool
}

// NewCachedProvider wraps inner with a TTL cache.
// PRE: inner is non-nil
func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedProvider{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Events returns cached events for the window, fetching on a miss.
// Upstream errors are not cached.
// POST: a second call inside the TTL does not hit the inner provider
func (p *CachedProvider) Events(ctx context.Context, from, to time.Time) ([]Event, bool, error) {
	key := fmt.Sprintf("%d/%d", from.Unix(), to.Unix())
	if v, ok := p.cache.Get(key); ok {
		w := v.(cachedWindow)
		return w.events, w.synced, nil
	}

	events, synced, err := p.inner.Events(ctx, from, to)
	if err != nil {
		return nil, false, err
	}
	p.cache.Set(key, cachedWindow{events: events, synced: synced}, gocache.DefaultExpiration)
	return events, synced, nil
}
