package console

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/3afrios/friosdesk/pkg/api"
)

const metricsKey = "conversation_metrics"

// MetricsPoller re-fetches the support metrics aggregate on a fixed interval
// and keeps the latest snapshot in an in-memory cache. A failed fetch keeps
// the previous snapshot; the next tick tries again.
type MetricsPoller struct {
	client   *api.Client
	snapshot *cache.Cache
	interval time.Duration

	stop chan struct{}
	once sync.Once
}

func NewMetricsPoller(client *api.Client, interval time.Duration) *MetricsPoller {
	return &MetricsPoller{
		client:   client,
		snapshot: cache.New(cache.NoExpiration, 0),
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start fetches once immediately and then keeps polling until Stop or the
// context ends.
func (p *MetricsPoller) Start(ctx context.Context) {
	go func() {
		p.refresh(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.refresh(ctx)
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Snapshot returns the most recent metrics, if any fetch has succeeded.
func (p *MetricsPoller) Snapshot() (*api.ConversationMetrics, bool) {
	v, ok := p.snapshot.Get(metricsKey)
	if !ok {
		return nil, false
	}
	return v.(*api.ConversationMetrics), true
}

// Stop halts the polling loop.
func (p *MetricsPoller) Stop() {
	p.once.Do(func() { close(p.stop) })
}

func (p *MetricsPoller) refresh(ctx context.Context) {
	m, err := p.client.ConversationMetricsSnapshot(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Metrics refresh failed, keeping previous snapshot")
		return
	}
	p.snapshot.Set(metricsKey, m, cache.NoExpiration)
}
