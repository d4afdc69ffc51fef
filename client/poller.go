package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quoteflow/quote-service/internal/api/dto"
)

const defaultPollInterval = 30 * time.Second

// UnreadPoller watches the unread-messages endpoint and invokes a callback
// once per quote that gains unread client notes. A quote already reported is
// not reported again for the poller's lifetime, so a slow reader does not get
// the same notification every tick.
type UnreadPoller struct {
	client   *Client
	interval time.Duration
	onUnread func(dto.UnreadQuote)

	inFlight atomic.Bool

	mu       sync.Mutex
	notified map[string]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// NewUnreadPoller builds a poller calling onUnread for each newly unread
// quote. interval <= 0 falls back to 30 seconds.
func NewUnreadPoller(c *Client, interval time.Duration, onUnread func(dto.UnreadQuote)) *UnreadPoller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &UnreadPoller{
		client:   c,
		interval: interval,
		onUnread: onUnread,
		notified: make(map[string]struct{}),
	}
}

// Start begins polling until Stop is called or ctx is cancelled. A tick that
// lands while the previous request is still in flight is skipped, not queued.
func (p *UnreadPoller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.poll(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

// Stop cancels polling and waits for the loop to exit.
func (p *UnreadPoller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

func (p *UnreadPoller) poll(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer p.inFlight.Store(false)

	resp, err := p.client.GetUnreadMessages(ctx)
	if err != nil {
		// Transient failures are silent; the next tick tries again.
		return
	}

	fresh := p.markNotified(resp.Quotes)
	for _, q := range fresh {
		p.onUnread(q)
	}
}

func (p *UnreadPoller) markNotified(quotes []dto.UnreadQuote) []dto.UnreadQuote {
	p.mu.Lock()
	defer p.mu.Unlock()

	var fresh []dto.UnreadQuote
	for _, q := range quotes {
		if _, seen := p.notified[q.QuoteID]; seen {
			continue
		}
		p.notified[q.QuoteID] = struct{}{}
		fresh = append(fresh, q)
	}
	return fresh
}
