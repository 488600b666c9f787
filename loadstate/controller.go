package loadstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrClosed is reported by loads started after Close
var ErrClosed = errors.New("controller closed")

// FetchFunc produces the payload of a load
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Option configures a Controller.
type Option func(*options)

type options struct {
	timeout time.Duration
}

// WithTimeout bounds every load. Zero means no bound beyond the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout >= 0 {
			o.timeout = timeout
		}
	}
}

// Controller holds a State and runs loads that transition it.
// It is safe for concurrent use.
type Controller[T any] struct {
	fetch   FetchFunc[T]
	timeout time.Duration
	logger  zerolog.Logger

	mu      sync.Mutex
	state   State[T]
	seq     uint64
	cancel  context.CancelFunc
	subs    map[uint64]chan State[T]
	nextSub uint64
	closed  bool
}

// NewController creates a Controller in the Idle state
func NewController[T any](fetch func(ctx context.Context) (T, error), logger zerolog.Logger, opts ...Option) *Controller[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller[T]{
		fetch:   fetch,
		timeout: o.timeout,
		logger:  logger,
		state:   Idle[T](),
		subs:    make(map[uint64]chan State[T]),
	}
}

// Load moves the controller to Loading, runs the fetch and commits Loaded or
// Failed. A load already in flight is cancelled and its result discarded.
// The returned State is the controller's state when this load finished; for a
// superseded load that is the newer load's state.
func (c *Controller[T]) Load(ctx context.Context) State[T] {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Failed[T](0, NewErrorInfo(ErrClosed))
	}

	c.seq++
	seq := c.seq

	if c.cancel != nil {
		c.cancel()
	}

	var loadCtx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		loadCtx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		loadCtx, cancel = context.WithCancel(ctx)
	}
	c.cancel = cancel

	c.commitLocked(Loading[T](seq))
	c.mu.Unlock()

	c.logger.Debug().Uint64("seq", seq).Msg("Load started")

	data, err := c.fetch(loadCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if seq != c.seq || c.closed {
		c.logger.Debug().
			Uint64("seq", seq).
			Uint64("latest", c.seq).
			Msg("Discarding superseded load")
		return c.state
	}
	c.cancel = nil

	if err != nil {
		info := NewErrorInfo(err)
		c.logger.Warn().
			Err(err).
			Uint64("seq", seq).
			Str("kind", info.Kind.String()).
			Msg("Load failed")
		c.commitLocked(Failed[T](seq, info))
		return c.state
	}

	c.logger.Debug().Uint64("seq", seq).Msg("Load finished")
	c.commitLocked(Loaded(seq, data))
	return c.state
}

// Refresh reloads the payload; it behaves exactly like Load
func (c *Controller[T]) Refresh(ctx context.Context) State[T] {
	return c.Load(ctx)
}

// Retry reloads after a failure; it behaves exactly like Load
func (c *Controller[T]) Retry(ctx context.Context) State[T] {
	return c.Load(ctx)
}

// State returns the latest committed state
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a channel that receives every committed state, starting
// with the current one. A slow subscriber only misses intermediate states; the
// newest state always replaces an unread one. The returned function
// unsubscribes and closes the channel.
func (c *Controller[T]) Subscribe() (<-chan State[T], func()) {
	ch := make(chan State[T], 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.state
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Close cancels any load in flight and closes all subscriptions. Loads started
// afterwards fail immediately with ErrClosed.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

// commitLocked stores s and publishes it. c.mu must be held.
func (c *Controller[T]) commitLocked(s State[T]) {
	c.state = s
	for _, ch := range c.subs {
		// Only commitLocked sends, so after draining the buffer the send cannot block
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
