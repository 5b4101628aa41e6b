package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Config defines the token bucket parameters.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"10"`        // Burst limit per key.
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`      // Tokens added per interval.
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"6s"` // Refill cadence.
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result reports the outcome of one limiter check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before trying again, zero when
// the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

type bucketState struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Bucket is an in-memory token bucket limiter keyed by caller-chosen
// strings. Stale keys are evicted by a background sweeper.
type Bucket struct {
	mu      sync.Mutex
	config  Config
	buckets map[string]*bucketState

	now       func() time.Time
	stopSweep chan struct{}
	stopOnce  sync.Once
}

// NewBucket creates a token bucket limiter. Call Close to stop the
// background sweeper.
func NewBucket(config Config) (*Bucket, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	b := &Bucket{
		config:    config,
		buckets:   make(map[string]*bucketState),
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}
	go b.sweep(5 * time.Minute)
	return b, nil
}

// Allow consumes one token for the key and reports whether the request
// is within limits. An empty key is never limited.
func (b *Bucket) Allow(key string) *Result {
	if key == "" {
		return &Result{Limit: b.config.Capacity, Remaining: b.config.Capacity}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state, ok := b.buckets[key]
	if !ok {
		state = &bucketState{tokens: b.config.Capacity, lastRefill: now}
		b.buckets[key] = state
	}

	// Refill whole intervals since the last refill, capped so a long
	// idle period cannot overflow the counter.
	elapsed := now.Sub(state.lastRefill)
	maxIntervals := int64(b.config.Capacity/b.config.RefillRate + 1)
	intervals := min(int64(elapsed/b.config.RefillInterval), maxIntervals)
	if intervals > 0 {
		state.tokens = min(state.tokens+int(intervals)*b.config.RefillRate, b.config.Capacity)
		state.lastRefill = now
	}

	state.tokens--
	state.lastAccess = now

	return &Result{
		Limit:     b.config.Capacity,
		Remaining: state.tokens,
		ResetAt:   state.lastRefill.Add(b.config.RefillInterval),
	}
}

// Reset clears the limiter state for a key.
func (b *Bucket) Reset(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buckets, key)
}

func (b *Bucket) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.removeStale()
		case <-b.stopSweep:
			return
		}
	}
}

func (b *Bucket) removeStale() {
	b.mu.Lock()
	defer b.mu.Unlock()

	cutoff := b.now().Add(-1 * time.Hour)
	for key, state := range b.buckets {
		if state.lastAccess.Before(cutoff) {
			delete(b.buckets, key)
		}
	}
}

// Close stops the background sweeper. Safe to call multiple times.
func (b *Bucket) Close() {
	b.stopOnce.Do(func() { close(b.stopSweep) })
}
