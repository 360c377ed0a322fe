package memo

import "time"

// settings collects construction parameters shared by all cache value types.
type settings struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// Option applies a configuration option to a Cache under construction.
type Option func(*settings)

// WithTTL sets the entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxEntries bounds the number of cached entries.
func WithMaxEntries(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}
