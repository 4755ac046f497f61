package store

import (
	"time"

	"github.com/holawaleh/dreamspacefrontend/internal/types"
)

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for generated timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// stamp returns the current time at storage precision.
func (o options) stamp() time.Time {
	return types.NewTimestamp(o.now()).Time
}

// dateOrNow returns ts normalized, or the current time when ts is unset.
func (o options) dateOrNow(ts types.Timestamp) types.Timestamp {
	if ts.IsZero() {
		return types.Timestamp{Time: o.stamp()}
	}
	return types.NewTimestamp(ts.Time)
}
