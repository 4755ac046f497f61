package store

import (
	"sync"
	"time"
)

// Compile-time checks that both backends satisfy Store.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLStore)(nil)
)

// stepClock returns a clock that starts at base and advances one second per
// call, so generated timestamps are distinct and predictable.
func stepClock(base time.Time) func() time.Time {
	var (
		mu sync.Mutex
		n  int
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := base.Add(time.Duration(n) * time.Second)
		n++
		return t
	}
}

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
