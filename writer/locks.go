package writer

import (
	"io"
	"sync"
)

// destLocks maps a destination value to its serialization lock. Every
// writer addressing the same destination must serialize through the
// same lock instance, otherwise two encoded records could interleave
// on the stream. Destinations are compared by interface identity, so
// they must be comparable values (pointers in practice: *os.File,
// *bytes.Buffer, *bufio.Writer).
var (
	destLocksMu sync.Mutex
	destLocks   = make(map[io.Writer]*sync.Mutex)
)

// destLock returns the shared lock for dest, creating it on first use.
func destLock(dest io.Writer) *sync.Mutex {
	destLocksMu.Lock()
	defer destLocksMu.Unlock()
	if mu, ok := destLocks[dest]; ok {
		return mu
	}
	mu := new(sync.Mutex)
	destLocks[dest] = mu
	return mu
}
