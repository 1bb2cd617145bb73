package services

import "sync"

type pairKey struct {
	userID      uint
	challengeID uint
}

type keyedMutexEntry struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex serializes work per (user, challenge) pair. The daily-limit
// check and the post insert are not atomic against the store, so concurrent
// requests for the same key must not interleave between them.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[pairKey]*keyedMutexEntry
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[pairKey]*keyedMutexEntry)}
}

// lock blocks until the pair's mutex is held and returns the release func.
func (locks *keyedMutex) lock(userID uint, challengeID uint) func() {
	key := pairKey{userID: userID, challengeID: challengeID}

	locks.mu.Lock()
	entry, ok := locks.entries[key]
	if !ok {
		entry = &keyedMutexEntry{}
		locks.entries[key] = entry
	}
	entry.refs++
	locks.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		locks.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(locks.entries, key)
		}
		locks.mu.Unlock()
	}
}
