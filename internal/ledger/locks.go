package ledger

import (
	"sync"

	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

// keyedMutex serializes read-modify-write cycles per collection key.
// Entries are dropped once no goroutine holds or waits on them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[store.Key]*refLock
}

type refLock struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until key is free and returns the matching unlock.
func (k *keyedMutex) lock(key store.Key) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[store.Key]*refLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
