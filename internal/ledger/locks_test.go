package ledger

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

func TestKeyedMutex(t *testing.T) {
	t.Parallel()

	t.Run("serializes the same key", func(t *testing.T) {
		var k keyedMutex
		key := store.Key{UserID: "user_1", Kind: store.KindExpenses}

		var active, peak atomic.Int32
		var wg sync.WaitGroup
		for range 20 {
			wg.Go(func() {
				unlock := k.lock(key)
				defer unlock()
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				active.Add(-1)
			})
		}
		wg.Wait()

		require.Equal(t, int32(1), peak.Load())
		require.Zero(t, k.size())
	})

	t.Run("different keys do not block each other", func(t *testing.T) {
		var k keyedMutex
		unlockA := k.lock(store.Key{UserID: "user_1", Kind: store.KindExpenses})
		unlockB := k.lock(store.Key{UserID: "user_1", Kind: store.KindBudgets})
		unlockC := k.lock(store.Key{UserID: "user_2", Kind: store.KindExpenses})
		require.Equal(t, 3, k.size())

		unlockA()
		unlockB()
		unlockC()
		require.Zero(t, k.size())
	})
}
