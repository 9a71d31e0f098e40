package order

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutexSerializesPerKey(t *testing.T) {
	locks := newKeyMutex()

	const workers = 32
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock("order_a")
			counter++
			locks.Unlock("order_a")
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyMutexReleasesEntries(t *testing.T) {
	locks := newKeyMutex()

	locks.Lock("order_a")
	locks.Lock("order_b")
	locks.Unlock("order_a")
	locks.Unlock("order_b")

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.entries)
}
