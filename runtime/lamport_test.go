package runtime

import (
	"campus-chat/domain/chat"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestLamportClock_AdvanceTakesMaxPlusOne(t *testing.T) {
	req := require.New(t)
	clock := NewLamportClock()

	req.Zero(clock.Current("r1"))
	req.Equal(int64(6), clock.Advance("r1", 5))
	req.Equal(int64(7), clock.Advance("r1", 2))
	req.Equal(int64(8), clock.Increment("r1"))
	req.Equal(int64(1), clock.Increment("r2"))

	clock.Reset("r1")
	req.Zero(clock.Current("r1"))
	req.Equal(int64(1), clock.Current("r2"))
}

func TestLamportClock_ConcurrentAdvancesAreUnique(t *testing.T) {
	req := require.New(t)
	clock := NewLamportClock()
	const senders = 64

	values := make([]int64, senders)
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			values[i] = clock.Advance(chat.RoomID("r1"), int64(i%3))
		}(i)
	}
	wg.Wait()

	req.Len(lo.Uniq(values), senders)
	req.Equal(lo.Max(values), clock.Current("r1"))
}
