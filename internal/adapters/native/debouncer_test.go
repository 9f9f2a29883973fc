package native_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vfswatch/internal/adapters/native"
	"go.trai.ch/vfswatch/internal/core/domain"
)

func created(path string) domain.ChangeEvent {
	return domain.ChangeEvent{Path: path, Kind: domain.ChangeCreated}
}

func TestDebouncer_Add_MultipleEventsCoalesced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var received []domain.ChangeEvent

		d := native.NewDebouncer(100*time.Millisecond, func(events []domain.ChangeEvent) {
			callCount++
			received = events
		})

		d.Add(created("/project/src/file2.go"))
		d.Add(created("/project/src/file1.go"))
		d.Add(created("/project/src/file3.go"))

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []domain.ChangeEvent{
			created("/project/src/file1.go"),
			created("/project/src/file2.go"),
			created("/project/src/file3.go"),
		}, received, "events are sorted by path")
	})
}

func TestDebouncer_Add_LatestKindWins(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var received []domain.ChangeEvent

		d := native.NewDebouncer(100*time.Millisecond, func(events []domain.ChangeEvent) {
			received = events
		})

		d.Add(created("/p/a"))
		d.Add(domain.ChangeEvent{Path: "/p/a", Kind: domain.ChangeModified})
		d.Add(domain.ChangeEvent{Path: "/p", Kind: domain.ChangeInvalidated})
		d.Add(domain.ChangeEvent{Path: "/p", Kind: domain.ChangeModified})

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, []domain.ChangeEvent{
			{Path: "/p", Kind: domain.ChangeInvalidated},
			{Path: "/p/a", Kind: domain.ChangeModified},
		}, received)
	})
}

func TestDebouncer_Add_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var mu sync.Mutex

		d := native.NewDebouncer(100*time.Millisecond, func([]domain.ChangeEvent) {
			mu.Lock()
			callCount++
			mu.Unlock()
		})

		d.Add(created("/project/src/file1.go"))
		time.Sleep(50 * time.Millisecond)

		// Second add resets the timer.
		d.Add(created("/project/src/file2.go"))
		time.Sleep(50 * time.Millisecond)

		synctest.Wait()
		mu.Lock()
		count := callCount
		mu.Unlock()
		assert.Equal(t, 0, count)

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		count = callCount
		mu.Unlock()
		require.Equal(t, 1, count)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var received []domain.ChangeEvent

		d := native.NewDebouncer(100*time.Millisecond, func(events []domain.ChangeEvent) {
			callCount++
			received = events
		})

		d.Add(created("/project/src/file1.go"))
		d.Flush()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []domain.ChangeEvent{created("/project/src/file1.go")}, received)

		// The stopped timer must not deliver again.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	var callCount int

	d := native.NewDebouncer(100*time.Millisecond, func([]domain.ChangeEvent) {
		callCount++
	})
	d.Flush()

	assert.Equal(t, 0, callCount)
}

func TestDebouncer_Flush_AfterFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int

		d := native.NewDebouncer(50*time.Millisecond, func([]domain.ChangeEvent) {
			callCount++
		})

		d.Add(created("/project/src/file1.go"))
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 1, callCount)

		d.Flush()
		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := native.NewDebouncer(50*time.Millisecond, nil)

		d.Add(created("/project/src/file1.go"))
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add(created("/project/src/file2.go"))
		d.Flush()
	})
}
