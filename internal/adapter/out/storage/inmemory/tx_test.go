package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxManager_Do(t *testing.T) {
	t.Parallel()

	m := NewTxManager()
	boom := errors.New("boom")
	require.ErrorIs(t, m.Do(context.Background(), func(context.Context) error { return boom }), boom)

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(context.Background(), func(context.Context) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	require.Equal(t, 50, counter)
}
