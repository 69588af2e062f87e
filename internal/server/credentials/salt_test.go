package credentials

import (
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt_Shape(t *testing.T) {
	t.Parallel()

	s, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, string(s), 2*SaltBytes)

	raw, err := hex.DecodeString(string(s))
	require.NoError(t, err)
	assert.Len(t, raw, SaltBytes)
}

func TestGenerateSalt_NoCollisions(t *testing.T) {
	t.Parallel()

	const trials = 10000
	seen := make(map[Salt]struct{}, trials)
	for i := 0; i < trials; i++ {
		s, err := GenerateSalt()
		require.NoError(t, err)
		_, dup := seen[s]
		require.False(t, dup, "salt collision after %d draws", i)
		seen[s] = struct{}{}
	}
}

func TestGenerateSalt_Concurrent(t *testing.T) {
	t.Parallel()

	const workers, perWorker = 8, 250

	var (
		mu   sync.Mutex
		seen = make(map[Salt]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s, err := GenerateSalt()
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				seen[s] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
