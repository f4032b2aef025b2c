package rod

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_RecycleFailureWaitsForNextCycle(t *testing.T) {
	t.Parallel()

	// Given a fetcher due for recycling whose relaunch always fails
	launches := 0
	f := &Fetcher{maxPages: 2, pages: 2}
	f.start = func() error {
		launches++
		return errors.New("chrome not found")
	}

	// When two more pages are acquired
	for range 2 {
		_, err := f.acquire()
		require.NoError(t, err)
		f.release()
	}

	// Then only the first acquire tried to relaunch
	assert.Equal(t, 1, launches)
	assert.Equal(t, 2, f.pages)

	// And the acquire after a full cycle tries again
	_, err := f.acquire()
	require.NoError(t, err)
	f.release()
	assert.Equal(t, 2, launches)
}
