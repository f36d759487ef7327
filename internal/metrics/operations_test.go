package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationStats(t *testing.T) {
	t.Run("records successes and failures", func(t *testing.T) {
		stats := NewOperationStats()

		stats.RecordEncryption(100, true)
		stats.RecordComparison(50, true)
		stats.RecordComparison(999, false)

		snap := stats.Snapshot()
		assert.Equal(t, uint64(2), snap.TotalOperations)
		assert.Equal(t, uint64(150), snap.TotalUnitsUsed)
		assert.Equal(t, uint64(1), snap.EncryptionOperations)
		assert.Equal(t, uint64(1), snap.ComparisonOperations)
		assert.Equal(t, uint64(1), snap.FailedOperations)
	})

	t.Run("reset", func(t *testing.T) {
		stats := NewOperationStats()
		stats.RecordEncryption(10, true)
		stats.Reset()
		assert.Equal(t, OperationSnapshot{}, stats.Snapshot())
	})

	t.Run("concurrent", func(t *testing.T) {
		stats := NewOperationStats()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				stats.RecordEncryption(1, true)
			}()
		}
		wg.Wait()
		assert.Equal(t, uint64(50), stats.Snapshot().EncryptionOperations)
	})
}
