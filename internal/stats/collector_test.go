package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector()
	c.AddFilesCopied(2)
	c.AddDirsCreated(1)
	c.AddSymlinksCreated(1)
	c.AddBytesCopied(1024)
	c.AddFailed(1)
	c.AddSkipped(3)

	snap := c.Snapshot()
	assert.Equal(t, int64(2), snap.FilesCopied)
	assert.Equal(t, int64(1), snap.DirsCreated)
	assert.Equal(t, int64(1), snap.SymlinksCreated)
	assert.Equal(t, int64(1024), snap.BytesCopied)
	assert.Equal(t, int64(1), snap.Failed)
	assert.Equal(t, int64(3), snap.Skipped)
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddFilesCopied(1)
			c.AddBytesCopied(10)
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, int64(50), snap.FilesCopied)
	assert.Equal(t, int64(500), snap.BytesCopied)
}

func TestSnapshotString(t *testing.T) {
	c := NewCollector()
	c.AddFilesCopied(3)
	c.AddBytesCopied(2048)

	s := c.Snapshot().String()
	assert.Contains(t, s, "copied 3 files")
	assert.Contains(t, s, "2.0 KiB")
	assert.NotContains(t, s, "failed")

	c.AddFailed(2)
	assert.Contains(t, c.Snapshot().String(), "2 failed")
}
