package resp

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay/http/conditional"
)

func TestMemoryCacheFetch(t *testing.T) {
	t.Run("Computes-Once", func(t *testing.T) {
		// Arrange
		c := NewMemoryCache(time.Minute)
		var calls int32
		compute := func() (conditional.Metadata, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(20 * time.Millisecond)
			return conditional.Metadata{ETag: "abc", Size: 3}, nil
		}

		// Act
		var wg sync.WaitGroup
		results := make([]conditional.Metadata, 50)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = c.Fetch(context.Background(), "key", compute)
			}(i)
		}
		wg.Wait()

		// Assert
		require.Equal(t, int32(1), atomic.LoadInt32(&calls))
		for _, meta := range results {
			require.Equal(t, "abc", meta.ETag)
		}
	})

	t.Run("Expires", func(t *testing.T) {
		// Arrange
		now := time.Now()
		c := NewMemoryCache(time.Minute)
		c.now = func() time.Time { return now }

		var calls int
		compute := func() (conditional.Metadata, error) {
			calls++
			return conditional.Metadata{Size: uint64(calls)}, nil
		}

		// Act
		first, err := c.Fetch(context.Background(), "key", compute)
		require.Nil(t, err)
		cached, err := c.Fetch(context.Background(), "key", compute)
		require.Nil(t, err)

		now = now.Add(2 * time.Minute)
		fresh, err := c.Fetch(context.Background(), "key", compute)
		require.Nil(t, err)

		// Assert
		require.Equal(t, uint64(1), first.Size)
		require.Equal(t, uint64(1), cached.Size)
		require.Equal(t, uint64(2), fresh.Size)
	})

	t.Run("Errors-Not-Cached", func(t *testing.T) {
		c := NewMemoryCache(0)
		expected := errors.New("disk on fire")

		_, err := c.Fetch(context.Background(), "key", func() (conditional.Metadata, error) {
			return conditional.Metadata{}, expected
		})
		require.ErrorIs(t, err, expected)

		meta, err := c.Fetch(context.Background(), "key", func() (conditional.Metadata, error) {
			return conditional.Metadata{ETag: "ok"}, nil
		})
		require.Nil(t, err)
		require.Equal(t, "ok", meta.ETag)
	})
}

func TestRedisCacheUnreachable(t *testing.T) {
	// Arrange
	c := NewRedisCache(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}, time.Minute)

	var calls int
	compute := func() (conditional.Metadata, error) {
		calls++
		return conditional.Metadata{ETag: "computed"}, nil
	}

	// Act
	meta, err := c.Fetch(context.Background(), "key", compute)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "computed", meta.ETag)
	require.Equal(t, 1, calls)
}

func TestMetadataKey(t *testing.T) {
	f := fileInfo{size: 10, mod: time.Unix(0, 255)}

	require.Equal(t, "content:/srv/a.txt:a-ff", metadataKey("/srv/a.txt", f, ContentHash))
	require.Equal(t, "fingerprint:/srv/a.txt:a-ff", metadataKey("/srv/a.txt", f, Fingerprint))
}

type fileInfo struct {
	size int64
	mod  time.Time
}

func (f fileInfo) Name() string       { return "a.txt" }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return 0o644 }
func (f fileInfo) ModTime() time.Time { return f.mod }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }
