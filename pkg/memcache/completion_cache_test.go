package mem

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompletionCache_SetGet(t *testing.T) {
	c := NewCompletionCache()

	c.Set("k", "Day 1: ...", time.Minute)
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "Day 1: ...", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCompletionCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCompletionCache()
	c.now = func() time.Time { return now }

	c.Set("a", "one", time.Minute)
	c.Set("b", "two", time.Hour)
	c.Set("zero", "never stored", 0)

	now = now.Add(2 * time.Minute)
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("zero")
	assert.False(t, ok)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, c.Purge())
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCompletionCache_Concurrent(t *testing.T) {
	c := NewCompletionCache()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set("shared", "v", time.Minute)
			c.Get("shared")
			c.Purge()
		}(i)
	}
	wg.Wait()

	got, ok := c.Get("shared")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}
