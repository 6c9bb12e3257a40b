package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_BasicOperations(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	require.NotNil(t, c.store)

	c.Set("key1", "value1")
	val, found := c.Get("key1")
	require.True(t, found)
	assert.Equal(t, "value1", val)

	_, found = c.Get("missing")
	assert.False(t, found)

	c.Delete("key1")
	_, found = c.Get("key1")
	assert.False(t, found)

	c.Delete("missing") // no panic
}

func TestCache_Clear(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	c.Set("a", 1)
	c.PutArtifact(&Artifact{RunID: "r1"})
	assert.Equal(t, 3, c.ItemCount())

	c.Clear()
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, Stats{ItemCount: 0}, c.GetStats())
}

func TestCache_Artifacts(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	_, ok := c.Latest()
	assert.False(t, ok)

	first := &Artifact{RunID: "r1", Name: "Fiori_Apps_Data_S28OP.xlsx", Data: []byte{1}}
	second := &Artifact{RunID: "r2", Name: "Fiori_Apps_Data_S29OP.xlsx", Data: []byte{2}}
	c.PutArtifact(first)
	c.PutArtifact(second)

	got, ok := c.Artifact("r1")
	require.True(t, ok)
	assert.Same(t, first, got)

	latest, ok := c.Latest()
	require.True(t, ok)
	assert.Same(t, second, latest)

	_, ok = c.Artifact("r3")
	assert.False(t, ok)
}

func TestCache_ArtifactWrongType(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	c.Set(artifactKey("r1"), "not an artifact")

	_, ok := c.Artifact("r1")
	assert.False(t, ok)
}

func TestCache_ArtifactExpires(t *testing.T) {
	c := New(50*time.Millisecond, 10*time.Millisecond)
	c.PutArtifact(&Artifact{RunID: "r1"})

	assert.Eventually(t, func() bool {
		_, ok := c.Latest()
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.PutArtifact(&Artifact{RunID: string(rune('a' + i))})
			_, _ = c.Latest()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 21, c.ItemCount())
}
