package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, 2*time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "k1", payload{Name: "eth", Count: 3}, time.Minute); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}

	var got payload
	if err := c.Get(ctx, "k1", &got); err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	assert.Equal(t, payload{Name: "eth", Count: 3}, got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(time.Minute, 2*time.Minute)

	var got payload
	err := c.Get(context.Background(), "missing", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, 2*time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "k1", payload{Name: "x"}, time.Minute)
	_ = c.Delete(ctx, "k1")

	var got payload
	err := c.Get(ctx, "k1", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 2*time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "k1", payload{Name: "x"}, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	var got payload
	err := c.Get(ctx, "k1", &got)
	assert.ErrorIs(t, err, ErrMiss)
}
