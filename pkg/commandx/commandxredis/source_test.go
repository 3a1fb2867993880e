package commandxredis_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/reactx/pkg/commandx/commandxredis"
	"github.com/Abraxas-365/reactx/pkg/errx"
)

const (
	testKey     = "commandx:enabled:report"
	testChannel = "commandx:enabled:events:report"
)

func newSource(t *testing.T) (*commandxredis.Source, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return commandxredis.NewSource(rdb, testKey, testChannel), mr
}

type flags struct {
	mu        sync.Mutex
	values    []bool
	err       error
	completed bool
}

func (f *flags) OnNext(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = append(f.values, v)
}

func (f *flags) OnError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *flags) OnComplete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = true
}

func (f *flags) Values() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.values)
}

func (f *flags) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *flags) Completed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

func TestSource_CurrentUnset(t *testing.T) {
	src, _ := newSource(t)

	_, ok, err := src.Current(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSource_SetStoresValue(t *testing.T) {
	src, mr := newSource(t)
	ctx := context.Background()

	require.NoError(t, src.Set(ctx, false))

	enabled, ok, err := src.Current(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, enabled)

	stored, err := mr.Get(testKey)
	require.NoError(t, err)
	assert.Equal(t, "false", stored)
}

func TestSource_CurrentMalformed(t *testing.T) {
	src, mr := newSource(t)
	require.NoError(t, mr.Set(testKey, "maybe"))

	_, _, err := src.Current(context.Background())
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, commandxredis.ErrParse))
}

func TestSource_StreamEmitsStoredValueThenChanges(t *testing.T) {
	src, mr := newSource(t)
	require.NoError(t, mr.Set(testKey, "off"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := &flags{}
	sub := src.Stream(ctx).Subscribe(got)
	defer sub.Unsubscribe()

	require.Eventually(t, func() bool {
		return slices.Equal(got.Values(), []bool{false})
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, src.Set(ctx, true))
	require.Eventually(t, func() bool {
		return slices.Equal(got.Values(), []bool{false, true})
	}, time.Second, 5*time.Millisecond)

	mr.Publish(testChannel, "maybe")
	require.NoError(t, src.Set(ctx, false))
	require.Eventually(t, func() bool {
		return slices.Equal(got.Values(), []bool{false, true, false})
	}, time.Second, 5*time.Millisecond, "malformed message is skipped")

	cancel()
	require.Eventually(t, got.Completed, time.Second, 5*time.Millisecond)
	assert.NoError(t, got.Err())
}

func TestSource_StreamWithoutStoredValue(t *testing.T) {
	src, _ := newSource(t)

	ctx, cancel := context.WithCancel(context.Background())
	got := &flags{}
	src.Stream(ctx).Subscribe(got)

	require.Eventually(t, func() bool {
		if err := src.Set(context.Background(), true); err != nil {
			return false
		}
		return len(got.Values()) > 0
	}, time.Second, 20*time.Millisecond)
	assert.True(t, got.Values()[0])

	cancel()
	require.Eventually(t, got.Completed, time.Second, 5*time.Millisecond)
}
