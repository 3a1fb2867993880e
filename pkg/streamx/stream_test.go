package streamx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/reactx/pkg/errx"
	"github.com/Abraxas-365/reactx/pkg/streamx"
)

func TestJust_Collect(t *testing.T) {
	values, err := streamx.Collect(context.Background(), streamx.Just(1, 2, 3))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestFail_DeliversError(t *testing.T) {
	boom := errors.New("boom")

	values, err := streamx.Collect(context.Background(), streamx.Fail[int](boom))

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, values)
}

func TestFirst_EmptyStream(t *testing.T) {
	_, err := streamx.First(context.Background(), streamx.Empty[string]())

	assert.True(t, errx.IsCode(err, streamx.ErrNoValue))
}

func TestFirst_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := streamx.First(ctx, streamx.Never[int]())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCreate_RecoversPanic(t *testing.T) {
	s := streamx.Create(func(o streamx.Observer[int]) func() {
		panic("source exploded")
	})

	_, err := streamx.Collect(context.Background(), s)

	assert.True(t, errx.IsCode(err, streamx.ErrPanic))
}

func TestCreate_NothingAfterTerminal(t *testing.T) {
	s := streamx.Create(func(o streamx.Observer[int]) func() {
		o.OnNext(1)
		o.OnComplete()
		o.OnNext(2)
		o.OnError(errors.New("late"))
		return nil
	})

	rec := &recorder[int]{}
	s.Subscribe(rec)

	assert.Equal(t, []int{1}, rec.Values())
	assert.True(t, rec.Completed())
	assert.NoError(t, rec.Err())
}

func TestCreate_TeardownRunsOnceOnUnsubscribe(t *testing.T) {
	calls := 0
	s := streamx.Create(func(o streamx.Observer[int]) func() {
		return func() { calls++ }
	})

	sub := s.Subscribe(&recorder[int]{})
	sub.Unsubscribe()
	sub.Unsubscribe()

	assert.Equal(t, 1, calls)
}

func TestFromFunc_RunsAsync(t *testing.T) {
	s := streamx.FromFunc(func(ctx context.Context) (string, error) {
		return "done", nil
	})

	values, err := streamx.Collect(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, values)
}

func TestFromFunc_Error(t *testing.T) {
	boom := errors.New("boom")
	s := streamx.FromFunc(func(ctx context.Context) (int, error) {
		return 0, boom
	})

	_, err := streamx.Collect(context.Background(), s)

	assert.ErrorIs(t, err, boom)
}

func TestDefer_CallsFactoryPerSubscription(t *testing.T) {
	calls := 0
	s := streamx.Defer(func() streamx.Stream[int] {
		calls++
		return streamx.Just(calls)
	})

	first, _ := streamx.First(context.Background(), s)
	second, _ := streamx.First(context.Background(), s)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}
