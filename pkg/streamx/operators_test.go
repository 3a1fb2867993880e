package streamx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/reactx/pkg/streamx"
)

func TestMapFilterDistinct(t *testing.T) {
	s := streamx.DistinctUntilChanged(
		streamx.Filter(
			streamx.Map(streamx.Just(1, 2, 3, 4, 5, 6), func(v int) int { return v / 2 }),
			func(v int) bool { return v > 0 },
		),
	)

	values, err := streamx.Collect(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestStartWith(t *testing.T) {
	values, err := streamx.Collect(context.Background(), streamx.StartWith(streamx.Just(3), 1, 2))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestCatchComplete_SwallowsError(t *testing.T) {
	s := streamx.CatchComplete(streamx.Fail[int](errors.New("boom")))

	values, err := streamx.Collect(context.Background(), s)

	assert.NoError(t, err)
	assert.Empty(t, values)
}

func TestMaterialize(t *testing.T) {
	boom := errors.New("boom")
	s := streamx.Materialize(streamx.Create(func(o streamx.Observer[int]) func() {
		o.OnNext(7)
		o.OnError(boom)
		return nil
	}))

	got, err := streamx.Collect(context.Background(), s)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, streamx.KindNext, got[0].Kind)
	assert.Equal(t, 7, got[0].Value)
	assert.True(t, got[1].IsError())
	assert.ErrorIs(t, got[1].Err, boom)
}

func TestCombineLatest(t *testing.T) {
	a := streamx.NewBehavior(true)
	b := streamx.NewBehavior(false)
	rec := &recorder[bool]{}

	streamx.CombineLatest(a, b, func(x, y bool) bool { return x && y }).Subscribe(rec)
	b.OnNext(true)
	a.OnNext(false)

	assert.Equal(t, []bool{false, true, false}, rec.Values())
}

func TestCombineLatest_CompletesWhenInputNeverEmitted(t *testing.T) {
	rec := &recorder[int]{}
	streamx.CombineLatest(streamx.Empty[int](), streamx.Never[int](), func(x, y int) int { return x + y }).
		Subscribe(rec)

	assert.True(t, rec.Completed())
}

func TestObserveOnAfterFirst(t *testing.T) {
	sched := &manualScheduler{}
	b := streamx.NewBehavior(0)
	rec := &recorder[int]{}

	streamx.ObserveOnAfterFirst[int](b, sched).Subscribe(rec)
	assert.Equal(t, []int{0}, rec.Values(), "first value is delivered inline")

	b.OnNext(1)
	b.OnNext(2)
	assert.Equal(t, []int{0}, rec.Values())
	assert.Equal(t, 2, sched.Pending())

	sched.RunAll()
	assert.Equal(t, []int{0, 1, 2}, rec.Values())
}

func TestObserveOn_DefersEverything(t *testing.T) {
	sched := &manualScheduler{}
	rec := &recorder[int]{}

	streamx.ObserveOn(streamx.Just(1, 2), sched).Subscribe(rec)
	assert.Empty(t, rec.Values())

	sched.RunAll()
	assert.Equal(t, []int{1, 2}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestFlatMap_MergesAndCompletesLast(t *testing.T) {
	outer := streamx.NewPublish[*streamx.Publish[int]]()
	rec := &recorder[int]{}
	streamx.FlatMap[*streamx.Publish[int], int](outer, func(p *streamx.Publish[int]) streamx.Stream[int] { return p }).
		Subscribe(rec)

	p1, p2 := streamx.NewPublish[int](), streamx.NewPublish[int]()
	outer.OnNext(p1)
	outer.OnNext(p2)
	p1.OnNext(1)
	p2.OnNext(2)
	p1.OnComplete()
	outer.OnComplete()
	assert.False(t, rec.Completed())

	p2.OnNext(3)
	p2.OnComplete()

	assert.Equal(t, []int{1, 2, 3}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestSwitchLatest_DropsPreviousInner(t *testing.T) {
	outer := streamx.NewPublish[streamx.Stream[int]]()
	rec := &recorder[int]{}
	streamx.SwitchLatest[int](outer).Subscribe(rec)

	p1, p2 := streamx.NewPublish[int](), streamx.NewPublish[int]()
	outer.OnNext(p1)
	p1.OnNext(1)
	outer.OnNext(p2)
	p1.OnNext(99)
	p2.OnNext(2)

	assert.Equal(t, []int{1, 2}, rec.Values())
}

func TestReplayLatest_SharesOneUpstreamSubscription(t *testing.T) {
	subscriptions := 0
	upstream := streamx.NewPublish[int]()
	source := streamx.Defer(func() streamx.Stream[int] {
		subscriptions++
		return streamx.StartWith[int](upstream, 10)
	})
	shared := streamx.ReplayLatest(source)

	first := &recorder[int]{}
	shared.Subscribe(first)
	upstream.OnNext(11)

	second := &recorder[int]{}
	shared.Subscribe(second)

	assert.Equal(t, 1, subscriptions)
	assert.Equal(t, []int{10, 11}, first.Values())
	assert.Equal(t, []int{11}, second.Values())
}
