package streamx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abraxas-365/reactx/pkg/streamx"
)

func TestBehavior_ReplaysCurrentValue(t *testing.T) {
	b := streamx.NewBehavior(1)
	b.OnNext(2)

	rec := &recorder[int]{}
	b.Subscribe(rec)
	b.OnNext(3)

	assert.Equal(t, []int{2, 3}, rec.Values())
	assert.Equal(t, 3, b.Value())
}

func TestBehavior_Update(t *testing.T) {
	b := streamx.NewBehavior([]string{})
	rec := &recorder[[]string]{}
	b.Subscribe(rec)

	got, ok := b.Update(func(cur []string) ([]string, bool) {
		return append(cur, "a"), true
	})
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, got)

	_, ok = b.Update(func(cur []string) ([]string, bool) {
		return nil, false
	})
	assert.False(t, ok)

	assert.Equal(t, [][]string{{}, {"a"}}, rec.Values())
}

func TestBehavior_ReentrantEmitPreservesOrder(t *testing.T) {
	b := streamx.NewBehavior(0)

	var a []int
	b.Subscribe(streamx.Funcs[int]{Next: func(v int) {
		a = append(a, v)
		if v == 1 {
			b.OnNext(2)
		}
	}})
	other := &recorder[int]{}
	b.Subscribe(other)

	b.OnNext(1)

	assert.Equal(t, []int{0, 1, 2}, a)
	assert.Equal(t, []int{0, 1, 2}, other.Values())
}

func TestSubject_UnsubscribeStopsDelivery(t *testing.T) {
	p := streamx.NewPublish[int]()
	rec := &recorder[int]{}
	sub := p.Subscribe(rec)

	p.OnNext(1)
	sub.Unsubscribe()
	p.OnNext(2)

	assert.Equal(t, []int{1}, rec.Values())
}

func TestPublish_LateSubscriberSeesOnlyTerminal(t *testing.T) {
	p := streamx.NewPublish[int]()
	p.OnNext(1)
	p.OnComplete()

	rec := &recorder[int]{}
	p.Subscribe(rec)

	assert.Empty(t, rec.Values())
	assert.True(t, rec.Completed())
}

func TestReplay_LateSubscriberSeesEverything(t *testing.T) {
	boom := errors.New("boom")
	r := streamx.NewReplay[int]()
	r.OnNext(1)
	r.OnNext(2)
	r.OnError(boom)
	r.OnNext(3)

	rec := &recorder[int]{}
	r.Subscribe(rec)

	assert.Equal(t, []int{1, 2}, rec.Values())
	assert.ErrorIs(t, rec.Err(), boom)
	assert.True(t, r.Terminated())
}
