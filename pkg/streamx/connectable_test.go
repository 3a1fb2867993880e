package streamx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abraxas-365/reactx/pkg/streamx"
)

func TestConnectable_ProductionWaitsForConnect(t *testing.T) {
	produced := 0
	source := streamx.Create(func(o streamx.Observer[int]) func() {
		produced++
		o.OnNext(5)
		o.OnComplete()
		return nil
	})
	sched := &manualScheduler{}
	c := streamx.Multicast(source, sched)

	early := &recorder[int]{}
	c.Subscribe(early)
	assert.Equal(t, 0, produced)

	c.Connect()
	c.Connect()
	assert.Equal(t, 0, produced, "production starts on the scheduler")

	sched.RunAll()
	assert.Equal(t, 1, produced)
	assert.Equal(t, []int{5}, early.Values())
	assert.True(t, early.Completed())
	assert.True(t, c.Terminated())

	select {
	case <-c.Done():
	default:
		t.Fatal("Done should be closed after termination")
	}

	late := &recorder[int]{}
	c.Subscribe(late)
	assert.Equal(t, []int{5}, late.Values())
	assert.True(t, late.Completed())
}

func TestConnectable_NilSchedulerIsImmediate(t *testing.T) {
	c := streamx.Multicast(streamx.Just(1, 2), nil)
	rec := &recorder[int]{}
	c.Subscribe(rec)

	c.Connect()

	assert.Equal(t, []int{1, 2}, rec.Values())
}
