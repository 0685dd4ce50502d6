package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsEverySubmittedJob(t *testing.T) {
	p := NewPool(4)

	var ran atomic.Int64
	for i := 0; i < 100; i++ {
		p.Submit(func() { ran.Add(1) })
	}
	p.Stop()

	assert.Equal(t, int64(100), ran.Load())
}

func TestPoolStopWaitsForInFlightJobs(t *testing.T) {
	p := NewPool(1)

	done := make(chan struct{})
	p.Submit(func() { close(done) })
	p.Stop()

	select {
	case <-done:
	default:
		t.Fatal("Stop returned before the queued job finished")
	}
}
