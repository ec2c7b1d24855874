package pingsweep

import (
	syncutil "github.com/projectdiscovery/utils/sync"
)

// Executor runs tasks with bounded concurrency.
type Executor interface {
	// Go schedules fn, blocking while the executor is at capacity.
	Go(fn func())
	// Wait blocks until every scheduled task has returned.
	Wait()
}

// ExecutorFactory builds an executor allowing size concurrent tasks.
type ExecutorFactory func(size int) (Executor, error)

type adaptiveExecutor struct {
	awg *syncutil.AdaptiveWaitGroup
}

// NewAdaptiveExecutor returns an Executor backed by an adaptive waitgroup.
func NewAdaptiveExecutor(size int) (Executor, error) {
	awg, err := syncutil.New(syncutil.WithSize(size))
	if err != nil {
		return nil, err
	}
	return &adaptiveExecutor{awg: awg}, nil
}

func (e *adaptiveExecutor) Go(fn func()) {
	e.awg.Add()
	go func() {
		defer e.awg.Done()
		fn()
	}()
}

func (e *adaptiveExecutor) Wait() {
	e.awg.Wait()
}
