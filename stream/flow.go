package stream

import "sync"

const DefaultConcurrency = 1

type (
	flowControl struct {
		concurrency uint32
	}

	FlowOption func(fc *flowControl)

	// item carries a pair through the pipeline together with its position
	// in the source, so the sink can restore source order at the end.
	item[L, R any] struct {
		ord   int
		left  L
		right R
	}

	flow[L, R any] struct {
		ch   chan item[L, R]
		done chan struct{}
		once sync.Once
	}
)

func newFlow[L, R any]() *flow[L, R] {
	return &flow[L, R]{
		ch:   make(chan item[L, R]),
		done: make(chan struct{}),
	}
}

// halt tells the producing side of the flow to stop feeding it.
func (f *flow[L, R]) halt() {
	f.once.Do(func() {
		close(f.done)
	})
}

// Concurrency sets the worker count for the whole stream or a single
// stage. Values below 1 fail the stream at run time.
func Concurrency(n uint32) FlowOption {
	return func(fc *flowControl) {
		fc.concurrency = n
	}
}

type byOrder[L, R any] []item[L, R]

func (bo byOrder[L, R]) Len() int {
	return len(bo)
}

func (bo byOrder[L, R]) Swap(i, j int) {
	bo[i], bo[j] = bo[j], bo[i]
}

func (bo byOrder[L, R]) Less(i, j int) bool {
	return bo[i].ord < bo[j].ord
}
