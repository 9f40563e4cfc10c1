package shop

import (
	"context"
	"sync"

	applog "tokokita/internal/log"
)

type remoteOp struct {
	run        func(context.Context) error
	compensate func()
}

// writer pushes optimistic local mutations to the gateway. Operations
// sharing a key run strictly in enqueue order, so two rapid writes to
// the same cart line or favorite settle remotely in the order they were
// applied locally. On failure the op's compensating patch runs, which
// reverses the optimistic delta.
type writer struct {
	mu     sync.Mutex
	queues map[string][]remoteOp
	busy   map[string]bool
	wg     sync.WaitGroup
}

func newWriter() *writer {
	return &writer{
		queues: make(map[string][]remoteOp),
		busy:   make(map[string]bool),
	}
}

func (w *writer) Enqueue(key string, run func(context.Context) error, compensate func()) {
	w.mu.Lock()
	w.queues[key] = append(w.queues[key], remoteOp{run: run, compensate: compensate})
	w.wg.Add(1)
	if !w.busy[key] {
		w.busy[key] = true
		go w.drain(key)
	}
	w.mu.Unlock()
}

func (w *writer) drain(key string) {
	for {
		w.mu.Lock()
		q := w.queues[key]
		if len(q) == 0 {
			w.busy[key] = false
			delete(w.queues, key)
			w.mu.Unlock()
			return
		}
		op := q[0]
		w.queues[key] = q[1:]
		w.mu.Unlock()

		// No cancellation or timeout: a hung call parks this key's
		// queue until the gateway itself gives up.
		if err := op.run(context.Background()); err != nil {
			applog.Error(nil, "remote.write.fail", err, map[string]any{"key": key})
			if op.compensate != nil {
				op.compensate()
			}
		}
		w.wg.Done()
	}
}

// Flush blocks until every op enqueued so far has settled.
func (w *writer) Flush() { w.wg.Wait() }
