package noise

import (
	"sync"
)

// GenerateFunc produces the point set for a request. Production code
// passes Generate; tests may inject a controllable function.
type GenerateFunc func(Request) []Point

// Executor runs generation off the interactive path and keeps the
// caller's in-progress view consistent under rapid parameter changes.
//
// At most one request executes at a time. While one runs, only the
// single newest submitted request is retained as pending; older pending
// requests are discarded and never produce a completion. The sequence of
// requests that actually execute is therefore a subsequence of the
// submissions, always ending with the most recent one.
//
// Each Executor is an explicit service instance; completion is delivered
// through the onDone callback supplied at construction, one call per
// executed request, from the worker goroutine.
type Executor struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	generate GenerateFunc
	onDone   func(Request, []Point)
	busy     bool
	pending  *Request
	stopped  bool
	executed uint64
}

// NewExecutor creates an executor. onDone may be nil.
func NewExecutor(generate GenerateFunc, onDone func(Request, []Point)) *Executor {
	if generate == nil {
		generate = Generate
	}
	return &Executor{generate: generate, onDone: onDone}
}

// Submit schedules req for execution. If the executor is idle the request
// starts immediately; otherwise it replaces any previously pending
// request. Submissions after Stop are ignored.
func (e *Executor) Submit(req Request) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}
	if e.busy {
		e.pending = &req
		return
	}

	e.busy = true
	e.wg.Add(1)
	go e.run(req)
}

// run executes req, delivers completion, and drains the pending slot
// until it is empty. Runs on the worker goroutine.
func (e *Executor) run(req Request) {
	defer e.wg.Done()

	for {
		points := e.generate(req)

		e.mu.Lock()
		if e.stopped {
			e.busy = false
			e.mu.Unlock()
			return
		}
		e.executed++
		done := e.onDone
		e.mu.Unlock()

		if done != nil {
			done(req, points)
		}

		e.mu.Lock()
		if e.stopped || e.pending == nil {
			e.busy = false
			e.mu.Unlock()
			return
		}
		req = *e.pending
		e.pending = nil
		e.mu.Unlock()
	}
}

// Busy reports whether a generation is executing or pending.
func (e *Executor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy || e.pending != nil
}

// Executed returns the number of requests that ran to completion.
func (e *Executor) Executed() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.executed
}

// Stop tears the executor down. Any in-flight request keeps running on
// its goroutine but its completion is suppressed, and the pending slot is
// discarded. Stop blocks until the worker goroutine exits; it is safe to
// call more than once.
func (e *Executor) Stop() {
	e.mu.Lock()
	e.stopped = true
	e.pending = nil
	e.mu.Unlock()

	e.wg.Wait()
}
