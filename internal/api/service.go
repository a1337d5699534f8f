package api

import (
	"sync"
	"time"

	"bluenoise/internal/noise"
)

// PatternService owns the generation executor and the most recently
// completed pattern. HTTP handlers read from it; the executor's worker
// goroutine writes to it. Superseded submissions never surface here,
// so readers always observe the result of the newest executed request.
type PatternService struct {
	mu        sync.RWMutex
	executor  *noise.Executor
	request   noise.Request
	points    []noise.Point
	hasResult bool
	onSubmit  func(req noise.Request)
	onUpdate  func(req noise.Request, points []noise.Point)
}

// NewPatternService creates the service with an idle executor.
func NewPatternService() *PatternService {
	s := &PatternService{}
	s.executor = noise.NewExecutor(s.timedGenerate, s.completed)
	return s
}

// SetOnSubmit registers a callback fired for every submission, before it
// is handed to the executor. Superseded requests still fire this: they
// were submitted, they just never complete.
func (s *PatternService) SetOnSubmit(fn func(req noise.Request)) {
	s.mu.Lock()
	s.onSubmit = fn
	s.mu.Unlock()
}

// SetOnUpdate registers a callback fired after every completed
// generation, e.g. a WebSocket broadcast. Set before serving traffic.
func (s *PatternService) SetOnUpdate(fn func(req noise.Request, points []noise.Point)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// timedGenerate wraps noise.Generate with duration metrics.
func (s *PatternService) timedGenerate(req noise.Request) []noise.Point {
	start := time.Now()
	points := noise.Generate(req)
	RecordGeneration(string(req.Algorithm), time.Since(start))
	return points
}

// completed stores the result and notifies subscribers. Runs on the
// executor's worker goroutine.
func (s *PatternService) completed(req noise.Request, points []noise.Point) {
	s.mu.Lock()
	s.request = req
	s.points = points
	s.hasResult = true
	fn := s.onUpdate
	s.mu.Unlock()

	UpdatePatternPoints(len(points))

	if fn != nil {
		fn(req, points)
	}
}

// Submit schedules a generation; newer submissions supersede a pending one.
func (s *PatternService) Submit(req noise.Request) {
	s.mu.RLock()
	fn := s.onSubmit
	s.mu.RUnlock()
	if fn != nil {
		fn(req)
	}
	s.executor.Submit(req)
}

// Pattern returns the latest completed request and its points.
// ok is false until the first generation completes.
func (s *PatternService) Pattern() (req noise.Request, points []noise.Point, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.request, s.points, s.hasResult
}

// Generating reports whether a request is executing or pending.
func (s *PatternService) Generating() bool {
	return s.executor.Busy()
}

// Executed returns how many requests have run to completion.
func (s *PatternService) Executed() uint64 {
	return s.executor.Executed()
}

// Stop tears down the executor. Outstanding completions are suppressed.
func (s *PatternService) Stop() {
	s.executor.Stop()
}
