package render

import (
	"image/color"
	"sync/atomic"
	"time"

	"bluenoise/internal/noise"
)

// Config controls how a point set maps onto pixels: each point fills a
// PixelSize x PixelSize block anchored at (x*PixelSize, y*PixelSize).
type Config struct {
	PixelSize  int
	Foreground color.RGBA
	Background color.RGBA
}

// DefaultChunkSize is the animated-mode chunk size when the caller passes
// a non-positive value.
const DefaultChunkSize = 64

// fillPoint draws one point's pixel block, clipped to buffer bounds.
// Immediate and animated mode both go through here, which is what makes
// their final buffers byte-identical.
func fillPoint(buf *Buffer, p noise.Point, cfg Config) {
	buf.FillRect(p.X*cfg.PixelSize, p.Y*cfg.PixelSize, cfg.PixelSize, cfg.PixelSize, cfg.Foreground)
}

// Rasterize renders the point set in immediate mode: background fill,
// every point block, one commit (the caller's buffer simply holds the
// final bytes when this returns).
func Rasterize(buf *Buffer, points []noise.Point, cfg Config) {
	if cfg.PixelSize < 1 {
		cfg.PixelSize = 1
	}
	buf.Clear(cfg.Background)
	for _, p := range points {
		fillPoint(buf, p, cfg)
	}
}

// Animation renders a point set in sequential chunks, committing the
// partial buffer after each chunk. It has no dependency on any UI
// runtime: the caller drives it with Step or with Run and an injected
// tick channel.
//
// Only one animation may be active per buffer. Starting a new one must
// first Cancel any in-progress animation, otherwise the two interleave
// writes into the same pixels.
type Animation struct {
	buf       *Buffer
	points    []noise.Point
	cfg       Config
	chunk     int
	next      int
	cancelled atomic.Bool
	commit    func(*Buffer)
	done      func()
}

// NewAnimation prepares an animated rasterization. The buffer is cleared
// to the background color up front; the clear becomes visible with the
// first chunk's commit. commit is called after every chunk, done exactly
// once after the last chunk unless the animation is cancelled first.
// Both callbacks may be nil.
func NewAnimation(buf *Buffer, points []noise.Point, cfg Config, chunkSize int, commit func(*Buffer), done func()) *Animation {
	if cfg.PixelSize < 1 {
		cfg.PixelSize = 1
	}
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	buf.Clear(cfg.Background)
	return &Animation{
		buf:    buf,
		points: points,
		cfg:    cfg,
		chunk:  chunkSize,
		commit: commit,
		done:   done,
	}
}

// Step draws the next chunk and commits it. It returns true while more
// chunks remain. A cancelled animation draws nothing and returns false.
func (a *Animation) Step() bool {
	if a.cancelled.Load() || a.next >= len(a.points) {
		return false
	}

	end := a.next + a.chunk
	if end > len(a.points) {
		end = len(a.points)
	}
	for _, p := range a.points[a.next:end] {
		fillPoint(a.buf, p, a.cfg)
	}
	a.next = end

	if a.commit != nil {
		a.commit(a.buf)
	}

	if a.next >= len(a.points) {
		if !a.cancelled.Load() && a.done != nil {
			a.done()
		}
		return false
	}
	return true
}

// Run drives the animation cooperatively, drawing one chunk per tick
// until the animation finishes, the tick channel closes, or Cancel is
// called. An empty point set still commits the background once.
func (a *Animation) Run(tick <-chan time.Time) {
	if len(a.points) == 0 && !a.cancelled.Load() {
		if a.commit != nil {
			a.commit(a.buf)
		}
		if a.done != nil {
			a.done()
		}
		return
	}
	for range tick {
		if !a.Step() {
			return
		}
	}
}

// Cancel halts the animation: no further chunks are drawn and the done
// callback never fires. The buffer keeps the state of the last committed
// chunk. Safe to call from any goroutine, more than once.
func (a *Animation) Cancel() {
	a.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (a *Animation) Cancelled() bool {
	return a.cancelled.Load()
}

// Progress returns how many points have been drawn so far and the total.
func (a *Animation) Progress() (drawn, total int) {
	return a.next, len(a.points)
}
