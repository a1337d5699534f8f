package render

import (
	"bytes"
	"image/color"
	"testing"
	"time"

	"bluenoise/internal/noise"
)

var (
	testFG = color.RGBA{26, 26, 26, 255}
	testBG = color.RGBA{245, 240, 232, 255}
)

func testPoints() []noise.Point {
	return []noise.Point{
		{X: 0, Y: 0}, {X: 3, Y: 1}, {X: 7, Y: 7}, {X: 1, Y: 6},
		{X: 5, Y: 2}, {X: 2, Y: 4}, {X: 6, Y: 0}, {X: 4, Y: 5},
	}
}

// drain drives an animation to completion through a manual tick channel.
func drain(a *Animation) {
	for a.Step() {
	}
}

// TestRasterizeFillsBackground verifies untouched pixels carry the
// background color
func TestRasterizeFillsBackground(t *testing.T) {
	buf := NewBuffer(32, 32)
	Rasterize(buf, nil, Config{PixelSize: 4, Foreground: testFG, Background: testBG})

	if got := buf.At(16, 16); got != testBG {
		t.Errorf("background pixel = %v, want %v", got, testBG)
	}
}

// TestRasterizePointBlocks verifies each point fills its anchored block
func TestRasterizePointBlocks(t *testing.T) {
	buf := NewBuffer(32, 32)
	Rasterize(buf, []noise.Point{{X: 2, Y: 3}}, Config{PixelSize: 4, Foreground: testFG, Background: testBG})

	// Block anchored at (8, 12), 4x4.
	for y := 12; y < 16; y++ {
		for x := 8; x < 12; x++ {
			if got := buf.At(x, y); got != testFG {
				t.Fatalf("pixel (%d,%d) = %v, want foreground", x, y, got)
			}
		}
	}
	if got := buf.At(7, 12); got != testBG {
		t.Errorf("pixel left of block = %v, want background", got)
	}
	if got := buf.At(8, 16); got != testBG {
		t.Errorf("pixel below block = %v, want background", got)
	}
}

// TestRasterizeClipping verifies blocks partially outside the buffer
// clip instead of faulting
func TestRasterizeClipping(t *testing.T) {
	buf := NewBuffer(10, 10)
	// Block anchored at (8,8) with size 4 extends past both edges.
	Rasterize(buf, []noise.Point{{X: 2, Y: 2}}, Config{PixelSize: 4, Foreground: testFG, Background: testBG})

	if got := buf.At(9, 9); got != testFG {
		t.Errorf("clipped corner = %v, want foreground", got)
	}
}

// TestAnimationEquivalence verifies immediate and animated rendering
// produce byte-identical buffers for several chunk sizes
func TestAnimationEquivalence(t *testing.T) {
	points := testPoints()
	cfg := Config{PixelSize: 4, Foreground: testFG, Background: testBG}

	want := NewBuffer(32, 32)
	Rasterize(want, points, cfg)

	for _, chunk := range []int{1, 3, 8, 100} {
		got := NewBuffer(32, 32)
		a := NewAnimation(got, points, cfg, chunk, nil, nil)
		drain(a)

		if !bytes.Equal(got.Bytes(), want.Bytes()) {
			t.Errorf("chunk size %d: animated buffer differs from immediate", chunk)
		}
	}
}

// TestAnimationCommitsPerChunk verifies the commit callback fires once
// per chunk with the partial buffer
func TestAnimationCommitsPerChunk(t *testing.T) {
	points := testPoints() // 8 points
	cfg := Config{PixelSize: 2, Foreground: testFG, Background: testBG}

	commits := 0
	buf := NewBuffer(16, 16)
	a := NewAnimation(buf, points, cfg, 3, func(*Buffer) { commits++ }, nil)
	drain(a)

	if commits != 3 { // ceil(8/3)
		t.Errorf("expected 3 commits, got %d", commits)
	}
}

// TestAnimationDoneCallback verifies done fires exactly once on completion
func TestAnimationDoneCallback(t *testing.T) {
	done := 0
	buf := NewBuffer(16, 16)
	a := NewAnimation(buf, testPoints(), Config{PixelSize: 2, Foreground: testFG, Background: testBG},
		2, nil, func() { done++ })
	drain(a)

	if done != 1 {
		t.Errorf("done fired %d times, want 1", done)
	}
}

// TestAnimationCancel verifies cancellation halts drawing and suppresses
// the done callback, leaving the buffer at the last committed chunk
func TestAnimationCancel(t *testing.T) {
	points := testPoints()
	cfg := Config{PixelSize: 4, Foreground: testFG, Background: testBG}

	doneFired := false
	buf := NewBuffer(32, 32)
	a := NewAnimation(buf, points, cfg, 2, nil, func() { doneFired = true })

	a.Step() // points[0:2]
	a.Step() // points[2:4]
	snapshot := buf.Clone()

	a.Cancel()
	if a.Step() {
		t.Error("Step after Cancel should report no more work")
	}
	if !bytes.Equal(buf.Bytes(), snapshot.Bytes()) {
		t.Error("buffer changed after Cancel")
	}
	if doneFired {
		t.Error("done callback fired after Cancel")
	}

	drawn, total := a.Progress()
	if drawn != 4 || total != len(points) {
		t.Errorf("progress = %d/%d, want 4/%d", drawn, total, len(points))
	}
}

// TestAnimationCancelMatchesPartialRender verifies the cancelled buffer
// equals an immediate render of only the committed points
func TestAnimationCancelMatchesPartialRender(t *testing.T) {
	points := testPoints()
	cfg := Config{PixelSize: 4, Foreground: testFG, Background: testBG}

	buf := NewBuffer(32, 32)
	a := NewAnimation(buf, points, cfg, 3, nil, nil)
	a.Step()
	a.Cancel()

	want := NewBuffer(32, 32)
	Rasterize(want, points[:3], cfg)

	if !bytes.Equal(buf.Bytes(), want.Bytes()) {
		t.Error("cancelled buffer differs from partial immediate render")
	}
}

// TestAnimationRun verifies the tick-driven loop draws everything
func TestAnimationRun(t *testing.T) {
	points := testPoints()
	cfg := Config{PixelSize: 2, Foreground: testFG, Background: testBG}

	want := NewBuffer(16, 16)
	Rasterize(want, points, cfg)

	tick := make(chan time.Time)
	buf := NewBuffer(16, 16)
	done := make(chan struct{})
	a := NewAnimation(buf, points, cfg, 2, nil, func() { close(done) })

	go a.Run(tick)
	for {
		select {
		case tick <- time.Time{}:
		case <-done:
			if !bytes.Equal(buf.Bytes(), want.Bytes()) {
				t.Error("tick-driven buffer differs from immediate")
			}
			return
		}
	}
}

// TestAnimationEmptyPointSet verifies an empty animation still commits
// the background and completes
func TestAnimationEmptyPointSet(t *testing.T) {
	commits := 0
	done := false
	buf := NewBuffer(8, 8)
	a := NewAnimation(buf, nil, Config{PixelSize: 2, Foreground: testFG, Background: testBG},
		4, func(*Buffer) { commits++ }, func() { done = true })

	tick := make(chan time.Time)
	close(tick)
	a.Run(tick)

	if commits != 1 || !done {
		t.Errorf("empty animation: commits=%d done=%v, want 1/true", commits, done)
	}
	if got := buf.At(4, 4); got != testBG {
		t.Errorf("background = %v, want %v", got, testBG)
	}
}

// TestBufferClear verifies Clear writes every pixel
func TestBufferClear(t *testing.T) {
	buf := NewBuffer(5, 5)
	buf.Clear(testFG)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := buf.At(x, y); got != testFG {
				t.Fatalf("pixel (%d,%d) = %v after Clear", x, y, got)
			}
		}
	}
}

// TestBufferFillRectClip verifies out-of-bounds rects are clipped silently
func TestBufferFillRectClip(t *testing.T) {
	buf := NewBuffer(4, 4)
	buf.FillRect(-2, -2, 10, 10, testFG)

	if got := buf.At(0, 0); got != testFG {
		t.Errorf("expected clipped fill to cover (0,0), got %v", got)
	}
	buf.FillRect(10, 10, 5, 5, testBG) // fully outside, must not panic
}

// TestBufferRGBA verifies the image view shares pixels with the buffer
func TestBufferRGBA(t *testing.T) {
	buf := NewBuffer(3, 3)
	buf.SetPixel(1, 1, testFG)

	img := buf.RGBA()
	r, g, b, a := img.At(1, 1).RGBA()
	want := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	if want != testFG {
		t.Errorf("RGBA view pixel = %v, want %v", want, testFG)
	}
}

// TestParseHexColor verifies hex parsing including the malformed fallback
func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#000000", color.RGBA{0, 0, 0, 255}},
		{"#ffffff", color.RGBA{255, 255, 255, 255}},
		{"#1A2b3C", color.RGBA{0x1a, 0x2b, 0x3c, 255}},
		{"nonsense", color.RGBA{255, 255, 255, 255}},
		{"", color.RGBA{255, 255, 255, 255}},
	}
	for _, c := range cases {
		if got := ParseHexColor(c.in); got != c.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
