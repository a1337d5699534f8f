// Package render turns generated point sets into RGBA pixel buffers,
// either in one shot or as an incremental, cancellable animation.
package render

import (
	"image"
	"image/color"
)

// Buffer is a width x height RGBA pixel buffer with direct byte access.
// It bypasses image.RGBA on the hot path; use RGBA() to hand the pixels
// to an encoder. The buffer is owned by the rasterizer/caller; the
// generation side never touches it.
type Buffer struct {
	pix    []byte
	width  int
	height int
	stride int // bytes per row (width * 4)
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		pix:    make([]byte, width*height*4),
		width:  width,
		height: height,
		stride: width * 4,
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Bytes returns the underlying RGBA bytes. The slice is live: writes
// through the buffer are visible to holders of the slice.
func (b *Buffer) Bytes() []byte { return b.pix }

// Clone returns an independent copy of the buffer contents.
func (b *Buffer) Clone() *Buffer {
	c := NewBuffer(b.width, b.height)
	copy(c.pix, b.pix)
	return c
}

// Clear fills the entire buffer with a solid color.
func (b *Buffer) Clear(c color.RGBA) {
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
		b.pix[i+3] = c.A
	}
}

// FillRect fills a rectangle, clipped to the buffer bounds.
func (b *Buffer) FillRect(x, y, w, h int, c color.RGBA) {
	x1 := max(0, x)
	y1 := max(0, y)
	x2 := min(b.width, x+w)
	y2 := min(b.height, y+h)

	if x1 >= x2 || y1 >= y2 {
		return
	}

	for py := y1; py < y2; py++ {
		rowStart := py * b.stride
		for px := x1; px < x2; px++ {
			idx := rowStart + px*4
			b.pix[idx] = c.R
			b.pix[idx+1] = c.G
			b.pix[idx+2] = c.B
			b.pix[idx+3] = c.A
		}
	}
}

// SetPixel sets a single pixel with bounds checking.
func (b *Buffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.stride + x*4
	b.pix[idx] = c.R
	b.pix[idx+1] = c.G
	b.pix[idx+2] = c.B
	b.pix[idx+3] = c.A
}

// At returns the pixel at (x, y), or the zero color out of bounds.
func (b *Buffer) At(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	idx := y*b.stride + x*4
	return color.RGBA{R: b.pix[idx], G: b.pix[idx+1], B: b.pix[idx+2], A: b.pix[idx+3]}
}

// RGBA wraps the buffer bytes in an image.RGBA without copying.
func (b *Buffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.pix,
		Stride: b.stride,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// ParseHexColor parses "#rrggbb" into an opaque RGBA color.
// Malformed input yields opaque white.
func ParseHexColor(hex string) color.RGBA {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{
		R: hexToByte(hex[1], hex[2]),
		G: hexToByte(hex[3], hex[4]),
		B: hexToByte(hex[5], hex[6]),
		A: 255,
	}
}

// hexToByte converts two hex chars to a byte.
func hexToByte(h1, h2 byte) uint8 {
	return hexCharToNibble(h1)<<4 | hexCharToNibble(h2)
}

// hexCharToNibble converts a hex char to its numeric value.
func hexCharToNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
