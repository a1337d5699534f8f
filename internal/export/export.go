// Package export serializes rendered patterns to image files. It is a
// collaborator of the core engine: it only reads committed pixel buffers
// and point sets, never drives generation.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"bluenoise/internal/noise"
)

// Encode writes img to w in the given format (".png", ".jpg", ".jpeg",
// ".gif").
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, nil)
	case ".gif":
		return gif.Encode(w, img, nil)
	default:
		return errors.New("unknown file format " + format)
	}
}

// WriteFile encodes img to path, picking the format from the extension.
func WriteFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Encode(f, img, filepath.Ext(path))
}

// previewCaptionHeight is the strip reserved under the pattern for the
// request caption.
const previewCaptionHeight = 24

// Preview renders an annotated pattern preview: points as filled circles
// at the given scale plus a caption naming the request parameters.
// Intended for eyeballing distributions, not for pixel-exact export; use
// render.Rasterize plus WriteFile for that.
func Preview(points []noise.Point, req noise.Request, scale int, fg, bg color.RGBA) image.Image {
	if scale < 1 {
		scale = 1
	}
	w := req.Width * scale
	h := req.Height * scale

	dc := gg.NewContext(w, h+previewCaptionHeight)
	dc.SetColor(bg)
	dc.Clear()

	dc.SetColor(fg)
	radius := float64(scale) / 2
	if radius < 1 {
		radius = 1
	}
	for _, p := range points {
		cx := float64(p.X)*float64(scale) + float64(scale)/2
		cy := float64(p.Y)*float64(scale) + float64(scale)/2
		dc.DrawCircle(cx, cy, radius)
		dc.Fill()
	}

	caption := fmt.Sprintf("%s  %d points", req.String(), len(points))
	dc.DrawStringAnchored(caption, float64(w)/2, float64(h)+previewCaptionHeight/2, 0.5, 0.5)

	return dc.Image()
}
