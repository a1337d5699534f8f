package noise

import (
	"math"
)

// DensityMode selects how a density control value maps to a point count.
type DensityMode string

const (
	// DensityPercent treats the control as a percentage of grid cells.
	DensityPercent DensityMode = "percent"
	// DensitySpacing treats the control as a desired minimum pixel
	// spacing between points.
	DensitySpacing DensityMode = "spacing"
)

const (
	// percentScale tunes how aggressively the percentage mode fills the
	// grid. 1.0 means densityControl=100 asks for one point per cell.
	percentScale = 1.0

	// boundMultiplier allows oversubscription beyond the cell count;
	// the generators cap naturally at saturation. Chosen empirically.
	boundMultiplier = 5
)

// CanvasParams are the user-facing controls: a pixel canvas, a logical
// pixel size per grid cell, and a density control interpreted per Mode.
type CanvasParams struct {
	CanvasWidth  int
	CanvasHeight int
	PixelSize    int
	Mode         DensityMode
	Density      float64
}

// GridParams is the derived generation geometry.
type GridParams struct {
	GridWidth  int `json:"gridWidth"`
	GridHeight int `json:"gridHeight"`
	NumPoints  int `json:"numPoints"`
}

// CalculateGrid maps canvas controls to generation parameters. Pure
// function: no clamping happens anywhere else, so callers can rely on
// NumPoints being within [0, totalCells*boundMultiplier].
func CalculateGrid(p CanvasParams) GridParams {
	if p.PixelSize < 1 {
		p.PixelSize = 1
	}

	gw := int(math.Ceil(float64(p.CanvasWidth) / float64(p.PixelSize)))
	gh := int(math.Ceil(float64(p.CanvasHeight) / float64(p.PixelSize)))
	if gw < 0 {
		gw = 0
	}
	if gh < 0 {
		gh = 0
	}

	totalCells := gw * gh
	var n int
	switch p.Mode {
	case DensitySpacing:
		// Convert the desired pixel spacing to grid units; each point
		// then claims a Poisson-disk packing area of pi*(s/2)^2. A
		// non-positive spacing has no packing interpretation, and
		// squaring would turn it into a positive count.
		s := p.Density / float64(p.PixelSize)
		if s > 0 {
			areaPerPoint := math.Pi * (s / 2) * (s / 2)
			n = int(float64(totalCells) / areaPerPoint)
		}
	default:
		n = int(p.Density / 100 * float64(totalCells) * percentScale)
	}

	if n < 0 {
		n = 0
	}
	if maxN := totalCells * boundMultiplier; n > maxN {
		n = maxN
	}

	return GridParams{GridWidth: gw, GridHeight: gh, NumPoints: n}
}
