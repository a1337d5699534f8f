// Package spatial provides the bucketed spatial indexes that keep the
// point generators sub-quadratic: a hash grid for nearest-neighbor
// distance estimates and an index grid for Bridson's one-sample-per-cell
// invariant.
//
// Both structures live only for the duration of a single generation run
// and use integer cell keys (never string concatenation) for O(1) bucket
// access.
package spatial

import (
	"math"
)

// Sample is a point in continuous grid coordinates.
type Sample struct {
	X, Y float64
}

// HashGrid buckets placed samples into square cells whose side is
// proportional to the expected inter-point spacing. MinDistance scans a
// fixed 5x5 cell neighborhood, so a true nearest neighbor further than
// two cells away is invisible. That is fine: the generators only need a
// locally-good estimate to rank a handful of candidates, not an exact
// global answer.
type HashGrid struct {
	cellSize    float64
	invCellSize float64 // 1/cellSize for faster division
	buckets     map[int64][]Sample
	count       int
}

// NewHashGrid creates a grid with the given cell size.
// cellSize should be close to the expected inter-point spacing so that
// the 5x5 neighborhood scan covers the distances that matter.
func NewHashGrid(cellSize float64) *HashGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &HashGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		buckets:     make(map[int64][]Sample),
	}
}

// packKey packs a cell coordinate pair into a single map key.
func packKey(cx, cy int) int64 {
	return int64(uint32(cy))<<32 | int64(uint32(cx))
}

// cell returns the cell coordinates containing s.
func (g *HashGrid) cell(s Sample) (int, int) {
	return int(math.Floor(s.X * g.invCellSize)), int(math.Floor(s.Y * g.invCellSize))
}

// Add inserts a sample into its bucket. O(1).
func (g *HashGrid) Add(s Sample) {
	cx, cy := g.cell(s)
	key := packKey(cx, cy)
	g.buckets[key] = append(g.buckets[key], s)
	g.count++
}

// MinDistance returns the minimum Euclidean distance from the candidate
// to any sample in the candidate's 5x5 cell neighborhood, or +Inf when
// the neighborhood holds no samples yet.
func (g *HashGrid) MinDistance(candidate Sample) float64 {
	cx, cy := g.cell(candidate)
	best := math.Inf(1)
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			bucket, ok := g.buckets[packKey(cx+dx, cy+dy)]
			if !ok {
				continue
			}
			for _, s := range bucket {
				ddx := s.X - candidate.X
				ddy := s.Y - candidate.Y
				d := math.Sqrt(ddx*ddx + ddy*ddy)
				if d < best {
					best = d
				}
			}
		}
	}
	return best
}

// Len returns the number of samples added so far.
func (g *HashGrid) Len() int {
	return g.count
}

// CellSize returns the configured cell size.
func (g *HashGrid) CellSize() float64 {
	return g.cellSize
}

// Stats returns bucket statistics for debugging/profiling.
func (g *HashGrid) Stats() GridStats {
	var maxInBucket int
	for _, b := range g.buckets {
		if len(b) > maxInBucket {
			maxInBucket = len(b)
		}
	}
	avg := 0.0
	if len(g.buckets) > 0 {
		avg = float64(g.count) / float64(len(g.buckets))
	}
	return GridStats{
		Buckets:      len(g.buckets),
		Samples:      g.count,
		MaxInBucket:  maxInBucket,
		AvgPerBucket: avg,
	}
}

// GridStats contains hash grid statistics for debugging.
type GridStats struct {
	Buckets      int
	Samples      int
	MaxInBucket  int
	AvgPerBucket float64
}

// IndexGrid is the background grid for Bridson sampling: each cell holds
// the index of at most one sample. With cell size r/sqrt(2) a cell can
// never legally contain two samples at distance >= r, so a single int32
// per cell suffices.
//
// Memory layout is row-major (cells[row*cols+col]), matching the rest of
// the codebase.
type IndexGrid struct {
	cellSize    float64
	invCellSize float64
	cols, rows  int
	cells       []int32 // -1 = empty
}

// NewIndexGrid creates a grid covering a width x height domain.
func NewIndexGrid(width, height, cellSize float64) *IndexGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cells := make([]int32, cols*rows)
	for i := range cells {
		cells[i] = -1
	}

	return &IndexGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       cells,
	}
}

// Cell returns the clamped cell coordinates for a position. Floating
// rounding at the domain edge clamps silently rather than faulting.
func (g *IndexGrid) Cell(x, y float64) (col, row int) {
	col = int(x * g.invCellSize)
	row = int(y * g.invCellSize)

	if col < 0 {
		col = 0
	}
	if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// Insert stores a sample index at the cell containing (x, y).
func (g *IndexGrid) Insert(id int32, x, y float64) {
	col, row := g.Cell(x, y)
	g.cells[row*g.cols+col] = id
}

// At returns the sample index stored at (col, row), or -1 when the cell
// is empty or out of bounds.
func (g *IndexGrid) At(col, row int) int32 {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return -1
	}
	return g.cells[row*g.cols+col]
}

// Dimensions returns the grid dimensions.
func (g *IndexGrid) Dimensions() (cols, rows int, cellSize float64) {
	return g.cols, g.rows, g.cellSize
}
