package noise

import (
	"math"

	"bluenoise/internal/noise/spatial"
)

const (
	// DefaultCandidatesPerPoint is used when a request leaves the
	// candidate count unset.
	DefaultCandidatesPerPoint = 20

	// fallbackProbes bounds the uniform-random search for any free cell
	// once every candidate draw hit an occupied cell.
	fallbackProbes = 100
)

// generateMitchell places points with Mitchell's best-candidate search:
// per point, draw candidatesPerPoint random cells, skip occupied ones,
// and keep the candidate farthest from the existing set. At most one
// point per grid cell.
func generateMitchell(req Request) []Point {
	w, h := req.Width, req.Height
	total := w * h

	k := req.CandidatesPerPoint
	if k < 1 {
		k = DefaultCandidatesPerPoint
	}

	// Cell size near the expected spacing keeps the 5x5 neighborhood
	// scan meaningful at the target density.
	spacing := math.Sqrt(float64(total) / float64(req.NumPoints))
	grid := spatial.NewHashGrid(spacing)

	occupied := make(map[Point]struct{}, req.NumPoints)
	rng := NewSource(req.Seed)

	points := make([]Point, 0, min(req.NumPoints, total))

	for len(points) < req.NumPoints && len(points) < total {
		best := Point{X: -1, Y: -1}
		bestDist := -1.0

		for c := 0; c < k; c++ {
			cand := Point{X: rng.Intn(w), Y: rng.Intn(h)}
			if _, taken := occupied[cand]; taken {
				continue
			}
			// First point sees an empty neighborhood: MinDistance
			// returns +Inf, so it always wins.
			d := grid.MinDistance(spatial.Sample{X: float64(cand.X), Y: float64(cand.Y)})
			if d > bestDist {
				best = cand
				bestDist = d
			}
		}

		if best.X < 0 {
			// Every draw hit an occupied cell. Probe for any free cell
			// before declaring the grid saturated.
			for p := 0; p < fallbackProbes; p++ {
				cand := Point{X: rng.Intn(w), Y: rng.Intn(h)}
				if _, taken := occupied[cand]; !taken {
					best = cand
					break
				}
			}
		}

		if best.X < 0 {
			break // saturated
		}

		occupied[best] = struct{}{}
		grid.Add(spatial.Sample{X: float64(best.X), Y: float64(best.Y)})
		points = append(points, best)
	}

	return points
}
