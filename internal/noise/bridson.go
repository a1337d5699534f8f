package noise

import (
	"math"

	"bluenoise/internal/noise/spatial"
)

const (
	// bridsonAttempts is the number of annulus darts thrown per active
	// sample before it is retired (Bridson's k).
	bridsonAttempts = 30

	// calibrationIterations caps the bisection search mapping a target
	// count to a radius.
	calibrationIterations = 8

	// calibrationTolerance is the relative count error at which the
	// bisection stops early.
	calibrationTolerance = 0.05

	// packingEfficiency is the fraction of theoretical maximum disc
	// packing that 2D Poisson-disk sampling achieves in practice,
	// used for the initial radius estimate.
	packingEfficiency = 0.65
)

// generateBridson runs the calibrated Poisson-disk sampler, snaps the
// continuous samples to integer grid cells, and deduplicates cells that
// coincide after snapping. Order of the surviving points follows the
// sample insertion order, so output is deterministic.
func generateBridson(req Request) []Point {
	w := float64(req.Width)
	h := float64(req.Height)

	samples, _ := calibrate(w, h, req.NumPoints, req.Seed)

	seen := make(map[Point]struct{}, len(samples))
	points := make([]Point, 0, min(len(samples), req.NumPoints))
	for _, s := range samples {
		p := Point{X: int(s.X), Y: int(s.Y)}
		// Rounding at the domain edge clamps rather than faults.
		if p.X >= req.Width {
			p.X = req.Width - 1
		}
		if p.Y >= req.Height {
			p.Y = req.Height - 1
		}
		if p.X < 0 || p.Y < 0 {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		points = append(points, p)
		if len(points) == req.NumPoints {
			break
		}
	}
	return points
}

// estimateRadius derives a starting radius from the domain area and the
// target count via the Poisson-disk packing efficiency: each point claims
// roughly pi*(r/2)^2 / packingEfficiency of area.
func estimateRadius(area float64, target int) float64 {
	return 2 * math.Sqrt(packingEfficiency*area/(math.Pi*float64(target)))
}

// calibrate bisects the radius until the sample count lands near the
// target, keeping the best trial seen. Each trial forks the original
// seed with the iteration index, so a re-run with the same seed and
// target reproduces the same sequence of trial radii and the same
// selected sample set. Returns the winning trial and its radius.
func calibrate(w, h float64, target int, seed int32) ([]spatial.Sample, float64) {
	est := estimateRadius(w*h, target)
	lo := est / 2
	hi := est * 2 // doubled as a safety margin

	tolerance := int(calibrationTolerance * float64(target))
	if tolerance < 1 {
		tolerance = 1
	}

	root := NewSource(seed)
	var best []spatial.Sample
	bestR := est
	bestDiff := math.MaxInt

	for i := 0; i < calibrationIterations; i++ {
		r := (lo + hi) / 2
		trial := sampleDisk(w, h, r, root.Fork(int32(i)))

		diff := len(trial) - target
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best = trial
			bestR = r
			bestDiff = diff
		}
		if diff <= tolerance {
			break
		}

		if len(trial) < target {
			// Under-packed: the radius is too large.
			hi = r
		} else {
			lo = r
		}
	}

	return best, bestR
}

// sampleDisk is the Bridson core at a fixed radius: maintain an active
// list of samples, dart-throw up to bridsonAttempts candidates in the
// annulus [r, 2r] around a random active sample, and retire the sample
// when every dart lands too close to the existing set. Guarantees all
// pairwise distances >= r.
func sampleDisk(w, h, r float64, rng *Source) []spatial.Sample {
	cellSize := r / math.Sqrt2
	grid := spatial.NewIndexGrid(w, h, cellSize)

	samples := make([]spatial.Sample, 0, 64)
	active := make([]int32, 0, 64)

	insert := func(s spatial.Sample) {
		id := int32(len(samples))
		samples = append(samples, s)
		active = append(active, id)
		grid.Insert(id, s.X, s.Y)
	}

	insert(spatial.Sample{X: rng.Next() * w, Y: rng.Next() * h})

	for len(active) > 0 {
		ai := rng.Intn(len(active))
		p := samples[active[ai]]

		found := false
		for k := 0; k < bridsonAttempts; k++ {
			angle := rng.Next() * 2 * math.Pi
			// Radius drawn so the dart is area-uniform across the
			// annulus, not clustered toward the inner ring.
			dist := r * math.Sqrt(1+3*rng.Next())
			cand := spatial.Sample{
				X: p.X + dist*math.Cos(angle),
				Y: p.Y + dist*math.Sin(angle),
			}
			if cand.X < 0 || cand.X >= w || cand.Y < 0 || cand.Y >= h {
				continue
			}
			if !farEnough(grid, samples, cand, r) {
				continue
			}
			insert(cand)
			found = true
			break
		}

		if !found {
			// Retire with an O(1) swap-remove.
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	return samples
}

// farEnough reports whether cand is at least r from every sample in the
// +/-2 cell neighborhood of its own cell. With cell size r/sqrt(2) that
// neighborhood covers every sample that could violate the radius.
func farEnough(grid *spatial.IndexGrid, samples []spatial.Sample, cand spatial.Sample, r float64) bool {
	col, row := grid.Cell(cand.X, cand.Y)
	r2 := r * r
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			id := grid.At(col+dc, row+dr)
			if id < 0 {
				continue
			}
			dx := samples[id].X - cand.X
			dy := samples[id].Y - cand.Y
			if dx*dx+dy*dy < r2 {
				return false
			}
		}
	}
	return true
}
