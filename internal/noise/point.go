// Package noise generates blue-noise point distributions: point sets with
// no two points too close together and no large gaps, for dithering,
// stochastic sampling and procedural texturing.
//
// Two algorithms are provided. Mitchell's best-candidate search ranks a
// handful of random candidates by distance to the existing set and keeps
// the farthest. Bridson's Poisson-disk sampling dart-throws in an annulus
// around active samples to guarantee a minimum pairwise distance, wrapped
// in a calibration loop that maps a target point count to a radius.
//
// Everything in this package is deterministic: a Request with identical
// field values always yields an identical ordered point set.
package noise

import "fmt"

// Point is a grid cell coordinate. Immutable once produced;
// 0 <= X < width and 0 <= Y < height for the generating request.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Algorithm selects the generation strategy.
type Algorithm string

const (
	// AlgorithmMitchell is Mitchell's best-candidate search.
	AlgorithmMitchell Algorithm = "mitchell"
	// AlgorithmBridson is Bridson's Poisson-disk sampling with count calibration.
	AlgorithmBridson Algorithm = "bridson"
)

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a == AlgorithmMitchell || a == AlgorithmBridson
}

// Request fully determines a generation run. Value type: two requests
// with equal fields produce identical ordered output.
type Request struct {
	Width              int       `json:"width"`
	Height             int       `json:"height"`
	NumPoints          int       `json:"numPoints"`
	CandidatesPerPoint int       `json:"candidatesPerPoint"`
	Seed               int32     `json:"seed"`
	Algorithm          Algorithm `json:"algorithm"`
}

// String renders a compact identifier for logs.
func (r Request) String() string {
	return fmt.Sprintf("%s %dx%d n=%d k=%d seed=%d",
		r.Algorithm, r.Width, r.Height, r.NumPoints, r.CandidatesPerPoint, r.Seed)
}

// degenerate reports whether the request can only yield an empty set.
// Degenerate geometry is a normal outcome, not an error.
func (r Request) degenerate() bool {
	return r.Width <= 0 || r.Height <= 0 || r.NumPoints <= 0
}

// Generate dispatches to the requested algorithm and returns the ordered
// point set. The result length is at most NumPoints; it may be shorter
// when the grid saturates or the Bridson active list exhausts. Unknown
// algorithms fall back to Mitchell.
func Generate(req Request) []Point {
	if req.degenerate() {
		return []Point{}
	}
	switch req.Algorithm {
	case AlgorithmBridson:
		return generateBridson(req)
	default:
		return generateMitchell(req)
	}
}
