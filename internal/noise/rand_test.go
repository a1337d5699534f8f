package noise

import (
	"testing"
)

// TestSourceDeterminism verifies identical seeds produce identical streams
func TestSourceDeterminism(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)

	for i := 0; i < 1000; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("streams diverged at call %d: %v != %v", i, va, vb)
		}
	}
}

// TestSourceRange verifies outputs stay in [0, 1)
func TestSourceRange(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 10000; i++ {
		v := s.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("value out of [0,1) at call %d: %v", i, v)
		}
	}
}

// TestSourceSeedsDiffer verifies different seeds produce different streams
func TestSourceSeedsDiffer(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same > 2 {
		t.Errorf("seeds 1 and 2 agree on %d of 100 draws, expected near zero", same)
	}
}

// TestSourceIntn verifies Intn stays in bounds and covers the range
func TestSourceIntn(t *testing.T) {
	s := NewSource(99)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		v := s.Intn(10)
		if v < 0 || v >= 10 {
			t.Fatalf("Intn(10) out of range: %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Errorf("Intn(10) covered %d of 10 values over 10000 draws", len(seen))
	}
}

// TestSourceFork verifies forking is a pure function of (seed, offset),
// independent of how far the parent has advanced
func TestSourceFork(t *testing.T) {
	parent := NewSource(42)
	early := parent.Fork(3)

	for i := 0; i < 500; i++ {
		parent.Next()
	}
	late := parent.Fork(3)

	for i := 0; i < 100; i++ {
		ve, vl := early.Next(), late.Next()
		if ve != vl {
			t.Fatalf("forks diverged at call %d: %v != %v", i, ve, vl)
		}
	}
}

// TestSourceForkIndependent verifies a fork does not mirror its parent
func TestSourceForkIndependent(t *testing.T) {
	parent := NewSource(42)
	fork := parent.Fork(1)

	same := 0
	for i := 0; i < 100; i++ {
		if parent.Next() == fork.Next() {
			same++
		}
	}
	if same > 2 {
		t.Errorf("fork mirrors parent on %d of 100 draws", same)
	}
}

// TestSourceDistribution sanity-checks the mean of the stream
func TestSourceDistribution(t *testing.T) {
	s := NewSource(123)
	var sum float64
	const n = 100000
	for i := 0; i < n; i++ {
		sum += s.Next()
	}
	mean := sum / n
	if mean < 0.48 || mean > 0.52 {
		t.Errorf("mean %v too far from 0.5 over %d draws", mean, n)
	}
}
