package noise

// Source is a small deterministic pseudo-random stream used for all
// point placement. It advances a 32-bit state by a fixed additive constant
// (Weyl sequence) and finalizes with xorshift/multiply mixing (splitmix32).
//
// The state is an explicit value so sources can be copied or forked for
// independent, reproducible streams - the Bridson calibration loop forks
// one source per trial.
//
// Not cryptographically secure. Statistical quality is what matters here:
// successive outputs feed both coordinate selection and discrete cell
// picks, so low correlation between calls is required.
type Source struct {
	seed  uint32
	state uint32
}

// NewSource creates a source from a 32-bit seed.
func NewSource(seed int32) *Source {
	return &Source{seed: uint32(seed), state: uint32(seed)}
}

// Fork returns an independent source derived from the original seed and
// the given offset. Forking is a pure function of (seed, offset), so the
// same fork always produces the same stream regardless of how far the
// parent has advanced.
func (s *Source) Fork(offset int32) *Source {
	return NewSource(int32(s.seed) + offset)
}

// next32 advances the state and returns a mixed 32-bit value.
func (s *Source) next32() uint32 {
	s.state += 0x9E3779B9
	z := s.state
	z ^= z >> 16
	z *= 0x21F0AAAD
	z ^= z >> 15
	z *= 0x735A2D97
	z ^= z >> 15
	return z
}

// Next returns the next value in [0, 1).
func (s *Source) Next() float64 {
	return float64(s.next32()) / (1 << 32)
}

// Intn returns a value in [0, n). Panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("noise: Intn called with n <= 0")
	}
	return int(s.Next() * float64(n))
}
