// Package noise provides the deterministic pseudo-random field terrain
// generation samples from. Everything here is a pure function of its
// arguments; two processes with the same seed produce identical worlds.
package noise

import "math"

// Prime multipliers for the sine hash. Changing these changes every world
// generated from every seed.
const (
	px = 12.9898
	py = 78.233
	pz = 37.719

	extract = 43758.5453
)

// Value3 samples the 3D field at (x, y, z). The seed is folded into the x
// axis. Result is in [0, 1).
func Value3(seed float64, x, y, z float64) float64 {
	s := math.Sin((x+seed)*px+y*py+z*pz) * extract
	return s - math.Floor(s)
}

// Fractal2 layers four octaves of Value3 at y=0, halving amplitude and
// doubling frequency per octave. Result is normalized to [0, 1).
func Fractal2(seed float64, x, z float64) float64 {
	sum := 0.0
	norm := 0.0
	amp := 1.0
	freq := 1.0
	for o := 0; o < 4; o++ {
		sum += Value3(seed, x*freq, 0, z*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}
