package world

import "math"

func floorDiv(a, b int) int {
	// b > 0
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

func mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// KeyFor returns the chunk owning world voxel column (wx, wz).
func KeyFor(wx, wz int) ChunkKey {
	return ChunkKey{CX: floorDiv(wx, ChunkSize), CZ: floorDiv(wz, ChunkSize)}
}

// Split maps a world voxel coordinate to its owning chunk and the
// chunk-local coordinate. Height is not chunked: wy passes through.
func Split(wx, wy, wz int) (ChunkKey, int, int, int) {
	return KeyFor(wx, wz), mod(wx, ChunkSize), wy, mod(wz, ChunkSize)
}

// Voxel truncates a fractional world position toward the containing
// voxel (floor, so -0.5 lands in voxel -1).
func Voxel(x, y, z float64) (int, int, int) {
	return int(math.Floor(x)), int(math.Floor(y)), int(math.Floor(z))
}
