// Package block defines the closed set of voxel materials and the fixed
// color/shading tables the mesher reads from.
package block

// Block is one voxel material. The zero value is Air.
type Block uint8

const (
	Air Block = iota
	Grass
	Dirt
	Stone
	Water
	Sand

	count
)

// Count is the number of defined block variants, Air included.
const Count = int(count)

// Color is a straight-alpha RGBA color with float components in [0,1].
type Color struct {
	R, G, B, A float32
}

// baseColors is indexed by Block. Air has no color; it is never meshed.
var baseColors = [Count]Color{
	Air:   {0, 0, 0, 0},
	Grass: {0.2, 0.7, 0.2, 1.0},
	Dirt:  {0.5, 0.35, 0.2, 1.0},
	Stone: {0.5, 0.5, 0.5, 1.0},
	Water: {0.1, 0.3, 0.8, 0.7},
	Sand:  {0.85, 0.8, 0.55, 1.0},
}

func (b Block) String() string {
	switch b {
	case Air:
		return "AIR"
	case Grass:
		return "GRASS"
	case Dirt:
		return "DIRT"
	case Stone:
		return "STONE"
	case Water:
		return "WATER"
	case Sand:
		return "SAND"
	}
	return "UNKNOWN"
}

// Valid reports whether b is one of the defined variants.
func (b Block) Valid() bool { return b < count }

// FromName resolves an upper-case block name, e.g. from a wire message.
func FromName(name string) (Block, bool) {
	for b := Block(0); b.Valid(); b++ {
		if b.String() == name {
			return b, true
		}
	}
	return Air, false
}

// BaseColor returns the fixed base color for b. Air returns the zero color.
func (b Block) BaseColor() Color {
	if !b.Valid() {
		return Color{}
	}
	return baseColors[b]
}

// Face identifies one of the six axis-aligned faces of a voxel.
type Face uint8

const (
	FaceTop Face = iota // +Y
	FaceBottom
	FaceNorth // -Z
	FaceSouth // +Z
	FaceWest  // -X
	FaceEast  // +X

	FaceCount = 6
)

// Shade is the per-face brightness multiplier applied to RGB during
// meshing. Alpha is never scaled.
var Shade = [FaceCount]float32{
	FaceTop:    1.0,
	FaceBottom: 0.5,
	FaceNorth:  0.8,
	FaceSouth:  0.8,
	FaceWest:   0.6,
	FaceEast:   0.6,
}

// Shaded returns the base color of b scaled by the face's shade constant.
func (b Block) Shaded(f Face) Color {
	c := b.BaseColor()
	s := Shade[f]
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}
