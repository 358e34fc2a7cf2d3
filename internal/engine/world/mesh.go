package world

import "github.com/fionnbanksg/MC-clone-webgl/internal/engine/block"

// Mesh is the renderable surface of one chunk: interleaved-by-array
// vertex positions (3 floats each), colors (4 floats each), and a
// 16-bit triangle index list. Positions are chunk-local; placement in
// the world is a translation applied by the renderer.
//
// The 16-bit index width caps a chunk mesh at 65536 vertices. Face-culled
// terrain stays far below that.
type Mesh struct {
	Positions []float32
	Colors    []float32
	Indices   []uint16
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// IndexCount returns the number of indices (3 per triangle).
func (m *Mesh) IndexCount() int { return len(m.Indices) }

// QuadCount returns the number of emitted faces (2 triangles each).
func (m *Mesh) QuadCount() int { return len(m.Indices) / 6 }

// faceDirs is the neighbor offset probed for each face.
var faceDirs = [block.FaceCount][3]int{
	block.FaceTop:    {0, 1, 0},
	block.FaceBottom: {0, -1, 0},
	block.FaceNorth:  {0, 0, -1},
	block.FaceSouth:  {0, 0, 1},
	block.FaceWest:   {-1, 0, 0},
	block.FaceEast:   {1, 0, 0},
}

// faceCorners lists the four corner offsets of each face in
// counter-clockwise order as seen from outside the voxel.
var faceCorners = [block.FaceCount][4][3]float32{
	block.FaceTop:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	block.FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	block.FaceNorth:  {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	block.FaceSouth:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	block.FaceWest:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	block.FaceEast:   {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
}

// faceVisible reports whether a face of self against neighbor nb is
// emitted: always against Air, and against Water unless self is Water
// (water never draws internal faces against itself).
func faceVisible(self, nb block.Block) bool {
	if nb == block.Air {
		return true
	}
	return nb == block.Water && self != block.Water
}

// BuildMesh walks every voxel and emits one quad per visible face.
// Neighbors are read through the bounded accessor, so voxels outside
// this chunk count as Air; cross-chunk occlusion is deliberately not
// consulted.
func (c *Chunk) BuildMesh() *Mesh {
	m := &Mesh{}
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				self := c.Blocks[index(x, y, z)]
				if self == block.Air {
					continue
				}
				for f := block.Face(0); f < block.FaceCount; f++ {
					d := faceDirs[f]
					nb := c.Get(x+d[0], y+d[1], z+d[2])
					if !faceVisible(self, nb) {
						continue
					}
					m.appendQuad(x, y, z, self, f)
				}
			}
		}
	}
	return m
}

func (m *Mesh) appendQuad(x, y, z int, b block.Block, f block.Face) {
	base := uint16(m.VertexCount())
	col := b.Shaded(f)
	for _, corner := range faceCorners[f] {
		m.Positions = append(m.Positions,
			float32(x)+corner[0],
			float32(y)+corner[1],
			float32(z)+corner[2],
		)
		m.Colors = append(m.Colors, col.R, col.G, col.B, col.A)
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}
