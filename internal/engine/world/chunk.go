package world

import (
	"crypto/sha256"

	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/block"
)

// ChunkSize is the side length of a chunk in voxels. Chunks are cubes;
// the world is not subdivided vertically, so ChunkSize is also the world
// height.
const ChunkSize = 16

// WaterLevel is the sea surface height, in voxels.
const WaterLevel = ChunkSize * 3 / 10

// ChunkKey addresses a chunk on the horizontal grid.
type ChunkKey struct {
	CX int
	CZ int
}

// Chunk is one cubic region of voxels. Blocks is a flat buffer indexed
// x + y*S + z*S*S; out-of-range coordinates read as Air through Get and
// are ignored by Set, so callers never bounds-check.
type Chunk struct {
	CX, CZ int
	Blocks []block.Block

	dirty   bool
	version uint64
}

// NewChunk returns an all-Air chunk at the given grid position.
func NewChunk(cx, cz int) *Chunk {
	return &Chunk{
		CX:     cx,
		CZ:     cz,
		Blocks: make([]block.Block, ChunkSize*ChunkSize*ChunkSize),
	}
}

func index(x, y, z int) int {
	// x fastest, then y, then z
	return x + y*ChunkSize + z*ChunkSize*ChunkSize
}

func inRange(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// Get returns the block at chunk-local (x, y, z), or Air when any
// coordinate is outside [0, ChunkSize).
func (c *Chunk) Get(x, y, z int) block.Block {
	if !inRange(x, y, z) {
		return block.Air
	}
	return c.Blocks[index(x, y, z)]
}

// Set overwrites the block at chunk-local (x, y, z). Out-of-range
// coordinates are ignored. Set does not remesh; that is the caller's job.
func (c *Chunk) Set(x, y, z int, b block.Block) {
	if !inRange(x, y, z) {
		return
	}
	i := index(x, y, z)
	if c.Blocks[i] == b {
		return
	}
	c.Blocks[i] = b
	c.touch()
}

func (c *Chunk) touch() {
	c.dirty = true
	c.version++
}

// Version increases on every content change. A mesh built from a chunk
// records the version it saw so stale async builds can be detected.
func (c *Chunk) Version() uint64 { return c.version }

// Dirty reports whether contents changed since the last SetClean.
func (c *Chunk) Dirty() bool { return c.dirty }

// SetClean marks the chunk as having a mesh build in flight or published.
func (c *Chunk) SetClean() { c.dirty = false }

// Origin returns the chunk's world-space voxel origin (y is always 0).
func (c *Chunk) Origin() (wx, wz int) {
	return c.CX * ChunkSize, c.CZ * ChunkSize
}

// Clone copies the chunk's contents for handoff to a mesh worker.
func (c *Chunk) Clone() *Chunk {
	cp := NewChunk(c.CX, c.CZ)
	copy(cp.Blocks, c.Blocks)
	cp.version = c.version
	return cp
}

// Digest hashes the block buffer. Two chunks generated from the same
// (seed, CX, CZ) digest identically.
func (c *Chunk) Digest() [32]byte {
	buf := make([]byte, len(c.Blocks))
	for i, b := range c.Blocks {
		buf[i] = byte(b)
	}
	return sha256.Sum256(buf)
}
