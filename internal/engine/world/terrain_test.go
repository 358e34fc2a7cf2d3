package world

import (
	"testing"

	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/block"
)

func generate(cx, cz int, seed int64) *Chunk {
	c := NewChunk(cx, cz)
	c.GenerateTerrain(seed)
	c.GenerateCaves(seed)
	return c
}

func TestGenerateDeterministic(t *testing.T) {
	a := generate(3, -7, 42)
	for i := 0; i < 5; i++ {
		b := generate(3, -7, 42)
		if a.Digest() != b.Digest() {
			t.Fatalf("run %d: same inputs produced different chunks", i)
		}
	}
}

func TestGenerateSeedMatters(t *testing.T) {
	if generate(0, 0, 1).Digest() == generate(0, 0, 2).Digest() {
		t.Fatalf("different seeds produced identical chunks")
	}
}

func TestGenerateHeightClamped(t *testing.T) {
	c := generate(0, 0, 42)
	// Column height is clamped to ChunkSize-1 and water never rises
	// above the water level, so the top voxel layer is always open.
	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			if got := c.Get(x, ChunkSize-1, z); got != block.Air {
				t.Fatalf("column (%d,%d): top voxel is %v, want Air", x, z, got)
			}
		}
	}
}

func TestGenerateCavesPreserveWater(t *testing.T) {
	c := NewChunk(0, 0)
	c.GenerateTerrain(42)
	water := map[[3]int]bool{}
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				if c.Get(x, y, z) == block.Water {
					water[[3]int{x, y, z}] = true
				}
			}
		}
	}
	c.GenerateCaves(42)
	for p := range water {
		if got := c.Get(p[0], p[1], p[2]); got != block.Water {
			t.Fatalf("carving removed water at %v (now %v)", p, got)
		}
	}
}

func TestScenarioSeed42Chunk00(t *testing.T) {
	c := NewChunk(0, 0)
	c.GenerateTerrain(42)
	m := c.BuildMesh()
	if m.IndexCount() == 0 {
		t.Fatalf("generated chunk meshed to nothing")
	}
	if m.IndexCount()%6 != 0 {
		t.Fatalf("index count %d is not a multiple of 6", m.IndexCount())
	}
}
