package world

import (
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/block"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/noise"
)

// Terrain tuning. Height noise is sampled at heightFreq on world
// coordinates; biome noise at biomeFreq selects one of three height
// profiles per column.
const (
	heightFreq = 0.1 * 0.02
	biomeFreq  = 0.005

	biomeMountain = 0.6
	biomePlains   = 0.3

	caveStride    = 4
	caveFreq      = 0.1
	caveThreshold = 0.7
)

// GenerateTerrain clears the chunk to Air and fills it column by column
// from the noise field. Deterministic in (CX, CZ, seed); no other state
// is read.
func (c *Chunk) GenerateTerrain(seed int64) {
	for i := range c.Blocks {
		c.Blocks[i] = block.Air
	}
	s := float64(seed)
	ox, oz := c.Origin()

	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			wx := float64(ox + x)
			wz := float64(oz + z)

			height := columnHeight(s, wx, wz)
			for y := 0; y < height; y++ {
				c.Blocks[index(x, y, z)] = layerBlock(y, height)
			}
			for y := height; y < WaterLevel; y++ {
				c.Blocks[index(x, y, z)] = block.Water
			}
		}
	}
	c.touch()
}

func columnHeight(seed, wx, wz float64) int {
	h := noise.Fractal2(seed, wx*heightFreq, wz*heightFreq)
	b := noise.Value3(seed, wx*biomeFreq, 0, wz*biomeFreq)

	var height int
	switch {
	case b > biomeMountain:
		height = 1 + int(h*float64(ChunkSize)*0.9)
	case b < biomePlains:
		height = WaterLevel + int(h*3)
	default:
		height = WaterLevel - 1 + int(h*float64(ChunkSize)*0.45)
	}
	if height < 1 {
		height = 1
	}
	if height > ChunkSize-1 {
		height = ChunkSize - 1
	}
	return height
}

// layerBlock picks the material for depth y in a column of the given
// height: stone at the bottom, dirt near the surface, and a grass or
// sand cap depending on how close the surface sits to the water level.
func layerBlock(y, height int) block.Block {
	if y < height-4 {
		return block.Stone
	}
	if y < height-1 {
		return block.Dirt
	}
	d := height - WaterLevel
	if d >= -2 && d <= 2 {
		return block.Sand
	}
	return block.Grass
}

// GenerateCaves carves air pockets by sampling 3D noise on a coarse
// stride grid, skipping the top 30% of the height range. Only earthen
// blocks are removed; water bodies survive carving.
func (c *Chunk) GenerateCaves(seed int64) {
	s := float64(seed)
	ox, oz := c.Origin()
	caveTop := ChunkSize * 7 / 10

	carved := false
	for z := 0; z < ChunkSize; z += caveStride {
		for y := 0; y < caveTop; y += caveStride {
			for x := 0; x < ChunkSize; x += caveStride {
				wx := float64(ox + x)
				wz := float64(oz + z)
				v := noise.Value3(s, wx*caveFreq, float64(y)*caveFreq, wz*caveFreq)
				if v <= caveThreshold {
					continue
				}
				if c.carveRegion(x, y, z) {
					carved = true
				}
			}
		}
	}
	if carved {
		c.touch()
	}
}

func (c *Chunk) carveRegion(x0, y0, z0 int) bool {
	carved := false
	for dz := 0; dz < caveStride; dz++ {
		for dy := 0; dy < caveStride; dy++ {
			for dx := 0; dx < caveStride; dx++ {
				x, y, z := x0+dx, y0+dy, z0+dz
				if !inRange(x, y, z) {
					continue
				}
				i := index(x, y, z)
				if carvable(c.Blocks[i]) {
					c.Blocks[i] = block.Air
					carved = true
				}
			}
		}
	}
	return carved
}

func carvable(b block.Block) bool {
	switch b {
	case block.Stone, block.Dirt, block.Grass, block.Sand:
		return true
	}
	return false
}
