package world

import (
	"io"
	"log"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/block"
)

const (
	MinRenderDistance = 1
	MaxRenderDistance = 10

	// DefaultMeshBudget bounds how many completed async mesh builds are
	// published per UpdateChunks call.
	DefaultMeshBudget = 8
)

// Renderer owns the GPU-side (or remote) buffers for chunk meshes. The
// World pairs every UploadMesh with a ReleaseMesh on eviction; Draw is
// issued once per meshed chunk per Render call.
type Renderer interface {
	UploadMesh(key ChunkKey, m *Mesh)
	ReleaseMesh(key ChunkKey)
	Draw(key ChunkKey, model, view, proj mgl32.Mat4)
}

// EditRecord describes one applied block edit.
type EditRecord struct {
	X, Y, Z int
	Block   block.Block
	Prev    block.Block
	CX, CZ  int
}

// EditSink receives every applied edit, e.g. for journaling.
type EditSink interface {
	RecordEdit(e EditRecord)
}

// meshState tracks the published mesh for one chunk plus the chunk
// content version a pending async build was snapshotted at (0 = none).
type meshState struct {
	mesh     *Mesh
	version  uint64 // bumped on every publish
	uploaded bool
	pending  uint64
}

// World owns the loaded chunk set and its meshes. It is not
// goroutine-safe: all methods must be called from the goroutine that
// owns the world (async mesh builds hand results back through
// UpdateChunks on that same goroutine).
type World struct {
	log  *log.Logger
	seed int64

	renderDistance int
	meshBudget     int

	chunks map[ChunkKey]*Chunk
	meshes map[ChunkKey]*meshState

	renderList []ChunkKey

	renderer Renderer
	builder  *BuilderPool
	edits    EditSink
}

// Options configures a World. Zero-value fields fall back to defaults.
type Options struct {
	Seed           int64
	RenderDistance int
	MeshBudget     int
	Renderer       Renderer
	Builder        *BuilderPool
	Edits          EditSink
	Log            *log.Logger
}

// New builds an empty world. No chunks are generated until the first
// UpdateChunks or SetBlock call.
func New(opts Options) *World {
	logger := opts.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	w := &World{
		log:            logger,
		seed:           opts.Seed,
		renderDistance: clampRenderDistance(opts.RenderDistance),
		meshBudget:     opts.MeshBudget,
		chunks:         map[ChunkKey]*Chunk{},
		meshes:         map[ChunkKey]*meshState{},
		renderer:       opts.Renderer,
		builder:        opts.Builder,
		edits:          opts.Edits,
	}
	if w.meshBudget <= 0 {
		w.meshBudget = DefaultMeshBudget
	}
	return w
}

// Seed returns the generation seed fixed at construction.
func (w *World) Seed() int64 { return w.seed }

func clampRenderDistance(n int) int {
	if n < MinRenderDistance {
		return MinRenderDistance
	}
	if n > MaxRenderDistance {
		return MaxRenderDistance
	}
	return n
}

// SetRenderDistance clamps n to [1,10]; the new radius takes effect on
// the next UpdateChunks call.
func (w *World) SetRenderDistance(n int) {
	w.renderDistance = clampRenderDistance(n)
}

// RenderDistance returns the current streaming radius in chunks.
func (w *World) RenderDistance() int { return w.renderDistance }

// GenerateChunk returns the chunk at (cx, cz), creating and
// terrain-generating it on first use. Idempotent per key.
func (w *World) GenerateChunk(cx, cz int) *Chunk {
	k := ChunkKey{CX: cx, CZ: cz}
	if ch, ok := w.chunks[k]; ok {
		return ch
	}
	ch := NewChunk(cx, cz)
	ch.GenerateTerrain(w.seed)
	ch.GenerateCaves(w.seed)
	w.chunks[k] = ch
	return ch
}

// GetBlock reads the world voxel at (wx, wy, wz). Air when the owning
// chunk is not loaded or the coordinate is out of the height range.
func (w *World) GetBlock(wx, wy, wz int) block.Block {
	if wy < 0 || wy >= ChunkSize {
		return block.Air
	}
	k, lx, ly, lz := Split(wx, wy, wz)
	ch, ok := w.chunks[k]
	if !ok {
		return block.Air
	}
	return ch.Get(lx, ly, lz)
}

// GetBlockPos is GetBlock for a fractional position.
func (w *World) GetBlockPos(p mgl32.Vec3) block.Block {
	x, y, z := Voxel(float64(p.X()), float64(p.Y()), float64(p.Z()))
	return w.GetBlock(x, y, z)
}

// SetBlock writes the world voxel at (wx, wy, wz), generating the
// owning chunk on demand. The owning chunk is remeshed immediately, and
// so is every loaded neighbor whose shared boundary the edit touched.
func (w *World) SetBlock(wx, wy, wz int, b block.Block) {
	if wy < 0 || wy >= ChunkSize {
		return
	}
	k, lx, ly, lz := Split(wx, wy, wz)
	ch := w.GenerateChunk(k.CX, k.CZ)

	prev := ch.Get(lx, ly, lz)
	ch.Set(lx, ly, lz, b)
	w.rebuildMesh(k)

	for _, nk := range boundaryNeighbors(k, lx, lz) {
		if _, loaded := w.chunks[nk]; loaded {
			w.rebuildMesh(nk)
		}
	}

	if w.edits != nil {
		w.edits.RecordEdit(EditRecord{
			X: wx, Y: wy, Z: wz,
			Block: b, Prev: prev,
			CX: k.CX, CZ: k.CZ,
		})
	}
}

// SetBlockPos is SetBlock for a fractional position.
func (w *World) SetBlockPos(p mgl32.Vec3, b block.Block) {
	x, y, z := Voxel(float64(p.X()), float64(p.Y()), float64(p.Z()))
	w.SetBlock(x, y, z, b)
}

// boundaryNeighbors lists the up-to-8 adjacent chunk keys whose seam a
// local edit at (lx, lz) sits on.
func boundaryNeighbors(k ChunkKey, lx, lz int) []ChunkKey {
	dxs := []int{0}
	if lx == 0 {
		dxs = append(dxs, -1)
	} else if lx == ChunkSize-1 {
		dxs = append(dxs, 1)
	}
	dzs := []int{0}
	if lz == 0 {
		dzs = append(dzs, -1)
	} else if lz == ChunkSize-1 {
		dzs = append(dzs, 1)
	}
	var out []ChunkKey
	for _, dx := range dxs {
		for _, dz := range dzs {
			if dx == 0 && dz == 0 {
				continue
			}
			out = append(out, ChunkKey{CX: k.CX + dx, CZ: k.CZ + dz})
		}
	}
	return out
}

// rebuildMesh synchronously rebuilds and publishes the mesh for a
// loaded chunk. A neighbor rebuild re-derives faces from that chunk's
// own blocks only; an edit exactly on a seam can therefore leave a
// one-voxel mismatch between adjacent meshes. Known limitation.
func (w *World) rebuildMesh(k ChunkKey) {
	ch, ok := w.chunks[k]
	if !ok {
		return
	}
	w.publishMesh(k, ch.BuildMesh())
	ch.SetClean()
}

func (w *World) publishMesh(k ChunkKey, m *Mesh) {
	st := w.meshes[k]
	if st == nil {
		st = &meshState{}
		w.meshes[k] = st
	}
	st.mesh = m
	st.version++
	st.pending = 0
	if w.renderer != nil {
		w.renderer.UploadMesh(k, m)
		st.uploaded = true
	}
}

// UpdateChunks recomputes the streamed chunk set around the observer:
// a (2R+1)-sided square with a circular cutoff at squared chunk offset
// R*R. Chunks entering the set are generated and meshed (inline, or
// scheduled on the builder pool when one is configured); chunks leaving
// it are evicted together with their mesh and renderer buffers.
func (w *World) UpdateChunks(pos mgl32.Vec3) {
	if w.builder != nil {
		w.drainBuilds()
	}

	cx := floorDiv(int(math.Floor(float64(pos.X()))), ChunkSize)
	cz := floorDiv(int(math.Floor(float64(pos.Z()))), ChunkSize)
	r := w.renderDistance

	kept := make(map[ChunkKey]struct{}, (2*r+1)*(2*r+1))
	w.renderList = w.renderList[:0]
	for dz := -r; dz <= r; dz++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dz*dz > r*r {
				continue
			}
			k := ChunkKey{CX: cx + dx, CZ: cz + dz}
			kept[k] = struct{}{}
			w.renderList = append(w.renderList, k)
			ch := w.GenerateChunk(k.CX, k.CZ)
			w.ensureMesh(k, ch)
		}
	}

	for k := range w.chunks {
		if _, keep := kept[k]; !keep {
			w.evict(k)
		}
	}
}

func (w *World) ensureMesh(k ChunkKey, ch *Chunk) {
	st := w.meshes[k]
	if st != nil && st.mesh != nil && !ch.Dirty() {
		return
	}
	if w.builder == nil {
		w.rebuildMesh(k)
		return
	}
	if st != nil && st.pending != 0 {
		return // build already in flight
	}
	if w.builder.Submit(meshJob{key: k, snapshot: ch.Clone()}) {
		if st == nil {
			st = &meshState{}
			w.meshes[k] = st
		}
		st.pending = ch.Version()
		ch.SetClean()
	}
	// Queue full: stay dirty and retry on a later update.
}

// drainBuilds publishes up to meshBudget completed async builds,
// dropping results for chunks that were evicted or edited since the
// job was snapshotted.
func (w *World) drainBuilds() {
	for i := 0; i < w.meshBudget; i++ {
		res, ok := w.builder.TryResult()
		if !ok {
			return
		}
		ch, loaded := w.chunks[res.key]
		if !loaded || ch.Version() != res.version {
			continue // stale: evicted or re-edited since snapshot
		}
		w.publishMesh(res.key, res.mesh)
	}
}

// evict removes a chunk and everything hanging off it: block data, mesh
// data, and renderer buffers are released together on every path.
func (w *World) evict(k ChunkKey) {
	delete(w.chunks, k)
	st, ok := w.meshes[k]
	if ok {
		delete(w.meshes, k)
		if st.uploaded && w.renderer != nil {
			w.renderer.ReleaseMesh(k)
		}
	}
}

// Render issues one draw per meshed chunk in the current render list.
// The model transform is a pure translation to the chunk's world
// origin. Chunks whose mesh is not yet built are skipped silently.
func (w *World) Render(view, proj mgl32.Mat4) {
	if w.renderer == nil {
		w.log.Printf("render: no renderer attached, skipping draw")
		return
	}
	for _, k := range w.renderList {
		st := w.meshes[k]
		if st == nil || st.mesh == nil || !st.uploaded {
			continue
		}
		model := mgl32.Translate3D(
			float32(k.CX*ChunkSize),
			0,
			float32(k.CZ*ChunkSize),
		)
		w.renderer.Draw(k, model, view, proj)
	}
}

// LoadedChunks returns the loaded chunk keys in deterministic order.
func (w *World) LoadedChunks() []ChunkKey {
	keys := make([]ChunkKey, 0, len(w.chunks))
	for k := range w.chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		return keys[i].CZ < keys[j].CZ
	})
	return keys
}

// ChunkAt returns the loaded chunk at key, if any.
func (w *World) ChunkAt(k ChunkKey) (*Chunk, bool) {
	ch, ok := w.chunks[k]
	return ch, ok
}

// Mesh returns the published mesh for a chunk, if one is built.
func (w *World) Mesh(k ChunkKey) (*Mesh, bool) {
	st, ok := w.meshes[k]
	if !ok || st.mesh == nil {
		return nil, false
	}
	return st.mesh, true
}

// MeshVersion returns the publish counter for a chunk's mesh. It
// increases every time the mesh is rebuilt, including neighbor rebuilds
// triggered by seam edits.
func (w *World) MeshVersion(k ChunkKey) (uint64, bool) {
	st, ok := w.meshes[k]
	if !ok {
		return 0, false
	}
	return st.version, true
}

// MeshedChunkCount reports how many chunks currently have a mesh entry.
func (w *World) MeshedChunkCount() int { return len(w.meshes) }
