package world

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// waitMeshed drives UpdateChunks until every loaded chunk has a
// published mesh or the deadline passes.
func waitMeshed(t *testing.T, w *World, pos mgl32.Vec3) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w.UpdateChunks(pos)
		done := true
		for _, k := range w.LoadedChunks() {
			if _, ok := w.Mesh(k); !ok {
				done = false
				break
			}
		}
		if done {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("async mesh builds did not complete in time")
}

func TestBuilderPoolPublishesMeshes(t *testing.T) {
	pool := NewBuilderPool(2, 64)
	defer pool.Shutdown()

	rr := newRecordRenderer()
	w := New(Options{Seed: 42, RenderDistance: 2, Renderer: rr, Builder: pool})

	pos := mgl32.Vec3{8, 0, 8}
	waitMeshed(t, w, pos)

	want := keptSet(ChunkKey{0, 0}, 2)
	for k := range want {
		if _, ok := w.Mesh(k); !ok {
			t.Fatalf("chunk %+v never received its mesh", k)
		}
		if rr.uploads[k] == 0 {
			t.Fatalf("chunk %+v mesh was never uploaded", k)
		}
	}
}

func TestBuilderPoolDropsStaleResults(t *testing.T) {
	pool := NewBuilderPool(1, 64)
	defer pool.Shutdown()

	rr := newRecordRenderer()
	w := New(Options{Seed: 42, RenderDistance: 1, Renderer: rr, Builder: pool})

	// Load around the origin, then immediately move far away. Builds
	// snapshotted for the origin chunks may still be in flight; their
	// results must not resurrect evicted chunks.
	w.UpdateChunks(mgl32.Vec3{0, 0, 0})
	far := mgl32.Vec3{1000, 0, 1000}
	waitMeshed(t, w, far)

	// Drain anything left over.
	for i := 0; i < 10; i++ {
		w.UpdateChunks(far)
		time.Sleep(2 * time.Millisecond)
	}

	want := keptSet(ChunkKey{62, 62}, 1)
	if len(w.chunks) != len(want) {
		t.Fatalf("loaded %d chunks, want %d", len(w.chunks), len(want))
	}
	for k := range w.meshes {
		if _, ok := want[k]; !ok {
			t.Fatalf("stale mesh entry %+v survived eviction", k)
		}
	}
}

func TestBuilderPoolSubmitNonBlocking(t *testing.T) {
	pool := NewBuilderPool(1, 1)
	defer pool.Shutdown()

	ch := NewChunk(0, 0)
	ch.GenerateTerrain(42)

	accepted := 0
	for i := 0; i < 50; i++ {
		if pool.Submit(meshJob{key: ChunkKey{CX: i}, snapshot: ch.Clone()}) {
			accepted++
		}
	}
	if accepted == 0 {
		t.Fatalf("pool accepted no jobs")
	}
	if accepted == 50 {
		t.Fatalf("pool with queue depth 1 accepted all 50 jobs without blocking")
	}
}
