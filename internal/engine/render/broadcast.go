package render

import (
	"encoding/json"
	"io"
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/world"
	"github.com/fionnbanksg/MC-clone-webgl/internal/protocol"
)

// Broadcast implements world.Renderer for remote viewers. UploadMesh
// encodes the chunk geometry once and fans the frame out to every
// subscriber; ReleaseMesh fans out an eviction notice. Draw is a no-op
// because viewers run their own cameras.
//
// UploadMesh and ReleaseMesh are called from the world's goroutine;
// Subscribe and Unsubscribe from transport goroutines. Subscriber
// queues are never blocked on: a full queue drops the frame and the
// viewer catches up on the next rebuild.
type Broadcast struct {
	log *log.Logger

	mu      sync.Mutex
	latest  map[world.ChunkKey][]byte // last CHUNK_MESH frame per chunk
	subs    map[string]chan<- []byte
	dropped uint64
}

func NewBroadcast(logger *log.Logger) *Broadcast {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Broadcast{
		log:    logger,
		latest: map[world.ChunkKey][]byte{},
		subs:   map[string]chan<- []byte{},
	}
}

// Subscribe registers a viewer send queue and replays the current chunk
// frames into it so a late joiner sees the already-streamed world.
func (b *Broadcast) Subscribe(id string, out chan<- []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[id] = out
	for _, frame := range b.latest {
		b.send(id, out, frame)
	}
}

func (b *Broadcast) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// SubscriberCount reports the number of attached viewers.
func (b *Broadcast) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dropped reports how many frames were discarded on full queues.
func (b *Broadcast) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

func (b *Broadcast) send(id string, out chan<- []byte, frame []byte) {
	select {
	case out <- frame:
	default:
		b.dropped++
		b.log.Printf("broadcast: dropping frame for slow viewer %s", id)
	}
}

func (b *Broadcast) fanout(frame []byte) {
	for id, out := range b.subs {
		b.send(id, out, frame)
	}
}

// UploadMesh encodes the mesh as a CHUNK_MESH frame, remembers it as
// the chunk's latest, and fans it out.
func (b *Broadcast) UploadMesh(key world.ChunkKey, m *world.Mesh) {
	msg := protocol.ChunkMeshMsg{
		Type:            protocol.TypeChunkMesh,
		ProtocolVersion: protocol.Version,
		CX:              key.CX,
		CZ:              key.CZ,
		Origin: [3]float32{
			float32(key.CX * world.ChunkSize),
			0,
			float32(key.CZ * world.ChunkSize),
		},
		Geometry:        protocol.EncodeGeometry(m.Positions, m.Colors, m.Indices),
	}
	frame, err := json.Marshal(msg)
	if err != nil {
		b.log.Printf("broadcast: encode chunk (%d,%d): %v", key.CX, key.CZ, err)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest[key] = frame
	b.fanout(frame)
}

// ReleaseMesh forgets the chunk's frame and tells viewers to drop it.
func (b *Broadcast) ReleaseMesh(key world.ChunkKey) {
	msg := protocol.ChunkEvictMsg{
		Type:            protocol.TypeChunkEvict,
		ProtocolVersion: protocol.Version,
		CX:              key.CX,
		CZ:              key.CZ,
	}
	frame, err := json.Marshal(msg)
	if err != nil {
		b.log.Printf("broadcast: encode evict (%d,%d): %v", key.CX, key.CZ, err)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.latest, key)
	b.fanout(frame)
}

// Draw is a no-op: remote viewers compute their own transforms.
func (b *Broadcast) Draw(world.ChunkKey, mgl32.Mat4, mgl32.Mat4, mgl32.Mat4) {
}
