// Package sim runs the world on a single goroutine. Transports hand
// observer positions, edits and render-distance changes over channels;
// the loop applies them between fixed-rate update ticks so the world
// itself needs no locking.
package sim

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/block"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/render"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/world"
)

// EditRequest is one block write queued for the loop goroutine.
type EditRequest struct {
	X, Y, Z int
	Block   block.Block
}

type Loop struct {
	log  *log.Logger
	w    *world.World
	cam  render.Camera
	tick time.Duration

	pos    mgl32.Vec3
	posCh  chan mgl32.Vec3
	editCh chan EditRequest
	distCh chan int
}

type Options struct {
	World      *world.World
	TickRateHz int
	Log        *log.Logger

	// EditQueue bounds pending edits; a full queue rejects the edit so
	// the transport can report it. Defaults to 1024.
	EditQueue int
}

func NewLoop(opts Options) *Loop {
	logger := opts.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	hz := opts.TickRateHz
	if hz <= 0 {
		hz = 20
	}
	queue := opts.EditQueue
	if queue <= 0 {
		queue = 1024
	}
	return &Loop{
		log:  logger,
		w:    opts.World,
		cam:  render.NewCamera(mgl32.Vec3{0, float32(world.ChunkSize), 0}),
		tick: time.Second / time.Duration(hz),

		posCh:  make(chan mgl32.Vec3, 64),
		editCh: make(chan EditRequest, queue),
		distCh: make(chan int, 8),
	}
}

// SetObserver queues a new observer position. Only the most recent
// position matters, so a full queue drops the oldest behavior-free.
func (l *Loop) SetObserver(pos mgl32.Vec3) {
	select {
	case l.posCh <- pos:
	default:
		// Stale positions are worthless; drop and let the next one through.
		select {
		case <-l.posCh:
		default:
		}
		select {
		case l.posCh <- pos:
		default:
		}
	}
}

// ApplyEdit queues a block write. Reports false when the queue is full.
func (l *Loop) ApplyEdit(e EditRequest) bool {
	select {
	case l.editCh <- e:
		return true
	default:
		return false
	}
}

// SetRenderDistance queues a streaming-radius change.
func (l *Loop) SetRenderDistance(n int) {
	select {
	case l.distCh <- n:
	default:
	}
}

// Run owns the world until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	l.log.Printf("sim: loop started, tick %v", l.tick)
	for {
		select {
		case <-ctx.Done():
			l.log.Printf("sim: loop stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			l.step()
		}
	}
}

func (l *Loop) step() {
	l.drainInputs()
	l.w.UpdateChunks(l.pos)
	l.cam.Pos = l.pos
	l.w.Render(l.cam.View(), l.cam.Projection())
}

func (l *Loop) drainInputs() {
	for {
		select {
		case p := <-l.posCh:
			l.pos = p
		case n := <-l.distCh:
			l.w.SetRenderDistance(n)
		case e := <-l.editCh:
			l.w.SetBlock(e.X, e.Y, e.Z, e.Block)
		default:
			return
		}
	}
}
