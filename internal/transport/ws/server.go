// Package ws serves the viewer protocol over websockets. Each
// connection handshakes with HELLO/WELCOME, then streams CHUNK_MESH and
// CHUNK_EVICT frames while accepting observer positions and edits.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/block"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/render"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/sim"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/world"
	"github.com/fionnbanksg/MC-clone-webgl/internal/protocol"
)

// WorldInfo is the immutable world description sent in WELCOME.
type WorldInfo struct {
	Seed           int64
	RenderDistance int
}

type Server struct {
	loop      *sim.Loop
	broadcast *render.Broadcast
	info      WorldInfo
	queue     int
	log       *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(loop *sim.Loop, b *render.Broadcast, info WorldInfo, viewerQueue int, logger *log.Logger) *Server {
	if viewerQueue <= 0 {
		viewerQueue = 256
	}
	return &Server{
		loop:      loop,
		broadcast: b,
		info:      info,
		queue:     viewerQueue,
		log:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID, out := s.handshake(conn)
		if sessionID == "" {
			return
		}
		s.broadcast.Subscribe(sessionID, out)
		defer s.broadcast.Unsubscribe(sessionID)
		s.log.Printf("ws: viewer %s connected", sessionID)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			s.route(msg, out)
		}

		s.log.Printf("ws: viewer %s disconnected", sessionID)
	}
}

func (s *Server) route(msg []byte, out chan []byte) {
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		s.ack(out, "", false, protocol.ErrProtoBadRequest, "malformed JSON")
		return
	}
	if base.ProtocolVersion != protocol.Version {
		s.ack(out, base.Type, false, protocol.ErrProtoBadRequest, "bad protocol_version")
		return
	}

	switch base.Type {
	case protocol.TypeObserver:
		var m protocol.ObserverMsg
		if err := json.Unmarshal(msg, &m); err != nil {
			s.ack(out, base.Type, false, protocol.ErrProtoBadRequest, "bad OBSERVER")
			return
		}
		s.loop.SetObserver(mgl32.Vec3{
			float32(m.Pos[0]),
			float32(m.Pos[1]),
			float32(m.Pos[2]),
		})

	case protocol.TypeSetBlock:
		var m protocol.SetBlockMsg
		if err := json.Unmarshal(msg, &m); err != nil {
			s.ack(out, base.Type, false, protocol.ErrProtoBadRequest, "bad SET_BLOCK")
			return
		}
		b, ok := block.FromName(m.Block)
		if !ok {
			s.ack(out, base.Type, false, protocol.ErrBadBlock, "unknown block "+m.Block)
			return
		}
		if m.Pos[1] < 0 || m.Pos[1] >= world.ChunkSize {
			s.ack(out, base.Type, false, protocol.ErrOutOfWorld, "y outside world height")
			return
		}
		if !s.loop.ApplyEdit(sim.EditRequest{X: m.Pos[0], Y: m.Pos[1], Z: m.Pos[2], Block: b}) {
			s.ack(out, base.Type, false, protocol.ErrInternal, "edit queue full")
			return
		}
		s.ack(out, base.Type, true, "", "")

	case protocol.TypeSetRenderDistance:
		var m protocol.SetRenderDistanceMsg
		if err := json.Unmarshal(msg, &m); err != nil {
			s.ack(out, base.Type, false, protocol.ErrProtoBadRequest, "bad SET_RENDER_DISTANCE")
			return
		}
		if m.Distance < world.MinRenderDistance || m.Distance > world.MaxRenderDistance {
			s.ack(out, base.Type, false, protocol.ErrBadRenderDistance, "distance outside [1,10]")
			return
		}
		s.loop.SetRenderDistance(m.Distance)
		s.ack(out, base.Type, true, "", "")

	default:
		s.ack(out, base.Type, false, protocol.ErrProtoBadRequest, "unknown type "+base.Type)
	}
}

// ack queues an ACK frame; a full viewer queue drops it like any other
// frame.
func (s *Server) ack(out chan []byte, ackFor string, accepted bool, code, message string) {
	b, err := json.Marshal(protocol.AckMsg{
		Type:            protocol.TypeAck,
		ProtocolVersion: protocol.Version,
		AckFor:          ackFor,
		Accepted:        accepted,
		Code:            code,
		Message:         message,
	})
	if err != nil {
		return
	}
	select {
	case out <- b:
	default:
	}
}

func (s *Server) handshake(conn *websocket.Conn) (sessionID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return "", nil
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return "", nil
	}

	queue := s.queue
	if hello.Capabilities.MaxQueue > 0 && hello.Capabilities.MaxQueue < queue {
		queue = hello.Capabilities.MaxQueue
	}
	out = make(chan []byte, queue)

	sessionID = uuid.NewString()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		WorldParams: protocol.WorldParams{
			ChunkSize:      world.ChunkSize,
			WaterLevel:     world.WaterLevel,
			Seed:           s.info.Seed,
			RenderDistance: s.info.RenderDistance,
		},
		Palette: Palette(),
	}
	if err := writeJSON(conn, welcome); err != nil {
		return "", nil
	}
	return sessionID, out
}

// Palette lists every block variant with its wire id and base color.
func Palette() []protocol.BlockRef {
	out := make([]protocol.BlockRef, 0, block.Count)
	for b := block.Block(0); b.Valid(); b++ {
		c := b.BaseColor()
		out = append(out, protocol.BlockRef{
			ID:    uint8(b),
			Name:  b.String(),
			Color: [4]float32{c.R, c.G, c.B, c.A},
		})
	}
	return out
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
