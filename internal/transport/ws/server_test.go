package ws

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/block"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/render"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/sim"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/world"
	"github.com/fionnbanksg/MC-clone-webgl/internal/protocol"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard, "", 0)

	b := render.NewBroadcast(logger)
	w := world.New(world.Options{Seed: 42, RenderDistance: 1, Renderer: b})
	loop := sim.NewLoop(sim.Options{World: w, TickRateHz: 200, Log: logger})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		loop.Run(ctx)
	}()

	srv := NewServer(loop, b, WorldInfo{Seed: 42, RenderDistance: 1}, 256, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-done
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// readUntil reads frames until one of the given type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) []byte {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(deadline)
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if base.Type == msgType {
			return msg
		}
	}
	t.Fatalf("no %s frame before deadline", msgType)
	return nil
}

func handshake(t *testing.T, conn *websocket.Conn) protocol.WelcomeMsg {
	t.Helper()
	sendJSON(t, conn, protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		ViewerName:      "test-viewer",
	})
	var welcome protocol.WelcomeMsg
	if err := json.Unmarshal(readUntil(t, conn, protocol.TypeWelcome), &welcome); err != nil {
		t.Fatalf("unmarshal welcome: %v", err)
	}
	return welcome
}

func TestHandshakeWelcome(t *testing.T) {
	ts := startServer(t)
	conn := dial(t, ts)

	welcome := handshake(t, conn)
	if welcome.SessionID == "" {
		t.Fatal("empty session id")
	}
	wp := welcome.WorldParams
	if wp.ChunkSize != 16 || wp.WaterLevel != 4 || wp.Seed != 42 || wp.RenderDistance != 1 {
		t.Fatalf("world params = %+v", wp)
	}
	if len(welcome.Palette) != block.Count {
		t.Fatalf("palette has %d entries, want %d", len(welcome.Palette), block.Count)
	}
	if welcome.Palette[0].Name != "AIR" || welcome.Palette[0].ID != 0 {
		t.Fatalf("palette[0] = %+v, want AIR/0", welcome.Palette[0])
	}
}

func TestObserverStreamsChunks(t *testing.T) {
	ts := startServer(t)
	conn := dial(t, ts)
	handshake(t, conn)

	sendJSON(t, conn, protocol.ObserverMsg{
		Type:            protocol.TypeObserver,
		ProtocolVersion: protocol.Version,
		Pos:             [3]float64{8, 10, 8},
	})

	var mesh protocol.ChunkMeshMsg
	if err := json.Unmarshal(readUntil(t, conn, protocol.TypeChunkMesh), &mesh); err != nil {
		t.Fatalf("unmarshal mesh: %v", err)
	}
	if mesh.Geometry.Encoding != protocol.GeometryEncoding {
		t.Fatalf("encoding = %q", mesh.Geometry.Encoding)
	}
	if _, _, _, err := protocol.DecodeGeometry(mesh.Geometry); err != nil {
		t.Fatalf("geometry does not decode: %v", err)
	}
}

func TestSetBlockAcks(t *testing.T) {
	ts := startServer(t)
	conn := dial(t, ts)
	handshake(t, conn)

	cases := []struct {
		name     string
		msg      protocol.SetBlockMsg
		accepted bool
		code     string
	}{
		{
			name: "valid",
			msg: protocol.SetBlockMsg{
				Type: protocol.TypeSetBlock, ProtocolVersion: protocol.Version,
				Pos: [3]int{8, 14, 8}, Block: "STONE",
			},
			accepted: true,
		},
		{
			name: "unknown block",
			msg: protocol.SetBlockMsg{
				Type: protocol.TypeSetBlock, ProtocolVersion: protocol.Version,
				Pos: [3]int{8, 14, 8}, Block: "LAVA",
			},
			code: protocol.ErrBadBlock,
		},
		{
			name: "above world",
			msg: protocol.SetBlockMsg{
				Type: protocol.TypeSetBlock, ProtocolVersion: protocol.Version,
				Pos: [3]int{8, 16, 8}, Block: "STONE",
			},
			code: protocol.ErrOutOfWorld,
		},
	}
	for _, tc := range cases {
		sendJSON(t, conn, tc.msg)
		var ack protocol.AckMsg
		if err := json.Unmarshal(readUntil(t, conn, protocol.TypeAck), &ack); err != nil {
			t.Fatalf("%s: unmarshal ack: %v", tc.name, err)
		}
		if ack.Accepted != tc.accepted || ack.Code != tc.code {
			t.Fatalf("%s: ack = %+v, want accepted=%v code=%q", tc.name, ack, tc.accepted, tc.code)
		}
		if ack.AckFor != protocol.TypeSetBlock {
			t.Fatalf("%s: ack_for = %q", tc.name, ack.AckFor)
		}
	}
}

func TestSetRenderDistanceValidation(t *testing.T) {
	ts := startServer(t)
	conn := dial(t, ts)
	handshake(t, conn)

	sendJSON(t, conn, protocol.SetRenderDistanceMsg{
		Type: protocol.TypeSetRenderDistance, ProtocolVersion: protocol.Version,
		Distance: 11,
	})
	var ack protocol.AckMsg
	if err := json.Unmarshal(readUntil(t, conn, protocol.TypeAck), &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if ack.Accepted || ack.Code != protocol.ErrBadRenderDistance {
		t.Fatalf("ack = %+v, want E_BAD_RENDER_DISTANCE", ack)
	}

	sendJSON(t, conn, protocol.SetRenderDistanceMsg{
		Type: protocol.TypeSetRenderDistance, ProtocolVersion: protocol.Version,
		Distance: 2,
	})
	if err := json.Unmarshal(readUntil(t, conn, protocol.TypeAck), &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if !ack.Accepted {
		t.Fatalf("ack = %+v, want accepted", ack)
	}
}

func TestRejectsNonHelloFirst(t *testing.T) {
	ts := startServer(t)
	conn := dial(t, ts)

	sendJSON(t, conn, protocol.ObserverMsg{
		Type:            protocol.TypeObserver,
		ProtocolVersion: protocol.Version,
		Pos:             [3]float64{0, 0, 0},
	})

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected close after non-HELLO first message")
	}
}
