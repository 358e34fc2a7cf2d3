// Package protocol defines the JSON messages exchanged with remote
// viewers over the websocket transport. Viewers receive per-chunk
// geometry bundles and eviction notices; they send observer positions
// and block edit requests.
package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello             = "HELLO"
	TypeWelcome           = "WELCOME"
	TypeObserver          = "OBSERVER"
	TypeSetBlock          = "SET_BLOCK"
	TypeSetRenderDistance = "SET_RENDER_DISTANCE"
	TypeChunkMesh         = "CHUNK_MESH"
	TypeChunkEvict        = "CHUNK_EVICT"
	TypeAck               = "ACK"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
