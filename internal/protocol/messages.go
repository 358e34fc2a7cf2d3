package protocol

// HELLO (viewer -> server)
type HelloMsg struct {
	Type            string            `json:"type"`
	ProtocolVersion string            `json:"protocol_version"`
	ViewerName      string            `json:"viewer_name"`
	Capabilities    HelloCapabilities `json:"capabilities,omitempty"`
}

type HelloCapabilities struct {
	MaxQueue int `json:"max_queue,omitempty"`
}

// WELCOME (server -> viewer)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	SessionID       string      `json:"session_id"`
	WorldParams     WorldParams `json:"world_params"`
	Palette         []BlockRef  `json:"palette"`
}

type WorldParams struct {
	ChunkSize      int   `json:"chunk_size"`
	WaterLevel     int   `json:"water_level"`
	Seed           int64 `json:"seed"`
	RenderDistance int   `json:"render_distance"`
}

// BlockRef describes one palette entry: id is the wire value used in
// SET_BLOCK, color is the base RGBA before face shading.
type BlockRef struct {
	ID    uint8      `json:"id"`
	Name  string     `json:"name"`
	Color [4]float32 `json:"color"`
}

// OBSERVER (viewer -> server): the camera moved.
type ObserverMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Pos             [3]float64 `json:"pos"`
}

// SET_BLOCK (viewer -> server): place or remove one voxel.
type SetBlockMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Pos             [3]int `json:"pos"`
	Block           string `json:"block"`
}

// SET_RENDER_DISTANCE (viewer -> server)
type SetRenderDistanceMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Distance        int    `json:"distance"`
}

// CHUNK_MESH (server -> viewer): one chunk's full geometry. Sent when a
// chunk's mesh is first built and again after every rebuild.
type ChunkMeshMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	CX              int        `json:"cx"`
	CZ              int        `json:"cz"`
	Origin          [3]float32 `json:"origin"`
	Geometry        Geometry   `json:"geometry"`
}

// CHUNK_EVICT (server -> viewer): release the chunk's buffers.
type ChunkEvictMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	CX              int    `json:"cx"`
	CZ              int    `json:"cz"`
}

// ACK (server -> viewer): outcome of a viewer request.
type AckMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	AckFor          string `json:"ack_for"`
	Accepted        bool   `json:"accepted"`
	Code            string `json:"code,omitempty"`
	Message         string `json:"message,omitempty"`
}
