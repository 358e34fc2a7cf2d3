package protocol

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
)

// GeometryEncoding identifies the wire encoding of the vertex arrays:
// little-endian scalars, zstd-compressed, base64 (std alphabet).
const GeometryEncoding = "zstd_b64"

// Geometry carries one chunk mesh on the wire. Positions hold 3 floats
// per vertex, Colors 4, Indices are 16-bit triangle-list entries.
type Geometry struct {
	Encoding    string `json:"encoding"`
	VertexCount int    `json:"vertex_count"`
	IndexCount  int    `json:"index_count"`
	Positions   string `json:"positions"`
	Colors      string `json:"colors"`
	Indices     string `json:"indices"`
}

var (
	geomEnc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	geomDec, _ = zstd.NewReader(nil)
)

func pack(b []byte) string {
	return base64.StdEncoding.EncodeToString(geomEnc.EncodeAll(b, nil))
}

func unpack(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return geomDec.DecodeAll(raw, nil)
}

func floatsToBytes(f []float32) []byte {
	b := make([]byte, 4*len(f))
	for i, v := range f {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

func bytesToFloats(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("float payload length %d not a multiple of 4", len(b))
	}
	f := make([]float32, len(b)/4)
	for i := range f {
		f[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return f, nil
}

func indicesToBytes(ix []uint16) []byte {
	b := make([]byte, 2*len(ix))
	for i, v := range ix {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	return b
}

func bytesToIndices(b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("index payload length %d not a multiple of 2", len(b))
	}
	ix := make([]uint16, len(b)/2)
	for i := range ix {
		ix[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return ix, nil
}

// EncodeGeometry packs raw mesh arrays for the wire.
func EncodeGeometry(positions, colors []float32, indices []uint16) Geometry {
	return Geometry{
		Encoding:    GeometryEncoding,
		VertexCount: len(positions) / 3,
		IndexCount:  len(indices),
		Positions:   pack(floatsToBytes(positions)),
		Colors:      pack(floatsToBytes(colors)),
		Indices:     pack(indicesToBytes(indices)),
	}
}

// DecodeGeometry reverses EncodeGeometry and validates the counts.
func DecodeGeometry(g Geometry) (positions, colors []float32, indices []uint16, err error) {
	if g.Encoding != GeometryEncoding {
		return nil, nil, nil, fmt.Errorf("unsupported geometry encoding %q", g.Encoding)
	}
	pb, err := unpack(g.Positions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("positions: %w", err)
	}
	cb, err := unpack(g.Colors)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("colors: %w", err)
	}
	ib, err := unpack(g.Indices)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("indices: %w", err)
	}
	if positions, err = bytesToFloats(pb); err != nil {
		return nil, nil, nil, err
	}
	if colors, err = bytesToFloats(cb); err != nil {
		return nil, nil, nil, err
	}
	if indices, err = bytesToIndices(ib); err != nil {
		return nil, nil, nil, err
	}
	if len(positions) != g.VertexCount*3 {
		return nil, nil, nil, fmt.Errorf("position count %d does not match vertex_count %d", len(positions)/3, g.VertexCount)
	}
	if len(colors) != g.VertexCount*4 {
		return nil, nil, nil, fmt.Errorf("color count %d does not match vertex_count %d", len(colors)/4, g.VertexCount)
	}
	if len(indices) != g.IndexCount {
		return nil, nil, nil, fmt.Errorf("index count %d does not match index_count %d", len(indices), g.IndexCount)
	}
	return positions, colors, indices, nil
}
