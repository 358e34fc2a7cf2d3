package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Edit requests.
	ErrBadBlock          = "E_BAD_BLOCK"
	ErrOutOfWorld        = "E_OUT_OF_WORLD"
	ErrBadRenderDistance = "E_BAD_RENDER_DISTANCE"

	ErrInternal = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest:   {},
	ErrBadBlock:          {},
	ErrOutOfWorld:        {},
	ErrBadRenderDistance: {},
	ErrInternal:          {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
