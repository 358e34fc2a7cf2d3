package protocol

import "testing"

func TestKnownCodes(t *testing.T) {
	for _, code := range []string{
		ErrProtoBadRequest,
		ErrBadBlock,
		ErrOutOfWorld,
		ErrBadRenderDistance,
		ErrInternal,
	} {
		if !IsKnownCode(code) {
			t.Fatalf("%s not registered as a known code", code)
		}
	}
	if !IsKnownCode("") {
		t.Fatalf("empty code must be accepted")
	}
	if IsKnownCode("E_MADE_UP") {
		t.Fatalf("unknown code accepted")
	}
}
