package block

import "testing"

func TestEveryNonAirBlockHasAColor(t *testing.T) {
	for b := Block(1); b.Valid(); b++ {
		c := b.BaseColor()
		if c.A == 0 {
			t.Fatalf("%v: base color has zero alpha", b)
		}
		if c.R == 0 && c.G == 0 && c.B == 0 {
			t.Fatalf("%v: base color is black", b)
		}
	}
}

func TestAirHasNoColor(t *testing.T) {
	if Air.BaseColor() != (Color{}) {
		t.Fatalf("Air base color = %+v, want zero", Air.BaseColor())
	}
}

func TestShadedScalesRGBNotAlpha(t *testing.T) {
	base := Water.BaseColor()
	for f := Face(0); f < FaceCount; f++ {
		s := Water.Shaded(f)
		if s.A != base.A {
			t.Fatalf("face %d: alpha changed from %v to %v", f, base.A, s.A)
		}
		if s.R != base.R*Shade[f] || s.G != base.G*Shade[f] || s.B != base.B*Shade[f] {
			t.Fatalf("face %d: RGB not scaled by shade constant", f)
		}
	}
}

func TestBlockNames(t *testing.T) {
	names := map[Block]string{
		Air: "AIR", Grass: "GRASS", Dirt: "DIRT",
		Stone: "STONE", Water: "WATER", Sand: "SAND",
	}
	for b, want := range names {
		if got := b.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", b, got, want)
		}
	}
	if got := Block(200).String(); got != "UNKNOWN" {
		t.Fatalf("out-of-range String() = %q", got)
	}
}

func TestFromName(t *testing.T) {
	for b := Block(0); b.Valid(); b++ {
		got, ok := FromName(b.String())
		if !ok || got != b {
			t.Fatalf("FromName(%q) = %v,%v", b.String(), got, ok)
		}
	}
	if _, ok := FromName("LAVA"); ok {
		t.Fatalf("FromName accepted an unknown name")
	}
}
