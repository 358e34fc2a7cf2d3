package noise

import "testing"

func TestValue3Deterministic(t *testing.T) {
	a := Value3(42, 3.5, 7.25, -1.5)
	for i := 0; i < 100; i++ {
		if b := Value3(42, 3.5, 7.25, -1.5); b != a {
			t.Fatalf("run %d: got %v, want %v", i, b, a)
		}
	}
}

func TestValue3Range(t *testing.T) {
	for x := -20; x <= 20; x++ {
		for z := -20; z <= 20; z++ {
			v := Value3(7, float64(x)*0.31, 0.5, float64(z)*0.17)
			if v < 0 || v >= 1 {
				t.Fatalf("Value3(%d,%d) = %v out of [0,1)", x, z, v)
			}
		}
	}
}

func TestValue3SeedChangesField(t *testing.T) {
	same := 0
	n := 0
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			n++
			if Value3(1, float64(x), 0, float64(z)) == Value3(2, float64(x), 0, float64(z)) {
				same++
			}
		}
	}
	if same == n {
		t.Fatalf("seed has no effect on the field")
	}
}

func TestFractal2Range(t *testing.T) {
	for x := -8; x <= 8; x++ {
		for z := -8; z <= 8; z++ {
			v := Fractal2(42, float64(x)*0.002, float64(z)*0.002)
			if v < 0 || v >= 1 {
				t.Fatalf("Fractal2(%d,%d) = %v out of [0,1)", x, z, v)
			}
		}
	}
}
