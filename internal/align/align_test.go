package align

import "testing"

func TestUp(t *testing.T) {
	cases := []struct {
		n, alignment, want uint64
	}{
		{0, 1, 0},
		{7, 1, 7},
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{255, 256, 256},
		{256, 256, 256},
		{257, 256, 512},
	}
	for _, c := range cases {
		if got := Up(c.n, c.alignment); got != c.want {
			t.Errorf("Up(%d, %d) = %d, want %d", c.n, c.alignment, got, c.want)
		}
	}
}

func TestIsAligned(t *testing.T) {
	if !IsAligned(0, 8) || !IsAligned(16, 8) || !IsAligned(5, 1) {
		t.Error("expected aligned values to report aligned")
	}
	if IsAligned(9, 8) || IsAligned(2, 4) {
		t.Error("expected misaligned values to report misaligned")
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []uint64{1, 2, 4, 256, 1 << 40} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []uint64{0, 3, 6, 255, 1<<40 + 1} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true", n)
		}
	}
}
