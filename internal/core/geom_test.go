package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Right() != 12 {
		t.Errorf("Right() = %d, expected 12", r.Right())
	}
	if r.Bottom() != 7 {
		t.Errorf("Bottom() = %d, expected 7", r.Bottom())
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.Centered(20, 6)

	if inner.X != 30 || inner.Y != 9 {
		t.Errorf("Centered() origin = (%d, %d), expected (30, 9)", inner.X, inner.Y)
	}
	if inner.W != 20 || inner.H != 6 {
		t.Errorf("Centered() size = %dx%d, expected 20x6", inner.W, inner.H)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if result := Clamp(tc.val, tc.lo, tc.hi); result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}

	if got := Clamp(1.5, 0.0, 1.0); got != 1.0 {
		t.Errorf("Clamp(1.5, 0, 1) = %v, expected 1", got)
	}
}
