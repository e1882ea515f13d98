package geom

import "testing"

func TestDirection_ToVecAndReverse(t *testing.T) {
	cases := []struct {
		dir     Direction
		wantVec Vec
		wantRev Direction
	}{
		{Up, Vec{0, -1}, Down},
		{Down, Vec{0, 1}, Up},
		{Left, Vec{-1, 0}, Right},
		{Right, Vec{1, 0}, Left},
	}
	for _, tc := range cases {
		t.Run(tc.dir.String(), func(t *testing.T) {
			if got := tc.dir.ToVec(); got != tc.wantVec {
				t.Errorf("ToVec(%v) = %v; want %v", tc.dir, got, tc.wantVec)
			}
			if got := tc.dir.Reverse(); got != tc.wantRev {
				t.Errorf("Reverse(%v) = %v; want %v", tc.dir, got, tc.wantRev)
			}
			if got := tc.dir.Reverse().Reverse(); got != tc.dir {
				t.Errorf("Reverse is not involutive for %v: got %v", tc.dir, got)
			}
		})
	}
}

func TestDirection_SwapXY(t *testing.T) {
	cases := []struct {
		dir  Direction
		want Direction
	}{
		{Up, Left},
		{Down, Right},
		{Left, Up},
		{Right, Down},
	}
	for _, tc := range cases {
		if got := tc.dir.SwapXY(); got != tc.want {
			t.Errorf("SwapXY(%v) = %v; want %v", tc.dir, got, tc.want)
		}
	}
}

func TestVecToDir_PanicsOnDiagonal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on diagonal vector")
		}
	}()
	VecToDir(Vec{1, 1})
}

func TestVecToDir_PanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on zero vector")
		}
	}()
	VecToDir(Vec{0, 0})
}

func TestIsAxisAligned(t *testing.T) {
	cases := []struct {
		v    Vec
		want bool
	}{
		{Vec{0, 0}, false},
		{Vec{1, 1}, false},
		{Vec{1, 0}, true},
		{Vec{0, -3}, true},
	}
	for _, tc := range cases {
		if got := IsAxisAligned(tc.v); got != tc.want {
			t.Errorf("IsAxisAligned(%v) = %v; want %v", tc.v, got, tc.want)
		}
	}
}

func TestMagL1(t *testing.T) {
	if got := MagL1(Vec{-3, 4}); got != 7 {
		t.Errorf("MagL1 = %d; want 7", got)
	}
}

func TestIsBetween(t *testing.T) {
	e1, e2 := Vec{0, 0}, Vec{0, 10}
	cases := []struct {
		name string
		v    Vec
		want bool
	}{
		{"midpoint", Vec{0, 5}, true},
		{"at end1", Vec{0, 0}, false},
		{"at end2", Vec{0, 10}, false},
		{"outside", Vec{0, 15}, false},
		{"off axis", Vec{1, 5}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBetween(tc.v, e1, e2); got != tc.want {
				t.Errorf("IsBetween(%v) = %v; want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestSnapToAxis(t *testing.T) {
	cases := []struct {
		v    Vec
		want Vec
	}{
		{Vec{5, 2}, Vec{5, 0}},
		{Vec{2, 5}, Vec{0, 5}},
		{Vec{3, 3}, Vec{0, 3}}, // tie favors Y
		{Vec{-5, 1}, Vec{-5, 0}},
	}
	for _, tc := range cases {
		if got := SnapToAxis(tc.v); got != tc.want {
			t.Errorf("SnapToAxis(%v) = %v; want %v", tc.v, got, tc.want)
		}
	}
}

func TestLineIntersection(t *testing.T) {
	// A horizontal segment crossing a vertical segment at (5,5).
	a1, a2 := Vec{0, 5}, Vec{10, 5}
	b1, b2 := Vec{5, 0}, Vec{5, 10}
	got, ok := LineIntersection(a1, a2, b1, b2)
	if !ok || got != (Vec{5, 5}) {
		t.Fatalf("LineIntersection = %v, %v; want (5,5), true", got, ok)
	}

	// Parallel segments never intersect.
	if _, ok := LineIntersection(a1, a2, Vec{0, 6}, Vec{10, 6}); ok {
		t.Error("expected no intersection for parallel segments")
	}

	// Touching at an endpoint of the vertical segment is not a crossing.
	if _, ok := LineIntersection(Vec{0, 0}, Vec{10, 0}, Vec{5, 0}, Vec{5, 10}); ok {
		t.Error("expected no intersection when touching an endpoint")
	}
}

func TestDot(t *testing.T) {
	if got := Dot(Vec{2, 3}, Vec{4, -1}); got != 5 {
		t.Errorf("Dot = %d; want 5", got)
	}
}
