package tensor

import (
	"testing"
)

func TestComputeStrides(t *testing.T) {
	s := Shape{2, 3, 4}
	strides := s.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("stride %d: got %d, want %d", i, strides[i], want[i])
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	cases := []struct {
		a, b, want Shape
		broadcast  bool
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false},
		{Shape{2, 3}, Shape{3}, Shape{2, 3}, true},
		{Shape{2, 1}, Shape{1, 4}, Shape{2, 4}, true},
		{Shape{4, 1, 5}, Shape{3, 1}, Shape{4, 3, 5}, true},
	}

	for _, tc := range cases {
		got, broadcast, err := BroadcastShapes(tc.a, tc.b)
		if err != nil {
			t.Fatalf("BroadcastShapes(%v, %v) failed: %v", tc.a, tc.b, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if broadcast != tc.broadcast {
			t.Errorf("BroadcastShapes(%v, %v) broadcast = %v, want %v", tc.a, tc.b, broadcast, tc.broadcast)
		}
	}
}

func TestBroadcastShapesIncompatible(t *testing.T) {
	if _, _, err := BroadcastShapes(Shape{2, 3}, Shape{2, 4}); err == nil {
		t.Error("expected error for incompatible shapes")
	}
}

func TestPadSourceIndex(t *testing.T) {
	// Axis of size 3 padded by 2: padded positions 0..6.
	cases := []struct {
		mode PadMode
		want []int // source per padded position, -1 for no source
	}{
		{PadZeros, []int{-1, -1, 0, 1, 2, -1, -1}},
		{PadReflect, []int{2, 1, 0, 1, 2, 1, 0}},
		{PadReplicate, []int{0, 0, 0, 1, 2, 2, 2}},
		{PadCircular, []int{1, 2, 0, 1, 2, 0, 1}},
	}

	for _, tc := range cases {
		for p, want := range tc.want {
			src, ok := PadSourceIndex(p, 3, 2, tc.mode)
			if want == -1 {
				if ok {
					t.Errorf("%v position %d: expected no source, got %d", tc.mode, p, src)
				}
				continue
			}
			if !ok || src != want {
				t.Errorf("%v position %d: got (%d, %v), want (%d, true)", tc.mode, p, src, ok, want)
			}
		}
	}
}
