package core

import "testing"

func TestEnsureLenReusesCapacity(t *testing.T) {
	buf := make([]float64, 2, 8)
	got := EnsureLen(buf, 6)
	if len(got) != 6 || cap(got) != 8 {
		t.Fatalf("len/cap = %d/%d, want 6/8", len(got), cap(got))
	}
	if &got[0] != &buf[0] {
		t.Fatal("expected backing array to be reused")
	}
}

func TestEnsureLenGrows(t *testing.T) {
	got := EnsureLen(make([]float64, 1), 4)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got := EnsureLen(got, -1); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	left := []float64{1, 2, 3}
	right := []float64{-1, -2}

	inter := Interleave(nil, left, right)
	want := []float64{1, -1, 2, -2}
	if len(inter) != len(want) {
		t.Fatalf("len = %d, want %d", len(inter), len(want))
	}
	for i := range want {
		if inter[i] != want[i] {
			t.Fatalf("inter[%d] = %v, want %v", i, inter[i], want[i])
		}
	}

	l, r := Deinterleave(nil, nil, append(inter, 9))
	if len(l) != 2 || len(r) != 2 {
		t.Fatalf("len = %d/%d, want 2/2", len(l), len(r))
	}
	if l[1] != 2 || r[1] != -2 {
		t.Fatalf("got %v %v", l, r)
	}
}

func TestFrames(t *testing.T) {
	if got := Frames(make([]float64, 5), make([]float64, 3)); got != 3 {
		t.Fatalf("Frames = %d, want 3", got)
	}
	if got := Frames(nil, make([]float64, 3)); got != 0 {
		t.Fatalf("Frames = %d, want 0", got)
	}
}
