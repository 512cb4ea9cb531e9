package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	RequireIdentical(t, a, b)
}

func TestStereoNoiseDecorrelated(t *testing.T) {
	l, r := StereoNoise(7, 0.5, 32)
	same := true
	for i := range l {
		if l[i] != r[i] {
			same = false
			break
		}
	}

	if same {
		t.Fatal("left and right noise are identical")
	}
}

func TestStereoImpulse(t *testing.T) {
	l, r := StereoImpulse(8, 3)
	for i := range l {
		want := 0.0
		if i == 3 {
			want = 1
		}

		if l[i] != want || r[i] != want {
			t.Fatalf("index %d: got %v/%v, want %v", i, l[i], r[i], want)
		}
	}

	l, _ = StereoImpulse(4, 10)
	for i, v := range l {
		if v != 0 {
			t.Fatalf("l[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}

func TestClone(t *testing.T) {
	a := []float64{1, 2}
	b := Clone(a)
	b[0] = 5
	if a[0] != 1 {
		t.Fatal("Clone shares storage")
	}
}
