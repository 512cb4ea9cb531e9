package delay

import "testing"

func TestNewClampsSize(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		d := New(n)
		if d.Capacity() != 1 {
			t.Fatalf("New(%d).Capacity() = %d, want 1", n, d.Capacity())
		}
	}
}

func TestZeroValueIsPassThrough(t *testing.T) {
	var d Line
	if got := d.Process(0.25); got != 0.25 {
		t.Fatalf("Process = %v, want 0.25", got)
	}
	d.SetDelay(4)
	d.Clear()
	if got := d.Process(-1); got != -1 {
		t.Fatalf("Process = %v, want -1", got)
	}
}

func TestIntegerDelay(t *testing.T) {
	d := New(8)
	d.SetDelay(3)

	in := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	for i, x := range in {
		got := d.Process(x)

		want := 0.0
		if i >= 3 {
			want = in[i-3]
		}
		if got != want {
			t.Fatalf("sample %d: got %v want %v", i, got, want)
		}
	}
}

func TestZeroDelayPassesThrough(t *testing.T) {
	d := New(4)
	d.SetDelay(0)
	for i := range 10 {
		x := float64(i + 1)
		if got := d.Process(x); got != x {
			t.Fatalf("sample %d: got %v want %v", i, got, x)
		}
	}
}

func TestDelayClampedToCapacity(t *testing.T) {
	d := New(5)
	d.SetDelay(100)
	if d.Delay() != 4 {
		t.Fatalf("Delay = %d, want 4", d.Delay())
	}
	d.SetDelay(-3)
	if d.Delay() != 0 {
		t.Fatalf("Delay = %d, want 0", d.Delay())
	}
}

func TestMaxDelay(t *testing.T) {
	d := New(4)
	d.SetDelay(3)

	d.Process(1)
	for i := range 2 {
		if got := d.Process(0); got != 0 {
			t.Fatalf("sample %d: got %v want 0", i+1, got)
		}
	}
	if got := d.Process(0); got != 1 {
		t.Fatalf("sample 3: got %v want 1", got)
	}
}

func TestSetSizeClearsAndKeepsDelay(t *testing.T) {
	d := New(8)
	d.SetDelay(2)
	for i := range 5 {
		d.Process(float64(i + 1))
	}

	d.SetSize(6)
	if d.Capacity() != 6 {
		t.Fatalf("Capacity = %d, want 6", d.Capacity())
	}
	if d.Delay() != 2 {
		t.Fatalf("Delay = %d, want 2", d.Delay())
	}

	out := []float64{d.Process(1), d.Process(0), d.Process(0)}
	want := []float64{0, 0, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	d.SetSize(2)
	if d.Delay() != 1 {
		t.Fatalf("Delay after shrink = %d, want 1", d.Delay())
	}
}

func TestReserveAvoidsReallocation(t *testing.T) {
	d := New(1)
	d.Reserve(1024)
	if cap(d.buffer) < 1024 {
		t.Fatalf("reserved = %d, want >= 1024", cap(d.buffer))
	}

	d.SetSize(1000)
	first := &d.buffer[0]

	d.SetSize(10)
	d.SetSize(1024)
	if &d.buffer[0] != first {
		t.Fatal("SetSize within the reservation reallocated")
	}

	allocs := testing.AllocsPerRun(10, func() {
		d.SetSize(512)
		d.SetDelay(100)
	})
	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	d := New(16)
	d.SetDelay(5)
	for i := range 20 {
		d.Process(float64(i))
	}

	d.Clear()
	d.Clear()

	if d.Delay() != 5 {
		t.Fatalf("Delay = %d, want 5", d.Delay())
	}
	for i := range 16 {
		if got := d.Process(0); got != 0 {
			t.Fatalf("sample %d after clear: got %v want 0", i, got)
		}
	}
}

func TestCursorsStayInBoundsAfterResize(t *testing.T) {
	d := New(7)
	d.SetDelay(6)
	for i := range 13 {
		d.Process(float64(i))
	}

	for _, n := range []int{3, 1, 0, 9} {
		d.SetSize(n)
		for range 25 {
			d.Process(1)
		}
		if d.writePos < 0 || d.writePos >= d.Capacity() || d.readPos < 0 || d.readPos >= d.Capacity() {
			t.Fatalf("cursor out of bounds: write=%d read=%d cap=%d", d.writePos, d.readPos, d.Capacity())
		}
	}
}
