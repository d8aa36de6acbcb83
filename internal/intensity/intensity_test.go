package intensity

import (
	"math"
	"testing"
)

func TestAtOrigin(t *testing.T) {
	if got := At(0); got != 2 {
		t.Errorf("I(0) = %v, want 2", got)
	}
}

func TestAtFive(t *testing.T) {
	want := math.Exp(-2.5) * (1 + math.Cos(10))
	if got := At(5); got != want {
		t.Errorf("I(5) = %.15f, want %.15f", got, want)
	}
	t.Logf("I(5) = %.15f", want)
}

func TestPeriodic(t *testing.T) {
	for _, x := range []float64{0, 0.25, 1, 3.7, 5, 9.99} {
		a, b := At(x), At(x+Period)
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("I(%v)=%v but I(%v)=%v", x, a, x+Period, b)
		}
	}
}

func TestBounds(t *testing.T) {
	for i := 0; i <= 5000; i++ {
		x := float64(i) * 0.01
		v := At(x)
		if v < 0 || v > 2 {
			t.Fatalf("I(%v) = %v out of [0, 2]", x, v)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{9.5, 9.5},
		{10, 0},
		{12.5, 2.5},
		{-1, 9},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSample(t *testing.T) {
	xs, ys := Sample(0, 10, 100)
	if len(xs) != 101 || len(ys) != 101 {
		t.Fatalf("expected 101 samples, got %d/%d", len(xs), len(ys))
	}
	if xs[0] != 0 || xs[100] != 10 {
		t.Errorf("endpoints = %v, %v", xs[0], xs[100])
	}
	if ys[0] != 2 {
		t.Errorf("ys[0] = %v, want 2", ys[0])
	}
}
