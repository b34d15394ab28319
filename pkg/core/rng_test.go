package core

import "testing"

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 256; i++ {
		if a.Bool() != b.Bool() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestRNGSeedMatters(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)
	same := 0
	const draws = 256
	for i := 0; i < draws; i++ {
		if a.IntN(1000) == b.IntN(1000) {
			same++
		}
	}
	if same == draws {
		t.Fatalf("different seeds produced identical streams")
	}
}

func TestRNGIntNRange(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if n := r.IntN(10); n < 0 || n >= 10 {
			t.Fatalf("IntN(10) = %d, out of range", n)
		}
	}
}

func TestRNGSource(t *testing.T) {
	r := NewRNG(9)
	if r.Source() == nil {
		t.Fatal("Source returned nil")
	}
	want := NewRNG(9).Source().Uint64()
	if got := r.Source().Uint64(); got != want {
		t.Fatalf("Source draw = %d, want %d", got, want)
	}
}
