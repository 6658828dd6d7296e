package game

import "testing"

func TestRandomSourceIsDeterministic(t *testing.T) {
	a := NewRandomSource(7)
	b := NewRandomSource(7)

	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatalf("sequences diverged at step %d", i)
		}
		if a.Float64() != b.Float64() {
			t.Fatalf("float sequences diverged at step %d", i)
		}
	}
	if a.Seed() != 7 {
		t.Errorf("Expected seed 7, got %d", a.Seed())
	}
}

func TestRandomSourceRanges(t *testing.T) {
	r := NewRandomSource(99)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(5); v < 0 || v >= 5 {
			t.Fatalf("Intn(5) out of range: %d", v)
		}
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestNewRandomSourceFromEntropy(t *testing.T) {
	fixed, err := NewRandomSourceFromEntropy(123)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fixed.Seed() != 123 {
		t.Errorf("Expected explicit seed to be kept, got %d", fixed.Seed())
	}

	random, err := NewRandomSourceFromEntropy(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if random == nil {
		t.Fatal("Expected a random source")
	}
}
