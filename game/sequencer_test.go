package game

import (
	"math/rand"
	"testing"
)

func TestSequencerYieldsEveryNumberOnce(t *testing.T) {
	s := NewSequencer(rand.New(rand.NewSource(1)))

	seen := make(map[int]bool)
	for i := 0; i < MaxNumber; i++ {
		n, ok := s.Next()
		if !ok {
			t.Fatalf("sequencer exhausted after %d draws", i)
		}
		if n < 1 || n > MaxNumber {
			t.Fatalf("draw %d outside [1,%d]", n, MaxNumber)
		}
		if seen[n] {
			t.Fatalf("number %d drawn twice", n)
		}
		seen[n] = true
	}

	if _, ok := s.Next(); ok {
		t.Fatal("expected exhaustion after 75 draws")
	}
	if s.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", s.Remaining())
	}
}
