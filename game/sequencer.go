package game

import "math/rand"

// Sequencer yields the numbers 1..75 in a random order, each exactly
// once. One sequencer serves one round.
type Sequencer struct {
	order []int
	next  int
}

func NewSequencer(rng *rand.Rand) *Sequencer {
	nums := make([]int, MaxNumber)
	for i := range nums {
		nums[i] = i + 1
	}
	rng.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
	return &Sequencer{order: nums}
}

// Next returns the next undrawn number, or false once all 75 numbers
// have been drawn.
func (s *Sequencer) Next() (int, bool) {
	if s.next >= len(s.order) {
		return 0, false
	}
	n := s.order[s.next]
	s.next++
	return n, true
}

func (s *Sequencer) Remaining() int {
	return len(s.order) - s.next
}
