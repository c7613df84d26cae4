package game

import "testing"

func TestCatalogGeneratesValidCards(t *testing.T) {
	ct := NewCatalog(100)
	ct.Generate()

	cards := ct.All()
	if len(cards) != 100 {
		t.Fatalf("expected 100 cards, got %d", len(cards))
	}

	ranges := []struct {
		min, max int
	}{
		{1, 15}, {16, 30}, {31, 45}, {46, 60}, {61, 75},
	}

	for _, card := range cards {
		for col := 0; col < ColumnSize; col++ {
			nums := card.Column(col)
			if len(nums) != ColumnSize {
				t.Fatalf("card %d column %d has %d numbers", card.CardID, col, len(nums))
			}
			for i, n := range nums {
				if n < ranges[col].min || n > ranges[col].max {
					t.Fatalf("card %d column %d value %d outside [%d,%d]", card.CardID, col, n, ranges[col].min, ranges[col].max)
				}
				if i > 0 && nums[i] <= nums[i-1] {
					t.Fatalf("card %d column %d not strictly ascending: %v", card.CardID, col, nums)
				}
			}
		}
	}
}

func TestCatalogIDsAreSequential(t *testing.T) {
	ct := NewCatalog(20)
	ct.Generate()

	for i, card := range ct.All() {
		if card.CardID != i+1 {
			t.Fatalf("card at index %d has id %d", i, card.CardID)
		}
	}
}

func TestCatalogGenerateIsIdempotent(t *testing.T) {
	ct := NewCatalog(10)
	ct.Generate()
	first := ct.All()

	ct.Generate()
	second := ct.All()

	if len(second) != 10 {
		t.Fatalf("regeneration changed catalog size to %d", len(second))
	}
	for i := range first {
		if cardSignature(first[i]) != cardSignature(second[i]) {
			t.Fatalf("regeneration replaced card %d", first[i].CardID)
		}
	}
}

func TestCatalogHasNoDuplicateCards(t *testing.T) {
	ct := NewCatalog(100)
	ct.Generate()

	seen := make(map[string]int)
	for _, card := range ct.All() {
		sig := cardSignature(card)
		if other, ok := seen[sig]; ok {
			t.Fatalf("cards %d and %d are identical", other, card.CardID)
		}
		seen[sig] = card.CardID
	}
}

func TestCatalogGet(t *testing.T) {
	ct := NewCatalog(5)
	ct.Generate()

	card, ok := ct.Get(3)
	if !ok {
		t.Fatal("expected card 3 to exist")
	}
	if card.CardID != 3 {
		t.Fatalf("expected card id 3, got %d", card.CardID)
	}

	for _, id := range []int{0, -1, 6} {
		if _, ok := ct.Get(id); ok {
			t.Fatalf("expected no card for id %d", id)
		}
	}
}

func TestColumnOf(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "B"}, {15, "B"}, {16, "I"}, {30, "I"}, {31, "N"},
		{45, "N"}, {46, "G"}, {60, "G"}, {61, "O"}, {75, "O"},
		{0, ""}, {76, ""},
	}
	for _, tt := range tests {
		if got := ColumnOf(tt.n); got != tt.want {
			t.Fatalf("ColumnOf(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
