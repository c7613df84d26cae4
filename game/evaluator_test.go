package game

import "testing"

func testCard() Card {
	return Card{
		CardID: 1,
		B:      []int{1, 2, 3, 4, 5},
		I:      []int{16, 17, 18, 19, 20},
		N:      []int{31, 32, 33, 34, 35},
		G:      []int{46, 47, 48, 49, 50},
		O:      []int{61, 62, 63, 64, 65},
	}
}

func marks(nums ...int) map[int]bool {
	m := make(map[int]bool, len(nums))
	for _, n := range nums {
		m[n] = true
	}
	return m
}

func TestEvaluateWinPatterns(t *testing.T) {
	card := testCard()

	tests := []struct {
		name      string
		marked    map[int]bool
		pattern   Pattern
		lineType  LineType
		lineIndex int
	}{
		{
			name:    "four corners",
			marked:  marks(1, 5, 61, 65),
			pattern: PatternCorners,
		},
		{
			name:      "horizontal row 0",
			marked:    marks(1, 16, 31, 46, 61),
			pattern:   PatternLine,
			lineType:  LineHorizontal,
			lineIndex: 0,
		},
		{
			name:      "horizontal row 4",
			marked:    marks(5, 20, 35, 50, 65),
			pattern:   PatternLine,
			lineType:  LineHorizontal,
			lineIndex: 4,
		},
		{
			name:      "vertical column I",
			marked:    marks(16, 17, 18, 19, 20),
			pattern:   PatternLine,
			lineType:  LineVertical,
			lineIndex: 1,
		},
		{
			name:      "diagonal top-left",
			marked:    marks(1, 17, 33, 49, 65),
			pattern:   PatternLine,
			lineType:  LineDiagonal,
			lineIndex: 0,
		},
		{
			name:      "diagonal top-right",
			marked:    marks(5, 19, 33, 47, 61),
			pattern:   PatternLine,
			lineType:  LineDiagonal,
			lineIndex: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := EvaluateWin(card, tt.marked)
			if !res.Won {
				t.Fatalf("expected win for %v", tt.marked)
			}
			if res.Pattern != tt.pattern {
				t.Fatalf("expected pattern %q, got %q", tt.pattern, res.Pattern)
			}
			if res.Pattern == PatternLine {
				if res.LineType != tt.lineType || res.LineIndex != tt.lineIndex {
					t.Fatalf("expected %s line %d, got %s line %d", tt.lineType, tt.lineIndex, res.LineType, res.LineIndex)
				}
			}
		})
	}
}

func TestEvaluateWinCornersTakePriority(t *testing.T) {
	card := testCard()
	// Row 0 complete and all four corners marked; corners are checked
	// first.
	res := EvaluateWin(card, marks(1, 5, 16, 31, 46, 61, 65))
	if !res.Won || res.Pattern != PatternCorners {
		t.Fatalf("expected corners win, got %+v", res)
	}
}

func TestEvaluateWinFourOfFiveIsNotAWin(t *testing.T) {
	card := testCard()

	lines := [][]int{
		{1, 16, 31, 46, 61},  // horizontal 0
		{5, 20, 35, 50, 65},  // horizontal 4
		{1, 2, 3, 4, 5},      // vertical B
		{61, 62, 63, 64, 65}, // vertical O
		{1, 17, 33, 49, 65},  // diagonal TL
		{5, 19, 33, 47, 61},  // diagonal TR
	}

	for _, line := range lines {
		for drop := range line {
			subset := make([]int, 0, 4)
			for i, n := range line {
				if i != drop {
					subset = append(subset, n)
				}
			}
			if res := EvaluateWin(card, marks(subset...)); res.Won {
				t.Fatalf("4-of-5 subset %v evaluated as a win: %+v", subset, res)
			}
		}
	}
}

func TestEvaluateWinThreeCornersIsNotAWin(t *testing.T) {
	card := testCard()
	if res := EvaluateWin(card, marks(1, 5, 61)); res.Won {
		t.Fatalf("three corners evaluated as a win: %+v", res)
	}
}

func TestEvaluateWinEmptyMarks(t *testing.T) {
	if res := EvaluateWin(testCard(), marks()); res.Won {
		t.Fatalf("empty marks evaluated as a win: %+v", res)
	}
}
