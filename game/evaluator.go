package game

// Pattern identifies the kind of winning arrangement.
type Pattern string

const (
	PatternCorners Pattern = "corners"
	PatternLine    Pattern = "line"
)

// LineType qualifies a line win.
type LineType string

const (
	LineHorizontal LineType = "horizontal"
	LineVertical   LineType = "vertical"
	LineDiagonal   LineType = "diagonal"
)

// WinResult describes the outcome of evaluating a card against a set
// of marked numbers.
type WinResult struct {
	Won       bool     `json:"hasWon"`
	Pattern   Pattern  `json:"pattern,omitempty"`
	LineType  LineType `json:"lineType,omitempty"`
	LineIndex int      `json:"lineIndex"`
}

// EvaluateWin checks a card's columns against the marked set. Patterns
// are checked in fixed priority order and the first match wins:
// four corners, horizontal lines top to bottom, vertical lines B to O,
// then the two diagonals. The evaluator is pure; the caller is
// responsible for only passing marks that correspond to drawn numbers.
func EvaluateWin(card Card, marked map[int]bool) WinResult {
	all := func(nums ...int) bool {
		for _, n := range nums {
			if !marked[n] {
				return false
			}
		}
		return true
	}

	// 1. Four corners
	if all(card.B[0], card.B[4], card.O[0], card.O[4]) {
		return WinResult{Won: true, Pattern: PatternCorners}
	}

	// 2. Horizontal lines
	for i := 0; i < ColumnSize; i++ {
		if all(card.B[i], card.I[i], card.N[i], card.G[i], card.O[i]) {
			return WinResult{Won: true, Pattern: PatternLine, LineType: LineHorizontal, LineIndex: i}
		}
	}

	// 3. Vertical lines
	for i := 0; i < ColumnSize; i++ {
		if all(card.Column(i)...) {
			return WinResult{Won: true, Pattern: PatternLine, LineType: LineVertical, LineIndex: i}
		}
	}

	// 4. Diagonal top-left to bottom-right
	if all(card.B[0], card.I[1], card.N[2], card.G[3], card.O[4]) {
		return WinResult{Won: true, Pattern: PatternLine, LineType: LineDiagonal, LineIndex: 0}
	}

	// 5. Diagonal top-right to bottom-left
	if all(card.B[4], card.I[3], card.N[2], card.G[1], card.O[0]) {
		return WinResult{Won: true, Pattern: PatternLine, LineType: LineDiagonal, LineIndex: 1}
	}

	return WinResult{}
}
