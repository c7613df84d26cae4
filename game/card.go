package game

// Standard American bingo board: 5 columns of 5 numbers, each column
// drawn from its own range of 15.
// B: 1-15, I: 16-30, N: 31-45, G: 46-60, O: 61-75
const (
	ColumnSize = 5
	MaxNumber  = 75
)

// Card is one fixed 5x5 grid assigned to a single player for a round.
// Columns are sorted ascending. Cards are immutable once generated.
type Card struct {
	CardID int   `json:"card_id"`
	B      []int `json:"B"`
	I      []int `json:"I"`
	N      []int `json:"N"`
	G      []int `json:"G"`
	O      []int `json:"O"`
}

// Column returns the column at index 0..4 (B through O).
func (c Card) Column(i int) []int {
	switch i {
	case 0:
		return c.B
	case 1:
		return c.I
	case 2:
		return c.N
	case 3:
		return c.G
	case 4:
		return c.O
	}
	return nil
}

// Numbers flattens the card into all 25 numbers in column order.
func (c Card) Numbers() []int {
	out := make([]int, 0, ColumnSize*ColumnSize)
	out = append(out, c.B...)
	out = append(out, c.I...)
	out = append(out, c.N...)
	out = append(out, c.G...)
	out = append(out, c.O...)
	return out
}

// ColumnOf returns the column letter for a drawn number, or "" if the
// number is outside 1-75.
func ColumnOf(n int) string {
	switch {
	case n >= 1 && n <= 15:
		return "B"
	case n >= 16 && n <= 30:
		return "I"
	case n >= 31 && n <= 45:
		return "N"
	case n >= 46 && n <= 60:
		return "G"
	case n >= 61 && n <= 75:
		return "O"
	}
	return ""
}
