package game

import (
	"fmt"
	"strings"

	"github.com/hailam/deepmate/internal/board"
)

// Render returns the text diagram of the position with file and rank
// legends, White at the bottom.
func Render(b *board.Board) string {
	var sb strings.Builder

	sb.WriteString("  a b c d e f g h\n")
	sb.WriteString(" +-----------------+\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d| ", 8-row)
		for col := 0; col < 8; col++ {
			p := b.PieceAt(board.NewSquare(row, col))
			if p == board.NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(" +-----------------+\n")

	return sb.String()
}
