// Package game runs the interactive terminal driver: it alternates human
// and engine turns over a shared board, validates human input against the
// legal-move set, and declares terminal game states.
package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hailam/deepmate/internal/board"
	"github.com/hailam/deepmate/internal/engine"
)

// Result is the outcome of a finished game from the human's perspective.
type Result int

const (
	ResultAborted Result = iota
	ResultHumanWin
	ResultEngineWin
	ResultDraw
)

// Game holds one interactive session.
type Game struct {
	board      *board.Board
	engine     *engine.Engine
	humanColor board.Color
	depth      int

	in  *bufio.Scanner
	out io.Writer
}

// New creates a game on a fresh starting position.
func New(e *engine.Engine, humanColor board.Color, depth int, in io.Reader, out io.Writer) *Game {
	return &Game{
		board:      board.New(),
		engine:     e,
		humanColor: humanColor,
		depth:      depth,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// Board exposes the game's board.
func (g *Game) Board() *board.Board {
	return g.board
}

// Run plays one game to completion and returns the result. The loop ends on
// a terminal game state or on the literal input "exit".
func (g *Game) Run() Result {
	current := board.White

	for {
		fmt.Fprint(g.out, Render(g.board))

		switch {
		case g.board.IsCheckmate(current):
			fmt.Fprintf(g.out, "%s wins by checkmate!\n", current.Other())
			if current == g.humanColor {
				return ResultEngineWin
			}
			return ResultHumanWin
		case g.board.IsStalemate(current):
			fmt.Fprintln(g.out, "The game is a draw by stalemate.")
			return ResultDraw
		case g.board.InsufficientMaterial():
			fmt.Fprintln(g.out, "The game is a draw by insufficient material.")
			return ResultDraw
		}

		if current == g.humanColor {
			moved, quit := g.humanTurn(current)
			if quit {
				return ResultAborted
			}
			if !moved {
				continue // re-prompt without switching turns
			}
		} else {
			fmt.Fprintf(g.out, "%s's turn (engine is thinking...)\n", current)
			m, score, err := g.engine.FindBestMove(g.board, current, g.depth)
			if err != nil {
				// Unreachable after the terminal checks above.
				log.Error().Err(err).Msg("engine had no move")
				return ResultAborted
			}
			g.board.MakeMove(m)
			fmt.Fprintf(g.out, "Engine plays %s (eval %.2f)\n", m, score)
		}

		current = current.Other()
	}
}

// humanTurn reads and applies one human move. Returns moved=false when the
// input was invalid or illegal (the board is unchanged), quit=true on "exit"
// or end of input.
func (g *Game) humanTurn(current board.Color) (moved, quit bool) {
	fmt.Fprintf(g.out, "%s's turn. Enter your move (e.g., e2e4 or e7e8q): ", current)

	if !g.in.Scan() {
		return false, true
	}
	text := strings.TrimSpace(g.in.Text())
	if text == "exit" {
		return false, true
	}

	m, ok := g.readMove(text, current)
	if !ok {
		fmt.Fprintln(g.out, "Invalid or illegal move.")
		return false, false
	}

	for _, legal := range g.board.LegalMoves(current, false) {
		if legal == m {
			g.board.MakeMove(m)
			return true, false
		}
	}

	fmt.Fprintln(g.out, "Invalid or illegal move.")
	return false, false
}

// readMove parses the coordinate input and fills in the promotion piece,
// prompting for it when a promoting pawn move omits the letter. An
// unrecognized promotion letter defaults to queen.
func (g *Game) readMove(text string, current board.Color) (board.Move, bool) {
	if len(text) < 4 || len(text) > 5 {
		return board.NoMove, false
	}

	m, err := board.ParseMove(text[:4])
	if err != nil {
		return board.NoMove, false
	}
	if len(text) == 5 {
		m.Promotion = promotionFromLetter(text[4])
	}

	promotionRow := 0
	if current == board.Black {
		promotionRow = 7
	}

	piece := g.board.PieceAt(m.From)
	if piece.Type() == board.Pawn && m.To.Row() == promotionRow && !m.IsPromotion() {
		fmt.Fprint(g.out, "Promote to (Q, R, B, N): ")
		if g.in.Scan() {
			answer := strings.TrimSpace(g.in.Text())
			if answer != "" {
				m.Promotion = promotionFromLetter(answer[0])
			} else {
				m.Promotion = board.Queen
			}
		} else {
			m.Promotion = board.Queen
		}
	}

	return m, true
}

func promotionFromLetter(b byte) board.PieceType {
	switch b {
	case 'q', 'Q':
		return board.Queen
	case 'r', 'R':
		return board.Rook
	case 'b', 'B':
		return board.Bishop
	case 'n', 'N':
		return board.Knight
	}
	return board.Queen
}
