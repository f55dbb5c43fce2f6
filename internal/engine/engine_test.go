package engine

import (
	"errors"
	"testing"

	"github.com/hailam/deepmate/internal/board"
)

func applyLine(t *testing.T, b *board.Board, line ...string) {
	t.Helper()
	for _, s := range line {
		m, err := board.ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		b.MakeMove(m)
	}
}

func TestFindBestMoveStartingPosition(t *testing.T) {
	b := board.New()
	e := New(16)

	m, score, err := e.FindBestMove(b, board.White, 2)
	if err != nil {
		t.Fatalf("FindBestMove: %v", err)
	}
	if m == board.NoMove {
		t.Fatal("no move returned for the starting position")
	}
	if score > 5 || score < -5 {
		t.Errorf("implausible starting-position score %v", score)
	}
	t.Logf("best move %s (%.2f)", m, score)
}

// TestFindBestMoveMateInOne sets up the position before the Fool's Mate
// queen strike; the engine must find d8h4.
func TestFindBestMoveMateInOne(t *testing.T) {
	b := board.New()
	applyLine(t, b, "f2f3", "e7e5", "g2g4")

	e := New(16)
	m, score, err := e.FindBestMove(b, board.Black, 2)
	if err != nil {
		t.Fatalf("FindBestMove: %v", err)
	}

	want := board.Move{From: board.D8, To: board.H4, Promotion: board.NoPieceType}
	if m != want {
		t.Errorf("best move = %v, want %v", m, want)
	}
	if score < mateScore-100 {
		t.Errorf("score = %v, want a mate score", score)
	}
}

func TestFindBestMoveNoMoves(t *testing.T) {
	b := board.New()
	applyLine(t, b, "f2f3", "e7e5", "g2g4", "d8h4") // Fool's Mate delivered

	e := New(16)
	_, _, err := e.FindBestMove(b, board.White, 2)
	if !errors.Is(err, ErrNoMoves) {
		t.Errorf("err = %v, want ErrNoMoves", err)
	}
}

func TestFindBestMoveTakesHangingQueen(t *testing.T) {
	b := board.NewEmpty()
	b.Place(board.WhiteKing, board.A1)
	b.Place(board.WhiteQueen, board.D1)
	b.Place(board.BlackKing, board.H8)
	b.Place(board.BlackQueen, board.D5)

	e := New(16)
	m, score, err := e.FindBestMove(b, board.White, 2)
	if err != nil {
		t.Fatalf("FindBestMove: %v", err)
	}

	want := board.Move{From: board.D1, To: board.D5, Promotion: board.NoPieceType}
	if m != want {
		t.Errorf("best move = %v, want queen takes queen %v", m, want)
	}
	if score < 7 {
		t.Errorf("score = %v, want a winning material score", score)
	}
}

// TestSearchPrefersQuickerMate: a mate-in-one position searched deeper must
// still report the immediate mate, not a slower one, thanks to the
// mate-distance term in the terminal score.
func TestSearchPrefersQuickerMate(t *testing.T) {
	// White: Kg6, Qb7; Black: Kh8. Qh7 and Qb8 both mate at once.
	b := board.NewEmpty()
	b.Place(board.WhiteKing, board.G6)
	b.Place(board.WhiteQueen, board.B7)
	b.Place(board.BlackKing, board.H8)

	e := New(16)
	m, score, err := e.FindBestMove(b, board.White, 4)
	if err != nil {
		t.Fatalf("FindBestMove: %v", err)
	}

	b.MakeMove(m)
	if !b.IsCheckmate(board.Black) {
		t.Errorf("best move %v does not mate immediately", m)
	}
	if score < mateScore-1.5 {
		t.Errorf("score = %v, want the mate-in-one score %v", score, mateScore-1)
	}
}

func TestPerftThroughEngine(t *testing.T) {
	b := board.New()
	if got := Perft(b, board.White, 3); got != 8902 {
		t.Errorf("Perft(3) = %d, want 8902", got)
	}
}

// TestSearchDeterministicBoard verifies a search leaves the caller's board
// untouched: root tasks work on clones.
func TestSearchDeterministicBoard(t *testing.T) {
	b := board.New()
	hash := b.Hash()
	history := b.HistoryLen()

	e := New(16)
	if _, _, err := e.FindBestMove(b, board.White, 2); err != nil {
		t.Fatalf("FindBestMove: %v", err)
	}

	if b.Hash() != hash {
		t.Error("search modified the root board's hash")
	}
	if b.HistoryLen() != history {
		t.Error("search left moves on the root board's history")
	}
}

func TestQuiescenceStandPatCutoff(t *testing.T) {
	// With no forcing moves, quiescence must return the static evaluation
	// bounded by the window.
	b := board.NewEmpty()
	b.Place(board.WhiteKing, board.E1)
	b.Place(board.BlackKing, board.E8)
	b.Place(board.WhitePawn, board.A3)

	s := &searcher{tt: NewTranspositionTable(1)}

	static := EvaluateFor(b, board.White)
	got := s.quiescence(b, 0, -infinity, infinity, board.White)
	if got != static {
		t.Errorf("quiescence = %v, want stand pat %v", got, static)
	}

	if got := s.quiescence(b, 0, -infinity, 1.0, board.White); got != 1.0 {
		t.Errorf("quiescence = %v, want beta cutoff at 1.0", got)
	}
}
