package engine

import (
	"math"
	"testing"

	"github.com/hailam/deepmate/internal/board"
)

func TestEvaluateStartingPosition(t *testing.T) {
	b := board.New()

	score := Evaluate(b)
	if math.Abs(score) > 1e-9 {
		t.Errorf("starting position evaluates to %v, want 0", score)
	}
}

// TestEvaluateKingAndPawn pins the evaluation of a minimal position:
// Ke1, pawn e4 vs Ke8, no castling rights. The pawn is passed and isolated;
// every king term cancels by symmetry.
//
//	material+PST  1.0 + 0.2
//	isolated     -0.20
//	passed       +0.75 (three ranks advanced)
//	center       +(0.10 occupancy + 0.05 attack on d5) * phase 0.025
func TestEvaluateKingAndPawn(t *testing.T) {
	b := board.NewEmpty()
	b.Place(board.WhiteKing, board.E1)
	b.Place(board.BlackKing, board.E8)
	b.Place(board.WhitePawn, board.E4)

	const want = 1.75375
	got := Evaluate(b)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Evaluate = %v, want %v", got, want)
	}
}

// TestEvaluateMirrorAntisymmetry checks that swapping colors and flipping
// the board negates the evaluation.
func TestEvaluateMirrorAntisymmetry(t *testing.T) {
	type placement struct {
		piece board.Piece
		sq    board.Square
	}

	position := []placement{
		{board.WhiteKing, board.E1},
		{board.WhiteQueen, board.D4},
		{board.WhiteKnight, board.B1},
		{board.WhitePawn, board.A2},
		{board.WhitePawn, board.E4},
		{board.BlackKing, board.G8},
		{board.BlackRook, board.F6},
		{board.BlackBishop, board.C5},
		{board.BlackPawn, board.H7},
	}

	a := board.NewEmpty()
	m := board.NewEmpty()
	for _, p := range position {
		a.Place(p.piece, p.sq)
		mirrored := board.NewPiece(p.piece.Type(), p.piece.Color().Other())
		m.Place(mirrored, p.sq.Mirror())
	}

	white, mirror := Evaluate(a), Evaluate(m)
	if math.Abs(white+mirror) > 1e-9 {
		t.Errorf("mirror asymmetry: %v vs %v (sum %v)", white, mirror, white+mirror)
	}
}

func TestEvaluateForNegatesForBlack(t *testing.T) {
	b := board.New()
	b.MakeMove(board.Move{From: board.E2, To: board.E4, Promotion: board.NoPieceType})

	white := EvaluateFor(b, board.White)
	black := EvaluateFor(b, board.Black)
	if math.Abs(white+black) > 1e-9 {
		t.Errorf("EvaluateFor perspectives do not negate: %v vs %v", white, black)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	b := board.NewEmpty()
	b.Place(board.WhiteKing, board.E1)
	b.Place(board.BlackKing, board.E8)
	b.Place(board.WhiteQueen, board.D1)

	if score := Evaluate(b); score < 8 {
		t.Errorf("an extra queen evaluates to %v, want >= 8", score)
	}
}

func TestGamePhase(t *testing.T) {
	if phase := gamePhase(board.New()); phase != 1.0 {
		t.Errorf("starting position phase = %v, want 1.0", phase)
	}

	bare := board.NewEmpty()
	bare.Place(board.WhiteKing, board.E1)
	bare.Place(board.BlackKing, board.E8)
	if phase := gamePhase(bare); phase != 0.0 {
		t.Errorf("bare kings phase = %v, want 0.0", phase)
	}
}

func TestDoubledPawnsPenalized(t *testing.T) {
	single := board.NewEmpty()
	single.Place(board.WhiteKing, board.E1)
	single.Place(board.BlackKing, board.E8)
	single.Place(board.WhitePawn, board.B2)
	single.Place(board.WhitePawn, board.C2)

	doubled := board.NewEmpty()
	doubled.Place(board.WhiteKing, board.E1)
	doubled.Place(board.BlackKing, board.E8)
	doubled.Place(board.WhitePawn, board.B2)
	doubled.Place(board.WhitePawn, board.B3)

	if Evaluate(doubled) >= Evaluate(single) {
		t.Errorf("doubled pawns (%v) should score below connected pawns (%v)",
			Evaluate(doubled), Evaluate(single))
	}
}
