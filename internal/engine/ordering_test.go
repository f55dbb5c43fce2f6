package engine

import (
	"testing"

	"github.com/hailam/deepmate/internal/board"
)

func TestOrderMovesCapturesFirst(t *testing.T) {
	// Both the d4 pawn and the c4 knight can take the queen on e5; the pawn
	// (cheapest attacker) must come first, ahead of everything else.
	b := board.NewEmpty()
	b.Place(board.WhiteKing, board.A1)
	b.Place(board.BlackKing, board.H8)
	b.Place(board.WhitePawn, board.D4)
	b.Place(board.WhiteKnight, board.C4)
	b.Place(board.BlackQueen, board.E5)

	moves := b.LegalMoves(board.White, false)
	OrderMoves(b, moves)

	pawnTakes := board.Move{From: board.D4, To: board.E5, Promotion: board.NoPieceType}
	knightTakes := board.Move{From: board.C4, To: board.E5, Promotion: board.NoPieceType}

	if moves[0] != pawnTakes {
		t.Errorf("first move = %v, want pawn takes queen %v", moves[0], pawnTakes)
	}
	if moves[1] != knightTakes {
		t.Errorf("second move = %v, want knight takes queen %v", moves[1], knightTakes)
	}
}

func TestOrderMovesPromotionBeforeCapture(t *testing.T) {
	// A bare promotion (10000) outranks a rook-takes-pawn capture (9500).
	b := board.NewEmpty()
	b.Place(board.WhiteKing, board.A1)
	b.Place(board.BlackKing, board.H8)
	b.Place(board.WhitePawn, board.B7)
	b.Place(board.WhiteRook, board.D4)
	b.Place(board.BlackPawn, board.D6)

	moves := b.LegalMoves(board.White, false)
	OrderMoves(b, moves)

	if !moves[0].IsPromotion() {
		t.Errorf("first move = %v, want a promotion", moves[0])
	}
}

func TestOrderMovesCheckAboveQuiet(t *testing.T) {
	// The rook lift b1-b8 delivers check along the back rank and must sort
	// ahead of every quiet move.
	b := board.NewEmpty()
	b.Place(board.WhiteKing, board.A1)
	b.Place(board.BlackKing, board.H8)
	b.Place(board.WhiteRook, board.B1)

	moves := b.LegalMoves(board.White, false)
	OrderMoves(b, moves)

	check := board.Move{From: board.B1, To: board.B8, Promotion: board.NoPieceType}
	if moves[0] != check {
		t.Errorf("first move = %v, want checking move %v", moves[0], check)
	}
}

func TestOrderMovesQuietStable(t *testing.T) {
	// With only quiet non-checking moves available, ordering must preserve
	// the generation order.
	b := board.NewEmpty()
	b.Place(board.WhiteKing, board.A1)
	b.Place(board.BlackKing, board.H8)
	b.Place(board.WhiteKnight, board.D4)

	moves := b.LegalMoves(board.White, false)
	original := make([]board.Move, len(moves))
	copy(original, moves)

	OrderMoves(b, moves)

	for i := range moves {
		if moves[i] != original[i] {
			t.Fatalf("quiet move order changed at %d: %v -> %v", i, original[i], moves[i])
		}
	}
}

func TestOrderMovesEnPassantVictim(t *testing.T) {
	// An en passant capture lands on an empty square; the victim must still
	// count as a pawn, ranking it with regular pawn captures.
	b := board.New()
	for _, s := range []string{"e2e4", "a7a6", "e4e5", "d7d5"} {
		m, err := board.ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		b.MakeMove(m)
	}

	ep := board.Move{From: board.E5, To: board.D6, Promotion: board.NoPieceType}
	if got := scoreMove(b, ep); got < 100*100-100 {
		t.Errorf("en passant score = %d, want at least a pawn-takes-pawn score", got)
	}
}
