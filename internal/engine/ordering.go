package engine

import (
	"sort"

	"github.com/hailam/deepmate/internal/board"
)

// Move ordering bonuses.
const (
	promotionOrderBonus = 10000
	checkOrderBonus     = 5000
)

type scoredMove struct {
	score int
	move  board.Move
}

// OrderMoves ranks a move list for the position in place, highest score
// first. A move's score is the sum of a promotion bonus, an MVV-LVA term for
// captures (100*victim - attacker in centipawns) and a bonus for giving
// check, so a capture of a minor piece or better outranks a bare promotion.
// The sort is stable, so quiet moves keep their generation order.
func OrderMoves(b *board.Board, moves []board.Move) {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{score: scoreMove(b, m), move: m}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	for i := range scored {
		moves[i] = scored[i].move
	}
}

// scoreMove computes the ordering score of a single move. Quiet non-checking
// non-promoting moves score zero.
func scoreMove(b *board.Board, m board.Move) int {
	attacker := b.PieceAt(m.From)

	score := 0
	if m.IsPromotion() {
		score += promotionOrderBonus
	}

	victimValue := 0
	if victim := b.PieceAt(m.To); victim != board.NoPiece {
		victimValue = victim.Value()
	} else if attacker.Type() == board.Pawn && m.To == b.EnPassantTarget() {
		victimValue = board.PieceValue[board.Pawn]
	}
	if victimValue > 0 {
		score += victimValue*100 - attacker.Value()
	}

	if givesCheck(b, m, attacker.Color()) {
		score += checkOrderBonus
	}

	return score
}

// givesCheck tests whether the move checks the opponent, by making the move
// and inspecting the resulting position.
func givesCheck(b *board.Board, m board.Move, mover board.Color) bool {
	b.MakeMove(m)
	check := b.InCheck(mover.Other())
	b.UnmakeMove()
	return check
}
