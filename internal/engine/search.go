package engine

import (
	"github.com/hailam/deepmate/internal/board"
)

// Search constants
const (
	infinity  = 1e9
	mateScore = 10000.0
	maxPly    = 128

	// Cap on quiescence depth: check sequences can otherwise recurse
	// without consuming material.
	maxQuiescencePly = 32
)

// searcher runs a negamax search over one board. Each root task owns its
// own searcher and board; only the transposition table is shared.
type searcher struct {
	tt *TranspositionTable
}

// negamax is a fail-hard principal-variation search with transposition
// table, null-move pruning and check extension. Scores are in pawn units
// from the perspective of side.
func (s *searcher) negamax(b *board.Board, depth, ply int, alpha, beta float64, side board.Color) float64 {
	if ply >= maxPly {
		return EvaluateFor(b, side)
	}

	if entry, ok := s.tt.Probe(b.Hash()); ok && entry.Depth >= depth {
		switch entry.Flag {
		case TTExact:
			return entry.Score
		case TTLowerBound:
			if entry.Score >= beta {
				return beta
			}
		case TTUpperBound:
			if entry.Score <= alpha {
				return alpha
			}
		}
	}

	if depth == 0 {
		return s.quiescence(b, 0, alpha, beta, side)
	}

	inCheck := b.InCheck(side)

	// Null move pruning: pass the turn and probe a zero-width window at
	// reduced depth. Never when in check, since passing would skip the
	// escape.
	if depth >= 3 && !inCheck {
		undo := b.MakeNullMove()
		score := -s.negamax(b, depth-3, ply+1, -beta, -beta+1, side.Other())
		b.UnmakeNullMove(undo)
		if score >= beta {
			return beta
		}
	}

	moves := b.LegalMoves(side, false)
	if len(moves) == 0 {
		if inCheck {
			return -mateScore + float64(ply)
		}
		return 0
	}

	OrderMoves(b, moves)

	childDepth := depth - 1
	if inCheck {
		childDepth = depth // check extension
	}

	bestMove := board.NoMove
	flag := TTUpperBound

	for i, m := range moves {
		b.MakeMove(m)

		var score float64
		if i == 0 {
			score = -s.negamax(b, childDepth, ply+1, -beta, -alpha, side.Other())
		} else {
			score = -s.negamax(b, childDepth, ply+1, -alpha-1, -alpha, side.Other())
			if score > alpha && score < beta {
				score = -s.negamax(b, childDepth, ply+1, -beta, -alpha, side.Other())
			}
		}

		b.UnmakeMove()

		if score >= beta {
			s.tt.Store(b.Hash(), depth, beta, TTLowerBound, m)
			return beta
		}
		if score > alpha {
			alpha = score
			flag = TTExact
			bestMove = m
		}
	}

	s.tt.Store(b.Hash(), depth, alpha, flag, bestMove)
	return alpha
}

// quiescence extends the search over forcing moves (captures, promotions
// and checks) to settle tactics before the evaluation is trusted.
func (s *searcher) quiescence(b *board.Board, qply int, alpha, beta float64, side board.Color) float64 {
	standPat := EvaluateFor(b, side)
	if qply >= maxQuiescencePly {
		return standPat
	}

	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := s.forcingMoves(b, side)
	OrderMoves(b, moves)

	for _, m := range moves {
		b.MakeMove(m)
		score := -s.quiescence(b, qply+1, -beta, -alpha, side.Other())
		b.UnmakeMove()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// forcingMoves returns the legal captures (en passant included),
// promotions, and every other legal move that gives check.
func (s *searcher) forcingMoves(b *board.Board, side board.Color) []board.Move {
	all := b.LegalMoves(side, false)
	forcing := make([]board.Move, 0, len(all))

	for _, m := range all {
		isCapture := b.PieceAt(m.To) != board.NoPiece ||
			(b.PieceAt(m.From).Type() == board.Pawn && m.To == b.EnPassantTarget()) ||
			m.IsPromotion()
		if isCapture || givesCheck(b, m, side) {
			forcing = append(forcing, m)
		}
	}

	return forcing
}
