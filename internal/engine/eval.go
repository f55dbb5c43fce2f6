// Package engine implements the search engine: evaluation, move ordering,
// quiescence, PVS negamax with a shared transposition table, and the
// parallel iterative-deepening root driver.
package engine

import (
	"github.com/hailam/deepmate/internal/board"
)

// Piece base values in pawn units.
const (
	pawnValue   = 1.0
	knightValue = 3.2
	bishopValue = 3.3
	rookValue   = 5.0
	queenValue  = 9.0
	kingValue   = 200.0
)

var pieceBaseValue = [6]float64{pawnValue, knightValue, bishopValue, rookValue, queenValue, kingValue}

// Pawn structure terms.
const (
	doubledPawnPenalty  = -0.35 // per extra pawn on a file
	isolatedPawnPenalty = -0.20 // per file with no friendly neighbors
)

// Passed pawn bonus indexed by the pawn's relative rank (0 = home rank).
var passedPawnBonus = [8]float64{0.0, 0.2, 0.4, 0.75, 1.25, 2.0, 3.0, 4.5}

// Mobility weight per pseudo-legal destination, by piece type. Knights and
// bishops count for more than rooks and queens so the term rewards
// development rather than early queen sorties.
var mobilityWeight = [6]float64{0, 0.04, 0.04, 0.02, 0.01, 0}

// King safety, scaled by the middlegame phase.
const (
	pawnShieldBonus = 0.15 // per friendly pawn directly shielding the king
	openFilePenalty = -0.20 // per fully open file among the king's three files
)

// Piece pair terms: the bishop pair grows with the endgame, the knight pair
// with the middlegame.
const (
	bishopPairBonus = 0.50
	knightPairBonus = 0.15
)

// Center control over d4, d5, e4 and e5, scaled by phase.
const (
	centerOccupancyBonus = 0.10
	centerAttackBonus    = 0.05
)

// Coordination bonus per non-pawn, non-king piece defended by a friendly
// piece.
const coordinationBonus = 0.05

// Development bonus per back-rank minor-piece home square no longer holding
// its starting piece, scaled by phase.
const developmentBonus = 0.10

// Penalty once a side has forfeited both castling rights.
const castlingForfeitPenalty = 0.2

// Game phase weights: pawns and minors 1, rooks 2, queens 4. The full
// starting material sums to totalPhase; the clamped ratio is 1.0 in the
// middlegame and 0.0 with bare kings.
var phaseWeight = [6]float64{1, 1, 1, 2, 4, 0}

const totalPhase = 40.0

var centerSquares = [4]board.Square{board.D4, board.D5, board.E4, board.E5}

// Piece-square tables, in pawn units, from White's perspective (row 0 is
// Black's back rank). Mirrored by row for Black. The queen has no table.
var pawnPST = [8][8]float64{
	{0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
	{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
	{0.1, 0.1, 0.2, 0.3, 0.3, 0.2, 0.1, 0.1},
	{0.05, 0.05, 0.1, 0.25, 0.25, 0.1, 0.05, 0.05},
	{0.0, 0.0, 0.0, 0.2, 0.2, 0.0, 0.0, 0.0},
	{0.05, -0.05, -0.1, 0.0, 0.0, -0.1, -0.05, 0.05},
	{0.05, 0.1, 0.1, -0.2, -0.2, 0.1, 0.1, 0.05},
	{0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
}

var knightPST = [8][8]float64{
	{-0.5, -0.4, -0.3, -0.3, -0.3, -0.3, -0.4, -0.5},
	{-0.4, -0.2, 0.0, 0.0, 0.0, 0.0, -0.2, -0.4},
	{-0.3, 0.0, 0.1, 0.15, 0.15, 0.1, 0.0, -0.3},
	{-0.3, 0.05, 0.15, 0.2, 0.2, 0.15, 0.05, -0.3},
	{-0.3, 0.0, 0.15, 0.2, 0.2, 0.15, 0.0, -0.3},
	{-0.3, 0.05, 0.1, 0.15, 0.15, 0.1, 0.05, -0.3},
	{-0.4, -0.2, 0.0, 0.05, 0.05, 0.0, -0.2, -0.4},
	{-0.5, -0.4, -0.3, -0.3, -0.3, -0.3, -0.4, -0.5},
}

var bishopPST = [8][8]float64{
	{-0.2, -0.1, -0.1, -0.1, -0.1, -0.1, -0.1, -0.2},
	{-0.1, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, -0.1},
	{-0.1, 0.0, 0.05, 0.1, 0.1, 0.05, 0.0, -0.1},
	{-0.1, 0.05, 0.05, 0.1, 0.1, 0.05, 0.05, -0.1},
	{-0.1, 0.0, 0.1, 0.1, 0.1, 0.1, 0.0, -0.1},
	{-0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, -0.1},
	{-0.1, 0.05, 0.0, 0.0, 0.0, 0.0, 0.05, -0.1},
	{-0.2, -0.1, -0.1, -0.1, -0.1, -0.1, -0.1, -0.2},
}

var rookPST = [8][8]float64{
	{0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
	{0.05, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.05},
	{-0.05, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, -0.05},
	{-0.05, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, -0.05},
	{-0.05, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, -0.05},
	{-0.05, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, -0.05},
	{-0.05, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, -0.05},
	{0.0, 0.0, 0.0, 0.05, 0.05, 0.0, 0.0, 0.0},
}

// King tables: hide in the middlegame, activate in the endgame. Blended by
// the phase factor.
var kingMidgamePST = [8][8]float64{
	{-0.3, -0.4, -0.4, -0.5, -0.5, -0.4, -0.4, -0.3},
	{-0.3, -0.4, -0.4, -0.5, -0.5, -0.4, -0.4, -0.3},
	{-0.3, -0.4, -0.4, -0.5, -0.5, -0.4, -0.4, -0.3},
	{-0.3, -0.4, -0.4, -0.5, -0.5, -0.4, -0.4, -0.3},
	{-0.2, -0.3, -0.3, -0.4, -0.4, -0.3, -0.3, -0.2},
	{-0.1, -0.2, -0.2, -0.2, -0.2, -0.2, -0.2, -0.1},
	{0.2, 0.2, 0.0, 0.0, 0.0, 0.0, 0.2, 0.2},
	{0.2, 0.3, 0.1, 0.0, 0.0, 0.1, 0.3, 0.2},
}

var kingEndgamePST = [8][8]float64{
	{-0.5, -0.4, -0.3, -0.2, -0.2, -0.3, -0.4, -0.5},
	{-0.3, -0.2, -0.1, 0.0, 0.0, -0.1, -0.2, -0.3},
	{-0.3, -0.1, 0.2, 0.3, 0.3, 0.2, -0.1, -0.3},
	{-0.3, -0.1, 0.3, 0.4, 0.4, 0.3, -0.1, -0.3},
	{-0.3, -0.1, 0.3, 0.4, 0.4, 0.3, -0.1, -0.3},
	{-0.3, -0.1, 0.2, 0.3, 0.3, 0.2, -0.1, -0.3},
	{-0.3, -0.3, 0.0, 0.0, 0.0, 0.0, -0.3, -0.3},
	{-0.5, -0.3, -0.3, -0.3, -0.3, -0.3, -0.3, -0.5},
}

// Evaluate returns the static evaluation of the position in pawn units from
// White's perspective. It is a pure function of the board's observable
// state.
func Evaluate(b *board.Board) float64 {
	phase := gamePhase(b)

	var score float64
	var pawnsPerFile [2][8]int

	for sq := board.A8; sq <= board.H1; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}

		c := p.Color()
		row, col := sq.Row(), sq.Col()
		pstRow := row
		if c == board.Black {
			pstRow = 7 - row
		}

		value := pieceBaseValue[p.Type()]
		switch p.Type() {
		case board.Pawn:
			pawnsPerFile[c][col]++
			value += pawnPST[pstRow][col]
		case board.Knight:
			value += knightPST[pstRow][col]
		case board.Bishop:
			value += bishopPST[pstRow][col]
		case board.Rook:
			value += rookPST[pstRow][col]
		case board.King:
			value += kingMidgamePST[pstRow][col]*phase + kingEndgamePST[pstRow][col]*(1-phase)
		}

		if w := mobilityWeight[p.Type()]; w != 0 {
			value += w * float64(len(b.PseudoMoves(sq)))
		}

		if c == board.White {
			score += value
		} else {
			score -= value
		}
	}

	score += pawnStructure(b, pawnsPerFile)
	score += kingSafety(b, pawnsPerFile, phase)
	score += piecePairs(b, phase)
	score += centerControl(b, phase)
	score += coordination(b)
	score += development(b, phase)

	if !b.CanCastleKingside(board.White) && !b.CanCastleQueenside(board.White) {
		score -= castlingForfeitPenalty
	}
	if !b.CanCastleKingside(board.Black) && !b.CanCastleQueenside(board.Black) {
		score += castlingForfeitPenalty
	}

	return score
}

// EvaluateFor returns the evaluation from the given side's perspective.
func EvaluateFor(b *board.Board, c board.Color) float64 {
	if c == board.Black {
		return -Evaluate(b)
	}
	return Evaluate(b)
}

// gamePhase returns the phase factor in [0, 1]: 1.0 with full starting
// material, 0.0 with bare kings.
func gamePhase(b *board.Board) float64 {
	var phase float64
	for sq := board.A8; sq <= board.H1; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		phase += phaseWeight[p.Type()]
	}
	phase /= totalPhase
	if phase > 1 {
		phase = 1
	}
	return phase
}

// pawnStructure scores doubled pawns, isolated pawns and passed pawns,
// positive for White.
func pawnStructure(b *board.Board, pawnsPerFile [2][8]int) float64 {
	var score float64

	for file := 0; file < 8; file++ {
		if n := pawnsPerFile[board.White][file]; n > 1 {
			score += float64(n-1) * doubledPawnPenalty
		}
		if n := pawnsPerFile[board.Black][file]; n > 1 {
			score -= float64(n-1) * doubledPawnPenalty
		}

		if pawnsPerFile[board.White][file] > 0 && isolatedOn(pawnsPerFile[board.White], file) {
			score += isolatedPawnPenalty
		}
		if pawnsPerFile[board.Black][file] > 0 && isolatedOn(pawnsPerFile[board.Black], file) {
			score -= isolatedPawnPenalty
		}
	}

	for sq := board.A8; sq <= board.H1; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece || p.Type() != board.Pawn {
			continue
		}

		c := p.Color()
		if !isPassed(b, sq, c) {
			continue
		}

		relRank := sq.Row()
		if c == board.White {
			relRank = 7 - sq.Row()
		}

		if c == board.White {
			score += passedPawnBonus[relRank]
		} else {
			score -= passedPawnBonus[relRank]
		}
	}

	return score
}

func isolatedOn(files [8]int, file int) bool {
	left := file == 0 || files[file-1] == 0
	right := file == 7 || files[file+1] == 0
	return left && right
}

// isPassed reports whether the pawn on sq has no enemy pawn on its own or
// an adjacent file on any square strictly in front of it.
func isPassed(b *board.Board, sq board.Square, c board.Color) bool {
	dir := c.PawnDir()
	enemyPawn := board.NewPiece(board.Pawn, c.Other())
	col := sq.Col()

	for row := sq.Row() + dir; row >= 0 && row < 8; row += dir {
		for dCol := -1; dCol <= 1; dCol++ {
			if col+dCol < 0 || col+dCol > 7 {
				continue
			}
			if b.PieceAt(board.NewSquare(row, col+dCol)) == enemyPawn {
				return false
			}
		}
	}
	return true
}

// kingSafety scores the pawn shield and open files around each king, scaled
// by the middlegame phase.
func kingSafety(b *board.Board, pawnsPerFile [2][8]int, phase float64) float64 {
	var score float64

	for c := board.White; c <= board.Black; c++ {
		sign := 1.0
		if c == board.Black {
			sign = -1.0
		}

		ksq := b.KingSquare(c)
		if ksq == board.NoSquare {
			continue
		}

		shieldRow := ksq.Row() + c.PawnDir()
		ownPawn := board.NewPiece(board.Pawn, c)

		for file := ksq.Col() - 1; file <= ksq.Col()+1; file++ {
			if file < 0 || file > 7 {
				continue
			}

			if shieldRow >= 0 && shieldRow < 8 && b.PieceAt(board.NewSquare(shieldRow, file)) == ownPawn {
				score += sign * pawnShieldBonus * phase
			}

			if pawnsPerFile[board.White][file] == 0 && pawnsPerFile[board.Black][file] == 0 {
				score += sign * openFilePenalty * phase
			}
		}
	}

	return score
}

// piecePairs scores the bishop pair (endgame-weighted) and the knight pair
// (middlegame-weighted).
func piecePairs(b *board.Board, phase float64) float64 {
	var bishops, knights [2]int
	for sq := board.A8; sq <= board.H1; sq++ {
		p := b.PieceAt(sq)
		switch p.Type() {
		case board.Bishop:
			bishops[p.Color()]++
		case board.Knight:
			knights[p.Color()]++
		}
	}

	var score float64
	for c := board.White; c <= board.Black; c++ {
		sign := 1.0
		if c == board.Black {
			sign = -1.0
		}
		if bishops[c] >= 2 {
			score += sign * bishopPairBonus * (1 - phase)
		}
		if knights[c] >= 2 {
			score += sign * knightPairBonus * phase
		}
	}
	return score
}

// centerControl scores occupancy of and attacks on the four central
// squares, scaled by phase.
func centerControl(b *board.Board, phase float64) float64 {
	var score float64

	for _, sq := range centerSquares {
		if p := b.PieceAt(sq); p != board.NoPiece {
			if p.Color() == board.White {
				score += centerOccupancyBonus * phase
			} else {
				score -= centerOccupancyBonus * phase
			}
		}
		if b.IsAttacked(sq, board.White) {
			score += centerAttackBonus * phase
		}
		if b.IsAttacked(sq, board.Black) {
			score -= centerAttackBonus * phase
		}
	}

	return score
}

// coordination scores each non-pawn, non-king piece defended by another
// friendly piece.
func coordination(b *board.Board) float64 {
	var score float64

	for sq := board.A8; sq <= board.H1; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece || p.Type() == board.Pawn || p.Type() == board.King {
			continue
		}

		if b.IsAttacked(sq, p.Color()) {
			if p.Color() == board.White {
				score += coordinationBonus
			} else {
				score -= coordinationBonus
			}
		}
	}

	return score
}

// development rewards vacating the minor pieces' home squares, scaled by
// phase.
func development(b *board.Board, phase float64) float64 {
	var score float64

	knightHomes := [2][2]board.Square{{board.B1, board.G1}, {board.B8, board.G8}}
	bishopHomes := [2][2]board.Square{{board.C1, board.F1}, {board.C8, board.F8}}

	for c := board.White; c <= board.Black; c++ {
		sign := 1.0
		if c == board.Black {
			sign = -1.0
		}

		for _, sq := range knightHomes[c] {
			if b.PieceAt(sq) != board.NewPiece(board.Knight, c) {
				score += sign * developmentBonus * phase
			}
		}
		for _, sq := range bishopHomes[c] {
			if b.PieceAt(sq) != board.NewPiece(board.Bishop, c) {
				score += sign * developmentBonus * phase
			}
		}
	}

	return score
}
