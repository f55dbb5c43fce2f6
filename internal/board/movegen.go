package board

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {1, 2}, {1, -2},
	{-2, 1}, {-2, -1}, {-1, 2}, {-1, -2},
}

var (
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	queenDirs  = [8][2]int{
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	}
)

// promotionOrder fixes the order promotion moves are generated in.
var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// PseudoMoves returns the mechanically valid moves for the piece on sq,
// ignoring whether the mover's own king is left in check. Returns nil for an
// empty square.
func (b *Board) PseudoMoves(sq Square) []Move {
	p := b.grid[sq]
	switch p.Type() {
	case Pawn:
		return b.pawnMoves(sq, p.Color())
	case Knight:
		return b.knightMoves(sq, p.Color())
	case Bishop:
		return b.slidingMoves(sq, p.Color(), bishopDirs[:])
	case Rook:
		return b.slidingMoves(sq, p.Color(), rookDirs[:])
	case Queen:
		return b.slidingMoves(sq, p.Color(), queenDirs[:])
	case King:
		return b.kingMoves(sq, p.Color())
	}
	return nil
}

// pawnMoves generates pushes, double pushes, captures, en passant captures
// and promotions. Any move reaching the last rank is expanded into the four
// promotion moves.
func (b *Board) pawnMoves(sq Square, c Color) []Move {
	moves := make([]Move, 0, 8)
	dir := c.PawnDir()
	row, col := sq.Row(), sq.Col()

	promoRow := 0
	startRow := 6
	if c == Black {
		promoRow = 7
		startRow = 1
	}

	addTo := func(to Square) {
		if to.Row() == promoRow {
			for _, pt := range promotionOrder {
				moves = append(moves, Move{From: sq, To: to, Promotion: pt})
			}
		} else {
			moves = append(moves, Move{From: sq, To: to, Promotion: NoPieceType})
		}
	}

	if onBoard(row+dir, col) {
		oneStep := NewSquare(row+dir, col)
		if b.grid[oneStep] == NoPiece {
			addTo(oneStep)

			if row == startRow {
				twoSteps := NewSquare(row+2*dir, col)
				if b.grid[twoSteps] == NoPiece {
					moves = append(moves, Move{From: sq, To: twoSteps, Promotion: NoPieceType})
				}
			}
		}
	}

	for _, dCol := range [2]int{-1, 1} {
		if !onBoard(row+dir, col+dCol) {
			continue
		}
		capSq := NewSquare(row+dir, col+dCol)
		target := b.grid[capSq]
		if target != NoPiece && target.Color() != c {
			addTo(capSq)
		} else if capSq == b.enPassant {
			moves = append(moves, Move{From: sq, To: capSq, Promotion: NoPieceType})
		}
	}

	return moves
}

func (b *Board) knightMoves(sq Square, c Color) []Move {
	moves := make([]Move, 0, 8)
	row, col := sq.Row(), sq.Col()

	for _, off := range knightOffsets {
		if !onBoard(row+off[0], col+off[1]) {
			continue
		}
		to := NewSquare(row+off[0], col+off[1])
		if b.grid[to] == NoPiece || b.grid[to].Color() != c {
			moves = append(moves, Move{From: sq, To: to, Promotion: NoPieceType})
		}
	}

	return moves
}

// slidingMoves walks each ray until the first occupied square, including it
// when it holds an enemy piece.
func (b *Board) slidingMoves(sq Square, c Color, dirs [][2]int) []Move {
	moves := make([]Move, 0, 16)
	row, col := sq.Row(), sq.Col()

	for _, d := range dirs {
		r, cl := row+d[0], col+d[1]
		for onBoard(r, cl) {
			to := NewSquare(r, cl)
			target := b.grid[to]
			if target == NoPiece {
				moves = append(moves, Move{From: sq, To: to, Promotion: NoPieceType})
			} else {
				if target.Color() != c {
					moves = append(moves, Move{From: sq, To: to, Promotion: NoPieceType})
				}
				break
			}
			r += d[0]
			cl += d[1]
		}
	}

	return moves
}

func (b *Board) kingMoves(sq Square, c Color) []Move {
	moves := make([]Move, 0, 10)
	row, col := sq.Row(), sq.Col()

	for dRow := -1; dRow <= 1; dRow++ {
		for dCol := -1; dCol <= 1; dCol++ {
			if dRow == 0 && dCol == 0 {
				continue
			}
			if !onBoard(row+dRow, col+dCol) {
				continue
			}
			to := NewSquare(row+dRow, col+dCol)
			if b.grid[to] == NoPiece || b.grid[to].Color() != c {
				moves = append(moves, Move{From: sq, To: to, Promotion: NoPieceType})
			}
		}
	}

	return append(moves, b.castlingMoves(sq, c)...)
}

// castlingMoves generates castling as a two-column king move. Castling is
// legal only when the king is not in check, the relevant moved-flags are
// clear, the squares between king and rook are empty, and the king's transit
// squares are not attacked.
func (b *Board) castlingMoves(sq Square, c Color) []Move {
	if b.InCheck(c) {
		return nil
	}

	var moves []Move
	row := sq.Row()
	opp := c.Other()

	if b.CanCastleKingside(c) {
		if b.grid[NewSquare(row, 5)] == NoPiece && b.grid[NewSquare(row, 6)] == NoPiece {
			if !b.IsAttacked(NewSquare(row, 5), opp) && !b.IsAttacked(NewSquare(row, 6), opp) {
				moves = append(moves, Move{From: sq, To: NewSquare(row, 6), Promotion: NoPieceType})
			}
		}
	}
	if b.CanCastleQueenside(c) {
		if b.grid[NewSquare(row, 1)] == NoPiece && b.grid[NewSquare(row, 2)] == NoPiece && b.grid[NewSquare(row, 3)] == NoPiece {
			if !b.IsAttacked(NewSquare(row, 2), opp) && !b.IsAttacked(NewSquare(row, 3), opp) {
				moves = append(moves, Move{From: sq, To: NewSquare(row, 2), Promotion: NoPieceType})
			}
		}
	}

	return moves
}
