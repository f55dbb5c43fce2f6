package board

import "fmt"

// undoRecord stores everything needed to reverse one executed move.
type undoRecord struct {
	move     Move
	captured Piece // NoPiece if none; the en-passanted pawn for EP captures

	enPassant Square
	hash      uint64

	whiteKingMoved  bool
	whiteRookAMoved bool
	whiteRookHMoved bool
	blackKingMoved  bool
	blackRookAMoved bool
	blackRookHMoved bool
}

// Board represents a complete chess position: a 64-cell grid, castling
// moved-flags, the en passant target square, the running Zobrist hash and
// the undo history of executed moves.
type Board struct {
	grid [64]Piece

	sideToMove Color

	whiteKingMoved  bool
	whiteRookAMoved bool
	whiteRookHMoved bool
	blackKingMoved  bool
	blackRookAMoved bool
	blackRookHMoved bool

	// Target square for en passant (the square the capturing pawn moves
	// to), NoSquare if none.
	enPassant Square

	hash uint64

	history []undoRecord
}

// New returns a board set up to the starting position, White to move, with
// the hash computed.
func New() *Board {
	b := &Board{enPassant: NoSquare, sideToMove: White}
	for i := range b.grid {
		b.grid[i] = NoPiece
	}

	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, pt := range backRank {
		b.grid[NewSquare(0, col)] = NewPiece(pt, Black)
		b.grid[NewSquare(7, col)] = NewPiece(pt, White)
	}
	for col := 0; col < 8; col++ {
		b.grid[NewSquare(1, col)] = NewPiece(Pawn, Black)
		b.grid[NewSquare(6, col)] = NewPiece(Pawn, White)
	}

	b.hash = b.computeHash()
	return b
}

// NewEmpty returns an empty board with no castling rights, no en passant
// target and White to move. Intended for assembling arbitrary positions
// with Place and the setters.
func NewEmpty() *Board {
	b := &Board{
		enPassant:       NoSquare,
		sideToMove:      White,
		whiteKingMoved:  true,
		whiteRookAMoved: true,
		whiteRookHMoved: true,
		blackKingMoved:  true,
		blackRookAMoved: true,
		blackRookHMoved: true,
	}
	for i := range b.grid {
		b.grid[i] = NoPiece
	}
	b.hash = b.computeHash()
	return b
}

// Clone creates a deep copy of the board.
func (b *Board) Clone() *Board {
	nb := *b
	nb.history = make([]undoRecord, len(b.history))
	copy(nb.history, b.history)
	return &nb
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	return b.grid[sq]
}

// SideToMove returns the color to move.
func (b *Board) SideToMove() Color {
	return b.sideToMove
}

// EnPassantTarget returns the current en passant target square, or NoSquare.
func (b *Board) EnPassantTarget() Square {
	return b.enPassant
}

// Hash returns the current Zobrist hash of the position.
func (b *Board) Hash() uint64 {
	return b.hash
}

// HistoryLen returns the number of moves currently on the undo stack.
func (b *Board) HistoryLen() int {
	return len(b.history)
}

// Place puts a piece on a square and refreshes the hash. Setup only; it does
// not go through make/unmake.
func (b *Board) Place(p Piece, sq Square) {
	b.grid[sq] = p
	b.hash = b.computeHash()
}

// SetSideToMove sets the color to move and refreshes the hash.
func (b *Board) SetSideToMove(c Color) {
	b.sideToMove = c
	b.hash = b.computeHash()
}

// SetCastlingRights grants or revokes each castling right by adjusting the
// underlying moved-flags, then refreshes the hash.
func (b *Board) SetCastlingRights(whiteKingside, whiteQueenside, blackKingside, blackQueenside bool) {
	b.whiteKingMoved = !whiteKingside && !whiteQueenside
	b.whiteRookHMoved = !whiteKingside
	b.whiteRookAMoved = !whiteQueenside
	b.blackKingMoved = !blackKingside && !blackQueenside
	b.blackRookHMoved = !blackKingside
	b.blackRookAMoved = !blackQueenside
	b.hash = b.computeHash()
}

// SetEnPassantTarget sets the en passant target square and refreshes the
// hash.
func (b *Board) SetEnPassantTarget(sq Square) {
	b.enPassant = sq
	b.hash = b.computeHash()
}

// CanCastleKingside returns true if the given side still has kingside
// castling rights (king and H-rook unmoved).
func (b *Board) CanCastleKingside(c Color) bool {
	if c == White {
		return !b.whiteKingMoved && !b.whiteRookHMoved
	}
	return !b.blackKingMoved && !b.blackRookHMoved
}

// CanCastleQueenside returns true if the given side still has queenside
// castling rights (king and A-rook unmoved).
func (b *Board) CanCastleQueenside(c Color) bool {
	if c == White {
		return !b.whiteKingMoved && !b.whiteRookAMoved
	}
	return !b.blackKingMoved && !b.blackRookAMoved
}

// castleMask packs the four castling rights into the 4-bit Zobrist index:
// WK<<3 | WQ<<2 | BK<<1 | BQ.
func (b *Board) castleMask() int {
	mask := 0
	if b.CanCastleKingside(White) {
		mask |= 1 << 3
	}
	if b.CanCastleQueenside(White) {
		mask |= 1 << 2
	}
	if b.CanCastleKingside(Black) {
		mask |= 1 << 1
	}
	if b.CanCastleQueenside(Black) {
		mask |= 1
	}
	return mask
}

// computeHash recomputes the Zobrist hash of the position from scratch.
func (b *Board) computeHash() uint64 {
	var h uint64
	for sq := A8; sq <= H1; sq++ {
		p := b.grid[sq]
		if p != NoPiece {
			h ^= zobristPiece[p.Color()][p.Type()][sq]
		}
	}
	if b.enPassant != NoSquare {
		h ^= zobristEnPassant[b.enPassant.Col()]
	}
	h ^= zobristCastling[b.castleMask()]
	if b.sideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}

// RecomputeHash returns the from-scratch Zobrist hash of the current
// position without modifying the board.
func (b *Board) RecomputeHash() uint64 {
	return b.computeHash()
}

// MakeMove executes a pseudo-legal move, maintaining the hash incrementally
// and pushing an undo record. Legality (own king left safe) is the caller's
// concern.
func (b *Board) MakeMove(m Move) {
	b.history = append(b.history, undoRecord{
		move:            m,
		captured:        NoPiece,
		enPassant:       b.enPassant,
		hash:            b.hash,
		whiteKingMoved:  b.whiteKingMoved,
		whiteRookAMoved: b.whiteRookAMoved,
		whiteRookHMoved: b.whiteRookHMoved,
		blackKingMoved:  b.blackKingMoved,
		blackRookAMoved: b.blackRookAMoved,
		blackRookHMoved: b.blackRookHMoved,
	})
	u := &b.history[len(b.history)-1]

	moving := b.grid[m.From]
	c := moving.Color()
	newHash := b.hash
	oldMask := b.castleMask()
	epBefore := b.enPassant

	if b.enPassant != NoSquare {
		newHash ^= zobristEnPassant[b.enPassant.Col()]
	}
	b.enPassant = NoSquare

	if target := b.grid[m.To]; target != NoPiece {
		u.captured = target
		newHash ^= zobristPiece[target.Color()][target.Type()][m.To]
		b.grid[m.To] = NoPiece
	} else if moving.Type() == Pawn && m.To == epBefore {
		capSq := NewSquare(m.To.Row()-c.PawnDir(), m.To.Col())
		u.captured = b.grid[capSq]
		newHash ^= zobristPiece[u.captured.Color()][Pawn][capSq]
		b.grid[capSq] = NoPiece
	}

	if moving.Type() == King {
		if c == White {
			b.whiteKingMoved = true
		} else {
			b.blackKingMoved = true
		}
	}
	for _, sq := range [2]Square{m.From, m.To} {
		switch sq {
		case A1:
			b.whiteRookAMoved = true
		case H1:
			b.whiteRookHMoved = true
		case A8:
			b.blackRookAMoved = true
		case H8:
			b.blackRookHMoved = true
		}
	}

	newHash ^= zobristPiece[c][moving.Type()][m.From]
	b.grid[m.To] = moving
	b.grid[m.From] = NoPiece
	newHash ^= zobristPiece[c][moving.Type()][m.To]

	if moving.Type() == Pawn && abs(m.From.Row()-m.To.Row()) == 2 {
		b.enPassant = NewSquare((m.From.Row()+m.To.Row())/2, m.From.Col())
		newHash ^= zobristEnPassant[b.enPassant.Col()]
	}

	if moving.Type() == King && abs(m.To.Col()-m.From.Col()) == 2 {
		row := m.From.Row()
		var rookFrom, rookTo Square
		if m.To.Col() == 6 { // kingside
			rookFrom, rookTo = NewSquare(row, 7), NewSquare(row, 5)
		} else { // queenside
			rookFrom, rookTo = NewSquare(row, 0), NewSquare(row, 3)
		}
		b.grid[rookTo] = b.grid[rookFrom]
		b.grid[rookFrom] = NoPiece
		newHash ^= zobristPiece[c][Rook][rookFrom]
		newHash ^= zobristPiece[c][Rook][rookTo]
	}

	if m.IsPromotion() {
		newHash ^= zobristPiece[c][Pawn][m.To]
		b.grid[m.To] = NewPiece(m.Promotion, c)
		newHash ^= zobristPiece[c][m.Promotion][m.To]
	}

	if newMask := b.castleMask(); newMask != oldMask {
		newHash ^= zobristCastling[oldMask]
		newHash ^= zobristCastling[newMask]
	}

	b.hash = newHash ^ zobristSideToMove
	b.sideToMove = b.sideToMove.Other()
}

// UnmakeMove reverses the most recent move. The saved hash, en passant
// target and castling flags are restored verbatim from the undo record;
// piece motion is physically reversed. A no-op with empty history.
func (b *Board) UnmakeMove() {
	if len(b.history) == 0 {
		return
	}

	u := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	m := u.move

	b.hash = u.hash
	b.enPassant = u.enPassant
	b.whiteKingMoved = u.whiteKingMoved
	b.whiteRookAMoved = u.whiteRookAMoved
	b.whiteRookHMoved = u.whiteRookHMoved
	b.blackKingMoved = u.blackKingMoved
	b.blackRookAMoved = u.blackRookAMoved
	b.blackRookHMoved = u.blackRookHMoved
	b.sideToMove = b.sideToMove.Other()

	moved := b.grid[m.To]
	if m.IsPromotion() {
		b.grid[m.From] = NewPiece(Pawn, moved.Color())
	} else {
		b.grid[m.From] = moved
	}
	b.grid[m.To] = NoPiece

	piece := b.grid[m.From]
	if piece.Type() == King && abs(m.To.Col()-m.From.Col()) == 2 {
		row := m.From.Row()
		if m.To.Col() == 6 {
			b.grid[NewSquare(row, 7)] = b.grid[NewSquare(row, 5)]
			b.grid[NewSquare(row, 5)] = NoPiece
		} else {
			b.grid[NewSquare(row, 0)] = b.grid[NewSquare(row, 3)]
			b.grid[NewSquare(row, 3)] = NoPiece
		}
	}

	if u.captured != NoPiece {
		if piece.Type() == Pawn && m.To == u.enPassant {
			capSq := NewSquare(m.To.Row()-piece.Color().PawnDir(), m.To.Col())
			b.grid[capSq] = u.captured
		} else {
			b.grid[m.To] = u.captured
		}
	}
}

// NullMoveUndo stores state for unmake of a null move.
type NullMoveUndo struct {
	enPassant Square
	hash      uint64
}

// MakeNullMove passes the turn without moving: the side flips, the en
// passant target clears, and the hash is updated accordingly.
func (b *Board) MakeNullMove() NullMoveUndo {
	u := NullMoveUndo{enPassant: b.enPassant, hash: b.hash}

	if b.enPassant != NoSquare {
		b.hash ^= zobristEnPassant[b.enPassant.Col()]
	}
	b.enPassant = NoSquare

	b.sideToMove = b.sideToMove.Other()
	b.hash ^= zobristSideToMove

	return u
}

// UnmakeNullMove undoes a null move.
func (b *Board) UnmakeNullMove(u NullMoveUndo) {
	b.enPassant = u.enPassant
	b.hash = u.hash
	b.sideToMove = b.sideToMove.Other()
}

// pieceAttacks reports whether the piece on from attacks the square to,
// regardless of what occupies to.
func (b *Board) pieceAttacks(from, to Square) bool {
	p := b.grid[from]
	dRow := to.Row() - from.Row()
	dCol := to.Col() - from.Col()

	switch p.Type() {
	case Pawn:
		return dRow == p.Color().PawnDir() && (dCol == 1 || dCol == -1)
	case Knight:
		return (abs(dRow) == 2 && abs(dCol) == 1) || (abs(dRow) == 1 && abs(dCol) == 2)
	case King:
		return abs(dRow) <= 1 && abs(dCol) <= 1
	case Bishop:
		return abs(dRow) == abs(dCol) && b.rayClear(from, to)
	case Rook:
		return (dRow == 0 || dCol == 0) && b.rayClear(from, to)
	case Queen:
		return (abs(dRow) == abs(dCol) || dRow == 0 || dCol == 0) && b.rayClear(from, to)
	}
	return false
}

// rayClear reports whether all squares strictly between from and to are
// empty. from and to must share a rank, file or diagonal.
func (b *Board) rayClear(from, to Square) bool {
	dRow := sign(to.Row() - from.Row())
	dCol := sign(to.Col() - from.Col())

	r, c := from.Row()+dRow, from.Col()+dCol
	for r != to.Row() || c != to.Col() {
		if b.grid[NewSquare(r, c)] != NoPiece {
			return false
		}
		r += dRow
		c += dCol
	}
	return true
}

// IsAttacked returns true iff any piece of the given color attacks sq.
// A piece on sq itself does not count as attacking it.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	for from := A8; from <= H1; from++ {
		p := b.grid[from]
		if p == NoPiece || p.Color() != by || from == sq {
			continue
		}
		if b.pieceAttacks(from, sq) {
			return true
		}
	}
	return false
}

// KingSquare returns the square of the given side's king, or NoSquare if
// absent.
func (b *Board) KingSquare(c Color) Square {
	for sq := A8; sq <= H1; sq++ {
		if b.grid[sq] == NewPiece(King, c) {
			return sq
		}
	}
	return NoSquare
}

// InCheck returns true if the given side's king is attacked. A missing king
// reports check; it should not occur in legal play.
func (b *Board) InCheck(c Color) bool {
	ksq := b.KingSquare(c)
	if ksq == NoSquare {
		return true
	}
	return b.IsAttacked(ksq, c.Other())
}

// LegalMoves enumerates every move of the given color that leaves its own
// king safe. With capturesOnly, the list is restricted to moves whose
// destination is occupied, or is the en passant target from a pawn, or that
// carry a promotion.
func (b *Board) LegalMoves(c Color, capturesOnly bool) []Move {
	legal := make([]Move, 0, 64)

	for sq := A8; sq <= H1; sq++ {
		p := b.grid[sq]
		if p == NoPiece || p.Color() != c {
			continue
		}

		for _, m := range b.PseudoMoves(sq) {
			if capturesOnly {
				isCapture := b.grid[m.To] != NoPiece ||
					(p.Type() == Pawn && m.To == b.enPassant) ||
					m.IsPromotion()
				if !isCapture {
					continue
				}
			}

			b.MakeMove(m)
			safe := !b.InCheck(c)
			b.UnmakeMove()

			if safe {
				legal = append(legal, m)
			}
		}
	}

	return legal
}

// HasLegalMoves returns true if the given side has at least one legal move.
func (b *Board) HasLegalMoves(c Color) bool {
	return len(b.LegalMoves(c, false)) > 0
}

// IsCheckmate returns true if the given side is in check with no legal
// moves.
func (b *Board) IsCheckmate(c Color) bool {
	return b.InCheck(c) && !b.HasLegalMoves(c)
}

// IsStalemate returns true if the given side is not in check and has no
// legal moves.
func (b *Board) IsStalemate(c Color) bool {
	return !b.InCheck(c) && !b.HasLegalMoves(c)
}

// InsufficientMaterial returns true iff neither side can possibly deliver
// mate: no pawns, rooks or queens, at most one knight in total, no bishop
// alongside a knight, and all bishops on one square color.
func (b *Board) InsufficientMaterial() bool {
	knights, bishops := 0, 0
	bishopSquareColor := -1

	for sq := A8; sq <= H1; sq++ {
		p := b.grid[sq]
		if p == NoPiece || p.Type() == King {
			continue
		}

		switch p.Type() {
		case Queen, Rook, Pawn:
			return false
		case Knight:
			knights++
		case Bishop:
			bishops++
			squareColor := (sq.Row() + sq.Col()) % 2
			if bishopSquareColor == -1 {
				bishopSquareColor = squareColor
			} else if bishopSquareColor != squareColor {
				return false
			}
		}
	}

	if knights > 1 {
		return false
	}
	if knights > 0 && bishops > 0 {
		return false
	}
	return true
}

// Validate checks basic position sanity.
func (b *Board) Validate() error {
	whiteKings, blackKings := 0, 0
	for sq := A8; sq <= H1; sq++ {
		switch b.grid[sq] {
		case WhiteKing:
			whiteKings++
		case BlackKing:
			blackKings++
		}
	}
	if whiteKings != 1 {
		return fmt.Errorf("white must have exactly one king, has %d", whiteKings)
	}
	if blackKings != 1 {
		return fmt.Errorf("black must have exactly one king, has %d", blackKings)
	}
	return nil
}

// String returns a visual representation of the position.
func (b *Board) String() string {
	s := "\n"
	for row := 0; row < 8; row++ {
		s += fmt.Sprintf("%d  ", 8-row)
		for col := 0; col < 8; col++ {
			p := b.grid[NewSquare(row, col)]
			if p == NoPiece {
				s += ". "
			} else {
				s += p.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", b.sideToMove)
	s += fmt.Sprintf("En passant: %s\n", b.enPassant)
	s += fmt.Sprintf("Hash: %016x\n", b.hash)
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
