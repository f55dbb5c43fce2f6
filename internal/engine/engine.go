package engine

import (
	"errors"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/deepmate/internal/board"
)

// ErrNoMoves is returned by FindBestMove when the side to move has no legal
// moves; the caller decides between checkmate and stalemate from the check
// status.
var ErrNoMoves = errors.New("engine: no legal moves")

// Engine is the chess AI engine. The transposition table lives for the
// engine's lifetime and is shared by all search tasks.
type Engine struct {
	tt *TranspositionTable
}

// New creates an engine with a transposition table of the given size in MB.
func New(ttSizeMB int) *Engine {
	return &Engine{tt: NewTranspositionTable(ttSizeMB)}
}

// FindBestMove runs iterative deepening to maxDepth and returns the best
// move for the given side together with the last iteration's score (in pawn
// units, from that side's perspective).
//
// At each depth every root move is searched as its own task on a cloned
// board; the transposition table is the only state shared between tasks.
func (e *Engine) FindBestMove(b *board.Board, side board.Color, maxDepth int) (board.Move, float64, error) {
	moves := b.LegalMoves(side, false)
	if len(moves) == 0 {
		return board.NoMove, 0, ErrNoMoves
	}

	if maxDepth < 1 {
		maxDepth = 1
	}

	bestMove := board.NoMove
	var bestScore float64

	for depth := 1; depth <= maxDepth; depth++ {
		start := time.Now()

		OrderMoves(b, moves)
		promoteToFront(moves, bestMove)

		scores := make([]float64, len(moves))
		var g errgroup.Group
		g.SetLimit(runtime.NumCPU())

		for i, m := range moves {
			g.Go(func() error {
				child := b.Clone()
				child.MakeMove(m)
				s := &searcher{tt: e.tt}
				scores[i] = -s.negamax(child, depth-1, 1, -infinity, infinity, side.Other())
				return nil
			})
		}
		_ = g.Wait() // tasks never return errors

		best := 0
		for i := range scores {
			if scores[i] > scores[best] {
				best = i
			}
		}
		bestMove = moves[best]
		bestScore = scores[best]

		log.Debug().
			Int("depth", depth).
			Float64("score", bestScore).
			Stringer("move", bestMove).
			Dur("elapsed", time.Since(start)).
			Msg("search iteration")
	}

	return bestMove, bestScore, nil
}

// promoteToFront moves m to the head of the list, keeping the rest in
// order. The previous iteration's best move seeds the next one.
func promoteToFront(moves []board.Move, m board.Move) {
	if m == board.NoMove {
		return
	}
	for i, cur := range moves {
		if cur == m {
			copy(moves[1:i+1], moves[:i])
			moves[0] = m
			return
		}
	}
}

// Evaluate exposes the static evaluation for the outer driver, from White's
// perspective.
func (e *Engine) Evaluate(b *board.Board) float64 {
	return Evaluate(b)
}

// Perft counts leaf nodes of the legal move tree at the given depth for the
// side to move. Used to validate move generation.
func Perft(b *board.Board, c board.Color, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := b.LegalMoves(c, false)
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		b.MakeMove(m)
		nodes += Perft(b, c.Other(), depth-1)
		b.UnmakeMove()
	}
	return nodes
}
