// Package eval provides scoring helpers shared by search drivers: the
// decisive-score bounds and a classical tapered piece-square-table scorer
// used for move ordering, independent of the NNUE evaluation in
// internal/nnue.
package eval

import "github.com/dkristiansen/zugzwang/internal/board"

// Score bounds. These sit outside the normal NNUE output range and mark
// forced wins/losses to a search driver.
const (
	LowestEval  = -30000
	HighestEval = 30000
	MateScore   = HighestEval
)

// piecePhase weights used for the middlegame/endgame taper. Pawns and kings
// don't contribute.
var piecePhase = [6]int{0, 1, 1, 2, 4, 0}

const maxPhase = 24

// Phase returns the game phase of pos, clamped to [0, 24]: 24 is a fresh
// middlegame (both sides have all their minor/major pieces), 0 is a bare
// king-and-pawn endgame.
func Phase(pos *board.Position) int {
	phase := 0
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Knight; pt <= board.Queen; pt++ {
			phase += pos.Pieces[c][pt].PopCount() * piecePhase[pt]
		}
	}
	if phase > maxPhase {
		phase = maxPhase
	}
	return phase
}

// GetPieceScore returns the tapered piece-square value of the piece on sq,
// from White's perspective (negate for Black). phase is the position's
// current Phase(); callers that evaluate many squares in one position
// should compute it once and pass it in.
func GetPieceScore(pos *board.Position, sq board.Square, phase int) int {
	p := pos.PieceAt(sq)
	if p == board.NoPiece {
		return 0
	}

	// The PST arrays read rank 8 first, so index 0 is a8: a White piece's
	// square must be mirrored before lookup, a Black piece's used as is.
	kind := p.Type()
	pstSq := sq
	if p.Color() == board.White {
		pstSq = sq.Mirror()
	}

	var mg, eg int
	if kind == board.King {
		mg, eg = kingMidgamePST[pstSq], kingEndgamePST[pstSq]
	} else {
		mg, eg = psts[kind][pstSq], psts[kind][pstSq]
	}

	score := (mg*phase + eg*(maxPhase-phase)) / maxPhase
	if p.Color() == board.Black {
		return -score
	}
	return score
}
