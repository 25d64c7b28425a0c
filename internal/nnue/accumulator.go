package nnue

import "github.com/dkristiansen/zugzwang/internal/board"

// EvalState holds the two-perspective accumulator stack: one row of HLSize
// signed values per color per ply. Depth 0 is populated by Init; Update
// pushes a new depth and mutates it in place; Undo pops back to the prior
// depth without touching its (still valid) contents.
type EvalState struct {
	accumulators [NumColors][MaxPly][HLSize]int16
	current      int
}

// NewEvalState creates an empty evaluation state. Call Init before use.
func NewEvalState() *EvalState {
	return &EvalState{}
}

// Reset discards all history and returns to depth 0.
func (s *EvalState) Reset() {
	s.current = 0
}

// addFeature adds one column of ft weights to perspective p's accumulator at depth.
func (s *EvalState) addFeature(p, pieceColor board.Color, kind board.PieceType, sq board.Square, depth int, net *Network) {
	idx := FeatureIndex(p, pieceColor, kind, sq)
	row := &s.accumulators[p][depth]
	col := &net.FTWeights[idx]
	for i := 0; i < HLSize; i++ {
		row[i] += col[i]
	}
}

// removeFeature subtracts one column of ft weights from perspective p's
// accumulator at depth.
func (s *EvalState) removeFeature(p, pieceColor board.Color, kind board.PieceType, sq board.Square, depth int, net *Network) {
	idx := FeatureIndex(p, pieceColor, kind, sq)
	row := &s.accumulators[p][depth]
	col := &net.FTWeights[idx]
	for i := 0; i < HLSize; i++ {
		row[i] -= col[i]
	}
}

// Init resets the depth-0 accumulator for both perspectives to ft.bias, then
// adds a feature for every piece on the board.
func (s *EvalState) Init(pos *board.Position, net *Network) {
	s.current = 0

	for p := board.White; p <= board.Black; p++ {
		copy(s.accumulators[p][0][:], net.FTBias[:])
	}

	for c := board.White; c <= board.Black; c++ {
		for kind := board.Pawn; kind <= board.King; kind++ {
			pieces := pos.Pieces[c][kind]
			for pieces != 0 {
				sq := pieces.PopLSB()
				s.addFeature(board.White, c, kind, sq, 0, net)
				s.addFeature(board.Black, c, kind, sq, 0, net)
			}
		}
	}
}

// Update copies the current accumulator forward to a new depth and mutates
// the copy for both perspectives according to the move kind, per the
// feature-transformer update table. stm is the color that made the move;
// movedPiece/capturedPiece name the piece kinds involved (capturedPiece is
// ignored for non-captures).
func (s *EvalState) Update(m board.Move, stm board.Color, movedPiece, capturedPiece board.PieceType, net *Network) {
	if s.current+1 >= MaxPly {
		panic("nnue: accumulator stack overflow")
	}

	prev, next := s.current, s.current+1
	s.accumulators[board.White][next] = s.accumulators[board.White][prev]
	s.accumulators[board.Black][next] = s.accumulators[board.Black][prev]
	s.current = next

	them := stm.Other()
	start := m.Start()

	switch {
	case m.IsCastling():
		kingTarget, rookTarget := m.CastlingSquares()
		rookFrom := m.Target()
		for _, p := range [2]board.Color{board.White, board.Black} {
			s.removeFeature(p, stm, board.King, start, next, net)
			s.addFeature(p, stm, board.King, kingTarget, next, net)
			s.removeFeature(p, stm, board.Rook, rookFrom, next, net)
			s.addFeature(p, stm, board.Rook, rookTarget, next, net)
		}

	case m.IsEnPassant():
		to := m.To()
		capturedSq := board.Square(int(to) ^ 8)
		for _, p := range [2]board.Color{board.White, board.Black} {
			s.removeFeature(p, stm, board.Pawn, start, next, net)
			s.addFeature(p, stm, board.Pawn, to, next, net)
			s.removeFeature(p, them, board.Pawn, capturedSq, next, net)
		}

	case m.IsPromotion():
		to := m.To()
		promo := m.Promotion()
		for _, p := range [2]board.Color{board.White, board.Black} {
			s.removeFeature(p, stm, board.Pawn, start, next, net)
			s.addFeature(p, stm, promo, to, next, net)
			if m.IsCapture() {
				s.removeFeature(p, them, capturedPiece, to, next, net)
			}
		}

	case m.IsCapture():
		to := m.To()
		for _, p := range [2]board.Color{board.White, board.Black} {
			s.removeFeature(p, stm, movedPiece, start, next, net)
			s.addFeature(p, stm, movedPiece, to, next, net)
			s.removeFeature(p, them, capturedPiece, to, next, net)
		}

	default: // Quiet, including double pawn pushes.
		to := m.To()
		for _, p := range [2]board.Color{board.White, board.Black} {
			s.removeFeature(p, stm, movedPiece, start, next, net)
			s.addFeature(p, stm, movedPiece, to, next, net)
		}
	}
}

// Undo pops the accumulator stack. Calling this at depth 0 is a driver bug.
func (s *EvalState) Undo() {
	if s.current == 0 {
		panic("nnue: undo called at depth 0")
	}
	s.current--
}

// Evaluate runs the clipped-ReLU activation and linear output head over the
// current depth's accumulators, returning a centipawn-like score from stm's
// perspective.
func (s *EvalState) Evaluate(stm board.Color, net *Network) int32 {
	them := stm.Other()
	stmAcc := &s.accumulators[stm][s.current]
	nstmAcc := &s.accumulators[them][s.current]

	var out int32 = net.L1Bias
	for i := 0; i < HLSize; i++ {
		out += ClampedReLU(stmAcc[i]) * int32(net.L1Weights[i])
	}
	for i := 0; i < HLSize; i++ {
		out += ClampedReLU(nstmAcc[i]) * int32(net.L1Weights[HLSize+i])
	}

	// Descale in 64-bit: out alone fits an int32, but out*EvalScale need not.
	return int32(int64(out) * EvalScale / (QB * QA))
}
