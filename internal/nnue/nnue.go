// Package nnue implements NNUE (Efficiently Updatable Neural Network) evaluation:
// a two-perspective feature-transformer accumulator updated incrementally on
// each move, feeding a single linear output head.
package nnue

import "github.com/dkristiansen/zugzwang/internal/board"

// Network architecture constants.
const (
	NumColors     = 2
	NumPieceKinds = 6 // Pawn, Knight, Bishop, Rook, Queen, King
	NumSquares    = 64

	// NumFeatures is the per-perspective input width: 2 (color relative to
	// perspective) x 6 (piece kind) x 64 (square).
	NumFeatures = NumColors * NumPieceKinds * NumSquares // 768

	// HLSize is the feature-transformer output width per perspective.
	HLSize = 256

	// QA bounds the clipped-ReLU activation applied to accumulator values.
	QA = 255
	// QB is the l1 weight quantization scale.
	QB = 64
	// EvalScale descales the l1 output back to centipawn-like units.
	EvalScale = 400

	// MaxPly bounds the accumulator stack depth (see EvalState).
	MaxPly = 256
)

// ClampedReLU clamps x to [0, QA].
func ClampedReLU(x int16) int32 {
	if x < 0 {
		return 0
	}
	if int32(x) > QA {
		return QA
	}
	return int32(x)
}

// Evaluator wraps a Network and an EvalState for the common case of one
// position being searched along one line.
type Evaluator struct {
	net   *Network
	state *EvalState
}

// NewEvaluator creates a new NNUE evaluator. If weightsFile is empty, random
// weights are used (for testing only).
func NewEvaluator(weightsFile string) (*Evaluator, error) {
	net := NewNetwork()

	if weightsFile != "" {
		if err := net.LoadWeights(weightsFile); err != nil {
			return nil, err
		}
	} else {
		net.InitRandom(12345)
	}

	return &Evaluator{
		net:   net,
		state: NewEvalState(),
	}, nil
}

// Evaluate returns the NNUE evaluation for the position from the side to
// move's perspective, in centipawn-like units.
func (e *Evaluator) Evaluate(pos *board.Position) int32 {
	return e.state.Evaluate(pos.SideToMove, e.net)
}

// Init (re)initializes the accumulator stack at depth 0 for pos.
func (e *Evaluator) Init(pos *board.Position) {
	e.state.Init(pos, e.net)
}

// Update applies a move's accumulator mutation. Call after MakeMove.
func (e *Evaluator) Update(m board.Move, stm board.Color, movedPiece, capturedPiece board.PieceType) {
	e.state.Update(m, stm, movedPiece, capturedPiece, e.net)
}

// Undo pops the accumulator stack. Call after UnmakeMove.
func (e *Evaluator) Undo() {
	e.state.Undo()
}

// Reset discards all accumulator history (for a new game).
func (e *Evaluator) Reset() {
	e.state.Reset()
}
