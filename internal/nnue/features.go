package nnue

import "github.com/dkristiansen/zugzwang/internal/board"

// pieceIndex maps a board.PieceType to its feature-space ordinal. The
// ordering (Pawn=0 .. King=5) matches board.PieceType directly, so the
// feature map stays a compile-time-known table and never needs a lookup.
func pieceIndex(k board.PieceType) int {
	return int(k)
}

// FeatureIndex computes the feature-transformer index for a piece as seen
// from perspective p. Unlike HalfKP schemes, the king is itself a feature
// (NumPieceKinds=6 includes King) and there is no king-square bucketing.
func FeatureIndex(perspective, pieceColor board.Color, kind board.PieceType, sq board.Square) int {
	colorIdx := 1
	if pieceColor == perspective {
		colorIdx = 0
	}

	sqIdx := int(sq)
	if perspective == board.White {
		sqIdx = int(sq.Mirror())
	}

	return (colorIdx*NumPieceKinds+pieceIndex(kind))*NumSquares + sqIdx
}
