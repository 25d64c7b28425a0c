// Package board implements the bitboard-backed chess position and its
// move-generation machinery.
package board

import "fmt"

// Square names one of the 64 board squares under the little-endian
// rank-file mapping: bit index = rank*8+file, so A1 is bit 0 and H8 is
// bit 63. Shifting a bitboard one bit north/south/east/west tracks this
// layout directly (see Bitboard's shift helpers).
type Square uint8

// NoSquare is a sentinel outside the 0-63 range, used for "no en passant
// target" and similar absent-square states.
const NoSquare Square = 64

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare builds a Square from a zero-based file (0=a..7=h) and rank
// (0=rank 1..7=rank 8).
func NewSquare(file, rank int) Square {
	return Square(rank<<3 + file)
}

// ParseSquare reads algebraic notation such as "e4" and returns the
// corresponding Square, or (NoSquare, error) if s isn't a valid square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("board: malformed square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("board: malformed square %q", s)
	}
	return NewSquare(file, rank), nil
}

// File reports the square's column, 0 (a-file) through 7 (h-file).
func (sq Square) File() int { return int(sq) & 7 }

// Rank reports the square's row, 0 (first rank) through 7 (eighth rank).
func (sq Square) Rank() int { return int(sq) >> 3 }

// RelativeRank reports the rank as seen by c: rank 0 is always that
// color's back rank. Used by pawn-advance and promotion logic, which
// cares about distance from home rather than absolute rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// Mirror flips a square vertically across the board's midline (rank 4/5
// boundary), turning a white-side square into its black-side mirror and
// back. Used to reuse one perspective's tables for the other.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// IsValid reports whether sq names an actual board square rather than
// NoSquare or an out-of-range value.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String renders sq in algebraic notation, or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}
