package board

// Color distinguishes the two sides.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other flips White<->Black. Cheap enough (single XOR) that callers
// never need to cache it.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType is a kind of chess piece, independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		return "None"
	}
	return pieceTypeNames[pt]
}

const pieceTypeChars = "pnbrqk "

// Char returns the lowercase FEN letter for pt ('p'..'k'), or a space
// for NoPieceType.
func (pt PieceType) Char() byte {
	if pt > NoPieceType {
		return ' '
	}
	return pieceTypeChars[pt]
}

// PieceValue holds the classical centipawn value of each PieceType,
// indexed by PieceType (NoPieceType maps to 0). Used by the tapered
// PSQT evaluator and by move-ordering heuristics that live above this
// package.
var PieceValue = [7]int{100, 320, 330, 500, 900, 20000, 0}

// Piece is a colored chess piece, packed as PieceType + Color*6 so that
// the whole White side occupies the low six values and the whole Black
// side the next six.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// NewPiece combines a PieceType and Color into a Piece. Out-of-range
// inputs collapse to NoPiece rather than producing a silently bogus
// value.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*6 + Piece(pt)
}

// Type extracts the PieceType component.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color extracts the Color component.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// Value is shorthand for PieceValue[p.Type()].
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}

const pieceChars = "PNBRQKpnbrqk"

// String returns the FEN letter for p: uppercase for White, lowercase
// for Black, a single space for NoPiece.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return string(pieceChars[p])
}

var pieceFromChar = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop,
	'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop,
	'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// PieceFromChar parses a single FEN piece letter, returning NoPiece for
// anything else (including the empty-square digits, which the FEN
// parser handles separately).
func PieceFromChar(c byte) Piece {
	if p, ok := pieceFromChar[c]; ok {
		return p
	}
	return NoPiece
}
