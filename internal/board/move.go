package board

import "fmt"

// Move encodes a chess move in 32 bits:
// bits 0-6:   start square (0-63, NoSquare=64)
// bits 7-13:  target square (0-63, NoSquare=64)
// bits 14-21: flag bitmask (see Flag constants below)
//
// Flags are an independent bitmask rather than a mutually-exclusive enum, so
// a capturing promotion sets both a promotion bit and Capture. Castling is
// encoded Chess960-style: Target is the castling rook's own square, not the
// king's destination square. CastlingSquares derives the real destinations.
type Move uint32

const (
	moveStartShift  = 0
	moveTargetShift = 7
	moveFlagShift   = 14
	moveSquareMask  = 0x7F // 7 bits, covers 0-64 (NoSquare)
	moveFlagMask    = 0xFF
)

// Move flags. Exactly zero or one promotion bit may be set. Castle is
// mutually exclusive with Capture, EnPassant, DoublePush, and promotions.
// EnPassant always implies Capture: both bits are set together.
const (
	FlagEnPassant       uint8 = 1 << 0
	FlagCapture         uint8 = 1 << 1
	FlagDoublePush      uint8 = 1 << 2
	FlagCastle          uint8 = 1 << 3
	FlagPromoteToQueen  uint8 = 1 << 4
	FlagPromoteToRook   uint8 = 1 << 5
	FlagPromoteToBishop uint8 = 1 << 6
	FlagPromoteToKnight uint8 = 1 << 7

	flagPromotionMask = FlagPromoteToQueen | FlagPromoteToRook | FlagPromoteToBishop | FlagPromoteToKnight
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NullMove is the null move used by null-move pruning drivers: both squares
// null, no flags.
var NullMove = NewMove(NoSquare, NoSquare, 0)

// NewMove builds a move from its start square, target square, and flag bitmask.
func NewMove(start, target Square, flags uint8) Move {
	return Move(start&moveSquareMask) |
		Move(target&moveSquareMask)<<moveTargetShift |
		Move(flags)<<moveFlagShift
}

// NewQuietMove builds a non-capturing, non-special move.
func NewQuietMove(start, target Square) Move {
	return NewMove(start, target, 0)
}

// NewCaptureMove builds a normal (non-en-passant) capture.
func NewCaptureMove(start, target Square) Move {
	return NewMove(start, target, FlagCapture)
}

// NewDoublePushMove builds a two-square pawn push.
func NewDoublePushMove(start, target Square) Move {
	return NewMove(start, target, FlagDoublePush)
}

// NewEnPassantMove builds an en-passant capture. Capture is set alongside
// EnPassant.
func NewEnPassantMove(start, target Square) Move {
	return NewMove(start, target, FlagEnPassant|FlagCapture)
}

// NewCastlingMove builds a castling move. target is the castling rook's own
// square (Chess960-style encoding), not the king's destination.
func NewCastlingMove(kingFrom, rookFrom Square) Move {
	return NewMove(kingFrom, rookFrom, FlagCastle)
}

// promotionFlag maps a promotion PieceType to its flag bit.
func promotionFlag(pt PieceType) uint8 {
	switch pt {
	case Queen:
		return FlagPromoteToQueen
	case Rook:
		return FlagPromoteToRook
	case Bishop:
		return FlagPromoteToBishop
	case Knight:
		return FlagPromoteToKnight
	default:
		return 0
	}
}

// NewPromotionMove builds a promotion move, optionally also capturing.
func NewPromotionMove(start, target Square, promo PieceType, capture bool) Move {
	flags := promotionFlag(promo)
	if capture {
		flags |= FlagCapture
	}
	return NewMove(start, target, flags)
}

// Start returns the move's start square.
func (m Move) Start() Square {
	return Square(m>>moveStartShift) & moveSquareMask
}

// Target returns the move's raw target square (the rook's square for castling).
func (m Move) Target() Square {
	return Square(m>>moveTargetShift) & moveSquareMask
}

// From is an alias for Start, matching conventional UCI-engine naming.
func (m Move) From() Square { return m.Start() }

// To returns the square the moving piece actually lands on. For castling
// this is the king's destination, derived via CastlingSquares; for every
// other move it is the same as Target.
func (m Move) To() Square {
	if m.IsCastling() {
		kingTarget, _ := m.CastlingSquares()
		return kingTarget
	}
	return m.Target()
}

// Flags returns the raw flag bitmask.
func (m Move) Flags() uint8 {
	return uint8(m>>moveFlagShift) & moveFlagMask
}

// IsEnPassant returns true if the EnPassant flag is set.
func (m Move) IsEnPassant() bool { return m.Flags()&FlagEnPassant != 0 }

// IsCapture returns true if the Capture flag is set.
func (m Move) IsCapture() bool { return m.Flags()&FlagCapture != 0 }

// IsDoublePush returns true if the DoublePush flag is set.
func (m Move) IsDoublePush() bool { return m.Flags()&FlagDoublePush != 0 }

// IsCastling returns true if the Castle flag is set.
func (m Move) IsCastling() bool { return m.Flags()&FlagCastle != 0 }

// IsPromotion returns true if any promotion flag is set.
func (m Move) IsPromotion() bool { return m.Flags()&flagPromotionMask != 0 }

// IsTactical returns true for captures, en-passant captures, or promotions.
func (m Move) IsTactical() bool {
	return m.IsCapture() || m.IsEnPassant() || m.IsPromotion()
}

// IsQuiet is the negation of IsTactical.
func (m Move) IsQuiet() bool { return !m.IsTactical() }

// Promotion returns the promotion piece type. Only valid when IsPromotion is true.
func (m Move) Promotion() PieceType {
	switch m.Flags() & flagPromotionMask {
	case FlagPromoteToQueen:
		return Queen
	case FlagPromoteToRook:
		return Rook
	case FlagPromoteToBishop:
		return Bishop
	case FlagPromoteToKnight:
		return Knight
	default:
		return NoPieceType
	}
}

// CastlingSquares derives the king's and rook's destination squares from a
// castling move: the rook's origin (Target) is compared against the king's
// origin (Start), lower meaning queenside. Valid only when IsCastling.
func (m Move) CastlingSquares() (kingTarget, rookTarget Square) {
	start := m.Start()
	rookFrom := m.Target()
	rank := start.Rank()
	if rookFrom < start {
		return NewSquare(2, rank), NewSquare(3, rank) // queenside: king->c, rook->d
	}
	return NewSquare(6, rank), NewSquare(5, rank) // kingside: king->g, rook->f
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q"). For
// castling this reports the king's actual destination, not the rook square.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		promoChars := map[PieceType]byte{Queen: 'q', Rook: 'r', Bishop: 'b', Knight: 'n'}
		s += string(promoChars[m.Promotion()])
	}

	return s
}

// ParseMove parses a UCI format move string against a position, recovering
// the EnPassant/DoublePush/Castle flags this encoding needs.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()
	capture := pos.PieceAt(to) != NoPiece

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotionMove(from, to, promo, capture), nil
	}

	if pt == King && abs(int(to)-int(from)) == 2 {
		rank := from.Rank()
		if to.File() < from.File() {
			return NewCastlingMove(from, NewSquare(0, rank)), nil
		}
		return NewCastlingMove(from, NewSquare(7, rank)), nil
	}

	if pt == Pawn && to == pos.EnPassant {
		return NewEnPassantMove(from, to), nil
	}

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		return NewDoublePushMove(from, to), nil
	}

	if capture {
		return NewCaptureMove(from, to), nil
	}
	return NewQuietMove(from, to), nil
}

// MoveList is a fixed-size list of moves, sized for the theoretical maximum
// number of pseudo-legal moves in any chess position.
type MoveList struct {
	moves [218]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo stores the state MakeMove destroys and UnmakeMove cannot derive
// from the move alone.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	PawnKey        uint64
	Checkers       Bitboard
	Valid          bool // true if the move was actually applied
}
