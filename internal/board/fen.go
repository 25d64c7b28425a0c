package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenFields drives ParseFEN: one handler per whitespace-separated FEN field,
// in grammar order. The two clock fields are optional and default to 0 and 1,
// matching engines that accept a truncated FEN.
var fenFields = [6]struct {
	what     string
	optional bool
	parse    func(*Position, string) error
}{
	{"piece placement", false, placePieces},
	{"side to move", false, parseSideToMove},
	{"castling rights", false, parseCastlingField},
	{"en passant square", false, parseEnPassantField},
	{"half-move clock", true, parseHalfMoveClock},
	{"full-move number", true, parseFullMoveNumber},
}

// ParseFEN builds a Position from Forsyth-Edwards Notation.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)

	pos := &Position{EnPassant: NoSquare, FullMoveNumber: 1}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	for i, field := range fenFields {
		if i >= len(fields) {
			if field.optional {
				break
			}
			return nil, fmt.Errorf("board: FEN %q is missing its %s field", fen, field.what)
		}
		if err := field.parse(pos, fields[i]); err != nil {
			return nil, err
		}
	}

	pos.updateOccupied()
	pos.findKings()
	pos.UpdateCheckers()
	pos.Hash = pos.ComputeHash()
	pos.PawnKey = pos.ComputePawnKey()

	return pos, nil
}

// placePieces reads the piece-placement field in one pass, walking a
// file/rank cursor over the string: '/' closes a rank, digits skip empty
// squares, anything else must be a piece letter.
func placePieces(pos *Position, placement string) error {
	file, rank := 0, 7
	for _, ch := range placement {
		switch {
		case ch == '/':
			if file != 8 {
				return fmt.Errorf("board: rank %d has %d squares, want 8", rank+1, file)
			}
			file, rank = 0, rank-1
			if rank < 0 {
				return fmt.Errorf("board: piece placement has more than 8 ranks")
			}
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
		default:
			piece := PieceFromChar(byte(ch))
			if piece == NoPiece {
				return fmt.Errorf("board: invalid piece character %q", ch)
			}
			if file > 7 {
				return fmt.Errorf("board: rank %d has more than 8 squares", rank+1)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}
	}
	if rank != 0 || file != 8 {
		return fmt.Errorf("board: piece placement needs 8 ranks of 8 squares")
	}
	return nil
}

func parseSideToMove(pos *Position, field string) error {
	switch field {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return fmt.Errorf("board: invalid side to move %q", field)
	}
	return nil
}

var castlingFlagFor = map[byte]CastlingRights{
	'K': WhiteKingSideCastle, 'Q': WhiteQueenSideCastle,
	'k': BlackKingSideCastle, 'q': BlackQueenSideCastle,
}

func parseCastlingField(pos *Position, field string) error {
	if field == "-" {
		return nil
	}
	for _, ch := range []byte(field) {
		flag, ok := castlingFlagFor[ch]
		if !ok {
			return fmt.Errorf("board: invalid castling character %q", ch)
		}
		pos.CastlingRights |= flag
	}
	return nil
}

func parseEnPassantField(pos *Position, field string) error {
	if field == "-" {
		return nil
	}
	sq, err := ParseSquare(field)
	if err != nil {
		return fmt.Errorf("board: invalid en passant square %q", field)
	}
	pos.EnPassant = sq
	return nil
}

func parseHalfMoveClock(pos *Position, field string) error {
	n, err := strconv.Atoi(field)
	if err != nil {
		return fmt.Errorf("board: invalid half-move clock %q", field)
	}
	pos.HalfMoveClock = n
	return nil
}

func parseFullMoveNumber(pos *Position, field string) error {
	n, err := strconv.Atoi(field)
	if err != nil {
		return fmt.Errorf("board: invalid full-move number %q", field)
	}
	pos.FullMoveNumber = n
	return nil
}

// ToFEN renders p back into Forsyth-Edwards Notation.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	fmt.Fprintf(&sb, " %s %s %d %d",
		p.CastlingRights, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)

	return sb.String()
}

// ComputeHash computes the Zobrist hash for p from scratch, rather
// than relying on incremental updates -- used by ParseFEN and by tests
// that cross-check MakeMove/UnmakeMove's incremental hash maintenance.
func (p *Position) ComputeHash() uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			p.Pieces[c][pt].ForEach(func(sq Square) {
				hash ^= zobristPiece[c][pt][sq]
			})
		}
	}
	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	return hash
}

// ComputePawnKey computes the pawn-only Zobrist key from scratch, used
// to cross-check incremental pawn-structure cache maintenance in tests.
func (p *Position) ComputePawnKey() uint64 {
	var key uint64
	for c := White; c <= Black; c++ {
		p.Pieces[c][Pawn].ForEach(func(sq Square) {
			key ^= zobristPiece[c][Pawn][sq]
		})
	}
	return key
}
