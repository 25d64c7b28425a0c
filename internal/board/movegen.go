package board

// GenerateLegalMoves returns every legal move available to the side to
// move.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves returns every pseudo-legal move: piece
// movement rules are obeyed, but a move may still leave the mover's
// own king in check.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures returns every legal capturing move (including
// capture promotions and en passant), plus non-capturing promotions,
// the move set a quiescence search typically wants.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return p.filterLegalMoves(ml)
}

// pieceAttacksFn resolves one piece kind's attack bitboard from a
// square given the board's occupancy; knights and king ignore the
// occupancy argument, sliders consult it.
type pieceAttacksFn func(from Square, occupied Bitboard) Bitboard

// addSlidingOrLeaperMoves walks every piece of one kind and emits its
// quiet and capturing destinations, shared across knight/bishop/
// rook/queen/king generation so the loop body exists once.
func addSlidingOrLeaperMoves(ml *MoveList, pieces Bitboard, attacksOf pieceAttacksFn, occupied, own, enemies Bitboard) {
	for pieces != 0 {
		from := pieces.PopLSB()
		targets := attacksOf(from, occupied) &^ own
		for targets != 0 {
			to := targets.PopLSB()
			addQuietOrCapture(ml, from, to, enemies)
		}
	}
}

func addCapturesOnly(ml *MoveList, pieces Bitboard, attacksOf pieceAttacksFn, occupied, enemies Bitboard) {
	for pieces != 0 {
		from := pieces.PopLSB()
		targets := attacksOf(from, occupied) & enemies
		for targets != 0 {
			ml.Add(NewCaptureMove(from, targets.PopLSB()))
		}
	}
}

func knightAttacksOf(from Square, _ Bitboard) Bitboard { return KnightAttacks(from) }
func kingAttacksOf(from Square, _ Bitboard) Bitboard   { return KingAttacks(from) }

// addQuietOrCapture emits a normal move, tagging it Capture when the target
// square is occupied by an enemy piece.
func addQuietOrCapture(ml *MoveList, from, to Square, enemies Bitboard) {
	if enemies.IsSet(to) {
		ml.Add(NewCaptureMove(from, to))
	} else {
		ml.Add(NewQuietMove(from, to))
	}
}

// generateAllMoves appends every pseudo-legal move for the side to
// move onto ml.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	own := p.Occupied[us]
	enemies := p.Occupied[them]

	p.generatePawnMoves(ml, us, enemies, occupied)
	addSlidingOrLeaperMoves(ml, p.Pieces[us][Knight], knightAttacksOf, occupied, own, enemies)
	addSlidingOrLeaperMoves(ml, p.Pieces[us][Bishop], BishopAttacks, occupied, own, enemies)
	addSlidingOrLeaperMoves(ml, p.Pieces[us][Rook], RookAttacks, occupied, own, enemies)
	addSlidingOrLeaperMoves(ml, p.Pieces[us][Queen], QueenAttacks, occupied, own, enemies)
	addSlidingOrLeaperMoves(ml, SquareBB(p.KingSquare[us]), kingAttacksOf, occupied, own, enemies)
	p.generateCastlingMoves(ml, us)
}

// generateCaptures appends every capturing move (and capture/non-capture
// promotions) for the side to move onto ml.
func (p *Position) generateCaptures(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	enemies := p.Occupied[them]

	p.generatePawnCaptures(ml, us, enemies, occupied)
	addCapturesOnly(ml, p.Pieces[us][Knight], knightAttacksOf, occupied, enemies)
	addCapturesOnly(ml, p.Pieces[us][Bishop], BishopAttacks, occupied, enemies)
	addCapturesOnly(ml, p.Pieces[us][Rook], RookAttacks, occupied, enemies)
	addCapturesOnly(ml, p.Pieces[us][Queen], QueenAttacks, occupied, enemies)
	addCapturesOnly(ml, SquareBB(p.KingSquare[us]), kingAttacksOf, occupied, enemies)
}

// pawnShift groups the color-dependent geometry pawn generation needs:
// which way pushes and diagonal captures point, where the promotion
// rank is, and the from->to offset in bit-index terms.
type pawnShift struct {
	push, attackLeft, attackRight func(Bitboard) Bitboard
	doublePushRank, promotionRank Bitboard
	dir                           int
}

func pawnShiftFor(c Color) pawnShift {
	if c == White {
		return pawnShift{
			push: Bitboard.North, attackLeft: Bitboard.NorthWest, attackRight: Bitboard.NorthEast,
			doublePushRank: Rank3, promotionRank: Rank8, dir: 8,
		}
	}
	return pawnShift{
		push: Bitboard.South, attackLeft: Bitboard.SouthWest, attackRight: Bitboard.SouthEast,
		doublePushRank: Rank6, promotionRank: Rank1, dir: -8,
	}
}

// generatePawnMoves emits every pawn push, capture, double push,
// promotion, and en passant capture for us.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied
	s := pawnShiftFor(us)

	push1 := s.push(pawns) & empty
	push2 := s.push(push1&s.doublePushRank) & empty
	attackL := s.attackLeft(pawns) & enemies
	attackR := s.attackRight(pawns) & enemies

	emitFromOffset(ml, push1&^s.promotionRank, -s.dir, false, func(from, to Square, _ bool) { ml.Add(NewQuietMove(from, to)) })
	emitFromOffset(ml, push2, -2*s.dir, false, func(from, to Square, _ bool) { ml.Add(NewDoublePushMove(from, to)) })
	emitFromOffset(ml, attackL&^s.promotionRank, -s.dir+1, false, func(from, to Square, _ bool) { ml.Add(NewCaptureMove(from, to)) })
	emitFromOffset(ml, attackR&^s.promotionRank, -s.dir-1, false, func(from, to Square, _ bool) { ml.Add(NewCaptureMove(from, to)) })

	emitFromOffset(ml, push1&s.promotionRank, -s.dir, false, func(from, to Square, capture bool) { addPromotions(ml, from, to, capture) })
	emitFromOffset(ml, attackL&s.promotionRank, -s.dir+1, true, func(from, to Square, capture bool) { addPromotions(ml, from, to, capture) })
	emitFromOffset(ml, attackR&s.promotionRank, -s.dir-1, true, func(from, to Square, capture bool) { addPromotions(ml, from, to, capture) })

	p.generateEnPassant(ml, us, pawns)
}

// generatePawnCaptures is generatePawnMoves restricted to the moves a
// quiescence search wants: captures, capture promotions, non-capture
// promotions, and en passant -- no quiet pushes.
func (p *Position) generatePawnCaptures(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	s := pawnShiftFor(us)

	attackL := s.attackLeft(pawns) & enemies
	attackR := s.attackRight(pawns) & enemies

	emitFromOffset(ml, attackL&^s.promotionRank, -s.dir+1, false, func(from, to Square, _ bool) { ml.Add(NewCaptureMove(from, to)) })
	emitFromOffset(ml, attackR&^s.promotionRank, -s.dir-1, false, func(from, to Square, _ bool) { ml.Add(NewCaptureMove(from, to)) })
	emitFromOffset(ml, attackL&s.promotionRank, -s.dir+1, true, func(from, to Square, capture bool) { addPromotions(ml, from, to, capture) })
	emitFromOffset(ml, attackR&s.promotionRank, -s.dir-1, true, func(from, to Square, capture bool) { addPromotions(ml, from, to, capture) })

	empty := ^occupied
	push1 := s.push(pawns) & empty & s.promotionRank
	emitFromOffset(ml, push1, -s.dir, false, func(from, to Square, capture bool) { addPromotions(ml, from, to, capture) })

	p.generateEnPassant(ml, us, pawns)
}

// emitFromOffset walks every target square set in targets, derives its
// origin square by adding offset (in bit-index terms, so negative
// moves south/west), and calls emit with that origin/target pair.
func emitFromOffset(ml *MoveList, targets Bitboard, offset int, capture bool, emit func(from, to Square, capture bool)) {
	for targets != 0 {
		to := targets.PopLSB()
		from := Square(int(to) + offset)
		emit(from, to, capture)
	}
}

// addPromotions adds all four promotion moves.
func addPromotions(ml *MoveList, from, to Square, capture bool) {
	ml.Add(NewPromotionMove(from, to, Queen, capture))
	ml.Add(NewPromotionMove(from, to, Rook, capture))
	ml.Add(NewPromotionMove(from, to, Bishop, capture))
	ml.Add(NewPromotionMove(from, to, Knight, capture))
}

// generateEnPassant emits the en passant capture(s) available to us's
// pawns, if any pawn attacks the current en passant target.
func (p *Position) generateEnPassant(ml *MoveList, us Color, pawns Bitboard) {
	if p.EnPassant == NoSquare {
		return
	}
	epBB := SquareBB(p.EnPassant)
	var attackers Bitboard
	if us == White {
		attackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
	} else {
		attackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
	}
	attackers.ForEach(func(from Square) {
		ml.Add(NewEnPassantMove(from, p.EnPassant))
	})
}

// castlingPath names what generateCastlingMoves needs to check for one
// side's one direction of castling: the squares that must be empty,
// and the squares (including the king's start) that must not be
// attacked.
type castlingPath struct {
	right          CastlingRights
	emptySquares   Bitboard
	safeSquares    [3]Square
	kingFrom, rook Square
}

func castlingPaths(us Color) [2]castlingPath {
	if us == White {
		return [2]castlingPath{
			{WhiteKingSideCastle, SquareBB(F1) | SquareBB(G1), [3]Square{E1, F1, G1}, E1, H1},
			{WhiteQueenSideCastle, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), [3]Square{E1, D1, C1}, E1, A1},
		}
	}
	return [2]castlingPath{
		{BlackKingSideCastle, SquareBB(F8) | SquareBB(G8), [3]Square{E8, F8, G8}, E8, H8},
		{BlackQueenSideCastle, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), [3]Square{E8, D8, C8}, E8, A8},
	}
}

// generateCastlingMoves generates castling moves. Moves are encoded
// Chess960-style: the move's Target is the castling rook's own square.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	for _, path := range castlingPaths(us) {
		if p.CastlingRights&path.right == 0 {
			continue
		}
		if p.AllOccupied&path.emptySquares != 0 {
			continue
		}
		safe := true
		for _, sq := range path.safeSquares {
			if p.IsSquareAttacked(sq, them) {
				safe = false
				break
			}
		}
		if safe {
			ml.Add(NewCastlingMove(path.kingFrom, path.rook))
		}
	}
}

// filterLegalMoves keeps only the moves in ml that don't leave the
// mover's own king in check.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		if m := ml.Get(i); p.IsLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// IsLegal reports whether m leaves the mover's own king safe. King
// moves are checked directly against the destination square (cheaper
// than a full make/unmake); everything else is verified by playing the
// move out and checking the king afterward.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	ksq := p.KingSquare[us]

	if from == ksq && !m.IsCastling() {
		occ := p.AllOccupied &^ SquareBB(from)
		return p.AttackersByColor(m.To(), them, occ) == 0
	}
	if m.IsCastling() {
		return true // generateCastlingMoves already checked the king's path.
	}

	undo := p.MakeMove(m)
	if !undo.Valid {
		return false
	}
	attacked := p.IsSquareAttacked(ksq, them)
	p.UnmakeMove(m, undo)
	return !attacked
}

// MakeMove plays m on p, updating every cached field (occupancy, king
// squares, Zobrist hash, castling rights, checkers) incrementally, and
// returns the information UnmakeMove needs to reverse it.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
		PawnKey:        p.PawnKey,
		Checkers:       p.Checkers,
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return undo
	}
	undo.Valid = true
	pt := piece.Type()

	p.Hash ^= zobristSideToMove
	p.Hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	switch {
	case m.IsEnPassant():
		capturedSq := epCapturedSquare(us, to)
		undo.CapturedPiece = p.removePiece(capturedSq)
		p.Hash ^= zobristPiece[them][Pawn][capturedSq]
		p.PawnKey ^= zobristPiece[them][Pawn][capturedSq]
	case !m.IsCastling():
		if captured := p.PieceAt(to); captured != NoPiece {
			undo.CapturedPiece = captured
			p.removePiece(to)
			p.Hash ^= zobristPiece[them][captured.Type()][to]
			if captured.Type() == Pawn {
				p.PawnKey ^= zobristPiece[them][Pawn][to]
			}
		}
	}

	if m.IsCastling() {
		rookFrom := m.Target()
		kingTarget, rookTarget := m.CastlingSquares()
		p.movePiece(from, kingTarget)
		p.Hash ^= zobristPiece[us][King][from] ^ zobristPiece[us][King][kingTarget]
		p.movePiece(rookFrom, rookTarget)
		p.Hash ^= zobristPiece[us][Rook][rookFrom] ^ zobristPiece[us][Rook][rookTarget]
	} else {
		p.movePiece(from, to)
		p.Hash ^= zobristPiece[us][pt][from] ^ zobristPiece[us][pt][to]
		if pt == Pawn {
			p.PawnKey ^= zobristPiece[us][Pawn][from] ^ zobristPiece[us][Pawn][to]
		}
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
		p.Hash ^= zobristPiece[us][Pawn][to] ^ zobristPiece[us][promoPt][to]
		p.PawnKey ^= zobristPiece[us][Pawn][to]
	}

	p.updateCastlingRightsAfter(pt, us, m, from, to)
	p.Hash ^= zobristCastling[p.CastlingRights]

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.Hash ^= zobristEnPassant[epSquare.File()]
	}

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()
	return undo
}

func epCapturedSquare(us Color, to Square) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

// updateCastlingRightsAfter clears whichever castling flags a king
// move or a rook's start square being vacated/captured-on invalidates.
func (p *Position) updateCastlingRightsAfter(pt PieceType, us Color, m Move, from, to Square) {
	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}

	touchedFrom, touchedTo := from, to
	if m.IsCastling() {
		touchedTo = m.Target() // rook's origin square
	}
	if touchedFrom == A1 || touchedTo == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if touchedFrom == H1 || touchedTo == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if touchedFrom == A8 || touchedTo == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if touchedFrom == H8 || touchedTo == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
}

// UnmakeMove reverses m using the UndoInfo MakeMove returned for it.
// p must not have been modified by any other move in between.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	them := p.SideToMove
	us := them.Other()
	from, to := m.From(), m.To()

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.PawnKey = undo.PawnKey
	p.Checkers = undo.Checkers
	p.SideToMove = us
	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][promoPt] &^= SquareBB(to)
		p.Pieces[us][Pawn] |= SquareBB(to)
	}

	if m.IsCastling() {
		rookFrom := m.Target()
		kingTarget, rookTarget := m.CastlingSquares()
		p.movePiece(kingTarget, from)
		p.movePiece(rookTarget, rookFrom)
	} else {
		p.movePiece(to, from)
	}

	if undo.CapturedPiece != NoPiece {
		capturedSq := to
		if m.IsEnPassant() {
			capturedSq = epCapturedSquare(us, to)
		}
		p.setPiece(undo.CapturedPiece, capturedSq)
	}
}

// HasLegalMoves reports whether the side to move has at least one
// legal move available.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no
// legal reply.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move has no legal move and
// is not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw reports whether the position is drawn by stalemate, the
// 50-move rule, or insufficient mating material.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.HalfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial reports whether neither side has enough
// material left to force checkmate (bare kings, or king+single
// minor vs. bare king).
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	wMinors := p.Pieces[White][Knight].PopCount() + p.Pieces[White][Bishop].PopCount()
	bMinors := p.Pieces[Black][Knight].PopCount() + p.Pieces[Black][Bishop].PopCount()

	if wMinors+bMinors == 0 {
		return true
	}
	if wMinors <= 1 && bMinors == 0 {
		return true
	}
	if bMinors <= 1 && wMinors == 0 {
		return true
	}
	return false
}
