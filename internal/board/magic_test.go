package board

import "testing"

// TestMagicMatchesSlowExhaustive verifies, for every square and every
// occupancy subset of its relevance mask, that the magic lookup reproduces
// the ray-cast reference exactly. This is the whole-table collision check.
func TestMagicMatchesSlowExhaustive(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		subset := Bitboard(0)
		mask := bishopMask(sq)
		for {
			if got, want := getBishopAttacks(sq, subset), bishopAttacksSlow(sq, subset); got != want {
				t.Fatalf("bishop %s occ=%x: magic=\n%vslow=\n%v", sq, subset, got, want)
			}
			subset = subset.NextSubset(mask)
			if subset == 0 {
				break
			}
		}

		subset = 0
		mask = rookMask(sq)
		for {
			if got, want := getRookAttacks(sq, subset), rookAttacksSlow(sq, subset); got != want {
				t.Fatalf("rook %s occ=%x: magic=\n%vslow=\n%v", sq, subset, got, want)
			}
			subset = subset.NextSubset(mask)
			if subset == 0 {
				break
			}
		}
	}
}

// TestMagicMatchesSlowRandomOccupancy runs the same comparison with dense
// random full-board occupancies, which exercises the mask-out of irrelevant
// squares the exhaustive subset walk never hits.
func TestMagicMatchesSlowRandomOccupancy(t *testing.T) {
	rng := newPRNG(0x1234_5678_9ABC_DEF0)
	for i := 0; i < 2000; i++ {
		occ := Bitboard(rng.next() & rng.next())
		for _, sq := range []Square{A1, D4, H8, E1, B7, G2, C5, F6} {
			if got, want := getRookAttacks(sq, occ), rookAttacksSlow(sq, occ); got != want {
				t.Fatalf("rook %s occ=%x: magic=\n%vslow=\n%v", sq, occ, got, want)
			}
			if got, want := getBishopAttacks(sq, occ), bishopAttacksSlow(sq, occ); got != want {
				t.Fatalf("bishop %s occ=%x: magic=\n%vslow=\n%v", sq, occ, got, want)
			}
		}
	}
}

// TestRookAttacksEmptyBoard is the rook-on-d4 scenario: the full rank and
// file minus the rook's own square, 14 squares.
func TestRookAttacksEmptyBoard(t *testing.T) {
	got := RookAttacks(D4, 0)
	want := (RankMask[3] | FileMask[3]) &^ SquareBB(D4)
	if got != want {
		t.Errorf("RookAttacks(D4, 0) =\n%vwant\n%v", got, want)
	}
	if got.PopCount() != 14 {
		t.Errorf("RookAttacks(D4, 0).PopCount() = %d, want 14", got.PopCount())
	}
}

// TestBishopAttacksWithBlocker is the bishop-on-a1 scenario: the d4 blocker
// stops the diagonal but is itself attacked.
func TestBishopAttacksWithBlocker(t *testing.T) {
	got := BishopAttacks(A1, SquareBB(D4))
	want := SquareBB(B2) | SquareBB(C3) | SquareBB(D4)
	if got != want {
		t.Errorf("BishopAttacks(A1, {D4}) =\n%vwant\n%v", got, want)
	}
}

func TestQueenAttacksIsRookPlusBishop(t *testing.T) {
	rng := newPRNG(42)
	for i := 0; i < 100; i++ {
		occ := Bitboard(rng.next() & rng.next() & rng.next())
		for _, sq := range []Square{A1, D4, H8} {
			if QueenAttacks(sq, occ) != RookAttacks(sq, occ)|BishopAttacks(sq, occ) {
				t.Fatalf("QueenAttacks(%s) != rook|bishop for occ=%x", sq, occ)
			}
		}
	}
}

// TestRelevanceMasksExcludeEdges verifies the blocker relevance masks drop
// the board edge (and the piece's own square), since edge occupancy never
// changes a slider's reachable set.
func TestRelevanceMasksExcludeEdges(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		if bishopMask(sq)&(Rank1|Rank8|FileA|FileH) != 0 {
			t.Errorf("bishopMask(%s) touches the board edge", sq)
		}
		if rookMask(sq).IsSet(sq) {
			t.Errorf("rookMask(%s) includes its own square", sq)
		}
	}
	// A central rook keeps 10 relevant squares, a corner rook 12.
	if got := rookMask(D4).PopCount(); got != 10 {
		t.Errorf("rookMask(D4).PopCount() = %d, want 10", got)
	}
	if got := rookMask(A1).PopCount(); got != 12 {
		t.Errorf("rookMask(A1).PopCount() = %d, want 12", got)
	}
}

// TestFindMagic runs the runtime multiplier search for a couple of squares
// and verifies the found magic hashes every occupancy subset collision-free.
func TestFindMagic(t *testing.T) {
	cases := []struct {
		sq   Square
		mask Bitboard
		slow func(Square, Bitboard) Bitboard
	}{
		{D4, rookMask(D4), rookAttacksSlow},
		{A1, bishopMask(A1), bishopAttacksSlow},
	}
	for _, tc := range cases {
		magic, err := findMagic(tc.sq, tc.mask, tc.slow)
		if err != nil {
			t.Fatalf("findMagic(%s): %v", tc.sq, err)
		}

		bits := tc.mask.PopCount()
		table := make(map[uint64]Bitboard, 1<<bits)
		subset := Bitboard(0)
		for {
			idx := (uint64(subset) * magic) >> (64 - bits)
			want := tc.slow(tc.sq, subset)
			if prev, ok := table[idx]; ok && prev != want {
				t.Fatalf("findMagic(%s): destructive collision at index %d", tc.sq, idx)
			}
			table[idx] = want
			subset = subset.NextSubset(tc.mask)
			if subset == 0 {
				break
			}
		}
	}
}
