package board

import "testing"

// TestKingAttackCounts verifies the king attack table: 3 reachable squares
// from a corner, 5 from an edge, 8 from the interior.
func TestKingAttackCounts(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		got := KingAttacks(sq).PopCount()
		want := 8
		onFileEdge := sq.File() == 0 || sq.File() == 7
		onRankEdge := sq.Rank() == 0 || sq.Rank() == 7
		switch {
		case onFileEdge && onRankEdge:
			want = 3
		case onFileEdge || onRankEdge:
			want = 5
		}
		if got != want {
			t.Errorf("KingAttacks(%s).PopCount() = %d, want %d", sq, got, want)
		}
	}
}

// TestKnightAttackCounts verifies every square's knight attack count lands in
// the set a knight can actually have: {2, 3, 4, 6, 8}.
func TestKnightAttackCounts(t *testing.T) {
	valid := map[int]bool{2: true, 3: true, 4: true, 6: true, 8: true}
	for sq := A1; sq <= H8; sq++ {
		if got := KnightAttacks(sq).PopCount(); !valid[got] {
			t.Errorf("KnightAttacks(%s).PopCount() = %d, not a legal knight mobility", sq, got)
		}
	}
}

func TestKnightAttacksFromB1(t *testing.T) {
	want := SquareBB(A3) | SquareBB(C3) | SquareBB(D2)
	if got := KnightAttacks(B1); got != want {
		t.Errorf("KnightAttacks(B1) =\n%vwant\n%v", got, want)
	}
}

func TestPawnAttacks(t *testing.T) {
	tests := []struct {
		sq    Square
		color Color
		want  Bitboard
	}{
		{E4, White, SquareBB(D5) | SquareBB(F5)},
		{E4, Black, SquareBB(D3) | SquareBB(F3)},
		{A2, White, SquareBB(B3)},
		{H7, Black, SquareBB(G6)},
	}
	for _, tc := range tests {
		if got := PawnAttacks(tc.sq, tc.color); got != tc.want {
			t.Errorf("PawnAttacks(%s, %s) =\n%vwant\n%v", tc.sq, tc.color, got, tc.want)
		}
	}
}

// TestPassedPawnMask checks the three-file forward span, including the edge
// file case where only two files remain.
func TestPassedPawnMask(t *testing.T) {
	// White pawn on e4: files d, e, f on ranks 5-7.
	want := (FileMask[3] | FileMask[4] | FileMask[5]) & (RankMask[4] | RankMask[5] | RankMask[6])
	if got := PassedPawnMask(White, E4); got != want {
		t.Errorf("PassedPawnMask(White, E4) =\n%vwant\n%v", got, want)
	}

	// Black pawn on a5: files a, b on ranks 2-4.
	want = (FileMask[0] | FileMask[1]) & (RankMask[1] | RankMask[2] | RankMask[3])
	if got := PassedPawnMask(Black, A5); got != want {
		t.Errorf("PassedPawnMask(Black, A5) =\n%vwant\n%v", got, want)
	}

	// The back ranks never hold enemy pawns and stay out of every mask.
	for sq := A1; sq <= H8; sq++ {
		for _, c := range [2]Color{White, Black} {
			if PassedPawnMask(c, sq)&(Rank1|Rank8) != 0 {
				t.Errorf("PassedPawnMask(%s, %s) includes a back rank", c, sq)
			}
		}
	}
}

func TestIsolatedPawnMask(t *testing.T) {
	if got, want := IsolatedPawnMask(0), FileMask[1]&^(Rank1|Rank8); got != want {
		t.Errorf("IsolatedPawnMask(0) =\n%vwant\n%v", got, want)
	}
	if got, want := IsolatedPawnMask(4), (FileMask[3]|FileMask[5])&^(Rank1|Rank8); got != want {
		t.Errorf("IsolatedPawnMask(4) =\n%vwant\n%v", got, want)
	}
}

// TestKingZoneMask spot-checks that the zone covers the king's own square and
// its whole 3x3 neighborhood, extended one rank toward the opponent.
func TestKingZoneMask(t *testing.T) {
	zone := KingZoneMask(White, G1)
	for _, sq := range []Square{F1, G1, H1, F2, G2, H2, F3, G3, H3} {
		if !zone.IsSet(sq) {
			t.Errorf("KingZoneMask(White, G1) missing %s", sq)
		}
	}
	mirrored := Bitboard(0)
	zone.ForEach(func(sq Square) { mirrored |= SquareBB(sq.Mirror()) })
	if KingZoneMask(Black, G8) != mirrored {
		t.Errorf("KingZoneMask(Black, G8) is not the vertical mirror of KingZoneMask(White, G1)")
	}
}

func TestBetweenAndLine(t *testing.T) {
	if got, want := Between(A1, D4), SquareBB(B2)|SquareBB(C3); got != want {
		t.Errorf("Between(A1, D4) =\n%vwant\n%v", got, want)
	}
	if got := Between(A1, B3); got != 0 {
		t.Errorf("Between(A1, B3) = %v, want empty for unaligned squares", got)
	}
	if !Aligned(A1, H8, D4) {
		t.Error("Aligned(A1, H8, D4) = false, want true")
	}
	if Aligned(A1, H8, D5) {
		t.Error("Aligned(A1, H8, D5) = true, want false")
	}
	if got, want := Line(D4, D6), FileMask[3]; got != want {
		t.Errorf("Line(D4, D6) =\n%vwant\n%v", got, want)
	}
}
