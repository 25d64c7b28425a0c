package board

import "testing"

// TestShiftsDontWrap verifies the east/west (and diagonal) shifts mask off
// the file they would otherwise wrap across.
func TestShiftsDontWrap(t *testing.T) {
	if got := SquareBB(H4).East(); got != 0 {
		t.Errorf("H4.East() = %v, want empty", got)
	}
	if got := SquareBB(A4).West(); got != 0 {
		t.Errorf("A4.West() = %v, want empty", got)
	}
	if got := SquareBB(H4).NorthEast() | SquareBB(H4).SouthEast(); got != 0 {
		t.Errorf("H4 diagonal east shifts = %v, want empty", got)
	}
	if got := SquareBB(A4).NorthWest() | SquareBB(A4).SouthWest(); got != 0 {
		t.Errorf("A4 diagonal west shifts = %v, want empty", got)
	}
	if got := SquareBB(E4).North(); got != SquareBB(E5) {
		t.Errorf("E4.North() = %v, want E5", got)
	}
	if got := SquareBB(E8).North(); got != 0 {
		t.Errorf("E8.North() = %v, want empty", got)
	}
}

func TestPopLSBWalksAscending(t *testing.T) {
	bb := SquareBB(C2) | SquareBB(A1) | SquareBB(H8) | SquareBB(E5)
	want := []Square{A1, C2, E5, H8}
	got := bb.Squares()
	if len(got) != len(want) {
		t.Fatalf("Squares() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Squares()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLSBAndMSB(t *testing.T) {
	bb := SquareBB(C3) | SquareBB(F7)
	if got := bb.LSB(); got != C3 {
		t.Errorf("LSB() = %s, want c3", got)
	}
	if got := bb.MSB(); got != F7 {
		t.Errorf("MSB() = %s, want f7", got)
	}
	if got := Bitboard(0).LSB(); got != NoSquare {
		t.Errorf("Empty.LSB() = %v, want NoSquare", got)
	}
}

// TestSubsetEnumeration verifies the Carry-Rippler walk: a mask with n set
// bits yields exactly 2^n subsets, each a genuine subset of the mask.
func TestSubsetEnumeration(t *testing.T) {
	masks := []Bitboard{
		0,
		SquareBB(D4),
		SquareBB(A1) | SquareBB(H8) | SquareBB(E4),
		rookMask(A1),
		FileMask[3] & ^Rank1 & ^Rank8,
	}
	for _, mask := range masks {
		count := 0
		subset := Bitboard(0)
		for {
			if subset&mask != subset {
				t.Fatalf("mask %x: %x is not a subset", mask, subset)
			}
			count++
			subset = subset.NextSubset(mask)
			if subset == 0 {
				break
			}
		}
		if want := 1 << mask.PopCount(); count != want {
			t.Errorf("mask %x: enumerated %d subsets, want %d", mask, count, want)
		}
	}
}

func TestFileFill(t *testing.T) {
	bb := SquareBB(C4) | SquareBB(G7)
	if got, want := bb.FileFill(), FileMask[2]|FileMask[6]; got != want {
		t.Errorf("FileFill() =\n%vwant\n%v", got, want)
	}
}

func TestFileAndRankMasks(t *testing.T) {
	if FileMask[0] != FileA || FileMask[7] != FileH {
		t.Error("FileMask disagrees with the FileA/FileH constants")
	}
	if RankMask[0] != Rank1 || RankMask[7] != Rank8 {
		t.Error("RankMask disagrees with the Rank1/Rank8 constants")
	}
	for f := 0; f < 8; f++ {
		if FileMask[f] != FileA<<f {
			t.Errorf("FileMask[%d] != FileA<<%d", f, f)
		}
	}
}
