package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip changed FEN:\n in: %s\nout: %s", fen, got)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",           // too few fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",        // 7 ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // rank overflow
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1", // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", // bad ep square
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) succeeded, want error", fen)
		}
	}
}

func TestTruncatedFENDefaultsClocks(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("clocks = (%d, %d), want (0, 1)", pos.HalfMoveClock, pos.FullMoveNumber)
	}
}

// TestIncrementalHashMatchesRecompute plays every legal move from a few
// positions and checks MakeMove's incremental Zobrist maintenance against a
// from-scratch ComputeHash, and that UnmakeMove restores the original key.
func TestIncrementalHashMatchesRecompute(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"r3k2r/1P2pppp/8/2pP4/8/8/PPP1PPP1/R3K2R w KQkq c6 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		original := pos.Hash

		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := pos.MakeMove(m)
			if pos.Hash != pos.ComputeHash() {
				t.Errorf("%s after %s: incremental hash %016x != recomputed %016x", fen, m, pos.Hash, pos.ComputeHash())
			}
			if pos.PawnKey != pos.ComputePawnKey() {
				t.Errorf("%s after %s: incremental pawn key %016x != recomputed %016x", fen, m, pos.PawnKey, pos.ComputePawnKey())
			}
			pos.UnmakeMove(m, undo)
			if pos.Hash != original {
				t.Errorf("%s after %s undo: hash %016x != original %016x", fen, m, pos.Hash, original)
			}
		}
	}
}

func TestMakeUnmakeRestoresPosition(t *testing.T) {
	pos, err := ParseFEN("r3k2r/1P2pppp/8/2pP4/8/8/PPP1PPP1/R3K2R w KQkq c6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	before := *pos

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		pos.UnmakeMove(m, undo)
		if *pos != before {
			t.Fatalf("make/unmake of %s did not restore the position:%s", m, pos)
		}
	}
}
