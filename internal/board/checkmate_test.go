package board

import "testing"

// TestGameTermination exercises IsCheckmate/IsStalemate/HasLegalMoves
// against a handful of known terminal and non-terminal positions.
func TestGameTermination(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		checkmate bool
		stalemate bool
	}{
		{
			name:      "back rank mate",
			fen:       "R6k/6pp/8/8/8/8/8/K7 b - - 0 1",
			checkmate: true,
		},
		{
			name:      "king can capture the checking rook",
			fen:       "6Rk/8/8/8/8/8/8/K7 b - - 0 1",
			checkmate: false,
		},
		{
			name:      "classic stalemate, black not in check but has no move",
			fen:       "k7/8/1Q6/8/8/8/8/7K b - - 0 1",
			stalemate: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.fen, err)
			}
			pos.UpdateCheckers()

			if got := pos.IsCheckmate(); got != tc.checkmate {
				t.Errorf("IsCheckmate() = %v, want %v (legal moves: %d)", got, tc.checkmate, pos.GenerateLegalMoves().Len())
			}
			if got := pos.IsStalemate(); got != tc.stalemate {
				t.Errorf("IsStalemate() = %v, want %v (legal moves: %d)", got, tc.stalemate, pos.GenerateLegalMoves().Len())
			}
			if tc.checkmate || tc.stalemate {
				if pos.HasLegalMoves() {
					t.Error("HasLegalMoves() = true for a terminal position")
				}
			}
		})
	}
}
