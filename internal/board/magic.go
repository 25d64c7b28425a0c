package board

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Magic describes the fancy-magic lookup for one square: a relevant
// occupancy mask, a multiplier that hashes any subset of that mask
// into a small dense index, and where that square's slice of the
// shared attack table begins.
type Magic struct {
	Mask   Bitboard
	Magic  uint64
	Shift  uint8
	Offset uint32
}

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	bishopTable [5248]Bitboard
	rookTable   [102400]Bitboard
)

// bishopMagicNumbers and rookMagicNumbers are a known-good set of magic
// multipliers carried as data; shipping them lets the package serve attack
// queries immediately on import without waiting on a search.
var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

func initMagics() {
	buildBishopMagics(bishopMagicNumbers)
	buildRookMagics(rookMagicNumbers)
}

// sliderBuild is the shared table-filling routine behind both piece
// kinds: for every square, enumerate every occupancy subset of its
// relevant mask and record the resulting slow-computed attack set at
// the magic-hashed index.
func sliderBuild(numbers [64]uint64, mask func(Square) Bitboard, slow func(Square, Bitboard) Bitboard, table []Bitboard) [64]Magic {
	var magics [64]Magic
	var offset uint32

	for sq := A1; sq <= H8; sq++ {
		relevant := mask(sq)
		relBits := relevant.PopCount()
		magics[sq] = Magic{
			Mask:   relevant,
			Magic:  numbers[sq],
			Shift:  uint8(64 - relBits),
			Offset: offset,
		}

		entries := 1 << relBits
		for i := 0; i < entries; i++ {
			occ := indexToOccupancy(i, relBits, relevant)
			idx := (uint64(occ) * numbers[sq]) >> (64 - relBits)
			table[offset+uint32(idx)] = slow(sq, occ)
		}
		offset += uint32(entries)
	}
	return magics
}

func buildBishopMagics(numbers [64]uint64) {
	bishopMagics = sliderBuild(numbers, bishopMask, bishopAttacksSlow, bishopTable[:])
}

func buildRookMagics(numbers [64]uint64) {
	rookMagics = sliderBuild(numbers, rookMask, rookAttacksSlow, rookTable[:])
}

// bishopMask returns the squares that can possibly hold a blocking
// piece for a bishop on sq: its full empty-board attack set, minus the
// board edge (a piece on the edge is always attacked regardless of
// what's beyond it, so its occupancy never changes the result).
func bishopMask(sq Square) Bitboard {
	return bishopAttacksSlow(sq, 0) &^ (Rank1 | Rank8 | FileA | FileH)
}

// rookMask returns the squares that can possibly hold a blocking piece
// for a rook on sq: its own rank and file, trimmed of the board edge
// and of sq itself.
func rookMask(sq Square) Bitboard {
	file, rank := sq.File(), sq.Rank()
	horizontal := RankMask[rank] &^ (FileMask[0] | FileMask[7] | FileMask[file])
	vertical := FileMask[file] &^ (RankMask[0] | RankMask[7] | RankMask[rank])
	return horizontal | vertical
}

// indexToOccupancy expands a dense index (0..2^bits-1) back into one
// specific subset of mask's bits -- the inverse of the magic hash, used
// only while building the attack table.
func indexToOccupancy(index, bits int, mask Bitboard) Bitboard {
	occ := Empty
	remaining := mask
	for bit := 0; bit < bits; bit++ {
		sq := remaining.PopLSB()
		if index&(1<<uint(bit)) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

var diagonalDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var orthogonalDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// rayAttacks walks each of dirs from sq until it falls off the board or
// hits an occupied square (inclusive of that blocking square, exactly
// as a real slide stops on the first piece it could capture).
func rayAttacks(sq Square, occupied Bitboard, dirs [4][2]int) Bitboard {
	var attacks Bitboard
	file, rank := sq.File(), sq.Rank()
	for _, d := range dirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) {
			s := NewSquare(f, r)
			attacks |= SquareBB(s)
			if occupied.IsSet(s) {
				break
			}
			f, r = f+d[0], r+d[1]
		}
	}
	return attacks
}

// bishopAttacksSlow and rookAttacksSlow compute attacks by direct ray
// casting rather than table lookup; used only to populate the magic
// tables and to verify candidate magics during search.
func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, diagonalDirs)
}

func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, orthogonalDirs)
}

// getBishopAttacks and getRookAttacks are the hot-path magic lookups:
// mask the occupancy down to the relevant bits, multiply, shift, and
// index into the precomputed table.
func getBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return bishopTable[m.Offset+uint32(idx)]
}

func getRookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return rookTable[m.Offset+uint32(idx)]
}

// --- Magic number search -----------------------------------------------
//
// The hardcoded tables above are a known-good fast path. GenerateMagics
// finds an equivalent set (different multipliers, same attacks) at runtime with a
// Stockfish-style xorshift64* search, so the cache in internal/artifact has
// something real to regenerate when RecomputeMagics is set or the cache is
// cold. One square's search is independent of every other square's, so
// GenerateMagics fans the 128 searches (64 bishop, 64 rook) out across
// goroutines bounded by an errgroup.Group.

// magicSeeds are per-rank xorshift64* seeds. Magics for squares on the same
// rank tend to share structure, so seeding by rank (rather than one global
// seed) converges faster than a single shared stream would.
var magicSeeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

const maxMagicAttempts = 1_000_000

// prng is a xorshift64* pseudo-random generator.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	if seed == 0 {
		seed = 1
	}
	return &prng{state: seed}
}

func (r *prng) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 2685821657736338717
}

// sparse draws a candidate biased toward having few set bits: magics with
// sparse bit patterns are more likely to produce a low-collision index.
func (r *prng) sparse() uint64 {
	return r.next() & r.next() & r.next()
}

// findMagic searches for a magic multiplier for sq given its relevant
// occupancy mask and a reference slow-attack function. It uses the
// epoch-stamped verification trick: instead of clearing the candidate
// attack table between failed attempts, each attempt gets a fresh epoch
// number, so a stale slot compares unequal without a full clear.
func findMagic(sq Square, mask Bitboard, slow func(Square, Bitboard) Bitboard) (uint64, error) {
	bits := mask.PopCount()
	size := 1 << bits

	occupancies := make([]Bitboard, 0, size)
	references := make([]Bitboard, 0, size)
	subset := Bitboard(0)
	for {
		occupancies = append(occupancies, subset)
		references = append(references, slow(sq, subset))
		subset = subset.NextSubset(mask)
		if subset == 0 {
			break
		}
	}

	attempt := make([]Bitboard, size)
	epoch := make([]int, size)
	rng := newPRNG(magicSeeds[sq.Rank()])

	for try := 0; try < maxMagicAttempts; try++ {
		candidate := rng.sparse()

		// Reject candidates unlikely to spread bits across the high byte;
		// cheap filter before paying for the full verification pass.
		if Bitboard((uint64(mask)*candidate)>>56).PopCount() < 6 {
			continue
		}

		currentEpoch := try + 1
		collision := false

		for i, occ := range occupancies {
			idx := (uint64(occ) * candidate) >> (64 - bits)
			if epoch[idx] != currentEpoch {
				epoch[idx] = currentEpoch
				attempt[idx] = references[i]
			} else if attempt[idx] != references[i] {
				collision = true
				break
			}
		}

		if !collision {
			return candidate, nil
		}
	}

	return 0, fmt.Errorf("board: no magic found for square %s after %d attempts", sq, maxMagicAttempts)
}

// GenerateMagicNumbers searches for a fresh set of bishop and rook magic
// numbers, one goroutine per square per piece kind, without installing them.
// Callers that want to persist the result (see internal/artifact) before
// rebuilding the attack tables should call this directly instead of
// GenerateMagics.
func GenerateMagicNumbers(ctx context.Context) (bishop, rook [64]uint64, err error) {
	g, _ := errgroup.WithContext(ctx)

	for s := A1; s <= H8; s++ {
		sq := s
		g.Go(func() error {
			magic, err := findMagic(sq, bishopMask(sq), bishopAttacksSlow)
			if err != nil {
				return err
			}
			bishop[sq] = magic
			return nil
		})
		g.Go(func() error {
			magic, err := findMagic(sq, rookMask(sq), rookAttacksSlow)
			if err != nil {
				return err
			}
			rook[sq] = magic
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return bishop, rook, fmt.Errorf("board: magic generation failed: %w", err)
	}

	return bishop, rook, nil
}

// InstallMagics rebuilds the attack tables from a previously found (or
// cached) set of magic numbers, replacing whatever the package was
// initialized with.
func InstallMagics(bishop, rook [64]uint64) {
	buildBishopMagics(bishop)
	buildRookMagics(rook)
}

// GenerateMagics searches for a fresh set of bishop and rook magic numbers
// and installs them, replacing whatever the package was initialized with.
func GenerateMagics(ctx context.Context) error {
	bishop, rook, err := GenerateMagicNumbers(ctx)
	if err != nil {
		return err
	}
	InstallMagics(bishop, rook)
	return nil
}
