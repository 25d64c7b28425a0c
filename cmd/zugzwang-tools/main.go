// Command zugzwang-tools is a developer driver for the move-generation and
// evaluation core: it regenerates magic bitboard tables on request, runs
// perft from a FEN, and prints the NNUE/PSQT evaluation of a position. It is
// not part of the evaluated core contract -- the core is a library consumed
// by a search driver -- but every library needs something that calls it.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dkristiansen/zugzwang/internal/artifact"
	"github.com/dkristiansen/zugzwang/internal/board"
	"github.com/dkristiansen/zugzwang/internal/config"
	"github.com/dkristiansen/zugzwang/internal/eval"
	"github.com/dkristiansen/zugzwang/internal/logging"
	"github.com/dkristiansen/zugzwang/internal/nnue"
)

var log = logging.Get("zugzwang-tools")

func main() {
	configFile := flag.String("config", "./zugzwang.toml", "path to configuration settings file")
	recomputeMagics := flag.Bool("recompute-magics", false, "force a fresh magic-number search, bypassing the artifact cache")
	perft := flag.Int("perft", 0, "run perft to the given depth on -fen and print the node count")
	fen := flag.String("fen", board.StartFEN, "FEN for -perft and -eval")
	weights := flag.String("weights", "", "path to NNUE weights file (random weights if empty)")
	evaluate := flag.Bool("eval", false, "print the NNUE and classical PSQT evaluation of -fen")
	flag.Parse()

	config.ConfFile = *configFile
	config.Setup()
	if *weights != "" {
		config.Settings.Cache.WeightsFile = *weights
	}
	if *recomputeMagics {
		config.Settings.Cache.RecomputeMagics = true
	}

	cacheDir := config.Settings.Cache.Dir
	if cacheDir == "" {
		dir, err := artifact.DefaultCacheDir()
		if err != nil {
			log.Warningf("no usable cache directory: %v", err)
		}
		cacheDir = dir
	}

	cache, err := artifact.Open(cacheDir)
	if err != nil {
		log.Warningf("artifact cache unavailable, continuing uncached: %v", err)
	} else {
		defer cache.Close()
		if err := loadOrGenerateMagics(cache, config.Settings.Cache.RecomputeMagics); err != nil {
			log.Errorf("magic table setup failed: %v", err)
			os.Exit(1)
		}
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid FEN %q: %v\n", *fen, err)
		os.Exit(1)
	}

	if *perft > 0 {
		runPerft(pos, *perft)
	}
	if *evaluate {
		runEval(pos, cache, config.Settings.Cache.WeightsFile)
	}
}

// loadOrGenerateMagics installs magic tables from the artifact cache, or
// searches for fresh ones (persisting them) on a cache miss or when forced.
func loadOrGenerateMagics(cache *artifact.Cache, force bool) error {
	if !force {
		bishop, rook, found, err := cache.LoadMagics()
		if err != nil {
			return err
		}
		if found {
			board.InstallMagics(bishop, rook)
			log.Infof("loaded magic tables from cache")
			return nil
		}
	}

	log.Infof("searching for magic numbers (this can take a while)...")
	bishop, rook, err := board.GenerateMagicNumbers(context.Background())
	if err != nil {
		return err
	}
	board.InstallMagics(bishop, rook)
	return cache.SaveMagics(bishop, rook)
}

func runPerft(pos *board.Position, depth int) {
	for d := 1; d <= depth; d++ {
		nodes := board.Perft(pos, d)
		fmt.Printf("perft(%d) = %s\n", d, board.FormatNodeCount(nodes))
	}
}

func runEval(pos *board.Position, cache *artifact.Cache, weightsFile string) {
	net := nnue.NewNetwork()
	if weightsFile == "" {
		net.InitRandom(12345)
	} else if err := loadNetworkWeights(net, cache, weightsFile); err != nil {
		fmt.Fprintf(os.Stderr, "loading weights: %v\n", err)
		os.Exit(1)
	}

	state := nnue.NewEvalState()
	state.Init(pos, net)
	nnueScore := state.Evaluate(pos.SideToMove, net)

	phase := eval.Phase(pos)
	psqt := 0
	for sq := board.A1; sq <= board.H8; sq++ {
		psqt += eval.GetPieceScore(pos, sq, phase)
	}
	if pos.SideToMove == board.Black {
		psqt = -psqt
	}

	fmt.Printf("nnue: %d\npsqt: %d\nphase: %d/24\n", nnueScore, psqt, phase)
}

// loadNetworkWeights loads weights from the artifact cache if present,
// falling back to disk and populating the cache for next time.
func loadNetworkWeights(net *nnue.Network, cache *artifact.Cache, path string) error {
	if cache != nil {
		if data, found, err := cache.LoadWeights(path); err == nil && found {
			log.Debugf("loading weights for %s from cache", path)
			return net.LoadWeightsFromReader(bytes.NewReader(data))
		}
	}

	if err := net.LoadWeights(path); err != nil {
		return err
	}

	if cache != nil {
		if data, err := os.ReadFile(path); err == nil {
			_ = cache.SaveWeights(path, data)
		}
	}
	return nil
}
