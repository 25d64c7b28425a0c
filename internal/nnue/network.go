package nnue

// Network holds the quantized feature-transformer and output-head weights.
type Network struct {
	// Feature transformer: NumFeatures -> HLSize, shared by both perspectives
	// (perspective is folded into the feature index itself).
	FTWeights [NumFeatures][HLSize]int16
	FTBias    [HLSize]int16

	// Output head: 2*HLSize (stm half concatenated with non-stm half) -> 1.
	L1Weights [2 * HLSize]int16
	L1Bias    int32
}

// NewNetwork creates a network with zero weights (must load weights or init random).
func NewNetwork() *Network {
	return &Network{}
}

// InitRandom initializes weights with small random values (for testing only).
func (n *Network) InitRandom(seed int64) {
	state := uint64(seed)
	next := func() int64 {
		state = state*6364136223846793005 + 1442695040888963407
		return int64(int16((state >> 48) & 0xFFFF))
	}

	for i := 0; i < NumFeatures; i++ {
		for j := 0; j < HLSize; j++ {
			n.FTWeights[i][j] = int16(next() >> 5) // small: [-32768, 32767] >> 5 = [-1024, 1023]
		}
	}
	for i := 0; i < HLSize; i++ {
		n.FTBias[i] = int16(next() >> 4)
	}
	for i := 0; i < 2*HLSize; i++ {
		n.L1Weights[i] = int16(next() >> 6)
	}
	n.L1Bias = int32(next() >> 2)
}
