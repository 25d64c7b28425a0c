package nnue

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Weight file format constants.
const (
	MagicNumber = 0x46524B53 // "FRKS"
	Version     = 2          // bumped: single linear head, king-inclusive features
)

// FileHeader is the header of the weight file.
type FileHeader struct {
	Magic       uint32
	Version     uint32
	NumFeatures uint32
	HLSize      uint32
}

// LoadWeights loads network weights from a binary file.
// File format:
//   - Header: Magic, Version, NumFeatures, HLSize (4 bytes each)
//   - FTWeights: NumFeatures * HLSize * int16
//   - FTBias: HLSize * int16
//   - L1Weights: 2*HLSize * int16
//   - L1Bias: int32
func (n *Network) LoadWeights(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open weights file: %w", err)
	}
	defer f.Close()

	return n.LoadWeightsFromReader(f)
}

// SaveWeights saves network weights to a binary file.
func (n *Network) SaveWeights(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create weights file: %w", err)
	}
	defer f.Close()

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		NumFeatures: NumFeatures,
		HLSize:      HLSize,
	}
	if err := binary.Write(f, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, &n.FTWeights); err != nil {
		return fmt.Errorf("failed to write feature transformer weights: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, &n.FTBias); err != nil {
		return fmt.Errorf("failed to write feature transformer bias: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, &n.L1Weights); err != nil {
		return fmt.Errorf("failed to write output weights: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, &n.L1Bias); err != nil {
		return fmt.Errorf("failed to write output bias: %w", err)
	}

	return nil
}

// LoadWeightsFromReader loads network weights from an io.Reader.
func (n *Network) LoadWeightsFromReader(r io.Reader) error {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	if header.Magic != MagicNumber {
		return fmt.Errorf("invalid magic number: expected %x, got %x", MagicNumber, header.Magic)
	}
	if header.Version != Version {
		return fmt.Errorf("unsupported version: expected %d, got %d", Version, header.Version)
	}
	if header.NumFeatures != NumFeatures {
		return fmt.Errorf("feature count mismatch: expected %d, got %d", NumFeatures, header.NumFeatures)
	}
	if header.HLSize != HLSize {
		return fmt.Errorf("hidden layer size mismatch: expected %d, got %d", HLSize, header.HLSize)
	}

	if err := binary.Read(r, binary.LittleEndian, &n.FTWeights); err != nil {
		return fmt.Errorf("failed to read feature transformer weights: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &n.FTBias); err != nil {
		return fmt.Errorf("failed to read feature transformer bias: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &n.L1Weights); err != nil {
		return fmt.Errorf("failed to read output weights: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &n.L1Bias); err != nil {
		return fmt.Errorf("failed to read output bias: %w", err)
	}

	return nil
}
