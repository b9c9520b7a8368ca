// Package utils contains functions and types to read and write the
// pipeline's file artifacts.
package utils

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/fullkomnun/protocols/order"
)

// BatchDescriptor is the plain-JSON shape the external test harness hands
// over: the raw orders in batch order plus the root transition computed by
// the proof provider.
type BatchDescriptor struct {
	RootBefore *big.Int         `json:"rootBefore"`
	RootAfter  *big.Int         `json:"rootAfter"`
	Orders     []order.RawOrder `json:"orders"`
}

// ReadBatchDescriptor reads a batch descriptor from a JSON file.
func ReadBatchDescriptor(filepath string) (*BatchDescriptor, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("error opening batch file: %v", err)
	}
	defer file.Close()

	var b BatchDescriptor
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&b); err != nil {
		return nil, fmt.Errorf("error decoding batch file: %v", err)
	}
	return &b, nil
}

// WriteBatchDescriptor writes a batch descriptor as JSON.
func WriteBatchDescriptor(filepath string, b *BatchDescriptor) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding batch: %v", err)
	}
	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("error writing batch file: %v", err)
	}
	return nil
}

// ShouldReprove returns true if the batch file is more recent than any of
// the artifact files or if it encounters any error
func ShouldReprove(batchPath string, artifactPaths ...string) bool {
	source, err := os.Stat(batchPath)
	if err != nil {
		return true
	}
	for _, p := range artifactPaths {
		artifact, err := os.Stat(p)
		if err != nil {
			return true
		}
		if source.ModTime().After(artifact.ModTime()) {
			return true
		}
	}
	return false
}
