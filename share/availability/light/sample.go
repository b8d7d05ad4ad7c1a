package light

import (
	"encoding/binary"
	"math/rand"

	"golang.org/x/crypto/blake2b"

	"github.com/celestiaorg/celestia-light/share"
)

// SamplingResult holds the sampled and the still remaining coordinates of a
// single sampling session. It is persisted between restarts, so interrupted
// sessions resume instead of starting over.
type SamplingResult struct {
	Available []share.SampleCoords `json:"available"`
	Remaining []share.SampleCoords `json:"remaining"`
}

// NewSamplingResult selects sampleCount unique coordinates of a square
// deterministically from the given seed material. Different nodes carry
// different salts and pick independent coordinates for the same root, while a
// single node re-picks exactly the same ones across restarts.
func NewSamplingResult(rootHash, salt []byte, squareWidth, sampleCount int) *SamplingResult {
	total := squareWidth * squareWidth
	if sampleCount > total {
		sampleCount = total
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write(rootHash)
	h.Write(salt)
	seed := h.Sum(nil)

	rng := rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(seed[:8])))) //nolint:gosec
	picked := make(map[share.SampleCoords]struct{}, sampleCount)
	remaining := make([]share.SampleCoords, 0, sampleCount)
	for len(remaining) < sampleCount {
		s := share.SampleCoords{
			Row: rng.Intn(squareWidth),
			Col: rng.Intn(squareWidth),
		}
		if _, ok := picked[s]; ok {
			continue
		}
		picked[s] = struct{}{}
		remaining = append(remaining, s)
	}

	return &SamplingResult{
		Remaining: remaining,
	}
}
