package multiworld

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// slotRand is the random stream for one slot's option resolution. Streams are
// independent per slot so adding a player never changes another's rolls.
func slotRand(seed int64, slot int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(slot)))
}
