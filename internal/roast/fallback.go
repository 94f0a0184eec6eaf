package roast

import (
	"math/rand"

	"github.com/apresai/roastbot/internal/offline"
)

// fallbackSelector produces a canned, persona-neutral line when every
// provider in the chain has failed. It never exposes why.
type fallbackSelector struct {
	rng *rand.Rand
}

func (f fallbackSelector) pick() string {
	return offline.Fallbacks[f.rng.Intn(len(offline.Fallbacks))]
}
