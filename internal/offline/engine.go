// Package offline is the deterministic, non-network roast path. It serves
// two roles: the whole generation engine when no provider credential is
// configured, and the last link of every provider chain.
package offline

import (
	"math/rand"
	"time"

	"github.com/apresai/roastbot/internal/persona"
	"github.com/apresai/roastbot/internal/profile"
)

// profanityChance is the fixed probability of appending an escalation
// suffix when profanity is allowed and intensity is savage.
const profanityChance = 0.30

// Engine selects roast lines from the phrase banks with shuffle-bag
// anti-repetition and optional context personalization. One Engine per
// session; not safe for concurrent use.
type Engine struct {
	rng  *rand.Rand
	bags map[string]*Bag
}

// NewEngine creates an engine seeded from the wall clock.
func NewEngine() *Engine {
	return NewEngineWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEngineWithRand creates an engine with a caller-supplied source,
// which makes selection reproducible in tests.
func NewEngineWithRand(rng *rand.Rand) *Engine {
	return &Engine{rng: rng, bags: make(map[string]*Bag)}
}

// Pick returns the next roast line for a persona/intensity pair. The
// shuffle bag guarantees every line in the bank is dealt once before any
// line repeats. When the enriched context carries a category with a
// hand-authored line, that line replaces the bank pick entirely; priority
// is profession, then personality, then location, then interest.
func (e *Engine) Pick(p persona.Profile, level persona.Intensity, enriched profile.UserContext, allowProfanity bool) string {
	bank := bankFor(p.Key, level)
	key := p.Key + "/" + string(level)

	bag, ok := e.bags[key]
	if !ok || bag.Size() != len(bank) {
		bag = NewBag(len(bank), e.rng)
		e.bags[key] = bag
	}
	line := bank[bag.Next()]

	if override := contextOverride(enriched); override != "" {
		line = override
	}

	if allowProfanity && level == persona.Savage && e.rng.Float64() < profanityChance {
		line += profanitySuffixes[e.rng.Intn(len(profanitySuffixes))]
	}

	return line
}

// BankSize reports the number of lines in one bank, for exhaustion-aware
// callers and tests.
func BankSize(personaKey string, level persona.Intensity) int {
	return len(bankFor(personaKey, level))
}

func bankFor(personaKey string, level persona.Intensity) []string {
	byLevel, ok := banks[personaKey]
	if !ok {
		byLevel = banks[persona.KeySarcastic]
	}
	bank, ok := byLevel[level]
	if !ok {
		bank = byLevel[persona.DefaultIntensity]
	}
	return bank
}

func contextOverride(c profile.UserContext) string {
	if line, ok := professionLines[c.Profession]; ok {
		return line
	}
	for _, trait := range c.PersonalityTraits {
		if line, ok := personalityLines[trait]; ok {
			return line
		}
	}
	if line, ok := locationLines[c.Location]; ok {
		return line
	}
	for _, interest := range c.Interests {
		if line, ok := interestLines[interest]; ok {
			return line
		}
	}
	return ""
}
