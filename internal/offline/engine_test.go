package offline

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/roastbot/internal/persona"
	"github.com/apresai/roastbot/internal/profile"
)

func testEngine(seed int64) *Engine {
	return NewEngineWithRand(rand.New(rand.NewSource(seed)))
}

func TestBagDealsEveryIndexOncePerCycle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bag := NewBag(6, rng)

	for cycle := 0; cycle < 3; cycle++ {
		seen := map[int]bool{}
		for i := 0; i < 6; i++ {
			idx := bag.Next()
			assert.False(t, seen[idx], "index %d repeated within cycle %d", idx, cycle)
			seen[idx] = true
		}
		assert.Len(t, seen, 6)
	}
}

func TestPickExhaustsBankBeforeRepeating(t *testing.T) {
	e := testEngine(42)
	p := persona.Default()
	size := BankSize(p.Key, persona.Medium)
	require.Greater(t, size, 0)

	seen := map[string]bool{}
	for i := 0; i < size; i++ {
		line := e.Pick(p, persona.Medium, profile.UserContext{}, false)
		assert.False(t, seen[line], "line repeated before bank exhausted: %q", line)
		seen[line] = true
	}
	// Next pick starts a fresh cycle from the same bank.
	assert.True(t, seen[e.Pick(p, persona.Medium, profile.UserContext{}, false)])
}

func TestPickExhaustionAcrossCatalog(t *testing.T) {
	e := testEngine(11)
	for _, p := range persona.All() {
		for _, level := range persona.Intensities() {
			size := BankSize(p.Key, level)
			require.Greater(t, size, 0, "%s/%s", p.Key, level)

			seen := map[string]bool{}
			for i := 0; i < size; i++ {
				line := e.Pick(p, level, profile.UserContext{}, false)
				assert.False(t, seen[line], "%s/%s repeated %q early", p.Key, level, line)
				seen[line] = true
			}
		}
	}
}

func TestPickContextOverridePriority(t *testing.T) {
	e := testEngine(7)
	p := persona.Default()

	ctx := profile.UserContext{
		Profession:        "engineer",
		PersonalityTraits: []string{"lazy"},
		Location:          "texas",
		Interests:         []string{"gaming"},
	}
	line := e.Pick(p, persona.Medium, ctx, false)
	assert.Equal(t, professionLines["engineer"], line)

	ctx.Profession = ""
	line = e.Pick(p, persona.Medium, ctx, false)
	assert.Equal(t, personalityLines["lazy"], line)

	ctx.PersonalityTraits = nil
	line = e.Pick(p, persona.Medium, ctx, false)
	assert.Equal(t, locationLines["texas"], line)

	ctx.Location = ""
	line = e.Pick(p, persona.Medium, ctx, false)
	assert.Equal(t, interestLines["gaming"], line)
}

func TestPickProfanityRequiresSavageAndToggle(t *testing.T) {
	hasSuffix := func(line string) bool {
		for _, s := range profanitySuffixes {
			if strings.HasSuffix(line, s) {
				return true
			}
		}
		return false
	}

	e := testEngine(99)
	p := persona.Default()
	for i := 0; i < 200; i++ {
		assert.False(t, hasSuffix(e.Pick(p, persona.Savage, profile.UserContext{}, false)))
		assert.False(t, hasSuffix(e.Pick(p, persona.Medium, profile.UserContext{}, true)))
	}

	e = testEngine(99)
	suffixed := 0
	for i := 0; i < 200; i++ {
		if hasSuffix(e.Pick(p, persona.Savage, profile.UserContext{}, true)) {
			suffixed++
		}
	}
	// 30% chance over 200 draws; the band is wide on purpose.
	assert.Greater(t, suffixed, 20)
	assert.Less(t, suffixed, 120)
}

func TestPickUnknownPersonaFallsBack(t *testing.T) {
	e := testEngine(3)
	line := e.Pick(persona.Profile{Key: "nonexistent"}, "extreme", profile.UserContext{}, false)
	assert.NotEmpty(t, line)
}

func TestBanksCoverFullCatalog(t *testing.T) {
	for _, p := range persona.All() {
		for _, level := range persona.Intensities() {
			bank := banks[p.Key][level]
			assert.NotEmpty(t, bank, "%s/%s", p.Key, level)
			for _, line := range bank {
				assert.NotEmpty(t, line)
			}
		}
	}
}

func TestFallbacksNonEmpty(t *testing.T) {
	require.NotEmpty(t, Fallbacks)
	for _, line := range Fallbacks {
		assert.NotEmpty(t, line)
	}
}
