package persona

import (
	"fmt"
	"strings"
)

// Intensity is the severity dial, independent of persona.
type Intensity string

const (
	Mild   Intensity = "mild"
	Medium Intensity = "medium"
	Savage Intensity = "savage"
)

// DefaultIntensity is used when the caller leaves intensity unset.
const DefaultIntensity = Medium

// ParseIntensity validates a user-supplied intensity string. Empty input
// maps to the default; anything else unknown is an error.
func ParseIntensity(s string) (Intensity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultIntensity, nil
	case string(Mild):
		return Mild, nil
	case string(Medium):
		return Medium, nil
	case string(Savage):
		return Savage, nil
	default:
		return "", fmt.Errorf("unknown intensity %q: choose mild, medium, or savage", s)
	}
}

// Instruction returns the natural-language severity clause for the prompt.
func (i Intensity) Instruction() string {
	switch i {
	case Mild:
		return "Keep it gentle. Tease, don't wound. The target should feel lightly ribbed, like a friend poking fun."
	case Savage:
		return "Go as hard as the rules allow. No pulled punches, no reassurance afterward. Maximum burn within the safety constraints."
	default:
		return "Standard roast strength. Sharp enough to sting, friendly enough that the target laughs along."
	}
}

// Intensities returns all levels from softest to harshest.
func Intensities() []Intensity {
	return []Intensity{Mild, Medium, Savage}
}
