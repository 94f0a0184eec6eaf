// Package safety is the pattern-based gate that overrides all roast
// generation when a message signals genuine distress. It is deliberately
// simple: ordered keyword categories, first match wins, no scoring.
// Anything fancier would be harder to test and audit.
package safety

import "strings"

// Category tags returned in a Verdict. Order here is the evaluation order.
const (
	CategorySelfHarm         = "self_harm"
	CategoryViolence         = "violence"
	CategoryMinorEndangering = "minor_endangerment"
	CategoryMedicalEmergency = "medical_emergency"
	CategoryMentalHealth     = "mental_health_crisis"
)

// Verdict is the transient classification result for one message.
type Verdict struct {
	Matched  bool
	Category string
}

// CrisisMessage is returned verbatim for every matched message, regardless
// of persona, intensity, or provider availability. It must never be
// rephrased by a model or a template.
const CrisisMessage = `I'm stepping out of character for a moment, because this sounds serious.

If you're going through a hard time, please reach out to someone who can actually help:
- US & Canada: call or text 988 (Suicide & Crisis Lifeline)
- UK & Ireland: Samaritans, 116 123
- Elsewhere: https://findahelpline.com lists free, confidential services by country
- If you or someone else is in immediate danger, call your local emergency number

You matter, and talking to a real person is the right next step. I'm just a roast bot — this is bigger than me.`

type category struct {
	tag      string
	patterns []string
}

// Ordered category list. First category with any matching pattern wins.
var categories = []category{
	{
		tag: CategorySelfHarm,
		patterns: []string{
			"kill myself", "killing myself", "end my life", "ending my life",
			"suicide", "suicidal", "want to die", "wanna die", "better off dead",
			"hurt myself", "hurting myself", "harm myself", "self-harm", "self harm",
			"cut myself", "cutting myself", "take my own life", "not worth living",
			"no reason to live", "end it all",
		},
	},
	{
		tag: CategoryViolence,
		patterns: []string{
			"kill him", "kill her", "kill them", "kill someone", "kill everyone",
			"hurt him", "hurt her", "hurt them", "hurt someone",
			"shoot up", "shoot him", "shoot her", "shoot them",
			"murder", "stab him", "stab her", "stab them",
			"beat him up", "beat her up", "make them pay", "going to hurt",
			"want to hurt", "attack them",
		},
	},
	{
		tag: CategoryMinorEndangering,
		patterns: []string{
			"hurt a child", "hurt my child", "hurt the kids", "hit my kid",
			"hit my child", "abuse a child", "child abuse", "hurt a kid",
			"touch a child", "harm a child", "harm my child",
		},
	},
	{
		tag: CategoryMedicalEmergency,
		patterns: []string{
			"overdose", "overdosed", "took too many pills", "swallowed pills",
			"can't breathe", "cant breathe", "chest pain", "heart attack",
			"having a stroke", "bleeding out", "poisoned myself", "drank bleach",
		},
	},
	{
		tag: CategoryMentalHealth,
		patterns: []string{
			"panic attack", "having a breakdown", "mental breakdown",
			"hearing voices", "hallucinating", "psychotic",
			"can't go on", "cant go on", "completely hopeless",
			"nothing matters anymore", "everyone would be better without me",
		},
	},
}

// Classify runs the ordered pattern categories against a message.
// It is pure and side-effect free; safe to call repeatedly.
func Classify(text string) Verdict {
	t := strings.ToLower(text)
	for _, c := range categories {
		for _, p := range c.patterns {
			if strings.Contains(t, p) {
				return Verdict{Matched: true, Category: c.tag}
			}
		}
	}
	return Verdict{}
}
