// Package prompt assembles the single system instruction shared by every
// provider adapter. Collapsing per-provider prompt text into one builder
// keeps the personas' voices from drifting between backends.
package prompt

import (
	"fmt"
	"strings"

	"github.com/apresai/roastbot/internal/persona"
	"github.com/apresai/roastbot/internal/profile"
)

// Settings is the per-session generation configuration, owned by the
// caller. Adapters snapshot it at construction; changing settings means
// rebuilding the chain, never mutating a live adapter.
type Settings struct {
	Persona        string
	Intensity      persona.Intensity
	AllowProfanity bool
	Profile        map[string]any // stored quiz answers, optional
}

// Roles used in the message window sent to chat-style backends.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the bounded conversation window, in the neutral
// shape adapters translate into their backend's wire format.
type Message struct {
	Role    string
	Content string
}

// Bundle is the fully assembled prompt handed to an adapter.
type Bundle struct {
	System           string
	ContextNarrative string
	Messages         []Message
}

// LastUserMessage returns the most recent user turn's text, or "".
func (b Bundle) LastUserMessage() string {
	for i := len(b.Messages) - 1; i >= 0; i-- {
		if b.Messages[i].Role == RoleUser {
			return b.Messages[i].Content
		}
	}
	return ""
}

// safetyClause restates the interceptor's contract inside the prompt as
// defense in depth, for the case where a provider is ever called without
// the gate running first.
const safetyClause = `NON-NEGOTIABLE SAFETY RULE: if the user's message mentions suicide, self-harm,
harming another person, harming a child, a medical emergency, or an acute
mental-health crisis, you must drop the persona completely and respond only
with a brief, sincere message urging them to contact a crisis line (such as
988 in the US) or local emergency services. No jokes, no roasting, no
exceptions.`

const roleFraming = `You are a roast comedian in a consensual roast-battle chat. The user came here
to be roasted and enjoys it. You are roasting, not bullying: be cutting about
what they say and do, never about protected characteristics, and never punch
at genuine vulnerability. Replies are short — one to three sentences.`

// Build assembles the system instruction from persona, intensity, and the
// profanity toggle, plus the enriched-context narrative and the trimmed
// window. Persona and intensity fall back to their documented defaults;
// there are no other failure modes.
func Build(settings Settings, enriched profile.UserContext, window []Message) (Bundle, error) {
	p := persona.Default()
	if settings.Persona != "" {
		var err error
		p, err = persona.Lookup(settings.Persona)
		if err != nil {
			return Bundle{}, fmt.Errorf("build prompt: %w", err)
		}
	}

	level := settings.Intensity
	if level == "" {
		level = persona.DefaultIntensity
	}

	var sb strings.Builder
	sb.WriteString(roleFraming)
	sb.WriteString("\n\nPERSONA: ")
	sb.WriteString(p.DisplayName)
	sb.WriteString("\n")
	sb.WriteString(p.Description)
	sb.WriteString("\nTraits: ")
	sb.WriteString(strings.Join(p.Traits, ", "))
	sb.WriteString("\nStyle rules:\n")
	sb.WriteString(p.StyleInstructions)
	sb.WriteString("\n\nINTENSITY: ")
	sb.WriteString(level.Instruction())
	sb.WriteString("\n\n")
	if settings.AllowProfanity {
		sb.WriteString("Profanity is permitted when it lands the joke harder. Use it sparingly, never as a crutch.")
	} else {
		sb.WriteString("Do not use profanity of any kind. Keep every word broadcast-clean.")
	}
	sb.WriteString("\n\n")
	sb.WriteString(safetyClause)

	return Bundle{
		System:           sb.String(),
		ContextNarrative: profile.Narrative(enriched),
		Messages:         window,
	}, nil
}
