package roast

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/apresai/roastbot/internal/prompt"
)

// Sender identifies which side of the conversation produced a turn.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Turn is one entry in the conversation transcript. IDs are ULIDs, so
// lexicographic order is chronological order.
type Turn struct {
	ID        string
	Text      string
	Sender    Sender
	CreatedAt time.Time
	// Flagged turns stay visible in the transcript but are excluded from
	// any prompt sent to a provider (safety exchanges).
	Flagged bool
}

// Window holds the full append-only transcript for one chat session.
// Prompting reads only the most recent turns; display reads everything.
// One window per session, owned exclusively, so no lock.
type Window struct {
	sessionID string
	turns     []Turn
}

// NewWindow starts a fresh session with a new identity.
func NewWindow() *Window {
	return &Window{sessionID: newID()}
}

func newID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		// crypto/rand only fails when the platform entropy source is
		// broken; a zero-entropy ULID is still unique enough per window.
		return ulid.MustNew(ulid.Timestamp(time.Now()), nil).String()
	}
	return id.String()
}

// SessionID is the identity token checked before a late response commits.
func (w *Window) SessionID() string { return w.sessionID }

// Append records a turn and returns it.
func (w *Window) Append(text string, sender Sender, flagged bool) Turn {
	t := Turn{
		ID:        newID(),
		Text:      text,
		Sender:    sender,
		CreatedAt: time.Now(),
		Flagged:   flagged,
	}
	w.turns = append(w.turns, t)
	return t
}

// Turns returns a copy of the full transcript in chronological order.
func (w *Window) Turns() []Turn {
	out := make([]Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

// Len reports the transcript length including flagged turns.
func (w *Window) Len() int { return len(w.turns) }

// Recent returns the last n unflagged turns as prompt messages, bounding
// how much history rides along on every provider call.
func (w *Window) Recent(n int) []prompt.Message {
	var picked []Turn
	for i := len(w.turns) - 1; i >= 0 && len(picked) < n; i-- {
		if w.turns[i].Flagged {
			continue
		}
		picked = append(picked, w.turns[i])
	}

	out := make([]prompt.Message, 0, len(picked))
	for i := len(picked) - 1; i >= 0; i-- {
		role := prompt.RoleUser
		if picked[i].Sender == SenderAgent {
			role = prompt.RoleAssistant
		}
		out = append(out, prompt.Message{Role: role, Content: picked[i].Text})
	}
	return out
}

// Clear restarts the session: empty transcript, new identity. Any
// generation still in flight against the old identity will be discarded.
func (w *Window) Clear() {
	w.turns = nil
	w.sessionID = newID()
}
