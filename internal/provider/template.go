package provider

import (
	"context"

	"github.com/apresai/roastbot/internal/offline"
	"github.com/apresai/roastbot/internal/persona"
	"github.com/apresai/roastbot/internal/profile"
	"github.com/apresai/roastbot/internal/prompt"
)

// Template is the offline adapter. It terminates every chain, so a fully
// unconfigured or fully failed session still produces an in-persona line.
// It snapshots settings at construction like every other adapter.
type Template struct {
	profile persona.Profile
	level   persona.Intensity
	profane bool
	stored  map[string]any
	engine  *offline.Engine
}

func NewTemplate(settings prompt.Settings, engine *offline.Engine) *Template {
	p := persona.Default()
	if settings.Persona != "" {
		if looked, err := persona.Lookup(settings.Persona); err == nil {
			p = looked
		}
	}
	level := settings.Intensity
	if level == "" {
		level = persona.DefaultIntensity
	}
	if engine == nil {
		engine = offline.NewEngine()
	}
	return &Template{
		profile: p,
		level:   level,
		profane: settings.AllowProfanity,
		stored:  settings.Profile,
		engine:  engine,
	}
}

func (p *Template) Name() string { return "template" }

// Generate never touches the network and never fails. It re-derives the
// enriched context from the latest user turn so personalized overrides
// stay available even when the caller skipped extraction.
func (p *Template) Generate(_ context.Context, b prompt.Bundle) (string, error) {
	live := profile.Analyze(b.LastUserMessage())
	enriched := profile.Merge(live, p.stored)
	return p.engine.Pick(p.profile, p.level, enriched, p.profane), nil
}
