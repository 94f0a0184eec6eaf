package profile

import "strings"

// Stored-profile keys written by the onboarding quiz. Values are either a
// string (scalar answers) or a []string (multi-select answers).
const (
	StoredProfession    = "profession"
	StoredLocation      = "location"
	StoredTraits        = "traits"
	StoredInterests     = "interests"
	StoredPhysical      = "physical"
	StoredCircumstances = "circumstances"
)

// quizTranslations maps the quiz's human-readable answers onto the
// extractor's canonical vocabulary so both sources speak the same language
// downstream. Unmapped answers pass through lower-cased verbatim; they are
// still informative prompt text even if no template knows them.
var quizTranslations = map[string]string{
	// professions
	"software engineer":   "engineer",
	"software developer":  "engineer",
	"web developer":       "engineer",
	"data scientist":      "scientist",
	"medical doctor":      "doctor",
	"registered nurse":    "doctor",
	"school teacher":      "teacher",
	"college professor":   "teacher",
	"graphic designer":    "artist",
	"content creator":     "writer",
	"business owner":      "manager",
	"project manager":     "manager",
	"sales representative": "sales",
	"truck driver":        "driver",
	"full-time student":   "student",

	// traits
	"chronic procrastinator": "lazy",
	"detail-oriented":        "perfectionist",
	"worrier":                "anxious",
	"life of the party":      "loud",
	"wallflower":             "shy",

	// interests
	"video games":     "gaming",
	"working out":     "fitness",
	"watching sports": "sports",
	"movies & tv":     "movies",
	"live music":      "music",

	// locations
	"new york city":      "new york",
	"the san francisco bay area": "california",
	"greater london":     "london",
	"rural area":         "small town",
}

// translate maps one quiz answer into canonical vocabulary.
func translate(answer string) string {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return ""
	}
	if canonical, ok := quizTranslations[a]; ok {
		return canonical
	}
	return a
}

func translateList(answers []string) []string {
	if len(answers) == 0 {
		return nil
	}
	out := make([]string, 0, len(answers))
	for _, a := range answers {
		if t := translate(a); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// storedString reads a scalar quiz answer, tolerating absent keys and
// non-string values.
func storedString(stored map[string]any, key string) string {
	if stored == nil {
		return ""
	}
	if s, ok := stored[key].(string); ok {
		return s
	}
	return ""
}

// storedList reads a multi-select quiz answer. Both []string and []any of
// strings appear in practice, depending on how the profile was decoded.
func storedList(stored map[string]any, key string) []string {
	if stored == nil {
		return nil
	}
	switch v := stored[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Merge combines the per-message context with the stored quiz profile.
// Scalars: the live message wins when it produced a value. Lists: the
// profile only fills in when the message produced nothing for that field.
func Merge(live UserContext, stored map[string]any) UserContext {
	merged := live

	if merged.Profession == "" {
		merged.Profession = translate(storedString(stored, StoredProfession))
	}
	if merged.Location == "" {
		merged.Location = translate(storedString(stored, StoredLocation))
	}
	if len(merged.PersonalityTraits) == 0 {
		merged.PersonalityTraits = translateList(storedList(stored, StoredTraits))
	}
	if len(merged.Interests) == 0 {
		merged.Interests = translateList(storedList(stored, StoredInterests))
	}
	if len(merged.PhysicalCharacteristics) == 0 {
		merged.PhysicalCharacteristics = translateList(storedList(stored, StoredPhysical))
	}
	if len(merged.LifeCircumstances) == 0 {
		merged.LifeCircumstances = translateList(storedList(stored, StoredCircumstances))
	}

	return merged
}

// Narrative renders the merged context as a short natural-language synthesis
// for the prompt builder, or an explicit minimal-context sentence when empty.
func Narrative(c UserContext) string {
	if c.IsEmpty() {
		return "Minimal context is known about this user; roast what they say, not who they are."
	}

	var parts []string
	if c.Profession != "" {
		parts = append(parts, "the user works as a "+c.Profession)
	}
	if c.Location != "" {
		parts = append(parts, "they are from "+c.Location)
	}
	if len(c.PersonalityTraits) > 0 {
		parts = append(parts, "personality: "+strings.Join(c.PersonalityTraits, ", "))
	}
	if len(c.Interests) > 0 {
		parts = append(parts, "interested in: "+strings.Join(c.Interests, ", "))
	}
	if len(c.PhysicalCharacteristics) > 0 {
		parts = append(parts, "notable features: "+strings.Join(c.PhysicalCharacteristics, ", "))
	}
	if len(c.LifeCircumstances) > 0 {
		parts = append(parts, "life situation: "+strings.Join(c.LifeCircumstances, ", "))
	}
	if len(c.MentionedTopics) > 0 {
		parts = append(parts, "recently mentioned: "+strings.Join(c.MentionedTopics, ", "))
	}

	return "What is known about the user: " + strings.Join(parts, "; ") + "."
}
