// Package profile derives structured personalization data from user text
// and merges it with the long-lived quiz profile collected at onboarding.
package profile

import "strings"

// UserContext is the per-message, ephemeral view of what a single inbound
// message reveals about the user. Every field is optional; callers must
// tolerate a fully empty context.
type UserContext struct {
	Profession              string
	PersonalityTraits       []string
	Location                string
	Interests               []string
	PhysicalCharacteristics []string
	LifeCircumstances       []string
	MentionedTopics         []string
}

// IsEmpty reports whether extraction found nothing at all.
func (c UserContext) IsEmpty() bool {
	return c.Profession == "" && c.Location == "" &&
		len(c.PersonalityTraits) == 0 && len(c.Interests) == 0 &&
		len(c.PhysicalCharacteristics) == 0 && len(c.LifeCircumstances) == 0 &&
		len(c.MentionedTopics) == 0
}

// Keyword dictionaries. Scalar categories (profession, location) take the
// first matching entry; list categories collect every match.
var professionKeywords = map[string][]string{
	"engineer":  {"engineer", "developer", "programmer", "coder", "software", "devops", "sysadmin"},
	"doctor":    {"doctor", "physician", "surgeon", "nurse", "medic", "dentist"},
	"teacher":   {"teacher", "professor", "tutor", "lecturer", "educator"},
	"lawyer":    {"lawyer", "attorney", "paralegal", "solicitor"},
	"artist":    {"artist", "painter", "musician", "singer", "designer", "photographer"},
	"writer":    {"writer", "author", "journalist", "blogger", "copywriter"},
	"chef":      {"chef", "cook", "baker", "barista"},
	"student":   {"student", "undergrad", "grad school", "university", "college"},
	"manager":   {"manager", "executive", "ceo", "director", "supervisor"},
	"scientist": {"scientist", "researcher", "biologist", "chemist", "physicist"},
	"sales":     {"salesperson", "sales rep", "realtor", "recruiter", "marketer"},
	"driver":    {"driver", "trucker", "uber", "delivery"},
}

var traitKeywords = map[string][]string{
	"lazy":          {"lazy", "procrastinate", "procrastinating", "can't be bothered", "unmotivated"},
	"perfectionist": {"perfectionist", "ocd about", "obsessive", "control freak"},
	"anxious":       {"anxious", "nervous", "worry a lot", "overthink", "overthinking"},
	"confident":     {"confident", "self-assured", "cocky", "arrogant"},
	"shy":           {"shy", "introvert", "introverted", "awkward", "antisocial"},
	"loud":          {"loud", "extrovert", "extroverted", "talkative", "chatty"},
	"stubborn":      {"stubborn", "hardheaded", "never wrong", "won't listen"},
	"forgetful":     {"forgetful", "keep forgetting", "always forget", "absent-minded"},
	"messy":         {"messy", "disorganized", "cluttered", "slob"},
	"cheap":         {"cheap", "frugal", "stingy", "tightwad", "penny pincher"},
}

var locationKeywords = map[string][]string{
	"new york":    {"new york", "nyc", "brooklyn", "manhattan", "queens"},
	"los angeles": {"los angeles", " la ", "hollywood", "socal"},
	"london":      {"london", "england", "uk "},
	"texas":       {"texas", "dallas", "houston", "austin"},
	"florida":     {"florida", "miami", "orlando", "tampa"},
	"california":  {"california", "san francisco", "bay area", "silicon valley", "san diego"},
	"chicago":     {"chicago", "illinois"},
	"seattle":     {"seattle", "washington state"},
	"canada":      {"canada", "toronto", "vancouver", "montreal"},
	"australia":   {"australia", "sydney", "melbourne", "aussie"},
	"midwest":     {"midwest", "ohio", "indiana", "iowa", "nebraska", "kansas"},
	"small town":  {"small town", "rural", "middle of nowhere", "the sticks"},
}

var interestKeywords = map[string][]string{
	"gaming":     {"gaming", "video game", "videogame", "gamer", "playstation", "xbox", "nintendo", "fortnite", "minecraft"},
	"fitness":    {"gym", "workout", "working out", "lifting", "crossfit", "running", "marathon", "yoga"},
	"cooking":    {"cooking", "baking", "recipe", "foodie", "meal prep"},
	"music":      {"music", "guitar", "piano", "concert", "spotify", "vinyl", "playlist"},
	"sports":     {"football", "basketball", "soccer", "baseball", "hockey", "tennis", "golf", "fantasy league"},
	"movies":     {"movie", "film", "netflix", "cinema", "binge watch", "binge-watch", "tv show"},
	"reading":    {"reading", "books", "novel", "bookworm", "audiobook"},
	"travel":     {"travel", "traveling", "travelling", "backpacking", "vacation", "road trip"},
	"tech":       {"crypto", "nft", "startup", "coding", "ai ", "gadget", "mechanical keyboard"},
	"cars":       {"car guy", "car girl", "my car", "motorcycle", "racing", "tesla"},
	"pets":       {"my dog", "my cat", "puppy", "kitten", "my pet"},
	"social":     {"instagram", "tiktok", "twitter", "influencer", "selfie", "followers"},
	"outdoors":   {"hiking", "camping", "fishing", "hunting", "climbing"},
	"anime":      {"anime", "manga", "cosplay", "weeb"},
	"board game": {"board game", "dungeons and dragons", "d&d", "chess"},
}

var physicalKeywords = map[string][]string{
	"tall":     {"i'm tall", "im tall", "being tall", "too tall"},
	"short":    {"i'm short", "im short", "being short", "too short", "height"},
	"bald":     {"bald", "balding", "losing my hair", "receding hairline", "hair loss"},
	"beard":    {"my beard", "growing a beard", "facial hair"},
	"glasses":  {"my glasses", "wear glasses", "nearsighted", "shortsighted"},
	"gym body": {"my gains", "my abs", "my biceps", "swole"},
	"out of shape": {
		"out of shape", "dad bod", "beer belly", "gained weight", "put on weight",
	},
	"tattoos": {"my tattoo", "my tattoos", "getting inked", "sleeve tattoo"},
}

var circumstanceKeywords = map[string][]string{
	"single":       {"i'm single", "im single", "being single", "no girlfriend", "no boyfriend", "forever alone", "dating apps", "tinder", "got dumped", "my ex"},
	"married":      {"my wife", "my husband", "my spouse", "married", "wedding anniversary"},
	"parent":       {"my kids", "my children", "my son", "my daughter", "being a parent", "my toddler", "my baby"},
	"broke":        {"i'm broke", "im broke", "no money", "can't afford", "cant afford", "paycheck to paycheck", "in debt", "student loans"},
	"unemployed":   {"unemployed", "lost my job", "got fired", "laid off", "job hunting", "job search"},
	"new job":      {"new job", "just got hired", "started working", "first day at work"},
	"roommates":    {"my roommate", "my roommates", "living with my parents", "parents' basement", "moved back home"},
	"tired":        {"no sleep", "can't sleep", "cant sleep", "insomnia", "exhausted", "burnt out", "burned out"},
	"working late": {"overtime", "working late", "working weekends", "crunch time"},
}

var topicKeywords = map[string][]string{
	"work":          {"my job", "my boss", "coworker", "co-worker", "the office", "meeting", "deadline"},
	"dating":        {"dating", "my date", "crush", "relationship"},
	"food":          {"pizza", "burger", "tacos", "coffee", "junk food", "fast food", "diet"},
	"money":         {"salary", "raise", "rent", "bills", "taxes", "investment"},
	"weather":       {"raining", "snowing", "heatwave", "freezing", "the weather"},
	"weekend":       {"weekend", "friday", "saturday", "sunday", "day off"},
	"internet":      {"wifi", "internet", "my phone", "screen time", "doomscrolling"},
	"mornings":      {"morning person", "woke up late", "overslept", "alarm clock", "snooze"},
	"procrastination": {
		"procrastination", "putting it off", "last minute", "all-nighter", "all nighter",
	},
}

// Analyze maps raw user text to a structured partial UserContext via
// keyword containment. Deterministic and pure: no matches means empty
// fields, never a guess.
func Analyze(text string) UserContext {
	t := " " + strings.ToLower(text) + " "

	var ctx UserContext
	ctx.Profession = firstMatch(t, professionKeywords, professionOrder)
	ctx.Location = firstMatch(t, locationKeywords, locationOrder)
	ctx.PersonalityTraits = allMatches(t, traitKeywords, traitOrder)
	ctx.Interests = allMatches(t, interestKeywords, interestOrder)
	ctx.PhysicalCharacteristics = allMatches(t, physicalKeywords, physicalOrder)
	ctx.LifeCircumstances = allMatches(t, circumstanceKeywords, circumstanceOrder)
	ctx.MentionedTopics = allMatches(t, topicKeywords, topicOrder)
	return ctx
}

// Category orders keep scalar first-match-wins deterministic across runs;
// map iteration order would not be.
var (
	professionOrder = []string{
		"engineer", "doctor", "teacher", "lawyer", "artist", "writer",
		"chef", "student", "manager", "scientist", "sales", "driver",
	}
	traitOrder = []string{
		"lazy", "perfectionist", "anxious", "confident", "shy", "loud",
		"stubborn", "forgetful", "messy", "cheap",
	}
	locationOrder = []string{
		"new york", "los angeles", "london", "texas", "florida", "california",
		"chicago", "seattle", "canada", "australia", "midwest", "small town",
	}
	interestOrder = []string{
		"gaming", "fitness", "cooking", "music", "sports", "movies", "reading",
		"travel", "tech", "cars", "pets", "social", "outdoors", "anime", "board game",
	}
	physicalOrder = []string{
		"tall", "short", "bald", "beard", "glasses", "gym body", "out of shape", "tattoos",
	}
	circumstanceOrder = []string{
		"single", "married", "parent", "broke", "unemployed", "new job",
		"roommates", "tired", "working late",
	}
	topicOrder = []string{
		"work", "dating", "food", "money", "weather", "weekend", "internet",
		"mornings", "procrastination",
	}
)

func firstMatch(text string, dict map[string][]string, order []string) string {
	for _, category := range order {
		for _, kw := range dict[category] {
			if strings.Contains(text, kw) {
				return category
			}
		}
	}
	return ""
}

func allMatches(text string, dict map[string][]string, order []string) []string {
	var out []string
	for _, category := range order {
		for _, kw := range dict[category] {
			if strings.Contains(text, kw) {
				out = append(out, category)
				break
			}
		}
	}
	return out
}
