package offline

import "github.com/apresai/roastbot/internal/persona"

// Phrase banks keyed by persona, then intensity. Hand-authored; the engine
// guarantees no line repeats until its bank has been fully dealt once.
var banks = map[string]map[persona.Intensity][]string{
	persona.KeySarcastic: {
		persona.Mild: {
			"Oh wow, another message. My day just keeps getting better.",
			"That was almost interesting. Almost.",
			"Fascinating. Truly. I'm taking notes. The notes say 'no'.",
			"You typed that out, read it back, and still hit send. Bold.",
			"Great input. Filing it under 'things that happened'.",
			"I'd clap, but I don't want to wake anyone who fell asleep reading that.",
		},
		persona.Medium: {
			"Your message has the energy of a participation trophy.",
			"I've read cereal boxes with more plot development than that.",
			"Somewhere, an autocomplete is embarrassed it suggested those words.",
			"That take is so lukewarm I could proof bread on it.",
			"You're really out here typing with the confidence of someone who's right.",
			"Congratulations, you've said something. That's where the achievements end.",
		},
		persona.Savage: {
			"I'd roast your message, but the content already did that to itself.",
			"Your keyboard deserves compensation for what you make it produce.",
			"That message is the reason 'seen' exists as a final reply.",
			"If mediocrity had a press release, you just drafted it.",
			"I've seen stronger arguments in a pillow fight.",
			"You bring everyone so much joy — mostly when you stop typing.",
		},
	},
	persona.KeyBrutal: {
		persona.Mild: {
			"Weak opener. Try again.",
			"That's it? That's the message?",
			"I've heard better material from a hold-music playlist.",
			"You're coasting. I can tell.",
			"Swing and a miss. Mostly miss.",
			"Half effort, half message, fully forgettable.",
		},
		persona.Medium: {
			"You typed that like it was going to go well for you.",
			"That message had no plan, no point, and no survivors.",
			"You walked into a roast bot and led with *that*. Brave. Wrong, but brave.",
			"Short version: no. Long version: still no, but louder.",
			"Your point collapsed faster than your last New Year's resolution.",
			"That's not a message, that's a cry for an editor.",
		},
		persona.Savage: {
			"You came here to get roasted and honestly, the bar was already on the floor.",
			"I don't need material. You *are* the material.",
			"That message was dead on arrival. I'm just here for the paperwork.",
			"Every word you typed made the sentence worse, and you typed a lot of words.",
			"You're not the main character. You're the cautionary tale in someone else's story.",
			"I'd tell you to quit while you're ahead, but that ship never docked.",
		},
	},
	persona.KeyWitty: {
		persona.Mild: {
			"I'd make a pun about your message, but it already made a joke of itself.",
			"You're like a software update: nobody asked, and now everything's slower.",
			"That message was a rough draft wearing a final-draft costume.",
			"If wit were Wi-Fi, you'd be on airplane mode.",
			"You're proof that autocorrect can only do so much heavy lifting.",
			"I've seen sharper points on a beach ball.",
		},
		persona.Medium: {
			"Your message is like decaf coffee: technically present, functionally pointless.",
			"You're the human equivalent of a loading spinner — lots of motion, no progress.",
			"That was a word salad, and someone forgot the dressing.",
			"You're like a browser with 47 tabs open: loud fan, nothing rendered.",
			"If comebacks were currency, you'd be paying in exposure.",
			"That message peaked at the first letter and it was downhill from there.",
		},
		persona.Savage: {
			"You're a limited edition — thankfully, very limited.",
			"Your message is like a soap opera plot: long, dramatic, and nobody's sure why it exists.",
			"You bring the same value to a conversation that a mime brings to a podcast.",
			"If cluelessness were an Olympic event you'd still find a way to come in fourth.",
			"You're the pop-up ad of people: unexpected, unwanted, and hard to close.",
			"Calling that message half-baked flatters the oven.",
		},
	},
	persona.KeyDeadpan: {
		persona.Mild: {
			"Noted. Unremarkable, but noted.",
			"Your message has been received. No further action will be taken.",
			"That was a sentence. Congratulations are not in order.",
			"I have processed your input. It did not change anything.",
			"Acknowledged. The bar remains untouched.",
			"Message logged under 'miscellaneous'.",
		},
		persona.Medium: {
			"Your message scored within normal parameters for disappointment.",
			"I ran your message through analysis. The analysis asked for a break.",
			"Statistically, someone had to send that. Unfortunately it was you.",
			"Your point has been weighed, measured, and quietly recycled.",
			"This conversation is proceeding exactly as poorly as forecast.",
			"Per my records, that is the third least interesting thing you've said. Progress.",
		},
		persona.Savage: {
			"I have reviewed your message. The review is that you should not have sent it.",
			"Your message has been classified as a workplace hazard for my circuits.",
			"In the official report, your message will be listed as the cause.",
			"Audit complete. Your contribution to this conversation remains at zero.",
			"I would describe your message as a tragedy, but tragedies have structure.",
			"Processing your message consumed resources that will not be recovered. A moment of silence.",
		},
	},
	persona.KeyTheatrical: {
		persona.Mild: {
			"O, what gentle mediocrity graces my stage this day!",
			"Hark! A message arrives — and the audience checks their programs.",
			"*gasps softly* You dare call that an entrance?",
			"The curtain rises on your message... and the crowd politely coughs.",
			"A noble attempt, sweet fool, worthy of at least one slow clap.",
			"Thy message, like a candle in the wind, flickers and is forgot.",
		},
		persona.Medium: {
			"BEHOLD! The user speaks, and the theater empties at intermission!",
			"*clutches chest* Such words! Such waste! Such wasted words!",
			"Thy message struts and frets its moment upon my screen, signifying nothing.",
			"What light through yonder window breaks? Not insight, certainly. Not from you.",
			"The critics are unanimous, dear player: one star, and that star is fleeing.",
			"O cruel fate, to cast me opposite a performer of thy... range.",
		},
		persona.Savage: {
			"A TRAGEDY IN ONE ACT: your message. The audience demands refunds. The playwright flees the country.",
			"*falls to knees* Never have so many words conveyed so catastrophically little!",
			"Shakespeare wrote fools with more depth than your entire message history.",
			"The stage is set, the lights ablaze, and you — YOU — forgot your only line.",
			"History shall record this message as the moment the muses filed for divorce.",
			"Exit, pursued by your own embarrassment. The bear declined the role.",
		},
	},
	persona.KeyChaotic: {
		persona.Mild: {
			"Your message has the same energy as a traffic cone in a swimming pool.",
			"In a parallel universe, that message was good. Not this one though.",
			"Today's forecast: 90% chance of whatever that was.",
			"If your message were a sandwich, it would be two slices of bread. Just bread.",
			"Somewhere a goose honked the exact emotional content of your message.",
			"Your message, reviewed as a hotel: two stars, 'the lobby existed'.",
		},
		persona.Medium: {
			"Nature documentary voice: 'Here we observe the user, attempting communication. The attempt fails. The herd moves on.'",
			"Your message is the IKEA furniture of thoughts — missing pieces and assembled wrong.",
			"Breaking news: local person says thing, nation sleeps through it.",
			"Haiku review of you: / words arrive with confidence / meaning stays at home.",
			"Your message just got rejected from a fortune cookie for being too vague.",
			"I fed your message to a magic 8-ball and it said 'ask again never'.",
		},
		persona.Savage: {
			"Your message is a sentient shrug wearing a trench coat of syllables, and the trench coat is doing all the work.",
			"Product review: 'User, 1 star. Arrived defective. Customer support unresponsive. Would not converse again.'",
			"Scientists studied your message and finally proved that nothing can, in fact, come from nothing.",
			"Your message escaped the group chat where it belonged and now we all have to live with that.",
			"In the museum of bad takes, your message has its own wing, a gift shop, and an audio tour narrated by regret.",
			"I showed your message to the void. The void screamed first.",
		},
	},
}

// contextLines are hand-authored overrides keyed by extracted context values.
// First non-empty category wins, in fixed priority order: profession,
// personality, location, interest.
var professionLines = map[string]string{
	"engineer":  "You debug code for a living but apparently not your own sentences.",
	"doctor":    "Years of medical training and your best diagnosis of this chat is still 'send it anyway'.",
	"teacher":   "You grade papers all day and somehow still gave that message a passing mark.",
	"lawyer":    "You bill by the hour and that message is the strongest case yet for a refund.",
	"artist":    "You call yourself creative, yet that message was painted entirely in beige.",
	"writer":    "A professional writer sent me that. The alphabet is considering legal action.",
	"chef":      "You season food for a living and still served me something that bland.",
	"student":   "You're paying tuition to learn, and that message suggests asking for the syllabus back.",
	"manager":   "You run meetings for a living, which explains why this conversation also accomplishes nothing.",
	"scientist": "Peer review would have caught that message. Shame you skipped it.",
	"sales":     "You close deals for a living and just failed to sell me a single sentence.",
	"driver":    "You drive all day and still managed to steer that message into a ditch.",
}

var personalityLines = map[string]string{
	"lazy":          "You procrastinated so long that even your roast showed up late.",
	"perfectionist": "A self-declared perfectionist sent that. The irony wrote itself — which is good, because you clearly didn't.",
	"anxious":       "You overthink everything, except apparently the part where you hit send.",
	"confident":     "All that confidence, and it still couldn't carry that message across the finish line.",
	"shy":           "You finally spoke up, and honestly, the silence had better material.",
	"loud":          "You have the volume of a stadium and the content of an empty one.",
	"stubborn":      "You're never wrong, except just now, in writing, with a timestamp.",
	"forgetful":     "You forget everything — including, apparently, how sentences end.",
	"messy":         "Your room and your message: both look like a before picture.",
	"cheap":         "You split every bill and it shows — even your message came in under budget.",
}

var locationLines = map[string]string{
	"new york":    "All that New York hustle and you still couldn't make that message work.",
	"los angeles": "Very LA of you to send a message that's all headshot, no résumé.",
	"london":      "The British gave us Shakespeare, and you're out here doing... whatever that was.",
	"texas":       "Everything's bigger in Texas except, apparently, the point of that message.",
	"florida":     "Florida Man finally checked his messages, I see.",
	"california":  "That message was so California it arrived late and blamed traffic.",
	"chicago":     "Deep-dish pizza: dense and satisfying. Your message: just dense.",
	"seattle":     "Your message is like Seattle weather — grey, drizzly, and everyone saw it coming.",
	"canada":      "Too polite to roast you properly? Sorry. Your message was terrible. Sorry again.",
	"australia":   "Everything in Australia can kill you, and your message nearly bored me to death. Checks out.",
	"midwest":     "Ope — gonna just sneak right past that message like it never happened.",
	"small town":  "Small-town life: one stoplight, one diner, and apparently one joke, which you just reused.",
}

var interestLines = map[string]string{
	"gaming":     "You've got thousands of hours in-game and apparently zero skill points in conversation.",
	"fitness":    "All those reps and you still couldn't carry that conversation.",
	"cooking":    "You meal-prep every Sunday but that message was raw in the middle.",
	"music":      "You curate playlists for every mood, and this message is the skip button's origin story.",
	"sports":     "You yell at refs onscreen all weekend but *that's* the call you made here?",
	"movies":     "You've seen every film on the service, and this message still has the plot of none of them.",
	"reading":    "All those books on your shelf, and that message reads like the back of a shampoo bottle.",
	"travel":     "You've been to twelve countries but that message never left the driveway.",
	"tech":       "Early adopter of everything except, apparently, proofreading.",
	"cars":       "You know your engine's compression ratio but sent a message firing on zero cylinders.",
	"pets":       "Your pet watched you type that and chose to look away. Respect their boundaries.",
	"social":     "You know the algorithm better than your friends, and that message would flop on both.",
	"outdoors":   "You summit mountains on weekends, yet couldn't get that message over a speed bump.",
	"anime":      "A thousand episodes watched, and your dialogue is still filler-arc material.",
	"board game": "You strategize three turns ahead at game night and still played *that* move here.",
}

// profanitySuffixes are appended (with fixed probability) when the caller
// allows profanity and intensity is savage. Kept at the comic-exasperation
// tier on purpose.
var profanitySuffixes = []string{
	" Damn, that was rough.",
	" Hell, even I felt that one.",
	" Absolute dumpster fire, no notes.",
	" Damn shame, honestly.",
	" What the hell was that, seriously.",
}

// Fallbacks is the persona-neutral canned bank used when a provider fails.
// These never reveal error detail and work for any persona.
var Fallbacks = []string{
	"I had such a good roast lined up that the universe censored it. You win this round.",
	"My roast was so hot the servers needed a minute. Consider this a mercy.",
	"Even I need a breather sometimes. Don't get comfortable.",
	"The roast gods demand I pace myself. You've been temporarily spared.",
	"I'm contractually obligated to pause between devastations. Back shortly.",
	"Technically a timeout, spiritually a dramatic pause. Your flaws aren't going anywhere.",
}
