package app

import "math/rand"

// DefaultPrompts is the built-in prompt pool, grouped loosely by theme
var DefaultPrompts = []string{
	// Food & Drink
	"Name a popular pizza topping",
	"Name a fruit that's yellow",
	"Name a vegetable that's green",
	"Name a fast food restaurant",
	"Name a flavor of ice cream",
	"Name something you put on a sandwich",
	"Name a breakfast food",
	"Name a type of pasta",
	"Name a dessert",
	"Name a type of cheese",
	"Name a soft drink",
	"Name a type of candy",

	// Animals
	"Name a pet that people keep at home",
	"Name an animal you'd see at a zoo",
	"Name an animal that lives in the ocean",
	"Name a bird",
	"Name an insect",
	"Name an animal with stripes",
	"Name an animal that's dangerous",
	"Name a farm animal",

	// Entertainment
	"Name a superhero",
	"Name a Disney movie",
	"Name a TV show everyone has seen",
	"Name a famous singer",
	"Name a video game",
	"Name a board game",
	"Name a musical instrument",
	"Name a movie genre",
	"Name a famous actor",
	"Name a social media platform",

	// Sports & Activities
	"Name a sport played with a ball",
	"Name an Olympic sport",
	"Name something you do at the gym",
	"Name a hobby",
	"Name a water sport",
	"Name a card game",

	// Places
	"Name a country in Europe",
	"Name a US state",
	"Name a famous city",
	"Name somewhere you'd go on vacation",
	"Name a place in a house",
	"Name something you find in a kitchen",
	"Name something in a bathroom",
	"Name a type of store",

	// Nature & Weather
	"Name a color of the rainbow",
	"Name a type of weather",
	"Name a flower",
	"Name a tree",
	"Name something in the sky",
	"Name a season",

	// Time & Occasions
	"Name a month of the year",
	"Name a day of the week",
	"Name a holiday",
	"Name something you'd bring to a party",
	"Name something you'd bring to the beach",

	// Objects & Things
	"Name something in your pocket or purse",
	"Name a piece of furniture",
	"Name something with buttons",
	"Name something you plug in",
	"Name a type of shoe",
	"Name something you wear on your head",
	"Name a vehicle",
	"Name a tool",

	// School & Work
	"Name a school subject",
	"Name something in an office",
	"Name a profession",
	"Name something a teacher says",

	// Miscellaneous
	"Name something that's cold",
	"Name something that's hot",
	"Name something you're afraid of",
	"Name something you do every morning",
	"Name something you lose often",
	"Name a bad habit",
	"Name something that smells good",
	"Name a reason to call in sick",
	"Name something you save up to buy",
	"Name a New Year's resolution",
}

// PromptBank yields prompts without repetition within a room's match
type PromptBank struct {
	prompts []string
}

// NewPromptBank creates a prompt bank over the default pool
func NewPromptBank() *PromptBank {
	return &PromptBank{prompts: DefaultPrompts}
}

// NewPromptBankWith creates a prompt bank over a custom pool
func NewPromptBankWith(prompts []string) *PromptBank {
	return &PromptBank{prompts: prompts}
}

// Size returns the pool size
func (b *PromptBank) Size() int {
	return len(b.prompts)
}

// Next returns a random prompt not in the used list. Once the pool is
// exhausted it samples from the full pool again, so repeats become possible.
func (b *PromptBank) Next(used []string) string {
	usedSet := make(map[string]bool, len(used))
	for _, p := range used {
		usedSet[p] = true
	}

	available := make([]string, 0, len(b.prompts))
	for _, p := range b.prompts {
		if !usedSet[p] {
			available = append(available, p)
		}
	}

	if len(available) == 0 {
		return b.prompts[rand.Intn(len(b.prompts))]
	}
	return available[rand.Intn(len(available))]
}
