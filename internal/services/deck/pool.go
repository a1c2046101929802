package deck

import "github.com/kmuir/dirtyminds-go/internal/model"

// DefaultPool returns the built-in riddle set used when no pool file is
// configured. Each clue is innuendo-laden; each answer is mundane.
func DefaultPool() []model.Riddle {
	return []model.Riddle{
		{Clue: "I go in hard and come out soft, and you love to blow me.", Answer: "Chewing gum"},
		{Clue: "The more you play with me, the harder I get.", Answer: "A Rubik's cube"},
		{Clue: "I get wet before you do when we work together.", Answer: "A bar of soap"},
		{Clue: "You grab my head and slide me up and down all day.", Answer: "A zipper"},
		{Clue: "I'm long and hard, and when I get excited I spit.", Answer: "A water pistol"},
		{Clue: "You put your fingers in my holes and I make noise.", Answer: "A bowling ball"},
		{Clue: "The harder you rub me, the hotter I get.", Answer: "Your hands in winter"},
		{Clue: "I start out stiff, but in your mouth I turn soft and wet.", Answer: "Spaghetti"},
		{Clue: "Every night you take off my skin before you enjoy me.", Answer: "A banana"},
		{Clue: "I come in many sizes, and I drip when you squeeze me.", Answer: "A sponge"},
		{Clue: "You bounce up and down on me until you're out of breath.", Answer: "A trampoline"},
		{Clue: "I go up and down, and the faster I go the more you sweat.", Answer: "A skipping rope"},
		{Clue: "You blow me until I'm full, then play with me all day.", Answer: "A balloon"},
		{Clue: "The older I get, the longer and stiffer I become.", Answer: "A candle left in the cold"},
		{Clue: "I fit snugly over your finger when you slip me on.", Answer: "A thimble"},
	}
}
