package structs

type LampTuning struct {
	// Object is the fuel limited light source.
	Object  string `yaml:"object"`
	Budget  int    `yaml:"budget"`
	Message string `yaml:"message"`
}

type GlowTuning struct {
	// Object must be held for the glow to be noticed.
	Object string `yaml:"object"`
	Bright string `yaml:"bright"`
	Faint  string `yaml:"faint"`
	None   string `yaml:"none"`
}

type MeleeTuning struct {
	Damage int `yaml:"damage"`
	// Stagger is the percent chance that a villain blow staggers the player.
	Stagger int `yaml:"stagger"`
	// Hits is the default number of blows a villain takes.
	Hits      int    `yaml:"hits"`
	Staggered string `yaml:"staggered"`
	Glancing  string `yaml:"glancing"`
	Killed    string `yaml:"killed"`
}

type ThiefTuning struct {
	Object string `yaml:"object"`
	// Home is where the thief hides between appearances.
	Home string `yaml:"home"`
	// RobChance is the percent chance per turn that a present thief robs.
	RobChance int `yaml:"rob_chance"`
	// ItemChance is the percent chance each valuable in the room is taken.
	ItemChance int `yaml:"item_chance"`
	// AppearChance is the percent chance per turn that an absent thief shows up.
	AppearChance int    `yaml:"appear_chance"`
	Robbed       string `yaml:"robbed"`
	Appeared     string `yaml:"appeared"`
	// Flag remembers that the thief has been seen.
	Flag string `yaml:"flag"`
}

// Tuning holds the numbers and messages the turn scheduler and the handlers use.
type Tuning struct {
	Start    string      `yaml:"start"`
	MaxLoad  int         `yaml:"max_load"`
	MaxScore int         `yaml:"max_score"`
	Strength int         `yaml:"strength"`
	Lamp     LampTuning  `yaml:"lamp"`
	Glow     GlowTuning  `yaml:"glow"`
	Melee    MeleeTuning `yaml:"melee"`
	Thief    ThiefTuning `yaml:"thief"`
}

func DefaultTuning() Tuning {
	return Tuning{
		MaxLoad:  100,
		MaxScore: 350,
		Strength: 100,
		Lamp: LampTuning{
			Budget:  350,
			Message: "The lamp has run out of power.",
		},
		Glow: GlowTuning{
			Bright: "Your sword has begun to glow very brightly.",
			Faint:  "Your sword is glowing with a faint blue glow.",
			None:   "Your sword is no longer glowing.",
		},
		Melee: MeleeTuning{
			Damage:    20,
			Stagger:   30,
			Hits:      2,
			Staggered: "The troll's blow staggers you.",
			Glancing:  "The troll hits you with a glancing blow.",
			Killed:    "You have been killed.",
		},
		Thief: ThiefTuning{
			RobChance:    30,
			ItemChance:   100,
			AppearChance: 30,
			Robbed:       "The other occupant just left, still carrying his large bag.  You may not have noticed that he robbed you blind first.",
			Appeared:     "Someone carrying a large bag is casually leaning against one of the walls here.  He does not speak, but it is clear from his aspect that the bag will be taken only over his dead body.",
			Flag:         "THIEF-SEEN",
		},
	}
}
