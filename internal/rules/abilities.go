package rules

// The six ability names
const (
	AbilityStrength     = "Strength"
	AbilityDexterity    = "Dexterity"
	AbilityConstitution = "Constitution"
	AbilityIntelligence = "Intelligence"
	AbilityWisdom       = "Wisdom"
	AbilityCharisma     = "Charisma"
)

// Abilities lists the six ability names in standard order
var Abilities = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// IsAbility reports whether name is one of the six abilities
func IsAbility(name string) bool {
	for _, a := range Abilities {
		if a == name {
			return true
		}
	}
	return false
}

// BaseLanguage is the universal language every character knows. It is seeded
// into a fresh record and never dropped.
const BaseLanguage = "Common"

// StandardLanguages lists every recognized language
var StandardLanguages = []string{
	"Abyssal",
	"Celestial",
	"Common",
	"Deep Speech",
	"Draconic",
	"Dwarvish",
	"Elvish",
	"Giant",
	"Gnomish",
	"Goblin",
	"Halfling",
	"Infernal",
	"Orc",
	"Primordial",
	"Sylvan",
	"Undercommon",
}

// Alignments lists the valid alignment values
var Alignments = []string{
	"Lawful Good",
	"Neutral Good",
	"Chaotic Good",
	"Lawful Neutral",
	"True Neutral",
	"Chaotic Neutral",
	"Lawful Evil",
	"Neutral Evil",
	"Chaotic Evil",
}

// IsAlignment reports whether name is a valid alignment
func IsAlignment(name string) bool {
	for _, a := range Alignments {
		if a == name {
			return true
		}
	}
	return false
}
