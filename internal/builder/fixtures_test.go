package builder_test

import (
	"github.com/draftforge/draftforge/internal/catalog"
	"github.com/draftforge/draftforge/internal/rules"
)

// testCatalog assembles the content the builder tests run against: two
// classes, a branching species, and backgrounds with and without authored
// bonus rules.
func testCatalog() *catalog.Store {
	fighter := &rules.ClassDoc{
		Name:                "Fighter",
		HitDie:              "d10",
		PrimaryAbilities:    []string{rules.AbilityStrength, rules.AbilityDexterity},
		SavingThrows:        []string{rules.AbilityStrength, rules.AbilityConstitution},
		ArmorProficiencies:  []string{"Light", "Medium", "Heavy", "Shields"},
		WeaponProficiencies: []string{"Simple", "Martial"},
		SubclassLevel:       3,
		SkillChoices: &rules.SkillChoice{
			Count:   2,
			Options: []string{"Acrobatics", "Athletics", "History", "Insight", "Intimidation", "Perception", "Survival"},
		},
		RecommendedScores: map[string]int{
			rules.AbilityStrength:     15,
			rules.AbilityDexterity:    13,
			rules.AbilityConstitution: 14,
			rules.AbilityIntelligence: 8,
			rules.AbilityWisdom:       10,
			rules.AbilityCharisma:     12,
		},
		FeaturesByLevel: map[string]map[string]rules.Feature{
			"1": {
				"Second Wind": {
					Description: "Regain hit points as a bonus action, {uses} uses per rest.",
					Scaling: map[string][]rules.Breakpoint{
						"uses": {
							{MinLevel: 1, Value: "2"},
							{MinLevel: 4, Value: "3"},
							{MinLevel: 10, Value: "4"},
						},
					},
				},
			},
			"2": {"Action Surge": {Description: "Take one additional action."}},
			"5": {"Extra Attack": {Description: "Attack twice when you take the Attack action."}},
		},
		EquipmentChoices: []rules.EquipmentChoice{
			{
				ID: "fighter-armor",
				Options: []rules.EquipmentOption{
					{ID: "chain-mail"},
					{ID: "leather-and-longbow"},
				},
			},
			{
				ID: "fighter-weapons",
				Options: []rules.EquipmentOption{
					{ID: "greatsword"},
					{ID: "longsword-and-shield"},
				},
			},
		},
	}

	cleric := &rules.ClassDoc{
		Name:          "Cleric",
		HitDie:        "d8",
		SavingThrows:  []string{rules.AbilityWisdom, rules.AbilityCharisma},
		SubclassLevel: 1,
	}

	champion := &rules.SubclassDoc{
		Name:  "Champion",
		Class: "Fighter",
		FeaturesByLevel: map[string]map[string]rules.Feature{
			"3": {
				"Improved Critical": {
					Description: "Your weapon attacks score a critical hit on a roll of {range}.",
					Scaling: map[string][]rules.Breakpoint{
						"range": {
							{MinLevel: 3, Value: "19-20"},
							{MinLevel: 15, Value: "18-20"},
						},
					},
				},
			},
		},
	}

	battleMaster := &rules.SubclassDoc{
		Name:  "Battle Master",
		Class: "Fighter",
		FeaturesByLevel: map[string]map[string]rules.Feature{
			"3": {"Combat Superiority": {Description: "You learn maneuvers fueled by superiority dice."}},
		},
	}

	soldier := &rules.BackgroundDoc{
		Name:               "Soldier",
		SkillProficiencies: []string{"Athletics", "Intimidation"},
		ToolProficiencies:  []string{"Gaming Set"},
		Feat:               "Savage Attacker",
		AbilityScores: &rules.BackgroundASI{
			TotalPoints: 3,
			Suggested: map[string]int{
				rules.AbilityStrength:     2,
				rules.AbilityConstitution: 1,
			},
			Options: []string{rules.AbilityStrength, rules.AbilityDexterity, rules.AbilityConstitution},
		},
	}

	sage := &rules.BackgroundDoc{
		Name:               "Sage",
		SkillProficiencies: []string{"Arcana", "History"},
		ExtraLanguages:     2,
		Feat:               "Magic Initiate",
	}

	human := &rules.SpeciesDoc{
		Name:           "Human",
		Speed:          30,
		Languages:      []string{"Common"},
		ExtraLanguages: 1,
		Traits: map[string]rules.Trait{
			"Resourceful": {Description: "Gain inspiration after a long rest."},
		},
	}

	elf := &rules.SpeciesDoc{
		Name:       "Elf",
		Speed:      30,
		Darkvision: 60,
		Languages:  []string{"Common", "Elvish"},
		Traits: map[string]rules.Trait{
			"Fey Ancestry": {Description: "You have advantage on saves against being charmed."},
			"Keen Senses": {
				Description: "You have proficiency in one of the listed skills.",
				Choice:      &rules.TraitChoice{Options: []string{"Insight", "Perception", "Survival"}},
			},
		},
		Lineages: []string{"High Elf", "Wood Elf"},
	}

	highElf := &rules.LineageDoc{
		Name:    "High Elf",
		Species: "Elf",
		Traits: map[string]rules.Trait{
			"Cantrip": {Description: "You know one wizard cantrip."},
		},
	}

	woodElf := &rules.LineageDoc{
		Name:    "Wood Elf",
		Species: "Elf",
		Speed:   35,
		Traits: map[string]rules.Trait{
			"Fleet of Foot": {Description: "Your walking speed increases to 35 feet."},
		},
	}

	return catalog.NewMemory(catalog.Content{
		Classes:     []*rules.ClassDoc{fighter, cleric},
		Subclasses:  []*rules.SubclassDoc{champion, battleMaster},
		Backgrounds: []*rules.BackgroundDoc{soldier, sage},
		Species:     []*rules.SpeciesDoc{human, elf},
		Lineages:    []*rules.LineageDoc{highElf, woodElf},
		Feats: []*rules.FeatDoc{
			{Name: "Savage Attacker", Description: "Once per turn, reroll a weapon attack's damage.", Category: "origin"},
			{Name: "Magic Initiate", Description: "Learn two cantrips and a level 1 spell.", Category: "origin"},
		},
	})
}
