package rules

import (
	"encoding/json"
	"strconv"
)

// Rule documents are authored independently, so every field beyond the name
// is optional. Accessors supply the defaults the engine relies on.

const (
	defaultSubclassLevel = 3
	defaultPointBudget   = 3
)

// ClassDoc describes a character class
type ClassDoc struct {
	Name                string                        `json:"name"`
	Description         string                        `json:"description,omitempty"`
	HitDie              string                        `json:"hit_die,omitempty"`
	PrimaryAbilities    []string                      `json:"primary_abilities,omitempty"`
	SavingThrows        []string                      `json:"saving_throws,omitempty"`
	ArmorProficiencies  []string                      `json:"armor_proficiencies,omitempty"`
	WeaponProficiencies []string                      `json:"weapon_proficiencies,omitempty"`
	SkillChoices        *SkillChoice                  `json:"skill_choices,omitempty"`
	SubclassLevel       int                           `json:"subclass_level,omitempty"`
	RecommendedScores   map[string]int                `json:"recommended_scores,omitempty"`
	Languages           []string                      `json:"languages,omitempty"`
	FeaturesByLevel     map[string]map[string]Feature `json:"features_by_level,omitempty"`
	EquipmentChoices    []EquipmentChoice             `json:"equipment_choices,omitempty"`
}

// SubclassUnlockLevel returns the level at which a subclass may be chosen
func (c *ClassDoc) SubclassUnlockLevel() int {
	if c.SubclassLevel > 0 {
		return c.SubclassLevel
	}
	return defaultSubclassLevel
}

// FeaturesAtLevel returns the features the class grants at exactly the given level
func (c *ClassDoc) FeaturesAtLevel(level int) map[string]Feature {
	return featuresAtLevel(c.FeaturesByLevel, level)
}

// SkillChoice describes a pick-N skill selection
type SkillChoice struct {
	Count   int      `json:"count"`
	Options []string `json:"options"`
}

// EquipmentChoice describes one starting-gear decision with its options. The
// engine records the chosen option ID only; expanding an option into concrete
// inventory is the equipment collaborator's concern.
type EquipmentChoice struct {
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Options     []EquipmentOption `json:"options"`
}

// EquipmentOption is one selectable bundle within an equipment choice
type EquipmentOption struct {
	ID    string   `json:"id"`
	Label string   `json:"label,omitempty"`
	Items []string `json:"items,omitempty"`
}

// HasOption reports whether the choice declares the given option ID
func (e *EquipmentChoice) HasOption(optionID string) bool {
	for _, o := range e.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// SubclassDoc describes a subclass of a class
type SubclassDoc struct {
	Name            string                        `json:"name"`
	Class           string                        `json:"class"`
	Description     string                        `json:"description,omitempty"`
	FeaturesByLevel map[string]map[string]Feature `json:"features_by_level,omitempty"`
}

// FeaturesAtLevel returns the features the subclass grants at exactly the given level
func (s *SubclassDoc) FeaturesAtLevel(level int) map[string]Feature {
	return featuresAtLevel(s.FeaturesByLevel, level)
}

// BackgroundDoc describes a background
type BackgroundDoc struct {
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	SkillProficiencies []string           `json:"skill_proficiencies,omitempty"`
	ToolProficiencies  []string           `json:"tool_proficiencies,omitempty"`
	Languages          []string           `json:"languages,omitempty"`
	ExtraLanguages     int                `json:"extra_languages,omitempty"`
	Feat               string             `json:"feat,omitempty"`
	Features           map[string]Feature `json:"features,omitempty"`
	AbilityScores      *BackgroundASI     `json:"ability_scores,omitempty"`
	EquipmentChoices   []EquipmentChoice  `json:"equipment_choices,omitempty"`
}

// BackgroundASI describes a background's ability score increase rules
type BackgroundASI struct {
	TotalPoints int            `json:"total_points,omitempty"`
	Suggested   map[string]int `json:"suggested,omitempty"`
	Options     []string       `json:"options,omitempty"`
}

// PointBudget returns the total bonus points the background grants
func (b *BackgroundDoc) PointBudget() int {
	if b.AbilityScores != nil && b.AbilityScores.TotalPoints > 0 {
		return b.AbilityScores.TotalPoints
	}
	return defaultPointBudget
}

// BonusAbilities returns the abilities the background's bonus points may be
// spent on, defaulting to all six.
func (b *BackgroundDoc) BonusAbilities() []string {
	if b.AbilityScores != nil && len(b.AbilityScores.Options) > 0 {
		return b.AbilityScores.Options
	}
	return Abilities
}

// SuggestedBonuses returns the background's suggested bonus split, which may
// be empty.
func (b *BackgroundDoc) SuggestedBonuses() map[string]int {
	if b.AbilityScores == nil {
		return nil
	}
	return b.AbilityScores.Suggested
}

// SpeciesDoc describes a species
type SpeciesDoc struct {
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Speed          int              `json:"speed,omitempty"`
	Darkvision     int              `json:"darkvision,omitempty"`
	Languages      []string         `json:"languages,omitempty"`
	ExtraLanguages int              `json:"extra_languages,omitempty"`
	Traits         map[string]Trait `json:"traits,omitempty"`
	Lineages       []string         `json:"lineages,omitempty"`
}

// HasLineages reports whether the species declares lineages
func (s *SpeciesDoc) HasLineages() bool {
	return len(s.Lineages) > 0
}

// DeclaresLineage reports whether name is one of the declared lineages
func (s *SpeciesDoc) DeclaresLineage(name string) bool {
	for _, l := range s.Lineages {
		if l == name {
			return true
		}
	}
	return false
}

// ChoiceTraits returns the names of the species' choice-type traits
func (s *SpeciesDoc) ChoiceTraits() []string {
	var names []string
	for name, trait := range s.Traits {
		if trait.IsChoice() {
			names = append(names, name)
		}
	}
	return names
}

// LineageDoc describes one lineage of a species. Speed and darkvision, when
// set, override the species values.
type LineageDoc struct {
	Name       string           `json:"name"`
	Species    string           `json:"species"`
	Speed      int              `json:"speed,omitempty"`
	Darkvision int              `json:"darkvision,omitempty"`
	Traits     map[string]Trait `json:"traits,omitempty"`
}

// FeatDoc describes a feat
type FeatDoc struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Trait is a species or lineage trait: either plain feature text or a
// choice the player resolves during creation.
type Trait struct {
	Description string                  `json:"description"`
	Scaling     map[string][]Breakpoint `json:"scaling,omitempty"`
	Choice      *TraitChoice            `json:"choice,omitempty"`
}

// TraitChoice lists the options for a choice-type trait
type TraitChoice struct {
	Options []string `json:"options"`
	Count   int      `json:"count,omitempty"`
}

// UnmarshalJSON accepts both the bare-string and the object form
func (t *Trait) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Trait{Description: s}
		return nil
	}

	type alias Trait
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Trait(a)
	return nil
}

// IsChoice reports whether the trait requires a player selection
func (t Trait) IsChoice() bool {
	return t.Choice != nil && len(t.Choice.Options) > 0
}

// HasOption reports whether a choice-type trait declares the given option
func (t Trait) HasOption(option string) bool {
	if t.Choice == nil {
		return false
	}
	for _, o := range t.Choice.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Feature returns the trait's feature text with its scaling table
func (t Trait) Feature() Feature {
	return Feature{Description: t.Description, Scaling: t.Scaling}
}

// Levels are authored as JSON object keys, so they are strings.
func featuresAtLevel(byLevel map[string]map[string]Feature, level int) map[string]Feature {
	if byLevel == nil {
		return nil
	}
	return byLevel[strconv.Itoa(level)]
}
