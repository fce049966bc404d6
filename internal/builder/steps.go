package builder

import (
	"github.com/draftforge/draftforge/internal/rules"
)

// Step identifies a position in the creation sequence
type Step string

// The creation steps, in base order. Subclass, species traits, and lineage
// only appear when the chosen content calls for them.
const (
	StepClass             Step = "class"
	StepSubclass          Step = "subclass"
	StepClassChoices      Step = "class_choices"
	StepBackground        Step = "background"
	StepSpecies           Step = "species"
	StepSpeciesTraits     Step = "species_traits"
	StepLineage           Step = "lineage"
	StepLanguages         Step = "languages"
	StepAbilityScores     Step = "ability_scores"
	StepBackgroundBonuses Step = "background_bonuses"
	StepEquipment         Step = "equipment"
	StepComplete          Step = "complete"
)

// Steps lists every step in base order
var Steps = []Step{
	StepClass,
	StepSubclass,
	StepClassChoices,
	StepBackground,
	StepSpecies,
	StepSpeciesTraits,
	StepLineage,
	StepLanguages,
	StepAbilityScores,
	StepBackgroundBonuses,
	StepEquipment,
	StepComplete,
}

// IsValid reports whether s is one of the known steps
func (s Step) IsValid() bool {
	for _, step := range Steps {
		if s == step {
			return true
		}
	}
	return false
}

// NextStep computes the step that follows current for the given record. The
// class and species documents drive the conditional branches; either may be
// nil when the corresponding selection has not been made. The function is
// pure: it never mutates the record, and the applicator owns the only call
// sites that advance a record's step.
func NextStep(current Step, r *Record, class *rules.ClassDoc, species *rules.SpeciesDoc) Step {
	switch current {
	case StepClass:
		if class != nil && r.Level >= class.SubclassUnlockLevel() {
			return StepSubclass
		}
		return StepClassChoices
	case StepSubclass:
		return StepClassChoices
	case StepClassChoices:
		return StepBackground
	case StepBackground:
		return StepSpecies
	case StepSpecies:
		if species != nil && len(species.ChoiceTraits()) > 0 {
			return StepSpeciesTraits
		}
		if species != nil && species.HasLineages() {
			return StepLineage
		}
		return StepLanguages
	case StepSpeciesTraits:
		if species != nil && species.HasLineages() {
			return StepLineage
		}
		return StepLanguages
	case StepLineage:
		return StepLanguages
	case StepLanguages:
		return StepAbilityScores
	case StepAbilityScores:
		return StepBackgroundBonuses
	case StepBackgroundBonuses:
		return StepEquipment
	case StepEquipment:
		return StepComplete
	case StepComplete:
		// Terminal. Advancing past it is a no-op.
		return StepComplete
	default:
		return current
	}
}
