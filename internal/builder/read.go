package builder

import (
	"github.com/draftforge/draftforge/internal/errors"
	"github.com/draftforge/draftforge/internal/rules"
)

// AbilityScoreOptions summarizes the ability score decision: the class's
// recommended allocation plus whatever the record already holds.
type AbilityScoreOptions struct {
	Method      string         `json:"method,omitempty"`
	Recommended map[string]int `json:"recommended,omitempty"`
	Scores      map[string]int `json:"scores,omitempty"`
}

// BackgroundBonusOptions summarizes the background bonus decision: the
// point budget, the suggested split, and the abilities bonuses may go to.
type BackgroundBonusOptions struct {
	Budget    int            `json:"budget"`
	Suggested map[string]int `json:"suggested,omitempty"`
	Abilities []string       `json:"abilities"`
	Method    string         `json:"method,omitempty"`
	Bonuses   map[string]int `json:"bonuses,omitempty"`
}

// ResolvedFeature is a feature with its scaled placeholders substituted for
// the record's level.
type ResolvedFeature struct {
	Name        string `json:"name"`
	Level       int    `json:"level,omitempty"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

// TraitOption describes one choice-type trait of the selected species
type TraitOption struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Count       int      `json:"count,omitempty"`
	Selected    string   `json:"selected,omitempty"`
}

// LanguageOptions summarizes the language decision: what the content grants
// outright, how many more may be picked, and from what.
type LanguageOptions struct {
	Base      string   `json:"base"`
	Granted   []string `json:"granted"`
	Allowance int      `json:"allowance"`
	Available []string `json:"available"`
	Selected  []string `json:"selected,omitempty"`
}

// EquipmentOption is one starting-gear decision with the record's current
// selection, if any.
type EquipmentOption struct {
	Source      string   `json:"source"`
	ID          string   `json:"id"`
	Description string   `json:"description,omitempty"`
	Options     []string `json:"options"`
	Selected    string   `json:"selected,omitempty"`
}

// AbilityScoreOptions returns the ability score summary for the record
func (a *Applicator) AbilityScoreOptions(r *Record) (*AbilityScoreOptions, error) {
	if r.Class == "" {
		return nil, errors.FailedPrecondition("select a class before ability scores").
			WithMeta("field", ChoiceClass)
	}
	class, err := a.catalog.GetClass(r.Class)
	if err != nil {
		return nil, err
	}
	return &AbilityScoreOptions{
		Method:      r.AbilityMethod,
		Recommended: cloneIntMap(class.RecommendedScores),
		Scores:      cloneIntMap(r.AbilityScores),
	}, nil
}

// BackgroundBonusOptions returns the background bonus summary for the record
func (a *Applicator) BackgroundBonusOptions(r *Record) (*BackgroundBonusOptions, error) {
	if r.Background == "" {
		return nil, errors.FailedPrecondition("select a background before its bonuses").
			WithMeta("field", ChoiceBackground)
	}
	background, err := a.catalog.GetBackground(r.Background)
	if err != nil {
		return nil, err
	}
	return &BackgroundBonusOptions{
		Budget:    background.PointBudget(),
		Suggested: dropZeroes(background.SuggestedBonuses()),
		Abilities: background.BonusAbilities(),
		Method:    r.BonusMethod,
		Bonuses:   cloneIntMap(r.BackgroundBonuses),
	}, nil
}

// ClassFeatures returns the class and subclass features granted up to the
// record's level, resolved for that level.
func (a *Applicator) ClassFeatures(r *Record) ([]ResolvedFeature, error) {
	if r.Class == "" {
		return nil, errors.FailedPrecondition("select a class before its features").
			WithMeta("field", ChoiceClass)
	}
	var features []ResolvedFeature
	for _, source := range []string{SourceClass, SourceSubclass} {
		for _, f := range r.Features[source] {
			features = append(features, ResolvedFeature{
				Name:        f.Name,
				Level:       f.Level,
				Source:      source,
				Description: f.ResolveAt(r.Level),
			})
		}
	}
	return features, nil
}

// SpeciesTraitOptions returns the choice-type traits of the selected
// species with the record's selections filled in.
func (a *Applicator) SpeciesTraitOptions(r *Record) ([]TraitOption, error) {
	if r.Species == "" {
		return nil, errors.FailedPrecondition("select a species before its traits").
			WithMeta("field", ChoiceSpecies)
	}
	species, err := a.catalog.GetSpecies(r.Species)
	if err != nil {
		return nil, err
	}
	var options []TraitOption
	for _, name := range sortedKeys(species.Traits) {
		t := species.Traits[name]
		if !t.IsChoice() {
			continue
		}
		options = append(options, TraitOption{
			Name:        name,
			Description: t.Feature().ResolveAt(r.Level),
			Options:     t.Choice.Options,
			Count:       t.Choice.Count,
			Selected:    r.TraitSelections[name],
		})
	}
	return options, nil
}

// LanguageOptions returns the language summary for the record
func (a *Applicator) LanguageOptions(r *Record) (*LanguageOptions, error) {
	c, err := a.load(r)
	if err != nil {
		return nil, err
	}
	granted := grantedLanguages(c)
	var available []string
	for _, lang := range a.catalog.Languages() {
		if !setContains(granted, lang) {
			available = addToSet(available, lang)
		}
	}
	return &LanguageOptions{
		Base:      rules.BaseLanguage,
		Granted:   granted,
		Allowance: languageAllowance(c),
		Available: available,
		Selected:  append([]string(nil), r.LanguageSelections...),
	}, nil
}

// EquipmentOptions returns the starting-gear decisions the class and
// background declare, with the record's selections filled in.
func (a *Applicator) EquipmentOptions(r *Record) ([]EquipmentOption, error) {
	c, err := a.load(r)
	if err != nil {
		return nil, err
	}
	var options []EquipmentOption
	for _, source := range []string{SourceClass, SourceBackground} {
		choices := c.equipmentFor(source)
		for _, choice := range choices {
			ids := make([]string, 0, len(choice.Options))
			for _, o := range choice.Options {
				ids = append(ids, o.ID)
			}
			options = append(options, EquipmentOption{
				Source:      source,
				ID:          choice.ID,
				Description: choice.Description,
				Options:     ids,
				Selected:    r.EquipmentSelections[choice.ID],
			})
		}
	}
	return options, nil
}
