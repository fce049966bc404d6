package builder

import (
	"encoding/json"
	"strings"

	"github.com/draftforge/draftforge/internal/catalog"
	"github.com/draftforge/draftforge/internal/errors"
	"github.com/draftforge/draftforge/internal/rules"
)

// Logical choice keys. The choice log is keyed by these; a species trait
// selection is keyed by TraitChoicePrefix plus the trait name.
const (
	ChoiceName              = "name"
	ChoiceAlignment         = "alignment"
	ChoiceLevel             = "level"
	ChoiceClass             = "class"
	ChoiceSubclass          = "subclass"
	ChoiceClassSkills       = "class_skills"
	ChoiceBackground        = "background"
	ChoiceSpecies           = "species"
	ChoiceLineage           = "lineage"
	ChoiceLanguages         = "languages"
	ChoiceAbilityMethod     = "ability_scores_method"
	ChoiceAbilityScores     = "ability_scores"
	ChoiceBonusMethod       = "background_bonuses_method"
	ChoiceBackgroundBonuses = "background_bonuses"
	ChoiceEquipment         = "equipment"

	TraitChoicePrefix = "species_trait:"
)

// Strategy names for ability scores and background bonuses
const (
	MethodRecommended = "recommended"
	MethodSuggested   = "suggested"
	MethodManual      = "manual"
)

// applyOrder is the dependency order used when replaying a batch of choices:
// every choice is applied after the choices it validates against. Species
// trait selections slot in directly after the species itself.
var applyOrder = []string{
	ChoiceName,
	ChoiceAlignment,
	ChoiceLevel,
	ChoiceClass,
	ChoiceSubclass,
	ChoiceClassSkills,
	ChoiceBackground,
	ChoiceSpecies,
	ChoiceLineage,
	ChoiceLanguages,
	ChoiceAbilityMethod,
	ChoiceAbilityScores,
	ChoiceBonusMethod,
	ChoiceBackgroundBonuses,
	ChoiceEquipment,
}

// Applicator is the single mutation surface of a Record. Every operation
// validates its input against the catalog before touching the record, so a
// rejected call leaves the record unchanged, and every accepted input is
// written to the record's choice log.
type Applicator struct {
	catalog catalog.Client
}

// NewApplicator creates an applicator backed by the given catalog
func NewApplicator(c catalog.Client) *Applicator {
	return &Applicator{catalog: c}
}

// content holds the documents for everything the record has selected
type content struct {
	class      *rules.ClassDoc
	subclass   *rules.SubclassDoc
	species    *rules.SpeciesDoc
	lineage    *rules.LineageDoc
	background *rules.BackgroundDoc
}

// equipmentFor returns the equipment choices the given source declares
func (c content) equipmentFor(source string) []rules.EquipmentChoice {
	switch source {
	case SourceClass:
		if c.class != nil {
			return c.class.EquipmentChoices
		}
	case SourceBackground:
		if c.background != nil {
			return c.background.EquipmentChoices
		}
	}
	return nil
}

// SetName sets the character's name
func (a *Applicator) SetName(r *Record, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.InvalidArgument("name must not be empty").
			WithMeta("field", ChoiceName)
	}

	r.Name = name
	logChoice(r, ChoiceName, name)
	return nil
}

// SetAlignment sets the character's alignment
func (a *Applicator) SetAlignment(r *Record, alignment string) error {
	if !rules.IsAlignment(alignment) {
		return errors.InvalidArgumentf("unknown alignment %q", alignment).
			WithMeta("field", ChoiceAlignment).
			WithMeta("value", alignment)
	}

	r.Alignment = alignment
	logChoice(r, ChoiceAlignment, alignment)
	return nil
}

// SetLevel sets the character's level and re-derives every level-dependent
// feature. Lowering the level below the chosen subclass's unlock level is
// rejected; a pending subclass pick is re-evaluated against the new level.
func (a *Applicator) SetLevel(r *Record, level int) error {
	if level < 1 {
		return errors.InvalidArgumentf("level must be positive, got %d", level).
			WithMeta("field", ChoiceLevel).
			WithMeta("value", level)
	}
	if r.Subclass != "" {
		class, err := a.catalog.GetClass(r.Class)
		if err != nil {
			return err
		}
		if level < class.SubclassUnlockLevel() {
			return errors.InvalidArgumentf(
				"level %d is below the %s subclass unlock level %d",
				level, r.Class, class.SubclassUnlockLevel()).
				WithMeta("field", ChoiceLevel).
				WithMeta("value", level)
		}
	}

	r.Level = level
	logChoice(r, ChoiceLevel, level)
	if err := a.finish(r); err != nil {
		return err
	}
	return a.realign(r)
}

// SetClass sets the character's class. Changing class discards the subclass
// and class skill selections along with everything derived from them.
func (a *Applicator) SetClass(r *Record, name string) error {
	if _, err := a.catalog.GetClass(name); err != nil {
		return err
	}

	if r.Class != "" && r.Class != name {
		r.Subclass = ""
		r.ClassSkills = nil
		delete(r.Choices, ChoiceSubclass)
		delete(r.Choices, ChoiceClassSkills)
	}
	r.Class = name
	logChoice(r, ChoiceClass, name)
	if err := a.finish(r); err != nil {
		return err
	}
	if err := a.advance(r, StepClass); err != nil {
		return err
	}
	return a.realign(r)
}

// SetSubclass sets the character's subclass
func (a *Applicator) SetSubclass(r *Record, name string) error {
	if r.Class == "" {
		return errors.FailedPrecondition("select a class before a subclass").
			WithMeta("field", ChoiceSubclass)
	}
	class, err := a.catalog.GetClass(r.Class)
	if err != nil {
		return err
	}
	if r.Level < class.SubclassUnlockLevel() {
		return errors.InvalidArgumentf(
			"%s unlocks subclasses at level %d, character is level %d",
			r.Class, class.SubclassUnlockLevel(), r.Level).
			WithMeta("field", ChoiceSubclass).
			WithMeta("value", name)
	}
	if _, err := a.catalog.GetSubclass(r.Class, name); err != nil {
		return err
	}

	r.Subclass = name
	logChoice(r, ChoiceSubclass, name)
	if err := a.finish(r); err != nil {
		return err
	}
	return a.advance(r, StepSubclass)
}

// SetClassSkills records the character's class skill selections
func (a *Applicator) SetClassSkills(r *Record, skills []string) error {
	if r.Class == "" {
		return errors.FailedPrecondition("select a class before class skills").
			WithMeta("field", ChoiceClassSkills)
	}
	class, err := a.catalog.GetClass(r.Class)
	if err != nil {
		return err
	}

	chosen := distinct(skills)
	sc := class.SkillChoices
	if sc == nil {
		if len(chosen) > 0 {
			return errors.InvalidArgumentf("%s has no skill choices", r.Class).
				WithMeta("field", ChoiceClassSkills)
		}
	} else {
		for _, skill := range chosen {
			if !contains(sc.Options, skill) {
				return errors.NotFoundf("skill %q is not a %s option", skill, r.Class).
					WithMeta("field", ChoiceClassSkills).
					WithMeta("value", skill)
			}
		}
		if len(chosen) != sc.Count {
			return errors.InvalidArgumentf(
				"%s grants %d skill choices, got %d", r.Class, sc.Count, len(chosen)).
				WithMeta("field", ChoiceClassSkills)
		}
	}

	r.ClassSkills = chosen
	logChoice(r, ChoiceClassSkills, chosen)
	if err := a.finish(r); err != nil {
		return err
	}
	return a.advance(r, StepClassChoices)
}

// SetBackground sets the character's background. Changing background
// discards the bonus strategy and everything derived from the old one.
func (a *Applicator) SetBackground(r *Record, name string) error {
	if _, err := a.catalog.GetBackground(name); err != nil {
		return err
	}

	if r.Background != "" && r.Background != name {
		r.BonusMethod = ""
		r.BackgroundBonuses = nil
		delete(r.Choices, ChoiceBonusMethod)
		delete(r.Choices, ChoiceBackgroundBonuses)
	}
	r.Background = name
	logChoice(r, ChoiceBackground, name)
	if err := a.finish(r); err != nil {
		return err
	}
	return a.advance(r, StepBackground)
}

// SetSpecies sets the character's species. Changing species discards the
// lineage and trait selections.
func (a *Applicator) SetSpecies(r *Record, name string) error {
	if _, err := a.catalog.GetSpecies(name); err != nil {
		return err
	}

	if r.Species != "" && r.Species != name {
		r.Lineage = ""
		delete(r.Choices, ChoiceLineage)
		for trait := range r.TraitSelections {
			delete(r.Choices, TraitChoicePrefix+trait)
		}
		r.TraitSelections = make(map[string]string)
	}
	r.Species = name
	logChoice(r, ChoiceSpecies, name)
	if err := a.finish(r); err != nil {
		return err
	}
	return a.advance(r, StepSpecies)
}

// SetSpeciesTrait records the selected option for a choice-type trait of
// the character's species.
func (a *Applicator) SetSpeciesTrait(r *Record, trait, option string) error {
	if r.Species == "" {
		return errors.FailedPrecondition("select a species before its traits").
			WithMeta("field", TraitChoicePrefix+trait)
	}
	species, err := a.catalog.GetSpecies(r.Species)
	if err != nil {
		return err
	}
	t, ok := species.Traits[trait]
	if !ok {
		return errors.NotFoundf("species %q has no trait %q", r.Species, trait).
			WithMeta("field", TraitChoicePrefix+trait)
	}
	if !t.IsChoice() {
		return errors.InvalidArgumentf("trait %q does not offer a choice", trait).
			WithMeta("field", TraitChoicePrefix+trait)
	}
	if !t.HasOption(option) {
		return errors.NotFoundf("trait %q has no option %q", trait, option).
			WithMeta("field", TraitChoicePrefix+trait).
			WithMeta("value", option)
	}

	r.TraitSelections[trait] = option
	logChoice(r, TraitChoicePrefix+trait, option)
	if err := a.finish(r); err != nil {
		return err
	}
	if len(r.TraitSelections) >= len(species.ChoiceTraits()) {
		return a.advance(r, StepSpeciesTraits)
	}
	return nil
}

// SetLineage sets the character's lineage
func (a *Applicator) SetLineage(r *Record, name string) error {
	if r.Species == "" {
		return errors.FailedPrecondition("select a species before a lineage").
			WithMeta("field", ChoiceLineage)
	}
	species, err := a.catalog.GetSpecies(r.Species)
	if err != nil {
		return err
	}
	if !species.HasLineages() {
		return errors.InvalidArgumentf("species %q has no lineages", r.Species).
			WithMeta("field", ChoiceLineage)
	}
	if !species.DeclaresLineage(name) {
		return errors.InvalidArgumentf("%q is not a lineage of %q", name, r.Species).
			WithMeta("field", ChoiceLineage).
			WithMeta("value", name)
	}
	if _, err := a.catalog.GetLineage(r.Species, name); err != nil {
		return err
	}

	r.Lineage = name
	logChoice(r, ChoiceLineage, name)
	if err := a.finish(r); err != nil {
		return err
	}
	return a.advance(r, StepLineage)
}

// SetLanguages records the character's chosen languages. The base language
// and content-granted languages are always present and never count against
// the allowance.
func (a *Applicator) SetLanguages(r *Record, languages []string) error {
	known := a.catalog.Languages()
	chosen := distinct(languages)
	for _, lang := range chosen {
		if !contains(known, lang) {
			return errors.NotFoundf("unknown language %q", lang).
				WithMeta("field", ChoiceLanguages).
				WithMeta("value", lang)
		}
	}

	c, err := a.load(r)
	if err != nil {
		return err
	}
	granted := grantedLanguages(c)
	var extra []string
	for _, lang := range chosen {
		if !setContains(granted, lang) {
			extra = append(extra, lang)
		}
	}
	allowance := languageAllowance(c)
	if len(extra) > allowance {
		return errors.InvalidArgumentf(
			"selected %d languages but the allowance is %d", len(extra), allowance).
			WithMeta("field", ChoiceLanguages)
	}

	r.LanguageSelections = extra
	logChoice(r, ChoiceLanguages, chosen)
	a.refresh(r, c)
	return a.advance(r, StepLanguages)
}

// SetAbilityMethod selects the ability score strategy. The recommended
// strategy copies the class's allocation immediately; the manual strategy
// clears any prior scores and waits for explicit values.
func (a *Applicator) SetAbilityMethod(r *Record, method string) error {
	switch method {
	case MethodRecommended:
		if r.Class == "" {
			return errors.FailedPrecondition("select a class before ability scores").
				WithMeta("field", ChoiceAbilityMethod)
		}
		class, err := a.catalog.GetClass(r.Class)
		if err != nil {
			return err
		}
		r.AbilityMethod = MethodRecommended
		r.AbilityScores = cloneIntMap(class.RecommendedScores)
		delete(r.Choices, ChoiceAbilityScores)
		logChoice(r, ChoiceAbilityMethod, method)
		return a.advance(r, StepAbilityScores)
	case MethodManual:
		r.AbilityMethod = MethodManual
		r.AbilityScores = nil
		delete(r.Choices, ChoiceAbilityScores)
		logChoice(r, ChoiceAbilityMethod, method)
		return nil
	default:
		return errors.InvalidArgumentf("unknown ability score method %q", method).
			WithMeta("field", ChoiceAbilityMethod).
			WithMeta("value", method)
	}
}

// SetAbilityScores records manually assigned ability scores, implying the
// manual strategy. All six abilities must be present with positive values.
func (a *Applicator) SetAbilityScores(r *Record, scores map[string]int) error {
	for name := range scores {
		if !rules.IsAbility(name) {
			return errors.InvalidArgumentf("unknown ability %q", name).
				WithMeta("field", ChoiceAbilityScores).
				WithMeta("value", name)
		}
	}
	for _, name := range rules.Abilities {
		score, ok := scores[name]
		if !ok {
			return errors.InvalidArgumentf("missing score for %s", name).
				WithMeta("field", ChoiceAbilityScores).
				WithMeta("value", name)
		}
		if score < 1 {
			return errors.InvalidArgumentf("score for %s must be positive, got %d", name, score).
				WithMeta("field", ChoiceAbilityScores).
				WithMeta("value", score)
		}
	}

	r.AbilityMethod = MethodManual
	r.AbilityScores = cloneIntMap(scores)
	logChoice(r, ChoiceAbilityMethod, MethodManual)
	logChoice(r, ChoiceAbilityScores, scores)
	return a.advance(r, StepAbilityScores)
}

// SetBonusMethod selects the background bonus strategy. The suggested
// strategy copies the background's split immediately; the manual strategy
// clears any prior bonuses and waits for explicit values.
func (a *Applicator) SetBonusMethod(r *Record, method string) error {
	if r.Background == "" {
		return errors.FailedPrecondition("select a background before its bonuses").
			WithMeta("field", ChoiceBonusMethod)
	}
	switch method {
	case MethodSuggested:
		background, err := a.catalog.GetBackground(r.Background)
		if err != nil {
			return err
		}
		r.BonusMethod = MethodSuggested
		r.BackgroundBonuses = dropZeroes(background.SuggestedBonuses())
		delete(r.Choices, ChoiceBackgroundBonuses)
		logChoice(r, ChoiceBonusMethod, method)
		return a.advance(r, StepBackgroundBonuses)
	case MethodManual:
		r.BonusMethod = MethodManual
		r.BackgroundBonuses = nil
		delete(r.Choices, ChoiceBackgroundBonuses)
		logChoice(r, ChoiceBonusMethod, method)
		return nil
	default:
		return errors.InvalidArgumentf("unknown background bonus method %q", method).
			WithMeta("field", ChoiceBonusMethod).
			WithMeta("value", method)
	}
}

// SetBackgroundBonuses records manually distributed background bonuses,
// implying the manual strategy. Zero-valued entries are dropped and the
// total must fit the background's point budget.
func (a *Applicator) SetBackgroundBonuses(r *Record, bonuses map[string]int) error {
	if r.Background == "" {
		return errors.FailedPrecondition("select a background before its bonuses").
			WithMeta("field", ChoiceBackgroundBonuses)
	}
	background, err := a.catalog.GetBackground(r.Background)
	if err != nil {
		return err
	}

	allowed := background.BonusAbilities()
	total := 0
	for name, bonus := range bonuses {
		if !rules.IsAbility(name) {
			return errors.InvalidArgumentf("unknown ability %q", name).
				WithMeta("field", ChoiceBackgroundBonuses).
				WithMeta("value", name)
		}
		if !contains(allowed, name) {
			return errors.InvalidArgumentf("%s bonuses cannot go to %s", r.Background, name).
				WithMeta("field", ChoiceBackgroundBonuses).
				WithMeta("value", name)
		}
		if bonus < 0 {
			return errors.InvalidArgumentf("bonus for %s must not be negative, got %d", name, bonus).
				WithMeta("field", ChoiceBackgroundBonuses).
				WithMeta("value", bonus)
		}
		total += bonus
	}
	if budget := background.PointBudget(); total > budget {
		return errors.InvalidArgumentf("bonuses total %d exceeds the %d point budget", total, budget).
			WithMeta("field", ChoiceBackgroundBonuses).
			WithMeta("budget", budget)
	}

	r.BonusMethod = MethodManual
	r.BackgroundBonuses = dropZeroes(bonuses)
	logChoice(r, ChoiceBonusMethod, MethodManual)
	logChoice(r, ChoiceBackgroundBonuses, bonuses)
	return a.advance(r, StepBackgroundBonuses)
}

// SetEquipmentSelections records chosen option IDs for class and background
// starting gear. Selections are recorded per choice ID; expanding an option
// into concrete inventory is not the engine's concern.
func (a *Applicator) SetEquipmentSelections(r *Record, selections map[string]string) error {
	c, err := a.load(r)
	if err != nil {
		return err
	}
	declared := declaredEquipment(c)
	for choiceID, optionID := range selections {
		choice, ok := declared[choiceID]
		if !ok {
			return errors.NotFoundf("unknown equipment choice %q", choiceID).
				WithMeta("field", ChoiceEquipment).
				WithMeta("value", choiceID)
		}
		if !choice.HasOption(optionID) {
			return errors.NotFoundf("equipment choice %q has no option %q", choiceID, optionID).
				WithMeta("field", ChoiceEquipment).
				WithMeta("value", optionID)
		}
	}

	for choiceID, optionID := range selections {
		r.EquipmentSelections[choiceID] = optionID
	}
	logChoice(r, ChoiceEquipment, r.EquipmentSelections)
	if len(r.EquipmentSelections) >= len(declared) {
		return a.advance(r, StepEquipment)
	}
	return nil
}

// Apply dispatches a raw JSON input to the operation for the given logical
// choice key.
func (a *Applicator) Apply(r *Record, key string, value json.RawMessage) error {
	if trait, ok := strings.CutPrefix(key, TraitChoicePrefix); ok {
		option, err := decode[string](key, value)
		if err != nil {
			return err
		}
		return a.SetSpeciesTrait(r, trait, option)
	}

	switch key {
	case ChoiceName:
		return applyDecoded(a.SetName, r, key, value)
	case ChoiceAlignment:
		return applyDecoded(a.SetAlignment, r, key, value)
	case ChoiceLevel:
		return applyDecoded(a.SetLevel, r, key, value)
	case ChoiceClass:
		return applyDecoded(a.SetClass, r, key, value)
	case ChoiceSubclass:
		return applyDecoded(a.SetSubclass, r, key, value)
	case ChoiceClassSkills:
		return applyDecoded(a.SetClassSkills, r, key, value)
	case ChoiceBackground:
		return applyDecoded(a.SetBackground, r, key, value)
	case ChoiceSpecies:
		return applyDecoded(a.SetSpecies, r, key, value)
	case ChoiceLineage:
		return applyDecoded(a.SetLineage, r, key, value)
	case ChoiceLanguages:
		return applyDecoded(a.SetLanguages, r, key, value)
	case ChoiceAbilityMethod:
		return applyDecoded(a.SetAbilityMethod, r, key, value)
	case ChoiceAbilityScores:
		return applyDecoded(a.SetAbilityScores, r, key, value)
	case ChoiceBonusMethod:
		return applyDecoded(a.SetBonusMethod, r, key, value)
	case ChoiceBackgroundBonuses:
		return applyDecoded(a.SetBackgroundBonuses, r, key, value)
	case ChoiceEquipment:
		return applyDecoded(a.SetEquipmentSelections, r, key, value)
	default:
		return errors.InvalidArgumentf("unknown choice %q", key).
			WithMeta("field", key)
	}
}

// ApplyAll applies a batch of choices in dependency order. Entries are
// validated independently: a failed entry is reported in the returned map
// and does not block the rest.
func (a *Applicator) ApplyAll(r *Record, choices map[string]json.RawMessage) map[string]error {
	failures := make(map[string]error)
	for _, key := range orderedKeys(choices) {
		if err := a.Apply(r, key, choices[key]); err != nil {
			failures[key] = err
		}
	}
	return failures
}

// orderedKeys sorts the batch's keys into dependency order: the fixed
// choice order, with trait selections after the species and unknown keys
// last.
func orderedKeys(choices map[string]json.RawMessage) []string {
	var keys []string
	seen := make(map[string]bool, len(choices))
	for _, key := range applyOrder {
		if _, ok := choices[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
		if key == ChoiceSpecies {
			for _, k := range sortedKeys(choices) {
				if strings.HasPrefix(k, TraitChoicePrefix) {
					keys = append(keys, k)
					seen[k] = true
				}
			}
		}
	}
	for _, k := range sortedKeys(choices) {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// load fetches the documents for everything the record has selected. The
// names were validated when they were set and the catalog is immutable, so
// a failure here is a catalog inconsistency, not user error.
func (a *Applicator) load(r *Record) (content, error) {
	var c content
	var err error
	if r.Class != "" {
		if c.class, err = a.catalog.GetClass(r.Class); err != nil {
			return c, err
		}
	}
	if r.Subclass != "" {
		if c.subclass, err = a.catalog.GetSubclass(r.Class, r.Subclass); err != nil {
			return c, err
		}
	}
	if r.Species != "" {
		if c.species, err = a.catalog.GetSpecies(r.Species); err != nil {
			return c, err
		}
	}
	if r.Lineage != "" {
		if c.lineage, err = a.catalog.GetLineage(r.Species, r.Lineage); err != nil {
			return c, err
		}
	}
	if r.Background != "" {
		if c.background, err = a.catalog.GetBackground(r.Background); err != nil {
			return c, err
		}
	}
	return c, nil
}

// finish reloads the selected documents and rebuilds the derived state
func (a *Applicator) finish(r *Record) error {
	c, err := a.load(r)
	if err != nil {
		return err
	}
	a.refresh(r, c)
	return nil
}

// advance moves the record to the next step when the completed operation is
// the one the current step was waiting for.
func (a *Applicator) advance(r *Record, completed Step) error {
	if r.Step != completed {
		return nil
	}
	c, err := a.load(r)
	if err != nil {
		return err
	}
	r.Step = NextStep(completed, r, c.class, c.species)
	return nil
}

// realign recomputes a pending subclass branch. Level and class changes can
// flip the branch predicate after the record has already moved past the
// class step: raising the level makes the subclass pick due, and lowering it
// before a subclass is chosen would otherwise strand the record waiting for
// a pick it cannot accept.
func (a *Applicator) realign(r *Record) error {
	if r.Class == "" || r.Subclass != "" {
		return nil
	}
	if r.Step != StepSubclass && r.Step != StepClassChoices {
		return nil
	}
	class, err := a.catalog.GetClass(r.Class)
	if err != nil {
		return err
	}
	r.Step = NextStep(StepClass, r, class, nil)
	return nil
}

// refresh rebuilds every derived field of the record from the loaded
// documents: features, proficiencies, languages, speed, and darkvision.
// Feature lists are ordered by level then name so derivation is
// deterministic.
func (a *Applicator) refresh(r *Record, c content) {
	features := make(map[string][]FeatureRecord)
	if c.class != nil {
		for lvl := 1; lvl <= r.Level; lvl++ {
			features[SourceClass] = append(features[SourceClass],
				featureRecords(c.class.FeaturesAtLevel(lvl), lvl)...)
		}
	}
	if c.subclass != nil {
		for lvl := 1; lvl <= r.Level; lvl++ {
			features[SourceSubclass] = append(features[SourceSubclass],
				featureRecords(c.subclass.FeaturesAtLevel(lvl), lvl)...)
		}
	}
	if c.species != nil {
		features[SourceSpecies] = traitRecords(c.species.Traits, r.TraitSelections)
	}
	if c.lineage != nil {
		features[SourceLineage] = traitRecords(c.lineage.Traits, r.TraitSelections)
	}
	if c.background != nil {
		features[SourceBackground] = featureRecords(c.background.Features, 0)
		if c.background.Feat != "" {
			if feat, err := a.catalog.GetFeat(c.background.Feat); err == nil {
				features[SourceFeat] = []FeatureRecord{{
					Name:        feat.Name,
					Description: feat.Description,
				}}
			}
		}
	}
	for src := range features {
		if len(features[src]) == 0 {
			delete(features, src)
		}
	}
	r.Features = features

	var p Proficiencies
	if c.class != nil {
		for _, armor := range c.class.ArmorProficiencies {
			p.Armor = addToSet(p.Armor, armor)
		}
		for _, weapon := range c.class.WeaponProficiencies {
			p.Weapons = addToSet(p.Weapons, weapon)
		}
		for _, save := range c.class.SavingThrows {
			p.SavingThrows = addToSet(p.SavingThrows, save)
		}
		for _, skill := range r.ClassSkills {
			p.Skills = addToSet(p.Skills, skill)
		}
	}
	if c.background != nil {
		for _, skill := range c.background.SkillProficiencies {
			p.Skills = addToSet(p.Skills, skill)
		}
		for _, tool := range c.background.ToolProficiencies {
			p.Tools = addToSet(p.Tools, tool)
		}
	}
	r.Proficiencies = p

	languages := grantedLanguages(c)
	for _, lang := range r.LanguageSelections {
		languages = addToSet(languages, lang)
	}
	r.Languages = languages

	r.Speed = 0
	r.Darkvision = 0
	if c.species != nil {
		r.Speed = c.species.Speed
		r.Darkvision = c.species.Darkvision
	}
	if c.lineage != nil {
		if c.lineage.Speed > 0 {
			r.Speed = c.lineage.Speed
		}
		if c.lineage.Darkvision > 0 {
			r.Darkvision = c.lineage.Darkvision
		}
	}

	a.pruneEquipment(r, c)
}

// pruneEquipment drops equipment selections whose choice is no longer
// declared by the current class and background, keeping the choice log in
// step so a replay reproduces the same selections.
func (a *Applicator) pruneEquipment(r *Record, c content) {
	declared := declaredEquipment(c)
	changed := false
	for choiceID := range r.EquipmentSelections {
		if _, ok := declared[choiceID]; !ok {
			delete(r.EquipmentSelections, choiceID)
			changed = true
		}
	}
	if !changed {
		return
	}
	if len(r.EquipmentSelections) == 0 {
		delete(r.Choices, ChoiceEquipment)
		return
	}
	logChoice(r, ChoiceEquipment, r.EquipmentSelections)
}

func featureRecords(feats map[string]rules.Feature, level int) []FeatureRecord {
	var records []FeatureRecord
	for _, name := range sortedKeys(feats) {
		f := feats[name]
		records = append(records, FeatureRecord{
			Name:        name,
			Level:       level,
			Description: f.Description,
			Scaling:     f.Scaling,
		})
	}
	return records
}

// traitRecords turns traits into feature records, skipping choice-type
// traits the player has not resolved yet.
func traitRecords(traits map[string]rules.Trait, selections map[string]string) []FeatureRecord {
	var records []FeatureRecord
	for _, name := range sortedKeys(traits) {
		t := traits[name]
		if t.IsChoice() {
			if _, ok := selections[name]; !ok {
				continue
			}
		}
		records = append(records, FeatureRecord{
			Name:        name,
			Description: t.Description,
			Scaling:     t.Scaling,
		})
	}
	return records
}

// grantedLanguages returns the sorted language set the content grants
// outright, always including the base language.
func grantedLanguages(c content) []string {
	languages := []string{rules.BaseLanguage}
	if c.class != nil {
		for _, lang := range c.class.Languages {
			languages = addToSet(languages, lang)
		}
	}
	if c.species != nil {
		for _, lang := range c.species.Languages {
			languages = addToSet(languages, lang)
		}
	}
	if c.background != nil {
		for _, lang := range c.background.Languages {
			languages = addToSet(languages, lang)
		}
	}
	return languages
}

// languageAllowance returns how many extra languages may be selected
func languageAllowance(c content) int {
	allowance := 0
	if c.species != nil {
		allowance += c.species.ExtraLanguages
	}
	if c.background != nil {
		allowance += c.background.ExtraLanguages
	}
	return allowance
}

// declaredEquipment indexes every equipment choice the class and background
// declare, by choice ID.
func declaredEquipment(c content) map[string]rules.EquipmentChoice {
	declared := make(map[string]rules.EquipmentChoice)
	if c.class != nil {
		for _, choice := range c.class.EquipmentChoices {
			declared[choice.ID] = choice
		}
	}
	if c.background != nil {
		for _, choice := range c.background.EquipmentChoices {
			declared[choice.ID] = choice
		}
	}
	return declared
}

// logChoice writes the accepted input to the record's choice log. The
// value types in play cannot fail to marshal.
func logChoice(r *Record, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.Choices[key] = data
}

func applyDecoded[T any](op func(*Record, T) error, r *Record, key string, raw json.RawMessage) error {
	value, err := decode[T](key, raw)
	if err != nil {
		return err
	}
	return op(r, value)
}

func decode[T any](key string, raw json.RawMessage) (T, error) {
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, errors.InvalidArgumentf("invalid value for %q: %v", key, err).
			WithMeta("field", key)
	}
	return value, nil
}

func distinct(values []string) []string {
	var out []string
	for _, v := range values {
		out = addToSet(out, v)
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func dropZeroes(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}
