// Package builder implements the character assembly engine: the mutable
// character record, the step graph that orders creation decisions, and the
// choice applicator that validates and applies every decision against the
// content catalog.
package builder

import (
	"encoding/json"
	"sort"

	"github.com/draftforge/draftforge/internal/rules"
)

// FeatureRecord is one granted feature. The description keeps its raw
// {placeholder} tokens and scaling table so it can be resolved at any level.
type FeatureRecord struct {
	Name        string                        `json:"name"`
	Level       int                           `json:"level,omitempty"`
	Description string                        `json:"description"`
	Scaling     map[string][]rules.Breakpoint `json:"scaling,omitempty"`
}

// ResolveAt returns the feature text with scaled placeholders substituted
// for the given level.
func (f FeatureRecord) ResolveAt(level int) string {
	feat := rules.Feature{Description: f.Description, Scaling: f.Scaling}
	return feat.ResolveAt(level)
}

// Proficiencies holds the de-duplicated proficiency sets accumulated from
// class, background, and species content. Each set is kept sorted.
type Proficiencies struct {
	Armor        []string `json:"armor,omitempty"`
	Weapons      []string `json:"weapons,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Tools        []string `json:"tools,omitempty"`
	SavingThrows []string `json:"saving_throws,omitempty"`
}

// Feature source categories, in presentation order.
const (
	SourceClass      = "class"
	SourceSubclass   = "subclass"
	SourceSpecies    = "species"
	SourceLineage    = "lineage"
	SourceBackground = "background"
	SourceFeat       = "feat"
)

// FeatureSources lists the feature source categories in presentation order
var FeatureSources = []string{
	SourceClass,
	SourceSubclass,
	SourceSpecies,
	SourceLineage,
	SourceBackground,
	SourceFeat,
}

// Record is the single mutable aggregate of one creation session. It is
// mutated only through the Applicator; the choice log plus the catalog is
// sufficient to reconstruct every other field.
type Record struct {
	Name      string `json:"name,omitempty"`
	Level     int    `json:"level"`
	Alignment string `json:"alignment,omitempty"`

	Class       string   `json:"class,omitempty"`
	Subclass    string   `json:"subclass,omitempty"`
	ClassSkills []string `json:"class_skills,omitempty"`

	AbilityMethod string         `json:"ability_method,omitempty"`
	AbilityScores map[string]int `json:"ability_scores,omitempty"`

	BonusMethod       string         `json:"bonus_method,omitempty"`
	BackgroundBonuses map[string]int `json:"background_bonuses,omitempty"`

	Background string `json:"background,omitempty"`

	Species         string            `json:"species,omitempty"`
	Lineage         string            `json:"lineage,omitempty"`
	TraitSelections map[string]string `json:"trait_selections,omitempty"`

	// LanguageSelections holds the languages the player picked; Languages is
	// the derived full set including the base language and content grants.
	LanguageSelections []string `json:"language_selections,omitempty"`
	Languages          []string `json:"languages"`

	Speed      int `json:"speed,omitempty"`
	Darkvision int `json:"darkvision,omitempty"`

	Proficiencies Proficiencies `json:"proficiencies"`

	Features map[string][]FeatureRecord `json:"features,omitempty"`

	EquipmentSelections map[string]string `json:"equipment_selections,omitempty"`

	// Choices is the keyed log of every raw accepted input, the durable
	// source of truth the rest of the record derives from.
	Choices map[string]json.RawMessage `json:"choices"`

	Step Step `json:"step"`
}

// NewRecord returns an empty record positioned at the first step
func NewRecord() *Record {
	r := &Record{Level: 1, Step: StepClass}
	r.normalize()
	return r
}

// normalize restores the invariants a zero value or a deserialized record
// may be missing: non-nil maps, a positive level, the base language, and a
// valid step.
func (r *Record) normalize() {
	if r.Level < 1 {
		r.Level = 1
	}
	if r.TraitSelections == nil {
		r.TraitSelections = make(map[string]string)
	}
	if r.Features == nil {
		r.Features = make(map[string][]FeatureRecord)
	}
	if r.EquipmentSelections == nil {
		r.EquipmentSelections = make(map[string]string)
	}
	if r.Choices == nil {
		r.Choices = make(map[string]json.RawMessage)
	}
	if !r.Step.IsValid() {
		r.Step = StepClass
	}
	r.Languages = addToSet(r.Languages, rules.BaseLanguage)
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	out := *r
	out.ClassSkills = append([]string(nil), r.ClassSkills...)
	out.AbilityScores = cloneIntMap(r.AbilityScores)
	out.BackgroundBonuses = cloneIntMap(r.BackgroundBonuses)
	out.TraitSelections = make(map[string]string, len(r.TraitSelections))
	for k, v := range r.TraitSelections {
		out.TraitSelections[k] = v
	}
	out.LanguageSelections = append([]string(nil), r.LanguageSelections...)
	out.Languages = append([]string(nil), r.Languages...)
	out.Proficiencies = Proficiencies{
		Armor:        append([]string(nil), r.Proficiencies.Armor...),
		Weapons:      append([]string(nil), r.Proficiencies.Weapons...),
		Skills:       append([]string(nil), r.Proficiencies.Skills...),
		Tools:        append([]string(nil), r.Proficiencies.Tools...),
		SavingThrows: append([]string(nil), r.Proficiencies.SavingThrows...),
	}
	out.Features = make(map[string][]FeatureRecord, len(r.Features))
	for src, feats := range r.Features {
		out.Features[src] = append([]FeatureRecord(nil), feats...)
	}
	out.EquipmentSelections = make(map[string]string, len(r.EquipmentSelections))
	for k, v := range r.EquipmentSelections {
		out.EquipmentSelections[k] = v
	}
	out.Choices = make(map[string]json.RawMessage, len(r.Choices))
	for k, v := range r.Choices {
		out.Choices[k] = append(json.RawMessage(nil), v...)
	}
	return &out
}

// HasAbilityScores reports whether the record carries a full six-ability
// allocation.
func (r *Record) HasAbilityScores() bool {
	if len(r.AbilityScores) < len(rules.Abilities) {
		return false
	}
	for _, a := range rules.Abilities {
		if r.AbilityScores[a] <= 0 {
			return false
		}
	}
	return true
}

func cloneIntMap(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// addToSet inserts value into the sorted set, keeping it sorted and
// duplicate-free.
func addToSet(set []string, value string) []string {
	i := sort.SearchStrings(set, value)
	if i < len(set) && set[i] == value {
		return set
	}
	set = append(set, "")
	copy(set[i+1:], set[i:])
	set[i] = value
	return set
}

func setContains(set []string, value string) bool {
	i := sort.SearchStrings(set, value)
	return i < len(set) && set[i] == value
}

// sortedKeys returns the map's keys in sorted order, giving derived feature
// lists a deterministic ordering.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
