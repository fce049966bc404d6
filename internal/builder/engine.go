package builder

import (
	"encoding/json"
	"sort"

	"github.com/draftforge/draftforge/internal/catalog"
	"github.com/draftforge/draftforge/internal/errors"
)

// Config holds the engine's dependencies
type Config struct {
	Catalog catalog.Client
}

// Validate ensures the config is complete
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("catalog")
	}
	return vb.Build()
}

// Engine owns one character record for the lifetime of a creation session.
// Every mutation goes through the applicator against a clone of the record,
// so a failed operation leaves the record exactly as it was. The engine is
// not safe for concurrent use; the caller serializes access per session.
type Engine struct {
	applicator *Applicator
	record     *Record
}

// New creates an engine with an empty record at the first step
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		applicator: NewApplicator(cfg.Catalog),
		record:     NewRecord(),
	}, nil
}

// Apply validates and applies one choice. On failure the record is
// unchanged and the error carries the offending field in its metadata.
func (e *Engine) Apply(key string, value json.RawMessage) error {
	next := e.record.Clone()
	if err := e.applicator.Apply(next, key, value); err != nil {
		return err
	}
	e.record = next
	return nil
}

// ApplyAll applies a batch of choices in dependency order. Entries are
// independent: each failed entry is reported under its key and the rest
// still apply.
func (e *Engine) ApplyAll(choices map[string]json.RawMessage) map[string]error {
	failures := make(map[string]error)
	for _, key := range orderedKeys(choices) {
		if err := e.Apply(key, choices[key]); err != nil {
			failures[key] = err
		}
	}
	return failures
}

// CurrentStep returns the step the session is positioned at
func (e *Engine) CurrentStep() Step {
	return e.record.Step
}

// Record returns a copy of the record
func (e *Engine) Record() *Record {
	return e.record.Clone()
}

// Choices returns a copy of the record's choice log. Replaying it through
// a fresh engine reproduces the record.
func (e *Engine) Choices() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(e.record.Choices))
	for k, v := range e.record.Choices {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Snapshot serializes the full record, choice log included
func (e *Engine) Snapshot() ([]byte, error) {
	data, err := json.Marshal(e.record)
	if err != nil {
		return nil, errors.Wrap(err, "serializing record")
	}
	return data, nil
}

// Restore replaces the engine's record with a previously serialized one
func (e *Engine) Restore(data []byte) error {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return errors.InvalidArgumentf("invalid record snapshot: %v", err)
	}
	record.normalize()
	e.record = &record
	return nil
}

// Reset discards the record and starts a fresh one at the first step
func (e *Engine) Reset() {
	e.record = NewRecord()
}

// Read helper passthroughs.

// AbilityScoreOptions returns the ability score summary
func (e *Engine) AbilityScoreOptions() (*AbilityScoreOptions, error) {
	return e.applicator.AbilityScoreOptions(e.record)
}

// BackgroundBonusOptions returns the background bonus summary
func (e *Engine) BackgroundBonusOptions() (*BackgroundBonusOptions, error) {
	return e.applicator.BackgroundBonusOptions(e.record)
}

// ClassFeatures returns the class and subclass features resolved at the
// record's level.
func (e *Engine) ClassFeatures() ([]ResolvedFeature, error) {
	return e.applicator.ClassFeatures(e.record)
}

// SpeciesTraitOptions returns the species' unresolved and resolved trait
// choices.
func (e *Engine) SpeciesTraitOptions() ([]TraitOption, error) {
	return e.applicator.SpeciesTraitOptions(e.record)
}

// LanguageOptions returns the language summary
func (e *Engine) LanguageOptions() (*LanguageOptions, error) {
	return e.applicator.LanguageOptions(e.record)
}

// EquipmentOptions returns the starting-gear decisions
func (e *Engine) EquipmentOptions() ([]EquipmentOption, error) {
	return e.applicator.EquipmentOptions(e.record)
}

// PublicView is a read-only projection of the record for rendering. Ability
// scores include background bonuses, and every feature is resolved at the
// record's level.
type PublicView struct {
	Name          string            `json:"name,omitempty"`
	Level         int               `json:"level"`
	Alignment     string            `json:"alignment,omitempty"`
	Class         string            `json:"class,omitempty"`
	Subclass      string            `json:"subclass,omitempty"`
	Background    string            `json:"background,omitempty"`
	Species       string            `json:"species,omitempty"`
	Lineage       string            `json:"lineage,omitempty"`
	AbilityScores map[string]int    `json:"ability_scores,omitempty"`
	Speed         int               `json:"speed,omitempty"`
	Darkvision    int               `json:"darkvision,omitempty"`
	Languages     []string          `json:"languages"`
	Proficiencies Proficiencies     `json:"proficiencies"`
	Features      []ResolvedFeature `json:"features,omitempty"`
	Equipment     map[string]string `json:"equipment,omitempty"`
	Step          Step              `json:"step"`
}

// PublicView returns the presentation projection of the record
func (e *Engine) PublicView() *PublicView {
	r := e.record

	scores := cloneIntMap(r.AbilityScores)
	if scores != nil {
		for ability, bonus := range r.BackgroundBonuses {
			scores[ability] += bonus
		}
	}

	var features []ResolvedFeature
	for _, source := range FeatureSources {
		for _, f := range r.Features[source] {
			features = append(features, ResolvedFeature{
				Name:        f.Name,
				Level:       f.Level,
				Source:      source,
				Description: f.ResolveAt(r.Level),
			})
		}
	}

	var equipment map[string]string
	if len(r.EquipmentSelections) > 0 {
		equipment = make(map[string]string, len(r.EquipmentSelections))
		for k, v := range r.EquipmentSelections {
			equipment[k] = v
		}
	}

	languages := append([]string(nil), r.Languages...)
	sort.Strings(languages)

	return &PublicView{
		Name:          r.Name,
		Level:         r.Level,
		Alignment:     r.Alignment,
		Class:         r.Class,
		Subclass:      r.Subclass,
		Background:    r.Background,
		Species:       r.Species,
		Lineage:       r.Lineage,
		AbilityScores: scores,
		Speed:         r.Speed,
		Darkvision:    r.Darkvision,
		Languages:     languages,
		Proficiencies: r.Proficiencies,
		Features:      features,
		Equipment:     equipment,
		Step:          r.Step,
	}
}
