package builder_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/draftforge/draftforge/internal/builder"
	"github.com/draftforge/draftforge/internal/errors"
	"github.com/draftforge/draftforge/internal/rules"
)

type EngineTestSuite struct {
	suite.Suite

	engine *builder.Engine
}

func (s *EngineTestSuite) SetupTest() {
	engine, err := builder.New(&builder.Config{Catalog: testCatalog()})
	s.Require().NoError(err)
	s.engine = engine
}

func (s *EngineTestSuite) apply(key string, value any) {
	data, err := json.Marshal(value)
	s.Require().NoError(err)
	s.Require().NoError(s.engine.Apply(key, data), "applying %s", key)
}

func (s *EngineTestSuite) TestNewRequiresCatalog() {
	_, err := builder.New(&builder.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestFighterCreation() {
	s.Equal(builder.StepClass, s.engine.CurrentStep())

	s.apply(builder.ChoiceName, "Tordek")
	s.apply(builder.ChoiceLevel, 5)
	s.apply(builder.ChoiceClass, "Fighter")
	s.Equal(builder.StepSubclass, s.engine.CurrentStep())

	s.apply(builder.ChoiceSubclass, "Champion")
	s.Equal(builder.StepClassChoices, s.engine.CurrentStep())

	// Decisions for later steps are accepted ahead of the current step and
	// leave it in place.
	s.apply(builder.ChoiceAbilityMethod, builder.MethodRecommended)
	s.Equal(builder.StepClassChoices, s.engine.CurrentStep())
	record := s.engine.Record()
	s.Equal(15, record.AbilityScores[rules.AbilityStrength])

	s.apply(builder.ChoiceClassSkills, []string{"Athletics", "Perception"})
	s.Equal(builder.StepBackground, s.engine.CurrentStep())

	s.apply(builder.ChoiceBackground, "Soldier")
	s.Equal(builder.StepSpecies, s.engine.CurrentStep())

	s.apply(builder.ChoiceSpecies, "Elf")
	s.Equal(builder.StepSpeciesTraits, s.engine.CurrentStep())

	s.apply(builder.TraitChoicePrefix+"Keen Senses", "Perception")
	s.Equal(builder.StepLineage, s.engine.CurrentStep())

	s.apply(builder.ChoiceLineage, "Wood Elf")
	s.Equal(builder.StepLanguages, s.engine.CurrentStep())

	s.apply(builder.ChoiceLanguages, []string{"Common", "Elvish"})
	s.Equal(builder.StepAbilityScores, s.engine.CurrentStep())

	s.apply(builder.ChoiceAbilityMethod, builder.MethodRecommended)
	s.Equal(builder.StepBackgroundBonuses, s.engine.CurrentStep())

	s.apply(builder.ChoiceBonusMethod, builder.MethodSuggested)
	s.Equal(builder.StepEquipment, s.engine.CurrentStep())

	s.apply(builder.ChoiceEquipment, map[string]string{
		"fighter-armor":   "chain-mail",
		"fighter-weapons": "greatsword",
	})
	s.Equal(builder.StepComplete, s.engine.CurrentStep())

	view := s.engine.PublicView()
	s.Equal("Tordek", view.Name)
	s.Equal(5, view.Level)
	s.Equal(17, view.AbilityScores[rules.AbilityStrength])
	s.Equal(15, view.AbilityScores[rules.AbilityConstitution])
	s.Equal(35, view.Speed)
	s.Equal(60, view.Darkvision)
	s.Equal([]string{"Common", "Elvish"}, view.Languages)

	byName := make(map[string]string)
	for _, f := range view.Features {
		byName[f.Name] = f.Description
	}
	s.Equal("Regain hit points as a bonus action, 3 uses per rest.", byName["Second Wind"])
	s.Equal("Your weapon attacks score a critical hit on a roll of 19-20.", byName["Improved Critical"])
	s.Contains(byName, "Savage Attacker")
	s.Contains(byName, "Fleet of Foot")
}

func (s *EngineTestSuite) TestFailedApplyLeavesRecordUnchanged() {
	s.apply(builder.ChoiceLevel, 3)
	s.apply(builder.ChoiceClass, "Fighter")
	before := s.engine.Record()

	err := s.engine.Apply(builder.ChoiceSubclass, json.RawMessage(`"Eldritch Knight"`))
	s.Require().True(errors.IsNotFound(err))
	s.Equal(before, s.engine.Record())
}

func (s *EngineTestSuite) TestApplyAllReportsFailuresIndependently() {
	failures := s.engine.ApplyAll(map[string]json.RawMessage{
		builder.ChoiceClass:     json.RawMessage(`"Fighter"`),
		builder.ChoiceAlignment: json.RawMessage(`"Mostly Harmless"`),
	})
	s.Len(failures, 1)
	s.True(errors.IsInvalidArgument(failures[builder.ChoiceAlignment]))
	s.Equal("Fighter", s.engine.Record().Class)
}

func (s *EngineTestSuite) TestSnapshotRestore() {
	s.apply(builder.ChoiceLevel, 3)
	s.apply(builder.ChoiceClass, "Fighter")
	s.apply(builder.ChoiceSubclass, "Champion")
	s.apply(builder.ChoiceBackground, "Soldier")

	snapshot, err := s.engine.Snapshot()
	s.Require().NoError(err)

	restored, err := builder.New(&builder.Config{Catalog: testCatalog()})
	s.Require().NoError(err)
	s.Require().NoError(restored.Restore(snapshot))

	s.Equal(s.engine.Record(), restored.Record())
	s.Equal(s.engine.CurrentStep(), restored.CurrentStep())
}

func (s *EngineTestSuite) TestRestoreRejectsGarbage() {
	err := s.engine.Restore([]byte(`not json`))
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestChoiceLogReplayReproducesRecord() {
	s.apply(builder.ChoiceName, "Soveliss")
	s.apply(builder.ChoiceLevel, 3)
	s.apply(builder.ChoiceClass, "Fighter")
	s.apply(builder.ChoiceSubclass, "Battle Master")
	s.apply(builder.ChoiceClassSkills, []string{"History", "Survival"})
	s.apply(builder.ChoiceBackground, "Sage")
	s.apply(builder.ChoiceSpecies, "Elf")
	s.apply(builder.TraitChoicePrefix+"Keen Senses", "Insight")
	s.apply(builder.ChoiceLineage, "High Elf")
	s.apply(builder.ChoiceLanguages, []string{"Draconic", "Sylvan"})
	s.apply(builder.ChoiceAbilityMethod, builder.MethodRecommended)
	s.apply(builder.ChoiceBonusMethod, builder.MethodManual)
	s.apply(builder.ChoiceBackgroundBonuses, map[string]int{rules.AbilityIntelligence: 2, rules.AbilityWisdom: 1})

	replayed, err := builder.New(&builder.Config{Catalog: testCatalog()})
	s.Require().NoError(err)
	failures := replayed.ApplyAll(s.engine.Choices())
	s.Require().Empty(failures)

	s.Equal(s.engine.Record(), replayed.Record())
}

func (s *EngineTestSuite) TestChoiceLogReplayAfterLateLevelRaise() {
	s.apply(builder.ChoiceClass, "Fighter")
	s.Equal(builder.StepClassChoices, s.engine.CurrentStep())

	s.apply(builder.ChoiceLevel, 5)
	s.Equal(builder.StepSubclass, s.engine.CurrentStep())

	replayed, err := builder.New(&builder.Config{Catalog: testCatalog()})
	s.Require().NoError(err)
	failures := replayed.ApplyAll(s.engine.Choices())
	s.Require().Empty(failures)

	s.Equal(s.engine.Record(), replayed.Record())
	s.Equal(s.engine.CurrentStep(), replayed.CurrentStep())
}

func (s *EngineTestSuite) TestChoiceLogReplayAfterLevelDrop() {
	s.apply(builder.ChoiceLevel, 5)
	s.apply(builder.ChoiceClass, "Fighter")
	s.Equal(builder.StepSubclass, s.engine.CurrentStep())

	s.apply(builder.ChoiceLevel, 1)
	s.Equal(builder.StepClassChoices, s.engine.CurrentStep())

	replayed, err := builder.New(&builder.Config{Catalog: testCatalog()})
	s.Require().NoError(err)
	failures := replayed.ApplyAll(s.engine.Choices())
	s.Require().Empty(failures)

	s.Equal(s.engine.Record(), replayed.Record())
}

func (s *EngineTestSuite) TestReset() {
	s.apply(builder.ChoiceLevel, 5)
	s.apply(builder.ChoiceClass, "Fighter")

	s.engine.Reset()
	s.Equal(builder.StepClass, s.engine.CurrentStep())
	s.Empty(s.engine.Record().Class)
	s.Empty(s.engine.Choices())
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
