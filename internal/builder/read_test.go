package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/draftforge/draftforge/internal/builder"
	catalogmock "github.com/draftforge/draftforge/internal/catalog/mock"
	"github.com/draftforge/draftforge/internal/errors"
	"github.com/draftforge/draftforge/internal/rules"
)

func TestAbilityScoreOptions(t *testing.T) {
	applicator := builder.NewApplicator(testCatalog())

	t.Run("requires a class", func(t *testing.T) {
		_, err := applicator.AbilityScoreOptions(builder.NewRecord())
		assert.True(t, errors.IsFailedPrecondition(err))
	})

	t.Run("carries the recommended allocation", func(t *testing.T) {
		r := builder.NewRecord()
		require.NoError(t, applicator.SetClass(r, "Fighter"))

		opts, err := applicator.AbilityScoreOptions(r)
		require.NoError(t, err)
		assert.Equal(t, 15, opts.Recommended[rules.AbilityStrength])
		assert.Empty(t, opts.Method)
	})
}

func TestBackgroundBonusOptions(t *testing.T) {
	applicator := builder.NewApplicator(testCatalog())

	t.Run("requires a background", func(t *testing.T) {
		_, err := applicator.BackgroundBonusOptions(builder.NewRecord())
		assert.True(t, errors.IsFailedPrecondition(err))
	})

	t.Run("carries budget, suggestion, and options", func(t *testing.T) {
		r := builder.NewRecord()
		require.NoError(t, applicator.SetBackground(r, "Soldier"))

		opts, err := applicator.BackgroundBonusOptions(r)
		require.NoError(t, err)
		assert.Equal(t, 3, opts.Budget)
		assert.Equal(t, map[string]int{rules.AbilityStrength: 2, rules.AbilityConstitution: 1}, opts.Suggested)
		assert.Equal(t, []string{rules.AbilityStrength, rules.AbilityDexterity, rules.AbilityConstitution}, opts.Abilities)
	})
}

func TestClassFeatures(t *testing.T) {
	applicator := builder.NewApplicator(testCatalog())

	t.Run("requires a class", func(t *testing.T) {
		_, err := applicator.ClassFeatures(builder.NewRecord())
		assert.True(t, errors.IsFailedPrecondition(err))
	})

	t.Run("resolves scaling at the record's level", func(t *testing.T) {
		r := builder.NewRecord()
		require.NoError(t, applicator.SetLevel(r, 4))
		require.NoError(t, applicator.SetClass(r, "Fighter"))

		features, err := applicator.ClassFeatures(r)
		require.NoError(t, err)
		byName := make(map[string]string, len(features))
		for _, f := range features {
			byName[f.Name] = f.Description
		}
		assert.Equal(t, "Regain hit points as a bonus action, 3 uses per rest.", byName["Second Wind"])
	})
}

func TestSpeciesTraitOptions(t *testing.T) {
	applicator := builder.NewApplicator(testCatalog())

	t.Run("requires a species", func(t *testing.T) {
		_, err := applicator.SpeciesTraitOptions(builder.NewRecord())
		assert.True(t, errors.IsFailedPrecondition(err))
	})

	t.Run("lists choice traits with selections", func(t *testing.T) {
		r := builder.NewRecord()
		require.NoError(t, applicator.SetSpecies(r, "Elf"))
		require.NoError(t, applicator.SetSpeciesTrait(r, "Keen Senses", "Survival"))

		opts, err := applicator.SpeciesTraitOptions(r)
		require.NoError(t, err)
		require.Len(t, opts, 1)
		assert.Equal(t, "Keen Senses", opts[0].Name)
		assert.Equal(t, []string{"Insight", "Perception", "Survival"}, opts[0].Options)
		assert.Equal(t, "Survival", opts[0].Selected)
	})
}

func TestLanguageOptions(t *testing.T) {
	applicator := builder.NewApplicator(testCatalog())

	r := builder.NewRecord()
	require.NoError(t, applicator.SetSpecies(r, "Elf"))
	require.NoError(t, applicator.SetBackground(r, "Sage"))

	opts, err := applicator.LanguageOptions(r)
	require.NoError(t, err)
	assert.Equal(t, rules.BaseLanguage, opts.Base)
	assert.Equal(t, []string{"Common", "Elvish"}, opts.Granted)
	assert.Equal(t, 2, opts.Allowance)
	assert.NotContains(t, opts.Available, "Elvish")
	assert.Contains(t, opts.Available, "Dwarvish")
}

func TestEquipmentOptions(t *testing.T) {
	applicator := builder.NewApplicator(testCatalog())

	r := builder.NewRecord()
	require.NoError(t, applicator.SetClass(r, "Fighter"))
	require.NoError(t, applicator.SetEquipmentSelections(r, map[string]string{"fighter-armor": "chain-mail"}))

	opts, err := applicator.EquipmentOptions(r)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, "fighter-armor", opts[0].ID)
	assert.Equal(t, builder.SourceClass, opts[0].Source)
	assert.Equal(t, "chain-mail", opts[0].Selected)
	assert.Empty(t, opts[1].Selected)
}

func TestApplicatorSurfacesCatalogErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCatalog := catalogmock.NewMockClient(ctrl)
	lookupErr := errors.NotFoundf("class %q not found", "Fighter").WithMeta("field", "class")
	mockCatalog.EXPECT().GetClass("Fighter").Return(nil, lookupErr)

	applicator := builder.NewApplicator(mockCatalog)
	err := applicator.SetClass(builder.NewRecord(), "Fighter")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "class", errors.GetMeta(err)["field"])
}
