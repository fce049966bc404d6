package creation_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/draftforge/draftforge/internal/builder"
	"github.com/draftforge/draftforge/internal/catalog"
	"github.com/draftforge/draftforge/internal/errors"
	"github.com/draftforge/draftforge/internal/orchestrators/creation"
	"github.com/draftforge/draftforge/internal/pkg/clock"
	"github.com/draftforge/draftforge/internal/pkg/idgen"
	"github.com/draftforge/draftforge/internal/repositories/session"
	sessionmock "github.com/draftforge/draftforge/internal/repositories/session/mock"
	"github.com/draftforge/draftforge/internal/rules"
)

type OrchestratorTestSuite struct {
	suite.Suite

	ctx      context.Context
	ctrl     *gomock.Controller
	mockRepo *sessionmock.MockRepository
	catalog  catalog.Client
	clock    *clock.Fixed
	orch     *creation.Orchestrator
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = sessionmock.NewMockRepository(s.ctrl)
	s.catalog = catalog.NewMemory(catalog.Content{
		Classes: []*rules.ClassDoc{
			{
				Name:          "Fighter",
				SubclassLevel: 3,
				SkillChoices: &rules.SkillChoice{
					Count:   2,
					Options: []string{"Athletics", "Perception"},
				},
				RecommendedScores: map[string]int{
					rules.AbilityStrength:     15,
					rules.AbilityDexterity:    13,
					rules.AbilityConstitution: 14,
					rules.AbilityIntelligence: 8,
					rules.AbilityWisdom:       10,
					rules.AbilityCharisma:     12,
				},
			},
		},
		Subclasses: []*rules.SubclassDoc{
			{Name: "Champion", Class: "Fighter"},
		},
		Backgrounds: []*rules.BackgroundDoc{
			{Name: "Soldier"},
		},
		Species: []*rules.SpeciesDoc{
			{Name: "Human", Speed: 30},
		},
	})
	s.clock = &clock.Fixed{T: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}

	orch, err := creation.New(&creation.Config{
		Repository: s.mockRepo,
		Catalog:    s.catalog,
		IDGen:      idgen.NewSequential("sess"),
		Clock:      s.clock,
		SessionTTL: 24 * time.Hour,
	})
	s.Require().NoError(err)
	s.orch = orch
}

// sessionWith builds a stored session whose state is a fresh engine with
// the given choices applied.
func (s *OrchestratorTestSuite) sessionWith(choices map[string]json.RawMessage) *session.Session {
	engine, err := builder.New(&builder.Config{Catalog: s.catalog})
	s.Require().NoError(err)
	failures := engine.ApplyAll(choices)
	s.Require().Empty(failures)
	state, err := engine.Snapshot()
	s.Require().NoError(err)

	now := s.clock.Now()
	return &session.Session{
		ID:        "sess_1",
		OwnerID:   "owner_1",
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func (s *OrchestratorTestSuite) TestNewValidatesConfig() {
	_, err := creation.New(&creation.Config{})
	s.Error(err)
}

func (s *OrchestratorTestSuite) TestStartSession() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input session.CreateInput) (*session.CreateOutput, error) {
			s.Equal("sess_1", input.Session.ID)
			s.Equal("owner_1", input.Session.OwnerID)
			s.Equal(s.clock.Now(), input.Session.CreatedAt)
			s.Equal(s.clock.Now().Add(24*time.Hour), input.Session.ExpiresAt)
			s.NotEmpty(input.Session.State)
			return &session.CreateOutput{Session: input.Session}, nil
		})

	out, err := s.orch.StartSession(s.ctx, &creation.StartSessionInput{OwnerID: "owner_1"})
	s.Require().NoError(err)
	s.Equal(builder.StepClass, out.Step)
	s.Equal("sess_1", out.Session.ID)
}

func (s *OrchestratorTestSuite) TestStartSessionRequiresOwner() {
	_, err := s.orch.StartSession(s.ctx, &creation.StartSessionInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetSession() {
	sess := s.sessionWith(map[string]json.RawMessage{
		builder.ChoiceLevel: json.RawMessage(`3`),
		builder.ChoiceClass: json.RawMessage(`"Fighter"`),
	})
	s.mockRepo.EXPECT().
		Get(s.ctx, session.GetInput{ID: "sess_1"}).
		Return(&session.GetOutput{Session: sess}, nil)

	out, err := s.orch.GetSession(s.ctx, &creation.GetSessionInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal(builder.StepSubclass, out.Step)
	s.Require().NotNil(out.View)
	s.Equal("Fighter", out.View.Class)
	s.Equal(3, out.View.Level)
}

func (s *OrchestratorTestSuite) TestGetSessionNotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, session.GetInput{ID: "missing"}).
		Return(nil, errors.NotFound("session with ID missing not found"))

	_, err := s.orch.GetSession(s.ctx, &creation.GetSessionInput{SessionID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetSessionRequiresID() {
	_, err := s.orch.GetSession(s.ctx, &creation.GetSessionInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetSessionByOwner() {
	sess := s.sessionWith(nil)
	s.mockRepo.EXPECT().
		GetByOwnerID(s.ctx, session.GetByOwnerIDInput{OwnerID: "owner_1"}).
		Return(&session.GetByOwnerIDOutput{Session: sess}, nil)

	out, err := s.orch.GetSessionByOwner(s.ctx, &creation.GetSessionByOwnerInput{OwnerID: "owner_1"})
	s.Require().NoError(err)
	s.Equal(builder.StepClass, out.Step)
}

func (s *OrchestratorTestSuite) TestApplyChoice() {
	sess := s.sessionWith(nil)
	s.mockRepo.EXPECT().
		Get(s.ctx, session.GetInput{ID: "sess_1"}).
		Return(&session.GetOutput{Session: sess}, nil)
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input session.UpdateInput) (*session.UpdateOutput, error) {
			s.Equal(s.clock.Now(), input.Session.UpdatedAt)

			var record builder.Record
			s.Require().NoError(json.Unmarshal(input.Session.State, &record))
			s.Equal("Fighter", record.Class)
			return &session.UpdateOutput{Session: input.Session}, nil
		})

	out, err := s.orch.ApplyChoice(s.ctx, &creation.ApplyChoiceInput{
		SessionID: "sess_1",
		Key:       builder.ChoiceClass,
		Value:     json.RawMessage(`"Fighter"`),
	})
	s.Require().NoError(err)
	s.Equal(builder.StepClassChoices, out.Step)
	s.Equal("Fighter", out.View.Class)
}

func (s *OrchestratorTestSuite) TestApplyChoiceRejectionSkipsSave() {
	sess := s.sessionWith(nil)
	s.mockRepo.EXPECT().
		Get(s.ctx, session.GetInput{ID: "sess_1"}).
		Return(&session.GetOutput{Session: sess}, nil)

	_, err := s.orch.ApplyChoice(s.ctx, &creation.ApplyChoiceInput{
		SessionID: "sess_1",
		Key:       builder.ChoiceClass,
		Value:     json.RawMessage(`"Warlord"`),
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestApplyChoicesReportsFailures() {
	sess := s.sessionWith(nil)
	s.mockRepo.EXPECT().
		Get(s.ctx, session.GetInput{ID: "sess_1"}).
		Return(&session.GetOutput{Session: sess}, nil)
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input session.UpdateInput) (*session.UpdateOutput, error) {
			return &session.UpdateOutput{Session: input.Session}, nil
		})

	out, err := s.orch.ApplyChoices(s.ctx, &creation.ApplyChoicesInput{
		SessionID: "sess_1",
		Choices: map[string]json.RawMessage{
			builder.ChoiceClass:   json.RawMessage(`"Fighter"`),
			builder.ChoiceSpecies: json.RawMessage(`"Dragonborn"`),
		},
	})
	s.Require().NoError(err)
	s.Len(out.Failures, 1)
	s.True(errors.IsNotFound(out.Failures[builder.ChoiceSpecies]))
	s.Equal("Fighter", out.View.Class)
}

func (s *OrchestratorTestSuite) TestGetStepOptions() {
	s.Run("subclass step lists subclasses", func() {
		sess := s.sessionWith(map[string]json.RawMessage{
			builder.ChoiceLevel: json.RawMessage(`3`),
			builder.ChoiceClass: json.RawMessage(`"Fighter"`),
		})
		s.mockRepo.EXPECT().
			Get(s.ctx, session.GetInput{ID: "sess_1"}).
			Return(&session.GetOutput{Session: sess}, nil)

		out, err := s.orch.GetStepOptions(s.ctx, &creation.GetStepOptionsInput{SessionID: "sess_1"})
		s.Require().NoError(err)
		s.Equal(builder.StepSubclass, out.Step)
		s.Equal([]string{"Champion"}, out.Subclasses)
	})

	s.Run("class choices step lists skills", func() {
		sess := s.sessionWith(map[string]json.RawMessage{
			builder.ChoiceClass: json.RawMessage(`"Fighter"`),
		})
		s.mockRepo.EXPECT().
			Get(s.ctx, session.GetInput{ID: "sess_1"}).
			Return(&session.GetOutput{Session: sess}, nil)

		out, err := s.orch.GetStepOptions(s.ctx, &creation.GetStepOptionsInput{SessionID: "sess_1"})
		s.Require().NoError(err)
		s.Equal(builder.StepClassChoices, out.Step)
		s.Require().NotNil(out.SkillChoices)
		s.Equal(2, out.SkillChoices.Count)
		s.Equal([]string{"Athletics", "Perception"}, out.SkillChoices.Options)
	})

	s.Run("class step has nothing extra", func() {
		sess := s.sessionWith(nil)
		s.mockRepo.EXPECT().
			Get(s.ctx, session.GetInput{ID: "sess_1"}).
			Return(&session.GetOutput{Session: sess}, nil)

		out, err := s.orch.GetStepOptions(s.ctx, &creation.GetStepOptionsInput{SessionID: "sess_1"})
		s.Require().NoError(err)
		s.Equal(builder.StepClass, out.Step)
		s.Empty(out.Subclasses)
		s.Nil(out.SkillChoices)
	})
}

func (s *OrchestratorTestSuite) TestResetSession() {
	sess := s.sessionWith(map[string]json.RawMessage{
		builder.ChoiceClass: json.RawMessage(`"Fighter"`),
	})
	s.mockRepo.EXPECT().
		Get(s.ctx, session.GetInput{ID: "sess_1"}).
		Return(&session.GetOutput{Session: sess}, nil)
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input session.UpdateInput) (*session.UpdateOutput, error) {
			var record builder.Record
			s.Require().NoError(json.Unmarshal(input.Session.State, &record))
			s.Empty(record.Class)
			return &session.UpdateOutput{Session: input.Session}, nil
		})

	out, err := s.orch.ResetSession(s.ctx, &creation.ResetSessionInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal(builder.StepClass, out.Step)
}

func (s *OrchestratorTestSuite) TestDeleteSession() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, session.DeleteInput{ID: "sess_1"}).
		Return(&session.DeleteOutput{}, nil)

	_, err := s.orch.DeleteSession(s.ctx, &creation.DeleteSessionInput{SessionID: "sess_1"})
	s.NoError(err)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
