package creation

import (
	"context"
	"encoding/json"

	"github.com/draftforge/draftforge/internal/builder"
	"github.com/draftforge/draftforge/internal/repositories/session"
)

//go:generate mockgen -destination=mock/mock_service.go -package=creationmock github.com/draftforge/draftforge/internal/orchestrators/creation Service

// Service is the transport-facing surface of character creation. Handlers
// call it and never touch the engine or the catalog directly.
type Service interface {
	// StartSession begins a creation session for an owner, replacing any
	// session they already have.
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// GetSession returns a session with the presentation view of its record
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// GetSessionByOwner returns the owner's session
	GetSessionByOwner(ctx context.Context, input *GetSessionByOwnerInput) (*GetSessionByOwnerOutput, error)

	// ApplyChoice validates and applies one choice to the session's record
	ApplyChoice(ctx context.Context, input *ApplyChoiceInput) (*ApplyChoiceOutput, error)

	// ApplyChoices applies a batch of choices; entries fail independently
	ApplyChoices(ctx context.Context, input *ApplyChoicesInput) (*ApplyChoicesOutput, error)

	// GetStepOptions returns what the current step asks the player to decide
	GetStepOptions(ctx context.Context, input *GetStepOptionsInput) (*GetStepOptionsOutput, error)

	// ResetSession discards the session's record and starts over
	ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error)

	// DeleteSession removes the session entirely
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)
}

// StartSessionInput defines the input for starting a session
type StartSessionInput struct {
	OwnerID string
}

// StartSessionOutput defines the output for starting a session
type StartSessionOutput struct {
	Session *session.Session
	Step    builder.Step
}

// GetSessionInput defines the input for getting a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput defines the output for getting a session
type GetSessionOutput struct {
	Session *session.Session
	View    *builder.PublicView
	Step    builder.Step
}

// GetSessionByOwnerInput defines the input for getting an owner's session
type GetSessionByOwnerInput struct {
	OwnerID string
}

// GetSessionByOwnerOutput defines the output for getting an owner's session
type GetSessionByOwnerOutput struct {
	Session *session.Session
	View    *builder.PublicView
	Step    builder.Step
}

// ApplyChoiceInput defines the input for applying one choice
type ApplyChoiceInput struct {
	SessionID string
	Key       string
	Value     json.RawMessage
}

// ApplyChoiceOutput defines the output for applying one choice
type ApplyChoiceOutput struct {
	Step builder.Step
	View *builder.PublicView
}

// ApplyChoicesInput defines the input for applying a batch of choices
type ApplyChoicesInput struct {
	SessionID string
	Choices   map[string]json.RawMessage
}

// ApplyChoicesOutput defines the output for applying a batch of choices.
// Failures maps each rejected choice key to its error; accepted entries
// are already applied.
type ApplyChoicesOutput struct {
	Step     builder.Step
	View     *builder.PublicView
	Failures map[string]error
}

// GetStepOptionsInput defines the input for reading step options
type GetStepOptionsInput struct {
	SessionID string
}

// GetStepOptionsOutput carries the options for the session's current step.
// Only the fields relevant to that step are set.
type GetStepOptionsOutput struct {
	Step              builder.Step
	Subclasses        []string
	ClassFeatures     []builder.ResolvedFeature
	SkillChoices      *SkillChoiceOptions
	TraitOptions      []builder.TraitOption
	Lineages          []string
	Languages         *builder.LanguageOptions
	AbilityScores     *builder.AbilityScoreOptions
	BackgroundBonuses *builder.BackgroundBonusOptions
	Equipment         []builder.EquipmentOption
}

// SkillChoiceOptions describes the class skill decision
type SkillChoiceOptions struct {
	Count    int
	Options  []string
	Selected []string
}

// ResetSessionInput defines the input for resetting a session
type ResetSessionInput struct {
	SessionID string
}

// ResetSessionOutput defines the output for resetting a session
type ResetSessionOutput struct {
	Step builder.Step
}

// DeleteSessionInput defines the input for deleting a session
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionOutput defines the output for deleting a session
type DeleteSessionOutput struct{}
