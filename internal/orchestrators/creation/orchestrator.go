// Package creation implements the character creation orchestrator. It owns
// the session lifecycle: each request loads the session, rebuilds the
// assembly engine from its serialized record, applies the request, and
// writes the record back.
package creation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/draftforge/draftforge/internal/builder"
	"github.com/draftforge/draftforge/internal/catalog"
	"github.com/draftforge/draftforge/internal/errors"
	"github.com/draftforge/draftforge/internal/pkg/clock"
	"github.com/draftforge/draftforge/internal/pkg/idgen"
	"github.com/draftforge/draftforge/internal/repositories/session"
)

const defaultSessionTTL = 24 * time.Hour

// Config holds the dependencies for the creation orchestrator
type Config struct {
	Repository session.Repository
	Catalog    catalog.Client
	IDGen      idgen.Generator
	Clock      clock.Clock
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.IDGen == nil {
		vb.RequiredField("IDGen")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Orchestrator implements the creation Service interface. The engine
// assumes single-writer access per session, so mutating operations for the
// same session are serialized through a per-session lock.
type Orchestrator struct {
	repo       session.Repository
	catalog    catalog.Client
	idGen      idgen.Generator
	clock      clock.Clock
	sessionTTL time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a new creation orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &Orchestrator{
		repo:       cfg.Repository,
		catalog:    cfg.Catalog,
		idGen:      cfg.IDGen,
		clock:      cfg.Clock,
		sessionTTL: ttl,
		locks:      make(map[string]*sync.Mutex),
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// StartSession begins a creation session for an owner
func (o *Orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ownerID", input.OwnerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	engine, err := o.newEngine()
	if err != nil {
		return nil, err
	}
	state, err := engine.Snapshot()
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	sess := &session.Session{
		ID:        o.idGen.Generate(),
		OwnerID:   input.OwnerID,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(o.sessionTTL),
	}

	out, err := o.repo.Create(ctx, session.CreateInput{Session: sess})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "creation session started",
		"session_id", sess.ID,
		"owner_id", input.OwnerID,
	)

	return &StartSessionOutput{
		Session: out.Session,
		Step:    engine.CurrentStep(),
	}, nil
}

// GetSession returns a session with the presentation view of its record
func (o *Orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sess, engine, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session: sess,
		View:    engine.PublicView(),
		Step:    engine.CurrentStep(),
	}, nil
}

// GetSessionByOwner returns the owner's session
func (o *Orchestrator) GetSessionByOwner(ctx context.Context, input *GetSessionByOwnerInput) (*GetSessionByOwnerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ownerID", input.OwnerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.repo.GetByOwnerID(ctx, session.GetByOwnerIDInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}

	engine, err := o.restoreEngine(out.Session)
	if err != nil {
		return nil, err
	}

	return &GetSessionByOwnerOutput{
		Session: out.Session,
		View:    engine.PublicView(),
		Step:    engine.CurrentStep(),
	}, nil
}

// ApplyChoice validates and applies one choice to the session's record
func (o *Orchestrator) ApplyChoice(ctx context.Context, input *ApplyChoiceInput) (*ApplyChoiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("sessionID", input.SessionID, vb)
	errors.ValidateRequired("key", input.Key, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lockSession(input.SessionID)
	defer unlock()

	sess, engine, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := engine.Apply(input.Key, input.Value); err != nil {
		return nil, err
	}

	if err := o.saveSession(ctx, sess, engine); err != nil {
		return nil, err
	}

	return &ApplyChoiceOutput{
		Step: engine.CurrentStep(),
		View: engine.PublicView(),
	}, nil
}

// ApplyChoices applies a batch of choices; entries fail independently
func (o *Orchestrator) ApplyChoices(ctx context.Context, input *ApplyChoicesInput) (*ApplyChoicesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("sessionID", input.SessionID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lockSession(input.SessionID)
	defer unlock()

	sess, engine, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	failures := engine.ApplyAll(input.Choices)
	for key, applyErr := range failures {
		slog.WarnContext(ctx, "choice rejected",
			"session_id", input.SessionID,
			"choice", key,
			"error", applyErr,
		)
	}

	if err := o.saveSession(ctx, sess, engine); err != nil {
		return nil, err
	}

	return &ApplyChoicesOutput{
		Step:     engine.CurrentStep(),
		View:     engine.PublicView(),
		Failures: failures,
	}, nil
}

// GetStepOptions returns what the current step asks the player to decide
func (o *Orchestrator) GetStepOptions(ctx context.Context, input *GetStepOptionsInput) (*GetStepOptionsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	_, engine, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	record := engine.Record()
	out := &GetStepOptionsOutput{Step: engine.CurrentStep()}

	switch out.Step {
	case builder.StepSubclass:
		out.Subclasses, err = o.catalog.ListSubclasses(record.Class)
	case builder.StepClassChoices:
		out.SkillChoices, err = o.skillChoices(record)
		if err == nil {
			out.ClassFeatures, err = engine.ClassFeatures()
		}
	case builder.StepSpeciesTraits:
		out.TraitOptions, err = engine.SpeciesTraitOptions()
	case builder.StepLineage:
		out.Lineages, err = o.lineages(record)
	case builder.StepLanguages:
		out.Languages, err = engine.LanguageOptions()
	case builder.StepAbilityScores:
		out.AbilityScores, err = engine.AbilityScoreOptions()
	case builder.StepBackgroundBonuses:
		out.BackgroundBonuses, err = engine.BackgroundBonusOptions()
	case builder.StepEquipment:
		out.Equipment, err = engine.EquipmentOptions()
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ResetSession discards the session's record and starts over
func (o *Orchestrator) ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	unlock := o.lockSession(input.SessionID)
	defer unlock()

	sess, engine, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	engine.Reset()
	if err := o.saveSession(ctx, sess, engine); err != nil {
		return nil, err
	}

	return &ResetSessionOutput{Step: engine.CurrentStep()}, nil
}

// DeleteSession removes the session entirely
func (o *Orchestrator) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	unlock := o.lockSession(input.SessionID)
	defer unlock()

	if _, err := o.repo.Delete(ctx, session.DeleteInput{ID: input.SessionID}); err != nil {
		return nil, err
	}
	return &DeleteSessionOutput{}, nil
}

func (o *Orchestrator) newEngine() (*builder.Engine, error) {
	return builder.New(&builder.Config{Catalog: o.catalog})
}

// loadSession fetches a session and rebuilds its engine
func (o *Orchestrator) loadSession(ctx context.Context, sessionID string) (*session.Session, *builder.Engine, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("sessionID", sessionID, vb)
	if err := vb.Build(); err != nil {
		return nil, nil, err
	}

	out, err := o.repo.Get(ctx, session.GetInput{ID: sessionID})
	if err != nil {
		return nil, nil, err
	}

	engine, err := o.restoreEngine(out.Session)
	if err != nil {
		return nil, nil, err
	}
	return out.Session, engine, nil
}

func (o *Orchestrator) restoreEngine(sess *session.Session) (*builder.Engine, error) {
	engine, err := o.newEngine()
	if err != nil {
		return nil, err
	}
	if err := engine.Restore(sess.State); err != nil {
		return nil, errors.Wrapf(err, "restoring session %s", sess.ID)
	}
	return engine, nil
}

// saveSession serializes the engine's record back into the session
func (o *Orchestrator) saveSession(ctx context.Context, sess *session.Session, engine *builder.Engine) error {
	state, err := engine.Snapshot()
	if err != nil {
		return err
	}

	sess.State = state
	sess.UpdatedAt = o.clock.Now()
	if _, err := o.repo.Update(ctx, session.UpdateInput{Session: sess}); err != nil {
		return err
	}
	return nil
}

func (o *Orchestrator) skillChoices(record *builder.Record) (*SkillChoiceOptions, error) {
	if record.Class == "" {
		return nil, errors.FailedPrecondition("select a class before class skills")
	}
	class, err := o.catalog.GetClass(record.Class)
	if err != nil {
		return nil, err
	}
	if class.SkillChoices == nil {
		return &SkillChoiceOptions{Selected: record.ClassSkills}, nil
	}
	return &SkillChoiceOptions{
		Count:    class.SkillChoices.Count,
		Options:  class.SkillChoices.Options,
		Selected: record.ClassSkills,
	}, nil
}

func (o *Orchestrator) lineages(record *builder.Record) ([]string, error) {
	if record.Species == "" {
		return nil, errors.FailedPrecondition("select a species before a lineage")
	}
	species, err := o.catalog.GetSpecies(record.Species)
	if err != nil {
		return nil, err
	}
	return species.Lineages, nil
}

// lockSession returns an unlock func after acquiring the session's lock
func (o *Orchestrator) lockSession(sessionID string) func() {
	o.mu.Lock()
	lock, ok := o.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[sessionID] = lock
	}
	o.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
