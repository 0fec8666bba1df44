package contest

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/contested/internal/common/clock"
	"github.com/KirkDiggler/contested/internal/common/uuid"
	"github.com/KirkDiggler/contested/internal/logging"
	"github.com/KirkDiggler/contested/internal/metrics"
	"github.com/KirkDiggler/contested/internal/models"
	contestRepo "github.com/KirkDiggler/contested/internal/repositories/contest"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	"github.com/KirkDiggler/contested/internal/rules/hitlocation"
	"github.com/KirkDiggler/contested/internal/rules/permission"
	"github.com/KirkDiggler/contested/internal/rules/roll"
	"github.com/KirkDiggler/contested/internal/services/handoff"
)

const (
	defaultMaxWriteRetries = 3

	declinedTextual = "No defense"
)

// service implements the Service interface
type service struct {
	contestRepo contestRepo.Repository
	entityRepo  entityRepo.Repository

	rollResolver *roll.Resolver
	hitLocations *hitlocation.Resolver
	guard        *permission.Guard

	publisher handoff.Publisher
	listeners []Listener

	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        logrus.FieldLogger
	metrics       *metrics.Metrics
	validate      *validator.Validate
	locks         *keyedMutex

	allowLuckyUnlucky bool
	maxWriteRetries   int
}

// New creates a new contest service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.ContestRepo == nil {
		return nil, ErrNilContestRepo
	}
	if cfg.EntityRepo == nil {
		return nil, ErrNilEntityRepo
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	rollResolver, err := roll.New(&roll.Config{DiceRoller: cfg.DiceRoller})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll resolver: %w", err)
	}

	hitLocations, err := hitlocation.New(&hitlocation.Config{DiceRoller: cfg.DiceRoller})
	if err != nil {
		return nil, fmt.Errorf("failed to create hit location resolver: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	retries := cfg.MaxWriteRetries
	if retries < 1 {
		retries = defaultMaxWriteRetries
	}

	return &service{
		contestRepo:       cfg.ContestRepo,
		entityRepo:        cfg.EntityRepo,
		rollResolver:      rollResolver,
		hitLocations:      hitLocations,
		guard:             permission.New(),
		publisher:         cfg.Publisher,
		listeners:         cfg.Listeners,
		clock:             cfg.Clock,
		uuidGenerator:     cfg.UUIDGenerator,
		logger:            logger,
		metrics:           cfg.Metrics,
		validate:          validator.New(),
		locks:             newKeyedMutex(),
		allowLuckyUnlucky: cfg.AllowLuckyUnlucky,
		maxWriteRetries:   retries,
	}, nil
}

// CreateContest opens a pending contest between two entities
func (s *service) CreateContest(ctx context.Context, input *CreateContestInput) (*CreateContestOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	attacker, err := s.buildParticipant(ctx, &input.Attacker)
	if err != nil {
		return nil, err
	}

	defender, err := s.buildParticipant(ctx, &input.Defender)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	contest := &models.Contest{
		ID:        s.uuidGenerator.NewUUID(),
		ChannelID: input.ChannelID,
		Mode:      input.Mode,
		Status:    models.ContestStatusPending,
		Attacker:  attacker,
		Defender:  defender,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Identity != nil {
		contest.CreatedBy = input.Identity.UserID
	}

	created, err := s.contestRepo.CreateContest(ctx, &contestRepo.CreateContestInput{
		Contest: contest,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}

	s.metrics.ContestCreated(string(created.Mode))
	s.logger.WithFields(logrus.Fields{
		"contest_id": created.ID,
		"mode":       created.Mode,
		"attacker":   attacker.SideID,
		"defender":   defender.SideID,
	}).Info("contest created")
	s.notify(ctx, created)

	return &CreateContestOutput{
		Contest: created,
	}, nil
}

// SubmitRoll rolls for one side of a contest
func (s *service) SubmitRoll(ctx context.Context, input *SubmitRollInput) (*SubmitRollOutput, error) {
	if input == nil || input.ContestID == "" {
		return nil, ErrInvalidInput
	}
	if !input.Side.IsValid() {
		return nil, ErrInvalidSide
	}
	if input.Identity == nil {
		return nil, ErrMissingIdentity
	}

	result, err := s.submit(ctx, input.ContestID, &submission{
		side:     input.Side,
		identity: input.Identity,
		apply: func(c *models.Contest, entity *models.Entity) error {
			return s.applyRoll(c, entity, input)
		},
	})
	if err != nil {
		return nil, err
	}

	return &SubmitRollOutput{SubmissionResult: *result}, nil
}

// DeclineDefense records that the defender forgoes rolling
func (s *service) DeclineDefense(ctx context.Context, input *DeclineDefenseInput) (*DeclineDefenseOutput, error) {
	if input == nil || input.ContestID == "" {
		return nil, ErrInvalidInput
	}
	if input.Identity == nil {
		return nil, ErrMissingIdentity
	}

	result, err := s.submit(ctx, input.ContestID, &submission{
		side:     models.SideDefender,
		identity: input.Identity,
		apply: func(c *models.Contest, _ *models.Entity) error {
			defender := c.Defender
			target, _ := defender.EffectiveTarget()
			defender.DeclinedDefense = true
			defender.Result = &models.RollOutcome{
				RollTotal: 100,
				Target:    target,
				IsSuccess: false,
				Degree:    1,
				Textual:   declinedTextual,
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &DeclineDefenseOutput{SubmissionResult: *result}, nil
}

// GetContest retrieves a contest
func (s *service) GetContest(ctx context.Context, input *GetContestInput) (*GetContestOutput, error) {
	if input == nil || input.ContestID == "" {
		return nil, ErrInvalidInput
	}

	contest, err := s.getContest(ctx, input.ContestID)
	if err != nil {
		return nil, err
	}

	return &GetContestOutput{
		Contest: contest,
	}, nil
}

// ListPendingContests retrieves unresolved contests in a channel
func (s *service) ListPendingContests(ctx context.Context, input *ListPendingContestsInput) (*ListPendingContestsOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	out, err := s.contestRepo.ListPendingContests(ctx, &contestRepo.ListPendingContestsInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending contests: %w", err)
	}

	return &ListPendingContestsOutput{
		Contests: out.Contests,
	}, nil
}

// AttachMessage records the chat message presenting the contest
func (s *service) AttachMessage(ctx context.Context, input *AttachMessageInput) (*AttachMessageOutput, error) {
	if input == nil || input.ContestID == "" || input.MessageID == "" {
		return nil, ErrInvalidInput
	}

	unlock := s.locks.Lock(input.ContestID)
	defer unlock()

	for attempt := 0; attempt < s.maxWriteRetries; attempt++ {
		stored, err := s.getContest(ctx, input.ContestID)
		if err != nil {
			return nil, err
		}
		if stored.Status.IsResolved() {
			return nil, ErrAlreadyResolved
		}
		if stored.MessageID == input.MessageID {
			return &AttachMessageOutput{Contest: stored}, nil
		}

		working := stored.Clone()
		working.MessageID = input.MessageID
		working.UpdatedAt = s.clock.Now()

		updated, err := s.updateContest(ctx, working)
		if errors.Is(err, contestRepo.ErrVersionConflict) {
			s.metrics.WriteConflict()
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to attach message: %w", err)
		}

		return &AttachMessageOutput{Contest: updated}, nil
	}

	return nil, ErrWriteConflict
}

// DiscardContest abandons a pending contest
func (s *service) DiscardContest(ctx context.Context, input *DiscardContestInput) (*DiscardContestOutput, error) {
	if input == nil || input.ContestID == "" {
		return nil, ErrInvalidInput
	}
	if input.Identity == nil {
		return nil, ErrMissingIdentity
	}

	unlock := s.locks.Lock(input.ContestID)
	defer unlock()

	stored, err := s.getContest(ctx, input.ContestID)
	if err != nil {
		return nil, err
	}
	if !stored.Status.IsPending() {
		return nil, ErrNotDiscardable
	}
	if !input.Identity.IsGameMaster && input.Identity.UserID != stored.CreatedBy {
		return nil, ErrNotDiscardable
	}

	err = s.contestRepo.DeleteContest(ctx, &contestRepo.DeleteContestInput{
		ContestID: stored.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discard contest: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"contest_id": stored.ID,
		"user_id":    input.Identity.UserID,
	}).Info("contest discarded")

	return &DiscardContestOutput{
		Discarded: true,
	}, nil
}

// submission is one side's attempt to store a result
type submission struct {
	side     models.Side
	identity *models.Identity

	// apply mutates a working copy; the stored record is untouched on error
	apply func(c *models.Contest, entity *models.Entity) error
}

// effects collects what a locked operation produced. They are delivered
// after the contest lock is released.
type effects struct {
	updates    []*models.Contest
	resolution *models.Resolution
}

func (s *service) submit(ctx context.Context, contestID string, sub *submission) (*SubmissionResult, error) {
	fx := &effects{}
	result, err := s.submitLocked(ctx, contestID, sub, fx)
	s.deliver(ctx, fx)
	return result, err
}

func (s *service) submitLocked(ctx context.Context, contestID string, sub *submission, fx *effects) (*SubmissionResult, error) {
	unlock := s.locks.Lock(contestID)
	defer unlock()

	log := s.logger.WithFields(logrus.Fields{
		"contest_id": contestID,
		"side":       sub.side,
		"user_id":    sub.identity.UserID,
	})

	for attempt := 0; attempt < s.maxWriteRetries; attempt++ {
		stored, err := s.getContest(ctx, contestID)
		if err != nil {
			return nil, err
		}

		if stored.Status.IsResolved() {
			return s.skip(log, stored, ErrAlreadyResolved), nil
		}

		if stored.Participant(sub.side).HasResult() {
			result := s.skip(log, stored, ErrAlreadySubmitted)
			if stored.BothRolled() {
				// A previous call stored both results but not the outcome
				if err := s.complete(ctx, result, fx); err != nil {
					return nil, err
				}
			}
			return result, nil
		}

		entity, err := s.loadEntity(ctx, stored.Participant(sub.side).SideID)
		if err != nil {
			return nil, s.reject(log, err)
		}

		if !s.guard.CanSubmit(sub.identity, entity) {
			return nil, s.reject(log, ErrPermissionDenied)
		}

		working := stored.Clone()
		if err := sub.apply(working, entity); err != nil {
			return nil, s.reject(log, err)
		}

		now := s.clock.Now()
		participant := working.Participant(sub.side)
		participant.SubmittedBy = sub.identity.UserID
		participant.SubmittedAt = &now
		working.UpdatedAt = now

		updated, err := s.updateContest(ctx, working)
		if errors.Is(err, contestRepo.ErrVersionConflict) {
			s.metrics.WriteConflict()
			log.WithField("attempt", attempt+1).Warn("contest changed while saving, re-reading")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save submission: %w", err)
		}

		s.metrics.SubmissionAccepted(string(sub.side), participant.Result.IsSuccess)
		log.WithField("result", participant.Result.Textual).Info("submission recorded")
		fx.updates = append(fx.updates, updated)

		result := &SubmissionResult{
			Contest: updated,
			Applied: true,
		}
		if updated.BothRolled() {
			if err := s.complete(ctx, result, fx); err != nil {
				return nil, err
			}
		}
		return result, nil
	}

	return nil, s.reject(log, ErrWriteConflict)
}

func (s *service) applyRoll(c *models.Contest, entity *models.Entity, input *SubmitRollInput) error {
	participant := c.Participant(input.Side)

	if participant.TargetNumber == nil {
		if input.Choice == "" {
			if input.Side == models.SideDefender {
				return ErrMissingDefenseChoice
			}
			return ErrMissingTargetNumber
		}

		target, ok := entity.Skill(input.Choice)
		if !ok {
			return ErrUnknownChoice
		}
		participant.Label = input.Choice
		participant.TargetNumber = &target
	}
	participant.Modifier += input.Modifier

	target, _ := participant.EffectiveTarget()
	outcome, err := s.rollResolver.Resolve(entity, &roll.Input{
		Target:            target,
		AllowLuckyUnlucky: s.allowLuckyUnlucky,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve roll: %w", err)
	}
	participant.Result = outcome

	if input.Side == models.SideAttacker {
		location, err := s.hitLocationFor(c.Mode, input.PrecisionLocation)
		if err != nil {
			return err
		}
		c.HitLocation = location
	}

	return nil
}

func (s *service) hitLocationFor(mode models.ContestMode, precision *models.HitLocation) (*models.HitLocation, error) {
	switch {
	case mode.IsArea():
		location := hitlocation.ForArea()
		return &location, nil
	case mode.RollsHitLocation():
		input := &hitlocation.Input{Mode: hitlocation.ModeRoll}
		if precision != nil {
			input = &hitlocation.Input{Mode: hitlocation.ModeManual, Manual: precision}
		}
		location, err := s.hitLocations.Resolve(input)
		if err != nil {
			return nil, err
		}
		return &location, nil
	}
	return nil, nil
}

// complete finalizes result.Contest in place
func (s *service) complete(ctx context.Context, result *SubmissionResult, fx *effects) error {
	finalized, resolution, err := s.finalize(ctx, result.Contest, fx)
	if err != nil {
		return err
	}

	result.Contest = finalized
	result.Resolution = resolution
	result.Resolved = resolution != nil
	return nil
}

// finalize computes and stores the outcome. The returned resolution is nil
// when another writer finalized first.
func (s *service) finalize(ctx context.Context, stored *models.Contest, fx *effects) (*models.Contest, *models.Resolution, error) {
	current := stored
	for attempt := 0; attempt < s.maxWriteRetries; attempt++ {
		working := current.Clone()
		working.Outcome = ComputeOutcome(working.Attacker, working.Defender)
		working.Status = models.ContestStatusResolved
		working.UpdatedAt = s.clock.Now()

		updated, err := s.updateContest(ctx, working)
		if err == nil {
			return updated, s.resolved(updated, fx), nil
		}
		if !errors.Is(err, contestRepo.ErrVersionConflict) {
			return nil, nil, fmt.Errorf("failed to resolve contest: %w", err)
		}

		s.metrics.WriteConflict()
		current, err = s.getContest(ctx, stored.ID)
		if err != nil {
			return nil, nil, err
		}
		if current.Status.IsResolved() {
			return current, nil, nil
		}
	}

	return nil, nil, ErrWriteConflict
}

func (s *service) resolved(contest *models.Contest, fx *effects) *models.Resolution {
	resolution := models.NewResolution(contest)

	s.logger.WithFields(logrus.Fields{
		"contest_id": contest.ID,
		"winner":     contest.Outcome.Winner,
		"reason":     contest.Outcome.Reason,
	}).Info("contest resolved")

	s.metrics.ContestResolved(string(contest.Mode), string(contest.Outcome.Reason))

	fx.updates = append(fx.updates, contest)
	fx.resolution = resolution

	return resolution
}

// deliver notifies listeners and publishes a resolution. It must run
// without the contest lock held.
func (s *service) deliver(ctx context.Context, fx *effects) {
	for _, updated := range fx.updates {
		s.notify(ctx, updated)
	}

	if fx.resolution == nil || s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, fx.resolution); err != nil {
		s.logger.WithError(err).WithField("contest_id", fx.resolution.ContestID).
			Error("failed to publish resolution")
	}
}

func (s *service) skip(log logrus.FieldLogger, contest *models.Contest, reason error) *SubmissionResult {
	s.metrics.SubmissionRejected(reasonLabel(reason))
	log.WithField("reason", reasonLabel(reason)).Debug("submission ignored")

	return &SubmissionResult{
		Contest: contest,
		Skipped: reason,
	}
}

func (s *service) reject(log logrus.FieldLogger, err error) error {
	s.metrics.SubmissionRejected(reasonLabel(err))
	log.WithError(err).Info("submission rejected")
	return err
}

func (s *service) notify(ctx context.Context, contest *models.Contest) {
	for _, l := range s.listeners {
		l.ContestUpdated(ctx, contest)
	}
}

// updateContest stores a working copy, translating a record removed by
// another process into ErrContestNotFound
func (s *service) updateContest(ctx context.Context, working *models.Contest) (*models.Contest, error) {
	updated, err := s.contestRepo.UpdateContest(ctx, &contestRepo.UpdateContestInput{
		Contest: working,
	})
	if errors.Is(err, contestRepo.ErrContestNotFound) {
		return nil, ErrContestNotFound
	}
	return updated, err
}

func (s *service) getContest(ctx context.Context, contestID string) (*models.Contest, error) {
	contest, err := s.contestRepo.GetContest(ctx, &contestRepo.GetContestInput{
		ContestID: contestID,
	})
	if err != nil {
		if errors.Is(err, contestRepo.ErrContestNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}
	return contest, nil
}

func (s *service) loadEntity(ctx context.Context, entityID string) (*models.Entity, error) {
	entity, err := s.entityRepo.GetEntity(ctx, &entityRepo.GetEntityInput{
		EntityID: entityID,
	})
	if err != nil {
		if errors.Is(err, entityRepo.ErrEntityNotFound) {
			return nil, ErrUnresolvedParticipant
		}
		return nil, fmt.Errorf("failed to get entity %s: %w", entityID, err)
	}
	return entity, nil
}

func (s *service) buildParticipant(ctx context.Context, ps *ParticipantSpec) (*models.Participant, error) {
	entity, err := s.loadEntity(ctx, ps.EntityID)
	if err != nil {
		return nil, err
	}

	participant := &models.Participant{
		SideID:        ps.EntityID,
		DisplayName:   entity.Name,
		Label:         ps.Label,
		Modifier:      ps.Modifier,
		DamageFormula: ps.DamageFormula,
	}

	switch {
	case ps.TargetNumber != nil:
		target := *ps.TargetNumber
		participant.TargetNumber = &target
	case ps.Label != "":
		if target, ok := entity.Skill(ps.Label); ok {
			participant.TargetNumber = &target
		}
	}

	return participant, nil
}
