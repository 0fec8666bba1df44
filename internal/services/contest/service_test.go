package contest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockClock "github.com/KirkDiggler/contested/internal/common/clock/mocks"
	mockUUID "github.com/KirkDiggler/contested/internal/common/uuid/mocks"
	"github.com/KirkDiggler/contested/internal/dice"
	mockDice "github.com/KirkDiggler/contested/internal/dice/mocks"
	"github.com/KirkDiggler/contested/internal/logging"
	"github.com/KirkDiggler/contested/internal/metrics"
	"github.com/KirkDiggler/contested/internal/models"
	contestRepo "github.com/KirkDiggler/contested/internal/repositories/contest"
	mockContestRepo "github.com/KirkDiggler/contested/internal/repositories/contest/mocks"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	mockEntityRepo "github.com/KirkDiggler/contested/internal/repositories/entity/mocks"
	mockHandoff "github.com/KirkDiggler/contested/internal/services/handoff/mocks"
)

type ServiceTestSuite struct {
	suite.Suite

	// Mocks
	mockCtrl        *gomock.Controller
	mockContestRepo *mockContestRepo.MockRepository
	mockEntityRepo  *mockEntityRepo.MockRepository
	mockRoller      *mockDice.MockRoller
	mockClock       *mockClock.MockClock
	mockUUID        *mockUUID.MockUUID
	mockPublisher   *mockHandoff.MockPublisher

	// Service under test
	service Service
	metrics *metrics.Metrics

	// Test data
	ctx              context.Context
	testNow          time.Time
	contestID        string
	channelID        string
	attackerEntity   *models.Entity
	defenderEntity   *models.Entity
	attackerIdentity *models.Identity
	defenderIdentity *models.Identity
	gmIdentity       *models.Identity
}

func (s *ServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockContestRepo = mockContestRepo.NewMockRepository(s.mockCtrl)
	s.mockEntityRepo = mockEntityRepo.NewMockRepository(s.mockCtrl)
	s.mockRoller = mockDice.NewMockRoller(s.mockCtrl)
	s.mockClock = mockClock.NewMockClock(s.mockCtrl)
	s.mockUUID = mockUUID.NewMockUUID(s.mockCtrl)
	s.mockPublisher = mockHandoff.NewMockPublisher(s.mockCtrl)
	s.metrics = metrics.New(nil)

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.contestID = "contest-1"
	s.channelID = "channel-1"

	s.attackerEntity = &models.Entity{
		ID:       "pc-kara",
		Name:     "Kara",
		OwnerIDs: []string{"user-kara"},
		Skills:   map[string]int{"Sword": 60},
	}
	s.defenderEntity = &models.Entity{
		ID:       "npc-orc",
		Name:     "Orc",
		OwnerIDs: []string{"user-gm-helper"},
		Skills:   map[string]int{"Parry": 40, "Evade": 45},
	}
	s.attackerIdentity = &models.Identity{UserID: "user-kara", Name: "kara"}
	s.defenderIdentity = &models.Identity{UserID: "user-gm-helper", Name: "helper"}
	s.gmIdentity = &models.Identity{UserID: "user-gm", Name: "gm", IsGameMaster: true}

	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()

	svc, err := New(&Config{
		AllowLuckyUnlucky: true,
		ContestRepo:       s.mockContestRepo,
		EntityRepo:        s.mockEntityRepo,
		DiceRoller:        s.mockRoller,
		Clock:             s.mockClock,
		UUIDGenerator:     s.mockUUID,
		Publisher:         s.mockPublisher,
		Logger:            logging.Discard(),
		Metrics:           s.metrics,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

// pendingContest returns a fresh attack contest where the attacker has a target
// and the defender has not chosen a defense
func (s *ServiceTestSuite) pendingContest() *models.Contest {
	target := 60
	return &models.Contest{
		ID:        s.contestID,
		ChannelID: s.channelID,
		Mode:      models.ContestModeAttack,
		Status:    models.ContestStatusPending,
		Attacker: &models.Participant{
			SideID:        s.attackerEntity.ID,
			DisplayName:   s.attackerEntity.Name,
			Label:         "Sword",
			TargetNumber:  &target,
			DamageFormula: "1d8+1",
		},
		Defender: &models.Participant{
			SideID:      s.defenderEntity.ID,
			DisplayName: s.defenderEntity.Name,
		},
		Version:   1,
		CreatedBy: s.attackerIdentity.UserID,
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}
}

func (s *ServiceTestSuite) expectGet(contests ...*models.Contest) {
	calls := make([]any, 0, len(contests))
	for _, c := range contests {
		calls = append(calls, s.mockContestRepo.EXPECT().
			GetContest(s.ctx, &contestRepo.GetContestInput{ContestID: s.contestID}).
			Return(c, nil))
	}
	gomock.InOrder(calls...)
}

func (s *ServiceTestSuite) expectEntity(entity *models.Entity) {
	s.mockEntityRepo.EXPECT().
		GetEntity(s.ctx, &entityRepo.GetEntityInput{EntityID: entity.ID}).
		Return(entity, nil)
}

// bumpVersion mimics a successful repository update
func bumpVersion(_ context.Context, input *contestRepo.UpdateContestInput) (*models.Contest, error) {
	out := input.Contest.Clone()
	out.Version++
	return out, nil
}

func (s *ServiceTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{})
	s.Equal(ErrNilContestRepo, err)

	_, err = New(&Config{ContestRepo: s.mockContestRepo})
	s.Equal(ErrNilEntityRepo, err)

	_, err = New(&Config{ContestRepo: s.mockContestRepo, EntityRepo: s.mockEntityRepo})
	s.Equal(ErrNilDiceRoller, err)
}

func (s *ServiceTestSuite) TestCreateContest_Success() {
	s.expectEntity(s.attackerEntity)
	s.expectEntity(s.defenderEntity)
	s.mockUUID.EXPECT().NewUUID().Return(s.contestID)
	s.mockContestRepo.EXPECT().
		CreateContest(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *contestRepo.CreateContestInput) (*models.Contest, error) {
			out := input.Contest.Clone()
			out.Version = 1
			return out, nil
		})

	out, err := s.service.CreateContest(s.ctx, &CreateContestInput{
		ChannelID: s.channelID,
		Mode:      models.ContestModeAttack,
		Attacker: ParticipantSpec{
			EntityID:      s.attackerEntity.ID,
			Label:         "Sword",
			Modifier:      -10,
			DamageFormula: "1d8+1",
		},
		Defender: ParticipantSpec{EntityID: s.defenderEntity.ID},
		Identity: s.attackerIdentity,
	})

	s.Require().NoError(err)
	c := out.Contest
	s.Equal(s.contestID, c.ID)
	s.Equal(models.ContestStatusPending, c.Status)
	s.Equal(int64(1), c.Version)
	s.Equal(s.attackerIdentity.UserID, c.CreatedBy)
	s.Equal("Kara", c.Attacker.DisplayName)
	s.Require().NotNil(c.Attacker.TargetNumber)
	s.Equal(60, *c.Attacker.TargetNumber)
	target, ok := c.Attacker.EffectiveTarget()
	s.True(ok)
	s.Equal(50, target)
	s.Nil(c.Defender.TargetNumber)
	s.Nil(c.Outcome)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.ContestsCreated.WithLabelValues("attack")))
}

func (s *ServiceTestSuite) TestCreateContest_UnresolvedParticipant() {
	s.expectEntity(s.attackerEntity)
	s.mockEntityRepo.EXPECT().
		GetEntity(s.ctx, &entityRepo.GetEntityInput{EntityID: "ghost"}).
		Return(nil, entityRepo.ErrEntityNotFound)

	out, err := s.service.CreateContest(s.ctx, &CreateContestInput{
		Mode:     models.ContestModeSkill,
		Attacker: ParticipantSpec{EntityID: s.attackerEntity.ID},
		Defender: ParticipantSpec{EntityID: "ghost"},
	})

	s.Nil(out)
	s.ErrorIs(err, ErrUnresolvedParticipant)
}

func (s *ServiceTestSuite) TestCreateContest_InvalidInput() {
	_, err := s.service.CreateContest(s.ctx, &CreateContestInput{
		Mode:     "duel",
		Attacker: ParticipantSpec{EntityID: "a"},
		Defender: ParticipantSpec{EntityID: "b"},
	})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.service.CreateContest(s.ctx, &CreateContestInput{
		Mode:     models.ContestModeAttack,
		Attacker: ParticipantSpec{EntityID: "a"},
	})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *ServiceTestSuite) TestSubmitRoll_AttackerRollsHitLocation() {
	s.expectGet(s.pendingContest())
	s.expectEntity(s.attackerEntity)
	s.mockRoller.EXPECT().Roll(dice.D100).Return(55)
	s.mockRoller.EXPECT().Roll(dice.D10).Return(10)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion)

	out, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.attackerIdentity,
	})

	s.Require().NoError(err)
	s.True(out.Applied)
	s.False(out.Resolved)
	s.Nil(out.Skipped)

	attacker := out.Contest.Attacker
	s.Require().NotNil(attacker.Result)
	s.Equal(55, attacker.Result.RollTotal)
	s.True(attacker.Result.IsSuccess)
	s.Equal(5, attacker.Result.Degree)
	s.Equal("5 DoS", attacker.Result.Textual)
	s.Equal(s.attackerIdentity.UserID, attacker.SubmittedBy)
	s.Require().NotNil(attacker.SubmittedAt)
	s.Require().NotNil(out.Contest.HitLocation)
	s.Equal(models.HitLocationHead, *out.Contest.HitLocation)
	s.Equal(models.ContestStatusPending, out.Contest.Status)
	s.Equal(int64(2), out.Contest.Version)
}

func (s *ServiceTestSuite) TestSubmitRoll_PrecisionLocation() {
	s.expectGet(s.pendingContest())
	s.expectEntity(s.attackerEntity)
	s.mockRoller.EXPECT().Roll(dice.D100).Return(12)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion)

	leftArm := models.HitLocationLeftArm
	out, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID:         s.contestID,
		Side:              models.SideAttacker,
		Identity:          s.attackerIdentity,
		PrecisionLocation: &leftArm,
	})

	s.Require().NoError(err)
	s.Equal(models.HitLocationLeftArm, *out.Contest.HitLocation)
}

func (s *ServiceTestSuite) TestSubmitRoll_AreaModeFixesBody() {
	contest := s.pendingContest()
	contest.Mode = models.ContestModeArea
	s.expectGet(contest)
	s.expectEntity(s.attackerEntity)
	s.mockRoller.EXPECT().Roll(dice.D100).Return(70)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion)

	out, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.attackerIdentity,
	})

	s.Require().NoError(err)
	s.False(out.Contest.Attacker.Result.IsSuccess)
	s.Equal(2, out.Contest.Attacker.Result.Degree)
	s.Equal(models.HitLocationBody, *out.Contest.HitLocation)
}

func (s *ServiceTestSuite) TestSubmitRoll_PermissionDenied() {
	stored := s.pendingContest()
	s.expectGet(stored)
	s.expectEntity(s.attackerEntity)

	out, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.defenderIdentity,
	})

	s.Nil(out)
	s.ErrorIs(err, ErrPermissionDenied)
	s.Nil(stored.Attacker.Result)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Rejections.WithLabelValues("permission_denied")))
}

func (s *ServiceTestSuite) TestSubmitRoll_GameMasterMaySubmitAnySide() {
	s.expectGet(s.pendingContest())
	s.expectEntity(s.defenderEntity)
	s.mockRoller.EXPECT().Roll(dice.D100).Return(41)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion)

	out, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideDefender,
		Identity:  s.gmIdentity,
		Choice:    "Evade",
	})

	s.Require().NoError(err)
	defender := out.Contest.Defender
	s.Equal("Evade", defender.Label)
	s.Equal(45, *defender.TargetNumber)
	s.True(defender.Result.IsSuccess)
	s.Equal(4, defender.Result.Degree)
	s.Equal(s.gmIdentity.UserID, defender.SubmittedBy)
	s.Nil(out.Contest.HitLocation)
}

func (s *ServiceTestSuite) TestSubmitRoll_AlreadySubmitted() {
	contest := s.pendingContest()
	contest.Attacker.Result = &models.RollOutcome{RollTotal: 20, Target: 60, IsSuccess: true, Degree: 2, Textual: "2 DoS"}
	s.expectGet(contest)

	out, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.attackerIdentity,
	})

	s.Require().NoError(err)
	s.False(out.Applied)
	s.Equal(ErrAlreadySubmitted, out.Skipped)
	s.Equal(20, out.Contest.Attacker.Result.RollTotal)
}

func (s *ServiceTestSuite) TestSubmitRoll_AlreadyResolved() {
	contest := s.pendingContest()
	contest.Status = models.ContestStatusResolved
	contest.Outcome = &models.Outcome{Winner: models.SideAttacker, Reason: models.OutcomeReasonAttackerSucceeded}
	s.expectGet(contest)

	out, err := s.service.DeclineDefense(s.ctx, &DeclineDefenseInput{
		ContestID: s.contestID,
		Identity:  s.defenderIdentity,
	})

	s.Require().NoError(err)
	s.Equal(ErrAlreadyResolved, out.Skipped)
	s.Equal(models.SideAttacker, out.Contest.Outcome.Winner)
}

func (s *ServiceTestSuite) TestSubmitRoll_MissingChoices() {
	s.expectGet(s.pendingContest())
	s.expectEntity(s.defenderEntity)

	_, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideDefender,
		Identity:  s.defenderIdentity,
	})
	s.ErrorIs(err, ErrMissingDefenseChoice)

	contest := s.pendingContest()
	contest.Attacker.TargetNumber = nil
	s.expectGet(contest)
	s.expectEntity(s.attackerEntity)

	_, err = s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.attackerIdentity,
	})
	s.ErrorIs(err, ErrMissingTargetNumber)
}

func (s *ServiceTestSuite) TestSubmitRoll_UnknownChoice() {
	s.expectGet(s.pendingContest())
	s.expectEntity(s.defenderEntity)

	_, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideDefender,
		Identity:  s.defenderIdentity,
		Choice:    "Dodge",
	})
	s.ErrorIs(err, ErrUnknownChoice)
}

func (s *ServiceTestSuite) TestSubmitRoll_InvalidInput() {
	_, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      "bystander",
		Identity:  s.gmIdentity,
	})
	s.ErrorIs(err, ErrInvalidSide)

	_, err = s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
	})
	s.ErrorIs(err, ErrMissingIdentity)
}

func (s *ServiceTestSuite) TestSubmitRoll_ContestNotFound() {
	s.mockContestRepo.EXPECT().
		GetContest(s.ctx, gomock.Any()).
		Return(nil, contestRepo.ErrContestNotFound)

	_, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.attackerIdentity,
	})
	s.ErrorIs(err, ErrContestNotFound)
}

func (s *ServiceTestSuite) TestSubmitRoll_StorageErrorIsWrapped() {
	storageErr := errors.New("connection reset")
	s.expectGet(s.pendingContest())
	s.expectEntity(s.attackerEntity)
	s.mockRoller.EXPECT().Roll(dice.D100).Return(55)
	s.mockRoller.EXPECT().Roll(dice.D10).Return(2)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).Return(nil, storageErr)

	_, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.attackerIdentity,
	})
	s.ErrorIs(err, storageErr)
}

func (s *ServiceTestSuite) TestSubmitRoll_DiscardedWhileSaving() {
	s.expectGet(s.pendingContest())
	s.expectEntity(s.attackerEntity)
	s.mockRoller.EXPECT().Roll(dice.D100).Return(55)
	s.mockRoller.EXPECT().Roll(dice.D10).Return(2)
	s.mockContestRepo.EXPECT().
		UpdateContest(s.ctx, gomock.Any()).
		Return(nil, contestRepo.ErrContestNotFound)

	_, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.attackerIdentity,
	})
	s.ErrorIs(err, ErrContestNotFound)
}

func (s *ServiceTestSuite) TestSubmitRoll_ConflictLoserBecomesNoOp() {
	winner := s.pendingContest()
	winner.Version = 2
	winner.Attacker.Result = &models.RollOutcome{RollTotal: 8, Target: 60, IsSuccess: true, Degree: 1, Textual: "1 DoS"}

	s.expectGet(s.pendingContest(), winner)
	s.expectEntity(s.attackerEntity)
	s.mockRoller.EXPECT().Roll(dice.D100).Return(55)
	s.mockRoller.EXPECT().Roll(dice.D10).Return(3)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).Return(nil, contestRepo.ErrVersionConflict)

	out, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.attackerIdentity,
	})

	s.Require().NoError(err)
	s.Equal(ErrAlreadySubmitted, out.Skipped)
	s.Equal(8, out.Contest.Attacker.Result.RollTotal)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.WriteConflicts))
}

func (s *ServiceTestSuite) TestSubmitRoll_ConflictWithOtherSideRetriesAndResolves() {
	defenderFirst := s.pendingContest()
	defenderFirst.Version = 2
	parry := 40
	defenderFirst.Defender.Label = "Parry"
	defenderFirst.Defender.TargetNumber = &parry
	defenderFirst.Defender.Result = &models.RollOutcome{RollTotal: 38, Target: 40, IsSuccess: true, Degree: 3, Textual: "3 DoS"}

	s.expectGet(s.pendingContest(), defenderFirst)
	s.expectEntity(s.attackerEntity)
	s.expectEntity(s.attackerEntity)
	s.mockRoller.EXPECT().Roll(dice.D100).Return(55).Times(2)
	s.mockRoller.EXPECT().Roll(dice.D10).Return(3).Times(2)
	gomock.InOrder(
		s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).Return(nil, contestRepo.ErrVersionConflict),
		s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion).Times(2),
	)

	var published *models.Resolution
	s.mockPublisher.EXPECT().Publish(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Resolution) error {
			published = r
			return nil
		})

	out, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideAttacker,
		Identity:  s.attackerIdentity,
	})

	s.Require().NoError(err)
	s.True(out.Applied)
	s.True(out.Resolved)
	s.Equal(models.ContestStatusResolved, out.Contest.Status)
	s.Equal(&models.Outcome{Winner: models.SideAttacker, Reason: models.OutcomeReasonHigherDegreeOfSuccess}, out.Contest.Outcome)
	s.Require().NotNil(published)
	s.Equal(out.Resolution, published)
	s.Equal(5, published.WinnerDegree)
	s.Equal("1d8+1", published.AttackerDamageFormula)
	s.Equal(models.HitLocationBody, *published.HitLocation)
}

func (s *ServiceTestSuite) TestSubmitRoll_FinalizesRecordLeftWithBothResults() {
	contest := s.pendingContest()
	contest.Attacker.Result = &models.RollOutcome{RollTotal: 90, Target: 60, IsSuccess: false, Degree: 4, Textual: "4 DoF"}
	contest.Defender.Result = &models.RollOutcome{RollTotal: 70, Target: 45, IsSuccess: false, Degree: 3, Textual: "3 DoF"}
	s.expectGet(contest)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion)
	s.mockPublisher.EXPECT().Publish(s.ctx, gomock.Any()).Return(nil)

	out, err := s.service.SubmitRoll(s.ctx, &SubmitRollInput{
		ContestID: s.contestID,
		Side:      models.SideDefender,
		Identity:  s.defenderIdentity,
	})

	s.Require().NoError(err)
	s.Equal(ErrAlreadySubmitted, out.Skipped)
	s.True(out.Resolved)
	s.Equal(models.SideDefender, out.Contest.Outcome.Winner)
	s.Equal(models.OutcomeReasonLowerDegreeOfFailure, out.Contest.Outcome.Reason)
}

func (s *ServiceTestSuite) TestDeclineDefense_AttackerWins() {
	contest := s.pendingContest()
	evade := 45
	contest.Attacker.TargetNumber = &evade
	contest.Attacker.Result = &models.RollOutcome{RollTotal: 30, Target: 45, IsSuccess: true, Degree: 3, Textual: "3 DoS"}
	s.expectGet(contest)
	s.expectEntity(s.defenderEntity)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion).Times(2)
	s.mockPublisher.EXPECT().Publish(s.ctx, gomock.Any()).Return(nil)

	out, err := s.service.DeclineDefense(s.ctx, &DeclineDefenseInput{
		ContestID: s.contestID,
		Identity:  s.defenderIdentity,
	})

	s.Require().NoError(err)
	s.True(out.Applied)
	s.True(out.Resolved)

	defender := out.Contest.Defender
	s.True(defender.DeclinedDefense)
	s.Equal(&models.RollOutcome{RollTotal: 100, IsSuccess: false, Degree: 1, Textual: "No defense"}, defender.Result)
	s.Equal(&models.Outcome{Winner: models.SideAttacker, Reason: models.OutcomeReasonDefenderDeclined}, out.Contest.Outcome)
	s.Equal(3, out.Resolution.WinnerDegree)
	s.Equal(s.defenderEntity.ID, out.Resolution.LoserEntityID)
}

func (s *ServiceTestSuite) TestDeclineDefense_PermissionDenied() {
	s.expectGet(s.pendingContest())
	s.expectEntity(s.defenderEntity)

	_, err := s.service.DeclineDefense(s.ctx, &DeclineDefenseInput{
		ContestID: s.contestID,
		Identity:  s.attackerIdentity,
	})
	s.ErrorIs(err, ErrPermissionDenied)
}

func (s *ServiceTestSuite) TestResolution_PublishFailureDoesNotFailSubmission() {
	contest := s.pendingContest()
	contest.Attacker.Result = &models.RollOutcome{RollTotal: 30, Target: 60, IsSuccess: true, Degree: 3, Textual: "3 DoS"}
	s.expectGet(contest)
	s.expectEntity(s.defenderEntity)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion).Times(2)
	s.mockPublisher.EXPECT().Publish(s.ctx, gomock.Any()).Return(errors.New("broker down"))

	out, err := s.service.DeclineDefense(s.ctx, &DeclineDefenseInput{
		ContestID: s.contestID,
		Identity:  s.defenderIdentity,
	})

	s.Require().NoError(err)
	s.True(out.Resolved)
	s.NotNil(out.Resolution)
}

func (s *ServiceTestSuite) TestListenersSeeEveryWrite() {
	var seen []models.ContestStatus
	svc, err := New(&Config{
		ContestRepo:   s.mockContestRepo,
		EntityRepo:    s.mockEntityRepo,
		DiceRoller:    s.mockRoller,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Listeners: []Listener{ListenerFunc(func(_ context.Context, c *models.Contest) {
			seen = append(seen, c.Status)
		})},
	})
	s.Require().NoError(err)

	contest := s.pendingContest()
	contest.Attacker.Result = &models.RollOutcome{RollTotal: 30, Target: 60, IsSuccess: true, Degree: 3, Textual: "3 DoS"}
	s.expectGet(contest)
	s.expectEntity(s.defenderEntity)
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion).Times(2)

	_, err = svc.DeclineDefense(s.ctx, &DeclineDefenseInput{
		ContestID: s.contestID,
		Identity:  s.gmIdentity,
	})

	s.Require().NoError(err)
	s.Equal([]models.ContestStatus{models.ContestStatusPending, models.ContestStatusResolved}, seen)
}

func (s *ServiceTestSuite) TestDiscardContest() {
	s.expectGet(s.pendingContest())
	_, err := s.service.DiscardContest(s.ctx, &DiscardContestInput{
		ContestID: s.contestID,
		Identity:  s.defenderIdentity,
	})
	s.ErrorIs(err, ErrNotDiscardable)

	s.expectGet(s.pendingContest())
	s.mockContestRepo.EXPECT().
		DeleteContest(s.ctx, &contestRepo.DeleteContestInput{ContestID: s.contestID}).
		Return(nil)
	out, err := s.service.DiscardContest(s.ctx, &DiscardContestInput{
		ContestID: s.contestID,
		Identity:  s.attackerIdentity,
	})
	s.Require().NoError(err)
	s.True(out.Discarded)
}

func (s *ServiceTestSuite) TestDiscardContest_ResolvedIsKept() {
	contest := s.pendingContest()
	contest.Status = models.ContestStatusResolved
	s.expectGet(contest)

	_, err := s.service.DiscardContest(s.ctx, &DiscardContestInput{
		ContestID: s.contestID,
		Identity:  s.gmIdentity,
	})
	s.ErrorIs(err, ErrNotDiscardable)
}

func (s *ServiceTestSuite) TestAttachMessage() {
	s.expectGet(s.pendingContest())
	s.mockContestRepo.EXPECT().UpdateContest(s.ctx, gomock.Any()).DoAndReturn(bumpVersion)

	out, err := s.service.AttachMessage(s.ctx, &AttachMessageInput{
		ContestID: s.contestID,
		MessageID: "msg-1",
	})

	s.Require().NoError(err)
	s.Equal("msg-1", out.Contest.MessageID)
	s.Equal(int64(2), out.Contest.Version)
}

func (s *ServiceTestSuite) TestListPendingContests() {
	pending := []*models.Contest{s.pendingContest()}
	s.mockContestRepo.EXPECT().
		ListPendingContests(s.ctx, &contestRepo.ListPendingContestsInput{ChannelID: s.channelID}).
		Return(&contestRepo.ListPendingContestsOutput{Contests: pending}, nil)

	out, err := s.service.ListPendingContests(s.ctx, &ListPendingContestsInput{ChannelID: s.channelID})

	s.Require().NoError(err)
	s.Equal(pending, out.Contests)
}
