package discord

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/contested/internal/logging"
	"github.com/KirkDiggler/contested/internal/models"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	mockEntity "github.com/KirkDiggler/contested/internal/repositories/entity/mocks"
	"github.com/KirkDiggler/contested/internal/services/messaging"
)

func TestParseCustomID(t *testing.T) {
	action, id, ok := parseCustomID(customID(ActionDefenderNoDefense, "abc-123"))
	assert.True(t, ok)
	assert.Equal(t, ActionDefenderNoDefense, action)
	assert.Equal(t, "abc-123", id)

	_, _, ok = parseCustomID("roll_dice")
	assert.False(t, ok)

	_, _, ok = parseCustomID("attacker_roll:")
	assert.False(t, ok)
}

func TestIdentityFromInteraction(t *testing.T) {
	member := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{
			User:  &discordgo.User{ID: "u1", Username: "kara"},
			Nick:  "Kara the Bold",
			Roles: []string{"r-player", "r-gm"},
		},
	}}

	identity := identityFromInteraction(member, "r-gm")
	require.NotNil(t, identity)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, "Kara the Bold", identity.Name)
	assert.True(t, identity.IsGameMaster)

	identity = identityFromInteraction(member, "")
	assert.False(t, identity.IsGameMaster)

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "u2", Username: "solo"},
	}}
	identity = identityFromInteraction(dm, "r-gm")
	assert.Equal(t, "solo", identity.Name)
	assert.False(t, identity.IsGameMaster)

	assert.Nil(t, identityFromInteraction(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}, ""))
}

func TestRenderContestComponents(t *testing.T) {
	c := &models.Contest{
		ID:       "c1",
		Status:   models.ContestStatusPending,
		Attacker: &models.Participant{Result: &models.RollOutcome{RollTotal: 12}},
		Defender: &models.Participant{},
	}

	components := renderContestComponents(c, &choiceMenus{defender: []string{"Evade", "Parry"}})
	require.Len(t, components, 2)

	buttons := components[0].(discordgo.ActionsRow).Components
	require.Len(t, buttons, 4)
	attackerButton := buttons[0].(discordgo.Button)
	assert.Equal(t, "attacker_roll:c1", attackerButton.CustomID)
	assert.True(t, attackerButton.Disabled)
	assert.True(t, buttons[1].(discordgo.Button).Disabled, "defender rolls from the menu")
	assert.False(t, buttons[2].(discordgo.Button).Disabled)

	menu := components[1].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Equal(t, "defender_choice:c1", menu.CustomID)
	assert.Len(t, menu.Options, 2)

	c.Status = models.ContestStatusResolved
	assert.Empty(t, renderContestComponents(c, nil))
}

func TestRenderContestComponents_AttackerWithoutTarget(t *testing.T) {
	target := 40
	c := &models.Contest{
		ID:       "c2",
		Status:   models.ContestStatusPending,
		Attacker: &models.Participant{Label: "Bow"},
		Defender: &models.Participant{TargetNumber: &target},
	}

	components := renderContestComponents(c, &choiceMenus{attacker: []string{"Axe", "Sword"}})
	require.Len(t, components, 2)

	buttons := components[0].(discordgo.ActionsRow).Components
	assert.True(t, buttons[0].(discordgo.Button).Disabled, "attacker rolls from the menu")
	assert.False(t, buttons[1].(discordgo.Button).Disabled)

	menu := components[1].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Equal(t, "attacker_choice:c2", menu.CustomID)
	require.Len(t, menu.Options, 2)
	assert.Equal(t, "Axe", menu.Options[0].Value)
}

func TestPresenterOffersAttackerSkills(t *testing.T) {
	ctrl := gomock.NewController(t)
	entities := mockEntity.NewMockRepository(ctrl)
	msgs, err := messaging.NewService(&messaging.ServiceConfig{Seed: 1})
	require.NoError(t, err)
	p := &presenter{messaging: msgs, entities: entities, logger: logging.Discard()}

	entities.EXPECT().
		GetEntity(gomock.Any(), &entityRepo.GetEntityInput{EntityID: "pc-kara"}).
		Return(&models.Entity{ID: "pc-kara", Skills: map[string]int{"Sword": 60, "Axe": 45}}, nil)

	target := 40
	c := &models.Contest{
		ID:       "c3",
		Mode:     models.ContestModeAttack,
		Status:   models.ContestStatusPending,
		Attacker: &models.Participant{SideID: "pc-kara", DisplayName: "Kara", Label: "Bow"},
		Defender: &models.Participant{SideID: "npc-orc", DisplayName: "Orc", TargetNumber: &target},
	}

	_, components, err := p.render(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, components, 2)

	menu := components[1].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Equal(t, "attacker_choice:c3", menu.CustomID)
	assert.Equal(t, []string{"Axe", "Sword"}, []string{menu.Options[0].Value, menu.Options[1].Value})
}

func TestParseComponent(t *testing.T) {
	req, rejection := parseComponent(discordgo.MessageComponentInteractionData{
		CustomID: "attacker_choice:c1",
		Values:   []string{"Sword"},
	})
	require.Empty(t, rejection)
	assert.Equal(t, ActionAttackerChoice, req.action)
	assert.Equal(t, "c1", req.contestID)
	assert.Equal(t, models.SideAttacker, req.side)
	assert.Equal(t, "Sword", req.choice)

	req, rejection = parseComponent(discordgo.MessageComponentInteractionData{
		CustomID: "defender_choice:c1",
		Values:   []string{"Parry"},
	})
	require.Empty(t, rejection)
	assert.Equal(t, models.SideDefender, req.side)
	assert.Equal(t, "Parry", req.choice)

	req, rejection = parseComponent(discordgo.MessageComponentInteractionData{CustomID: "defender_no_defense:c1"})
	require.Empty(t, rejection)
	assert.Equal(t, models.SideDefender, req.side)

	_, rejection = parseComponent(discordgo.MessageComponentInteractionData{CustomID: "attacker_choice:c1"})
	assert.Equal(t, "Pick a skill from the menu first.", rejection)

	_, rejection = parseComponent(discordgo.MessageComponentInteractionData{CustomID: "fireball:c1"})
	assert.Equal(t, "Unknown action: fireball", rejection)

	_, rejection = parseComponent(discordgo.MessageComponentInteractionData{CustomID: "roll_dice"})
	assert.Equal(t, "That button is not recognized.", rejection)
}

func TestMessageUpdater_QueuesWithoutWaitingOnDiscord(t *testing.T) {
	ctrl := gomock.NewController(t)
	msgs, err := messaging.NewService(&messaging.ServiceConfig{Seed: 1})
	require.NoError(t, err)

	updater, err := NewMessageUpdater(&UpdaterConfig{
		Session:          &discordgo.Session{},
		MessagingService: msgs,
		EntityRepo:       mockEntity.NewMockRepository(ctrl),
	})
	require.NoError(t, err)

	release := make(chan struct{})
	edits := make(chan *discordgo.MessageEdit, 4)
	updater.edit = func(m *discordgo.MessageEdit) error {
		<-release
		edits <- m
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go updater.Run(ctx)

	queued := make(chan struct{})
	go func() {
		updater.ContestUpdated(ctx, contestAtVersion(2, false))
		updater.ContestUpdated(ctx, contestAtVersion(3, true))
		close(queued)
	}()

	select {
	case <-queued:
	case <-time.After(time.Second):
		t.Fatal("ContestUpdated waited on a message edit")
	}

	close(release)

	var last *discordgo.MessageEdit
	for last == nil || len(*last.Components) != 0 {
		select {
		case last = <-edits:
			assert.Equal(t, "m1", last.ID)
			assert.Equal(t, "chan", last.Channel)
		case <-time.After(time.Second):
			t.Fatal("resolved contest was never rendered")
		}
	}

	// An older version arriving late is dropped
	updater.ContestUpdated(ctx, contestAtVersion(2, false))
	select {
	case m := <-edits:
		t.Fatalf("stale version edited message %s", m.ID)
	case <-time.After(100 * time.Millisecond):
	}
}

func contestAtVersion(version int64, resolved bool) *models.Contest {
	attackTarget, defendTarget := 60, 40
	c := &models.Contest{
		ID:        "c1",
		ChannelID: "chan",
		MessageID: "m1",
		Mode:      models.ContestModeSkill,
		Status:    models.ContestStatusPending,
		Version:   version,
		Attacker:  &models.Participant{SideID: "pc-kara", DisplayName: "Kara", Label: "Climb", TargetNumber: &attackTarget},
		Defender:  &models.Participant{SideID: "npc-orc", DisplayName: "Orc", Label: "Climb", TargetNumber: &defendTarget},
	}
	if resolved {
		c.Status = models.ContestStatusResolved
		c.Attacker.Result = &models.RollOutcome{RollTotal: 55, Target: 60, IsSuccess: true, Degree: 5, Textual: "5 DoS"}
		c.Defender.Result = &models.RollOutcome{RollTotal: 38, Target: 40, IsSuccess: true, Degree: 3, Textual: "3 DoS"}
		c.Outcome = &models.Outcome{Winner: models.SideAttacker, Reason: models.OutcomeReasonHigherDegreeOfSuccess}
	}
	return c
}

func TestRenderContestEmbed(t *testing.T) {
	embed := renderContestEmbed(&messaging.GetContestSummaryOutput{
		Title:       "Attack: Kara vs Orc",
		Attacker:    messaging.SideLine{Heading: "Attacker: Kara", Text: "Sword 60: rolled 55, 5 DoS"},
		Defender:    messaging.SideLine{Heading: "Defender: Orc", Text: "Parry 40: rolled 38, 3 DoS"},
		HitLocation: "Body",
		OutcomeText: "Kara wins",
		Resolved:    true,
		Flavor:      "The dice have spoken.",
	})

	assert.Equal(t, "Attack: Kara vs Orc", embed.Title)
	assert.Equal(t, "Kara wins", embed.Description)
	assert.Equal(t, colorResolved, embed.Color)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "Body", embed.Fields[2].Value)
	assert.Equal(t, "The dice have spoken.", embed.Footer.Text)
}

func TestCreateInputFromOptions(t *testing.T) {
	opts := optionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "mode", Type: discordgo.ApplicationCommandOptionString, Value: "attack"},
		{Name: "attacker", Type: discordgo.ApplicationCommandOptionString, Value: "pc-kara"},
		{Name: "defender", Type: discordgo.ApplicationCommandOptionString, Value: "npc-orc"},
		{Name: "target", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(60)},
		{Name: "modifier", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(-10)},
		{Name: "defense", Type: discordgo.ApplicationCommandOptionString, Value: "Parry"},
	})

	input := createInputFromOptions("chan", opts)
	assert.Equal(t, "chan", input.ChannelID)
	assert.Equal(t, models.ContestModeAttack, input.Mode)
	assert.Equal(t, "pc-kara", input.Attacker.EntityID)
	require.NotNil(t, input.Attacker.TargetNumber)
	assert.Equal(t, 60, *input.Attacker.TargetNumber)
	assert.Equal(t, -10, input.Attacker.Modifier)
	assert.Equal(t, "Parry", input.Defender.Label)
}
