package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/contested/internal/models"
	"github.com/KirkDiggler/contested/internal/services/contest"
	"github.com/KirkDiggler/contested/internal/services/messaging"
)

// ContestCommand handles the /contest command
type ContestCommand struct {
	BaseCommand
	bot *Bot
}

// NewContestCommand creates a new contest command handler
func NewContestCommand(bot *Bot) *ContestCommand {
	modeChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Weapon attack", Value: string(models.ContestModeAttack)},
		{Name: "Targeted spell", Value: string(models.ContestModeSpell)},
		{Name: "Area spell", Value: string(models.ContestModeArea)},
		{Name: "Opposed skill", Value: string(models.ContestModeSkill)},
	}

	return &ContestCommand{
		BaseCommand: BaseCommand{
			Name:        "contest",
			Description: "Opposed rolls between two characters",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "open",
					Description: "Open a contest in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "What kind of contest",
							Required:    true,
							Choices:     modeChoices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "attacker",
							Description: "Attacking character ID",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "defender",
							Description: "Defending character ID",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "label",
							Description: "Attacker skill, weapon or spell",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "target",
							Description: "Attacker target number",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "modifier",
							Description: "Situational modifier to the attacker target",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "damage",
							Description: "Damage formula, e.g. 1d8+1",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "defense",
							Description: "Preset the defender's skill",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pending",
					Description: "List unresolved contests in this channel",
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the contest command
func (c *ContestCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	sub := data.Options[0]

	switch sub.Name {
	case "open":
		return c.handleOpen(ctx, s, i, optionMap(sub.Options))
	case "pending":
		return c.handlePending(ctx, s, i)
	}

	return errors.New("unknown subcommand")
}

func (c *ContestCommand) handleOpen(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	input := createInputFromOptions(i.ChannelID, opts)
	input.Identity = identityFromInteraction(i, c.bot.config.GameMasterRoleID)

	out, err := c.bot.contestService.CreateContest(ctx, input)
	if err != nil {
		msg, msgErr := c.bot.messaging.GetSubmissionMessage(ctx, &messaging.GetSubmissionMessageInput{Err: err})
		if msgErr != nil {
			return RespondWithError(s, i, err.Error())
		}
		return RespondWithError(s, i, msg.Message)
	}

	embed, components, err := c.bot.presenter.render(ctx, out.Contest)
	if err != nil {
		return RespondWithError(s, i, "Failed to render the contest.")
	}

	// Post the contest to the channel; the message is where everyone rolls
	posted, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		c.bot.logger.WithError(err).WithField("contest_id", out.Contest.ID).Error("failed to post contest")
		return RespondWithError(s, i, "Failed to post the contest message.")
	}

	_, err = c.bot.contestService.AttachMessage(ctx, &contest.AttachMessageInput{
		ContestID: out.Contest.ID,
		MessageID: posted.ID,
	})
	if err != nil {
		// The contest still works; its message just won't refresh
		c.bot.logger.WithError(err).WithField("contest_id", out.Contest.ID).Warn("failed to attach message")
	}

	return RespondWithEphemeralMessage(s, i, "Contest posted.")
}

func (c *ContestCommand) handlePending(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.bot.contestService.ListPendingContests(ctx, &contest.ListPendingContestsInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		c.bot.logger.WithError(err).WithField("channel_id", i.ChannelID).Error("failed to list pending contests")
		return RespondWithError(s, i, "Failed to list contests.")
	}

	if len(out.Contests) == 0 {
		return RespondWithEphemeralMessage(s, i, "No contests are waiting in this channel.")
	}

	var lines []string
	for _, pending := range out.Contests {
		summary, err := c.bot.messaging.GetContestSummary(ctx, &messaging.GetContestSummaryInput{Contest: pending})
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s (`%s`)", summary.Title, pending.ID))
	}

	return RespondWithEphemeralMessage(s, i, strings.Join(lines, "\n"))
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		out[opt.Name] = opt
	}
	return out
}

func createInputFromOptions(channelID string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) *contest.CreateContestInput {
	str := func(name string) string {
		if opt, ok := opts[name]; ok {
			return opt.StringValue()
		}
		return ""
	}

	input := &contest.CreateContestInput{
		ChannelID: channelID,
		Mode:      models.ContestMode(str("mode")),
		Attacker: contest.ParticipantSpec{
			EntityID:      str("attacker"),
			Label:         str("label"),
			DamageFormula: str("damage"),
		},
		Defender: contest.ParticipantSpec{
			EntityID: str("defender"),
			Label:    str("defense"),
		},
	}

	if opt, ok := opts["target"]; ok {
		target := int(opt.IntValue())
		input.Attacker.TargetNumber = &target
	}
	if opt, ok := opts["modifier"]; ok {
		input.Attacker.Modifier = int(opt.IntValue())
	}

	return input
}
