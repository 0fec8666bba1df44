package discord

import (
	"context"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/contested/internal/models"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	"github.com/KirkDiggler/contested/internal/services/messaging"
)

const (
	colorPending  = 0xf1c40f
	colorResolved = 0x2ecc71
	colorDraw     = 0x95a5a6
	colorError    = 0xff0000
	colorWarning  = 0xe67e22

	// Discord caps select menus at 25 options
	maxSelectOptions = 25
)

// presenter turns contest records into Discord messages
type presenter struct {
	messaging messaging.Service
	entities  entityRepo.Repository
	logger    logrus.FieldLogger
}

func (p *presenter) render(ctx context.Context, c *models.Contest) (*discordgo.MessageEmbed, []discordgo.MessageComponent, error) {
	summary, err := p.messaging.GetContestSummary(ctx, &messaging.GetContestSummaryInput{
		Contest: c,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to summarize contest: %w", err)
	}

	menus := &choiceMenus{
		attacker: p.choiceOptions(ctx, c, c.Attacker),
		defender: p.choiceOptions(ctx, c, c.Defender),
	}
	return renderContestEmbed(summary), renderContestComponents(c, menus), nil
}

// choiceMenus holds the skills offered to sides that still need a target
type choiceMenus struct {
	attacker []string
	defender []string
}

// choiceOptions lists a side's skills while it has neither a target nor a result
func (p *presenter) choiceOptions(ctx context.Context, c *models.Contest, side *models.Participant) []string {
	if !c.Status.IsPending() || side == nil || side.HasResult() || side.TargetNumber != nil {
		return nil
	}

	entity, err := p.entities.GetEntity(ctx, &entityRepo.GetEntityInput{
		EntityID: side.SideID,
	})
	if err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"contest_id": c.ID,
			"entity_id":  side.SideID,
		}).Warn("failed to load skill options")
		return nil
	}

	options := make([]string, 0, len(entity.Skills))
	for name := range entity.Skills {
		options = append(options, name)
	}
	sort.Strings(options)
	return options
}

func toneColor(tone messaging.MessageTone) int {
	switch tone {
	case messaging.ToneWarning:
		return colorWarning
	case messaging.ToneCelebration:
		return colorResolved
	}
	return colorPending
}

func renderContestEmbed(summary *messaging.GetContestSummaryOutput) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   summary.Attacker.Heading,
			Value:  summary.Attacker.Text,
			Inline: true,
		},
		{
			Name:   summary.Defender.Heading,
			Value:  summary.Defender.Text,
			Inline: true,
		},
	}

	if summary.HitLocation != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Hit Location",
			Value:  summary.HitLocation,
			Inline: false,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:  summary.Title,
		Color:  colorPending,
		Fields: fields,
	}

	if summary.Resolved {
		embed.Color = colorResolved
		embed.Description = summary.OutcomeText
		if summary.Flavor != "" {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: summary.Flavor}
		}
	}
	if summary.Draw {
		embed.Color = colorDraw
	}

	return embed
}

func renderContestComponents(c *models.Contest, menus *choiceMenus) []discordgo.MessageComponent {
	if !c.Status.IsPending() {
		return []discordgo.MessageComponent{}
	}
	if menus == nil {
		menus = &choiceMenus{}
	}

	attackerDone := c.Attacker.HasResult()
	defenderDone := c.Defender.HasResult()

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Attacker Roll",
			Style:    discordgo.PrimaryButton,
			CustomID: customID(ActionAttackerRoll, c.ID),
			Disabled: attackerDone || len(menus.attacker) > 0,
			Emoji:    &discordgo.ComponentEmoji{Name: "🎲"},
		},
		discordgo.Button{
			Label:    "Defender Roll",
			Style:    discordgo.PrimaryButton,
			CustomID: customID(ActionDefenderRoll, c.ID),
			Disabled: defenderDone || len(menus.defender) > 0,
			Emoji:    &discordgo.ComponentEmoji{Name: "🛡️"},
		},
		discordgo.Button{
			Label:    "No Defense",
			Style:    discordgo.SecondaryButton,
			CustomID: customID(ActionDefenderNoDefense, c.ID),
			Disabled: defenderDone,
		},
		discordgo.Button{
			Label:    "Discard",
			Style:    discordgo.DangerButton,
			CustomID: customID(ActionDiscard, c.ID),
		},
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}

	if len(menus.attacker) > 0 {
		components = append(components, skillMenu(customID(ActionAttackerChoice, c.ID), "Roll with...", menus.attacker))
	}
	if len(menus.defender) > 0 {
		components = append(components, skillMenu(customID(ActionDefenderChoice, c.ID), "Defend with...", menus.defender))
	}

	return components
}

func skillMenu(id, placeholder string, names []string) discordgo.ActionsRow {
	if len(names) > maxSelectOptions {
		names = names[:maxSelectOptions]
	}

	options := make([]discordgo.SelectMenuOption, 0, len(names))
	for _, name := range names {
		options = append(options, discordgo.SelectMenuOption{
			Label: name,
			Value: name,
		})
	}

	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    id,
				Placeholder: placeholder,
				Options:     options,
			},
		},
	}
}
