package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/contested/internal/logging"
	"github.com/KirkDiggler/contested/internal/models"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	"github.com/KirkDiggler/contested/internal/services/contest"
	"github.com/KirkDiggler/contested/internal/services/messaging"
)

// Bot represents the Discord bot instance
type Bot struct {
	session        *discordgo.Session
	commands       map[string]CommandHandler
	commandIDs     map[string]string // Maps command name to command ID
	contestService contest.Service
	messaging      messaging.Service
	presenter      *presenter
	logger         logrus.FieldLogger
	config         *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the Discord session, see NewSession
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// GameMasterRoleID grants game master authority to members holding it
	GameMasterRoleID string

	ContestService   contest.Service
	MessagingService messaging.Service
	EntityRepo       entityRepo.Repository

	Logger logrus.FieldLogger
}

// NewSession creates a Discord session for a bot token
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	return session, nil
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}
	if cfg.ContestService == nil {
		return nil, errors.New("contest service cannot be nil")
	}
	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}
	if cfg.EntityRepo == nil {
		return nil, errors.New("entity repository cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	bot := &Bot{
		session:        cfg.Session,
		commands:       make(map[string]CommandHandler),
		commandIDs:     make(map[string]string),
		contestService: cfg.ContestService,
		messaging:      cfg.MessagingService,
		presenter: &presenter{
			messaging: cfg.MessagingService,
			entities:  cfg.EntityRepo,
			logger:    logger,
		},
		logger: logger,
		config: cfg,
	}

	// Register the interaction handler
	cfg.Session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(NewContestCommand(b)); err != nil {
		return fmt.Errorf("failed to register contest command: %w", err)
	}

	b.logger.Info("bot is running")
	return nil
}

// Stop removes registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		log := b.logger.WithFields(logrus.Fields{"command": cmdName, "command_id": cmdID})
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.WithError(err).Warn("failed to delete command")
		} else {
			log.Info("deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	log := b.logger.WithFields(logrus.Fields{
		"command":  cmd.GetName(),
		"guild_id": b.config.GuildID,
	})

	// An empty guild ID registers globally
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.WithField("command_id", createdCmd.ID).Info("registered command")

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.WithError(err).WithField("command", name).Error("failed to handle command")
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.WithError(err).WithField("custom_id", i.MessageComponentData().CustomID).
				Error("failed to handle component interaction")
		}
	}
}

// componentRequest is a parsed click on a contest message
type componentRequest struct {
	action    string
	contestID string
	side      models.Side
	choice    string
}

// parseComponent maps a custom ID and menu values onto a contest action.
// A non-empty rejection is the reply when the click cannot be used.
func parseComponent(data discordgo.MessageComponentInteractionData) (*componentRequest, string) {
	action, contestID, ok := parseCustomID(data.CustomID)
	if !ok {
		return nil, "That button is not recognized."
	}

	req := &componentRequest{action: action, contestID: contestID}
	switch action {
	case ActionAttackerRoll:
		req.side = models.SideAttacker
	case ActionDefenderRoll, ActionDefenderNoDefense:
		req.side = models.SideDefender
	case ActionAttackerChoice, ActionDefenderChoice:
		req.side = models.SideDefender
		if action == ActionAttackerChoice {
			req.side = models.SideAttacker
		}
		if len(data.Values) == 0 || data.Values[0] == "" {
			return nil, "Pick a skill from the menu first."
		}
		req.choice = data.Values[0]
	case ActionDiscard:
	default:
		return nil, fmt.Sprintf("Unknown action: %s", action)
	}

	return req, ""
}

// handleComponentInteraction maps buttons and skill menus onto contest actions.
// The click is acknowledged before the service runs; rejections follow up
// privately.
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	req, rejection := parseComponent(i.MessageComponentData())
	if rejection != "" {
		return RespondWithEphemeralMessage(s, i, rejection)
	}

	identity := identityFromInteraction(i, b.config.GameMasterRoleID)
	if identity == nil {
		return RespondWithEphemeralMessage(s, i, "Could not tell who clicked that.")
	}

	if err := AcknowledgeComponent(s, i); err != nil {
		return fmt.Errorf("failed to acknowledge click: %w", err)
	}

	ctx := context.Background()

	switch req.action {
	case ActionDiscard:
		return b.handleDiscard(ctx, s, i, req.contestID, identity)

	case ActionDefenderNoDefense:
		out, err := b.contestService.DeclineDefense(ctx, &contest.DeclineDefenseInput{
			ContestID: req.contestID,
			Identity:  identity,
		})
		var result *contest.SubmissionResult
		if out != nil {
			result = &out.SubmissionResult
		}
		return b.followUpSubmission(ctx, s, i, req.side, result, err)
	}

	out, err := b.contestService.SubmitRoll(ctx, &contest.SubmitRollInput{
		ContestID: req.contestID,
		Side:      req.side,
		Identity:  identity,
		Choice:    req.choice,
	})
	return b.followUpSubmission(ctx, s, i, req.side, submissionResult(out), err)
}

func submissionResult(out *contest.SubmitRollOutput) *contest.SubmissionResult {
	if out == nil {
		return nil
	}
	return &out.SubmissionResult
}

// followUpSubmission explains rejections privately. Accepted rolls need no
// reply since the contest message is re-rendered.
func (b *Bot) followUpSubmission(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, side models.Side, result *contest.SubmissionResult, err error) error {
	reason := err
	if reason == nil && result != nil {
		reason = result.Skipped
	}
	if reason == nil {
		return nil
	}

	if err != nil {
		b.logger.WithError(err).WithField("side", side).Debug("submission not accepted")
	}

	msg, msgErr := b.messaging.GetSubmissionMessage(ctx, &messaging.GetSubmissionMessageInput{
		Err:      reason,
		Side:     side,
		Resolved: result != nil && result.Resolved,
	})
	if msgErr != nil {
		return FollowupEphemeralMessage(s, i, reason.Error(), colorError)
	}
	return FollowupEphemeralMessage(s, i, msg.Message, toneColor(msg.Tone))
}

func (b *Bot) handleDiscard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, contestID string, identity *models.Identity) error {
	_, err := b.contestService.DiscardContest(ctx, &contest.DiscardContestInput{
		ContestID: contestID,
		Identity:  identity,
	})
	if err != nil {
		return b.followUpSubmission(ctx, s, i, "", nil, err)
	}

	embeds := []*discordgo.MessageEmbed{
		{
			Title:       "Contest discarded",
			Description: fmt.Sprintf("Discarded by %s.", identity.Name),
			Color:       colorDraw,
		},
	}
	components := []discordgo.MessageComponent{}
	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &embeds,
		Components: &components,
	})
	return err
}
