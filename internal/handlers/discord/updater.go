package discord

import (
	"context"
	"errors"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/contested/internal/logging"
	"github.com/KirkDiggler/contested/internal/models"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	"github.com/KirkDiggler/contested/internal/services/messaging"
)

// MessageUpdater re-renders a contest's channel message after every write.
// ContestUpdated only queues the record; Run performs the edits, newest
// version first seen per contest, so callers never wait on Discord.
type MessageUpdater struct {
	presenter *presenter
	logger    logrus.FieldLogger
	edit      func(*discordgo.MessageEdit) error

	mu      sync.Mutex
	queued  map[string]*models.Contest
	order   []string
	applied map[string]int64
	wake    chan struct{}
}

// UpdaterConfig holds the dependencies of a MessageUpdater
type UpdaterConfig struct {
	Session          *discordgo.Session
	MessagingService messaging.Service
	EntityRepo       entityRepo.Repository
	Logger           logrus.FieldLogger
}

// NewMessageUpdater creates a MessageUpdater
func NewMessageUpdater(cfg *UpdaterConfig) (*MessageUpdater, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
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

	session := cfg.Session
	return &MessageUpdater{
		edit: func(m *discordgo.MessageEdit) error {
			_, err := session.ChannelMessageEditComplex(m)
			return err
		},
		queued:  make(map[string]*models.Contest),
		applied: make(map[string]int64),
		wake:    make(chan struct{}, 1),
		presenter: &presenter{
			messaging: cfg.MessagingService,
			entities:  cfg.EntityRepo,
			logger:    logger,
		},
		logger: logger,
	}, nil
}

// ContestUpdated queues the contest message for an edit when one is attached
func (u *MessageUpdater) ContestUpdated(_ context.Context, c *models.Contest) {
	if c == nil || c.MessageID == "" || c.ChannelID == "" {
		return
	}

	u.mu.Lock()
	if c.Version <= u.applied[c.ID] {
		u.mu.Unlock()
		return
	}
	prev, ok := u.queued[c.ID]
	if !ok {
		u.order = append(u.order, c.ID)
	}
	if !ok || c.Version > prev.Version {
		u.queued[c.ID] = c
	}
	u.mu.Unlock()

	select {
	case u.wake <- struct{}{}:
	default:
	}
}

// Run applies queued edits until ctx is cancelled
func (u *MessageUpdater) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-u.wake:
		}

		for c := u.next(); c != nil; c = u.next() {
			u.apply(ctx, c)
		}
	}
}

func (u *MessageUpdater) next() *models.Contest {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.order) == 0 {
		return nil
	}
	id := u.order[0]
	u.order = u.order[1:]

	c := u.queued[id]
	delete(u.queued, id)
	u.applied[id] = c.Version
	return c
}

func (u *MessageUpdater) apply(ctx context.Context, c *models.Contest) {
	log := u.logger.WithFields(logrus.Fields{
		"contest_id": c.ID,
		"message_id": c.MessageID,
		"version":    c.Version,
	})

	embed, components, err := u.presenter.render(ctx, c)
	if err != nil {
		log.WithError(err).Error("failed to render contest")
		return
	}

	embeds := []*discordgo.MessageEmbed{embed}
	err = u.edit(&discordgo.MessageEdit{
		Channel:    c.ChannelID,
		ID:         c.MessageID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		log.WithError(err).Error("failed to update contest message")
	}
}
