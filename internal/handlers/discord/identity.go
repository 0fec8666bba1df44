package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/contested/internal/models"
)

// identityFromInteraction resolves who clicked. Members holding gmRoleID are
// game masters.
func identityFromInteraction(i *discordgo.InteractionCreate, gmRoleID string) *models.Identity {
	var (
		user *discordgo.User
		name string
		isGM bool
	)

	if i.Member != nil {
		user = i.Member.User
		name = i.Member.Nick
		if gmRoleID != "" {
			for _, role := range i.Member.Roles {
				if role == gmRoleID {
					isGM = true
					break
				}
			}
		}
	} else {
		user = i.User
	}

	if user == nil {
		return nil
	}
	if name == "" {
		name = user.Username
	}

	return &models.Identity{
		UserID:       user.ID,
		Name:         name,
		IsGameMaster: isGM,
	}
}
