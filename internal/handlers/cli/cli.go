// Package cli exposes the contest actions as contestctl subcommands for a
// table sharing one terminal.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/contested/internal/models"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	"github.com/KirkDiggler/contested/internal/services/contest"
	"github.com/KirkDiggler/contested/internal/services/messaging"
)

// App holds the services the commands act on
type App struct {
	Contests  contest.Service
	Entities  entityRepo.Repository
	Messaging messaging.Service
}

// NewRootCmd builds the contestctl command tree
func NewRootCmd(app *App) (*cobra.Command, error) {
	if app == nil || app.Contests == nil || app.Entities == nil || app.Messaging == nil {
		return nil, errors.New("app and its services cannot be nil")
	}

	root := &cobra.Command{
		Use:           "contestctl",
		Short:         "Run opposed rolls at the table",
		Long:          "contestctl opens contests between characters, rolls each side and reports the outcome.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("user", "table", "user ID acting for this command")
	root.PersistentFlags().Bool("gm", false, "act with game master authority")
	root.PersistentFlags().String("channel", "local", "channel grouping contests")

	root.AddCommand(entityCmd(app))
	root.AddCommand(createCmd(app))
	root.AddCommand(rollCmd(app))
	root.AddCommand(declineCmd(app))
	root.AddCommand(showCmd(app))
	root.AddCommand(listCmd(app))
	root.AddCommand(discardCmd(app))

	return root, nil
}

func identityFromFlags(cmd *cobra.Command) *models.Identity {
	user, _ := cmd.Flags().GetString("user")
	gm, _ := cmd.Flags().GetBool("gm")
	return &models.Identity{
		UserID:       user,
		Name:         user,
		IsGameMaster: gm,
	}
}

func channelFromFlags(cmd *cobra.Command) string {
	channel, _ := cmd.Flags().GetString("channel")
	return channel
}
