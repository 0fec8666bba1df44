package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/contested/internal/models"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
)

func entityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entity",
		Short: "Manage characters and monsters",
	}

	add := &cobra.Command{
		Use:   "add [id]",
		Short: "Add or replace an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			owners, _ := cmd.Flags().GetStringSlice("owner")
			skills, _ := cmd.Flags().GetStringToInt("skill")
			lucky, _ := cmd.Flags().GetIntSlice("lucky")
			unlucky, _ := cmd.Flags().GetIntSlice("unlucky")

			if name == "" {
				name = args[0]
			}

			entity := &models.Entity{
				ID:       args[0],
				Name:     name,
				OwnerIDs: owners,
				Skills:   skills,
				Lucky:    lucky,
				Unlucky:  unlucky,
			}

			err := app.Entities.SaveEntity(cmd.Context(), &entityRepo.SaveEntityInput{Entity: entity})
			if err != nil {
				return fmt.Errorf("failed to save entity: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s (%s)\n", color.New(color.FgGreen).Sprint("✓"), entity.Name, entity.ID)
			return nil
		},
	}
	add.Flags().String("name", "", "display name")
	add.Flags().StringSlice("owner", nil, "user IDs allowed to roll for the entity")
	add.Flags().StringToInt("skill", nil, "skill target numbers, e.g. --skill Sword=60")
	add.Flags().IntSlice("lucky", nil, "lucky numbers")
	add.Flags().IntSlice("unlucky", nil, "unlucky numbers")

	show := &cobra.Command{
		Use:   "show [id]",
		Short: "Show an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := app.Entities.GetEntity(cmd.Context(), &entityRepo.GetEntityInput{EntityID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to get entity: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", color.New(color.Bold).Sprint(entity.Name), entity.ID)
			if len(entity.OwnerIDs) > 0 {
				fmt.Fprintf(out, "  Owners: %v\n", entity.OwnerIDs)
			}

			names := make([]string, 0, len(entity.Skills))
			for name := range entity.Skills {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s %d\n", name, entity.Skills[name])
			}

			if lucky := entity.LuckyNumbers(); len(lucky) > 0 {
				fmt.Fprintf(out, "  Lucky: %v\n", lucky)
			}
			if unlucky := entity.UnluckyNumbers(); len(unlucky) > 0 {
				fmt.Fprintf(out, "  Unlucky: %v\n", unlucky)
			}
			return nil
		},
	}

	cmd.AddCommand(add, show)
	return cmd
}
