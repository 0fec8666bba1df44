package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/contested/internal/models"
	"github.com/KirkDiggler/contested/internal/services/contest"
)

func createCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a contest",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")
			attacker, _ := cmd.Flags().GetString("attacker")
			defender, _ := cmd.Flags().GetString("defender")
			label, _ := cmd.Flags().GetString("label")
			modifier, _ := cmd.Flags().GetInt("modifier")
			damage, _ := cmd.Flags().GetString("damage")
			defense, _ := cmd.Flags().GetString("defense")

			input := &contest.CreateContestInput{
				ChannelID: channelFromFlags(cmd),
				Mode:      models.ContestMode(mode),
				Attacker: contest.ParticipantSpec{
					EntityID:      attacker,
					Label:         label,
					Modifier:      modifier,
					DamageFormula: damage,
				},
				Defender: contest.ParticipantSpec{
					EntityID: defender,
					Label:    defense,
				},
				Identity: identityFromFlags(cmd),
			}
			if cmd.Flags().Changed("target") {
				target, _ := cmd.Flags().GetInt("target")
				input.Attacker.TargetNumber = &target
			}

			out, err := app.Contests.CreateContest(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to create contest: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Opened contest %s\n", color.New(color.FgGreen).Sprint("✓"), out.Contest.ID)
			return printContest(cmd, app, out.Contest)
		},
	}

	cmd.Flags().String("mode", string(models.ContestModeAttack), "attack, spell, area or skill")
	cmd.Flags().String("attacker", "", "attacking entity ID")
	cmd.Flags().String("defender", "", "defending entity ID")
	cmd.Flags().String("label", "", "attacker skill; sets the target when the entity has it")
	cmd.Flags().Int("target", 0, "attacker target number")
	cmd.Flags().Int("modifier", 0, "situational modifier to the attacker target")
	cmd.Flags().String("damage", "", "attacker damage formula")
	cmd.Flags().String("defense", "", "preset defender skill")
	_ = cmd.MarkFlagRequired("attacker")
	_ = cmd.MarkFlagRequired("defender")

	return cmd
}

func rollCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "roll [attacker|defender] [contest-id]",
		Short:     "Roll one side of a contest",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(models.SideAttacker), string(models.SideDefender)},
		RunE: func(cmd *cobra.Command, args []string) error {
			side := models.Side(args[0])
			choice, _ := cmd.Flags().GetString("choice")
			modifier, _ := cmd.Flags().GetInt("modifier")
			location, _ := cmd.Flags().GetString("location")

			input := &contest.SubmitRollInput{
				ContestID: args[1],
				Side:      side,
				Identity:  identityFromFlags(cmd),
				Choice:    choice,
				Modifier:  modifier,
			}
			if location != "" {
				loc := models.HitLocation(location)
				input.PrecisionLocation = &loc
			}

			out, err := app.Contests.SubmitRoll(cmd.Context(), input)
			if err != nil {
				return reportRejection(cmd, app, side, err)
			}
			return reportSubmission(cmd, app, side, &out.SubmissionResult)
		},
	}

	cmd.Flags().String("choice", "", "skill to roll against when none is set")
	cmd.Flags().Int("modifier", 0, "situational modifier added to the target")
	cmd.Flags().String("location", "", "precision strike location, e.g. head")

	return cmd
}

func declineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decline [contest-id]",
		Short: "Decline to defend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Contests.DeclineDefense(cmd.Context(), &contest.DeclineDefenseInput{
				ContestID: args[0],
				Identity:  identityFromFlags(cmd),
			})
			if err != nil {
				return reportRejection(cmd, app, models.SideDefender, err)
			}
			return reportSubmission(cmd, app, models.SideDefender, &out.SubmissionResult)
		},
	}
}

func showCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [contest-id]",
		Short: "Show a contest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Contests.GetContest(cmd.Context(), &contest.GetContestInput{ContestID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to get contest: %w", err)
			}
			return printContest(cmd, app, out.Contest)
		},
	}
}

func listCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending contests in the channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Contests.ListPendingContests(cmd.Context(), &contest.ListPendingContestsInput{
				ChannelID: channelFromFlags(cmd),
			})
			if err != nil {
				return fmt.Errorf("failed to list contests: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(out.Contests) == 0 {
				fmt.Fprintln(w, "No pending contests.")
				return nil
			}
			for _, c := range out.Contests {
				fmt.Fprintf(w, "%s  %s  %s vs %s\n", c.ID, c.Mode, c.Attacker.DisplayName, c.Defender.DisplayName)
			}
			return nil
		},
	}
}

func discardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "discard [contest-id]",
		Short: "Discard a pending contest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.Contests.DiscardContest(cmd.Context(), &contest.DiscardContestInput{
				ContestID: args[0],
				Identity:  identityFromFlags(cmd),
			})
			if err != nil {
				return reportRejection(cmd, app, "", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Discarded %s\n", color.New(color.FgGreen).Sprint("✓"), args[0])
			return nil
		},
	}
}
