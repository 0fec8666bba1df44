package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/contested/internal/models"
	"github.com/KirkDiggler/contested/internal/services/contest"
	"github.com/KirkDiggler/contested/internal/services/messaging"
)

func printContest(cmd *cobra.Command, app *App, c *models.Contest) error {
	summary, err := app.Messaging.GetContestSummary(cmd.Context(), &messaging.GetContestSummaryInput{Contest: c})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, color.New(color.Bold).Sprint(summary.Title))
	printSide(w, summary.Attacker)
	printSide(w, summary.Defender)
	if summary.HitLocation != "" {
		fmt.Fprintf(w, "  Hit location: %s\n", summary.HitLocation)
	}

	switch {
	case summary.Draw:
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint(summary.OutcomeText))
	case summary.Resolved:
		fmt.Fprintln(w, color.New(color.FgGreen, color.Bold).Sprint(summary.OutcomeText))
	default:
		fmt.Fprintln(w, color.New(color.Faint).Sprint("  pending"))
	}
	return nil
}

func printSide(w io.Writer, line messaging.SideLine) {
	text := line.Text
	if !line.Rolled {
		text = color.New(color.Faint).Sprint(text)
	}
	fmt.Fprintf(w, "  %s: %s\n", line.Heading, text)
}

func toneColor(tone messaging.MessageTone) *color.Color {
	switch tone {
	case messaging.ToneWarning:
		return color.New(color.FgYellow)
	case messaging.ToneCelebration:
		return color.New(color.FgGreen, color.Bold)
	}
	return color.New(color.FgCyan)
}

// reportSubmission prints the reply and the contest after a roll or decline;
// absorbed no-ops are reported but do not fail the command
func reportSubmission(cmd *cobra.Command, app *App, side models.Side, result *contest.SubmissionResult) error {
	msg, err := app.Messaging.GetSubmissionMessage(cmd.Context(), &messaging.GetSubmissionMessageInput{
		Err:      result.Skipped,
		Side:     side,
		Resolved: result.Resolved,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), toneColor(msg.Tone).Sprint(msg.Message))

	return printContest(cmd, app, result.Contest)
}

// reportRejection turns a rejected action into a command error carrying the
// user-facing reason
func reportRejection(cmd *cobra.Command, app *App, side models.Side, rejection error) error {
	msg, err := app.Messaging.GetSubmissionMessage(cmd.Context(), &messaging.GetSubmissionMessageInput{
		Err:  rejection,
		Side: side,
	})
	if err != nil {
		return rejection
	}
	return fmt.Errorf("%s: %w", msg.Message, rejection)
}
