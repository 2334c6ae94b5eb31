package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

func init() {
	moodCmd := &cobra.Command{Use: "mood", Short: "Mood tracking"}

	// log
	var notes string
	logCmd := &cobra.Command{
		Use:   "log MOOD",
		Short: "Record today's mood (great, good, okay, bad, awful)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMoodLog(cmd.Context(), app.ws, args[0], notes, cmd.OutOrStdout())
		},
	}
	logCmd.Flags().StringVarP(&notes, "notes", "n", "", "Optional notes")
	moodCmd.AddCommand(logCmd)

	moodCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List mood history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMoodList(app.ws, cmd.OutOrStdout())
		},
	})

	moodCmd.AddCommand(&cobra.Command{
		Use:   "today",
		Short: "Show today's mood",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMoodToday(app.ws, cmd.OutOrStdout())
		},
	})

	moodCmd.AddCommand(&cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete a mood entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMoodDelete(cmd.Context(), app.ws, args[0], cmd.OutOrStdout())
		},
	})

	rootCmd.AddCommand(moodCmd)
}

func runMoodLog(ctx context.Context, ws *services.Workspace, mood, notes string, out io.Writer) error {
	if _, err := requireUser(ws); err != nil {
		return err
	}
	m, err := models.ParseMood(mood)
	if err != nil {
		return err
	}
	entry, err := ws.Moods.AddOrUpdateToday(ctx, m, notes)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Logged %s for %s (%s)\n", entry.Mood, entry.Date, entry.ID)
	return nil
}

func runMoodList(ws *services.Workspace, out io.Writer) error {
	if _, err := requireUser(ws); err != nil {
		return err
	}
	entries := ws.Moods.List()
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No moods logged yet.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tMOOD\tNOTES\tID")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Date, e.Mood, e.Notes, e.ID)
	}
	return tw.Flush()
}

func runMoodToday(ws *services.Workspace, out io.Writer) error {
	if _, err := requireUser(ws); err != nil {
		return err
	}
	e, ok := ws.Moods.TodayEntry()
	if !ok {
		_, _ = fmt.Fprintln(out, "Nothing logged today.")
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s: %s", e.Date, e.Mood)
	if e.Notes != "" {
		_, _ = fmt.Fprintf(out, " (%s)", e.Notes)
	}
	_, _ = fmt.Fprintln(out)
	return nil
}

func runMoodDelete(ctx context.Context, ws *services.Workspace, id string, out io.Writer) error {
	if _, err := requireUser(ws); err != nil {
		return err
	}
	if err := ws.Moods.DeleteByID(ctx, id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Deleted %s\n", id)
	return nil
}
