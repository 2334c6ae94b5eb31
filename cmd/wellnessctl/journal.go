package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

func init() {
	journalCmd := &cobra.Command{Use: "journal", Short: "Journal entries"}

	// add
	var title, content, template string
	var tags []string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Write a journal entry dated today",
		RunE: func(cmd *cobra.Command, args []string) error {
			if template != "" {
				var err error
				if title, content, err = fromTemplate(template, title, content, time.Now()); err != nil {
					return err
				}
			}
			return runJournalAdd(cmd.Context(), app.ws, title, content, tags, cmd.OutOrStdout())
		},
	}
	addCmd.Flags().StringVarP(&title, "title", "t", "", "Entry title (required unless --template)")
	addCmd.Flags().StringVarP(&content, "content", "c", "", "Entry text, appended after template prompts")
	addCmd.Flags().StringVar(&template, "template", "", "Start from a template: gratitude, reflection, anxiety or free")
	addCmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	journalCmd.AddCommand(addCmd)

	// list
	var search string
	var filterTags []string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalList(app.ws, search, filterTags, cmd.OutOrStdout())
		},
	}
	listCmd.Flags().StringVarP(&search, "search", "s", "", "Match title or content")
	listCmd.Flags().StringSliceVar(&filterTags, "tag", nil, "Require tag (repeatable)")
	journalCmd.AddCommand(listCmd)

	journalCmd.AddCommand(&cobra.Command{
		Use:   "show ENTRY_ID",
		Short: "Print one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalShow(app.ws, args[0], cmd.OutOrStdout())
		},
	})

	journalCmd.AddCommand(&cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalDelete(cmd.Context(), app.ws, args[0], cmd.OutOrStdout())
		},
	})

	rootCmd.AddCommand(journalCmd)
}

// fromTemplate fills title and content from a journal template. An explicit
// title wins and content follows the template's prompts.
func fromTemplate(id, title, content string, now time.Time) (string, string, error) {
	tpl, ok := services.JournalTemplateByID(id, now)
	if !ok {
		return "", "", fmt.Errorf("unknown template %q", id)
	}
	if strings.TrimSpace(title) == "" {
		title = tpl.Title
	}
	return title, tpl.Content + content, nil
}

func runJournalAdd(ctx context.Context, ws *services.Workspace, title, content string, tags []string, out io.Writer) error {
	if _, err := requireUser(ws); err != nil {
		return err
	}
	e, err := ws.Journal.Add(ctx, title, content, tags)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Saved %q (%s)\n", e.Title, e.ID)
	return nil
}

func runJournalList(ws *services.Workspace, search string, tags []string, out io.Writer) error {
	if _, err := requireUser(ws); err != nil {
		return err
	}
	entries := ws.Journal.Filter(search, tags)
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No journal entries found.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tTITLE\tTAGS\tID")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Date, e.Title, strings.Join(e.Tags, ","), e.ID)
	}
	return tw.Flush()
}

func runJournalShow(ws *services.Workspace, id string, out io.Writer) error {
	if _, err := requireUser(ws); err != nil {
		return err
	}
	e, ok := ws.Journal.GetByID(id)
	if !ok {
		return fmt.Errorf("journal entry %s not found", id)
	}
	_, _ = fmt.Fprintf(out, "%s\n%s\n\n%s\n", e.Title, e.Date, e.Content)
	if len(e.Tags) > 0 {
		_, _ = fmt.Fprintf(out, "\n#%s\n", strings.Join(e.Tags, " #"))
	}
	return nil
}

func runJournalDelete(ctx context.Context, ws *services.Workspace, id string, out io.Writer) error {
	if _, err := requireUser(ws); err != nil {
		return err
	}
	if err := ws.Journal.DeleteByID(ctx, id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Deleted %s\n", id)
	return nil
}
