package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

const progressWidth = 30

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "insights",
		Short: "Mood statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsights(app.ws, cmd.OutOrStdout())
		},
	})

	// affirm
	var category string
	var favorite, list bool
	affirmCmd := &cobra.Command{
		Use:   "affirm",
		Short: "Print a random affirmation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return runFavorites(app.ws, cmd.OutOrStdout())
			}
			picker := services.NewAffirmationPicker(randomSeed())
			return runAffirm(cmd.Context(), app.ws, picker, category, favorite, cmd.OutOrStdout())
		},
	}
	affirmCmd.Flags().StringVarP(&category, "category", "c", services.DefaultAffirmationCategory,
		"One of "+strings.Join(services.AffirmationCategories(), ", "))
	affirmCmd.Flags().BoolVarP(&favorite, "favorite", "f", false, "Toggle the printed affirmation in favorites")
	affirmCmd.Flags().BoolVarP(&list, "list", "l", false, "List favorites instead")
	rootCmd.AddCommand(affirmCmd)

	// meditate
	var speed float64
	meditateCmd := &cobra.Command{
		Use:   "meditate [MEDITATION_ID]",
		Short: "Run a meditation timer; without an id, list meditations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runMeditationList(cmd.OutOrStdout())
			}
			if speed <= 0 {
				return fmt.Errorf("--speed must be positive")
			}
			interval := time.Duration(float64(time.Second) / speed)
			return runMeditate(cmd.Context(), args[0], interval, cmd.OutOrStdout())
		},
	}
	meditateCmd.Flags().Float64Var(&speed, "speed", 1, "Playback speed multiplier")
	rootCmd.AddCommand(meditateCmd)

	// helplines
	var helplineType string
	helplinesCmd := &cobra.Command{
		Use:   "helplines",
		Short: "Crisis and support helplines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHelplines(helplineType, cmd.OutOrStdout())
		},
	}
	helplinesCmd.Flags().StringVarP(&helplineType, "type", "t", "", "crisis, mental health, substance or special")
	rootCmd.AddCommand(helplinesCmd)
}

func runInsights(ws *services.Workspace, out io.Writer) error {
	if _, err := requireUser(ws); err != nil {
		return err
	}
	entries := ws.Moods.List()
	if !services.HasEnoughEntries(entries) {
		_, _ = fmt.Fprintf(out, "Log at least %d moods to see insights (%d so far).\n",
			services.MinEntriesForInsights, len(entries))
		return nil
	}
	in, _ := services.CalculateInsights(entries)
	_, _ = fmt.Fprintf(out, "Entries:      %d\n", in.Total)
	_, _ = fmt.Fprintf(out, "Positive:     %d%%\n", in.PositivePercentage)
	_, _ = fmt.Fprintf(out, "Neutral:      %d%%\n", in.NeutralPercentage)
	_, _ = fmt.Fprintf(out, "Negative:     %d%%\n", in.NegativePercentage)
	_, _ = fmt.Fprintf(out, "Most common:  %s\n", in.MostCommonMood)
	_, _ = fmt.Fprintf(out, "Streak:       %d days\n", in.CurrentStreak)
	return nil
}

func runAffirm(ctx context.Context, ws *services.Workspace, picker *services.AffirmationPicker, category string, favorite bool, out io.Writer) error {
	text, err := picker.Random(category)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, text)
	if !favorite {
		return nil
	}
	added, err := ws.Favorites.Toggle(ctx, text)
	if err != nil {
		return err
	}
	if added {
		_, _ = fmt.Fprintln(out, "Added to favorites.")
	} else {
		_, _ = fmt.Fprintln(out, "Removed from favorites.")
	}
	return nil
}

func runFavorites(ws *services.Workspace, out io.Writer) error {
	favs := ws.Favorites.List()
	if len(favs) == 0 {
		_, _ = fmt.Fprintln(out, "No favorite affirmations yet.")
		return nil
	}
	for _, f := range favs {
		_, _ = fmt.Fprintf(out, "* %s\n", f)
	}
	return nil
}

func runMeditationList(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tLENGTH")
	for _, m := range services.Meditations("") {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Title, m.Category, services.FormatClock(m.Duration))
	}
	return tw.Flush()
}

// runMeditate blocks until the session completes or ctx is cancelled.
func runMeditate(ctx context.Context, id string, interval time.Duration, out io.Writer) error {
	m, ok := services.MeditationByID(id)
	if !ok {
		return fmt.Errorf("meditation %s not found", id)
	}
	out = &lockedWriter{w: out}
	_, _ = fmt.Fprintf(out, "%s (%s)\n%s\n", m.Title, services.FormatClock(m.Duration), m.Description)

	// closed by the completing tick, after its progress line is written
	finished := make(chan struct{})
	timer := services.NewMeditationTimer(m,
		services.WithTickInterval(interval),
		services.WithTickHandler(func(s services.TimerState) {
			_, _ = fmt.Fprintf(out, "\r%s %s / %s", progressBar(s.Progress),
				services.FormatClock(s.Elapsed), services.FormatClock(s.Duration))
			if s.Completed {
				close(finished)
			}
		}),
	)
	timer.Start(ctx)

	select {
	case <-finished:
		_, _ = fmt.Fprintln(out, "\nSession complete. Well done.")
		return nil
	case <-ctx.Done():
		timer.Pause()
		_, _ = fmt.Fprintf(out, "\nStopped at %s.\n", services.FormatClock(timer.State().Elapsed))
		return nil
	}
}

// lockedWriter lets the timer goroutine and runMeditate share out.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func progressBar(p float64) string {
	filled := int(p * progressWidth)
	if filled > progressWidth {
		filled = progressWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressWidth-filled) + "]"
}

func runHelplines(helplineType string, out io.Writer) error {
	lines := services.Helplines(helplineType)
	if len(lines) == 0 {
		_, _ = fmt.Fprintf(out, "No helplines of type %q.\n", helplineType)
		return nil
	}
	for _, h := range lines {
		_, _ = fmt.Fprintf(out, "%s (%s)\n", h.Name, h.Type)
		if h.Phone != "" {
			_, _ = fmt.Fprintf(out, "  Call: %s\n", h.Phone)
		}
		if h.Text != "" {
			_, _ = fmt.Fprintf(out, "  Text: %s\n", h.Text)
		}
		_, _ = fmt.Fprintf(out, "  %s | %s\n", h.Hours, h.Website)
	}
	return nil
}

func randomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
