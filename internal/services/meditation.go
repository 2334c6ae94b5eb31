package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

var meditations = []models.Meditation{
	{
		ID:          "breathing-4-7-8",
		Title:       "4-7-8 Breathing Exercise",
		Description: "Inhale for 4 counts, hold for 7, exhale for 8. A natural tranquilizer for the nervous system.",
		Duration:    300,
		Category:    models.MeditationBreathing,
		ImageURL:    "https://images.pexels.com/photos/1051838/pexels-photo-1051838.jpeg?auto=compress&cs=tinysrgb&w=800",
	},
	{
		ID:          "guided-body-scan",
		Title:       "Body Scan Meditation",
		Description: "A guided practice focusing attention on each part of your body, releasing tension and promoting awareness.",
		Duration:    600,
		Category:    models.MeditationGuided,
		ImageURL:    "https://images.pexels.com/photos/3560044/pexels-photo-3560044.jpeg?auto=compress&cs=tinysrgb&w=800",
	},
	{
		ID:          "sleep-relaxation",
		Title:       "Sleep Relaxation",
		Description: "A gentle meditation to help you wind down and prepare for restful sleep.",
		Duration:    900,
		Category:    models.MeditationSleep,
		ImageURL:    "https://images.pexels.com/photos/6787202/pexels-photo-6787202.jpeg?auto=compress&cs=tinysrgb&w=800",
	},
	{
		ID:          "focus-mindfulness",
		Title:       "Mindful Focus",
		Description: "Enhance your concentration and attention through mindful awareness of the present moment.",
		Duration:    600,
		Category:    models.MeditationFocus,
		ImageURL:    "https://images.pexels.com/photos/897817/pexels-photo-897817.jpeg?auto=compress&cs=tinysrgb&w=800",
	},
	{
		ID:          "breathing-box",
		Title:       "Box Breathing",
		Description: "Inhale, hold, exhale, and hold again, each for equal counts. Excellent for stress reduction.",
		Duration:    300,
		Category:    models.MeditationBreathing,
		ImageURL:    "https://images.pexels.com/photos/1000445/pexels-photo-1000445.jpeg?auto=compress&cs=tinysrgb&w=800",
	},
	{
		ID:          "guided-loving-kindness",
		Title:       "Loving-Kindness Meditation",
		Description: "Cultivate feelings of goodwill, kindness, and warmth towards yourself and others.",
		Duration:    720,
		Category:    models.MeditationGuided,
		ImageURL:    "https://images.pexels.com/photos/736355/pexels-photo-736355.jpeg?auto=compress&cs=tinysrgb&w=800",
	},
	{
		ID:          "sleep-deep-relaxation",
		Title:       "Deep Sleep Journey",
		Description: "A progressive relaxation exercise to guide you into restful, deep sleep.",
		Duration:    1200,
		Category:    models.MeditationSleep,
		ImageURL:    "https://images.pexels.com/photos/3311574/pexels-photo-3311574.jpeg?auto=compress&cs=tinysrgb&w=800",
	},
	{
		ID:          "focus-attention-training",
		Title:       "Attention Training",
		Description: "Strengthen your ability to direct and sustain attention with this focused practice.",
		Duration:    480,
		Category:    models.MeditationFocus,
		ImageURL:    "https://images.pexels.com/photos/747964/pexels-photo-747964.jpeg?auto=compress&cs=tinysrgb&w=800",
	},
}

// Meditations lists the catalog, optionally narrowed to one category ("" or "all" for everything).
func Meditations(category string) []models.Meditation {
	if category == "" || category == "all" {
		return slices.Clone(meditations)
	}
	out := make([]models.Meditation, 0, len(meditations))
	for _, m := range meditations {
		if string(m.Category) == category {
			out = append(out, m)
		}
	}
	return out
}

func MeditationByID(id string) (models.Meditation, bool) {
	for _, m := range meditations {
		if m.ID == id {
			return m, true
		}
	}
	return models.Meditation{}, false
}

// TimerState is a snapshot of a MeditationTimer.
type TimerState struct {
	Elapsed   int     `json:"elapsed"` // seconds
	Remaining int     `json:"remaining"`
	Duration  int     `json:"duration"`
	Progress  float64 `json:"progress"` // 0..1
	Running   bool    `json:"running"`
	Completed bool    `json:"completed"`
}

type TimerOption func(*MeditationTimer)

// WithTickInterval sets the wall time of one counted second. The CLI
// uses it for a fast-forward mode and tests for speed.
func WithTickInterval(d time.Duration) TimerOption {
	return func(t *MeditationTimer) { t.interval = d }
}

// WithTickHandler is called after every counted second, outside the timer's lock.
func WithTickHandler(fn func(TimerState)) TimerOption {
	return func(t *MeditationTimer) { t.onTick = fn }
}

// MeditationTimer counts up one second per tick until the meditation's
// duration is reached. It can be paused and resumed, and Reset cancels it.
type MeditationTimer struct {
	mu       sync.Mutex
	total    int
	interval time.Duration
	onTick   func(TimerState)

	elapsed   int
	running   bool
	completed bool
	gen       int
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewMeditationTimer(m models.Meditation, opts ...TimerOption) *MeditationTimer {
	t := &MeditationTimer{total: m.Duration, interval: time.Second, done: make(chan struct{})}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins or resumes counting. Starting a completed timer restarts it.
// Cancelling ctx pauses the timer.
func (t *MeditationTimer) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	if t.completed {
		t.elapsed = 0
		t.completed = false
		t.done = make(chan struct{})
	}
	if t.total <= 0 {
		t.finishLocked()
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.running = true
	t.gen++
	go t.run(runCtx, t.gen)
}

func (t *MeditationTimer) run(ctx context.Context, gen int) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.mu.Lock()
			if t.gen == gen {
				t.running = false
			}
			t.mu.Unlock()
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.gen != gen {
				t.mu.Unlock()
				return
			}
			t.elapsed++
			finished := t.elapsed >= t.total
			if finished {
				t.finishLocked()
			}
			state := t.stateLocked()
			handler := t.onTick
			t.mu.Unlock()

			if handler != nil {
				handler(state)
			}
			if finished {
				return
			}
		}
	}
}

func (t *MeditationTimer) finishLocked() {
	t.elapsed = t.total
	t.running = false
	t.completed = true
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	close(t.done)
}

// Pause stops counting and keeps the elapsed time.
func (t *MeditationTimer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Reset stops the timer and rewinds it to zero.
func (t *MeditationTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.elapsed = 0
	if t.completed {
		t.completed = false
		t.done = make(chan struct{})
	}
}

func (t *MeditationTimer) stopLocked() {
	if !t.running {
		return
	}
	t.gen++
	t.running = false
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Done is closed when the current run reaches the full duration.
func (t *MeditationTimer) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

func (t *MeditationTimer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *MeditationTimer) stateLocked() TimerState {
	s := TimerState{
		Elapsed:   t.elapsed,
		Remaining: t.total - t.elapsed,
		Duration:  t.total,
		Running:   t.running,
		Completed: t.completed,
	}
	if t.total > 0 {
		s.Progress = float64(t.elapsed) / float64(t.total)
	} else {
		s.Progress = 1
	}
	return s
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
