package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

// MinEntriesForInsights is the product threshold below which the UI shows
// "not enough data" instead of statistics. CalculateInsights itself works
// for any non-empty input.
const MinEntriesForInsights = 5

// MoodInsights are statistics derived from a mood history. They are never persisted.
type MoodInsights struct {
	Total              int                 `json:"total"`
	Counts             map[models.Mood]int `json:"counts"`
	PositivePercentage int                 `json:"positive_percentage"`
	NeutralPercentage  int                 `json:"neutral_percentage"`
	NegativePercentage int                 `json:"negative_percentage"`
	MostCommonMood     models.Mood         `json:"most_common_mood"`
	CurrentStreak      int                 `json:"current_streak"`
	Tips               []string            `json:"tips"`
}

// Tip thresholds, in percent. Both are strict.
const (
	positiveTipAbove = 60
	negativeTipAbove = 50
)

// HasEnoughEntries applies the MinEntriesForInsights display rule.
func HasEnoughEntries(entries []models.MoodEntry) bool {
	return len(entries) >= MinEntriesForInsights
}

// CalculateInsights returns false when entries is empty. Percentages are
// rounded independently and may not sum to 100. Ties for the most common
// mood go to the better mood.
func CalculateInsights(entries []models.MoodEntry) (MoodInsights, bool) {
	if len(entries) == 0 {
		return MoodInsights{}, false
	}

	counts := make(map[models.Mood]int, len(models.Moods))
	for _, m := range models.Moods {
		counts[m] = 0
	}
	for _, e := range entries {
		if e.Mood.Valid() {
			counts[e.Mood]++
		}
	}

	total := len(entries)
	pct := func(n int) int {
		return int(math.Round(100 * float64(n) / float64(total)))
	}

	var most models.Mood
	best := -1
	for _, m := range models.Moods {
		if counts[m] > best {
			most, best = m, counts[m]
		}
	}

	in := MoodInsights{
		Total:              total,
		Counts:             counts,
		PositivePercentage: pct(counts[models.MoodGreat] + counts[models.MoodGood]),
		NeutralPercentage:  pct(counts[models.MoodOkay]),
		NegativePercentage: pct(counts[models.MoodBad] + counts[models.MoodAwful]),
		MostCommonMood:     most,
		CurrentStreak:      CalculateStreak(entries),
	}
	in.Tips = insightTips(in)
	return in, true
}

// insightTips turns the statistics into the short messages shown under
// the charts.
func insightTips(in MoodInsights) []string {
	tips := []string{fmt.Sprintf("Your most common mood is %s.", in.MostCommonMood)}
	if in.PositivePercentage > positiveTipAbove {
		tips = append(tips, "You're having more positive days than negative ones. Great job!")
	}
	if in.NegativePercentage > negativeTipAbove {
		tips = append(tips, "You've been experiencing more challenging days lately. Consider exploring the self-help resources or guided meditations.")
	}
	return append(tips, fmt.Sprintf("You've tracked your mood for %d days. Consistency helps build better insights!", in.Total))
}

// CalculateStreak counts consecutive calendar days that have an entry,
// ending at the most recent entry date. Unparseable dates are skipped.
func CalculateStreak(entries []models.MoodEntry) int {
	days := make(map[string]struct{}, len(entries))
	var latest time.Time
	for _, e := range entries {
		d, err := time.Parse(DateLayout, e.Date)
		if err != nil {
			continue
		}
		days[e.Date] = struct{}{}
		if d.After(latest) {
			latest = d
		}
	}
	if len(days) == 0 {
		return 0
	}

	streak := 0
	for d := latest; ; d = d.AddDate(0, 0, -1) {
		if _, ok := days[d.Format(DateLayout)]; !ok {
			return streak
		}
		streak++
	}
}

// HeatmapPoint is one colored cell of the mood heat map.
type HeatmapPoint struct {
	Date  string      `json:"date"`
	Mood  models.Mood `json:"mood"`
	Score int         `json:"score"`
}

// Heatmap maps each entry to its ordinal score, sorted by date.
func Heatmap(entries []models.MoodEntry) []HeatmapPoint {
	points := make([]HeatmapPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, HeatmapPoint{Date: e.Date, Mood: e.Mood, Score: e.Mood.Score()})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// CalendarDay is one day of a month view. Mood is empty when nothing was logged.
type CalendarDay struct {
	Date    string      `json:"date"`
	Day     int         `json:"day"`
	Weekday string      `json:"weekday"`
	Mood    models.Mood `json:"mood,omitempty"`
	EntryID string      `json:"entry_id,omitempty"`
}

// MonthCalendar lists every day of month with the entry logged on it.
func MonthCalendar(entries []models.MoodEntry, year int, month time.Month) []CalendarDay {
	byDate := make(map[string]models.MoodEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]CalendarDay, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		day := CalendarDay{Date: date, Day: d.Day(), Weekday: d.Weekday().String()[:3]}
		if e, ok := byDate[date]; ok {
			day.Mood = e.Mood
			day.EntryID = e.ID
		}
		days = append(days, day)
	}
	return days
}
