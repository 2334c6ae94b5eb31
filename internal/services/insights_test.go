package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

func entries(pairs ...string) []models.MoodEntry {
	out := make([]models.MoodEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.MoodEntry{ID: pairs[i], Date: pairs[i], Mood: models.Mood(pairs[i+1])})
	}
	return out
}

func TestCalculateInsights_Empty(t *testing.T) {
	_, ok := CalculateInsights(nil)
	assert.False(t, ok)
}

func TestCalculateInsights(t *testing.T) {
	in := entries(
		"2024-05-01", "great",
		"2024-05-02", "good",
		"2024-05-03", "good",
		"2024-05-04", "okay",
		"2024-05-05", "bad",
		"2024-05-06", "awful",
	)
	got, ok := CalculateInsights(in)
	require.True(t, ok)

	assert.Equal(t, 6, got.Total)
	assert.Equal(t, map[models.Mood]int{"great": 1, "good": 2, "okay": 1, "bad": 1, "awful": 1}, got.Counts)
	assert.Equal(t, 50, got.PositivePercentage)
	assert.Equal(t, 17, got.NeutralPercentage)
	assert.Equal(t, 33, got.NegativePercentage)
	assert.Equal(t, models.MoodGood, got.MostCommonMood)
	assert.Equal(t, 6, got.CurrentStreak)
}

func TestCalculateInsights_TieGoesToBetterMood(t *testing.T) {
	got, ok := CalculateInsights(entries("2024-05-01", "bad", "2024-05-02", "great", "2024-05-03", "okay"))
	require.True(t, ok)
	assert.Equal(t, models.MoodGreat, got.MostCommonMood)
	assert.Equal(t, 33, got.PositivePercentage)
	assert.Equal(t, 33, got.NeutralPercentage)
	assert.Equal(t, 33, got.NegativePercentage)
}

func TestCalculateInsights_Tips(t *testing.T) {
	const (
		positive = "You're having more positive days than negative ones. Great job!"
		negative = "You've been experiencing more challenging days lately. Consider exploring the self-help resources or guided meditations."
	)

	tests := []struct {
		name string
		in   []models.MoodEntry
		want []string
	}{
		{
			name: "mixed",
			in:   entries("a", "great", "b", "good", "c", "good", "d", "okay", "e", "bad", "f", "awful"),
			want: []string{
				"Your most common mood is good.",
				"You've tracked your mood for 6 days. Consistency helps build better insights!",
			},
		},
		{
			name: "mostly positive",
			in:   entries("a", "great", "b", "great", "c", "great", "d", "good", "e", "okay"),
			want: []string{
				"Your most common mood is great.",
				positive,
				"You've tracked your mood for 5 days. Consistency helps build better insights!",
			},
		},
		{
			name: "exactly sixty percent positive",
			in:   entries("a", "great", "b", "great", "c", "good", "d", "okay", "e", "bad"),
			want: []string{
				"Your most common mood is great.",
				"You've tracked your mood for 5 days. Consistency helps build better insights!",
			},
		},
		{
			name: "mostly negative",
			in:   entries("a", "bad", "b", "awful", "c", "bad", "d", "okay"),
			want: []string{
				"Your most common mood is bad.",
				negative,
				"You've tracked your mood for 4 days. Consistency helps build better insights!",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CalculateInsights(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Tips)
		})
	}
}

func TestHasEnoughEntries(t *testing.T) {
	four := entries("a", "good", "b", "good", "c", "good", "d", "good")
	assert.False(t, HasEnoughEntries(four))
	assert.True(t, HasEnoughEntries(append(four, models.MoodEntry{Mood: models.MoodBad})))
}

func TestCalculateStreak(t *testing.T) {
	tests := []struct {
		name string
		in   []models.MoodEntry
		want int
	}{
		{"empty", nil, 0},
		{"single", entries("2024-05-01", "good"), 1},
		{"gap before latest", entries("2024-05-01", "good", "2024-05-02", "good", "2024-05-04", "bad"), 1},
		{"unordered run", entries("2024-05-03", "good", "2024-05-01", "good", "2024-05-02", "okay"), 3},
		{"across month end", entries("2024-04-29", "good", "2024-04-30", "good", "2024-05-01", "good"), 3},
		{"bad dates ignored", entries("not-a-date", "good", "2024-05-01", "good"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreak(tt.in))
		})
	}
}

func TestHeatmap_SortedByDate(t *testing.T) {
	got := Heatmap(entries("2024-05-03", "awful", "2024-05-01", "great", "2024-05-02", "okay"))
	assert.Equal(t, []HeatmapPoint{
		{Date: "2024-05-01", Mood: models.MoodGreat, Score: 4},
		{Date: "2024-05-02", Mood: models.MoodOkay, Score: 2},
		{Date: "2024-05-03", Mood: models.MoodAwful, Score: 0},
	}, got)
}

func TestMonthCalendar(t *testing.T) {
	days := MonthCalendar(entries("2024-02-29", "good", "2024-03-01", "bad"), 2024, time.February)
	require.Len(t, days, 29)

	assert.Equal(t, CalendarDay{Date: "2024-02-01", Day: 1, Weekday: "Thu"}, days[0])
	assert.Equal(t, CalendarDay{Date: "2024-02-29", Day: 29, Weekday: "Thu", Mood: models.MoodGood, EntryID: "2024-02-29"}, days[28])
}
