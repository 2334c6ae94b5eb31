package models

import (
	"fmt"
	"strings"
)

// Mood is one label of the ordered mood scale.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodBad   Mood = "bad"
	MoodAwful Mood = "awful"
)

// Moods lists every label from best to worst. Aggregations iterate in this order.
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad, MoodAwful}

// Score returns the ordinal value of the mood (great=4 ... awful=0), or -1 for an unknown label.
func (m Mood) Score() int {
	switch m {
	case MoodGreat:
		return 4
	case MoodGood:
		return 3
	case MoodOkay:
		return 2
	case MoodBad:
		return 1
	case MoodAwful:
		return 0
	}
	return -1
}

func (m Mood) Valid() bool {
	return m.Score() >= 0
}

// ParseMood accepts a label in any case.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

// MoodEntry is one mood log. At most one exists per user per Date.
type MoodEntry struct {
	ID    string `json:"id"`
	Date  string `json:"date"` // YYYY-MM-DD, local time
	Mood  Mood   `json:"mood"`
	Notes string `json:"notes"`
}
