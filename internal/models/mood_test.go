package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodScore(t *testing.T) {
	want := []int{4, 3, 2, 1, 0}
	for i, m := range Moods {
		assert.Equal(t, want[i], m.Score(), m)
	}
	assert.Equal(t, -1, Mood("meh").Score())
	assert.False(t, Mood("").Valid())
}

func TestParseMood(t *testing.T) {
	m, err := ParseMood(" Great ")
	require.NoError(t, err)
	assert.Equal(t, MoodGreat, m)

	_, err = ParseMood("ecstatic")
	assert.Error(t, err)
}

func TestJournalEntryHasTag(t *testing.T) {
	e := JournalEntry{Tags: []string{"work", "Sleep"}}
	assert.True(t, e.HasTag("work"))
	assert.False(t, e.HasTag("sleep"))
}
