package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

func TestChatbot_Match(t *testing.T) {
	bot := NewChatbot()
	tests := []struct {
		input string
		want  string
	}{
		{"Hello there", "greeting"},
		{"hey, how are you?", "greeting"},
		{"How are you", "how-are-you"},
		{"I feel so ANXIOUS today", "anxiety"},
		{"having a panic attack", "anxiety"},
		{"I'm sad", "sadness"},
		{"work is stressful", "stress"},
		{"teach me to meditate", "meditation"},
		{"can you help me sleep", "sleep"},
		{"I need help", "help"},
		{"hi, I want to hurt myself", "crisis"},
		{"is this an emergency", "crisis"},
		{"any resources on grief", "resources"},
		{"thanks!", "thanks"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, ok := bot.Match(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, r.Name)
		})
	}
}

func TestChatbot_WordBoundaries(t *testing.T) {
	bot := NewChatbot()
	for _, in := range []string{"which one", "theyre fine", "shelp", "asdf"} {
		_, ok := bot.Match(in)
		assert.False(t, ok, in)
		assert.Equal(t, ChatFallbackMessage, bot.Respond(in))
	}
}

func TestChatbot_CrisisAndHelpShareResponse(t *testing.T) {
	bot := NewChatbot()
	assert.Equal(t, bot.Respond("suicide"), bot.Respond("help"))
	assert.Contains(t, bot.Respond("help"), "988")
}

func TestChatbot_CustomRules(t *testing.T) {
	bot := NewChatbot(rule("ping", `ping`, "pong"))
	assert.Equal(t, "pong", bot.Respond("PING"))
	assert.Equal(t, ChatFallbackMessage, bot.Respond("hello"))
}

func TestConversation(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := NewConversation(NewChatbot(), func() time.Time { return now })

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.SenderBot, msgs[0].Sender)
	assert.Equal(t, ChatWelcomeMessage, msgs[0].Text)

	in, out, err := c.Send("  thanks  ")
	require.NoError(t, err)
	assert.Equal(t, models.SenderUser, in.Sender)
	assert.Equal(t, "  thanks  ", in.Text)
	assert.Equal(t, models.SenderBot, out.Sender)
	assert.Contains(t, out.Text, "You're welcome")
	assert.Equal(t, now, out.Timestamp)
	assert.NotEqual(t, in.ID, out.ID)
	assert.Len(t, c.Messages(), 3)

	_, _, err = c.Send("   ")
	assert.True(t, IsValidation(err))
	assert.Len(t, c.Messages(), 3)

	c.Reset()
	assert.Len(t, c.Messages(), 1)
}
