package services

import (
	"strings"
	"time"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

const templateDateLayout = "Jan 2, 2006"

var journalTemplates = []struct {
	id, name, titlePrefix string
	prompts               []string
}{
	{
		id:          "gratitude",
		name:        "Gratitude",
		titlePrefix: "Gratitude Journal",
		prompts: []string{
			"Today, I am grateful for:", "1. ", "2. ", "3. ",
			"One small joy I experienced today: ",
			"Someone I appreciate in my life and why: ",
		},
	},
	{
		id:          "reflection",
		name:        "Daily Reflection",
		titlePrefix: "Daily Reflection",
		prompts: []string{
			"How I'm feeling today: ",
			"Three main things that happened today: ", "1. ", "2. ", "3. ",
			"What I learned or realized today: ",
			"What I could have done better: ",
			"What I'm looking forward to tomorrow: ",
		},
	},
	{
		id:          "anxiety",
		name:        "Anxiety Check-in",
		titlePrefix: "Anxiety Check-in",
		prompts: []string{
			"My anxiety level today (1-10): ",
			"What's triggering my anxiety right now: ",
			"Physical sensations I'm experiencing: ",
			"Thoughts that are contributing to my anxiety: ",
			"Coping strategies I can use right now: ",
			"Positive affirmation for today: ",
		},
	},
	{
		id:          "free",
		name:        "Free Writing",
		titlePrefix: "Journal Entry",
	},
}

// JournalTemplates lists the entry templates with titles dated now.
// Free writing has no prompts.
func JournalTemplates(now time.Time) []models.JournalTemplate {
	date := now.Format(templateDateLayout)
	out := make([]models.JournalTemplate, 0, len(journalTemplates))
	for _, t := range journalTemplates {
		var content string
		if len(t.prompts) > 0 {
			content = strings.Join(t.prompts, "\n\n") + "\n\n"
		}
		out = append(out, models.JournalTemplate{
			ID:      t.id,
			Name:    t.name,
			Title:   t.titlePrefix + " - " + date,
			Content: content,
		})
	}
	return out
}

func JournalTemplateByID(id string, now time.Time) (models.JournalTemplate, bool) {
	for _, t := range JournalTemplates(now) {
		if t.ID == id {
			return t, true
		}
	}
	return models.JournalTemplate{}, false
}
