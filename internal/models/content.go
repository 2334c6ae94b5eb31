package models

type MeditationCategory string

const (
	MeditationBreathing MeditationCategory = "breathing"
	MeditationGuided    MeditationCategory = "guided"
	MeditationSleep     MeditationCategory = "sleep"
	MeditationFocus     MeditationCategory = "focus"
)

type Meditation struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Duration    int                `json:"duration"` // seconds
	Category    MeditationCategory `json:"category"`
	ImageURL    string             `json:"image_url"`
}

type Resource struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"` // article, video, pdf, website
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
}

type Helpline struct {
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	Text        string `json:"text,omitempty"`
	Website     string `json:"website"`
	Hours       string `json:"hours"`
	Description string `json:"description"`
	Type        string `json:"type"` // crisis, mental health, substance, special
}
