package models

// JournalEntry represents a private journaling entry for a user
type JournalEntry struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// HasTag reports whether tag is attached to the entry. Tags compare exactly.
func (e JournalEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// JournalTemplate pre-fills a new entry. Title already carries the date.
type JournalTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
