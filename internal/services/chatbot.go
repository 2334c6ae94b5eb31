package services

import (
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
	"github.com/AnshRaj112/serenify-wellness/pkg/utils"
)

const (
	ChatWelcomeMessage  = "Hi there! I'm your mental wellness assistant. How can I support you today? You can ask me about anxiety, stress, sleep, or tell me how you're feeling."
	ChatFallbackMessage = "I'm not sure I understand. Could you rephrase that?"

	crisisResponse = "If you're experiencing a mental health emergency or having thoughts of harming yourself, please reach out for immediate help. You can call the National Suicide Prevention Lifeline at 988 or text HOME to 741741 to reach the Crisis Text Line. Would you like me to direct you to our emergency resources page?"
)

// ChatRule maps a pattern to a canned response.
type ChatRule struct {
	Name     string
	Pattern  *regexp.Regexp
	Response string
}

func rule(name, pattern, response string) ChatRule {
	return ChatRule{Name: name, Pattern: regexp.MustCompile(`(?i)\b(?:` + pattern + `)\b`), Response: response}
}

// DefaultChatRules is the scripted rule table. Crisis language is checked
// before anything else so a greeting cannot mask it.
func DefaultChatRules() []ChatRule {
	return []ChatRule{
		rule("crisis", `emergency|crisis|suicidal|suicide|kill myself|self[- ]harm|hurt myself`, crisisResponse),
		rule("greeting", `hello|hi|hey`, "Hello! How are you feeling today?"),
		rule("how-are-you", `how are you`, "I'm here and ready to help you! How are you doing?"),
		rule("anxiety", `anxious|anxiety|worried|panic`, "I'm sorry to hear you're feeling anxious. Try this breathing exercise: Breathe in for 4 counts, hold for 2, then exhale for 6. Repeat this a few times. Would you like me to guide you through a more detailed anxiety-reduction technique?"),
		rule("sadness", `sad|depressed|unhappy`, "I'm sorry you're feeling down. Remember that it's okay to not be okay sometimes. Would you like to explore some mood-lifting activities or talk more about what's causing these feelings?"),
		rule("stress", `stress|stressed|stressful|overwhelmed`, "Feeling stressed is common. Consider taking a short break to reset. Even 5 minutes of mindfulness or a brief walk can help. Would you like to discuss some stress management strategies?"),
		rule("meditation", `meditation|meditate|breathe|breathing|relax`, "Meditation and breathing exercises are great tools for mental wellness. Our guided meditation page has several options you might find helpful. Would you like me to direct you there?"),
		rule("sleep", `sleep|sleeping|insomnia|tired`, "Sleep issues can significantly impact mental health. Establishing a regular sleep routine and avoiding screens before bed can help. Would you like some more specific sleep improvement tips?"),
		rule("help", `help`, crisisResponse),
		rule("resources", `resources?|support|therapy|therapist`, "We have many self-help resources available on our Resources page. These include articles, worksheets, and links to professional services. Would you like me to direct you there?"),
		rule("thanks", `thank you|thanks`, "You're welcome! I'm here anytime you need support or someone to talk to."),
	}
}

// Chatbot evaluates its rules top to bottom; the first match answers.
// It has no language understanding and can be swapped for a real NLU
// service behind the same Respond call.
type Chatbot struct {
	rules    []ChatRule
	fallback string
}

// NewChatbot uses DefaultChatRules when rules is empty.
func NewChatbot(rules ...ChatRule) *Chatbot {
	if len(rules) == 0 {
		rules = DefaultChatRules()
	}
	return &Chatbot{rules: rules, fallback: ChatFallbackMessage}
}

// Match returns the first rule matching input.
func (b *Chatbot) Match(input string) (ChatRule, bool) {
	for _, r := range b.rules {
		if r.Pattern.MatchString(input) {
			return r, true
		}
	}
	return ChatRule{}, false
}

func (b *Chatbot) Respond(input string) string {
	if r, ok := b.Match(input); ok {
		return r.Response
	}
	return b.fallback
}

// Conversation is one chat session's transcript, starting with the welcome message.
type Conversation struct {
	mu       sync.Mutex
	bot      *Chatbot
	now      func() time.Time
	messages []models.ChatMessage
}

func NewConversation(bot *Chatbot, now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	c := &Conversation{bot: bot, now: now}
	c.messages = []models.ChatMessage{c.message(models.SenderBot, ChatWelcomeMessage)}
	return c
}

func (c *Conversation) message(sender models.ChatSender, text string) models.ChatMessage {
	return models.ChatMessage{ID: uuid.NewString(), Sender: sender, Text: text, Timestamp: c.now()}
}

// Send records the user's text and the bot's reply. Blank text is rejected.
func (c *Conversation) Send(text string) (models.ChatMessage, models.ChatMessage, error) {
	if err := utils.Required("text", text); err != nil {
		return models.ChatMessage{}, models.ChatMessage{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	in := c.message(models.SenderUser, text)
	out := c.message(models.SenderBot, c.bot.Respond(strings.TrimSpace(text)))
	c.messages = append(c.messages, in, out)
	return in, out, nil
}

// Reset clears the transcript back to the welcome message.
func (c *Conversation) Reset() models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	welcome := c.message(models.SenderBot, ChatWelcomeMessage)
	c.messages = []models.ChatMessage{welcome}
	return welcome
}

func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}
