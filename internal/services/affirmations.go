package services

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/pkg/utils"
)

// FavoritesKey stores favorites outside any signed-in identity.
const FavoritesKey = "favoriteAffirmations"

// FavoritesKeyFor scopes the favorites key to userID; "" yields FavoritesKey.
func FavoritesKeyFor(userID string) string {
	if userID == "" {
		return FavoritesKey
	}
	return FavoritesKey + "_" + userID
}

const DefaultAffirmationCategory = "general"

var affirmationCategories = []string{"general", "anxiety", "confidence", "gratitude", "healing"}

var affirmations = map[string][]string{
	"general": {
		"I am worthy of love, happiness, and fulfillment.",
		"I am enough just as I am, and I'm getting stronger every day.",
		"I choose to be kind to myself and treat myself with compassion.",
		"I have the power to create positive change in my life.",
		"My potential to succeed is limitless.",
		"I am in charge of how I feel, and today I choose happiness.",
		"I celebrate my individuality and know that I have unique gifts to offer.",
		"My thoughts and feelings are valid, and I deserve to be heard.",
		"I release the need to compare myself to others.",
		"I trust that I am on the right path.",
	},
	"anxiety": {
		"I breathe in calmness and breathe out tension.",
		"This moment is temporary, and I have the strength to move through it.",
		"I am safe and supported, even when I feel anxious.",
		"I release all fear and doubt and embrace peace and understanding.",
		"With each breath, I become more relaxed and centered.",
		"I am stronger than my anxiety.",
		"I acknowledge my anxious thoughts without judgment and let them pass.",
		"I trust in my ability to handle whatever comes my way.",
		"Even when my mind feels chaotic, I can find moments of calm.",
		"I give myself permission to take things one moment at a time.",
	},
	"confidence": {
		"I believe in myself and my abilities.",
		"I am confident in my skills and continue to grow every day.",
		"I speak with confidence and self-assurance.",
		"I am proud of my achievements and excited about my potential.",
		"I have the courage to be myself in all situations.",
		"I trust my intuition and make decisions with confidence.",
		"I am resilient and can overcome any challenge.",
		"I radiate confidence, certainty, and positivity.",
		"I am worthy of respect and acceptance.",
		"My confidence grows when I step outside my comfort zone.",
	},
	"gratitude": {
		"I am grateful for the abundance in my life.",
		"Each day brings new opportunities to be thankful for.",
		"I appreciate the small joys and moments of beauty in my life.",
		"I am thankful for my body and all that it allows me to experience.",
		"I express gratitude for the lessons I've learned through challenges.",
		"I appreciate the love and support of those around me.",
		"I find joy in the present moment and all it contains.",
		"I am grateful for my unique gifts and talents.",
		"My heart is full of appreciation for this day.",
		"I acknowledge and am thankful for my growth and progress.",
	},
	"healing": {
		"I am healing more and more every day.",
		"My body knows how to heal, and I trust in this process.",
		"I release past hurts and welcome healing energy.",
		"I am gentle with myself during my healing journey.",
		"I deserve to heal and live a full, healthy life.",
		"Each day I grow stronger in mind, body, and spirit.",
		"I allow myself the time and space needed to heal completely.",
		"My scars are proof of my strength and resilience.",
		"I embrace healing as a positive force in my life.",
		"I am patient with the healing process and trust its timing.",
	},
}

// AffirmationCategories lists the categories in display order.
func AffirmationCategories() []string {
	return slices.Clone(affirmationCategories)
}

// Affirmations returns the affirmations of category, or nil for an unknown one.
func Affirmations(category string) []string {
	return slices.Clone(affirmations[category])
}

// IsAffirmation reports whether text is one of the catalog's affirmations.
func IsAffirmation(text string) bool {
	for _, list := range affirmations {
		if slices.Contains(list, text) {
			return true
		}
	}
	return false
}

// AffirmationPicker draws random affirmations. The zero value is not usable.
type AffirmationPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAffirmationPicker uses seed for reproducible draws; tests pass a
// fixed seed, production code a random one.
func NewAffirmationPicker(seed uint64) *AffirmationPicker {
	return &AffirmationPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Random returns an affirmation from category. Empty category means general.
func (p *AffirmationPicker) Random(category string) (string, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = DefaultAffirmationCategory
	}
	list, ok := affirmations[category]
	if !ok {
		return "", &utils.ValidationError{Field: "category", Message: "Unknown affirmation category"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return list[p.rng.IntN(len(list))], nil
}

// FavoritesStore is the list of favorited affirmations, persisted as a
// JSON array of strings after every change.
type FavoritesStore struct {
	mu    sync.Mutex
	kv    database.KeyValueStore
	key   string
	items []string
	log   *zap.Logger
}

func NewFavoritesStore(kv database.KeyValueStore, log *zap.Logger) *FavoritesStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FavoritesStore{kv: kv, key: FavoritesKey, log: log.Named("favorites")}
}

// Load switches to the favorites of userID ("" for the anonymous list).
func (s *FavoritesStore) Load(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := FavoritesKeyFor(userID)
	var items []string
	if _, err := readJSON(ctx, s.kv, key, &items); err != nil {
		s.key, s.items = FavoritesKey, nil
		return err
	}
	s.key, s.items = key, items
	return nil
}

func (s *FavoritesStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *FavoritesStore) Contains(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.items, text)
}

// Toggle adds text to the favorites or removes it if present, and reports
// whether it is a favorite afterwards.
func (s *FavoritesStore) Toggle(ctx context.Context, text string) (bool, error) {
	if !IsAffirmation(text) {
		return false, &utils.ValidationError{Field: "text", Message: "Unknown affirmation"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	favorited := true
	if idx := slices.Index(next, text); idx >= 0 {
		next = slices.Delete(next, idx, idx+1)
		favorited = false
	} else {
		next = append(next, text)
	}
	if next == nil {
		next = []string{}
	}
	if err := writeJSON(ctx, s.kv, s.key, next); err != nil {
		s.log.Warn("save favorites failed", zap.String("key", s.key), zap.Error(err))
		return false, err
	}
	s.items = next
	return favorited, nil
}
