package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

// ErrNotSignedIn is returned by operations that need an identity.
var ErrNotSignedIn = &AuthError{Message: "You must be signed in"}

// Uploader stores a raw blob and returns its public URL.
type Uploader interface {
	UploadRaw(ctx context.Context, data []byte, folder, publicID string) (string, error)
}

// Backup is the exported snapshot of one user's data.
type Backup struct {
	User                 models.User           `json:"user"`
	MoodEntries          []models.MoodEntry    `json:"mood_entries"`
	JournalEntries       []models.JournalEntry `json:"journal_entries"`
	FavoriteAffirmations []string              `json:"favorite_affirmations"`
	Insights             *MoodInsights         `json:"insights,omitempty"`
	ExportedAt           time.Time             `json:"exported_at"`
}

// BuildBackup snapshots the signed-in user's workspace.
func BuildBackup(w *Workspace, now time.Time) (Backup, error) {
	u, ok := w.Identity.CurrentUser()
	if !ok {
		return Backup{}, ErrNotSignedIn
	}
	moods := w.Moods.List()
	b := Backup{
		User:                 u,
		MoodEntries:          moods,
		JournalEntries:       w.Journal.List(),
		FavoriteAffirmations: w.Favorites.List(),
		ExportedAt:           now.UTC(),
	}
	if insights, ok := CalculateInsights(moods); ok {
		b.Insights = &insights
	}
	return b, nil
}

type ExportService struct {
	uploader Uploader
	folder   string
	now      func() time.Time
	log      *zap.Logger
}

func NewExportService(uploader Uploader, folder string, log *zap.Logger) *ExportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExportService{uploader: uploader, folder: folder, now: time.Now, log: log.Named("export")}
}

// Export uploads a JSON backup of w and returns where it landed.
func (s *ExportService) Export(ctx context.Context, w *Workspace) (string, error) {
	if s.uploader == nil {
		return "", errors.New("export storage is not configured")
	}
	now := s.now()
	b, err := BuildBackup(w, now)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}

	publicID := fmt.Sprintf("%s-%s", b.User.ID, now.UTC().Format("20060102T150405Z"))
	url, err := s.uploader.UploadRaw(ctx, data, s.folder, publicID)
	if err != nil {
		s.log.Error("backup upload failed", zap.String("user_id", b.User.ID), zap.Error(err))
		return "", err
	}
	s.log.Info("backup exported", zap.String("user_id", b.User.ID), zap.Int("bytes", len(data)))
	return url, nil
}
