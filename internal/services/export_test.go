package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

type recordingUploader struct {
	data     []byte
	folder   string
	publicID string
	err      error
}

func (u *recordingUploader) UploadRaw(_ context.Context, data []byte, folder, publicID string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.data, u.folder, u.publicID = data, folder, publicID
	return "https://cdn.example.com/" + folder + "/" + publicID, nil
}

func signedInWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ctx := context.Background()
	ws := newTestWorkspace(t, database.NewMemoryStore(), false)
	_, err := ws.Identity.Login(ctx, "test@example.com", "x")
	require.NoError(t, err)
	_, err = ws.Moods.AddOrUpdateToday(ctx, models.MoodGood, "fine")
	require.NoError(t, err)
	_, err = ws.Journal.Add(ctx, "Day one", "Started", []string{"start"})
	require.NoError(t, err)
	return ws
}

func TestBuildBackup(t *testing.T) {
	ws := signedInWorkspace(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	b, err := BuildBackup(ws, now)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", b.User.Email)
	assert.Len(t, b.MoodEntries, 1)
	assert.Len(t, b.JournalEntries, 1)
	require.NotNil(t, b.Insights)
	assert.Equal(t, 1, b.Insights.Total)
	assert.Equal(t, now, b.ExportedAt)

	require.NoError(t, ws.Identity.Logout(context.Background()))
	_, err = BuildBackup(ws, now)
	assert.True(t, IsAuth(err))
}

func TestExportService_Export(t *testing.T) {
	ws := signedInWorkspace(t)
	up := &recordingUploader{}
	svc := NewExportService(up, "serenify/backups", nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	url, err := svc.Export(context.Background(), ws)
	require.NoError(t, err)

	uid := ws.Identity.CurrentUserID()
	assert.Equal(t, uid+"-20240501T123000Z", up.publicID)
	assert.Equal(t, "serenify/backups", up.folder)
	assert.Equal(t, "https://cdn.example.com/serenify/backups/"+up.publicID, url)

	var decoded Backup
	require.NoError(t, json.Unmarshal(up.data, &decoded))
	assert.Equal(t, uid, decoded.User.ID)
	assert.Equal(t, []string{"start"}, decoded.JournalEntries[0].Tags)
}

func TestExportService_Errors(t *testing.T) {
	ws := signedInWorkspace(t)

	_, err := NewExportService(nil, "x", nil).Export(context.Background(), ws)
	assert.Error(t, err)

	boom := errors.New("upload failed")
	_, err = NewExportService(&recordingUploader{err: boom}, "x", nil).Export(context.Background(), ws)
	assert.ErrorIs(t, err, boom)
}
