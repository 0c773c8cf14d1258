package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, now *time.Time) *Gate {
	t.Helper()
	g := &Gate{
		path: filepath.Join(t.TempDir(), recordName),
		now:  func() time.Time { return *now },
	}
	g.load()
	return g
}

func TestAnonymousByDefault(t *testing.T) {
	now := time.Now()
	g := newTestGate(t, &now)
	assert.False(t, g.IsAdmin())
}

func TestLoginPersistsRecord(t *testing.T) {
	now := time.Now()
	g := newTestGate(t, &now)

	require.NoError(t, g.Login())
	assert.True(t, g.IsAdmin())

	data, err := os.ReadFile(g.path)
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.True(t, rec.Authenticated)
	assert.Equal(t, now.UnixMilli(), rec.Timestamp)
}

func TestExpiryBoundary(t *testing.T) {
	start := time.Now()
	now := start
	g := newTestGate(t, &now)
	require.NoError(t, g.Login())

	now = start.Add(23*time.Hour + 59*time.Minute)
	assert.True(t, g.IsAdmin())

	now = start.Add(24*time.Hour + time.Minute)
	assert.False(t, g.IsAdmin())

	// The expired record is cleared, not merely ignored.
	_, err := os.Stat(g.path)
	assert.True(t, os.IsNotExist(err))
}

func TestExpiryCheckedOnEveryRead(t *testing.T) {
	start := time.Now()
	now := start
	g := newTestGate(t, &now)
	require.NoError(t, g.Login())
	assert.True(t, g.IsAdmin())

	// No reload in between: the same gate flips on its own once expired.
	now = start.Add(25 * time.Hour)
	assert.False(t, g.IsAdmin())
}

func TestLoadClearsExpiredRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, recordName)

	stale := Record{Authenticated: true, Timestamp: time.Now().Add(-25 * time.Hour).UnixMilli()}
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	g := NewGate(dir)
	assert.False(t, g.IsAdmin())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadRestoresFreshRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, recordName)

	fresh := Record{Authenticated: true, Timestamp: time.Now().Add(-time.Hour).UnixMilli()}
	data, err := json.Marshal(fresh)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	g := NewGate(dir)
	assert.True(t, g.IsAdmin())
}

func TestLoadDropsCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, recordName)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	g := NewGate(dir)
	assert.False(t, g.IsAdmin())
}

func TestLogoutClearsFlagAndRecord(t *testing.T) {
	now := time.Now()
	g := newTestGate(t, &now)
	require.NoError(t, g.Login())
	require.True(t, g.IsAdmin())

	require.NoError(t, g.Logout())
	assert.False(t, g.IsAdmin())

	_, err := os.Stat(g.path)
	assert.True(t, os.IsNotExist(err))

	// Logout when already anonymous is fine.
	assert.NoError(t, g.Logout())
}
