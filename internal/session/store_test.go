package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lshigami/Tamarin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() model.User {
	return model.User{ID: "u1", Email: "s1@example.com", FullName: "Student One", Role: "student"}
}

func TestLoginPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewStore(path)
	assert.False(t, s.LoggedIn())
	require.NoError(t, s.Login(testUser(), "tok-1"))
	assert.Equal(t, "tok-1", s.Token())

	// A new store over the same file restores the identity.
	reloaded := NewStore(path)
	assert.True(t, reloaded.LoggedIn())
	assert.Equal(t, "tok-1", reloaded.Token())
	user, ok := reloaded.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "s1@example.com", user.Email)
}

func TestExpiredSessionIsDiscardedOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewStore(path)
	s.now = func() time.Time { return time.Now().Add(-2 * TTL) }
	require.NoError(t, s.Login(testUser(), "tok-old"))

	reloaded := NewStore(path)
	assert.False(t, reloaded.LoggedIn())
	assert.Empty(t, reloaded.Token())
	_, ok := reloaded.CurrentUser()
	assert.False(t, ok)
}

func TestExpiryAppliesToLiveStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)
	require.NoError(t, s.Login(testUser(), "tok-1"))

	s.now = func() time.Time { return time.Now().Add(2 * TTL) }
	assert.Empty(t, s.Token())
	assert.False(t, s.LoggedIn())
}

func TestLogoutRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)
	require.NoError(t, s.Login(testUser(), "tok-1"))
	require.NoError(t, s.Logout())

	assert.False(t, s.LoggedIn())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Logging out twice is harmless.
	require.NoError(t, s.Logout())
}

func TestMalformedFileStartsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(path)
	assert.False(t, s.LoggedIn())
}

func TestUpdateUserKeepsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)

	assert.Error(t, s.UpdateUser(testUser()))

	require.NoError(t, s.Login(testUser(), "tok-1"))
	updated := testUser()
	updated.FullName = "Student Renamed"
	require.NoError(t, s.UpdateUser(updated))

	assert.Equal(t, "tok-1", s.Token())
	user, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Student Renamed", user.FullName)
}
