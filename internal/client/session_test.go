package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSaveAndRestore(t *testing.T) {
	store := NewSessionStore(t.TempDir())

	session := Session{
		Token: "header.payload.signature",
		User:  User{Username: "wh33les", Name: "Ashley"},
	}
	require.NoError(t, store.Save(session))

	restored := store.Restore()
	require.NotNil(t, restored)
	assert.Equal(t, session, *restored)
}

func TestSessionRestoreWithoutFiles(t *testing.T) {
	store := NewSessionStore(t.TempDir())
	assert.Nil(t, store.Restore())
}

func TestSessionRestoreMissingUserFile(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin_token"), []byte("tok"), 0o600))

	assert.Nil(t, store.Restore())
}

func TestSessionRestoreCorruptUserClearsBoth(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin_token"), []byte("tok"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin_user"), []byte("{not json"), 0o600))

	assert.Nil(t, store.Restore())

	_, err := os.Stat(filepath.Join(dir, "admin_token"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "admin_user"))
	assert.True(t, os.IsNotExist(err))
}

func TestSessionRestoreEmptyTokenClearsBoth(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin_token"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin_user"), []byte(`{"username":"a","name":"b"}`), 0o600))

	assert.Nil(t, store.Restore())

	_, err := os.Stat(filepath.Join(dir, "admin_token"))
	assert.True(t, os.IsNotExist(err))
}

func TestSessionClear(t *testing.T) {
	store := NewSessionStore(t.TempDir())
	require.NoError(t, store.Save(Session{Token: "tok", User: User{Username: "a"}}))

	store.Clear()
	assert.Nil(t, store.Restore())

	// Clearing an already empty store is fine.
	store.Clear()
}

func TestSessionTokenFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)
	require.NoError(t, store.Save(Session{Token: "tok", User: User{Username: "a"}}))

	info, err := os.Stat(filepath.Join(dir, "admin_token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
