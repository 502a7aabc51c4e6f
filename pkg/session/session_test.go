package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	_, err := store.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "token", []byte(`"abc"`)))
	got, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.JSONEq(t, `"abc"`, string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a second store sees the same data
	got, err = NewFileStore(path).Get(ctx, "token")
	require.NoError(t, err)
	assert.JSONEq(t, `"abc"`, string(got))

	require.NoError(t, store.Delete(ctx, "token"))
	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.Delete(ctx, "never-set"))
}

func TestSessionSaveAndClear(t *testing.T) {
	ctx := context.Background()
	s := New(NewFileStore(filepath.Join(t.TempDir(), "session.json")))

	assert.False(t, s.IsAuthenticated(ctx))
	assert.Equal(t, "", s.Token(ctx))

	user := User{ID: "u-1", Username: "jane", Email: "jane@example.com", Role: "ADMIN"}
	require.NoError(t, s.Save(ctx, user, "tok"))

	got, ok := s.User(ctx)
	require.True(t, ok)
	assert.Equal(t, user, *got)
	assert.True(t, got.IsStaff())
	assert.Equal(t, "tok", s.Token(ctx))

	require.NoError(t, s.Clear(ctx))
	assert.False(t, s.IsAuthenticated(ctx))
	assert.Equal(t, "", s.Token(ctx))
}

func TestCorruptUserMeansSignedOut(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Set(ctx, keyUser, []byte(`"not an object"`)))

	user, ok := New(store).User(ctx)
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestCorruptFileIsReplaced(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{garbage"), 0o600))

	store := NewFileStore(path)
	_, err := store.Get(ctx, keyUser)
	assert.Error(t, err)

	require.NoError(t, store.Set(ctx, keyToken, []byte(`"fresh"`)))
	assert.Equal(t, "fresh", New(store).Token(ctx))
}
