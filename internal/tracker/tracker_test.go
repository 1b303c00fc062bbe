package tracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_FirstRunHasNoDate(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "last_vote_day.txt")}
	_, ok := s.Read(context.Background())
	require.False(t, ok)
}

func TestFileStore_WriteCreatesDirAndRoundTrips(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "data", "last_vote_day.txt")
	s := &FileStore{Path: p}
	require.NoError(t, s.Write(context.Background(), "2024-01-02"))

	got, ok := s.Read(context.Background())
	require.True(t, ok)
	require.Equal(t, "2024-01-02", got)

	require.NoError(t, s.Write(context.Background(), "2024-01-03"))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "2024-01-03", string(b))
	_, err = os.Stat(p + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	p := filepath.Join(t.TempDir(), "d.txt")
	require.NoError(t, os.WriteFile(p, []byte("2024-01-02\n"), 0o644))
	got, ok := (&FileStore{Path: p}).Read(context.Background())
	require.True(t, ok)
	require.Equal(t, "2024-01-02", got)
}

func TestFileStore_DefaultPath(t *testing.T) {
	require.Equal(t, DefaultPath, (&FileStore{}).path())
}

func TestNewRedisStore(t *testing.T) {
	s, err := NewRedisStore("redis://localhost:6379/2", "")
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, DefaultRedisKey, s.key)

	_, err = NewRedisStore("not-a-url://", "k")
	require.Error(t, err)
}
