package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// FileStore keeps the date as the whole content of a single file.
type FileStore struct {
	Path string
}

func (s *FileStore) path() string {
	if s.Path == "" {
		return DefaultPath
	}
	return s.Path
}

func (s *FileStore) Read(_ context.Context) (string, bool) {
	b, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", s.path()).Msg("tracking file not found; assuming first run")
		return "", false
	}
	if err != nil {
		log.Error().Err(err).Str("path", s.path()).Msg("read tracking file")
		return "", false
	}
	date := strings.TrimSpace(string(b))
	log.Info().Str("date", date).Str("path", s.path()).Msg("read last processed date")
	return date, true
}

// Write creates the parent directory when needed and replaces the file
// atomically.
func (s *FileStore) Write(_ context.Context, date string) error {
	p := s.path()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create tracking dir: %w", err)
	}
	log.Info().Str("date", date).Str("path", p).Msg("writing last processed date")
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(date), 0o644); err != nil {
		return fmt.Errorf("write tracking file: %w", err)
	}
	return os.Rename(tmp, p)
}
