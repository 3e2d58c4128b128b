// Package storage persists uploaded audio files on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// AudioStore saves uploaded audio blobs and hands back the path that note
// records reference. Files are opaque to the engine; only the transcription
// client ever reads them back.
type AudioStore struct {
	dir    string
	logger *zap.Logger
}

// NewAudioStore creates the store, creating the upload directory if needed.
func NewAudioStore(dir string, logger *zap.Logger) (*AudioStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &AudioStore{dir: dir, logger: logger.Named("storage")}, nil
}

// Save writes the audio stream under a unique generated name, keeping the
// original file's extension, and returns the stored path.
func (s *AudioStore) Save(audio io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("audio-%d-%d%s", time.Now().UnixNano(), rand.Intn(1_000_000_000), filepath.Ext(originalName))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}

	if _, err := io.Copy(f, audio); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close audio file: %w", err)
	}

	s.logger.Debug("Audio stored", zap.String("path", path))
	return path, nil
}

// Open returns a reader over a previously stored audio file.
func (s *AudioStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	return f, nil
}
