package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"mediagrab-server/internal/config"
	"mediagrab-server/internal/domain/download"
	"mediagrab-server/internal/infrastructure/metrics"
)

// ArtifactStore owns the scratch directory where finished downloads wait for
// retrieval.
type ArtifactStore struct {
	root string
	log  zerolog.Logger
}

// NewArtifactStore creates the scratch directory if needed and sweeps
// leftovers from previous runs.
func NewArtifactStore(cfg *config.Config, log zerolog.Logger) (*ArtifactStore, error) {
	logger := log.With().Str("component", "artifact-store").Logger()

	if err := os.MkdirAll(cfg.DownloadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create downloads directory: %w", err)
	}

	store := &ArtifactStore{
		root: cfg.DownloadsDir,
		log:  logger,
	}

	if removed := store.Evict(cfg.MaxFileAge); removed > 0 {
		logger.Info().Int("removed", removed).Msg("startup sweep removed stale artifacts")
	}

	logger.Info().Str("path", store.root).Msg("artifact store initialized")
	return store, nil
}

// Root returns the scratch directory path.
func (s *ArtifactStore) Root() string {
	return s.root
}

// Put moves a finished download to its final name inside the scratch
// directory. An existing file under the same name is deleted first; last
// writer wins.
func (s *ArtifactStore) Put(sourcePath, desiredName string) (*download.Artifact, error) {
	name := download.Sanitize(desiredName)
	if name == "" {
		name = download.FallbackName()
	}

	finalPath := filepath.Join(s.root, name)
	if finalPath != sourcePath {
		if _, err := os.Stat(finalPath); err == nil {
			if err := os.Remove(finalPath); err != nil {
				return nil, fmt.Errorf("failed to replace existing artifact: %w", err)
			}
		}
		if err := os.Rename(sourcePath, finalPath); err != nil {
			return nil, fmt.Errorf("failed to move artifact into place: %w", err)
		}
	}

	stat, err := os.Stat(finalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat stored artifact: %w", err)
	}

	contentType := "application/octet-stream"
	if mtype, err := mimetype.DetectFile(finalPath); err == nil {
		contentType = mtype.String()
	}
	s.log.Debug().
		Str("name", name).
		Str("content_type", contentType).
		Int64("bytes", stat.Size()).
		Msg("artifact stored")

	return &download.Artifact{
		StoredPath:  finalPath,
		DisplayName: name,
		SizeBytes:   stat.Size(),
		CreatedAt:   stat.ModTime(),
	}, nil
}

// Resolve maps a client supplied name to a stored path. The name is
// sanitized before lookup, so traversal sequences cannot escape the
// directory; existence is the only authorization check.
func (s *ArtifactStore) Resolve(name string) (string, string, error) {
	clean := download.Sanitize(name)
	if clean == "" {
		return "", "", download.NewError(download.CodeNotFound, "File not found")
	}
	path := filepath.Join(s.root, clean)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", "", download.NewError(download.CodeNotFound, "File not found")
	}
	return path, clean, nil
}

// LocateByPrefix returns the newest regular file whose name starts with
// prefix.
func (s *ArtifactStore) LocateByPrefix(prefix string) (string, bool) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return "", false
	}

	var (
		newest    string
		newestMod time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(s.root, entry.Name())
			newestMod = info.ModTime()
		}
	}
	return newest, newest != ""
}

// LocateRecent returns the most recently modified regular file written
// within the window. Best effort; concurrent jobs can race this fallback.
func (s *ArtifactStore) LocateRecent(window time.Duration) (string, bool) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return "", false
	}

	cutoff := time.Now().Add(-window)
	var (
		newest    string
		newestMod time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(s.root, entry.Name())
			newestMod = info.ModTime()
		}
	}
	return newest, newest != ""
}

// Evict removes regular files whose modification time is older than maxAge.
// Failures are logged and skipped; the sweep never fails the caller.
func (s *ArtifactStore) Evict(maxAge time.Duration) int {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.log.Warn().Err(err).Msg("eviction sweep could not read downloads directory")
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.root, entry.Name())); err != nil {
			s.log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to evict stale artifact")
			continue
		}
		s.log.Info().Str("file", entry.Name()).Msg("deleted old file")
		removed++
	}

	metrics.RecordEviction(removed)
	return removed
}
