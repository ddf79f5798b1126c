package download

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mediagrab-server/internal/config"
	"mediagrab-server/utils/jobid"
)

// Reserved format_id aliases. Real engine format ids are numeric tokens, so
// these never collide with one.
const (
	AliasMP3   = "mp3"
	AliasM4A   = "m4a"
	AliasBest  = "best"
	AliasWorst = "worst"
)

const (
	maxVideoFormats = 15
	maxAudioFormats = 10

	// recentWindow bounds the mtime fallback used when a finished fetch
	// cannot be matched back to its job id.
	recentWindow = 5 * time.Minute
)

// Engine is the boundary to the external extraction tool.
type Engine interface {
	Probe(ctx context.Context, url string, opts ProbeOptions) (*MediaInfo, error)
	Fetch(ctx context.Context, url string, opts FetchOptions) (*FetchResult, error)
	FFmpegAvailable() bool
}

// ArtifactStore owns the scratch directory holding finished downloads.
type ArtifactStore interface {
	Put(sourcePath, desiredName string) (*Artifact, error)
	Resolve(name string) (path string, cleanName string, err error)
	LocateByPrefix(prefix string) (string, bool)
	LocateRecent(window time.Duration) (string, bool)
	Evict(maxAge time.Duration) int
	Root() string
}

// Service exposes the download pipeline operations.
type Service interface {
	Analyze(ctx context.Context, rawURL string) (*MediaInfo, error)
	ListFormats(ctx context.Context, rawURL string) (*FormatListing, error)
	Download(ctx context.Context, rawURL, formatID string) (*DownloadResult, error)
	ResolveArtifact(name string) (path string, cleanName string, err error)
	Health() HealthStatus
	Platforms() []string
}

// DefaultService implements Service over an Engine and an ArtifactStore.
type DefaultService struct {
	cfg    *config.Config
	engine Engine
	store  ArtifactStore
	log    zerolog.Logger
}

func NewService(cfg *config.Config, engine Engine, store ArtifactStore, log zerolog.Logger) Service {
	return &DefaultService{
		cfg:    cfg,
		engine: engine,
		store:  store,
		log:    log.With().Str("component", "download-service").Logger(),
	}
}

// Analyze probes a URL for metadata. Unlike ListFormats it requires the URL
// to belong to a supported platform.
func (s *DefaultService) Analyze(ctx context.Context, rawURL string) (*MediaInfo, error) {
	cls, err := ClassifyURL(rawURL)
	if err != nil {
		return nil, err
	}
	if !cls.Matched {
		return nil, NewError(CodeUnsupportedPlatform, "Unsupported platform")
	}
	return s.engine.Probe(ctx, cls.URL, s.probeOptions())
}

// ListFormats probes a URL and partitions the reported encodings into video
// and audio subsets. Any host is accepted here.
func (s *DefaultService) ListFormats(ctx context.Context, rawURL string) (*FormatListing, error) {
	cls, err := ClassifyURL(rawURL)
	if err != nil {
		return nil, err
	}
	info, err := s.engine.Probe(ctx, cls.URL, s.probeOptions())
	if err != nil {
		return nil, err
	}

	listing := &FormatListing{Info: info}
	for _, f := range info.Formats {
		switch {
		case f.HasVideo():
			listing.Video = append(listing.Video, f)
		case f.HasAudio():
			listing.Audio = append(listing.Audio, f)
		}
	}
	if len(listing.Video) > maxVideoFormats {
		listing.Video = listing.Video[:maxVideoFormats]
	}
	if len(listing.Audio) > maxAudioFormats {
		listing.Audio = listing.Audio[:maxAudioFormats]
	}
	return listing, nil
}

// Download runs one job end to end: evict stale artifacts, classify the URL,
// probe for naming metadata, fetch, locate the produced file, and move it to
// its final name. The fetch runs detached from the request context so a
// client disconnect does not abort the transfer.
func (s *DefaultService) Download(ctx context.Context, rawURL, formatID string) (*DownloadResult, error) {
	s.store.Evict(s.cfg.MaxFileAge)

	if strings.TrimSpace(rawURL) == "" || strings.TrimSpace(formatID) == "" {
		return nil, NewError(CodeInvalidInput, "url & format_id required")
	}
	cls, err := ClassifyURL(rawURL)
	if err != nil {
		return nil, err
	}

	id := jobid.New()
	template := filepath.Join(s.store.Root(), id+"_%(title)s.%(ext)s")
	opts, err := s.fetchOptions(formatID, template)
	if err != nil {
		return nil, err
	}

	info, probeErr := s.engine.Probe(ctx, cls.URL, s.probeOptions())
	if probeErr != nil {
		s.log.Debug().Err(probeErr).Str("job_id", id).Msg("metadata probe failed, naming from engine output")
	}

	res, err := s.engine.Fetch(context.Background(), cls.URL, opts)
	if err != nil {
		return nil, err
	}

	located := ""
	if res != nil {
		located = res.Path
	}
	if located == "" {
		located, _ = s.store.LocateByPrefix(id)
	}
	if located == "" {
		if path, ok := s.store.LocateRecent(recentWindow); ok {
			s.log.Warn().Str("job_id", id).Str("path", path).Msg("job output matched by mtime fallback")
			located = path
		}
	}
	if located == "" {
		return nil, NewError(CodeArtifactMissing, "downloaded file could not be located")
	}

	art, err := s.store.Put(located, s.displayName(id, formatID, located, info))
	if err != nil {
		return nil, err
	}
	art.UniqueID = id

	s.log.Info().
		Str("job_id", id).
		Str("platform", cls.Platform).
		Str("filename", art.DisplayName).
		Int64("bytes", art.SizeBytes).
		Msg("download complete")

	return &DownloadResult{
		Artifact:    art,
		DownloadURL: "/api/download-file/" + art.DisplayName,
		Platform:    cls.Platform,
	}, nil
}

// ResolveArtifact maps a client supplied filename to a path inside the
// scratch directory. The name is sanitized before lookup, so traversal
// sequences cannot escape the directory.
func (s *DefaultService) ResolveArtifact(name string) (string, string, error) {
	return s.store.Resolve(name)
}

func (s *DefaultService) Health() HealthStatus {
	return HealthStatus{
		Status:          "healthy",
		FFmpegAvailable: s.engine.FFmpegAvailable(),
		Platforms:       SupportedPlatforms(),
	}
}

func (s *DefaultService) Platforms() []string {
	return SupportedPlatforms()
}

// displayName builds the final artifact name: job id, sanitized title, a
// resolution suffix when the chosen encoding is a known video format, and
// the extension the engine actually produced.
func (s *DefaultService) displayName(id, formatID, locatedPath string, info *MediaInfo) string {
	ext := filepath.Ext(locatedPath)
	base := strings.TrimSuffix(filepath.Base(locatedPath), ext)

	title := strings.TrimPrefix(base, id+"_")
	if info != nil && info.Title != "" {
		title = info.Title
	}
	title = Sanitize(title)
	if title == "" {
		title = FallbackName()
	}

	suffix := ""
	if info != nil && !isReservedAlias(formatID) {
		for _, f := range info.Formats {
			if f.ID == formatID && f.HasVideo() && f.Resolution != "" {
				suffix = " [" + f.Resolution + "]"
				break
			}
		}
	}

	return id + "_" + title + suffix + ext
}

func (s *DefaultService) probeOptions() ProbeOptions {
	return ProbeOptions{
		NoPlaylist:    true,
		SocketTimeout: s.cfg.SocketTimeout,
		Retries:       s.cfg.EngineRetries,
		Timeout:       s.cfg.ProbeTimeout,
	}
}

// fetchOptions maps a caller format_id to engine options. Reserved aliases
// expand to fixed selector expressions; anything else passes through verbatim
// and the engine stays the source of truth on validity.
func (s *DefaultService) fetchOptions(formatID, template string) (FetchOptions, error) {
	opts := FetchOptions{
		FormatSelector: formatID,
		OutputTemplate: template,
		NoPlaylist:     true,
		SocketTimeout:  s.cfg.SocketTimeout,
		Retries:        s.cfg.EngineRetries,
		Timeout:        s.cfg.FetchTimeout,
	}

	switch formatID {
	case AliasMP3:
		if !s.engine.FFmpegAvailable() {
			return FetchOptions{}, NewError(CodeUnsupportedFormat, "mp3 conversion requires ffmpeg")
		}
		opts.FormatSelector = "bestaudio/best"
		opts.ExtractAudio = true
		opts.AudioFormat = "mp3"
		opts.AudioQuality = "0"
	case AliasM4A:
		opts.FormatSelector = "bestaudio[ext=m4a]/bestaudio/best"
	case AliasBest:
		if s.engine.FFmpegAvailable() {
			opts.FormatSelector = "bestvideo+bestaudio/best"
			opts.MergeContainer = "mp4"
		} else {
			opts.FormatSelector = "best"
		}
	case AliasWorst:
		opts.FormatSelector = "worst"
	}
	return opts, nil
}

func isReservedAlias(formatID string) bool {
	switch formatID {
	case AliasMP3, AliasM4A, AliasBest, AliasWorst:
		return true
	}
	return false
}
