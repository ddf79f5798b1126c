package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mediagrab-server/internal/config"
	"mediagrab-server/internal/domain/download"
	"mediagrab-server/internal/infrastructure/metrics"
)

// YTDLP drives the external yt-dlp binary. The binary is the source of truth
// for extraction; this adapter only shapes arguments and classifies failures.
type YTDLP struct {
	binPath         string
	ffmpegAvailable bool
	log             zerolog.Logger
}

// New builds the adapter. ffmpeg availability is probed once here and cached
// for the process lifetime; a tool installed later is not picked up until
// restart.
func New(cfg *config.Config, log zerolog.Logger) *YTDLP {
	_, err := exec.LookPath(cfg.FFmpegPath)
	adapter := &YTDLP{
		binPath:         cfg.YTDLPPath,
		ffmpegAvailable: err == nil,
		log:             log.With().Str("component", "ytdlp").Logger(),
	}
	adapter.log.Info().
		Str("bin", adapter.binPath).
		Bool("ffmpeg", adapter.ffmpegAvailable).
		Msg("extraction engine configured")
	return adapter
}

// FFmpegAvailable reports whether post-processing is possible.
func (y *YTDLP) FFmpegAvailable() bool {
	return y.ffmpegAvailable
}

// Probe runs a metadata-only extraction and decodes the JSON dump.
func (y *YTDLP) Probe(ctx context.Context, url string, opts download.ProbeOptions) (*download.MediaInfo, error) {
	start := time.Now()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, y.binPath, probeArgs(url, opts)...)
	out, err := cmd.Output()
	if err != nil {
		metrics.RecordEngineOperation("probe", "error", time.Since(start).Seconds())
		return nil, y.classifyFailure(ctx, err)
	}
	metrics.RecordEngineOperation("probe", "success", time.Since(start).Seconds())

	info, err := decodeProbeOutput(out)
	if err != nil {
		return nil, download.NewError(download.CodeExtraction, "engine returned malformed metadata").WithCause(err)
	}
	return info, nil
}

// Fetch runs a download. The produced file path is best effort: yt-dlp
// expands the output template itself, so the adapter globs for the written
// file afterwards and leaves final location to the caller when nothing
// matches.
func (y *YTDLP) Fetch(ctx context.Context, url string, opts download.FetchOptions) (*download.FetchResult, error) {
	start := time.Now()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, y.binPath, fetchArgs(url, opts)...)
	if _, err := cmd.Output(); err != nil {
		metrics.RecordEngineOperation("fetch", "error", time.Since(start).Seconds())
		return nil, y.classifyFailure(ctx, err)
	}
	metrics.RecordEngineOperation("fetch", "success", time.Since(start).Seconds())

	return &download.FetchResult{Path: locateOutput(opts.OutputTemplate)}, nil
}

func probeArgs(url string, opts download.ProbeOptions) []string {
	args := []string{"-J", "--no-warnings"}
	if opts.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	if opts.SocketTimeout > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(int(opts.SocketTimeout.Seconds())))
	}
	if opts.Retries > 0 {
		args = append(args, "--retries", strconv.Itoa(opts.Retries))
	}
	args = appendHeaderArgs(args, opts.Headers)
	return append(args, url)
}

func fetchArgs(url string, opts download.FetchOptions) []string {
	args := []string{"-f", opts.FormatSelector, "-o", opts.OutputTemplate, "--no-warnings", "--quiet"}
	if opts.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	if opts.ExtractAudio {
		args = append(args, "--extract-audio", "--audio-format", opts.AudioFormat)
		if opts.AudioQuality != "" {
			args = append(args, "--audio-quality", opts.AudioQuality)
		}
	}
	if opts.MergeContainer != "" {
		args = append(args, "--merge-output-format", opts.MergeContainer)
	}
	if opts.ExtractorArgs != "" {
		args = append(args, "--extractor-args", opts.ExtractorArgs)
	}
	if opts.SocketTimeout > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(int(opts.SocketTimeout.Seconds())))
	}
	if opts.Retries > 0 {
		args = append(args, "--retries", strconv.Itoa(opts.Retries))
	}
	args = appendHeaderArgs(args, opts.Headers)
	return append(args, url)
}

// appendHeaderArgs emits --add-header flags in sorted key order so argument
// lists stay deterministic.
func appendHeaderArgs(args []string, headers map[string]string) []string {
	if len(headers) == 0 {
		return args
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--add-header", k+":"+headers[k])
	}
	return args
}

// locateOutput globs for the file written under the template. Everything
// from the first engine placeholder on is unknown, so match the literal
// prefix; the newest match wins.
func locateOutput(template string) string {
	prefix := template
	if i := strings.Index(template, "%("); i >= 0 {
		prefix = template[:i]
	}
	matches, err := filepath.Glob(prefix + "*")
	if err != nil || len(matches) == 0 {
		return ""
	}
	if len(matches) == 1 {
		return matches[0]
	}

	newest := ""
	var newestMod time.Time
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = match
			newestMod = info.ModTime()
		}
	}
	return newest
}

func (y *YTDLP) classifyFailure(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return download.NewError(download.CodeNetwork, "engine timed out").WithCause(ctx.Err())
	}
	if errors.Is(err, exec.ErrNotFound) {
		return download.NewError(download.CodeExtraction, "extraction engine is not installed").WithCause(err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		line := lastStderrLine(exitErr.Stderr)
		y.log.Debug().Str("stderr", line).Msg("engine exited with error")
		return classifyStderr(line).WithCause(err)
	}
	return download.NewError(download.CodeExtraction, "engine invocation failed").WithCause(err)
}

// classifyStderr maps the engine's final diagnostic line onto the error
// taxonomy. The message is passed through for diagnosability.
func classifyStderr(line string) *download.Error {
	if line == "" {
		return download.NewError(download.CodeExtraction, "engine invocation failed")
	}
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "requested format is not available"):
		return download.NewError(download.CodeUnsupportedFormat, line)
	case strings.Contains(lower, "unsupported url"),
		strings.Contains(lower, "is not a valid url"):
		return download.NewError(download.CodeExtraction, line)
	case strings.Contains(lower, "unable to download"),
		strings.Contains(lower, "timed out"),
		strings.Contains(lower, "temporary failure"),
		strings.Contains(lower, "connection"):
		return download.NewError(download.CodeNetwork, line)
	default:
		return download.NewError(download.CodeExtraction, line)
	}
}

// lastStderrLine returns the last non-empty stderr line with the engine's
// ERROR prefix stripped.
func lastStderrLine(stderr []byte) string {
	lines := strings.Split(string(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		return strings.TrimPrefix(line, "ERROR: ")
	}
	return ""
}

type probePayload struct {
	Title          string        `json:"title"`
	Duration       float64       `json:"duration"`
	DurationString string        `json:"duration_string"`
	Thumbnail      string        `json:"thumbnail"`
	Formats        []probeFormat `json:"formats"`
}

type probeFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Resolution     string  `json:"resolution"`
	Height         int     `json:"height"`
	Filesize       float64 `json:"filesize"`
	FilesizeApprox float64 `json:"filesize_approx"`
	Vcodec         string  `json:"vcodec"`
	Acodec         string  `json:"acodec"`
	FormatNote     string  `json:"format_note"`
}

// decodeProbeOutput maps the engine's JSON dump onto the domain model,
// normalizing the fields the engine leaves null or empty.
func decodeProbeOutput(data []byte) (*download.MediaInfo, error) {
	var payload probePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	info := &download.MediaInfo{
		Title:     payload.Title,
		Duration:  payload.DurationString,
		Thumbnail: payload.Thumbnail,
	}
	if info.Title == "" {
		info.Title = "Unknown"
	}
	if info.Duration == "" && payload.Duration > 0 {
		info.Duration = strconv.FormatFloat(payload.Duration, 'f', -1, 64)
	}

	for _, f := range payload.Formats {
		size := int64(f.Filesize)
		if size == 0 {
			size = int64(f.FilesizeApprox)
		}
		format := download.Format{
			ID:         f.FormatID,
			Ext:        f.Ext,
			Resolution: f.Resolution,
			Filesize:   size,
			Vcodec:     f.Vcodec,
			Acodec:     f.Acodec,
			Note:       f.FormatNote,
		}
		if format.Vcodec == "" {
			format.Vcodec = "none"
		}
		if format.Acodec == "" {
			format.Acodec = "none"
		}
		if format.Resolution == "" && f.Height > 0 {
			format.Resolution = fmt.Sprintf("%dp", f.Height)
		}
		info.Formats = append(info.Formats, format)
	}
	return info, nil
}
