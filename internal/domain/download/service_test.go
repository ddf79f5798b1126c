package download

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mediagrab-server/internal/config"
)

type mockEngine struct {
	probeFunc func(ctx context.Context, url string, opts ProbeOptions) (*MediaInfo, error)
	fetchFunc func(ctx context.Context, url string, opts FetchOptions) (*FetchResult, error)
	ffmpeg    bool
}

func (m *mockEngine) Probe(ctx context.Context, url string, opts ProbeOptions) (*MediaInfo, error) {
	if m.probeFunc != nil {
		return m.probeFunc(ctx, url, opts)
	}
	return &MediaInfo{Title: "Unknown"}, nil
}

func (m *mockEngine) Fetch(ctx context.Context, url string, opts FetchOptions) (*FetchResult, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url, opts)
	}
	return &FetchResult{}, nil
}

func (m *mockEngine) FFmpegAvailable() bool {
	return m.ffmpeg
}

type mockStore struct {
	putFunc          func(sourcePath, desiredName string) (*Artifact, error)
	resolveFunc      func(name string) (string, string, error)
	locatePrefixFunc func(prefix string) (string, bool)
	locateRecentFunc func(window time.Duration) (string, bool)
	evictFunc        func(maxAge time.Duration) int
	root             string
}

func (m *mockStore) Put(sourcePath, desiredName string) (*Artifact, error) {
	if m.putFunc != nil {
		return m.putFunc(sourcePath, desiredName)
	}
	return &Artifact{
		StoredPath:  filepath.Join(m.Root(), desiredName),
		DisplayName: desiredName,
		SizeBytes:   42,
		CreatedAt:   time.Now(),
	}, nil
}

func (m *mockStore) Resolve(name string) (string, string, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(name)
	}
	return "", "", NewError(CodeNotFound, "File not found")
}

func (m *mockStore) LocateByPrefix(prefix string) (string, bool) {
	if m.locatePrefixFunc != nil {
		return m.locatePrefixFunc(prefix)
	}
	return "", false
}

func (m *mockStore) LocateRecent(window time.Duration) (string, bool) {
	if m.locateRecentFunc != nil {
		return m.locateRecentFunc(window)
	}
	return "", false
}

func (m *mockStore) Evict(maxAge time.Duration) int {
	if m.evictFunc != nil {
		return m.evictFunc(maxAge)
	}
	return 0
}

func (m *mockStore) Root() string {
	if m.root != "" {
		return m.root
	}
	return "downloads"
}

func testConfig() *config.Config {
	return &config.Config{
		DownloadsDir:  "downloads",
		MaxFileAge:    time.Hour,
		ProbeTimeout:  time.Minute,
		FetchTimeout:  15 * time.Minute,
		SocketTimeout: 30 * time.Second,
		EngineRetries: 3,
	}
}

func newTestService(engine *mockEngine, store *mockStore) Service {
	return NewService(testConfig(), engine, store, zerolog.Nop())
}

func assertCode(t *testing.T, err error, code ErrorCode, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	derr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected classified error, got %v", err)
	}
	if derr.Code != code {
		t.Errorf("error code = %s, want %s", derr.Code, code)
	}
	if message != "" && derr.Message != message {
		t.Errorf("error message = %q, want %q", derr.Message, message)
	}
}

func TestAnalyze_RequiresSupportedPlatform(t *testing.T) {
	svc := newTestService(&mockEngine{}, &mockStore{})

	_, err := svc.Analyze(context.Background(), "https://example.org/video")
	assertCode(t, err, CodeUnsupportedPlatform, "Unsupported platform")
}

func TestAnalyze_EmptyURL(t *testing.T) {
	svc := newTestService(&mockEngine{}, &mockStore{})

	_, err := svc.Analyze(context.Background(), "  ")
	assertCode(t, err, CodeInvalidInput, "URL required")
}

func TestAnalyze_DefaultsScheme(t *testing.T) {
	var probedURL string
	engine := &mockEngine{
		probeFunc: func(_ context.Context, url string, _ ProbeOptions) (*MediaInfo, error) {
			probedURL = url
			return &MediaInfo{Title: "Clip"}, nil
		},
	}
	svc := newTestService(engine, &mockStore{})

	info, err := svc.Analyze(context.Background(), "youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if probedURL != "https://youtube.com/watch?v=abc" {
		t.Errorf("probed URL = %q, want scheme defaulted", probedURL)
	}
	if info.Title != "Clip" {
		t.Errorf("title = %q, want Clip", info.Title)
	}
}

func TestAnalyze_ProbeErrorPassesThrough(t *testing.T) {
	engine := &mockEngine{
		probeFunc: func(context.Context, string, ProbeOptions) (*MediaInfo, error) {
			return nil, NewError(CodeExtraction, "Video unavailable")
		},
	}
	svc := newTestService(engine, &mockStore{})

	_, err := svc.Analyze(context.Background(), "https://youtu.be/abc")
	assertCode(t, err, CodeExtraction, "Video unavailable")
}

func TestListFormats_PartitionsAndCaps(t *testing.T) {
	info := &MediaInfo{Title: "Clip"}
	for i := 0; i < 20; i++ {
		info.Formats = append(info.Formats, Format{ID: "v", Vcodec: "avc1", Acodec: "none"})
	}
	for i := 0; i < 12; i++ {
		info.Formats = append(info.Formats, Format{ID: "a", Vcodec: "none", Acodec: "mp4a.40.2"})
	}
	info.Formats = append(info.Formats, Format{ID: "storyboard", Vcodec: "none", Acodec: "none"})

	engine := &mockEngine{
		probeFunc: func(context.Context, string, ProbeOptions) (*MediaInfo, error) {
			return info, nil
		},
	}
	svc := newTestService(engine, &mockStore{})

	listing, err := svc.ListFormats(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("ListFormats() error = %v", err)
	}
	if len(listing.Video) != 15 {
		t.Errorf("video formats = %d, want 15", len(listing.Video))
	}
	if len(listing.Audio) != 10 {
		t.Errorf("audio formats = %d, want 10", len(listing.Audio))
	}
	for _, f := range listing.Video {
		if !f.HasVideo() {
			t.Errorf("video subset contains non-video format %+v", f)
		}
	}
	for _, f := range listing.Audio {
		if f.HasVideo() || !f.HasAudio() {
			t.Errorf("audio subset contains wrong format %+v", f)
		}
	}
}

func TestListFormats_AcceptsAnyHost(t *testing.T) {
	engine := &mockEngine{
		probeFunc: func(context.Context, string, ProbeOptions) (*MediaInfo, error) {
			return &MediaInfo{Title: "Elsewhere"}, nil
		},
	}
	svc := newTestService(engine, &mockStore{})

	listing, err := svc.ListFormats(context.Background(), "https://example.org/clip")
	if err != nil {
		t.Fatalf("ListFormats() error = %v", err)
	}
	if listing.Info.Title != "Elsewhere" {
		t.Errorf("title = %q, want Elsewhere", listing.Info.Title)
	}
}

func TestDownload_MissingFields(t *testing.T) {
	evictions := 0
	store := &mockStore{
		evictFunc: func(time.Duration) int {
			evictions++
			return 0
		},
	}
	svc := newTestService(&mockEngine{}, store)

	_, err := svc.Download(context.Background(), "", "22")
	assertCode(t, err, CodeInvalidInput, "url & format_id required")

	_, err = svc.Download(context.Background(), "https://youtu.be/abc", " ")
	assertCode(t, err, CodeInvalidInput, "url & format_id required")

	if evictions != 2 {
		t.Errorf("evictions = %d, want 2 (eviction runs before validation)", evictions)
	}
}

func TestDownload_Success(t *testing.T) {
	var mintedID string
	var fetchOpts FetchOptions
	var putDesired string

	engine := &mockEngine{
		probeFunc: func(context.Context, string, ProbeOptions) (*MediaInfo, error) {
			return &MediaInfo{
				Title: "Example: Video/Test",
				Formats: []Format{
					{ID: "22", Ext: "mp4", Resolution: "720p", Vcodec: "avc1", Acodec: "mp4a"},
				},
			}, nil
		},
		fetchFunc: func(_ context.Context, _ string, opts FetchOptions) (*FetchResult, error) {
			fetchOpts = opts
			return &FetchResult{}, nil
		},
	}
	store := &mockStore{
		locatePrefixFunc: func(prefix string) (string, bool) {
			mintedID = prefix
			return filepath.Join("downloads", prefix+"_Example Video.mp4"), true
		},
		putFunc: func(sourcePath, desiredName string) (*Artifact, error) {
			putDesired = desiredName
			return &Artifact{
				StoredPath:  filepath.Join("downloads", desiredName),
				DisplayName: desiredName,
				SizeBytes:   2048,
				CreatedAt:   time.Now(),
			}, nil
		},
	}
	svc := newTestService(engine, store)

	res, err := svc.Download(context.Background(), "https://youtu.be/abc", "22")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	if fetchOpts.FormatSelector != "22" {
		t.Errorf("format selector = %q, want 22", fetchOpts.FormatSelector)
	}
	if !strings.HasSuffix(fetchOpts.OutputTemplate, "_%(title)s.%(ext)s") {
		t.Errorf("output template = %q, want engine placeholder suffix", fetchOpts.OutputTemplate)
	}
	if !fetchOpts.NoPlaylist {
		t.Error("fetch options should set NoPlaylist")
	}

	want := mintedID + "_Example VideoTest [720p].mp4"
	if putDesired != want {
		t.Errorf("desired name = %q, want %q", putDesired, want)
	}
	if res.Platform != "youtube" {
		t.Errorf("platform = %q, want youtube", res.Platform)
	}
	if res.Artifact.UniqueID != mintedID {
		t.Errorf("artifact id = %q, want %q", res.Artifact.UniqueID, mintedID)
	}
	if res.DownloadURL != "/api/download-file/"+res.Artifact.DisplayName {
		t.Errorf("download URL = %q, want retrieval path for %q", res.DownloadURL, res.Artifact.DisplayName)
	}
	if res.Artifact.SizeBytes != 2048 {
		t.Errorf("size = %d, want 2048", res.Artifact.SizeBytes)
	}
}

func TestDownload_SequentialJobsProduceDistinctArtifacts(t *testing.T) {
	engine := &mockEngine{
		probeFunc: func(context.Context, string, ProbeOptions) (*MediaInfo, error) {
			return &MediaInfo{Title: "Same Title"}, nil
		},
	}
	store := &mockStore{
		locatePrefixFunc: func(prefix string) (string, bool) {
			return filepath.Join("downloads", prefix+"_Same Title.mp4"), true
		},
	}
	svc := newTestService(engine, store)

	first, err := svc.Download(context.Background(), "https://youtu.be/abc", "22")
	if err != nil {
		t.Fatalf("first Download() error = %v", err)
	}
	second, err := svc.Download(context.Background(), "https://youtu.be/abc", "22")
	if err != nil {
		t.Fatalf("second Download() error = %v", err)
	}

	if first.Artifact.UniqueID == second.Artifact.UniqueID {
		t.Errorf("both jobs minted id %q", first.Artifact.UniqueID)
	}
	if first.Artifact.DisplayName == second.Artifact.DisplayName {
		t.Errorf("both jobs produced artifact %q", first.Artifact.DisplayName)
	}
}

func TestDownload_AliasSelectors(t *testing.T) {
	tests := []struct {
		name         string
		formatID     string
		ffmpeg       bool
		wantSelector string
		wantExtract  bool
		wantMerge    string
		wantCode     ErrorCode
	}{
		{
			name:         "mp3 with ffmpeg",
			formatID:     "mp3",
			ffmpeg:       true,
			wantSelector: "bestaudio/best",
			wantExtract:  true,
		},
		{
			name:     "mp3 without ffmpeg",
			formatID: "mp3",
			ffmpeg:   false,
			wantCode: CodeUnsupportedFormat,
		},
		{
			name:         "m4a needs no ffmpeg",
			formatID:     "m4a",
			ffmpeg:       false,
			wantSelector: "bestaudio[ext=m4a]/bestaudio/best",
		},
		{
			name:         "best with ffmpeg merges",
			formatID:     "best",
			ffmpeg:       true,
			wantSelector: "bestvideo+bestaudio/best",
			wantMerge:    "mp4",
		},
		{
			name:         "best without ffmpeg",
			formatID:     "best",
			ffmpeg:       false,
			wantSelector: "best",
		},
		{
			name:         "worst",
			formatID:     "worst",
			ffmpeg:       true,
			wantSelector: "worst",
		},
		{
			name:         "plain id passes through",
			formatID:     "137",
			ffmpeg:       true,
			wantSelector: "137",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fetched bool
			var opts FetchOptions
			engine := &mockEngine{
				ffmpeg: tt.ffmpeg,
				fetchFunc: func(_ context.Context, _ string, o FetchOptions) (*FetchResult, error) {
					fetched = true
					opts = o
					return &FetchResult{}, nil
				},
			}
			store := &mockStore{
				locatePrefixFunc: func(prefix string) (string, bool) {
					return filepath.Join("downloads", prefix+"_clip.bin"), true
				},
			}
			svc := newTestService(engine, store)

			_, err := svc.Download(context.Background(), "https://youtu.be/abc", tt.formatID)
			if tt.wantCode != "" {
				assertCode(t, err, tt.wantCode, "")
				if fetched {
					t.Error("fetch should not run when options are rejected")
				}
				return
			}
			if err != nil {
				t.Fatalf("Download() error = %v", err)
			}
			if opts.FormatSelector != tt.wantSelector {
				t.Errorf("selector = %q, want %q", opts.FormatSelector, tt.wantSelector)
			}
			if opts.ExtractAudio != tt.wantExtract {
				t.Errorf("extract audio = %v, want %v", opts.ExtractAudio, tt.wantExtract)
			}
			if opts.MergeContainer != tt.wantMerge {
				t.Errorf("merge container = %q, want %q", opts.MergeContainer, tt.wantMerge)
			}
			if tt.wantExtract && (opts.AudioFormat != "mp3" || opts.AudioQuality != "0") {
				t.Errorf("audio options = %q/%q, want mp3/0", opts.AudioFormat, opts.AudioQuality)
			}
		})
	}
}

func TestDownload_ArtifactMissing(t *testing.T) {
	svc := newTestService(&mockEngine{}, &mockStore{})

	_, err := svc.Download(context.Background(), "https://youtu.be/abc", "22")
	assertCode(t, err, CodeArtifactMissing, "")
}

func TestDownload_MtimeFallback(t *testing.T) {
	var window time.Duration
	store := &mockStore{
		locateRecentFunc: func(w time.Duration) (string, bool) {
			window = w
			return filepath.Join("downloads", "stray_clip.mp4"), true
		},
	}
	svc := newTestService(&mockEngine{}, store)

	res, err := svc.Download(context.Background(), "https://youtu.be/abc", "22")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if window != 5*time.Minute {
		t.Errorf("fallback window = %v, want 5m", window)
	}
	if res.Artifact == nil {
		t.Fatal("expected artifact from fallback path")
	}
}

func TestDownload_FetchDetachedFromRequestContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var fetchCtx context.Context
	engine := &mockEngine{
		probeFunc: func(c context.Context, _ string, _ ProbeOptions) (*MediaInfo, error) {
			return nil, c.Err()
		},
		fetchFunc: func(c context.Context, _ string, _ FetchOptions) (*FetchResult, error) {
			fetchCtx = c
			return &FetchResult{}, nil
		},
	}
	store := &mockStore{
		locatePrefixFunc: func(prefix string) (string, bool) {
			return filepath.Join("downloads", prefix+"_clip.mp4"), true
		},
	}
	svc := newTestService(engine, store)

	_, err := svc.Download(ctx, "https://youtu.be/abc", "22")
	if err != nil {
		t.Fatalf("Download() error = %v, want success despite canceled request context", err)
	}
	if fetchCtx == nil {
		t.Fatal("fetch was never invoked")
	}
	if fetchCtx.Err() != nil {
		t.Errorf("fetch context inherited cancellation: %v", fetchCtx.Err())
	}
}

func TestDownload_ProbeFailureStillNamesFromOutput(t *testing.T) {
	var mintedID string
	var putDesired string

	engine := &mockEngine{
		probeFunc: func(context.Context, string, ProbeOptions) (*MediaInfo, error) {
			return nil, NewError(CodeNetwork, "timed out")
		},
	}
	store := &mockStore{
		locatePrefixFunc: func(prefix string) (string, bool) {
			mintedID = prefix
			return filepath.Join("downloads", prefix+"_Some Clip.m4a"), true
		},
		putFunc: func(_, desiredName string) (*Artifact, error) {
			putDesired = desiredName
			return &Artifact{DisplayName: desiredName, SizeBytes: 7}, nil
		},
	}
	svc := newTestService(engine, store)

	if _, err := svc.Download(context.Background(), "https://youtu.be/abc", "m4a"); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if want := mintedID + "_Some Clip.m4a"; putDesired != want {
		t.Errorf("desired name = %q, want %q", putDesired, want)
	}
}

func TestResolveArtifact_Delegates(t *testing.T) {
	store := &mockStore{
		resolveFunc: func(name string) (string, string, error) {
			return filepath.Join("downloads", "x.mp4"), "x.mp4", nil
		},
	}
	svc := newTestService(&mockEngine{}, store)

	path, clean, err := svc.ResolveArtifact("x.mp4")
	if err != nil {
		t.Fatalf("ResolveArtifact() error = %v", err)
	}
	if clean != "x.mp4" || path == "" {
		t.Errorf("ResolveArtifact() = (%q, %q)", path, clean)
	}
}

func TestHealth(t *testing.T) {
	svc := newTestService(&mockEngine{ffmpeg: true}, &mockStore{})

	status := svc.Health()
	if status.Status != "healthy" {
		t.Errorf("status = %q, want healthy", status.Status)
	}
	if !status.FFmpegAvailable {
		t.Error("ffmpeg availability not reported")
	}
	if len(status.Platforms) != 5 {
		t.Errorf("platforms = %d, want 5", len(status.Platforms))
	}
}
