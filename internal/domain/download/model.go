package download

import "time"

// Format describes one encoding variant reported by the extraction engine.
type Format struct {
	ID         string
	Ext        string
	Resolution string
	Filesize   int64
	Vcodec     string
	Acodec     string
	Note       string
}

// HasVideo reports whether the encoding carries a video stream.
func (f Format) HasVideo() bool {
	return f.Vcodec != "" && f.Vcodec != "none"
}

// HasAudio reports whether the encoding carries an audio stream.
func (f Format) HasAudio() bool {
	return f.Acodec != "" && f.Acodec != "none"
}

// MediaInfo is the metadata probe result for one URL.
type MediaInfo struct {
	Title     string
	Duration  string
	Thumbnail string
	Formats   []Format
}

// FormatListing partitions probed encodings into video and audio subsets.
// Encodings carrying neither stream are dropped from both.
type FormatListing struct {
	Info  *MediaInfo
	Video []Format
	Audio []Format
}

// Artifact is a finished download stored in the scratch directory.
type Artifact struct {
	UniqueID    string
	StoredPath  string
	DisplayName string
	SizeBytes   int64
	CreatedAt   time.Time
}

// DownloadResult is the outcome of one completed download job.
type DownloadResult struct {
	Artifact    *Artifact
	DownloadURL string
	Platform    string
}

// HealthStatus reports process health and capabilities.
type HealthStatus struct {
	Status          string
	FFmpegAvailable bool
	Platforms       []string
}

// ProbeOptions bound a metadata probe.
type ProbeOptions struct {
	NoPlaylist    bool
	SocketTimeout time.Duration
	Retries       int
	Headers       map[string]string
	Timeout       time.Duration
}

// FetchOptions drive one transfer. Every recognized engine option is a named
// field; nothing is passed as free-form key/value pairs.
type FetchOptions struct {
	FormatSelector string
	OutputTemplate string
	NoPlaylist     bool
	ExtractAudio   bool
	AudioFormat    string
	AudioQuality   string
	MergeContainer string
	ExtractorArgs  string
	SocketTimeout  time.Duration
	Retries        int
	Headers        map[string]string
	Timeout        time.Duration
}

// FetchResult reports what a finished transfer produced. Path is best
// effort; the job runner falls back to scanning the scratch directory when
// it is empty.
type FetchResult struct {
	Path string
}
