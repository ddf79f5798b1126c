package responses

import (
	"mediagrab-server/internal/domain/download"
)

// FormatResponse is the wire shape of a single media format.
type FormatResponse struct {
	FormatID         string `json:"format_id"`
	Ext              string `json:"ext"`
	Resolution       string `json:"resolution"`
	Filesize         int64  `json:"filesize"`
	FilesizeReadable string `json:"filesize_readable"`
	Vcodec           string `json:"vcodec"`
	Acodec           string `json:"acodec"`
	FormatNote       string `json:"format_note"`
}

// BuildFormatResponse creates a format response from the domain format.
func BuildFormatResponse(f download.Format) FormatResponse {
	return FormatResponse{
		FormatID:         f.ID,
		Ext:              f.Ext,
		Resolution:       f.Resolution,
		Filesize:         f.Filesize,
		FilesizeReadable: download.HumanSize(f.Filesize),
		Vcodec:           f.Vcodec,
		Acodec:           f.Acodec,
		FormatNote:       f.Note,
	}
}

// buildFormatList keeps empty lists as [] rather than null on the wire.
func buildFormatList(formats []download.Format) []FormatResponse {
	list := make([]FormatResponse, 0, len(formats))
	for _, f := range formats {
		list = append(list, BuildFormatResponse(f))
	}
	return list
}

// VideoInfoResponse carries full metadata including every known format.
type VideoInfoResponse struct {
	Title     string           `json:"title"`
	Duration  string           `json:"duration"`
	Thumbnail string           `json:"thumbnail"`
	Formats   []FormatResponse `json:"formats"`
}

// AnalyzeResponse is the envelope for metadata inspection.
type AnalyzeResponse struct {
	Success   bool              `json:"success"`
	VideoInfo VideoInfoResponse `json:"video_info"`
}

// BuildAnalyzeResponse creates the analyze envelope from probed metadata.
func BuildAnalyzeResponse(info *download.MediaInfo) *AnalyzeResponse {
	return &AnalyzeResponse{
		Success: true,
		VideoInfo: VideoInfoResponse{
			Title:     info.Title,
			Duration:  info.Duration,
			Thumbnail: info.Thumbnail,
			Formats:   buildFormatList(info.Formats),
		},
	}
}

// FormatsVideoInfo is the trimmed metadata header of the formats envelope.
type FormatsVideoInfo struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
}

// FormatsResponse is the envelope for the curated format lists.
type FormatsResponse struct {
	Success      bool             `json:"success"`
	VideoFormats []FormatResponse `json:"video_formats"`
	AudioFormats []FormatResponse `json:"audio_formats"`
	VideoInfo    FormatsVideoInfo `json:"video_info"`
}

// BuildFormatsResponse creates the formats envelope from a listing.
func BuildFormatsResponse(listing *download.FormatListing) *FormatsResponse {
	return &FormatsResponse{
		Success:      true,
		VideoFormats: buildFormatList(listing.Video),
		AudioFormats: buildFormatList(listing.Audio),
		VideoInfo: FormatsVideoInfo{
			Title:     listing.Info.Title,
			Thumbnail: listing.Info.Thumbnail,
			Duration:  listing.Info.Duration,
		},
	}
}

// DownloadResponse is the envelope for a completed download.
type DownloadResponse struct {
	Success     bool   `json:"success"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
	Size        string `json:"size"`
	SizeBytes   int64  `json:"size_bytes"`
}

// BuildDownloadResponse creates the download envelope from the stored artifact.
func BuildDownloadResponse(res *download.DownloadResult) *DownloadResponse {
	return &DownloadResponse{
		Success:     true,
		Filename:    res.Artifact.DisplayName,
		DownloadURL: res.DownloadURL,
		Size:        download.HumanSize(res.Artifact.SizeBytes),
		SizeBytes:   res.Artifact.SizeBytes,
	}
}

// HealthResponse reports service liveness and capability.
type HealthResponse struct {
	Status             string   `json:"status"`
	FFmpegAvailable    bool     `json:"ffmpeg_available"`
	SupportedPlatforms []string `json:"supported_platforms"`
}

// BuildHealthResponse creates the health report.
func BuildHealthResponse(h download.HealthStatus) *HealthResponse {
	return &HealthResponse{
		Status:             h.Status,
		FFmpegAvailable:    h.FFmpegAvailable,
		SupportedPlatforms: h.Platforms,
	}
}

// PlatformsResponse lists the recognized platform labels.
type PlatformsResponse struct {
	Platforms []string `json:"platforms"`
	Count     int      `json:"count"`
}

// BuildPlatformsResponse creates the platform listing.
func BuildPlatformsResponse(platforms []string) *PlatformsResponse {
	return &PlatformsResponse{
		Platforms: platforms,
		Count:     len(platforms),
	}
}
