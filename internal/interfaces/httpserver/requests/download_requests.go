package requests

// AnalyzeRequest asks for metadata about a media URL.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// FormatsRequest asks for the curated format lists of a media URL.
type FormatsRequest struct {
	URL string `json:"url"`
}

// DownloadRequest asks for a media URL to be fetched in a given format.
// format_id is either an engine format ID or one of the aliases
// mp3, m4a, best, worst.
type DownloadRequest struct {
	URL      string `json:"url"`
	FormatID string `json:"format_id"`
}
