package wikipedia

// apiSummary is the subset of the REST v1 page summary payload the
// adapter consumes.
type apiSummary struct {
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	Extract     string        `json:"extract"`
	Thumbnail   *apiThumbnail `json:"thumbnail"`
	ContentURLs apiURLs       `json:"content_urls"`
}

type apiThumbnail struct {
	Source string `json:"source"`
}

type apiURLs struct {
	Desktop apiDesktop `json:"desktop"`
}

type apiDesktop struct {
	Page string `json:"page"`
}
