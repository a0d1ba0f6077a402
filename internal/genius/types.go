package genius

// searchResponse is the JSON response for GET /search.
type searchResponse struct {
	Meta     meta `json:"meta"`
	Response struct {
		Hits []hit `json:"hits"`
	} `json:"response"`
}

// hit wraps a single search result.
type hit struct {
	Type   string     `json:"type"`
	Result songResult `json:"result"`
}

// songResult holds the song fields used by the app.
type songResult struct {
	ID                       int    `json:"id"`
	Title                    string `json:"title"`
	FullTitle                string `json:"full_title"`
	URL                      string `json:"url"`
	SongArtImageThumbnailURL string `json:"song_art_image_thumbnail_url"`
	PrimaryArtist            struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
}

// meta carries the API status; message is only set on errors.
type meta struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}
