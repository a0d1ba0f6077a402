package spotify

import (
	"strings"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/emotify/internal/song"
)

// convertTrack converts a Spotify FullTrack to a song.Candidate.
// The first listed artist is the primary artist.
func convertTrack(t spotify.FullTrack) song.Candidate {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	primary := ""
	if len(artists) > 0 {
		primary = artists[0]
	}

	fullTitle := t.Name
	if len(artists) > 0 {
		fullTitle = t.Name + " by " + strings.Join(artists, ", ")
	}

	return song.Candidate{
		ID:           t.ID.String(),
		Title:        t.Name,
		Artist:       primary,
		URL:          t.ExternalURLs["spotify"],
		ThumbnailURL: smallestImage(t.Album.Images),
		FullTitle:    fullTitle,
	}
}

// smallestImage returns the URL of the narrowest image, or "" if none.
func smallestImage(images []spotify.Image) string {
	best := ""
	bestWidth := 0
	for _, img := range images {
		w := int(img.Width)
		if best == "" || w < bestWidth {
			best = img.URL
			bestWidth = w
		}
	}
	return best
}
