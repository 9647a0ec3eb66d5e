// Package discogs provides a rate-limited client for the Discogs database API.
package discogs

import (
	"strings"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
)

// CollectionPage is one page of a user's collection together with the
// service's own pagination metadata.
type CollectionPage struct {
	Releases []domain.Release
	Page     int
	Pages    int
	Total    int // total items reported by the service
}

// SearchResult is a single hit from a database search.
type SearchResult struct {
	ID       int64
	MasterID int64
	Title    string
	Artist   string
	Year     int
	ThumbURL string
	Genres   []string
	Styles   []string
	Have     int
	Want     int
}

// Release converts a search result into a domain release.
func (r SearchResult) Release() domain.Release {
	return domain.Release{
		ID:       r.ID,
		MasterID: r.MasterID,
		Title:    r.Title,
		Artist:   r.Artist,
		Year:     r.Year,
		ThumbURL: r.ThumbURL,
		Genres:   r.Genres,
		Styles:   r.Styles,
		Have:     r.Have,
		Want:     r.Want,
	}
}

// ReleaseDetail is a single release fetched by ID, used for display outside
// the analytics path.
type ReleaseDetail struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Year    int    `json:"year,omitempty"`
	Country string `json:"country,omitempty"`
}

// Raw API response types (internal)

type rawPagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

type rawArtist struct {
	Name string `json:"name"`
}

type rawBasicInformation struct {
	ID       int64       `json:"id"`
	MasterID int64       `json:"master_id"`
	Title    string      `json:"title"`
	Year     int         `json:"year"`
	Thumb    string      `json:"thumb"`
	Genres   []string    `json:"genres"`
	Styles   []string    `json:"styles"`
	Artists  []rawArtist `json:"artists"`
}

type rawCollectionRelease struct {
	ID               int64               `json:"id"`
	BasicInformation rawBasicInformation `json:"basic_information"`
}

type rawCollectionResponse struct {
	Pagination rawPagination          `json:"pagination"`
	Releases   []rawCollectionRelease `json:"releases"`
}

type rawCommunity struct {
	Have int `json:"have"`
	Want int `json:"want"`
}

type rawSearchResult struct {
	ID        int64        `json:"id"`
	MasterID  int64        `json:"master_id"`
	Title     string       `json:"title"` // combined "Artist - Title"
	Year      string       `json:"year"`
	Thumb     string       `json:"thumb"`
	Genre     []string     `json:"genre"`
	Style     []string     `json:"style"`
	Community rawCommunity `json:"community"`
}

type rawSearchResponse struct {
	Results []rawSearchResult `json:"results"`
}

type rawWant struct {
	ID               int64               `json:"id"`
	BasicInformation rawBasicInformation `json:"basic_information"`
}

type rawWantlistResponse struct {
	Pagination rawPagination `json:"pagination"`
	Wants      []rawWant     `json:"wants"`
}

type rawRelease struct {
	ID      int64       `json:"id"`
	Title   string      `json:"title"`
	Year    int         `json:"year"`
	Country string      `json:"country"`
	Artists []rawArtist `json:"artists"`
}

// toRelease converts collection basic_information into a domain release.
// Absent fields stay at their zero values; a missing master_id is preserved
// as zero so downstream joins can exclude it.
func (bi *rawBasicInformation) toRelease() domain.Release {
	return domain.Release{
		ID:       bi.ID,
		MasterID: bi.MasterID,
		Title:    bi.Title,
		Artist:   joinArtists(bi.Artists),
		Year:     bi.Year,
		ThumbURL: bi.Thumb,
		Genres:   bi.Genres,
		Styles:   bi.Styles,
	}
}

// toWantEntry converts a wantlist item into a domain want entry.
func (w *rawWant) toWantEntry() domain.WantEntry {
	return domain.WantEntry{
		ReleaseID: w.ID,
		MasterID:  w.BasicInformation.MasterID,
		Title:     w.BasicInformation.Title,
		Artist:    joinArtists(w.BasicInformation.Artists),
		ThumbURL:  w.BasicInformation.Thumb,
	}
}

func joinArtists(artists []rawArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ", ")
}

// splitCombinedTitle parses the "Artist - Title" strings search results
// carry. The first " - " separates artist from title; titles containing the
// separator are rejoined. Without a separator the whole string is the title.
func splitCombinedTitle(combined string) (artist, title string) {
	parts := strings.Split(combined, " - ")
	if len(parts) < 2 {
		return "Unknown Artist", combined
	}
	return parts[0], strings.Join(parts[1:], " - ")
}
