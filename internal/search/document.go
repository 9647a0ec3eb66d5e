package search

import (
	"strconv"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
)

// ReleaseDocument is the indexable form of a collection release.
type ReleaseDocument struct {
	ID     string
	Title  string
	Artist string
	Genres []string
	Styles []string
	Year   int
}

// FromRelease converts a domain release for indexing.
func FromRelease(r domain.Release) *ReleaseDocument {
	return &ReleaseDocument{
		ID:     strconv.FormatInt(r.ID, 10),
		Title:  r.Title,
		Artist: r.Artist,
		Genres: r.Genres,
		Styles: r.Styles,
		Year:   r.Year,
	}
}

// ToMap converts the document to a map so field names match the
// lowercase names in the index mapping.
func (d *ReleaseDocument) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":     d.ID,
		"title":  d.Title,
		"artist": d.Artist,
		"genres": d.Genres,
		"styles": d.Styles,
		"year":   d.Year,
	}
}
