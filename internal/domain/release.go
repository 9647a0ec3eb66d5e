// Package domain contains the core types for collection analytics.
package domain

import "time"

// Release represents a single physical pressing in a Discogs collection.
//
// MasterID groups all pressings of the same abstract release. A MasterID of
// zero means the release has no grouping key and must never be used as a
// join key between collections.
type Release struct {
	ID       int64    `json:"id"`
	MasterID int64    `json:"master_id"`
	Title    string   `json:"title"`
	Artist   string   `json:"artist"`
	Year     int      `json:"year,omitempty"`
	ThumbURL string   `json:"thumb_url,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Styles   []string `json:"styles,omitempty"`
	Have     int      `json:"have"`
	Want     int      `json:"want"`
}

// JoinKey returns the master ID and whether the release is joinable at all.
// Releases without a master ID are excluded from set joins rather than
// treated as "joined to nothing".
func (r *Release) JoinKey() (int64, bool) {
	return r.MasterID, r.MasterID != 0
}

// DedupKey returns the identifier used for recommendation de-duplication.
// Unlike JoinKey, it falls back to the release's own ID when no master ID
// is present.
func (r *Release) DedupKey() int64 {
	if r.MasterID != 0 {
		return r.MasterID
	}
	return r.ID
}

// WantEntry is a single entry in a user's wantlist.
type WantEntry struct {
	ReleaseID int64  `json:"release_id"`
	MasterID  int64  `json:"master_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	ThumbURL  string `json:"thumb_url,omitempty"`
}

// Session holds a user's Discogs credentials for authenticated requests.
type Session struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}
