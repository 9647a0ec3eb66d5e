package domain

// GenreCount is one entry of a genre tally. Tallies are kept as slices so
// the caller's ordering survives analysis; top-genre selection depends on it.
type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GenreAnalysis is the analyzer's output: underrepresented major genres,
// the user's strongest major genres, and the merged search selection.
type GenreAnalysis struct {
	Gaps      []string `json:"gaps"`
	Top       []string `json:"top"`
	Selection []string `json:"selection"`
}

// CollectionFetch is the result of a paginated collection fetch. Fetched may
// be lower than Total when pages failed or the page cap was hit; the caller
// uses the two counts to signal incompleteness.
type CollectionFetch struct {
	Releases []Release `json:"releases"`
	Total    int       `json:"total"`
	Fetched  int       `json:"fetched"`
}

// ComparisonResult partitions two collections by shared master IDs.
//
// Releases without a master ID are excluded from all three partitions;
// MineDistinct and TheirsDistinct carry the distinct-master counts that went
// into the score so callers can see how much of each collection was joinable.
type ComparisonResult struct {
	Overlap            []Release `json:"overlap"`
	OnlyMine           []Release `json:"only_mine"`
	OnlyTheirs         []Release `json:"only_theirs"`
	CompatibilityScore int       `json:"compatibility_score"`
	MineDistinct       int       `json:"mine_distinct"`
	TheirsDistinct     int       `json:"theirs_distinct"`
}

// TradeOpportunity pairs a release one party owns with the wantlist entry of
// the other party that matched it.
type TradeOpportunity struct {
	Item Release   `json:"item"`
	Want WantEntry `json:"want"`
}

// RecommendationBucket holds ranked suggestions for a single genre together
// with the reason the genre was selected.
type RecommendationBucket struct {
	Genre      string    `json:"genre"`
	Reason     string    `json:"reason"`
	Candidates []Release `json:"candidates"`
}
