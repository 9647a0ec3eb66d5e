package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

const (
	// SearchTypeMaster searches master releases, the grouping level
	// recommendations operate on.
	SearchTypeMaster = "master"

	defaultSearchLimit = 25
)

// Search searches the Discogs database. kind is a Discogs result type
// ("master", "release", "artist"); recommendations use SearchTypeMaster.
func (c *Client) Search(ctx context.Context, query, kind string) ([]SearchResult, error) {
	if query == "" {
		return nil, wrapError("search", "", ErrBadRequest)
	}

	params := url.Values{}
	params.Set("q", query)
	if kind != "" {
		params.Set("type", kind)
	}
	params.Set("per_page", strconv.Itoa(defaultSearchLimit))

	body, err := c.doRequest(ctx, "/database/search", params)
	if err != nil {
		return nil, wrapError("search", "", err)
	}

	var resp rawSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", "", fmt.Errorf("parse response: %w", err))
	}

	results := make([]SearchResult, 0, len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		artist, title := splitCombinedTitle(r.Title)

		year := 0
		if r.Year != "" {
			year, _ = strconv.Atoi(r.Year)
		}

		results = append(results, SearchResult{
			ID:       r.ID,
			MasterID: r.MasterID,
			Title:    title,
			Artist:   artist,
			Year:     year,
			ThumbURL: r.Thumb,
			Genres:   r.Genre,
			Styles:   r.Style,
			Have:     r.Community.Have,
			Want:     r.Community.Want,
		})
	}

	return results, nil
}
