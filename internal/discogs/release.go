package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// GetRelease fetches a single release by ID. Used for display outside the
// analytics path; failures here propagate since there is no partial result.
func (c *Client) GetRelease(ctx context.Context, id int64) (*ReleaseDetail, error) {
	if id <= 0 {
		return nil, wrapError("getRelease", "", ErrBadRequest)
	}

	body, err := c.doRequest(ctx, "/releases/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, wrapError("getRelease", "", err)
	}

	var resp rawRelease
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("getRelease", "", fmt.Errorf("parse response: %w", err))
	}

	return &ReleaseDetail{
		ID:      resp.ID,
		Title:   resp.Title,
		Artist:  joinArtists(resp.Artists),
		Year:    resp.Year,
		Country: resp.Country,
	}, nil
}
