package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
)

// GetWantlist fetches a user's wantlist. Wantlists are public on Discogs, so
// no credentials are required; the first page (100 entries) is enough for
// trade matching.
func (c *Client) GetWantlist(ctx context.Context, username string) ([]domain.WantEntry, error) {
	if username == "" {
		return nil, wrapError("getWantlist", username, ErrBadRequest)
	}

	path := fmt.Sprintf("/users/%s/wants", url.PathEscape(username))
	body, err := c.doRequest(ctx, path, pageQuery(1, maxPerPage))
	if err != nil {
		return nil, wrapError("getWantlist", username, err)
	}

	var resp rawWantlistResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("getWantlist", username, fmt.Errorf("parse response: %w", err))
	}

	wants := make([]domain.WantEntry, 0, len(resp.Wants))
	for i := range resp.Wants {
		wants = append(wants, resp.Wants[i].toWantEntry())
	}

	return wants, nil
}
