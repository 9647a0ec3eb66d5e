package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

const (
	// DefaultFolder is Discogs folder 0, the "All" folder every account has.
	DefaultFolder = 0

	maxPerPage = 100
)

// GetCollection fetches one page of a user's collection folder using the
// client's credentials. Private folders require a token belonging to the
// collection owner.
func (c *Client) GetCollection(ctx context.Context, username string, folder, page, perPage int) (*CollectionPage, error) {
	if username == "" {
		return nil, wrapError("getCollection", username, ErrBadRequest)
	}

	path := fmt.Sprintf("/users/%s/collection/folders/%d/releases", url.PathEscape(username), folder)
	body, err := c.doRequest(ctx, path, pageQuery(page, perPage))
	if err != nil {
		return nil, wrapError("getCollection", username, err)
	}

	return parseCollectionPage("getCollection", username, body)
}

// GetPublicCollection fetches one page of a user's public collection without
// credentials. The pagination shape is identical to GetCollection; only the
// identity making the request differs.
func (c *Client) GetPublicCollection(ctx context.Context, username string, page, perPage int) (*CollectionPage, error) {
	if username == "" {
		return nil, wrapError("getPublicCollection", username, ErrBadRequest)
	}

	pub := c
	if c.token != "" {
		pub = c.WithToken("")
	}

	path := fmt.Sprintf("/users/%s/collection/folders/%d/releases", url.PathEscape(username), DefaultFolder)
	body, err := pub.doRequest(ctx, path, pageQuery(page, perPage))
	if err != nil {
		return nil, wrapError("getPublicCollection", username, err)
	}

	return parseCollectionPage("getPublicCollection", username, body)
}

func pageQuery(page, perPage int) url.Values {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > maxPerPage {
		perPage = maxPerPage
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	return query
}

func parseCollectionPage(op, username string, body []byte) (*CollectionPage, error) {
	var resp rawCollectionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError(op, username, fmt.Errorf("parse response: %w", err))
	}

	page := &CollectionPage{
		Page:  resp.Pagination.Page,
		Pages: resp.Pagination.Pages,
		Total: resp.Pagination.Items,
	}
	for i := range resp.Releases {
		page.Releases = append(page.Releases, resp.Releases[i].BasicInformation.toRelease())
	}

	return page, nil
}
