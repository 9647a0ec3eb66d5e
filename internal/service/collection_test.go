package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waxmatchapp/waxmatch-server/internal/discogs"
	apperrors "github.com/waxmatchapp/waxmatch-server/internal/errors"
)

func collectionJSON(total int, ids ...int) string {
	releases := make([]string, len(ids))
	for i, id := range ids {
		releases[i] = fmt.Sprintf(`{
			"id": %d,
			"basic_information": {
				"id": %d,
				"master_id": %d,
				"title": "Record %d",
				"artists": [{"name": "Artist"}],
				"genres": ["Electronic"]
			}
		}`, id, id, id, id)
	}
	return fmt.Sprintf(`{"pagination": {"items": %d}, "releases": [%s]}`,
		total, strings.Join(releases, ","))
}

func wantsJSON(masterIDs ...int) string {
	wants := make([]string, len(masterIDs))
	for i, id := range masterIDs {
		wants[i] = fmt.Sprintf(`{
			"id": %d,
			"basic_information": {"id": %d, "master_id": %d, "title": "Want %d", "artists": [{"name": "Artist"}]}
		}`, id*100, id*100, id, id)
	}
	return fmt.Sprintf(`{"wants": [%s]}`, strings.Join(wants, ","))
}

func newTestService(t *testing.T, handler http.HandlerFunc) *CollectionService {
	t.Helper()
	server := httptest.NewServer(handler)

	client := discogs.New(discogs.Config{
		BaseURL:           server.URL,
		RequestsPerSecond: 1000,
		Burst:             1000,
	}, testLogger())
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})

	fetcher := NewFetcher(100, 5, time.Millisecond, testLogger())
	return NewCollectionService(client, fetcher, testLogger())
}

func TestCollectionService_FetchCollection_Public(t *testing.T) {
	var sawAuth bool
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		sawAuth = sawAuth || r.Header.Get("Authorization") != ""
		fmt.Fprint(w, collectionJSON(2, 1, 2))
	})

	fetch, err := svc.FetchCollection(context.Background(), "rodeo", "")
	require.NoError(t, err)

	assert.Equal(t, 2, fetch.Fetched)
	assert.False(t, sawAuth, "public fetch must not send credentials")
}

func TestCollectionService_FetchCollection_Authenticated(t *testing.T) {
	var gotAuth string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, collectionJSON(1, 1))
	})

	_, err := svc.FetchCollection(context.Background(), "rodeo", "my-token")
	require.NoError(t, err)

	assert.Equal(t, "Discogs token=my-token", gotAuth)
}

func TestCollectionService_FetchCollection_MapsNotFound(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := svc.FetchCollection(context.Background(), "nobody", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCollectionService_FetchCollection_MapsServerErrorToUpstream(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.FetchCollection(context.Background(), "rodeo", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
}

func TestCollectionService_CompareCollections(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/users/me/collection"):
			fmt.Fprint(w, collectionJSON(3, 1, 2, 3))
		case strings.Contains(r.URL.Path, "/users/them/collection"):
			fmt.Fprint(w, collectionJSON(3, 2, 3, 4))
		case strings.Contains(r.URL.Path, "/users/me/wants"):
			fmt.Fprint(w, wantsJSON(4))
		case strings.Contains(r.URL.Path, "/users/them/wants"):
			fmt.Fprint(w, wantsJSON(1))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	comparison, err := svc.CompareCollections(context.Background(), "me", "them", "")
	require.NoError(t, err)

	assert.Equal(t, 50, comparison.Result.CompatibilityScore)
	assert.Len(t, comparison.Result.Overlap, 2)

	// I hold master 1, which they want; they hold master 4, which I want.
	require.Len(t, comparison.IOffer, 1)
	assert.Equal(t, int64(1), comparison.IOffer[0].Item.MasterID)
	require.Len(t, comparison.TheyOffer, 1)
	assert.Equal(t, int64(4), comparison.TheyOffer[0].Item.MasterID)
}

func TestCollectionService_CompareCollections_WantlistFailureTolerated(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/collection"):
			fmt.Fprint(w, collectionJSON(1, 1))
		case strings.Contains(r.URL.Path, "/users/them/wants"):
			w.WriteHeader(http.StatusInternalServerError)
		default:
			fmt.Fprint(w, wantsJSON(1))
		}
	})

	comparison, err := svc.CompareCollections(context.Background(), "me", "them", "")
	require.NoError(t, err, "wantlist failure never aborts the comparison")

	assert.Empty(t, comparison.IOffer)
	require.Len(t, comparison.TheyOffer, 1)
}

func TestCollectionService_CompareCollections_TheirFetchFailurePropagates(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/users/them/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, collectionJSON(1, 1))
	})

	_, err := svc.CompareCollections(context.Background(), "me", "them", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCollectionService_SearchCrate(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"pagination": {"items": 1}, "releases": [{
			"id": 249504,
			"basic_information": {
				"id": 249504,
				"master_id": 5590,
				"title": "Untrue",
				"artists": [{"name": "Burial"}],
				"genres": ["Electronic"]
			}
		}]}`)
	})

	result, err := svc.SearchCrate(context.Background(), "rodeo", "", "burial", 10)
	require.NoError(t, err)

	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "Untrue", result.Hits[0].Title)
}
