package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waxmatchapp/waxmatch-server/internal/discogs"
	"github.com/waxmatchapp/waxmatch-server/internal/ratelimit"
	"github.com/waxmatchapp/waxmatch-server/internal/service"
	"github.com/waxmatchapp/waxmatch-server/internal/session"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Success bool            `json:"success"`
}

func newTestServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	upstreamServer := httptest.NewServer(upstream)
	client := discogs.New(discogs.Config{
		BaseURL:           upstreamServer.URL,
		RequestsPerSecond: 1000,
		Burst:             1000,
	}, logger)

	sessions, err := session.New(t.TempDir(), logger)
	require.NoError(t, err)

	fetcher := service.NewFetcher(100, 5, time.Millisecond, logger)
	collections := service.NewCollectionService(client, fetcher, logger)
	recommender := service.NewRecommender(client, logger)

	server := NewServer(collections, recommender, sessions, logger)

	t.Cleanup(func() {
		server.Close()
		sessions.Close()
		client.Close()
		upstreamServer.Close()
	})

	return server
}

func doRequest(t *testing.T, server *Server, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var envelope testEnvelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func upstreamCollection(total int, ids ...int) string {
	releases := make([]string, len(ids))
	for i, id := range ids {
		releases[i] = fmt.Sprintf(`{
			"id": %d,
			"basic_information": {
				"id": %d, "master_id": %d, "title": "Record %d",
				"artists": [{"name": "Artist"}], "genres": ["Electronic"]
			}
		}`, id, id, id, id)
	}
	return fmt.Sprintf(`{"pagination": {"items": %d}, "releases": [%s]}`,
		total, strings.Join(releases, ","))
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})

	rec, envelope := doRequest(t, server, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
}

func TestServer_CreateSession(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})

	rec, envelope := doRequest(t, server, http.MethodPost, "/api/v1/session",
		map[string]string{"username": "rodeo", "token": "secret"}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Contains(t, data["id"], "ses-")
	assert.Equal(t, "rodeo", data["username"])
	assert.NotContains(t, data, "token", "token must never be echoed back")
}

func TestServer_CreateSession_Validation(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})

	rec, _ := doRequest(t, server, http.MethodPost, "/api/v1/session",
		map[string]string{"username": "rodeo"}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_DeleteSession(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})

	_, envelope := doRequest(t, server, http.MethodPost, "/api/v1/session",
		map[string]string{"username": "rodeo", "token": "secret"}, nil)
	var data map[string]any
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	sessionID := data["id"].(string)

	rec, _ := doRequest(t, server, http.MethodDelete, "/api/v1/session", nil,
		map[string]string{"Authorization": "Bearer " + sessionID})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The session is gone now.
	rec, _ = doRequest(t, server, http.MethodDelete, "/api/v1/session", nil,
		map[string]string{"Authorization": "Bearer " + sessionID})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_DeleteSession_NoCredentials(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})

	rec, _ := doRequest(t, server, http.MethodDelete, "/api/v1/session", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_FetchCollection_Public(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, upstreamCollection(2, 1, 2))
	})

	rec, envelope := doRequest(t, server, http.MethodGet, "/api/v1/collection/rodeo", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var fetch struct {
		Total   int `json:"total"`
		Fetched int `json:"fetched"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &fetch))
	assert.Equal(t, 2, fetch.Total)
	assert.Equal(t, 2, fetch.Fetched)
}

func TestServer_FetchCollection_AuthWithoutSession(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})

	rec, _ := doRequest(t, server, http.MethodGet, "/api/v1/collection/rodeo?auth=true", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_FetchCollection_AuthUsesSessionToken(t *testing.T) {
	var gotAuth string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, upstreamCollection(1, 1))
	})

	_, envelope := doRequest(t, server, http.MethodPost, "/api/v1/session",
		map[string]string{"username": "rodeo", "token": "secret"}, nil)
	var data map[string]any
	require.NoError(t, json.Unmarshal(envelope.Data, &data))

	rec, _ := doRequest(t, server, http.MethodGet, "/api/v1/collection/rodeo?auth=true", nil,
		map[string]string{"Authorization": "Bearer " + data["id"].(string)})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Discogs token=secret", gotAuth)
}

func TestServer_FetchCollection_NotFound(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec, envelope := doRequest(t, server, http.MethodGet, "/api/v1/collection/nobody", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Error)
}

func TestServer_FetchCollection_UpstreamFailure(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec, _ := doRequest(t, server, http.MethodGet, "/api/v1/collection/rodeo", nil, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_SearchCrate_RequiresQuery(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})

	rec, _ := doRequest(t, server, http.MethodGet, "/api/v1/collection/rodeo/search", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_SearchCrate(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"pagination": {"items": 1}, "releases": [{
			"id": 249504,
			"basic_information": {
				"id": 249504, "master_id": 5590, "title": "Untrue",
				"artists": [{"name": "Burial"}], "genres": ["Electronic"]
			}
		}]}`)
	})

	rec, envelope := doRequest(t, server, http.MethodGet, "/api/v1/collection/rodeo/search?q=burial", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Hits []struct {
			Title string `json:"title"`
		} `json:"hits"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &result))
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "Untrue", result.Hits[0].Title)
}

func TestServer_AnalyzeRecommendations(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/database/search") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"results": [
			{"id": 1, "master_id": 1, "title": "Burial - Untrue", "year": "2007"},
			{"id": 2, "master_id": 2, "title": "Aphex Twin - Selected Ambient Works 85-92", "year": "1992"}
		]}`)
	})

	body := map[string]any{
		"genre_tally":      []map[string]any{{"name": "Rock", "count": 100}},
		"owned_master_ids": []int64{1},
	}
	rec, envelope := doRequest(t, server, http.MethodPost, "/api/v1/analyze/recommendations", body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Recommendations []struct {
			Genre      string `json:"genre"`
			Reason     string `json:"reason"`
			Candidates []struct {
				MasterID int64 `json:"master_id"`
			} `json:"candidates"`
		} `json:"recommendations"`
		AnalyzedGenres []string `json:"analyzed_genres"`
		Gaps           []string `json:"gaps"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &report))

	assert.Equal(t, []string{"Electronic", "Jazz", "Hip Hop"}, report.Gaps)
	assert.Equal(t, []string{"Electronic", "Jazz", "Hip Hop", "Rock"}, report.AnalyzedGenres)
	require.NotEmpty(t, report.Recommendations)
	// Owned master 1 filtered out everywhere.
	for _, bucket := range report.Recommendations {
		for _, candidate := range bucket.Candidates {
			assert.NotEqual(t, int64(1), candidate.MasterID)
		}
	}
}

func TestServer_AnalyzeRecommendations_BadTally(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})

	body := map[string]any{
		"genre_tally": []map[string]any{{"name": "", "count": 5}},
	}
	rec, _ := doRequest(t, server, http.MethodPost, "/api/v1/analyze/recommendations", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Compare(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/users/me/collection"):
			fmt.Fprint(w, upstreamCollection(3, 1, 2, 3))
		case strings.Contains(r.URL.Path, "/users/them/collection"):
			fmt.Fprint(w, upstreamCollection(3, 2, 3, 4))
		case strings.Contains(r.URL.Path, "/wants"):
			fmt.Fprint(w, `{"wants": []}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	rec, envelope := doRequest(t, server, http.MethodGet, "/api/v1/compare/me/them", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var comparison struct {
		Result struct {
			CompatibilityScore int `json:"compatibility_score"`
		} `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &comparison))
	assert.Equal(t, 50, comparison.Result.CompatibilityScore)
}

func TestServer_Compare_SelfComparisonRejected(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})

	rec, _ := doRequest(t, server, http.MethodGet, "/api/v1/compare/me/me", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_RateLimit(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {})
	server.limiter.Stop()
	server.limiter = ratelimit.New(1, 1)

	first, _ := doRequest(t, server, http.MethodPost, "/api/v1/session", nil, nil)
	assert.NotEqual(t, http.StatusTooManyRequests, first.Code)

	second, _ := doRequest(t, server, http.MethodPost, "/api/v1/session", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
