package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/waxmatchapp/waxmatch-server/internal/http/response"
)

// tokenForRequest resolves the Discogs token for a collection fetch.
// With ?auth=true the caller must have a registered session; otherwise
// the public endpoint is used and any session is ignored.
func (s *Server) tokenForRequest(r *http.Request) (string, error) {
	if r.URL.Query().Get("auth") != "true" {
		return "", nil
	}

	sess, err := s.requireSession(r)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func (s *Server) handleFetchCollection(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	token, err := s.tokenForRequest(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	fetch, err := s.collections.FetchCollection(r.Context(), username, token)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, fetch, s.logger)
}

func (s *Server) handleSearchCrate(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, "query parameter q is required", s.logger)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "limit must be a positive integer", s.logger)
			return
		}
		limit = parsed
	}

	token, err := s.tokenForRequest(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.collections.SearchCrate(r.Context(), username, token, query, limit)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

func (s *Server) handleCompareCollections(w http.ResponseWriter, r *http.Request) {
	myUsername := chi.URLParam(r, "mine")
	theirUsername := chi.URLParam(r, "theirs")
	if myUsername == theirUsername {
		response.BadRequest(w, "cannot compare a collection with itself", s.logger)
		return
	}

	// My collection uses registered credentials when present, so private
	// collections compare too. The other party is always fetched publicly.
	token := ""
	if sess, err := s.sessionFromRequest(r); err != nil {
		response.HandleError(w, err, s.logger)
		return
	} else if sess != nil {
		token = sess.Token
	}

	comparison, err := s.collections.CompareCollections(r.Context(), myUsername, theirUsername, token)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, comparison, s.logger)
}
