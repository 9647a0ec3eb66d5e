package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/waxmatchapp/waxmatch-server/internal/http/response"
)

// createSessionRequest registers Discogs credentials.
type createSessionRequest struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// sessionResponse describes a session without echoing the token back.
type sessionResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	if req.Username == "" || req.Token == "" {
		response.BadRequest(w, "username and token are required", s.logger)
		return
	}

	sess, err := s.sessions.Create(r.Context(), req.Username, req.Token)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, sessionResponse{
		ID:        sess.ID,
		Username:  sess.Username,
		CreatedAt: sess.CreatedAt,
	}, s.logger)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.requireSession(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.sessions.Delete(r.Context(), sess.ID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
