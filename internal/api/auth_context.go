package api

import (
	"net/http"
	"strings"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
	apperrors "github.com/waxmatchapp/waxmatch-server/internal/errors"
)

// sessionFromRequest resolves the Authorization header to a stored session.
// Returns (nil, nil) when no header is present; callers that can work
// unauthenticated treat that as the public path.
func (s *Server) sessionFromRequest(r *http.Request) (*domain.Session, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperrors.Unauthorized("invalid authorization header format")
	}

	sess, err := s.sessions.Get(r.Context(), parts[1])
	if err != nil {
		return nil, apperrors.Unauthorized("unknown or expired session").WithCause(err)
	}

	s.sessions.Touch(r.Context(), sess.ID)
	return sess, nil
}

// requireSession resolves the Authorization header and fails when the
// caller has no registered credentials.
func (s *Server) requireSession(r *http.Request) (*domain.Session, error) {
	sess, err := s.sessionFromRequest(r)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.MissingCredentials("no Discogs credentials registered")
	}
	return sess, nil
}
