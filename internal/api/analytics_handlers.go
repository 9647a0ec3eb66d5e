package api

import (
	"encoding/json"
	"net/http"

	"github.com/waxmatchapp/waxmatch-server/internal/domain"
	"github.com/waxmatchapp/waxmatch-server/internal/http/response"
)

// analyzeRequest carries a caller-computed genre tally and the masters the
// caller already owns. Tally order matters: top-genre selection follows it.
type analyzeRequest struct {
	GenreTally     []domain.GenreCount `json:"genre_tally"`
	OwnedMasterIDs []int64             `json:"owned_master_ids"`
}

func (s *Server) handleAnalyzeRecommendations(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	for _, entry := range req.GenreTally {
		if entry.Name == "" || entry.Count < 0 {
			response.BadRequest(w, "tally entries need a name and a non-negative count", s.logger)
			return
		}
	}

	report := s.recommender.AnalyzeRecommendations(r.Context(), req.GenreTally, req.OwnedMasterIDs)
	response.Success(w, report, s.logger)
}
