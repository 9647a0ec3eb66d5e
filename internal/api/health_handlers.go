package api

import (
	"net/http"
	"time"

	"github.com/waxmatchapp/waxmatch-server/internal/http/response"
)

var startedAt = time.Now()

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, healthResponse{
		Status: "ok",
		Uptime: time.Since(startedAt).Round(time.Second).String(),
	}, s.logger)
}
