package providers

import (
	"github.com/samber/do/v2"

	"github.com/waxmatchapp/waxmatch-server/internal/config"
	"github.com/waxmatchapp/waxmatch-server/internal/discogs"
	"github.com/waxmatchapp/waxmatch-server/internal/logger"
)

// DiscogsClientHandle wraps the catalog client with shutdown capability.
type DiscogsClientHandle struct {
	*discogs.Client
}

// Shutdown implements do.Shutdownable.
func (h *DiscogsClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideDiscogsClient provides the rate-limited Discogs API client.
func ProvideDiscogsClient(i do.Injector) (*DiscogsClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := discogs.New(discogs.Config{
		BaseURL:           cfg.Discogs.BaseURL,
		Token:             cfg.Discogs.Token,
		RequestsPerSecond: cfg.Discogs.RequestsPerSecond,
		Burst:             cfg.Discogs.Burst,
	}, log.Logger)

	return &DiscogsClientHandle{Client: client}, nil
}
