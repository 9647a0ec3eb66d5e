package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/waxmatchapp/waxmatch-server/internal/config"
	"github.com/waxmatchapp/waxmatch-server/internal/logger"
	"github.com/waxmatchapp/waxmatch-server/internal/session"
)

// SessionStoreHandle wraps the session store with shutdown capability.
type SessionStoreHandle struct {
	*session.Store
}

// Shutdown implements do.Shutdownable.
func (h *SessionStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideSessionStore provides the credential session store.
func ProvideSessionStore(i do.Injector) (*SessionStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store, err := session.New(filepath.Join(cfg.Data.BasePath, "sessions"), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("session store opened", "path", cfg.Data.BasePath)
	return &SessionStoreHandle{Store: store}, nil
}
