// Package store selects the persistence strategy behind the data layer.
package store

import (
	"time"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/config"
	"github.com/collabcloud/collab/internal/session"
	"github.com/collabcloud/collab/internal/store/local"
	"github.com/collabcloud/collab/internal/store/remote"
)

// FromConfig creates the Store implementation the configuration names:
// remote when base_url is set, the local fallback store otherwise. The
// choice is made exactly once here; nothing downstream branches on mode.
func FromConfig(cfg *config.Config, sess *session.Session, idgen collab.IDGenerator, clock collab.Clock) (collab.Store, error) {
	if cfg.RemoteMode() {
		timeout := time.Duration(cfg.Remote.TimeoutSeconds) * time.Second
		return remote.New(cfg.BaseURL, sess, timeout), nil
	}
	return local.Open(cfg.Local.DataDir, idgen, clock)
}
