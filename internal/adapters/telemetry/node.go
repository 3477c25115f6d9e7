package telemetry

import (
	"context"
	"os"
	"os/user"
	"runtime"

	"github.com/grindlemire/graft"
	"go.trai.ch/rulegen/internal/core/ports"
)

// CacheEventsNodeID is the unique identifier for the cache event log factory Graft node.
const CacheEventsNodeID graft.ID = "adapter.cache_events"

func init() {
	graft.Register(graft.Node[ports.CacheEventLogFactory]{
		ID:        CacheEventsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CacheEventLogFactory, error) {
			return NewCacheEventLogFactory(hostEnvironment()), nil
		},
	})
}

// hostEnvironment describes the machine events are recorded on.
func hostEnvironment() map[string]string {
	env := map[string]string{
		"os":   runtime.GOOS,
		"arch": runtime.GOARCH,
	}
	if host, err := os.Hostname(); err == nil {
		env["hostname"] = host
	}
	if u, err := user.Current(); err == nil {
		env["user"] = u.Username
	}
	return env
}
