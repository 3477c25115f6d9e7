package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rulegen/internal/core/ports"
)

// NodeID is the unique identifier for the project filesystem Graft node.
const NodeID graft.ID = "adapter.fs"

func init() {
	graft.Register(graft.Node[ports.ProjectFilesystem]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProjectFilesystem, error) {
			return NewFilesystem(), nil
		},
	})
}
