package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/margo/internal/core/ports"
)

// NodeID is the unique identifier for the archive cache Graft node.
const NodeID graft.ID = "adapter.fs.cache"

func init() {
	graft.Register(graft.Node[ports.ArchiveCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArchiveCache, error) {
			return NewArchiveCache(), nil
		},
	})
}
