package retrieval

import (
	"github.com/poiesic/docrag/core"
)

// Monitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during retrieval.
type Monitor interface {
	Start(query string)
	AfterQueryEmbedding(degraded bool)
	AfterChunkLoad(count int)
	Finish(matches []*core.RetrievalMatch)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                  {}
func (n *noopMonitor) AfterQueryEmbedding(_ bool)      {}
func (n *noopMonitor) AfterChunkLoad(_ int)            {}
func (n *noopMonitor) Finish(_ []*core.RetrievalMatch) {}
