package alloc

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/huynhanx03/blobvec/pkg/settings"
)

// Allocator kinds accepted by FromConfig.
const (
	KindHeap   = "heap"
	KindPooled = "pooled"
	KindMmap   = "mmap"
)

// ErrUnknownKind is returned by FromConfig for unrecognised allocator kinds.
var ErrUnknownKind = errors.New("alloc: unknown allocator kind")

// FromConfig builds an allocator chain: the backend named by cfg.Kind,
// wrapped in Limited when a memory limit is set, then in Counting when
// call counting is enabled.
func FromConfig(cfg settings.Allocator) (Allocator, error) {
	var a Allocator
	switch strings.ToLower(cfg.Kind) {
	case "", KindHeap:
		a = NewHeap()
	case KindPooled:
		a = NewPooled()
	case KindMmap:
		a = NewMmap()
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%q", cfg.Kind)
	}
	if cfg.MemoryLimit > 0 {
		a = NewLimited(a, cfg.MemoryLimit)
	}
	if cfg.CountCalls {
		a = NewCounting(a)
	}
	return a, nil
}
