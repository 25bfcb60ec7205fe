// Package alloc defines the allocator port consumed by blob containers and a
// handful of implementations.
//
// # Allocators
//
//   - Heap: Go heap memory, aligned by over-allocating and offsetting.
//   - Pooled: size-class buckets recycled through sync.Pool.
//   - Mmap: anonymous off-heap mappings (unix only).
//   - Limited: enforces a byte budget on top of another allocator.
//   - Counting: records calls and live bytes of another allocator.
//
// An allocator never retries a failed call. Callers decide how failures are
// surfaced.
//
// # Garbage collection
//
// Memory handed out here is typed as bytes. The collector does not scan it,
// so values stored in it must not hold the only reference to Go heap objects.
package alloc
