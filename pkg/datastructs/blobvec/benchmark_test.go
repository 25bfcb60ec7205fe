package blobvec

import (
	"testing"
	"unsafe"

	"github.com/huynhanx03/blobvec/pkg/alloc"
)

// allocators defines the benchmark backend matrix.
var allocators = []struct {
	name string
	new  func() alloc.Allocator
}{
	{"Heap", func() alloc.Allocator { return alloc.NewHeap() }},
	{"Pooled", func() alloc.Allocator { return alloc.NewPooled() }},
}

// =============================================================================
// BenchmarkPush - Amortized growth across allocators
// =============================================================================

func BenchmarkPush(b *testing.B) {
	for _, a := range allocators {
		b.Run(a.name, func(b *testing.B) {
			x := int64(42)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				v := NewOf[int64](WithAllocator(a.new()))
				for j := 0; j < 1024; j++ {
					v.Push(unsafe.Pointer(&x))
				}
				_ = v.Close()
			}
		})
	}
}

// =============================================================================
// BenchmarkShift - Front insert and remove
// =============================================================================

func BenchmarkShiftInsertRemove(b *testing.B) {
	v := NewOf[int64](WithCapacity(1024))
	x := int64(1)
	for j := 0; j < 512; j++ {
		v.Push(unsafe.Pointer(&x))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.ShiftInsert(0, unsafe.Pointer(&x))
		v.ShiftRemoveForget(0)
	}
}

func BenchmarkSwapRemove(b *testing.B) {
	v := NewOf[int64](WithCapacity(1024))
	x := int64(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if v.Len() == 0 {
			for j := 0; j < 1024; j++ {
				v.Push(unsafe.Pointer(&x))
			}
		}
		v.SwapRemoveForget(0)
	}
}

// =============================================================================
// BenchmarkDrain - Middle range removal
// =============================================================================

func BenchmarkDrain(b *testing.B) {
	x := int64(1)
	v := NewOf[int64](WithCapacity(1024))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for v.Len() < 1024 {
			v.Push(unsafe.Pointer(&x))
		}
		_ = v.Drain(256, 512).Close()
	}
}
