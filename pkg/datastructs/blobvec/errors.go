package blobvec

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrCapacityOverflow is returned when a requested capacity overflows
	// element-count arithmetic or exceeds alloc.MaxAllocBytes.
	ErrCapacityOverflow = errors.New("blobvec: capacity overflow")
	// ErrDrainActive is the panic value of mutations attempted while a Drain is outstanding.
	ErrDrainActive = errors.New("blobvec: vector is being drained")
	// ErrClosed is the panic value of mutations attempted after Close.
	ErrClosed = errors.New("blobvec: vector is closed")
)

// AllocError reports that the allocator failed to provide Layout.
type AllocError struct {
	Layout Layout
	Cause  error
}

func (e *AllocError) Error() string {
	msg := fmt.Sprintf("blobvec: memory allocation of %d bytes (align %d) failed", e.Layout.Size, e.Layout.Align)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *AllocError) Unwrap() error {
	return e.Cause
}

// handleReserveError turns a growth failure into a panic.
func handleReserveError(err error) {
	if err == nil {
		return
	}
	var ae *AllocError
	if errors.As(err, &ae) {
		handleAllocError(ae)
	}
	capacityOverflow()
}

// capacityOverflow is kept out of line so callers' hot paths carry no error handling.
//
//go:noinline
func capacityOverflow() {
	Logger().Error("capacity overflow")
	panic(ErrCapacityOverflow)
}

//go:noinline
func handleAllocError(e *AllocError) {
	Logger().Error("out of memory",
		zap.Uintptr("size", e.Layout.Size),
		zap.Uintptr("align", e.Layout.Align),
		zap.Error(e.Cause),
	)
	panic(e)
}
