//go:build !blobvec_debug

package blobvec

const debugAssertions = false
