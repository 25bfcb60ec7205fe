//go:build blobvec_debug

package blobvec

const debugAssertions = true
