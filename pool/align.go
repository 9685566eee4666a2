package pool

import "unsafe"

// elemAddr returns the address of raw's backing array as a uintptr, used
// only to compute the offset needed to reach a 64-byte-aligned element;
// no pointer arithmetic on the result escapes this package.
func elemAddr(raw []float64) uintptr {
	return uintptr(unsafe.Pointer(&raw[0]))
}
