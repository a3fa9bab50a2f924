// Package serial defines execution serials and an ordered, serial-keyed
// FIFO for tracking the lifetime of in-flight work.
//
// A Serial identifies a unit of submitted work (typically one command
// submission). Serials come from a single monotonic counter owned by the
// caller; this package relies only on their ordering, never their values.
package serial

// Serial is a monotonically increasing identifier for a unit of work.
// The zero value means "no work submitted yet".
type Serial uint64
