// Package ring implements a fixed-capacity circular byte-range
// sub-allocator for serial-tracked transient memory, such as the staging
// space behind GPU uploads.
//
// The allocator hands out contiguous byte offsets from a bounded region in
// FIFO order. Each allocation is tagged with an execution serial supplied
// by the caller; space is reclaimed only when the caller reports that all
// work up to a given serial has completed. The allocator never touches
// memory itself — offsets map onto a buffer owned elsewhere.
//
// Design goals:
//   - O(1) allocation and amortized O(1) reclaim; no free-list searches.
//   - Exhaustion is a value (InvalidOffset), never a panic: running out of
//     ring space under load is a normal condition handled by caller
//     backpressure.
//   - Conservative fullness accounting: alignment padding and the tail
//     abandoned by a wraparound are charged to the allocation that caused
//     them, so the used-byte count never under-reports.
//
// This package has no dependencies beyond the standard library.
package ring
