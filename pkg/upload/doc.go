// Package upload manages staging memory for serial-tracked transient
// writes, such as CPU-to-GPU uploads.
//
// An Uploader owns an ordered list of staging rings, each a
// ring.Allocator paired with a lazily-created backing Buffer. Allocation
// scans the rings first-fit; when every ring is full the uploader appends
// a fresh one rather than failing, and requests larger than a whole ring
// receive a dedicated buffer that is retired as soon as their serial
// completes. The caller drives reclamation by reporting completed serials
// to Deallocate.
//
// Buffers are created through a caller-supplied BufferFactory, so staging
// memory can live wherever the consumer needs it (mapped device memory,
// shared memory, plain host memory). HostMemory is a ready-made factory
// over anonymous host regions.
//
// Like the underlying allocator, an Uploader is single-writer; callers
// serialize access externally.
package upload
