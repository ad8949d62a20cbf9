package chunkstore

import "errors"

// Error kinds surfaced by the engine. Each is a sentinel (wrapped with
// context via fmt.Errorf's %w where useful), so callers can match with
// errors.Is. I/O errors and payload codec errors are returned wrapped or
// as-is rather than mapped onto these kinds.
var (
	// ErrShortRead is returned when a positional read returned fewer bytes
	// than requested.
	ErrShortRead = errors.New("chunkstore: short read")

	// ErrShortWrite is returned when a positional write wrote fewer bytes
	// than requested.
	ErrShortWrite = errors.New("chunkstore: short write")

	// ErrOutOfBounds is returned when a slot index is >= the current array
	// size.
	ErrOutOfBounds = errors.New("chunkstore: slot out of bounds")

	// ErrBufferTooSmall is returned when a caller-supplied buffer cannot
	// hold a chunk's payload.
	ErrBufferTooSmall = errors.New("chunkstore: buffer too small")

	// ErrTooSmall is returned when a resize target is smaller than the
	// current array size. A target equal to the current size is a no-op.
	ErrTooSmall = errors.New("chunkstore: resize target smaller than current size")

	// ErrMalformedHeader is returned when a header's magic does not match on
	// open.
	ErrMalformedHeader = errors.New("chunkstore: malformed header")

	// ErrEndianMismatch is returned when a header's endianness marker does
	// not match the fixed little-endian constant.
	ErrEndianMismatch = errors.New("chunkstore: endianness mismatch")

	// ErrOpenChunks is returned by Store.Destroy when live chunk handles are
	// still outstanding.
	ErrOpenChunks = errors.New("chunkstore: destroy called with open chunks")

	// ErrNoFile is returned when a chunk commit is attempted on a chunk with
	// no bound file.
	ErrNoFile = errors.New("chunkstore: chunk has no bound file")

	// ErrOutOfMemory is reserved for allocator failures. Go's runtime panics
	// rather than returning an error from make/append, so this is retained
	// for API parity with spec.md's error-kind table but is not expected to
	// be observed in practice; see DESIGN.md.
	ErrOutOfMemory = errors.New("chunkstore: out of memory")

	// ErrSlotOccupied is returned by Store.Chunkify/Store.OpenChunk when the
	// requested slot already has a live chunk handle. The previous handle
	// must be released (Chunk.Destroy) before a new one can be created for
	// the same slot; this is the additive decision documented in
	// SPEC_FULL.md for the spec.md §9 "chunkify on an occupied slot" open
	// question.
	ErrSlotOccupied = errors.New("chunkstore: slot already has a live chunk")
)
