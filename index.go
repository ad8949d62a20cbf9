package chunkstore

import (
	"encoding/binary"
	"fmt"
	"io"
)

// IndexEntrySize is the on-disk width of one index entry: an (offset,
// length) pair of little-endian uint64s.
const IndexEntrySize = 16

// IndexEntry locates one chunk's payload on disk. A Length of 0 means the
// slot has never had a committed payload.
type IndexEntry struct {
	Offset uint64
	Length uint64
}

// IndexArray is the in-memory snapshot of N+1 fixed-width entries: entry 0
// is the self-descriptor (back-link to the previous snapshot's own
// location and length), entries 1..N are chunk pointers for external slots
// 0..N-1.
//
// The array's buffer is the exclusive owner of these entries; every live
// Chunk holds a non-owning *IndexEntry into it, which is why Resize must
// always be followed by Store rebinding every live chunk to the new slice
// (see Store.Resize).
type IndexArray struct {
	entries []IndexEntry
	loc     uint64 // file offset of this snapshot as currently committed, 0 if never committed
	locSize uint64 // on-disk byte length the snapshot at loc actually has, 0 if never committed
}

// NewIndexArray allocates N+1 zeroed entries for a fresh header. No I/O.
func NewIndexArray(h *Header) *IndexArray {
	return &IndexArray{entries: make([]IndexEntry, h.ArraySize()+1)}
}

// LoadIndexArray allocates N+1 entries and reads them from
// header.CurrentCommit().
func LoadIndexArray(h *Header, f io.ReaderAt) (*IndexArray, error) {
	count := h.ArraySize() + 1
	buf := make([]byte, count*IndexEntrySize)
	n, err := f.ReadAt(buf, int64(h.CurrentCommit()))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("chunkstore: reading index snapshot: %w", err)
	}
	if uint64(n) != count*IndexEntrySize {
		return nil, ErrShortRead
	}
	a := &IndexArray{entries: make([]IndexEntry, count), loc: h.CurrentCommit(), locSize: count * IndexEntrySize}
	for i := range a.entries {
		off := i * IndexEntrySize
		a.entries[i] = IndexEntry{
			Offset: binary.LittleEndian.Uint64(buf[off:]),
			Length: binary.LittleEndian.Uint64(buf[off+8:]),
		}
	}
	return a, nil
}

// N returns the number of externally visible chunk slots (i.e. len(entries)-1).
func (a *IndexArray) N() uint64 { return uint64(len(a.entries)) - 1 }

// Elem returns a mutable reference to the index entry for external slot n
// (internal entry n+1). The returned pointer stays valid until the next
// Resize.
func (a *IndexArray) Elem(n uint64) (*IndexEntry, error) {
	if n >= a.N() {
		return nil, ErrOutOfBounds
	}
	return &a.entries[n+1], nil
}

// Resize grows the array to newN slots, preserving every existing entry
// and zero-filling the tail. newN must be strictly greater than the
// current size; equal is a no-op and smaller fails with ErrTooSmall.
//
// Resize only replaces the in-memory buffer and updates h's slot count; it
// is the caller's (Store's) responsibility to rebind every live chunk's
// index-entry reference into the new buffer before any chunk is used
// again, per spec.md §4.2's concurrency-with-resize note.
func (a *IndexArray) Resize(newN uint64, h *Header) error {
	oldN := a.N()
	if newN == oldN {
		return nil
	}
	if newN < oldN {
		return ErrTooSmall
	}
	next := make([]IndexEntry, newN+1)
	copy(next, a.entries)
	a.entries = next
	h.SetArraySize(newN)
	return nil
}

// Commit appends the full N+1 entries to end-of-file, recording in entry 0
// a back-link to the snapshot's own prior location (the previous
// snapshot), then updates header.CurrentCommit (and header.FirstCommit if
// this is the first commit ever) to the new location.
//
// Per spec.md §9, entry 0 is a back-link: it is written *before* the
// append using the location and byte length this snapshot's predecessor
// actually occupied on disk, not the size of the array as currently held
// in memory. A Resize between two commits changes len(a.entries) without
// rewriting the previously committed snapshot, so the two can legitimately
// differ — locSize is what was really written at loc, and is the only
// correct value for the back-link.
func (a *IndexArray) Commit(f File, h *Header) error {
	a.entries[0] = IndexEntry{Offset: a.loc, Length: a.locSize}

	buf := a.encode()
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("chunkstore: seeking end of file: %w", err)
	}
	n, err := f.WriteAt(buf, pos)
	if err != nil {
		return fmt.Errorf("chunkstore: writing index snapshot: %w", err)
	}
	if n != len(buf) {
		return ErrShortWrite
	}

	h.SetCurrentCommit(uint64(pos))
	if h.FirstCommit() == 0 {
		h.SetFirstCommit(uint64(pos))
	}
	a.loc = uint64(pos)
	a.locSize = uint64(len(buf))
	return nil
}

func (a *IndexArray) encode() []byte {
	buf := make([]byte, len(a.entries)*IndexEntrySize)
	for i, e := range a.entries {
		off := i * IndexEntrySize
		binary.LittleEndian.PutUint64(buf[off:], e.Offset)
		binary.LittleEndian.PutUint64(buf[off+8:], e.Length)
	}
	return buf
}
