package chunkstore

import (
	"io"
	"log/slog"
	"time"

	"github.com/mveety/chunkstore/internal/auxmeta"
	"github.com/mveety/chunkstore/internal/logging"
)

// Options configures Store.Create and Store.Open. The zero value is a
// usable default: no logging, no compression, the real clock.
type Options struct {
	// Logger receives lifecycle events (create, open, commit, resize,
	// close). Nil disables logging.
	Logger *slog.Logger

	// Compression selects the codec Store.PutCompressed uses. Has no
	// effect on Chunkify/OpenChunk, which always store exactly the bytes
	// they are given.
	Compression CompressionType

	// Now overrides the clock used to stamp aux metadata at Create time.
	// Nil uses time.Now.
	Now func() time.Time

	// Label is stored in the aux metadata at Create time; see
	// Store.Label/Store.SetLabel.
	Label string
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Store orchestrates the header, the index array, and a parallel table of
// live chunk handles. No chunk outlives the store it was produced from.
type Store struct {
	file   File
	header *Header
	array  *IndexArray
	live   []*Chunk
	refs   int

	compression CompressionType
	logger      *slog.Logger
}

// Create builds a new store of n chunk slots on f, which must be empty.
// It writes an initial aux metadata blob, commits the header, commits the
// fresh index array, then commits the header again so its current-commit
// pointer reflects the array snapshot just written.
func Create(f File, n uint64, opts Options) (*Store, error) {
	logger := logging.Default(opts.Logger).With("component", "chunkstore")

	h := NewHeader(n)

	aux := auxmeta.New(opts.now())
	aux.Label = opts.Label
	auxBuf, err := auxmeta.Encode(aux)
	if err != nil {
		return nil, err
	}
	auxPos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if auxPos < HeaderSize {
		// Keep the aux blob clear of the bytes the header occupies at
		// offset 0, which the header commit below writes.
		auxPos = HeaderSize
	}
	if err := writeFullAt(f, auxBuf, auxPos); err != nil {
		return nil, err
	}
	h.SetAuxOffset(uint64(auxPos))
	h.SetAuxSize(uint64(len(auxBuf)))

	if err := h.Commit(f); err != nil {
		return nil, err
	}

	array := NewIndexArray(h)
	if err := array.Commit(f, h); err != nil {
		return nil, err
	}
	if err := h.Commit(f); err != nil {
		return nil, err
	}

	logger.Info("store created", "slots", n, "store_id", aux.StoreID)

	return &Store{
		file:        f,
		header:      h,
		array:       array,
		live:        make([]*Chunk, n),
		compression: opts.Compression,
		logger:      logger,
	}, nil
}

// Open loads an existing store from f: its header, the index snapshot the
// header's current commit points at, and a live table sized to the
// array's slot count.
func Open(f File, opts Options) (*Store, error) {
	logger := logging.Default(opts.Logger).With("component", "chunkstore")

	h, err := LoadHeader(f)
	if err != nil {
		return nil, err
	}
	array, err := LoadIndexArray(h, f)
	if err != nil {
		return nil, err
	}

	logger.Info("store opened", "slots", array.N(), "current_commit", h.CurrentCommit())

	return &Store{
		file:        f,
		header:      h,
		array:       array,
		live:        make([]*Chunk, array.N()),
		compression: opts.Compression,
		logger:      logger,
	}, nil
}

// Label returns the store's current human-readable label, decoding the
// aux metadata blob the header currently points at.
func (s *Store) Label() (string, error) {
	meta, err := s.auxMeta()
	if err != nil {
		return "", err
	}
	return meta.Label, nil
}

// StoreID returns the store's identity, assigned once at Create and
// carried unchanged across every subsequent commit.
func (s *Store) StoreID() (string, error) {
	meta, err := s.auxMeta()
	if err != nil {
		return "", err
	}
	return meta.StoreID.String(), nil
}

// SetLabel appends a new aux blob with an updated label and points the
// in-memory header at it, without touching the index snapshot chain. The
// change only becomes durable once the caller also calls Commit/CommitAll
// (the header fields are mutated in memory here; the on-disk header is
// rewritten by the next header Commit).
func (s *Store) SetLabel(label string) error {
	meta, err := s.auxMeta()
	if err != nil {
		return err
	}
	meta.Label = label
	buf, err := auxmeta.Encode(meta)
	if err != nil {
		return err
	}
	pos, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if err := writeFullAt(s.file, buf, pos); err != nil {
		return err
	}
	s.header.SetAuxOffset(uint64(pos))
	s.header.SetAuxSize(uint64(len(buf)))
	return nil
}

func (s *Store) auxMeta() (auxmeta.AuxMeta, error) {
	size := s.header.AuxSize()
	if size == 0 {
		return auxmeta.AuxMeta{}, nil
	}
	buf := make([]byte, size)
	if err := readFullAt(s.file, buf, int64(s.header.AuxOffset())); err != nil {
		return auxmeta.AuxMeta{}, err
	}
	return auxmeta.Decode(buf)
}

// Resize grows the store to newN slots. It delegates to the index array,
// then rebuilds the live table (preserving existing handles) and rebinds
// every live chunk's cached index-entry reference into the new array
// buffer — the invariant-restoring step spec.md §4.2/§4.4 call out.
func (s *Store) Resize(newN uint64) error {
	oldN := s.array.N()
	if err := s.array.Resize(newN, s.header); err != nil {
		return err
	}

	if newN != oldN {
		next := make([]*Chunk, newN)
		copy(next, s.live)
		s.live = next

		for slot, c := range s.live {
			if c == nil {
				continue
			}
			entry, err := s.array.Elem(uint64(slot))
			if err != nil {
				return err
			}
			c.entry = entry
		}
	}

	s.logger.Info("store resized", "old_slots", oldN, "new_slots", newN)
	return nil
}

// SlotCount returns the number of externally visible chunk slots in the
// current snapshot.
func (s *Store) SlotCount() uint64 { return s.array.N() }

// ChunkSize returns the length recorded for slot's index entry.
func (s *Store) ChunkSize(slot uint64) (uint64, error) {
	entry, err := s.array.Elem(slot)
	if err != nil {
		return 0, err
	}
	return entry.Length, nil
}

// AllocateChunkBuffer returns a buffer sized to slot's current entry
// length, a convenience for callers about to call OpenChunk.
func (s *Store) AllocateChunkBuffer(slot uint64) ([]byte, error) {
	size, err := s.ChunkSize(slot)
	if err != nil {
		return nil, err
	}
	return make([]byte, size), nil
}

// Chunkify binds buffer to slot as a new, non-owning chunk handle. Fails
// with ErrSlotOccupied if slot already has a live handle (see SPEC_FULL.md
// for why this package rejects rather than silently leaking the previous
// handle).
func (s *Store) Chunkify(slot uint64, buffer []byte) (*Chunk, error) {
	if slot < uint64(len(s.live)) && s.live[slot] != nil {
		return nil, ErrSlotOccupied
	}
	c, err := NewChunkFromBuffer(s.array, s.file, slot, buffer)
	if err != nil {
		return nil, err
	}
	s.track(c)
	return c, nil
}

// OpenChunk reads slot's payload into buffer, returning a non-owning
// chunk handle. Fails with ErrSlotOccupied if slot already has a live
// handle.
func (s *Store) OpenChunk(slot uint64, buffer []byte) (*Chunk, error) {
	if slot < uint64(len(s.live)) && s.live[slot] != nil {
		return nil, ErrSlotOccupied
	}
	c, err := LoadChunkInto(s.array, s.file, slot, buffer)
	if err != nil {
		return nil, err
	}
	s.track(c)
	return c, nil
}

// PutCompressed is a convenience wrapper: it encodes data per s's
// configured compression, then Chunkifies the envelope into slot.
func (s *Store) PutCompressed(slot uint64, data []byte) (*Chunk, error) {
	envelope, err := EncodePayload(data, s.compression)
	if err != nil {
		return nil, err
	}
	return s.Chunkify(slot, envelope)
}

// GetDecompressed loads slot's payload and decodes the compression
// envelope PutCompressed wrote, returning the logical data and releasing
// the intermediate chunk handle itself.
func (s *Store) GetDecompressed(slot uint64) ([]byte, error) {
	c, err := LoadChunk(s.array, s.file, slot)
	if err != nil {
		return nil, err
	}
	data, err := DecodePayload(c.Buffer())
	c.release()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) track(c *Chunk) {
	c.parent = s
	if int(c.slot) >= len(s.live) {
		next := make([]*Chunk, c.slot+1)
		copy(next, s.live)
		s.live = next
	}
	s.live[c.slot] = c
	s.refs++
}

// release is called by Chunk.Destroy for chunks parented to this store.
func (s *Store) release(slot uint64) {
	if slot < uint64(len(s.live)) && s.live[slot] != nil {
		s.live[slot] = nil
		s.refs--
	}
}

// Commit commits the array snapshot, then commits the header.
func (s *Store) Commit() error {
	if err := s.array.Commit(s.file, s.header); err != nil {
		return err
	}
	if err := s.header.Commit(s.file); err != nil {
		return err
	}
	s.logger.Info("store committed", "current_commit", s.header.CurrentCommit())
	return nil
}

// CommitChunks commits every live chunk's buffer.
func (s *Store) CommitChunks() error {
	for _, c := range s.live {
		if c == nil {
			continue
		}
		if err := c.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// CommitAll commits every live chunk, then the array and header.
func (s *Store) CommitAll() error {
	if err := s.CommitChunks(); err != nil {
		return err
	}
	return s.Commit()
}

// Destroy fails with ErrOpenChunks if any chunk handle is still live;
// otherwise it releases the live table, array, and header.
func (s *Store) Destroy() error {
	if s.refs > 0 {
		return ErrOpenChunks
	}
	s.destroyUnchecked()
	return nil
}

// DestroyUnsafe releases the store regardless of outstanding chunk
// handles; any handle the caller still holds is invalidated. Intended for
// read-only sessions where chunks are independently freed.
func (s *Store) DestroyUnsafe() {
	for _, c := range s.live {
		if c != nil {
			c.release()
		}
	}
	s.refs = 0
	s.destroyUnchecked()
}

func (s *Store) destroyUnchecked() {
	s.logger.Info("store destroyed")
	s.live = nil
	s.array = nil
	s.header = nil
}

// Close commits the index array and header (live chunk payloads are not
// committed), then destroys the store (failing with ErrOpenChunks if
// chunks are still live).
func (s *Store) Close() error {
	if err := s.Commit(); err != nil {
		return err
	}
	return s.Destroy()
}
