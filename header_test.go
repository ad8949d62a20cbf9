package chunkstore

import "testing"

func TestNewHeaderDefaults(t *testing.T) {
	h := NewHeader(4)
	if h.ArraySize() != 4 {
		t.Errorf("ArraySize: got %d, want 4", h.ArraySize())
	}
	if h.DataStart() != HeaderSize {
		t.Errorf("DataStart: got %d, want %d", h.DataStart(), HeaderSize)
	}
	if h.FirstCommit() != 0 || h.CurrentCommit() != 0 {
		t.Error("fresh header should have no commits recorded")
	}
}

func TestHeaderCommitAndLoad(t *testing.T) {
	f := newMemFile()
	h := NewHeader(8)
	h.SetArraySize(8)

	if err := h.Commit(f); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	loaded, err := LoadHeader(f)
	if err != nil {
		t.Fatalf("LoadHeader: %v", err)
	}
	if loaded.ArraySize() != 8 {
		t.Errorf("ArraySize: got %d, want 8", loaded.ArraySize())
	}
	if loaded.Version() != formatVersion {
		t.Errorf("Version: got %d, want %d", loaded.Version(), formatVersion)
	}
}

func TestHeaderCommitAppendsHistory(t *testing.T) {
	f := newMemFile()
	h := NewHeader(1)

	if err := h.Commit(f); err != nil {
		t.Fatalf("first Commit: %v", err)
	}
	sizeAfterFirst := len(f.buf)

	if err := h.Commit(f); err != nil {
		t.Fatalf("second Commit: %v", err)
	}
	if len(f.buf) <= sizeAfterFirst {
		t.Error("second commit should append a new header copy at EOF")
	}
	// The live header at offset 0 must still decode cleanly.
	if _, err := LoadHeader(f); err != nil {
		t.Fatalf("LoadHeader after second commit: %v", err)
	}
}

func TestLoadHeaderRejectsBadMagic(t *testing.T) {
	f := newMemFile()
	if _, err := f.WriteAt(make([]byte, HeaderSize), 0); err != nil {
		t.Fatalf("unexpected WriteAt error: %v", err)
	}
	if _, err := LoadHeader(f); err != ErrMalformedHeader {
		t.Errorf("got %v, want ErrMalformedHeader", err)
	}
}

func TestLoadHeaderShortRead(t *testing.T) {
	f := newMemFile()
	if _, err := f.WriteAt([]byte{1, 2, 3}, 0); err != nil {
		t.Fatalf("unexpected WriteAt error: %v", err)
	}
	if _, err := LoadHeader(f); err != ErrShortRead {
		t.Errorf("got %v, want ErrShortRead", err)
	}
}

func TestHeaderAuxFields(t *testing.T) {
	h := NewHeader(2)
	h.SetAuxOffset(128)
	h.SetAuxSize(64)
	if h.AuxOffset() != 128 || h.AuxSize() != 64 {
		t.Errorf("aux fields not round-tripped: offset=%d size=%d", h.AuxOffset(), h.AuxSize())
	}
}
