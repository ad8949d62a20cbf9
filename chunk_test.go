package chunkstore

import (
	"bytes"
	"testing"
)

func TestNewChunkAndCommitLoad(t *testing.T) {
	f := newMemFile()
	h := NewHeader(2)
	a := NewIndexArray(h)

	c, err := NewChunk(a, f, 0, 5)
	if err != nil {
		t.Fatalf("NewChunk: %v", err)
	}
	copy(c.Buffer(), []byte("hello"))
	if err := c.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	loaded, err := LoadChunk(a, f, 0)
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if !bytes.Equal(loaded.Buffer(), []byte("hello")) {
		t.Errorf("got %q, want %q", loaded.Buffer(), "hello")
	}
}

func TestChunkFromBufferIsNotOwned(t *testing.T) {
	f := newMemFile()
	h := NewHeader(1)
	a := NewIndexArray(h)

	buf := []byte("borrowed")
	c, err := NewChunkFromBuffer(a, f, 0, buf)
	if err != nil {
		t.Fatalf("NewChunkFromBuffer: %v", err)
	}
	if c.Owned() {
		t.Error("chunk bound to a caller buffer must not be owned")
	}
	c.Destroy()
	if !bytes.Equal(buf, []byte("borrowed")) {
		t.Error("destroying a non-owning chunk must not touch the caller's buffer")
	}
}

func TestLoadChunkIntoTooSmall(t *testing.T) {
	f := newMemFile()
	h := NewHeader(1)
	a := NewIndexArray(h)

	c, err := NewChunk(a, f, 0, 10)
	if err != nil {
		t.Fatalf("NewChunk: %v", err)
	}
	if err := c.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	small := make([]byte, 2)
	if _, err := LoadChunkInto(a, f, 0, small); err != ErrBufferTooSmall {
		t.Errorf("got %v, want ErrBufferTooSmall", err)
	}
}

func TestChunkReplaceUpdatesEntryLength(t *testing.T) {
	f := newMemFile()
	h := NewHeader(1)
	a := NewIndexArray(h)

	c, err := NewChunk(a, f, 0, 3)
	if err != nil {
		t.Fatalf("NewChunk: %v", err)
	}
	old := c.Replace([]byte("a longer payload"), true)
	if len(old) != 3 {
		t.Errorf("Replace should return the previous buffer, got len %d", len(old))
	}
	entry, _ := a.Elem(0)
	if entry.Length != uint64(len("a longer payload")) {
		t.Errorf("entry.Length: got %d, want %d", entry.Length, len("a longer payload"))
	}
	if !c.Owned() {
		t.Error("Replace(_, true) should mark the chunk owned")
	}
}

func TestChunkCommitRequiresFile(t *testing.T) {
	h := NewHeader(1)
	a := NewIndexArray(h)
	c, err := NewChunkFromBuffer(a, nil, 0, []byte("x"))
	if err != nil {
		t.Fatalf("NewChunkFromBuffer: %v", err)
	}
	if err := c.Commit(); err != ErrNoFile {
		t.Errorf("got %v, want ErrNoFile", err)
	}
}
