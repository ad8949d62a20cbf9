package chunkstore

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// CompressionType selects how Store.PutCompressed encodes a chunk payload
// before it is committed. Grounded on the CompressionType/zstdEnc fields
// this package's chunk-manager counterpart carries for sealed chunks.
type CompressionType int

const (
	// CompressionNone stores the payload as-is, prefixed with a flag byte.
	CompressionNone CompressionType = iota
	// CompressionZstd compresses the payload with zstd before storing.
	CompressionZstd
)

const (
	payloadFlagRaw  = 0x00
	payloadFlagZstd = 0x01
)

// EncodePayload wraps data in a one-byte envelope recording whether it was
// compressed. The returned slice is what callers should pass to
// Store.Chunkify/Chunk.Replace; the on-disk entry length is always
// len(envelope), so spec.md's "entry length == len(stored bytes)"
// invariant never changes meaning regardless of compression.
func EncodePayload(data []byte, compression CompressionType) ([]byte, error) {
	switch compression {
	case CompressionNone:
		out := make([]byte, len(data)+1)
		out[0] = payloadFlagRaw
		copy(out[1:], data)
		return out, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("chunkstore: creating zstd encoder: %w", err)
		}
		defer enc.Close()
		compressed := enc.EncodeAll(data, make([]byte, 0, len(data)))
		out := make([]byte, len(compressed)+1)
		out[0] = payloadFlagZstd
		copy(out[1:], compressed)
		return out, nil
	default:
		return nil, fmt.Errorf("chunkstore: unknown compression type %d", compression)
	}
}

// DecodePayload reverses EncodePayload: it strips the leading flag byte
// and decompresses if needed, returning the logical payload.
func DecodePayload(stored []byte) ([]byte, error) {
	if len(stored) == 0 {
		return nil, nil
	}
	flag, data := stored[0], stored[1:]
	switch flag {
	case payloadFlagRaw:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	case payloadFlagZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("chunkstore: creating zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("chunkstore: decompressing payload: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("chunkstore: unknown payload flag 0x%02x", flag)
	}
}
