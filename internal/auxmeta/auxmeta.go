// Package auxmeta encodes the structured blob that chunkstore.Header's
// reserved aux_offset/aux_size fields point at. It gives the otherwise
// permanently-empty auxiliary region a typed payload: a store identity
// (so two files that share a copy history can be told apart) and an
// optional human-readable label.
package auxmeta

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// tagSize is the width of the fixed prefix written ahead of the msgpack
// body: a signature byte (catches a stray read at the wrong offset) and a
// version byte (lets the payload shape change later without breaking
// readers of old files). This package only ever tags one blob kind, so
// there is no type byte to select among several.
const tagSize = 2

const (
	signature      = 'x'
	currentVersion = 1
)

var (
	// ErrTagTooSmall is returned when a buffer is too short to hold the
	// aux tag prefix.
	ErrTagTooSmall = errors.New("auxmeta: buffer too small for tag")

	// ErrSignatureMismatch is returned when the tag's signature byte does
	// not match, meaning the buffer is not an aux blob at all.
	ErrSignatureMismatch = errors.New("auxmeta: signature mismatch")

	// ErrVersionMismatch is returned when the tag's version byte is not
	// one this package knows how to decode.
	ErrVersionMismatch = errors.New("auxmeta: version mismatch")
)

// AuxMeta is the structured payload stored in the aux region.
type AuxMeta struct {
	StoreID   uuid.UUID `msgpack:"store_id"`
	CreatedAt int64     `msgpack:"created_at"` // unix seconds
	Label     string    `msgpack:"label"`
}

// New builds a fresh AuxMeta with a newly generated store identity.
func New(now time.Time) AuxMeta {
	return AuxMeta{
		StoreID:   uuid.New(),
		CreatedAt: now.Unix(),
	}
}

// Encode prefixes a msgpack-encoded AuxMeta with the 2-byte tag
// (signature, version), producing the bytes to be appended as the
// store's aux blob.
func Encode(meta AuxMeta) ([]byte, error) {
	body, err := msgpack.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("auxmeta: encoding payload: %w", err)
	}
	buf := make([]byte, tagSize+len(body))
	buf[0] = signature
	buf[1] = currentVersion
	copy(buf[tagSize:], body)
	return buf, nil
}

// Decode validates the tag and unmarshals the msgpack body.
func Decode(buf []byte) (AuxMeta, error) {
	if len(buf) < tagSize {
		return AuxMeta{}, ErrTagTooSmall
	}
	if buf[0] != signature {
		return AuxMeta{}, ErrSignatureMismatch
	}
	if buf[1] != currentVersion {
		return AuxMeta{}, ErrVersionMismatch
	}
	var meta AuxMeta
	if err := msgpack.Unmarshal(buf[tagSize:], &meta); err != nil {
		return AuxMeta{}, fmt.Errorf("auxmeta: decoding payload: %w", err)
	}
	return meta, nil
}
