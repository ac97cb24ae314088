// Package container implements the fixed 24-byte FPZ header: parsing,
// validation, and serialization. It is the only layer that knows the
// on-disk byte layout; everything above it deals in Header values.
package container

import (
	"encoding/binary"
	"fmt"

	"github.com/scidata-io/fpz/internal/fpzerr"
)

// Magic identifies an FPZ stream: little-endian bytes 66 70 7A 00 ("fpz\0").
const Magic uint32 = 0x007A7066

// CurrentVersion is the only version this implementation accepts, on
// either read or write. Unknown versions are rejected rather than silently
// accepted.
const CurrentVersion uint16 = 1

// Size is the fixed header length in bytes.
const Size = 24

// SampleType identifies the element width of a field.
type SampleType uint8

const (
	// TypeFloat32 marks 32-bit IEEE 754 samples.
	TypeFloat32 SampleType = 0
	// TypeFloat64 marks 64-bit IEEE 754 samples.
	TypeFloat64 SampleType = 1
)

// String returns the type's name.
func (t SampleType) String() string {
	switch t {
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// Header is the fixed FPZ container prefix.
type Header struct {
	Version uint16
	Type    SampleType
	NX      uint32
	NY      uint32
	NZ      uint32
	NF      uint32
}

// Count returns the total element count nx*ny*nz*nf.
func (h *Header) Count() int {
	return int(h.NX) * int(h.NY) * int(h.NZ) * int(h.NF)
}

// Bytes serializes the header to its 24-byte little-endian wire form.
func (h *Header) Bytes() []byte {
	b := make([]byte, Size)
	binary.LittleEndian.PutUint32(b[0:4], Magic)
	binary.LittleEndian.PutUint16(b[4:6], h.Version)
	b[6] = byte(h.Type)
	b[7] = 0
	binary.LittleEndian.PutUint32(b[8:12], h.NX)
	binary.LittleEndian.PutUint32(b[12:16], h.NY)
	binary.LittleEndian.PutUint32(b[16:20], h.NZ)
	binary.LittleEndian.PutUint32(b[20:24], h.NF)
	return b
}

// ReadHeader parses and validates the 24-byte header prefix of data.
func ReadHeader(data []byte) (*Header, error) {
	if len(data) < Size {
		return nil, fmt.Errorf("%w: header truncated (%d of %d bytes)", fpzerr.ErrCorruptInput, len(data), Size)
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != Magic {
		return nil, fmt.Errorf("%w: bad magic 0x%08X", fpzerr.ErrCorruptInput, magic)
	}

	version := binary.LittleEndian.Uint16(data[4:6])
	if version != CurrentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", fpzerr.ErrCorruptInput, version)
	}

	typ := SampleType(data[6])
	if typ != TypeFloat32 && typ != TypeFloat64 {
		return nil, fmt.Errorf("%w: invalid type byte %d", fpzerr.ErrCorruptInput, typ)
	}

	h := &Header{
		Version: version,
		Type:    typ,
		NX:      binary.LittleEndian.Uint32(data[8:12]),
		NY:      binary.LittleEndian.Uint32(data[12:16]),
		NZ:      binary.LittleEndian.Uint32(data[16:20]),
		NF:      binary.LittleEndian.Uint32(data[20:24]),
	}

	if h.NX == 0 || h.NY == 0 || h.NZ == 0 || h.NF == 0 {
		return nil, fmt.Errorf("%w: non-positive dimension %dx%dx%dx%d", fpzerr.ErrCorruptInput, h.NX, h.NY, h.NZ, h.NF)
	}

	return h, nil
}
