package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	metadataSignature = 0x424A5342 // "BSJB"
	metadataRootSize  = 16         // signature, versions, reserved, version length

	compressedTablesStream   = "#~"
	uncompressedTablesStream = "#-"
	stringsStream            = "#Strings"
	blobStream               = "#Blob"
)

// parseStreams reads the stream headers of a metadata root and slices out each stream.
func parseStreams(root []byte) (map[string][]byte, error) {
	if len(root) < metadataRootSize || binary.LittleEndian.Uint32(root) != metadataSignature {
		return nil, fmt.Errorf("%w: bad metadata signature", ErrMalformedMetadata)
	}

	versionLength := uint64(binary.LittleEndian.Uint32(root[12:]))
	position := uint64(metadataRootSize) + align4(versionLength)
	if position+4 > uint64(len(root)) {
		return nil, fmt.Errorf("%w: truncated metadata root", ErrMalformedMetadata)
	}

	count := int(binary.LittleEndian.Uint16(root[position+2:])) // preceded by Flags
	position += 4

	streams := make(map[string][]byte, count)
	for range count {
		if position+8 > uint64(len(root)) {
			return nil, fmt.Errorf("%w: truncated stream header", ErrMalformedMetadata)
		}
		offset := uint64(binary.LittleEndian.Uint32(root[position:]))
		size := uint64(binary.LittleEndian.Uint32(root[position+4:]))
		position += 8

		terminator := bytes.IndexByte(root[position:], 0)
		if terminator < 0 {
			return nil, fmt.Errorf("%w: unterminated stream name", ErrMalformedMetadata)
		}
		name := string(root[position : position+uint64(terminator)])
		position += align4(uint64(terminator) + 1)

		if offset+size > uint64(len(root)) {
			return nil, fmt.Errorf("%w: stream %q exceeds metadata", ErrMalformedMetadata, name)
		}
		streams[name] = root[offset : offset+size]
	}

	return streams, nil
}

func align4(value uint64) uint64 {
	return (value + 3) &^ 3 //nolint:mnd // 4-byte alignment
}

// heaps gives access to the #Strings and #Blob heaps.
type heaps struct {
	stringHeap []byte
	blobHeap   []byte
}

// readString returns the null-terminated UTF-8 string at index.
func (it heaps) readString(index uint32) (string, error) {
	if index == 0 {
		return "", nil
	}
	if uint64(index) >= uint64(len(it.stringHeap)) {
		return "", fmt.Errorf("%w: string index %d out of range", ErrMalformedMetadata, index)
	}
	value := it.stringHeap[index:]
	if terminator := bytes.IndexByte(value, 0); terminator >= 0 {
		value = value[:terminator]
	}
	return string(value), nil
}

// readBlob returns the blob at index, decoding its compressed length prefix.
func (it heaps) readBlob(index uint32) ([]byte, error) {
	if index == 0 {
		return nil, nil
	}
	if uint64(index) >= uint64(len(it.blobHeap)) {
		return nil, fmt.Errorf("%w: blob index %d out of range", ErrMalformedMetadata, index)
	}

	data := it.blobHeap[index:]
	length, prefix, ok := decodeCompressedLength(data)
	if !ok || uint64(prefix)+uint64(length) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: blob at %d is truncated", ErrMalformedMetadata, index)
	}
	return data[prefix : prefix+int(length)], nil
}

// decodeCompressedLength decodes an ECMA-335 compressed unsigned integer,
// returning the value and the number of bytes it occupied.
func decodeCompressedLength(data []byte) (uint32, int, bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	first := data[0]
	switch {
	case first&0x80 == 0:
		return uint32(first), 1, true
	case first&0xC0 == 0x80:
		if len(data) < 2 { //nolint:mnd // two-byte form
			return 0, 0, false
		}
		return uint32(first&0x3F)<<8 | uint32(data[1]), 2, true
	case first&0xE0 == 0xC0:
		if len(data) < 4 { //nolint:mnd // four-byte form
			return 0, 0, false
		}
		return uint32(first&0x1F)<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3]), 4, true
	default:
		return 0, 0, false
	}
}
