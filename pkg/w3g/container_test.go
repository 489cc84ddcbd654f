package w3g

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"

	"github.com/rs/zerolog"
)

func zlibCompress(t *testing.T, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("zlib.Write() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zlib.Close() error: %v", err)
	}
	return buf.Bytes()
}

func buildFixedHeader(version uint8, numBlocks uint32) []byte {
	h := make([]byte, fixedHeaderSize)
	h[versionOffset] = version
	binary.LittleEndian.PutUint32(h[numBlocksOffset:], numBlocks)
	return h
}

func buildBlock(t *testing.T, payload []byte) []byte {
	t.Helper()
	compressed := zlibCompress(t, payload)
	header := make([]byte, blockHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(payload)))
	return concatBytes(header, compressed)
}

func TestDecodeContainerSingleBlock(t *testing.T) {
	payload := []byte("hello warcraft")
	data := concatBytes(
		buildFixedHeader(1, 1),
		make([]byte, extendedHeaderV1-fixedHeaderSize),
		buildBlock(t, payload),
	)

	inflated, version, err := decodeContainer(data, zerolog.Nop())
	if err != nil {
		t.Fatalf("decodeContainer() error: %v", err)
	}
	if version != 1 {
		t.Fatalf("version = %d, want 1", version)
	}
	if !bytes.Equal(inflated, payload) {
		t.Fatalf("inflated = %q, want %q", inflated, payload)
	}
}

func TestDecodeContainerMultiBlockConcatenates(t *testing.T) {
	p1 := []byte("block one ")
	p2 := []byte("block two")
	data := concatBytes(
		buildFixedHeader(0, 2),
		make([]byte, extendedHeaderV0-fixedHeaderSize),
		buildBlock(t, p1),
		buildBlock(t, p2),
	)

	inflated, version, err := decodeContainer(data, zerolog.Nop())
	if err != nil {
		t.Fatalf("decodeContainer() error: %v", err)
	}
	if version != 0 {
		t.Fatalf("version = %d, want 0", version)
	}
	want := append(append([]byte{}, p1...), p2...)
	if !bytes.Equal(inflated, want) {
		t.Fatalf("inflated = %q, want %q", inflated, want)
	}
}

func TestDecodeContainerTruncatedBlockCountTolerated(t *testing.T) {
	payload := []byte("only one block present")
	data := concatBytes(
		buildFixedHeader(1, 5), // claims 5 blocks but only 1 is present
		make([]byte, extendedHeaderV1-fixedHeaderSize),
		buildBlock(t, payload),
	)

	inflated, _, err := decodeContainer(data, zerolog.Nop())
	if err != nil {
		t.Fatalf("decodeContainer() error: %v, want nil (tolerated truncation)", err)
	}
	if !bytes.Equal(inflated, payload) {
		t.Fatalf("inflated = %q, want %q", inflated, payload)
	}
}
