package w3g

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/rs/zerolog"
)

const (
	fixedHeaderSize    = 48
	extendedHeaderV0   = 64
	extendedHeaderV1   = 68
	blockHeaderSize    = 12
	versionOffset      = 0x24
	numBlocksOffset    = 0x2C
)

// decodeContainer implements spec.md 4.C: validate the fixed header, walk
// the compressed block sequence, inflate each block with a reused zlib
// decoder, and concatenate the results into one logical byte stream.
func decodeContainer(data []byte, logger zerolog.Logger) (inflated []byte, version uint8, err error) {
	c := newCursor(data)

	if err := c.require(fixedHeaderSize); err != nil {
		return nil, 0, err
	}
	fixed, err := c.readExact(fixedHeaderSize)
	if err != nil {
		return nil, 0, err
	}
	version = fixed[versionOffset]
	numDataBlocks := binary.LittleEndian.Uint32(fixed[numBlocksOffset : numBlocksOffset+4])

	extendedLen := extendedHeaderV1
	if version == 0 {
		extendedLen = extendedHeaderV0
	}
	if extra := extendedLen - fixedHeaderSize; extra > 0 {
		if err := c.skip(extra); err != nil {
			// Extended header truncation is still part of the fixed
			// structural prefix: fatal, per spec.md 7.
			return nil, version, err
		}
	}

	var out bytes.Buffer
	var inf io.ReadCloser

	for i := uint32(0); i < numDataBlocks; i++ {
		blockHeader, err := c.readExact(blockHeaderSize)
		if err != nil {
			// Tolerated truncation at a block boundary (spec.md 4.C.4):
			// stop cleanly with whatever has been collected so far.
			logger.Warn().Uint32("block", i).Msg("w3g: block header truncated at EOF, stopping block walk")
			break
		}
		compressedLen := binary.LittleEndian.Uint32(blockHeader[0:4])

		compressed, err := c.readExact(int(compressedLen))
		if err != nil {
			// Compressed payload truncated: recoverable, skip the block
			// without appending anything (spec.md 4.C.5).
			logger.Warn().Uint32("block", i).Msg("w3g: compressed block data truncated, skipping block")
			continue
		}

		if inf == nil {
			inf, err = zlib.NewReader(bytes.NewReader(compressed))
			if err != nil {
				logger.Warn().Uint32("block", i).Err(err).Msg("w3g: decompression failed, skipping block")
				inf = nil
				continue
			}
		} else if resetter, ok := inf.(zlib.Resetter); ok {
			if err := resetter.Reset(bytes.NewReader(compressed), nil); err != nil {
				logger.Warn().Uint32("block", i).Err(err).Msg("w3g: decompression failed, skipping block")
				continue
			}
		} else {
			inf, err = zlib.NewReader(bytes.NewReader(compressed))
			if err != nil {
				logger.Warn().Uint32("block", i).Err(err).Msg("w3g: decompression failed, skipping block")
				continue
			}
		}

		n, readErr := io.Copy(&out, inf)
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			logger.Warn().Uint32("block", i).Err(readErr).Msg("w3g: decompression failed, skipping block")
			// Roll back any partial bytes this block appended: skipping a
			// failed block must not corrupt concatenation (spec.md 4.C.5).
			out.Truncate(out.Len() - int(n))
			continue
		}
	}

	return out.Bytes(), version, nil
}
