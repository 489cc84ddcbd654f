package w3g

// decodeSettingsBitmask decodes the game-settings encoding: input grouped
// into 8-byte frames, the first byte of each frame a mask byte. Byte i of
// the frame (1 <= i <= 7) is emitted as-is if bit i of the mask is set,
// otherwise emitted as b-1. The encoding exists because the source data
// may contain embedded 0x00 bytes that would otherwise terminate the
// surrounding cstring-oriented stream.
func decodeSettingsBitmask(encoded []byte) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, &ShortReadError{Op: "decode_settings_bitmask", Offset: 0, Want: 1, Have: 0}
	}

	out := make([]byte, 0, len(encoded))
	for frameStart := 0; frameStart < len(encoded); frameStart += 8 {
		frameEnd := frameStart + 8
		if frameEnd > len(encoded) {
			frameEnd = len(encoded)
		}
		frame := encoded[frameStart:frameEnd]
		mask := frame[0]
		for i := 1; i < len(frame); i++ {
			b := frame[i]
			if mask&(1<<uint(i)) != 0 {
				out = append(out, b)
			} else {
				out = append(out, b-1)
			}
		}
	}
	return out, nil
}
