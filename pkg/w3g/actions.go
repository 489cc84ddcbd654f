package w3g

import "fmt"

// actionHandler decodes the body of one opcode-prefixed action (the
// cursor is positioned just past the opcode byte) and returns any payload
// data the action carries. The amount consumed is whatever the handler
// itself reads from the cursor.
type actionHandler func(c *cursor) (*ActionData, error)

func fixedSkip(n int) actionHandler {
	return func(c *cursor) (*ActionData, error) {
		if n == 0 {
			return nil, nil
		}
		return nil, c.skip(n)
	}
}

func handleSaveGame(c *cursor) (*ActionData, error) {
	name, err := c.readCString()
	if err != nil {
		return nil, err
	}
	return &ActionData{SavegameName: name}, nil
}

func handleSelectionLike(c *cursor) (*ActionData, error) {
	if _, err := c.readU8(); err != nil { // mode / group
		return nil, err
	}
	n, err := c.readU16()
	if err != nil {
		return nil, err
	}
	return nil, c.skip(8 * int(n))
}

func handleMinimapSignal(c *cursor) (*ActionData, error) {
	x, err := c.readU32()
	if err != nil {
		return nil, err
	}
	y, err := c.readU32()
	if err != nil {
		return nil, err
	}
	return &ActionData{Location: &MinimapLocation{X: x, Y: y}}, nil
}

// actionOpcodeTable is the single dispatch table spec.md 9 calls for:
// opcode -> handler, rather than a long conditional. 0x60 (ChatCommand) is
// not in the table: walkActionBlock handles it in its own branch. Any other
// opcode not present here takes the default path in walkActionBlock.
var actionOpcodeTable = map[byte]actionHandler{
	0x01: fixedSkip(0), // PAUSE
	0x02: fixedSkip(0), // RESUME
	0x03: fixedSkip(1),
	0x04: fixedSkip(0),
	0x05: fixedSkip(0),
	0x06: handleSaveGame, // SAVE_GAME
	0x07: fixedSkip(4),   // SAVE_GAME_DONE
	0x10: fixedSkip(14),
	0x11: fixedSkip(22),
	0x12: fixedSkip(30),
	0x13: fixedSkip(38),
	0x14: fixedSkip(43),
	0x16: handleSelectionLike, // SelectionChange
	0x17: handleSelectionLike, // AssignGroupHotkey
	0x18: fixedSkip(2),
	0x19: fixedSkip(12),
	0x1A: fixedSkip(0),
	0x1B: fixedSkip(9),
	0x1C: fixedSkip(9),
	0x1D: fixedSkip(8),
	0x1E: fixedSkip(5),
	0x20: fixedSkip(0),
	0x21: fixedSkip(8),
	0x22: fixedSkip(0),
	0x23: fixedSkip(0),
	0x24: fixedSkip(0),
	0x25: fixedSkip(0),
	0x26: fixedSkip(0),
	0x27: fixedSkip(5),
	0x29: fixedSkip(0),
	0x2A: fixedSkip(0),
	0x2B: fixedSkip(0),
	0x2C: fixedSkip(0),
	0x2D: fixedSkip(5),
	0x2E: fixedSkip(4),
	0x2F: fixedSkip(0),
	0x30: fixedSkip(0),
	0x31: fixedSkip(0),
	0x32: fixedSkip(0),
	0x50: fixedSkip(5),
	0x51: fixedSkip(9),
	0x61: fixedSkip(0),
	0x62: fixedSkip(12),
	0x66: fixedSkip(0),
	0x67: fixedSkip(0),
	0x68: handleMinimapSignal, // MINIMAP_SIGNAL
	0x69: fixedSkip(16),
	0x6A: fixedSkip(16),
	0x75: fixedSkip(1),
	0x7A: fixedSkip(20),
	0x7B: fixedSkip(16),
}

// chatCommandDedupWindowMs is the 500ms absorption window spec.md 3/8
// defines for the 0x60 ChatCommand dedup-against-0x20-or-earlier-0x60 path.
const chatCommandDedupWindowMs = 500

func handleChatCommand(st *recordStreamState, playerID uint8) error {
	if err := st.c.skip(8); err != nil {
		return err
	}
	command, err := st.c.readCString()
	if err != nil {
		return err
	}

	for i := len(st.chat) - 1; i >= 0; i-- {
		existing := st.chat[i]
		if existing.Message != command {
			continue
		}
		delta := int64(st.currentTimestampMs) - int64(existing.TimestampMs)
		if delta < 0 {
			delta = -delta
		}
		if delta < chatCommandDedupWindowMs {
			// Absorbed: an existing message with the same text arrived
			// within the window, so the 0x60 duplicate is dropped.
			return nil
		}
	}

	st.chat = append(st.chat, ChatMessage{
		SenderPlayerID: playerID,
		Message:        command,
		TimestampMs:    st.currentTimestampMs,
	})
	return nil
}

// handleTimeSlot implements spec.md 4.G's TimeSlot framing and
// action-block loop for a 0x1E/0x1F record.
func (st *recordStreamState) handleTimeSlot() error {
	lenFollowing, err := st.c.readU16()
	if err != nil {
		return err
	}
	increment, err := st.c.readU16()
	if err != nil {
		return err
	}
	st.currentTimestampMs += uint64(increment)

	remaining := int(lenFollowing) - 2
	totalLen := remaining
	startPos := st.c.position()

	for remaining > 3 {
		actorID, err := st.c.readU8()
		if err != nil {
			return err
		}
		blockLen, err := st.c.readU16()
		if err != nil {
			return err
		}
		remaining -= 3

		if p, ok := st.players[actorID]; ok {
			p.LeftAtMs = st.currentTimestampMs
		}

		consumed, err := st.walkActionBlock(actorID, int(blockLen))
		if err != nil {
			return err
		}
		remaining -= consumed
	}

	consumedTotal := st.c.position() - startPos
	if consumedTotal != totalLen {
		st.logger.Warn().
			Int("consumed", consumedTotal).
			Int("declared", totalLen).
			Msg("w3g: TimeSlot consumed length did not match declared length")
	}

	return nil
}

// walkActionBlock walks exactly blockLen bytes of opcode-prefixed actions
// attributed to actorID. When the walk completes it returns blockLen; an
// unknown opcode first skips the rest of the block and then returns
// blockLen as well. On a read error it returns the bytes consumed up to the
// failure together with the error.
func (st *recordStreamState) walkActionBlock(actorID uint8, blockLen int) (int, error) {
	blockStart := st.c.position()
	remaining := blockLen

	for remaining > 0 {
		opcode, err := st.c.readU8()
		if err != nil {
			return st.c.position() - blockStart, err
		}
		remaining--

		if opcode == 0x60 {
			beforeCmd := st.c.position()
			if err := handleChatCommand(st, actorID); err != nil {
				return st.c.position() - blockStart, err
			}
			remaining -= st.c.position() - beforeCmd

			st.actions = append(st.actions, Action{
				PlayerID:    actorID,
				TimestampMs: st.currentTimestampMs,
				ActionType:  actionTypeFromOpcode(0x60),
				Data:        nil,
			})
			continue
		}

		handler, ok := actionOpcodeTable[opcode]
		if !ok {
			st.unknownOpcodeCount++
			st.logger.Warn().
				Uint8("actor", actorID).
				Str("opcode", fmt.Sprintf("0x%02x", opcode)).
				Msg("w3g: unknown action opcode, skipping remainder of actor block")
			if err := st.c.skip(remaining); err != nil {
				return st.c.position() - blockStart, err
			}
			return blockLen, nil
		}

		before := st.c.position()
		data, err := handler(st.c)
		if err != nil {
			return st.c.position() - blockStart, err
		}
		remaining -= st.c.position() - before

		st.actions = append(st.actions, Action{
			PlayerID:   actorID,
			TimestampMs: st.currentTimestampMs,
			ActionType: actionTypeFromOpcode(opcode),
			Data:       data,
		})
	}

	return blockLen, nil
}
