package w3g

import "github.com/rs/zerolog"

const (
	recLeaveGame  = 0x17
	recSkip4A     = 0x1A
	recSkip4B     = 0x1B
	recSkip4C     = 0x1C
	recTimeSlot1  = 0x1E
	recTimeSlot2  = 0x1F
	recChat       = 0x20
	recSkip5      = 0x22
	recSkip10     = 0x23
	recSkip8      = 0x2F
	recTerminator = 0x00
)

// recordStreamState carries the mutable state threaded through 4.F's
// dispatch loop and 4.G's action sub-parser: the running game clock, the
// player table being updated in place, and the accumulated chat/action
// timelines.
type recordStreamState struct {
	c       *cursor
	logger  zerolog.Logger
	players map[uint8]*Player

	currentTimestampMs uint64
	chat               []ChatMessage
	actions            []Action

	hasLeaver       bool
	lastLeaverIndex uint8

	unknownRecordCount int
	unknownOpcodeCount int
}

// parseRecordStream implements spec.md 4.F: walk the post-game record
// stream, dispatching on the leading record id byte, until a 0x00
// terminator, an unknown record id, or end of buffer.
func parseRecordStream(c *cursor, players map[uint8]*Player, logger zerolog.Logger) (*recordStreamState, error) {
	st := &recordStreamState{c: c, logger: logger, players: players}

	for {
		if c.remaining() == 0 {
			break
		}
		id, err := c.readU8()
		if err != nil {
			return st, err
		}

		switch id {
		case recLeaveGame:
			if err := st.handleLeaveGame(); err != nil {
				return st, err
			}
		case recSkip4A, recSkip4B, recSkip4C:
			if err := c.skip(4); err != nil {
				return st, err
			}
		case recTimeSlot1, recTimeSlot2:
			if err := st.handleTimeSlot(); err != nil {
				return st, err
			}
		case recChat:
			if err := st.handleChatMessage(); err != nil {
				return st, err
			}
		case recSkip5:
			if err := c.skip(5); err != nil {
				return st, err
			}
		case recSkip10:
			if err := c.skip(10); err != nil {
				return st, err
			}
		case recSkip8:
			if err := c.skip(8); err != nil {
				return st, err
			}
		case recTerminator:
			return st, nil
		default:
			st.unknownRecordCount++
			logger.Warn().Uint8("record_id", id).Msg("w3g: unknown record id, stopping record stream")
			return st, nil
		}
	}

	return st, nil
}

func (st *recordStreamState) handleLeaveGame() error {
	reasonRaw, err := st.c.readU32()
	if err != nil {
		return err
	}
	playerID, err := st.c.readU8()
	if err != nil {
		return err
	}
	result, err := st.c.readU32()
	if err != nil {
		return err
	}
	if err := st.c.skip(4); err != nil {
		return err
	}

	p, ok := st.players[playerID]
	if !ok {
		p = &Player{}
		st.players[playerID] = p
	}
	p.LeaveReason = leaveReasonFromRaw(reasonRaw)
	p.ResultByte = uint8(result & 0xFF)

	st.hasLeaver = true
	st.lastLeaverIndex = playerID

	return nil
}

func (st *recordStreamState) handleChatMessage() error {
	sender, err := st.c.readU8()
	if err != nil {
		return err
	}
	if err := st.c.skip(2); err != nil {
		return err
	}
	flag, err := st.c.readU8()
	if err != nil {
		return err
	}
	recipientRaw, err := st.c.readU32()
	if err != nil {
		return err
	}
	message, err := st.c.readCString()
	if err != nil {
		return err
	}

	// spec.md 9: treat the recipient as a signed 8-bit reinterpretation of
	// (raw - 2) mod 256, matching observed underflow behavior for raw < 2.
	recipient := int8(byte(recipientRaw - 2))

	st.chat = append(st.chat, ChatMessage{
		SenderPlayerID:      sender,
		RecipientSlotNumber: &recipient,
		Flag:                &flag,
		Message:             message,
		TimestampMs:         st.currentTimestampMs,
	})
	return nil
}
