package w3g

// parsedHeader is the accumulated result of 4.D's header/metadata walk
// over the inflated stream. The slot-table parser (4.E) then continues
// reading from the same cursor.
type parsedHeader struct {
	hostOfGame bool
	hostID     uint8
	gameName   string
	settings   GameSettings
	mapName    string
	gameCreator string
	players    map[uint8]*Player
}

const (
	recPlayerHost       = 0x00
	recPlayerAdditional = 0x16
	recReforgedMeta     = 0x39
	recGameStart        = 0x19
)

// parseHeader implements spec.md 4.D: PlayerRecord, GameName, encoded
// settings, GameSettings bit layout, map/creator names, the trailing
// PlayerCount/GameType/LanguageID fields, the PlayerList peek-loop, and
// the optional Reforged metadata peek-loop, ending just before the
// GameStartRecord that 4.E consumes.
func parseHeader(c *cursor) (*parsedHeader, error) {
	h := &parsedHeader{players: make(map[uint8]*Player)}

	isHostByte, err := c.readU8()
	if err != nil {
		return nil, err
	}
	h.hostOfGame = isHostByte == 0x00

	hostID, err := c.readU8()
	if err != nil {
		return nil, err
	}
	h.hostID = hostID

	if err := c.skip(4); err != nil {
		return nil, err
	}

	hostName, err := c.readCString()
	if err != nil {
		return nil, err
	}

	k, err := c.readU8()
	if err != nil {
		return nil, err
	}
	if err := c.skip(int(k)); err != nil {
		return nil, err
	}

	h.players[hostID] = &Player{BattleTag: hostName, LeaveReason: LeaveReasonUnknown}

	gameName, err := c.readCString()
	if err != nil {
		return nil, err
	}
	h.gameName = gameName
	if err := c.skip(1); err != nil {
		return nil, err
	}

	encodedSettings, err := readUntilAndConsumeNUL(c)
	if err != nil {
		return nil, err
	}
	settingsBuf, err := decodeSettingsBitmask(encodedSettings)
	if err != nil {
		return nil, err
	}
	h.settings = decodeGameSettings(settingsBuf)

	if len(settingsBuf) > 13 {
		sc := newCursor(settingsBuf)
		if err := sc.seekAbsolute(13); err != nil {
			return nil, err
		}
		mapName, err := sc.readCString()
		if err == nil {
			h.mapName = mapName
			if creator, err := sc.readCString(); err == nil {
				h.gameCreator = creator
			}
		}
	}

	if _, err := c.readU32(); err != nil { // PlayerCount, unused downstream
		return nil, err
	}
	if err := c.skip(2); err != nil { // GameType byte, byte
		return nil, err
	}
	if err := c.skip(2); err != nil { // remainder of GameType record
		return nil, err
	}
	if err := c.skip(4); err != nil { // LanguageID
		return nil, err
	}

	for {
		if c.remaining() == 0 {
			break
		}
		peek := c.b[c.pos]
		if peek != recPlayerHost && peek != recPlayerAdditional {
			break
		}
		if _, err := c.readU8(); err != nil {
			return nil, err
		}
		playerID, err := c.readU8()
		if err != nil {
			return nil, err
		}
		name, err := c.readCString()
		if err != nil {
			return nil, err
		}
		k, err := c.readU8()
		if err != nil {
			return nil, err
		}
		if err := c.skip(int(k)); err != nil {
			return nil, err
		}
		h.players[playerID] = &Player{BattleTag: name, LeaveReason: LeaveReasonUnknown}
	}

	for {
		if c.remaining() == 0 {
			break
		}
		if c.b[c.pos] != recReforgedMeta {
			break
		}
		if _, err := c.readU8(); err != nil {
			return nil, err
		}
		if _, err := c.readU8(); err != nil { // subtype
			return nil, err
		}
		length, err := c.readU32()
		if err != nil {
			return nil, err
		}
		if err := c.skip(int(length)); err != nil {
			return nil, err
		}
	}

	if c.remaining() == 0 || c.b[c.pos] != recGameStart {
		var actual byte
		if c.remaining() > 0 {
			actual = c.b[c.pos]
		}
		return nil, &ProtocolViolationError{Expected: "GameStartRecord (0x19)", Actual: actual, Offset: c.pos}
	}

	return h, nil
}

// readUntilAndConsumeNUL reads bytes up to and including the next 0x00,
// returning the bytes before it (the terminator itself is not included,
// matching 4.D.3's "through (inclusive) the next 0x00" read followed by
// feeding the buffer without its terminator into the bitmask decoder).
func readUntilAndConsumeNUL(c *cursor) ([]byte, error) {
	start := c.pos
	for {
		if c.pos >= len(c.b) {
			return nil, &ShortReadError{Op: "read_encoded_settings", Offset: start, Want: 1, Have: 0}
		}
		if c.b[c.pos] == 0x00 {
			break
		}
		c.pos++
	}
	raw := c.b[start:c.pos]
	c.pos++ // consume terminator
	return raw, nil
}

// decodeGameSettings applies the bit layout of spec.md 4.D.4 to the
// decoded settings buffer's first four bytes.
func decodeGameSettings(buf []byte) GameSettings {
	var s GameSettings
	if len(buf) < 1 {
		return s
	}
	b0 := buf[0]
	s.GameSpeed = b0 & 0x03

	if len(buf) < 2 {
		return s
	}
	b1 := buf[1]
	s.VisHideTerrain = b1&(1<<0) != 0
	s.VisMapExplored = b1&(1<<1) != 0
	s.VisAlwaysVisible = b1&(1<<2) != 0
	s.VisDefault = b1&(1<<3) != 0
	s.ObsMode = (b1 >> 4) & 0x03
	s.TeamsTogether = b1&(1<<6) != 0

	if len(buf) < 3 {
		return s
	}
	b2 := buf[2]
	s.FixedTeams = (b2 >> 1) & 0x03

	if len(buf) < 4 {
		return s
	}
	b3 := buf[3]
	s.SharedUnitControl = b3&(1<<0) != 0
	s.RandomHero = b3&(1<<1) != 0
	s.RandomRaces = b3&(1<<2) != 0
	s.ObsReferees = b3&(1<<6) != 0

	return s
}
