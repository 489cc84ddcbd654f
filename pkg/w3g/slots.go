package w3g

// gameStart is the result of 4.E's slot-table parse: the ordered slots
// plus the trailing random_seed/selection_mode/start_spot_count fields.
type gameStart struct {
	slots            []Slot
	randomSeed       uint32
	selectionMode    uint8
	startSpotCount   uint8
}

const slotRecordSize = 9

// parseGameStart implements spec.md 4.E. The cursor must be positioned at
// the 0x19 GameStartRecord id, as left by parseHeader.
func parseGameStart(c *cursor) (*gameStart, error) {
	if _, err := c.readU8(); err != nil { // record id, already validated
		return nil, err
	}
	if _, err := c.readU16(); err != nil { // data_length, advisory only
		return nil, err
	}
	count, err := c.readU8()
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, count)
	for i := uint8(0); i < count; i++ {
		raw, err := c.readExact(slotRecordSize)
		if err != nil {
			return nil, err
		}
		slots = append(slots, Slot{
			PlayerID:           raw[0],
			MapDownloadPercent: raw[1],
			Status:             slotStatusFromRaw(raw[2]),
			IsComputer:         raw[3] == 1,
			TeamIndex:          raw[4],
			Color:              slotColorFromRaw(raw[5]),
			Race:               slotRaceFromRaw(raw[6]),
			AIStrength:         aiStrengthFromRaw(raw[7]),
			HandicapPercent:    raw[8],
		})
	}

	randomSeed, err := c.readU32()
	if err != nil {
		return nil, err
	}
	selectionMode, err := c.readU8()
	if err != nil {
		return nil, err
	}
	startSpotCount, err := c.readU8()
	if err != nil {
		return nil, err
	}

	return &gameStart{
		slots:          slots,
		randomSeed:     randomSeed,
		selectionMode:  selectionMode,
		startSpotCount: startSpotCount,
	}, nil
}
