package w3g

import "testing"

func TestParseGameStartSlots(t *testing.T) {
	slotBytes := []byte{
		1,    // player_id
		100,  // map_download_percent
		2,    // status raw -> OCCUPIED
		0,    // is_computer
		0,    // team_index
		24,   // color raw -> OBSERVER (spec.md 8 scenario 2)
		1,    // race raw -> HUMAN
		127,  // ai_strength raw -> UNKNOWN
		50,   // handicap_percent
	}

	data := concatBytes(
		[]byte{0x19},
		u16le(4),
		[]byte{0x01}, // count_slotrecords
		slotBytes,
		u32le(0xCAFEBABE), // random_seed
		[]byte{0x03},      // selection_mode
		[]byte{0x08},      // start_spot_count
	)

	gs, err := parseGameStart(newCursor(data))
	if err != nil {
		t.Fatalf("parseGameStart() error: %v", err)
	}

	if len(gs.slots) != 1 {
		t.Fatalf("len(slots) = %d, want 1", len(gs.slots))
	}
	s := gs.slots[0]
	if s.PlayerID != 1 || s.MapDownloadPercent != 100 {
		t.Errorf("slot = %+v, want PlayerID=1 MapDownloadPercent=100", s)
	}
	if s.Status != SlotStatusOccupied {
		t.Errorf("Status = %v, want OCCUPIED", s.Status)
	}
	if s.Color != SlotColorObserver {
		t.Errorf("Color = %v, want OBSERVER", s.Color)
	}
	if s.Race != SlotRaceHuman {
		t.Errorf("Race = %v, want HUMAN", s.Race)
	}
	if s.AIStrength != ComputerAIUnknown {
		t.Errorf("AIStrength = %v, want UNKNOWN", s.AIStrength)
	}
	if gs.randomSeed != 0xCAFEBABE {
		t.Errorf("randomSeed = 0x%X, want 0xCAFEBABE", gs.randomSeed)
	}
	if gs.selectionMode != 3 || gs.startSpotCount != 8 {
		t.Errorf("selectionMode/startSpotCount = %d/%d, want 3/8", gs.selectionMode, gs.startSpotCount)
	}
}
