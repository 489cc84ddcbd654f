package w3g

// ReplayReport is the root output of a decode: everything recovered from
// one .w3g byte buffer.
type ReplayReport struct {
	Version  uint8          `json:"version"`
	Metadata Metadata       `json:"metadata"`
	Settings GameSettings   `json:"game_settings"`
	Slots    []Slot         `json:"slots"`
	Players  map[uint8]*Player `json:"players"`
	Chat     []ChatMessage  `json:"chat"`
	Actions  []Action       `json:"actions"`
}

// Metadata carries the header-level facts about the recorded game.
type Metadata struct {
	SavingPlayerID uint8  `json:"saving_player_id"`
	HostOfGame     bool   `json:"host_of_game"`
	GameName       string `json:"game_name"`
	MapName        string `json:"map_name"`
	GameCreator    string `json:"game_creator_battle_tag"`

	// SavingPlayerCandidateIDs is the leave-reason-filtered candidate set
	// computed during post-processing (spec.md 9, open question). The
	// documented contract (SavingPlayerID = last leaver) is preserved as
	// the primary field; this is exposed in addition, not instead.
	SavingPlayerCandidateIDs []uint8 `json:"saving_player_candidate_ids,omitempty"`
}

// GameSettings is the decoded bit layout of the encoded settings buffer
// (spec.md 4.D.4).
type GameSettings struct {
	GameSpeed uint8 `json:"game_speed"`

	VisHideTerrain   bool `json:"hide_terrain"`
	VisMapExplored   bool `json:"map_explored"`
	VisAlwaysVisible bool `json:"always_visible"`
	VisDefault       bool `json:"default"`

	ObsMode       uint8 `json:"obs_mode"`
	TeamsTogether bool  `json:"teams_together"`

	FixedTeams uint8 `json:"fixed_teams"`

	SharedUnitControl bool `json:"shared_unit_control"`
	RandomHero        bool `json:"random_hero"`
	RandomRaces       bool `json:"random_races"`
	ObsReferees       bool `json:"obs_referees"`
}

// Slot is one configured seat in the game lobby.
type Slot struct {
	PlayerID            uint8              `json:"player_id"`
	MapDownloadPercent  uint8              `json:"map_download_percent"`
	Status              SlotStatus         `json:"status"`
	IsComputer          bool               `json:"is_computer"`
	TeamIndex           uint8              `json:"team_index"`
	Color               SlotColor          `json:"color"`
	Race                SlotRace           `json:"race"`
	AIStrength          ComputerAIStrength `json:"ai_strength"`
	HandicapPercent     uint8              `json:"handicap_percent"`
}

// Player is one participant tracked across the PlayerRecord, PlayerList,
// and leave-event sources (spec.md 3's "every key of players" invariant).
type Player struct {
	BattleTag   string      `json:"battle_tag"`
	LeaveReason LeaveReason `json:"leave_reason"`
	ResultByte  uint8       `json:"result_byte"`
	LeftAtMs    uint64      `json:"left_at"`
}

// ChatMessage is one chat line attributed to a sender and timestamp.
type ChatMessage struct {
	SenderPlayerID     uint8  `json:"sender_player_id"`
	RecipientSlotNumber *int8 `json:"recipient_slot_number,omitempty"`
	Flag               *uint8 `json:"flag,omitempty"`
	Message            string `json:"message"`
	TimestampMs        uint64 `json:"timestamp"`
}

// ActionData carries the optional payload a handful of action opcodes
// decode beyond the common player_id/timestamp/action_type envelope.
type ActionData struct {
	Location     *MinimapLocation `json:"location,omitempty"`
	SavegameName string           `json:"savegame_name,omitempty"`
}

// MinimapLocation is the {x,y} payload of a MINIMAP_SIGNAL action.
type MinimapLocation struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
}

// Action is one decoded entry from the action-stream sub-protocol.
type Action struct {
	PlayerID   uint8      `json:"player_id"`
	TimestampMs uint64    `json:"timestamp"`
	ActionType ActionType `json:"action_type"`
	Data       *ActionData `json:"data,omitempty"`
}
