package w3g

// knownBotProxyBattleTag is the one hard-coded exclusion spec.md 4.H names
// when disambiguating among multiple saving-player candidates.
const knownBotProxyBattleTag = "FLO"

// inferSavingPlayer implements spec.md 4.H's saving-player inference.
// Candidates are players whose leave reason is
// CONNECTION_CLOSED_BY_LOCAL_GAME. When there is more than one, candidates
// with the known bot-proxy battle tag are dropped, unless that would leave
// none. All remaining ids are returned, in map iteration order; no single
// candidate is picked. The set is returned so callers can inspect it
// (spec.md 9, open question: the documented contract uses
// last_leaver_index, not this candidate set).
func inferSavingPlayer(players map[uint8]*Player) []uint8 {
	var candidates []uint8
	for id, p := range players {
		if p.LeaveReason == LeaveReasonConnectionClosedByLocalGame {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) <= 1 {
		return candidates
	}

	var filtered []uint8
	for _, id := range candidates {
		if players[id].BattleTag != knownBotProxyBattleTag {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) > 0 {
		return filtered
	}
	return candidates
}
