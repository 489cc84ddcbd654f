package w3g

import "testing"

func TestInferSavingPlayerSingleCandidate(t *testing.T) {
	players := map[uint8]*Player{
		1: {BattleTag: "Alice", LeaveReason: LeaveReasonConnectionClosedByLocalGame},
		2: {BattleTag: "Bob", LeaveReason: LeaveReasonConnectionClosedByRemoteGame},
	}
	got := inferSavingPlayer(players)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("inferSavingPlayer() = %v, want [1]", got)
	}
}

func TestInferSavingPlayerExcludesBotProxy(t *testing.T) {
	players := map[uint8]*Player{
		1: {BattleTag: "FLO", LeaveReason: LeaveReasonConnectionClosedByLocalGame},
		2: {BattleTag: "Alice", LeaveReason: LeaveReasonConnectionClosedByLocalGame},
	}
	got := inferSavingPlayer(players)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("inferSavingPlayer() = %v, want [2] (FLO excluded)", got)
	}
}

func TestInferSavingPlayerNoCandidates(t *testing.T) {
	players := map[uint8]*Player{
		1: {BattleTag: "Alice", LeaveReason: LeaveReasonUnknown},
	}
	if got := inferSavingPlayer(players); len(got) != 0 {
		t.Fatalf("inferSavingPlayer() = %v, want empty", got)
	}
}
