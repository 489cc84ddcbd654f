// Package w3g decodes Warcraft III replay (.w3g) files: a container of
// zlib-compressed blocks wrapping a self-delimiting record stream of
// player records, game settings, slot tables, and an action sub-protocol.
//
// Basic usage:
//
//	data, err := os.ReadFile("my_replay.w3g")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := w3g.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Game: %s\n", report.Metadata.GameName)
//	fmt.Printf("Map: %s\n", report.Metadata.MapName)
//
//	for id, player := range report.Players {
//	    fmt.Printf("  %d: %s (%s)\n", id, player.BattleTag, player.LeaveReason)
//	}
package w3g
