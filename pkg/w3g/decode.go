package w3g

import "github.com/rs/zerolog"

// Option configures a Decode call. The zero value of every option is its
// default, so Decode(data) alone is always valid.
type Option func(*decodeOptions)

type decodeOptions struct {
	logger zerolog.Logger
}

// WithLogger injects a logger for the recoverable/tolerated paths spec.md
// 7 describes (skipped blocks, truncated headers, unknown record ids and
// opcodes). The default is zerolog.Nop(): silent, matching "Logging is
// injected... silent in production decoding" (spec.md 9).
func WithLogger(logger zerolog.Logger) Option {
	return func(o *decodeOptions) {
		o.logger = logger
	}
}

// Decode implements the full two-stage pipeline of spec.md 1-4 over an
// in-memory .w3g byte buffer: container (C) -> header (D) -> slot table
// (E) -> record stream (F, delegating to the action sub-parser G) ->
// post-processing (H) -> report assembly (I).
func Decode(data []byte, opts ...Option) (*ReplayReport, error) {
	options := decodeOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&options)
	}

	inflated, version, err := decodeContainer(data, options.logger)
	if err != nil {
		return nil, err
	}

	c := newCursor(inflated)

	hdr, err := parseHeader(c)
	if err != nil {
		return nil, err
	}

	gs, err := parseGameStart(c)
	if err != nil {
		return nil, err
	}

	st, err := parseRecordStream(c, hdr.players, options.logger)
	if err != nil {
		return nil, err
	}

	candidateIDs := inferSavingPlayer(hdr.players)

	var savingPlayerID uint8
	if st.hasLeaver {
		savingPlayerID = st.lastLeaverIndex
	}

	report := &ReplayReport{
		Version: version,
		Metadata: Metadata{
			SavingPlayerID:           savingPlayerID,
			HostOfGame:               hdr.hostOfGame,
			GameName:                 hdr.gameName,
			MapName:                  hdr.mapName,
			GameCreator:              hdr.gameCreator,
			SavingPlayerCandidateIDs: candidateIDs,
		},
		Settings: hdr.settings,
		Slots:    gs.slots,
		Players:  hdr.players,
		Chat:     st.chat,
		Actions:  st.actions,
	}

	return report, nil
}
