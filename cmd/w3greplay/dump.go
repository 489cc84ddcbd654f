package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/condor/w3greplay/pkg/w3g"
)

func newDumpCmd() *cobra.Command {
	var indent bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "dump <path-to-replay.w3g>",
		Short: "Decode a replay and print its report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], indent, logLevel)
		},
	}

	cmd.Flags().BoolVar(&indent, "indent", true, "indent the JSON output")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "decoder log level: debug, info, warn, error, silent")

	return cmd
}

func runDump(path string, indent bool, logLevel string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		if logLevel == "silent" {
			level = zerolog.Disabled
		} else {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
	}

	runID := uuid.NewString()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", runID).
		Str("replay", path).
		Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read replay: %w", err)
	}

	report, err := w3g.Decode(data, w3g.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("decode replay: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
