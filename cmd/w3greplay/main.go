// Command w3greplay decodes a Warcraft III replay (.w3g) file and prints
// the decoded report as JSON.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName    = "w3greplay"
	appVersion = "v0.1.0"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Decode Warcraft III replay (.w3g) files",
	}
	cmd.AddCommand(newDumpCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(appName, appVersion)
			return nil
		},
	}
}
