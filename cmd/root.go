package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wkhere/tarantool/cmd/box"
	"github.com/wkhere/tarantool/cmd/util"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "tnt",
		Short: "IPROTO database client",
		Long: fmt.Sprintf(`tnt (v%s)

A command-line client for IPROTO database servers, speaking the binary
box protocol over a persistent TCP or Unix-socket connection.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tnt",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tnt v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(box.BoxCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
