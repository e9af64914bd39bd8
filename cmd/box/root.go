package box

import (
	"github.com/spf13/cobra"

	"github.com/wkhere/tarantool/client"
	"github.com/wkhere/tarantool/cmd/util"
	"github.com/wkhere/tarantool/codec"
	"github.com/wkhere/tarantool/common"
)

var (
	conn *client.Connection

	// BoxCommands represents the data operation command group
	BoxCommands = &cobra.Command{
		Use:                "box",
		Short:              "Perform data operations against a server",
		PersistentPreRunE:  setupConnection,
		PersistentPostRunE: closeConnection,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the box command
	util.SetupClientFlags(BoxCommands)

	// Add subcommands
	BoxCommands.AddCommand(pingCmd)
	BoxCommands.AddCommand(selectCmd)
	BoxCommands.AddCommand(insertCmd)
	BoxCommands.AddCommand(replaceCmd)
	BoxCommands.AddCommand(delCmd)
	BoxCommands.AddCommand(callCmd)
	BoxCommands.AddCommand(perfCmd)
}

// setupConnection opens the client connection used by all subcommands
func setupConnection(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	config := util.GetClientConfig()
	common.InitLoggers(*config)

	connector, err := util.GetConnector()
	if err != nil {
		return err
	}

	conn, err = client.Connect(*config, connector, codec.NewBoxCodec())
	return err
}

// closeConnection tears the connection down after the subcommand ran
func closeConnection(_ *cobra.Command, _ []string) error {
	if conn != nil {
		return conn.Close()
	}
	return nil
}
