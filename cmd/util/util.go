package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wkhere/tarantool/common"
	"github.com/wkhere/tarantool/transport"
	"github.com/wkhere/tarantool/transport/tcp"
	"github.com/wkhere/tarantool/transport/unix"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds common connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "endpoint"
	cmd.PersistentFlags().String(key, "localhost:33013", WrapString("The address of the server: host:port for tcp, a socket path for unix"))

	key = "mode"
	cmd.PersistentFlags().String(key, "sync", WrapString("Delivery mode of the connection (sync, async, discard)"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds for synchronous calls"))

	key = "notify-buffer"
	cmd.PersistentFlags().Int(key, common.DefaultNotifyBuffer, WrapString("Capacity of the async notification channel"))

	key = "transport-write-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket write buffer (in KB, 0 for the OS default)"))

	key = "transport-read-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket read buffer (in KB, 0 for the OS default)"))

	key = "transport-tcp-nodelay"
	cmd.PersistentFlags().Bool(key, true, WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "transport-tcp-keepalive"
	cmd.PersistentFlags().Int(key, 0, WrapString("The keepalive interval (in seconds, only for tcp)"))

	key = "transport-tcp-linger"
	cmd.PersistentFlags().Int(key, 0, WrapString("The linger time (in seconds, only for tcp)"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("tnt")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	return &common.ClientConfig{
		Mode:          common.Mode(viper.GetString("mode")),
		TimeoutSecond: viper.GetInt("timeout"),
		NotifyBuffer:  viper.GetInt("notify-buffer"),
		Transport: common.ClientTransportConfig{
			Endpoint: viper.GetString("endpoint"),
			SocketConf: common.SocketConf{
				WriteBufferSize: viper.GetInt("transport-write-buffer") * 1024,
				ReadBufferSize:  viper.GetInt("transport-read-buffer") * 1024,
			},
			TCPConf: common.TCPConf{
				TCPNoDelay:      viper.GetBool("transport-tcp-nodelay"),
				TCPKeepAliveSec: viper.GetInt("transport-tcp-keepalive"),
				TCPLingerSec:    viper.GetInt("transport-tcp-linger"),
			},
		},
		LogLevel: viper.GetString("log-level"),
	}
}

// GetConnector creates a connector based on configuration
func GetConnector() (transport.IConnector, error) {
	switch viper.GetString("transport") {
	case "tcp":
		return tcp.NewTCPConnector(), nil
	case "unix":
		return unix.NewUnixConnector(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// ParseTuple converts command-line arguments into a tuple. A value of
// decimal digits becomes a fixed-width integer field (4 bytes when it
// fits, 8 otherwise); everything else is taken as a raw string field.
// Prefix a value with "s:" to force a string field.
func ParseTuple(args []string) common.Tuple {
	tuple := make(common.Tuple, 0, len(args))
	for _, arg := range args {
		tuple = append(tuple, parseField(arg))
	}
	return tuple
}

func parseField(arg string) common.Field {
	if rest, ok := strings.CutPrefix(arg, "s:"); ok {
		return common.Field(rest)
	}
	if n, err := strconv.ParseUint(arg, 10, 64); err == nil {
		if n <= 0xFFFFFFFF {
			return common.FieldUint32(uint32(n))
		}
		return common.FieldUint64(n)
	}
	return common.Field(arg)
}
