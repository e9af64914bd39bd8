// Package cmd implements the tnt command-line interface. The root
// command wires the data operation subcommands (box), flag handling via
// viper, and environment configuration via godotenv. See cmd/util for
// the shared flag and configuration plumbing.
package cmd
