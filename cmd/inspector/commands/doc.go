// Package commands defines the inspector CLI.
//
// Commands
//
//   - serve     Run the web UI and the /api/query relay
//   - query     Run a single host lookup from the terminal and print the JSON
//   - version   Print build information
//
// The root command loads .env files, initialises the process logger and reads
// configuration from the environment before any subcommand runs; flags given on
// the command line override the environment.
package commands
