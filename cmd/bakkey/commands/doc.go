// Package commands defines the bakkey CLI and wires dependencies for subcommands.
//
// Commands
//
//   - generate      Create a backup key; --confirm re-enters the phrase, --track registers it as unsaved
//   - recover       Print the age recipient for a recovery phrase
//   - verify        Check a phrase against an expected recipient
//   - identity      Print the age secret key for a phrase
//   - validate      Structural check of an age recipient
//   - fingerprint   Print a recipient's fingerprint
//   - encrypt       Encrypt stdin to backup recipients
//   - decrypt       Decrypt stdin with the key behind a phrase
//   - keys          list, add, remove, confirm and export keys held by bakkeyd
//   - restore       Send an encrypted phrase to bakkeyd and report the matching key
//   - status        Check bakkeyd is reachable and print its panel recipient
//
// # Implementation
//
// The root command reads configuration through viper ($HOME/.bakkey.yaml,
// BAKKEY_* environment variables, flags) and builds the dependency graph
// before any subcommand runs. Phrase commands work offline unless --remote is
// given; keys, restore and status talk to bakkeyd over HTTP.
package commands
