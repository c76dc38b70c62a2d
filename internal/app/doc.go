// Package app wires application dependencies for bakkey and bakkeyd.
//
// It reads configuration through viper (flags, $HOME/.bakkey.yaml and
// BAKKEY_* environment variables), builds the concrete stores, services and
// daemon client from Config, and exposes them via the Wire struct. App adds
// the HTTP server on top for bakkeyd.
package app
