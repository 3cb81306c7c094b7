// Package commands defines the nrightsd CLI.
//
// Commands
//
//   - serve    Open the store and serve HTTP until interrupted
//
// Flags given to serve override the matching fields of the YAML config.
package commands
