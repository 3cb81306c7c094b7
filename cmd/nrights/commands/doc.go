// Package commands defines the nrights CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init           Create the local device keys
//   - fingerprint    Print the device fingerprint
//   - register       Create a user owned by this device
//   - login          Announce this device, or pick up its user once authorized
//   - device         add, authorize or remove devices of your user
//   - group          create groups; add or remove readers, signers and admins
//   - doc            create, rotate, encrypt, decrypt, sign, grant, revoke
//   - keys pub       Print public keys of a user, group, document or device
//
// # Implementation
//
// The root command builds the dependency graph (device keystore, account
// profiles, HTTP rights client) before any subcommand runs. Every command
// that talks to the server signs its batch with the unlocked device key.
package commands
