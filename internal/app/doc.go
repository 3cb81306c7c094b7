// Package app wires application dependencies for both binaries.
//
// Wire builds the client side from Config: the sealed device keystore, the
// account profiles, the device service and the HTTP rights client. Node
// builds the server side from config.Config: the Store backend, the engine
// and the HTTP front end.
package app
