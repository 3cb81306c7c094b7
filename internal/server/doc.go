// Package server serves the signed-batch protocol over HTTP with gorilla/mux.
//
// The whole protocol is one endpoint: POST / takes an envelope and returns one
// result per action. Envelopes that are not JSON, or whose body is not a list
// of actions, get 400 and no results. Everything else, including failed
// authentication, is a 200 with per-action errors.
package server
