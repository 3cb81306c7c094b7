// Package main runs the naturalrights server. It authenticates signed action
// batches, authorizes and executes each action, and persists users, devices,
// groups, documents and grants in the configured Store.
//
// HTTP API
//
//	POST /
//	    Body is a signed envelope {userId, deviceId, signature, body}, where
//	    body is the JSON text of an action list. The response is
//	    {"results": [...]}, one result per action in order. A malformed
//	    envelope or body gets 400.
//
//	GET /healthz
//	    Returns 200 "ok".
//
// Behaviour
//
//   - The server never sees document plaintext or raw private keys; it stores
//     ciphertexts and transform keys and applies transforms blindly.
//   - Every response carries X-Request-Id, echoed from the request or freshly
//     generated, and each request is logged with it.
//   - The default listen address is :8080 and the default store is Badger
//     under ./data.
package main
