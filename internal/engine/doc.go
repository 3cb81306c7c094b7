// Package engine authenticates signed action batches and runs them.
//
// A batch is authenticated once, then every action is routed to its handler,
// authorized and executed in order against the Store. Access to a document
// is resolved as owner, direct grant, or group grant plus membership, and the
// key handed back is always re-targeted to the requesting device.
package engine
