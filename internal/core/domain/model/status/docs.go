// Package status provides the order status vocabulary and transition graph
// for the fulfillment engine.
//
// The package includes:
//   - Code: the stable key of a status (system or tenant-defined)
//   - Status: the status entity with display attributes
//   - Graph: the state machine deciding which transitions are legal
//
// Key business rules:
//   - System statuses and their edges are fixed by the platform
//   - Terminal statuses (wrong_number, out_of_area, duplicate, cancelled,
//     returned) reject every outgoing transition
//   - Custom statuses may be created by tenant admins, may not reuse system
//     codes, and allow any transition except out of a terminal status
package status
