// Package order provides domain entities and business logic for the order
// fulfillment workflow. It implements the Order aggregate root with status
// lifecycle, work-claim locking and assignment management.
//
// The package includes:
//   - Order: the aggregate root owning status, assignments and history
//   - Assignment: the record binding an order to a responsible employee,
//     carrying the lock and the snapshotted retry budget
//   - StatusHistory: immutable append-only status change records
//   - LineItem: product positions on the order
//
// Key business rules:
//   - Status changes go through TransitionTo and the status.Graph
//   - At most one assignment is active per order at any time
//   - The lock is advisory and expires lazily by timestamp comparison
//   - Retry budgets are snapshotted at assignment time and are unaffected
//     by later policy edits
package order
