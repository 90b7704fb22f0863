// Package services contains domain services for order distribution.
//
// DistributionPlanner computes deterministic, workload-balanced plans for the
// automatic distributor; ValidateManualBlocks guards manual distribution
// batches against double-booking an order across employees.
package services
