// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EmployeeRepoFactory provides access to the employee repository within a transaction.
	EmployeeRepoFactory interface {
		EmployeeRepository() ports.EmployeeRepository
	}

	// StatusRepoFactory provides access to the status repository within a transaction.
	StatusRepoFactory interface {
		StatusRepository() ports.StatusRepository
	}

	// PolicyRepoFactory provides access to the policy repository within a transaction.
	PolicyRepoFactory interface {
		PolicyRepository() ports.PolicyRepository
	}

	// OrderUoW manages transactions for order-only operations (lock handling).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// WorkflowUoW manages transactions for status workflow operations, which
	// read the status catalog and the retry policy alongside the order.
	WorkflowUoW interface {
		TxManager
		OrderRepoFactory
		StatusRepoFactory
		PolicyRepoFactory
	}

	// WorkflowUoWFactory creates new workflow unit of work instances.
	WorkflowUoWFactory interface {
		Create() WorkflowUoW
	}

	// QueueUoW manages transactions for work-queue operations.
	QueueUoW interface {
		TxManager
		OrderRepoFactory
		PolicyRepoFactory
	}

	// QueueUoWFactory creates new queue unit of work instances.
	QueueUoWFactory interface {
		Create() QueueUoW
	}

	// DistributionUoW manages transactions for order distribution, which
	// coordinates orders, the employee directory and the retry policy.
	DistributionUoW interface {
		TxManager
		OrderRepoFactory
		EmployeeRepoFactory
		PolicyRepoFactory
	}

	// DistributionUoWFactory creates new distribution unit of work instances.
	DistributionUoWFactory interface {
		Create() DistributionUoW
	}

	// StatusUoW manages transactions for status catalog administration.
	// The order repository backs the "status in use" deletion check.
	StatusUoW interface {
		TxManager
		StatusRepoFactory
		OrderRepoFactory
	}

	// StatusUoWFactory creates new status unit of work instances.
	StatusUoWFactory interface {
		Create() StatusUoW
	}

	// PolicyUoW manages transactions for policy administration.
	PolicyUoW interface {
		TxManager
		PolicyRepoFactory
	}

	// PolicyUoWFactory creates new policy unit of work instances.
	PolicyUoWFactory interface {
		Create() PolicyUoW
	}
)
