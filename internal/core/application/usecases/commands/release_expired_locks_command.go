package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrReleaseExpiredLocksCommandIsNotConstructed = errors.New(
	"ReleaseExpiredLocksCommand must be created via NewReleaseExpiredLocksCommand constructor",
)

// ReleaseExpiredLocksCommand clears lockedUntil values that have passed.
// Expiry is already lazy, so this sweep changes no outcomes; it only keeps
// queue scans from re-evaluating long-dead claims.
type ReleaseExpiredLocksCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewReleaseExpiredLocksCommand creates the reclaim command.
func NewReleaseExpiredLocksCommand() (ReleaseExpiredLocksCommand, error) {
	return ReleaseExpiredLocksCommand{guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseExpiredLocksCommand) Validate() error {
	return c.guard.Validate(ErrReleaseExpiredLocksCommandIsNotConstructed)
}
