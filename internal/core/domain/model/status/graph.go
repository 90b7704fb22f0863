package status

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a requested status change is not
// permitted by the transition graph.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError carries the rejected edge for error reporting.
type InvalidTransitionError struct {
	From Code
	To   Code
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// systemEdges returns the platform-fixed adjacency table. A status mapped to
// an empty set is terminal.
func systemEdges() map[Code]map[Code]struct{} {
	return map[Code]map[Code]struct{}{
		New:         edgeSet(UnderReview, Confirmed, Postponed, NoAnswer, WrongNumber, OutOfArea, Duplicate, Cancelled),
		UnderReview: edgeSet(Confirmed, Postponed, NoAnswer, WrongNumber, OutOfArea, Duplicate, Cancelled),
		Postponed:   edgeSet(UnderReview, Confirmed, NoAnswer, WrongNumber, OutOfArea, Duplicate, Cancelled),
		NoAnswer:    edgeSet(UnderReview, Confirmed, Postponed, WrongNumber, OutOfArea, Duplicate, Cancelled),
		Confirmed:   edgeSet(Preparing, Cancelled),
		Preparing:   edgeSet(Ready, Cancelled),
		Ready:       edgeSet(Shipped, Cancelled),
		Shipped:     edgeSet(Delivered, Returned),
		Delivered:   edgeSet(Returned),
		WrongNumber: edgeSet(),
		OutOfArea:   edgeSet(),
		Duplicate:   edgeSet(),
		Cancelled:   edgeSet(),
		Returned:    edgeSet(),
	}
}

func edgeSet(codes ...Code) map[Code]struct{} {
	set := make(map[Code]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// Graph decides whether a status transition is legal. System edges are
// compiled-in; custom statuses are registered at construction time and allow
// any transition in or out, except that system terminal statuses remain
// immutable once reached.
//
// Example:
//
//	graph := status.NewGraph([]status.Code{"vip_review"})
//	if err := graph.CanTransition(status.New, status.Confirmed); err != nil {
//	    // transition rejected
//	}
type Graph struct {
	custom map[Code]struct{}
}

// NewGraph builds a transition graph over the system vocabulary plus the
// given custom status codes.
func NewGraph(customCodes []Code) Graph {
	custom := make(map[Code]struct{}, len(customCodes))
	for _, c := range customCodes {
		if !c.IsSystem() {
			custom[c] = struct{}{}
		}
	}
	return Graph{custom: custom}
}

// Knows reports whether the code is part of the graph's vocabulary.
func (g Graph) Knows(code Code) bool {
	if code.IsSystem() {
		return true
	}
	_, ok := g.custom[code]
	return ok
}

// CanTransition returns nil when from -> to is a legal edge.
//
// Rules:
//   - both codes must belong to the vocabulary
//   - a system terminal status rejects every outgoing transition
//   - edges between system statuses follow the fixed adjacency table
//   - transitions involving a custom status bypass the edge table
func (g Graph) CanTransition(from, to Code) error {
	if !g.Knows(from) {
		return &InvalidTransitionError{From: from, To: to}
	}
	if !g.Knows(to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	if from == to {
		return &InvalidTransitionError{From: from, To: to}
	}
	if from.IsTerminal() {
		return &InvalidTransitionError{From: from, To: to}
	}

	if !from.IsSystem() || !to.IsSystem() {
		return nil
	}

	if _, ok := systemEdges()[from][to]; !ok {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
