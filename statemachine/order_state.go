package statemachine

import (
	"errors"

	"github.com/kozhomberdieveldar/dodo-pizza/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "admin" or "customer"
}

// validTransitions is the authoritative state machine definition.
// Orders move forward NEW → PROCESSING → DELIVERING → COMPLETED;
// CANCELED is reachable from any non-terminal state.
var validTransitions = []Transition{
	{From: models.StatusNew, To: models.StatusProcessing, Actor: "admin"},
	{From: models.StatusProcessing, To: models.StatusDelivering, Actor: "admin"},
	{From: models.StatusDelivering, To: models.StatusCompleted, Actor: "admin"},

	{From: models.StatusNew, To: models.StatusCanceled, Actor: "admin"},
	{From: models.StatusProcessing, To: models.StatusCanceled, Actor: "admin"},
	{From: models.StatusDelivering, To: models.StatusCanceled, Actor: "admin"},

	// Customers can only cancel, and only before the order is out for delivery
	{From: models.StatusNew, To: models.StatusCanceled, Actor: "customer"},
	{From: models.StatusProcessing, To: models.StatusCanceled, Actor: "customer"},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
