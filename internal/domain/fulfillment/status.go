package fulfillment

import (
	"fmt"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// OrderStatus is one state in the fulfillment lifecycle. The set is closed:
// persistence rejects anything not listed here.
type OrderStatus string

const (
	StatusNew                   OrderStatus = "New"
	StatusConfirmed             OrderStatus = "Confirmed"
	StatusReadyToDispatch       OrderStatus = "ReadyToDispatch"
	StatusDispatched            OrderStatus = "Dispatched"
	StatusInTransit             OrderStatus = "InTransit"
	StatusOutForDelivery        OrderStatus = "OutForDelivery"
	StatusDelivered             OrderStatus = "Delivered"
	StatusRTOInTransit          OrderStatus = "RTOInTransit"
	StatusRTODelivered          OrderStatus = "RTODelivered"
	StatusDTORequested          OrderStatus = "DTORequested"
	StatusDTOBooked             OrderStatus = "DTOBooked"
	StatusDTOInTransit          OrderStatus = "DTOInTransit"
	StatusDTODelivered          OrderStatus = "DTODelivered"
	StatusPendingRefunds        OrderStatus = "PendingRefunds"
	StatusDTORefunded           OrderStatus = "DTORefunded"
	StatusLost                  OrderStatus = "Lost"
	StatusClosed                OrderStatus = "Closed"
	StatusRTOClosed             OrderStatus = "RTOClosed"
	StatusCancellationRequested OrderStatus = "CancellationRequested"
	StatusCancelled             OrderStatus = "Cancelled"
)

// allStatuses is the closed enumeration
var allStatuses = map[OrderStatus]struct{}{
	StatusNew: {}, StatusConfirmed: {}, StatusReadyToDispatch: {},
	StatusDispatched: {}, StatusInTransit: {}, StatusOutForDelivery: {},
	StatusDelivered: {}, StatusRTOInTransit: {}, StatusRTODelivered: {},
	StatusDTORequested: {}, StatusDTOBooked: {}, StatusDTOInTransit: {},
	StatusDTODelivered: {}, StatusPendingRefunds: {}, StatusDTORefunded: {},
	StatusLost: {}, StatusClosed: {}, StatusRTOClosed: {},
	StatusCancellationRequested: {}, StatusCancelled: {},
}

// IsValid checks if the status is part of the closed set
func (s OrderStatus) IsValid() bool {
	_, ok := allStatuses[s]
	return ok
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// forwardTransitions declares every allowed forward edge. The dispatch
// chain and the RTO branch are carrier-driven; the rest are user actions.
var forwardTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:             {StatusConfirmed, StatusCancellationRequested},
	StatusConfirmed:       {StatusReadyToDispatch, StatusCancellationRequested},
	StatusReadyToDispatch: {StatusDispatched},
	StatusDispatched:      {StatusInTransit, StatusLost},
	StatusInTransit:       {StatusOutForDelivery, StatusRTOInTransit, StatusLost},
	StatusOutForDelivery:  {StatusDelivered, StatusRTOInTransit, StatusLost},
	StatusDelivered:       {StatusDTORequested, StatusClosed},
	StatusRTOInTransit:    {StatusRTODelivered, StatusLost},
	StatusRTODelivered:    {StatusRTOClosed},
	StatusDTORequested:    {StatusDTOBooked},
	StatusDTOBooked:       {StatusDTOInTransit},
	StatusDTOInTransit:    {StatusDTODelivered},
	StatusDTODelivered:    {StatusPendingRefunds},
	StatusPendingRefunds:  {StatusDTORefunded},

	StatusCancellationRequested: {StatusCancelled},
}

// revertTransitions declares the explicit undo edges. These are their own
// operations, not a reverse walk of the forward graph.
var revertTransitions = map[OrderStatus]OrderStatus{
	StatusReadyToDispatch:       StatusConfirmed,
	StatusDispatched:            StatusConfirmed,
	StatusDTORequested:          StatusDelivered,
	StatusDTOBooked:             StatusDelivered,
	StatusClosed:                StatusDelivered,
	StatusCancellationRequested: StatusConfirmed,
}

// terminalStatuses have no forward edges out
var terminalStatuses = map[OrderStatus]struct{}{
	StatusClosed: {}, StatusRTOClosed: {}, StatusDTORefunded: {},
	StatusLost: {}, StatusCancelled: {},
}

// CanTransitionTo checks if the status has a declared forward edge to target
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range forwardTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// RevertTarget returns the declared undo target for the status, if any
func (s OrderStatus) RevertTarget() (OrderStatus, bool) {
	t, ok := revertTransitions[s]
	return t, ok
}

// IsTerminal reports whether the status has no forward edges
func (s OrderStatus) IsTerminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

// InvalidTransitionError reports a state-machine rule violation. Both the
// current and the attempted state are included.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// DomainError converts to the shared error taxonomy
func (e *InvalidTransitionError) DomainError() *shared.DomainError {
	return shared.NewDomainError("INVALID_TRANSITION", e.Error())
}
