package workflow

import (
	"fmt"

	"manutencao_xpto/internal/domain/entities"
)

// Kind identifies which entity state machine a transition runs against.
type Kind string

const (
	KindRequest   Kind = "request"
	KindQuote     Kind = "quote"
	KindWorkOrder Kind = "work_order"
	KindTask      Kind = "task"
	KindInvoice   Kind = "invoice"
)

// Event is a workflow trigger. EventForceComplete is deliberately a distinct
// event from EventComplete: the admin escape hatch for the all-tasks guard
// is never a silent bypass of the ordinary completion edge.
type Event string

const (
	EventApprove       Event = "approve"
	EventReject        Event = "reject"
	EventStart         Event = "start"
	EventPause         Event = "pause"
	EventComplete      Event = "complete"
	EventForceComplete Event = "force_complete"
	EventMarkPaid      Event = "mark_paid"
)

type edge struct {
	from  string
	event Event
}

// edges is the total set of legal (from, event) -> to transitions, per kind.
// Terminal states simply have no outgoing edges.
var edges = map[Kind]map[edge]string{
	KindRequest: {
		{string(entities.RequestStatusPending), EventApprove}: string(entities.RequestStatusApproved),
		{string(entities.RequestStatusPending), EventReject}:  string(entities.RequestStatusRejected),
	},
	KindQuote: {
		{string(entities.QuoteStatusPending), EventApprove}: string(entities.QuoteStatusApproved),
		{string(entities.QuoteStatusPending), EventReject}:  string(entities.QuoteStatusRejected),
	},
	KindWorkOrder: {
		{string(entities.WorkOrderStatusPending), EventStart}:            string(entities.WorkOrderStatusInProgress),
		{string(entities.WorkOrderStatusInProgress), EventComplete}:      string(entities.WorkOrderStatusCompleted),
		{string(entities.WorkOrderStatusInProgress), EventForceComplete}: string(entities.WorkOrderStatusCompleted),
	},
	KindTask: {
		{string(entities.TaskStatusPending), EventStart}:       string(entities.TaskStatusInProgress),
		{string(entities.TaskStatusInProgress), EventPause}:    string(entities.TaskStatusPending),
		{string(entities.TaskStatusInProgress), EventComplete}: string(entities.TaskStatusCompleted),
	},
	KindInvoice: {
		{string(entities.InvoiceStatusPending), EventMarkPaid}: string(entities.InvoiceStatusPaid),
	},
}

// Next returns the target status for (kind, current, event), or
// ErrIllegalTransition when no such edge exists.
func Next(kind Kind, current string, event Event) (string, error) {
	to, ok := edges[kind][edge{current, event}]
	if !ok {
		return "", fmt.Errorf("%w: %s %q cannot %q", ErrIllegalTransition, kind, current, event)
	}
	return to, nil
}

// CanTransition is the pure predicate form of Resolve: true iff an edge
// exists for the current status and the actor is authorized for it.
func CanTransition(actor entities.ActorContext, kind Kind, current string, event Event, own Ownership) bool {
	_, err := Resolve(actor, kind, current, event, own)
	return err == nil
}

// Resolve validates a transition end to end (edge legality, then
// authorization) and returns the target status. It never mutates anything;
// callers persist the result with a guarded update conditioned on the
// current status, so a lost race surfaces as ErrConcurrencyConflict at the
// store rather than a double apply here.
func Resolve(actor entities.ActorContext, kind Kind, current string, event Event, own Ownership) (string, error) {
	to, err := Next(kind, current, event)
	if err != nil {
		return "", err
	}
	if err := Authorize(actor, kind, event, own); err != nil {
		return "", err
	}
	return to, nil
}
