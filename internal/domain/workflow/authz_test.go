package workflow

import (
	"errors"
	"testing"

	"manutencao_xpto/internal/domain/entities"
)

func TestAuthorize(t *testing.T) {
	admin := entities.ActorContext{UserID: "u-1", Role: entities.RoleAdmin}
	tech := entities.ActorContext{UserID: "u-2", Role: entities.RoleTechnician, TechnicianID: "tech-1"}
	client := entities.ActorContext{UserID: "u-3", Role: entities.RoleClient, ClientID: "client-1"}

	t.Run("admin may trigger every event on every kind", func(t *testing.T) {
		kinds := []Kind{KindRequest, KindQuote, KindWorkOrder, KindTask, KindInvoice}
		events := []Event{EventApprove, EventReject, EventStart, EventPause, EventComplete, EventForceComplete, EventMarkPaid}
		for _, kind := range kinds {
			for _, event := range events {
				if err := Authorize(admin, kind, event, Ownership{}); err != nil {
					t.Fatalf("admin rejected for %s/%s: %v", kind, event, err)
				}
			}
		}
	})

	t.Run("assigned technician drives work order and task execution", func(t *testing.T) {
		own := Ownership{TechnicianID: "tech-1"}
		for _, kind := range []Kind{KindWorkOrder, KindTask} {
			for _, event := range []Event{EventStart, EventPause, EventComplete} {
				if err := Authorize(tech, kind, event, own); err != nil {
					t.Fatalf("assigned technician rejected for %s/%s: %v", kind, event, err)
				}
			}
		}
	})

	t.Run("unassigned technician is forbidden", func(t *testing.T) {
		err := Authorize(tech, KindWorkOrder, EventStart, Ownership{TechnicianID: "tech-9"})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("technician may not approve or bill", func(t *testing.T) {
		for _, event := range []Event{EventApprove, EventReject, EventMarkPaid} {
			if err := Authorize(tech, KindQuote, event, Ownership{}); !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden for %s, got %v", event, err)
			}
		}
	})

	t.Run("technician may not force complete", func(t *testing.T) {
		err := Authorize(tech, KindWorkOrder, EventForceComplete, Ownership{TechnicianID: "tech-1"})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("client may never transition status", func(t *testing.T) {
		cases := []struct {
			kind  Kind
			event Event
			own   Ownership
		}{
			{KindRequest, EventApprove, Ownership{ClientID: "client-1"}},
			{KindRequest, EventReject, Ownership{ClientID: "client-1"}},
			{KindQuote, EventApprove, Ownership{ClientID: "client-2"}},
			{KindWorkOrder, EventStart, Ownership{}},
			{KindTask, EventComplete, Ownership{}},
			{KindInvoice, EventMarkPaid, Ownership{ClientID: "client-1"}},
			{KindWorkOrder, EventForceComplete, Ownership{ClientID: "client-1"}},
		}
		for _, tc := range cases {
			if err := Authorize(client, tc.kind, tc.event, tc.own); !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden for client %s/%s, got %v", tc.kind, tc.event, err)
			}
		}
	})

	t.Run("unknown role is forbidden", func(t *testing.T) {
		bogus := entities.ActorContext{UserID: "u-4", Role: entities.Role("auditor")}
		if err := Authorize(bogus, KindRequest, EventApprove, Ownership{}); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}
