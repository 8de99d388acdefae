package workflow

import (
	"errors"
	"testing"

	"manutencao_xpto/internal/domain/entities"
)

func TestNext(t *testing.T) {
	t.Run("legal edges", func(t *testing.T) {
		cases := []struct {
			kind    Kind
			current string
			event   Event
			want    string
		}{
			{KindRequest, "pending", EventApprove, "approved"},
			{KindRequest, "pending", EventReject, "rejected"},
			{KindQuote, "pending", EventApprove, "approved"},
			{KindQuote, "pending", EventReject, "rejected"},
			{KindWorkOrder, "pending", EventStart, "in_progress"},
			{KindWorkOrder, "in_progress", EventComplete, "completed"},
			{KindWorkOrder, "in_progress", EventForceComplete, "completed"},
			{KindTask, "pending", EventStart, "in_progress"},
			{KindTask, "in_progress", EventPause, "pending"},
			{KindTask, "in_progress", EventComplete, "completed"},
			{KindInvoice, "pending", EventMarkPaid, "paid"},
		}
		for _, tc := range cases {
			got, err := Next(tc.kind, tc.current, tc.event)
			if err != nil {
				t.Fatalf("Next(%s, %s, %s): unexpected error %v", tc.kind, tc.current, tc.event, err)
			}
			if got != tc.want {
				t.Fatalf("Next(%s, %s, %s) = %q, want %q", tc.kind, tc.current, tc.event, got, tc.want)
			}
		}
	})

	t.Run("terminal states have no outgoing edges", func(t *testing.T) {
		cases := []struct {
			kind    Kind
			current string
			event   Event
		}{
			{KindRequest, "approved", EventApprove},
			{KindRequest, "rejected", EventApprove},
			{KindQuote, "approved", EventApprove},
			{KindQuote, "rejected", EventReject},
			{KindWorkOrder, "completed", EventComplete},
			{KindTask, "completed", EventStart},
			{KindInvoice, "paid", EventMarkPaid},
		}
		for _, tc := range cases {
			if _, err := Next(tc.kind, tc.current, tc.event); !errors.Is(err, ErrIllegalTransition) {
				t.Fatalf("Next(%s, %s, %s): expected ErrIllegalTransition, got %v", tc.kind, tc.current, tc.event, err)
			}
		}
	})

	t.Run("cross kind events are illegal", func(t *testing.T) {
		if _, err := Next(KindRequest, "pending", EventMarkPaid); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
		if _, err := Next(KindInvoice, "pending", EventStart); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("second start on a started task is illegal", func(t *testing.T) {
		if _, err := Next(KindTask, "in_progress", EventStart); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("pause then restart reaches in_progress again", func(t *testing.T) {
		status := "in_progress"
		for _, ev := range []Event{EventPause, EventStart, EventPause, EventStart} {
			next, err := Next(KindTask, status, ev)
			if err != nil {
				t.Fatalf("Next(task, %s, %s): %v", status, ev, err)
			}
			status = next
		}
		if status != "in_progress" {
			t.Fatalf("expected in_progress after pause/start loop, got %q", status)
		}
	})
}

func TestResolve(t *testing.T) {
	admin := entities.ActorContext{UserID: "u-1", Role: entities.RoleAdmin}
	tech := entities.ActorContext{UserID: "u-2", Role: entities.RoleTechnician, TechnicianID: "tech-1"}

	t.Run("resolve agrees with CanTransition on every edge", func(t *testing.T) {
		actors := []entities.ActorContext{
			admin,
			tech,
			{UserID: "u-3", Role: entities.RoleClient, ClientID: "client-1"},
		}
		ownerships := []Ownership{
			{},
			{ClientID: "client-1"},
			{TechnicianID: "tech-1"},
			{ClientID: "client-1", TechnicianID: "tech-9"},
		}
		kinds := []Kind{KindRequest, KindQuote, KindWorkOrder, KindTask, KindInvoice}
		statuses := []string{"pending", "approved", "rejected", "in_progress", "completed", "paid"}
		events := []Event{EventApprove, EventReject, EventStart, EventPause, EventComplete, EventForceComplete, EventMarkPaid}

		for _, actor := range actors {
			for _, own := range ownerships {
				for _, kind := range kinds {
					for _, status := range statuses {
						for _, event := range events {
							to, err := Resolve(actor, kind, status, event, own)
							can := CanTransition(actor, kind, status, event, own)
							if can != (err == nil) {
								t.Fatalf("CanTransition and Resolve disagree for %s/%s/%s", kind, status, event)
							}
							if err == nil && to == "" {
								t.Fatalf("Resolve returned empty target for %s/%s/%s", kind, status, event)
							}
							if err == nil && to == status {
								t.Fatalf("Resolve returned a self loop for %s/%s/%s", kind, status, event)
							}
						}
					}
				}
			}
		}
	})

	t.Run("edge legality is checked before authorization", func(t *testing.T) {
		_, err := Resolve(tech, KindWorkOrder, "completed", EventComplete, Ownership{TechnicianID: "tech-1"})
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("admin resolves force complete", func(t *testing.T) {
		to, err := Resolve(admin, KindWorkOrder, "in_progress", EventForceComplete, Ownership{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if to != "completed" {
			t.Fatalf("expected completed, got %q", to)
		}
	})
}
