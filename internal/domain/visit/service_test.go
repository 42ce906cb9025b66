package visit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hms/internal/platform/notification"
	"github.com/medicore/hms/internal/platform/recordstore"
)

func newTestService(client recordstore.Client) *Service {
	return NewService(client, notification.NewFeed(), zerolog.Nop())
}

func seedVisit(t *testing.T, svc *Service, fields recordstore.Fields) *Visit {
	t.Helper()
	v := svc.Create(context.Background(), fields)
	if v == nil {
		t.Fatal("seed create returned nil")
	}
	return v
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())

	v := seedVisit(t, svc, recordstore.Fields{
		"patient_id_c":   "PAT001",
		"patient_name_c": "Jane Doe",
		"department_c":   "Emergency",
	})

	if v.Status != StatusInProgress {
		t.Errorf("expected default status In Progress, got %q", v.Status)
	}
	if v.CheckInTime == "" {
		t.Error("expected check-in time stamped")
	}
	if _, err := time.Parse(time.RFC3339, v.CheckInTime); err != nil {
		t.Errorf("check-in time not RFC3339: %q", v.CheckInTime)
	}
	if want := fmt.Sprintf("VIS%03d", v.ID); v.VisitID != want {
		t.Errorf("expected backfilled id %s, got %q", want, v.VisitID)
	}
}

func TestCheckOut_SetsTimeAndStatusTogether(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())
	ctx := context.Background()

	created := seedVisit(t, svc, recordstore.Fields{
		"patient_id_c": "PAT001",
		"department_c": "Cardiology",
	})

	v := svc.CheckOut(ctx, created.ID, recordstore.Fields{
		"diagnosis_c":    "Stable angina",
		"prescription_c": "Nitroglycerin",
		"bill_amount_c":  450.0,
	})
	if v == nil {
		t.Fatal("checkout returned nil")
	}
	if v.Status != StatusCompleted {
		t.Errorf("expected Completed, got %q", v.Status)
	}
	if v.CheckOutTime == "" {
		t.Error("expected check-out time stamped")
	}
	if v.Diagnosis != "Stable angina" || v.Prescription != "Nitroglycerin" || v.BillAmount != 450.0 {
		t.Errorf("final fields not recorded: %+v", v)
	}
	if v.CheckInTime != created.CheckInTime {
		t.Errorf("check-in time changed on checkout: %q -> %q", created.CheckInTime, v.CheckInTime)
	}
}

func TestGetActive_IncludesCritical(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())
	ctx := context.Background()

	seedVisit(t, svc, recordstore.Fields{"patient_id_c": "PAT001"})
	seedVisit(t, svc, recordstore.Fields{"patient_id_c": "PAT002", "status_c": StatusCritical})
	done := seedVisit(t, svc, recordstore.Fields{"patient_id_c": "PAT003"})
	if svc.CheckOut(ctx, done.ID, recordstore.Fields{}) == nil {
		t.Fatal("checkout failed")
	}

	active := svc.GetActive(ctx)
	if len(active) != 2 {
		t.Fatalf("expected 2 active visits, got %d", len(active))
	}
	for _, v := range active {
		if v.Status == StatusCompleted {
			t.Errorf("completed visit in active list: %+v", v)
		}
	}
}

func TestGetByPatientID(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())
	ctx := context.Background()

	seedVisit(t, svc, recordstore.Fields{"patient_id_c": "PAT010", "reason_c": "Chest pain"})
	seedVisit(t, svc, recordstore.Fields{"patient_id_c": "PAT011", "reason_c": "Fracture"})

	got := svc.GetByPatientID(ctx, "PAT010")
	if len(got) != 1 || got[0].Reason != "Chest pain" {
		t.Fatalf("expected PAT010's visit, got %+v", got)
	}
}

func TestGetAll_FailSoft(t *testing.T) {
	svc := newTestService(&recordstore.MockFailingClient{Message: "timeout"})

	got := svc.GetAll(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}
