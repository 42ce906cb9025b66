package patient

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hms/internal/platform/notification"
	"github.com/medicore/hms/internal/platform/recordstore"
)

func newTestService(client recordstore.Client) *Service {
	return NewService(client, notification.NewFeed(), zerolog.Nop())
}

func seedPatient(t *testing.T, svc *Service, fields recordstore.Fields) *Patient {
	t.Helper()
	p := svc.Create(context.Background(), fields)
	if p == nil {
		t.Fatal("seed create returned nil")
	}
	return p
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())

	p := seedPatient(t, svc, recordstore.Fields{
		"patient_id_c": "PAT001",
		"name_c":       "Jane Doe",
		"age_c":        34,
	})

	if p.Status != StatusActive {
		t.Errorf("expected default status Active, got %q", p.Status)
	}
	if p.TotalVisits != 0 {
		t.Errorf("expected default total visits 0, got %d", p.TotalVisits)
	}
	if want := time.Now().Format("2006-01-02"); p.RegistrationDate != want {
		t.Errorf("expected registration date %s, got %s", want, p.RegistrationDate)
	}
	if p.ID == 0 {
		t.Error("expected store-assigned id")
	}
}

func TestCreate_ExplicitStatusKept(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())

	p := seedPatient(t, svc, recordstore.Fields{
		"patient_id_c": "PAT002",
		"name_c":       "John Roe",
		"status_c":     StatusPending,
	})
	if p.Status != StatusPending {
		t.Errorf("expected Pending, got %q", p.Status)
	}
}

func TestUpdate_OnlyTouchesSuppliedFields(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())
	ctx := context.Background()

	created := seedPatient(t, svc, recordstore.Fields{
		"patient_id_c": "PAT003",
		"name_c":       "Alice Smith",
		"age_c":        41,
		"phone_c":      "555-0101",
		"blood_group_c": "O+",
	})

	updated := svc.Update(ctx, created.ID, recordstore.Fields{"status_c": StatusInactive})
	if updated == nil {
		t.Fatal("update returned nil")
	}
	if updated.Status != StatusInactive {
		t.Errorf("expected Inactive, got %q", updated.Status)
	}
	if updated.Name != created.Name || updated.Age != created.Age ||
		updated.Phone != created.Phone || updated.BloodGroup != created.BloodGroup {
		t.Errorf("untouched fields changed: before %+v after %+v", created, updated)
	}
}

func TestUpdate_ForwardsEmptyValues(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())
	ctx := context.Background()

	created := seedPatient(t, svc, recordstore.Fields{
		"patient_id_c": "PAT004",
		"name_c":       "Bob Lee",
		"allergies_c":  "Penicillin",
	})

	// Presence decides, not truthiness: clearing to "" must go through.
	updated := svc.Update(ctx, created.ID, recordstore.Fields{"allergies_c": ""})
	if updated == nil {
		t.Fatal("update returned nil")
	}
	if updated.Allergies != "" {
		t.Errorf("expected allergies cleared, got %q", updated.Allergies)
	}
}

func TestGetAll_FailSoft(t *testing.T) {
	svc := newTestService(&recordstore.MockFailingClient{Message: "timeout"})

	got := svc.GetAll(context.Background())
	if got == nil {
		t.Fatal("expected empty list, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %d", len(got))
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())
	if p := svc.GetByID(context.Background(), 99); p != nil {
		t.Errorf("expected nil for missing patient, got %+v", p)
	}
}

func TestSearch_MatchesSubstring(t *testing.T) {
	store := recordstore.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	seedPatient(t, svc, recordstore.Fields{"patient_id_c": "PAT010", "name_c": "Carla Mendez", "phone_c": "555-0199"})
	seedPatient(t, svc, recordstore.Fields{"patient_id_c": "PAT011", "name_c": "Derek Jones", "phone_c": "555-0200"})

	got := svc.Search(ctx, "carla")
	if len(got) != 1 || got[0].PatientID != "PAT010" {
		t.Fatalf("expected PAT010 only, got %+v", got)
	}

	got = svc.Search(ctx, "PAT011")
	if len(got) != 1 || got[0].Name != "Derek Jones" {
		t.Fatalf("expected Derek Jones, got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())
	ctx := context.Background()

	created := seedPatient(t, svc, recordstore.Fields{"patient_id_c": "PAT012", "name_c": "Eve Park"})
	if !svc.Delete(ctx, created.ID) {
		t.Fatal("expected delete to succeed")
	}
	if svc.GetByID(ctx, created.ID) != nil {
		t.Error("expected patient gone after delete")
	}
	if svc.Delete(ctx, created.ID) {
		t.Error("expected second delete to fail")
	}
}
