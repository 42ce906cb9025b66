package recordstore

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestGateway(client Client) *Gateway {
	return NewGateway(client, "patient_c", []string{"name_c", "status_c"}, zerolog.Nop())
}

func TestGateway_ListReturnsGatewayError(t *testing.T) {
	gw := newTestGateway(&MockFailingClient{Message: "timeout"})

	records, err := gw.List(context.Background())
	if records != nil {
		t.Errorf("expected nil records, got %v", records)
	}
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *GatewayError, got %T", err)
	}
	if gwErr.Op != "fetch" || gwErr.Table != "patient_c" || gwErr.Message != "timeout" {
		t.Errorf("unexpected error fields: %+v", gwErr)
	}
	if !strings.Contains(gwErr.Error(), "timeout") {
		t.Errorf("error string should carry the message, got %q", gwErr.Error())
	}
}

func TestGateway_GetByIDSwallowsErrors(t *testing.T) {
	gw := newTestGateway(&MockFailingClient{Message: "down"})
	if r := gw.GetByID(context.Background(), 1); r != nil {
		t.Errorf("expected nil on failure, got %v", r)
	}
}

func TestGateway_GetByIDLogsFailureMessage(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	gw := NewGateway(&MockFailingClient{Message: "record locked"}, "patient_c", nil, log)

	if r := gw.GetByID(context.Background(), 3); r != nil {
		t.Fatalf("expected nil on failure, got %v", r)
	}
	if !strings.Contains(buf.String(), "record locked") {
		t.Errorf("log should carry the store's message, got %q", buf.String())
	}
}

func TestGateway_UpdateInjectsID(t *testing.T) {
	store := NewMemoryStore()
	gw := newTestGateway(store)
	ctx := context.Background()

	results, err := gw.Create(ctx, Fields{"name_c": "Jane", "status_c": "Active"})
	if err != nil {
		t.Fatal(err)
	}
	created, _ := FirstSuccess(results)
	if created == nil {
		t.Fatal("create failed")
	}

	results, err = gw.Update(ctx, created.ID(), Fields{"status_c": "Inactive"})
	if err != nil {
		t.Fatal(err)
	}
	updated, failures := FirstSuccess(results)
	if len(failures) != 0 || updated == nil {
		t.Fatalf("update failed: %v", failures)
	}
	if updated.String("status_c") != "Inactive" || updated.String("name_c") != "Jane" {
		t.Errorf("unexpected record after update: %v", updated)
	}
}

func TestGateway_UpdateMissingRecordIsPartialFailure(t *testing.T) {
	gw := newTestGateway(NewMemoryStore())

	results, err := gw.Update(context.Background(), 99, Fields{"status_c": "Inactive"})
	if err != nil {
		t.Fatalf("batch itself should succeed, got %v", err)
	}
	record, failures := FirstSuccess(results)
	if record != nil || len(failures) != 1 {
		t.Errorf("expected one per-record failure, got record=%v failures=%v", record, failures)
	}
}

func TestFirstSuccess_PartialBatch(t *testing.T) {
	results := []RecordResult{
		{Success: false, Message: "duplicate id"},
		{Success: true, Data: Record{"Id": float64(2)}},
		{Success: false},
	}
	record, failures := FirstSuccess(results)
	if record == nil || record.ID() != 2 {
		t.Errorf("expected first successful record, got %v", record)
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 failure messages, got %v", failures)
	}
	if failures[0] != "duplicate id" || failures[1] != "operation failed" {
		t.Errorf("unexpected failure messages: %v", failures)
	}
}
