package recordstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestHTTPClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "test-key", 2*time.Second, zerolog.Nop())
}

func TestHTTPClient_FetchRecords(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	client := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_ = json.NewEncoder(w).Encode(FetchResponse{
			Success: true,
			Data:    []Record{{"Id": 1, "name_c": "Jane"}},
		})
	})

	resp, err := client.FetchRecords(context.Background(), "patient_c", Query{
		Fields: []string{"name_c"},
		Where:  []WhereGroup{Equals("status_c", "Active")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/tables/patient_c/fetch" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("expected api key header, got %q", gotKey)
	}
	if _, ok := gotBody["whereGroups"]; !ok {
		t.Errorf("request body missing whereGroups: %v", gotBody)
	}
	if !resp.Success || len(resp.Data) != 1 || resp.Data[0].String("name_c") != "Jane" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHTTPClient_GetRecordByID_ProjectsFields(t *testing.T) {
	var gotQuery string
	client := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(GetResponse{Success: true, Data: Record{"Id": 7}})
	})

	resp, err := client.GetRecordByID(context.Background(), "bed_c", 7, Query{Fields: []string{"ward_c", "status_c"}})
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "fields=ward_c,status_c" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if resp.Data.ID() != 7 {
		t.Errorf("unexpected record: %v", resp.Data)
	}
}

func TestHTTPClient_MutationsUseExpectedMethods(t *testing.T) {
	var methods []string
	client := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		_ = json.NewEncoder(w).Encode(BatchResponse{Success: true})
	})
	ctx := context.Background()

	if _, err := client.CreateRecords(ctx, "t", []Fields{{"a": 1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := client.UpdateRecords(ctx, "t", []Fields{{"Id": 1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := client.DeleteRecords(ctx, "t", []int{1}); err != nil {
		t.Fatal(err)
	}

	want := []string{http.MethodPost, http.MethodPatch, http.MethodDelete}
	for i, m := range want {
		if methods[i] != m {
			t.Errorf("call %d used %s, want %s", i, methods[i], m)
		}
	}
}

func TestHTTPClient_NonOKStatusIsError(t *testing.T) {
	client := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.FetchRecords(context.Background(), "t", Query{}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestHTTPClient_ContextCancellation(t *testing.T) {
	// The handler must drain the body before blocking: the server only
	// watches for the client going away once the request has been read,
	// and without that the handler would outlive the test. The done
	// channel bounds the handler either way; it is registered after the
	// server so it closes before Close waits on the handler.
	done := make(chan struct{})
	client := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-done:
		}
	})
	t.Cleanup(func() { close(done) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.FetchRecords(ctx, "t", Query{}); err == nil {
		t.Fatal("expected error after context deadline")
	}
}
