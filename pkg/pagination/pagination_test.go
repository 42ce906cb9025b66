package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(newContext(t, ""))
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CapsLimit(t *testing.T) {
	p := FromContext(newContext(t, "limit=5000&offset=40"))
	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset != 40 {
		t.Errorf("expected offset 40, got %d", p.Offset)
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got := Page(items, Params{Limit: 2, Offset: 0})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("unexpected first page: %v", got)
	}

	got = Page(items, Params{Limit: 2, Offset: 4})
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("unexpected last page: %v", got)
	}

	got = Page(items, Params{Limit: 2, Offset: 10})
	if len(got) != 0 {
		t.Errorf("expected empty page past the end, got %v", got)
	}
}

func TestNewResponse_PageFlags(t *testing.T) {
	r := NewResponse(nil, 50, 20, 0)
	if !r.HasMore {
		t.Error("expected has_more for first page of 50")
	}
	if r.HasPrevious {
		t.Error("expected no previous page at offset 0")
	}

	r = NewResponse(nil, 50, 20, 40)
	if r.HasMore {
		t.Error("expected no more pages at offset 40 of 50")
	}
	if !r.HasPrevious {
		t.Error("expected previous page at offset 40")
	}
}

func TestParams_HasNext(t *testing.T) {
	p := Params{Limit: 20, Offset: 20}
	if !p.HasNext(50) {
		t.Error("expected next page for offset 20 of 50")
	}
	if p.HasNext(40) {
		t.Error("expected no next page for offset 20 of 40")
	}
}
