package recordstore

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestQueryMarshalJSON_WireShape(t *testing.T) {
	q := Query{
		Fields: []string{"name_c", "status_c"},
		Where:  []WhereGroup{Equals("status_c", "Active")},
	}
	raw, err := json.Marshal(q)
	if err != nil {
		t.Fatal(err)
	}
	got := string(raw)

	for _, want := range []string{
		`"fields":[{"field":{"Name":"name_c"}},{"field":{"Name":"status_c"}}]`,
		`"whereGroups":[`,
		`"subGroups":[`,
		`"fieldName":"status_c"`,
		`"operator":"Equals"`,
		`"values":["Active"]`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("marshalled query missing %s:\n%s", want, got)
		}
	}
}

func TestQueryMarshalJSON_EmptyOmitsKeys(t *testing.T) {
	raw, err := json.Marshal(Query{})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "{}" {
		t.Errorf("empty query should marshal to {}, got %s", raw)
	}
}

func TestMatches_Equals(t *testing.T) {
	r := Record{"status_c": "Active", "name_c": "Jane Doe"}

	if !(Query{Where: []WhereGroup{Equals("status_c", "Active")}}).Matches(r) {
		t.Error("expected equality match")
	}
	if (Query{Where: []WhereGroup{Equals("status_c", "active")}}).Matches(r) {
		t.Error("equality must be case-sensitive")
	}
	if (Query{Where: []WhereGroup{Equals("missing_c", "x")}}).Matches(r) {
		t.Error("missing field must not match")
	}
}

func TestMatches_In(t *testing.T) {
	q := Query{Where: []WhereGroup{In("status_c", "In Progress", "Critical")}}

	if !q.Matches(Record{"status_c": "Critical"}) {
		t.Error("expected Critical to match")
	}
	if q.Matches(Record{"status_c": "Completed"}) {
		t.Error("Completed must not match")
	}
}

func TestMatches_ContainsAnyIsCaseInsensitive(t *testing.T) {
	q := Query{Where: []WhereGroup{ContainsAny("card", "name_c", "specialization_c")}}

	if !q.Matches(Record{"name_c": "Dr. Chen", "specialization_c": "Cardiology"}) {
		t.Error("expected substring match on specialization")
	}
	if q.Matches(Record{"name_c": "Dr. Rao", "specialization_c": "Neurology"}) {
		t.Error("expected no match")
	}
}

func TestMatches_MultipleGroupsAreANDed(t *testing.T) {
	q := Query{Where: []WhereGroup{
		Equals("ward_c", "ICU"),
		Equals("status_c", "Available"),
	}}

	if !q.Matches(Record{"ward_c": "ICU", "status_c": "Available"}) {
		t.Error("expected both groups to match")
	}
	if q.Matches(Record{"ward_c": "ICU", "status_c": "Occupied"}) {
		t.Error("one failing group must reject the record")
	}
}

func TestMatches_NumericValues(t *testing.T) {
	// Numbers arrive as float64 from JSON; filters compare their printed form.
	q := Query{Where: []WhereGroup{Equals("floor_c", "2")}}
	if !q.Matches(Record{"floor_c": 2}) {
		t.Error("expected int field to match its string form")
	}
}
