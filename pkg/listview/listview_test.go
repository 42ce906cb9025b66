package listview

import (
	"reflect"
	"testing"
)

type item struct {
	Name   string
	Status string
}

var beds = []item{
	{"BED-1", "Occupied"},
	{"BED-2", "Available"},
	{"BED-3", "Occupied"},
	{"BED-4", "Available"},
}

func status(i item) string { return i.Status }

func TestPartition_AllReturnsEverything(t *testing.T) {
	got := Partition(beds, status, All)
	if !reflect.DeepEqual(got, beds) {
		t.Errorf("partition with %q sentinel changed the list: %v", All, got)
	}
	// The returned slice is a copy, not the input backing array.
	got[0] = item{"X", "X"}
	if beds[0].Name != "BED-1" {
		t.Error("partition aliased the input slice")
	}
}

func TestPartition_ExactMatch(t *testing.T) {
	got := Partition(beds, status, "Occupied")
	if len(got) != 2 || got[0].Name != "BED-1" || got[1].Name != "BED-3" {
		t.Errorf("expected BED-1 and BED-3 in order, got %v", got)
	}
	if got := Partition(beds, status, "occupied"); len(got) != 0 {
		t.Errorf("partition must be case-sensitive, got %v", got)
	}
}

func TestOptions_CountsSumToTotal(t *testing.T) {
	opts := Options(beds, status, "All Statuses")

	if opts[0].Value != All || opts[0].Count != len(beds) || opts[0].Label != "All Statuses" {
		t.Fatalf("unexpected synthetic option: %+v", opts[0])
	}
	sum := 0
	for _, o := range opts[1:] {
		sum += o.Count
	}
	if sum != len(beds) {
		t.Errorf("option counts sum to %d, want %d", sum, len(beds))
	}
	// First-seen order: Occupied before Available.
	if opts[1].Value != "Occupied" || opts[2].Value != "Available" {
		t.Errorf("options not in first-seen order: %v", opts)
	}
}

func TestOptions_Empty(t *testing.T) {
	opts := Options(nil, status, "All")
	if len(opts) != 1 || opts[0].Count != 0 {
		t.Errorf("expected only the synthetic option with count 0, got %v", opts)
	}
}

func TestMatchQuery(t *testing.T) {
	tests := []struct {
		query  string
		fields []string
		want   bool
	}{
		{"card", []string{"Dr. Sarah Chen", "Cardiology", "Cardiology"}, true},
		{"card", []string{"Dr. Amit Rao", "Neurology", "Neurology"}, false},
		{"  CARD  ", []string{"Cardiology"}, true},
		{"", []string{"anything"}, true},
		{"PAT0", []string{"PAT010"}, true},
	}
	for _, tt := range tests {
		if got := MatchQuery(tt.query, tt.fields...); got != tt.want {
			t.Errorf("MatchQuery(%q, %v) = %v, want %v", tt.query, tt.fields, got, tt.want)
		}
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	got := Filter(beds, func(i item) bool { return i.Status == "Available" })
	if len(got) != 2 || got[0].Name != "BED-2" || got[1].Name != "BED-4" {
		t.Errorf("expected BED-2 and BED-4 in order, got %v", got)
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{0, 0, 0},
		{2, 4, 50},
		{1, 3, 33},
		{2, 3, 67},
		{4, 4, 100},
	}
	for _, tt := range tests {
		if got := Rate(tt.part, tt.total); got != tt.want {
			t.Errorf("Rate(%d, %d) = %d, want %d", tt.part, tt.total, got, tt.want)
		}
	}
}
