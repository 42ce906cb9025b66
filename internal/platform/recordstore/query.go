package recordstore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Operator is a filter comparison supported by the record platform.
type Operator string

const (
	OpEquals   Operator = "Equals"
	OpContains Operator = "Contains"
)

// Condition compares one field against a list of candidate values.
type Condition struct {
	Field    string   `json:"fieldName"`
	Operator Operator `json:"operator"`
	Values   []string `json:"values"`
}

// ConditionGroup combines conditions with AND or OR.
type ConditionGroup struct {
	Operator   string      `json:"operator"`
	Conditions []Condition `json:"conditions"`
}

// WhereGroup is the top level of the platform's AND/OR filter tree.
type WhereGroup struct {
	Operator string           `json:"operator"`
	Groups   []ConditionGroup `json:"subGroups"`
}

// Query carries a field projection and an optional filter tree. The zero
// value selects every projected field with no filtering.
type Query struct {
	Fields []string
	Where  []WhereGroup
}

// Equals builds a single-field equality filter.
func Equals(field, value string) WhereGroup {
	return WhereGroup{
		Operator: "AND",
		Groups: []ConditionGroup{{
			Operator:   "AND",
			Conditions: []Condition{{Field: field, Operator: OpEquals, Values: []string{value}}},
		}},
	}
}

// In builds a filter matching any of the given values for one field.
func In(field string, values ...string) WhereGroup {
	return WhereGroup{
		Operator: "OR",
		Groups: []ConditionGroup{{
			Operator: "OR",
			Conditions: []Condition{{Field: field, Operator: OpEquals, Values: values}},
		}},
	}
}

// ContainsAny builds an OR filter matching records where any of the given
// fields contains the query substring.
func ContainsAny(query string, fields ...string) WhereGroup {
	conds := make([]Condition, len(fields))
	for i, f := range fields {
		conds[i] = Condition{Field: f, Operator: OpContains, Values: []string{query}}
	}
	return WhereGroup{
		Operator: "OR",
		Groups:   []ConditionGroup{{Operator: "OR", Conditions: conds}},
	}
}

// MarshalJSON renders the query in the platform's wire shape: the field
// projection as {"field":{"Name":...}} entries and the filter tree under
// "whereGroups".
func (q Query) MarshalJSON() ([]byte, error) {
	type fieldRef struct {
		Name string `json:"Name"`
	}
	type fieldSpec struct {
		Field fieldRef `json:"field"`
	}
	payload := struct {
		Fields      []fieldSpec  `json:"fields,omitempty"`
		WhereGroups []WhereGroup `json:"whereGroups,omitempty"`
	}{}
	for _, f := range q.Fields {
		payload.Fields = append(payload.Fields, fieldSpec{Field: fieldRef{Name: f}})
	}
	payload.WhereGroups = q.Where
	return json.Marshal(payload)
}

// Matches reports whether a record satisfies every where group. Used by the
// in-memory store; the remote platform evaluates the same semantics
// server-side.
func (q Query) Matches(r Record) bool {
	for _, wg := range q.Where {
		if !wg.matches(r) {
			return false
		}
	}
	return true
}

func (wg WhereGroup) matches(r Record) bool {
	if len(wg.Groups) == 0 {
		return true
	}
	or := wg.Operator == "OR"
	for _, g := range wg.Groups {
		ok := g.matches(r)
		if or && ok {
			return true
		}
		if !or && !ok {
			return false
		}
	}
	return !or
}

func (c Condition) matches(r Record) bool {
	raw, ok := r[c.Field]
	if !ok || raw == nil {
		return false
	}
	have := fmt.Sprint(raw)
	for _, want := range c.Values {
		switch c.Operator {
		case OpEquals:
			if have == want {
				return true
			}
		case OpContains:
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}

func (g ConditionGroup) matches(r Record) bool {
	if len(g.Conditions) == 0 {
		return true
	}
	or := g.Operator == "OR"
	for _, c := range g.Conditions {
		ok := c.matches(r)
		if or && ok {
			return true
		}
		if !or && !ok {
			return false
		}
	}
	return !or
}
