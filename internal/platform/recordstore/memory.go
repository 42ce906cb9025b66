package recordstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Client used in development/demo mode and by
// tests. It honors the same filter semantics as the remote platform and
// assigns numeric ids per table.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]map[int]Record
	nextID map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string]map[int]Record),
		nextID: make(map[string]int),
	}
}

func (m *MemoryStore) FetchRecords(_ context.Context, table string, q Query) (*FetchResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for id := 1; id <= m.nextID[table]; id++ {
		r, ok := m.tables[table][id]
		if !ok || !q.Matches(r) {
			continue
		}
		out = append(out, project(r, q.Fields))
	}
	return &FetchResponse{Success: true, Data: out}, nil
}

func (m *MemoryStore) GetRecordByID(_ context.Context, table string, id int, q Query) (*GetResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.tables[table][id]
	if !ok {
		return &GetResponse{Success: false, Message: fmt.Sprintf("record %d not found", id)}, nil
	}
	return &GetResponse{Success: true, Data: project(r, q.Fields)}, nil
}

func (m *MemoryStore) CreateRecords(_ context.Context, table string, records []Fields) (*BatchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tables[table] == nil {
		m.tables[table] = make(map[int]Record)
	}
	results := make([]RecordResult, 0, len(records))
	for _, fields := range records {
		m.nextID[table]++
		id := m.nextID[table]
		r := Record{"Id": id}
		for k, v := range fields {
			r[k] = v
		}
		m.tables[table][id] = r
		results = append(results, RecordResult{Success: true, Data: copyRecord(r)})
	}
	return &BatchResponse{Success: true, Results: results}, nil
}

func (m *MemoryStore) UpdateRecords(_ context.Context, table string, records []Fields) (*BatchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]RecordResult, 0, len(records))
	for _, fields := range records {
		id := Record(fields).Int("Id")
		r, ok := m.tables[table][id]
		if !ok {
			results = append(results, RecordResult{Success: false, Message: fmt.Sprintf("record %d not found", id)})
			continue
		}
		for k, v := range fields {
			if k == "Id" {
				continue
			}
			r[k] = v
		}
		results = append(results, RecordResult{Success: true, Data: copyRecord(r)})
	}
	return &BatchResponse{Success: true, Results: results}, nil
}

func (m *MemoryStore) DeleteRecords(_ context.Context, table string, ids []int) (*BatchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]RecordResult, 0, len(ids))
	for _, id := range ids {
		if _, ok := m.tables[table][id]; !ok {
			results = append(results, RecordResult{Success: false, Message: fmt.Sprintf("record %d not found", id)})
			continue
		}
		delete(m.tables[table], id)
		results = append(results, RecordResult{Success: true})
	}
	return &BatchResponse{Success: true, Results: results}, nil
}

// Count returns the number of records in a table.
func (m *MemoryStore) Count(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[table])
}

// project copies the requested fields of a record. An empty projection
// returns the whole record. "Id" is always included.
func project(r Record, fields []string) Record {
	if len(fields) == 0 {
		return copyRecord(r)
	}
	out := Record{"Id": r["Id"]}
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

func copyRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
