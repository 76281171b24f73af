package attendance

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRepository keeps records in memory. It backs STORE_BACKEND=memory
// for local runs without Postgres and serves as the test double.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	recs   []Record
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

// FindOpen returns the newest open record for a student, or nil.
func (m *MemoryRepository) FindOpen(_ context.Context, matricNo string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.recs) - 1; i >= 0; i-- {
		if m.recs[i].MatricNo == matricNo && m.recs[i].Open() {
			rec := m.recs[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// Create inserts a new record, assigning the next id.
func (m *MemoryRepository) Create(_ context.Context, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = m.nextID
	m.nextID++
	m.recs = append(m.recs, rec)
	return rec, nil
}

// CloseOut sets clock_out on the record with the given id.
func (m *MemoryRepository) CloseOut(_ context.Context, id int64, clockOut string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.recs {
		if m.recs[i].ID == id {
			out := clockOut
			m.recs[i].ClockOut = &out
			return m.recs[i], nil
		}
	}
	return Record{}, fmt.Errorf("record %d not found", id)
}

// List returns all records, newest first.
func (m *MemoryRepository) List(_ context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]Record, 0, len(m.recs))
	for i := len(m.recs) - 1; i >= 0; i-- {
		res = append(res, m.recs[i])
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res, nil
}

// LastDate returns the date of the newest record, "" when empty.
func (m *MemoryRepository) LastDate(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.recs) == 0 {
		return "", nil
	}
	return m.recs[len(m.recs)-1].Date, nil
}

// DeleteAll removes every record. Ids keep counting up so a cleared
// store never reuses an id.
func (m *MemoryRepository) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = nil
	return nil
}
