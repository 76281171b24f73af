package attendance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Clear modes control when existing records are wiped before a new
// clock-in. Off keeps records forever; per_day starts each day with an
// empty table; always clears on every clock-in (kiosk demo mode).
const (
	ClearOff    = "off"
	ClearPerDay = "per_day"
	ClearAlways = "always"
)

// Service implements the clock-in/clock-out rules on top of a Repository.
//
// The read-check-write sequence for one student is serialized with a
// per-matric mutex, so two concurrent clock-ins for the same matric
// number cannot both observe "no open record".
type Service struct {
	repo      Repository
	clearMode string
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a service backed by a repository.
func NewService(repo Repository, clearMode string) *Service {
	switch clearMode {
	case ClearPerDay, ClearAlways:
	default:
		clearMode = ClearOff
	}
	return &Service{
		repo:      repo,
		clearMode: clearMode,
		now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
}

// WithClock overrides the time source. Tests use this for fixed timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ClockIn records a new open session for the student.
// Fails with *ValidationError on empty input and ErrAlreadyClockedIn
// when the student already has an open record.
func (s *Service) ClockIn(ctx context.Context, matricNo, name string) (Record, error) {
	matricNo = strings.TrimSpace(matricNo)
	name = strings.TrimSpace(name)
	if matricNo == "" {
		return Record{}, &ValidationError{Field: "matric_no"}
	}
	if name == "" {
		return Record{}, &ValidationError{Field: "name"}
	}

	lock := s.matricLock(matricNo)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()
	if err := s.maybeClear(ctx, now); err != nil {
		return Record{}, fmt.Errorf("clear records: %w", err)
	}

	open, err := s.repo.FindOpen(ctx, matricNo)
	if err != nil {
		return Record{}, fmt.Errorf("find open record: %w", err)
	}
	if open != nil {
		return Record{}, ErrAlreadyClockedIn
	}

	rec := Record{
		MatricNo: matricNo,
		Name:     name,
		Date:     now.Format(DateLayout),
		ClockIn:  now.Format(TimeLayout),
	}
	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return Record{}, fmt.Errorf("create record: %w", err)
	}
	return created, nil
}

// ClockOut closes the student's open session.
// Fails with *ValidationError on empty input and ErrNotClockedIn when
// no open record exists. If more than one open record exists (invariant
// violation), the newest one is closed.
func (s *Service) ClockOut(ctx context.Context, matricNo, name string) (Record, error) {
	matricNo = strings.TrimSpace(matricNo)
	name = strings.TrimSpace(name)
	if matricNo == "" {
		return Record{}, &ValidationError{Field: "matric_no"}
	}
	if name == "" {
		return Record{}, &ValidationError{Field: "name"}
	}

	lock := s.matricLock(matricNo)
	lock.Lock()
	defer lock.Unlock()

	open, err := s.repo.FindOpen(ctx, matricNo)
	if err != nil {
		return Record{}, fmt.Errorf("find open record: %w", err)
	}
	if open == nil {
		return Record{}, ErrNotClockedIn
	}

	updated, err := s.repo.CloseOut(ctx, open.ID, s.now().Format(TimeLayout))
	if err != nil {
		return Record{}, fmt.Errorf("close record: %w", err)
	}
	return updated, nil
}

// ListRecords returns every record, newest first.
func (s *Service) ListRecords(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

// maybeClear wipes the table according to the clear mode before a new
// session starts, matching the original per-day / always behavior.
func (s *Service) maybeClear(ctx context.Context, now time.Time) error {
	switch s.clearMode {
	case ClearAlways:
		return s.repo.DeleteAll(ctx)
	case ClearPerDay:
		last, err := s.repo.LastDate(ctx)
		if err != nil {
			return err
		}
		if last != "" && last != now.Format(DateLayout) {
			return s.repo.DeleteAll(ctx)
		}
	}
	return nil
}

func (s *Service) matricLock(matricNo string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[matricNo]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[matricNo] = lock
	}
	return lock
}
