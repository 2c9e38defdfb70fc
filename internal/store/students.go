package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	applog "dsfs/internal/log"
	"dsfs/internal/validate"
	"dsfs/models"
)

// StudentSource loads the student directory.
type StudentSource interface {
	Students(ctx context.Context) ([]models.Student, error)
}

// Registrar forwards a student registration to the backend.
type Registrar interface {
	RegisterStudent(ctx context.Context, reg models.StudentRegistration) error
}

// StudentsState is a snapshot of the student store.
type StudentsState struct {
	Students []models.Student `json:"students"`
	Loading  bool             `json:"loading"`
	Status   Status           `json:"status"`
	Version  uint64           `json:"version"`
}

// StudentsConfig wires a Students store.
type StudentsConfig struct {
	Source    StudentSource
	Registrar Registrar
	Latency   Waiter
	Recorder  Recorder
}

// Students owns the student directory.
type Students struct {
	source    StudentSource
	registrar Registrar
	latency   Waiter
	recorder  Recorder

	mu      sync.RWMutex
	items   []models.Student
	pending int
	version uint64

	subs listeners[StudentsState]
}

// NewStudents builds an empty directory. Call Fetch to populate it.
func NewStudents(cfg StudentsConfig) (*Students, error) {
	if cfg.Source == nil {
		return nil, errors.New("store: students require a source")
	}
	return &Students{
		source:    cfg.Source,
		registrar: cfg.Registrar,
		latency:   cfg.Latency,
		recorder:  recorderOrNop(cfg.Recorder),
	}, nil
}

// Fetch replaces the directory with a fresh copy of the source, following
// the same loading discipline as Feed.Refresh.
func (s *Students) Fetch(ctx context.Context) error {
	return s.fetch(ctx, s.latency)
}

// Prime performs the initial load without the simulated latency.
func (s *Students) Prime(ctx context.Context) error {
	return s.fetch(ctx, nil)
}

func (s *Students) fetch(ctx context.Context, latency Waiter) error {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	s.mu.Lock()
	s.pending++
	s.version++
	loading := s.stateLocked()
	s.mu.Unlock()
	s.subs.notify(loading)

	items, err := s.load(ctx, latency)

	s.mu.Lock()
	s.pending--
	if err == nil {
		s.items = items
	}
	s.version++
	done := s.stateLocked()
	s.mu.Unlock()
	s.subs.notify(done)

	s.recorder.RecordRefresh("students", time.Since(start), err)
	if err != nil {
		applog.Error(ctx, "student fetch failed", "error", err)
		return err
	}
	applog.Debug(ctx, "students fetched", "students", len(items))
	return nil
}

func (s *Students) load(ctx context.Context, latency Waiter) ([]models.Student, error) {
	if err := latency.wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for students: %w", err)
	}
	raw, err := s.source.Students(ctx)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	out := make([]models.Student, 0, len(raw))
	for _, st := range raw {
		if err := st.Validate(); err != nil {
			applog.Warn(ctx, "skipping invalid student", "studentID", st.ID, "error", err)
			continue
		}
		out = append(out, st.Clone())
	}
	return out, nil
}

// Fund credits amount to a student: current funding and total funded grow
// by amount and supporters by one, in a single step. Repeat supporters are
// counted again. It reports false for unknown ids.
func (s *Students) Fund(id string, amount float64) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		applog.Debug(context.Background(), "funding for unknown student", "studentID", id)
		return false
	}
	st := &s.items[idx]
	st.CurrentFunding += amount
	st.TotalFunded += amount
	st.Supporters++
	s.version++
	state := s.stateLocked()
	s.mu.Unlock()

	s.subs.notify(state)
	s.recorder.RecordFunding("student", amount)
	return true
}

// Register validates reg and hands it to the registrar. The directory is
// not changed; the student appears after the backend lists them.
func (s *Students) Register(ctx context.Context, reg models.StudentRegistration) error {
	if err := ValidateRegistration(reg); err != nil {
		return err
	}
	applog.Info(ctx, "student registration submitted", "username", reg.Username, "university", reg.University)
	if s.registrar == nil {
		return nil
	}
	if err := s.registrar.RegisterStudent(ctx, reg); err != nil {
		return fmt.Errorf("register student: %w", err)
	}
	return nil
}

// ValidateRegistration checks the required registration fields, the GPA
// range and the funding goal.
func ValidateRegistration(reg models.StudentRegistration) error {
	required := []struct {
		field string
		value string
	}{
		{"name", reg.Name},
		{"username", reg.Username},
		{"university", reg.University},
		{"course", reg.Course},
	}
	for _, r := range required {
		if err := validate.Required(r.value); err != nil {
			return fmt.Errorf("%s: %w", r.field, err)
		}
	}
	if err := validate.GPA(reg.GPA); err != nil {
		return err
	}
	if err := validate.FundingAmount(reg.FundingGoal); err != nil {
		return fmt.Errorf("funding goal: %w", err)
	}
	return nil
}

// Student returns a copy of one student.
func (s *Students) Student(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Student{}, false
	}
	return s.items[idx].Clone(), true
}

// State returns a deep copy of the directory state.
func (s *Students) State() StudentsState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Subscribe registers fn for every transition and returns its remover.
func (s *Students) Subscribe(fn func(StudentsState)) func() {
	return s.subs.add(fn)
}

func (s *Students) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Students) stateLocked() StudentsState {
	students := make([]models.Student, len(s.items))
	for i, st := range s.items {
		students[i] = st.Clone()
	}
	loading := s.pending > 0
	return StudentsState{
		Students: students,
		Loading:  loading,
		Status:   statusOf(loading),
		Version:  s.version,
	}
}
