// Package memory is an in-process backend of the storage port. It enforces
// the same unique keys as the SQL schemas and is used by service and handler
// tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/database"
)

type txKey struct{}

type Store struct {
	mu         sync.RWMutex
	users      map[string]user.User
	attendance map[string]attendance.Attendance
	salaries   map[string]salary.Breakdown

	// txMu serializes transactions
	txMu sync.Mutex
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]user.User),
		attendance: make(map[string]attendance.Attendance),
		salaries:   make(map[string]salary.Breakdown),
		now:        time.Now,
	}
}

func (s *Store) Transactor() database.Transactor {
	return &transactor{store: s}
}

func (s *Store) Users() user.UserRepository {
	return &userRepository{store: s}
}

func (s *Store) Attendance() attendance.AttendanceRepository {
	return &attendanceRepository{store: s}
}

func (s *Store) Salaries() salary.SalaryRepository {
	return &salaryRepository{store: s}
}

// prior is the value a key held before a transaction first wrote it
type prior[T any] struct {
	value   T
	existed bool
}

// undoLog records the keys written inside one transaction
type undoLog struct {
	users      map[string]prior[user.User]
	attendance map[string]prior[attendance.Attendance]
	salaries   map[string]prior[salary.Breakdown]
}

func newUndoLog() *undoLog {
	return &undoLog{
		users:      make(map[string]prior[user.User]),
		attendance: make(map[string]prior[attendance.Attendance]),
		salaries:   make(map[string]prior[salary.Breakdown]),
	}
}

// txLog returns the undo log of the transaction carried by ctx, if any
func txLog(ctx context.Context) *undoLog {
	log, _ := ctx.Value(txKey{}).(*undoLog)
	return log
}

// remember keeps the first pre-transaction value of id. Callers hold s.mu.
func remember[T any](log map[string]prior[T], current map[string]T, id string) {
	if _, seen := log[id]; seen {
		return
	}
	value, existed := current[id]
	log[id] = prior[T]{value: value, existed: existed}
}

func undo[T any](current map[string]T, log map[string]prior[T]) {
	for id, p := range log {
		if p.existed {
			current[id] = p.value
		} else {
			delete(current, id)
		}
	}
}

// rollback restores only the keys the transaction touched, leaving
// concurrent writes made outside it in place
func (s *Store) rollback(log *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	undo(s.users, log.users)
	undo(s.attendance, log.attendance)
	undo(s.salaries, log.salaries)
}

type transactor struct {
	store *Store
}

// WithinTransaction implements database.Transactor. Changes made by fn are
// discarded when it fails or panics.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txLog(ctx) != nil {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	log := newUndoLog()
	defer func() {
		if p := recover(); p != nil {
			t.store.rollback(log)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		t.store.rollback(log)
		return err
	}
	return nil
}
