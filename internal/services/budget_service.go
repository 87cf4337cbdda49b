package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"budgetpro/internal/amqp"
	"budgetpro/internal/core"
	applog "budgetpro/internal/log"
	"budgetpro/internal/propagation"
	"budgetpro/internal/snapshot"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrCurrentYear     = errors.New("the current year cannot be deleted")
	ErrProtectedMethod = errors.New("the cash payment method cannot be deleted")
	ErrInvalidInput    = errors.New("invalid input")
)

// ChangePublisher announces committed mutations.
type ChangePublisher interface {
	PublishSnapshotChanged(ctx context.Context, msg *amqp.SnapshotChangedMessage) error
	Close() error
}

type revisionLoader interface {
	LoadRevision(ctx context.Context) (core.Store, int64, error)
}

type Options struct {
	Repository    snapshot.Repository
	Publisher     ChangePublisher
	IDs           core.IDGenerator
	Now           func() time.Time
	DefaultBudget decimal.Decimal
	DefaultEmoji  string
}

// BudgetService owns the current store snapshot. Writers are serialized;
// readers get a consistent snapshot without locking.
type BudgetService struct {
	mu        sync.Mutex
	current   atomic.Pointer[core.Store]
	revision  atomic.Int64
	repo      snapshot.Repository
	publisher ChangePublisher
	ids       core.IDGenerator
	now       func() time.Time

	defaultBudget decimal.Decimal
	defaultEmoji  string
}

// NewBudgetService loads the persisted snapshot and makes sure the current
// year is materialized.
func NewBudgetService(ctx context.Context, opts Options) (*BudgetService, error) {
	if opts.Repository == nil {
		return nil, errors.New("budget service requires a snapshot repository")
	}
	s := &BudgetService{
		repo:          opts.Repository,
		publisher:     opts.Publisher,
		ids:           opts.IDs,
		now:           opts.Now,
		defaultBudget: opts.DefaultBudget,
		defaultEmoji:  opts.DefaultEmoji,
	}
	if s.ids == nil {
		s.ids = core.UUIDGenerator{}
	}
	if s.now == nil {
		s.now = time.Now
	}

	var (
		st  core.Store
		rev int64
		err error
	)
	if rl, ok := opts.Repository.(revisionLoader); ok {
		st, rev, err = rl.LoadRevision(ctx)
	} else {
		st, err = opts.Repository.Load(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	st = st.Normalize()
	s.current.Store(&st)
	s.revision.Store(rev)

	slog.InfoContext(ctx, "Budget snapshot loaded",
		applog.FieldComponent, applog.ComponentBudget,
		applog.FieldRevision, rev,
		"projects", len(st.Projects),
		"transactions", len(st.Transactions))

	if _, err := s.EnsureYear(ctx, s.now().Year()); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current store. Callers must treat it as read-only.
func (s *BudgetService) Snapshot() core.Store {
	return *s.current.Load()
}

func (s *BudgetService) Revision() int64 {
	return s.revision.Load()
}

// mutation is a pure transform of the current store. Returning errUnchanged
// skips the commit without reporting an error.
type mutation func(core.Store) (core.Store, error)

var errUnchanged = errors.New("store unchanged")

// commit applies m under the writer lock, swaps the snapshot and persists
// it. Persistence and publishing failures are logged, never returned.
func (s *BudgetService) commit(ctx context.Context, op string, m mutation) (core.Store, error) {
	s.mu.Lock()
	prev := *s.current.Load()
	next, err := m(prev)
	if errors.Is(err, errUnchanged) {
		s.mu.Unlock()
		return prev, nil
	}
	if err != nil {
		s.mu.Unlock()
		return prev, err
	}
	s.current.Store(&next)
	rev := s.revision.Add(1)
	if err := s.repo.Save(ctx, next); err != nil {
		slog.ErrorContext(ctx, "Failed to persist snapshot",
			append(applog.NewFields().WithMutation(op, rev).ToSlice(), applog.FieldError, err)...)
	}
	s.mu.Unlock()

	affected := AffectedProjects(prev, next)
	fields := applog.NewFields().WithComponent(applog.ComponentBudget).WithMutation(op, rev)
	slog.InfoContext(ctx, "Budget mutation committed", append(fields.ToSlice(), "projects", len(affected))...)
	s.publish(ctx, rev, op, affected)
	return next, nil
}

func (s *BudgetService) publish(ctx context.Context, rev int64, op string, projectIDs []string) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not available, skipping change notification")
		return
	}
	msg := amqp.NewSnapshotChangedMessage(rev, op, projectIDs)
	if err := s.publisher.PublishSnapshotChanged(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish snapshot change", applog.FieldRevision, rev, applog.FieldError, err)
	}
}

// Close releases the repository and publisher.
func (s *BudgetService) Close() error {
	var errs []error
	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close budget service: %w", errors.Join(errs...))
	}
	return nil
}

func (s *BudgetService) periodDefaults() propagation.PeriodDefaults {
	return propagation.PeriodDefaults{TotalBudget: s.defaultBudget, Emoji: s.defaultEmoji, CreatedAt: s.now()}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
