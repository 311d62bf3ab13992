package timesheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mtl-hr/timesheet-hub/internal/shared"
)

var (
	ErrInvalidStatus = errors.New("invalid status transition")
)

// DuplicateMessage is the user-facing text for a period conflict, distinct
// from the generic validation failure.
const DuplicateMessage = "A timesheet for the selected dates has already been submitted. Please check and try again."

// Notifier delivers status-change notifications to the submitting employee.
// Implementations must not block the workflow; failures are logged only.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, ts *Timesheet) error
}

// Service orchestrates the timesheet lifecycle. Every mutation re-checks the
// record's status inside a transaction so terminal records stay immutable.
type Service struct {
	repo     Repository
	history  *shared.ApprovalRecorder
	notifier Notifier
	counts   *CountsCache
	logger   *slog.Logger
}

// NewService constructs the Service. history, notifier and counts may be nil.
func NewService(repo Repository, history *shared.ApprovalRecorder, notifier Notifier, counts *CountsCache, logger *slog.Logger) *Service {
	return &Service{repo: repo, history: history, notifier: notifier, counts: counts, logger: logger}
}

// Submit validates the draft and creates a PENDING timesheet.
func (s *Service) Submit(ctx context.Context, req CreateTimesheetRequest) (*Timesheet, error) {
	if req.EmployeeID == "" || req.EmployeeName == "" || req.ManagerID == "" {
		return nil, &ValidationError{Message: msgInvalidDraft}
	}
	draft, err := ParseDraft(req.Draft)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submittedAt := now
	if req.SubmissionDate != "" {
		if parsed, err := time.Parse(time.RFC3339, req.SubmissionDate); err == nil {
			submittedAt = parsed
		}
	}

	ts := Timesheet{
		ID:               uuid.New(),
		StartDate:        draft.StartDate,
		EndDate:          draft.EndDate,
		NumberOfHours:    draft.NumberOfHours,
		ExtraHours:       draft.ExtraHours,
		ClientName:       draft.ClientName,
		ProjectName:      draft.ProjectName,
		TaskType:         draft.TaskType,
		WorkLocation:     draft.WorkLocation,
		ReportingManager: draft.ReportingManager,
		OnCallSupport:    draft.OnCallSupport,
		TaskDescription:  draft.TaskDescription,
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		EmailID:          req.EmailID,
		ManagerID:        req.ManagerID,
		Status:           StatusPending,
		SubmissionDate:   submittedAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	ts.TotalNumberOfHours = ts.TotalHours()

	if err := s.repo.Create(ctx, ts); err != nil {
		return nil, err
	}

	s.record(ctx, ts.ID, ts.EmployeeID, shared.ApprovalSubmit, "")
	s.invalidateCounts(ctx, ts.ManagerID)
	return &ts, nil
}

// Update replaces the draft fields of a PENDING timesheet.
func (s *Service) Update(ctx context.Context, id uuid.UUID, draft Draft) (*Timesheet, error) {
	valid, err := ParseDraft(draft)
	if err != nil {
		return nil, err
	}

	var updated *Timesheet
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing.Status != StatusPending {
			return fmt.Errorf("%w: only PENDING timesheets can be edited", ErrInvalidStatus)
		}
		if err := repo.Update(ctx, id, *valid); err != nil {
			return err
		}
		updated, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, id, updated.EmployeeID, shared.ApprovalEdit, "")
	return updated, nil
}

// Approve transitions a PENDING timesheet to APPROVED (terminal).
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Timesheet, error) {
	ts, err := s.transition(ctx, id, StatusApproved, nil)
	if err != nil {
		return nil, err
	}
	s.record(ctx, id, ts.ManagerID, shared.ApprovalApprove, "")
	s.notify(ctx, ts)
	return ts, nil
}

// Reject transitions a PENDING timesheet to REJECTED (terminal), attaching
// the manager's comment.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, comment string) (*Timesheet, error) {
	ts, err := s.transition(ctx, id, StatusRejected, &comment)
	if err != nil {
		return nil, err
	}
	s.record(ctx, id, ts.ManagerID, shared.ApprovalReject, comment)
	s.notify(ctx, ts)
	return ts, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, status Status, comments *string) (*Timesheet, error) {
	var updated *Timesheet
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing.Status != StatusPending {
			return fmt.Errorf("%w: only PENDING timesheets can move to %s", ErrInvalidStatus, status)
		}
		if err := repo.UpdateStatus(ctx, id, status, comments); err != nil {
			return err
		}
		updated, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCounts(ctx, updated.ManagerID)
	return updated, nil
}

// Delete removes a PENDING timesheet.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	var removed *Timesheet
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing.Status != StatusPending {
			return fmt.Errorf("%w: only PENDING timesheets can be deleted", ErrInvalidStatus)
		}
		removed = existing
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.record(ctx, id, removed.EmployeeID, shared.ApprovalDelete, "")
	s.invalidateCounts(ctx, removed.ManagerID)
	return nil
}

// ListByEmployee returns the employee's submissions in service order.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Timesheet, error) {
	return s.repo.ListByEmployee(ctx, employeeID)
}

// ListByManager returns the submissions reporting to a manager.
func (s *Service) ListByManager(ctx context.Context, managerID string) ([]Timesheet, error) {
	return s.repo.ListByManager(ctx, managerID)
}

// Get fetches a single timesheet.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Timesheet, error) {
	return s.repo.Get(ctx, id)
}

// Counts returns the derived per-status totals for a manager, served from
// the short-TTL cache when warm.
func (s *Service) Counts(ctx context.Context, managerID string) (Counts, error) {
	return s.counts.Fetch(ctx, managerID, func(ctx context.Context) (Counts, error) {
		return s.repo.CountsByManager(ctx, managerID)
	})
}

// History returns the workflow trail for a timesheet.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]shared.ApprovalLog, error) {
	return s.history.List(ctx, id)
}

// Overview bundles a manager's list and counts.
type Overview struct {
	Submissions []Timesheet `json:"submissions"`
	Counts      Counts      `json:"counts"`
}

// ManagerOverview fetches the list and the counts concurrently.
func (s *Service) ManagerOverview(ctx context.Context, managerID string) (*Overview, error) {
	var overview Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		submissions, err := s.ListByManager(ctx, managerID)
		if err != nil {
			return err
		}
		overview.Submissions = submissions
		return nil
	})
	g.Go(func() error {
		counts, err := s.Counts(ctx, managerID)
		if err != nil {
			return err
		}
		overview.Counts = counts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}

func (s *Service) record(ctx context.Context, id uuid.UUID, actor string, action shared.ApprovalAction, note string) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, shared.ApprovalLog{TimesheetID: id, ActorID: actor, Action: action, Note: note}); err != nil {
		s.logger.Warn("record history", slog.Any("error", err))
	}
}

func (s *Service) notify(ctx context.Context, ts *Timesheet) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyStatusChange(ctx, ts); err != nil {
		s.logger.Warn("notify status change", slog.String("timesheet", ts.ID.String()), slog.Any("error", err))
	}
}

func (s *Service) invalidateCounts(ctx context.Context, managerID string) {
	s.counts.Invalidate(ctx, managerID)
}
