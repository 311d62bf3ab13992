package timesheets

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	records map[uuid.UUID]*Timesheet
	order   []uuid.UUID

	txError     error
	createError error
	getError    error
}

func newMockRepository() *mockRepository {
	return &mockRepository{records: make(map[uuid.UUID]*Timesheet)}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*Timesheet, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	ts, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *ts
	return &copied, nil
}

func (m *mockRepository) ListByEmployee(ctx context.Context, employeeID string) ([]Timesheet, error) {
	var out []Timesheet
	for _, id := range m.order {
		if ts := m.records[id]; ts != nil && ts.EmployeeID == employeeID {
			out = append(out, *ts)
		}
	}
	return out, nil
}

func (m *mockRepository) ListByManager(ctx context.Context, managerID string) ([]Timesheet, error) {
	var out []Timesheet
	for _, id := range m.order {
		if ts := m.records[id]; ts != nil && ts.ManagerID == managerID {
			out = append(out, *ts)
		}
	}
	return out, nil
}

func (m *mockRepository) Create(ctx context.Context, ts Timesheet) error {
	if m.createError != nil {
		return m.createError
	}
	for _, existing := range m.records {
		if existing.EmployeeID == ts.EmployeeID &&
			existing.StartDate.Equal(ts.StartDate.Time) &&
			existing.EndDate.Equal(ts.EndDate.Time) {
			return ErrDuplicate
		}
	}
	copied := ts
	m.records[ts.ID] = &copied
	m.order = append(m.order, ts.ID)
	return nil
}

func (m *mockRepository) Update(ctx context.Context, id uuid.UUID, draft ValidDraft) error {
	ts, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	ts.StartDate = draft.StartDate
	ts.EndDate = draft.EndDate
	ts.NumberOfHours = draft.NumberOfHours
	ts.ExtraHours = draft.ExtraHours
	ts.ClientName = draft.ClientName
	ts.ProjectName = draft.ProjectName
	ts.TaskType = draft.TaskType
	ts.WorkLocation = draft.WorkLocation
	ts.ReportingManager = draft.ReportingManager
	ts.OnCallSupport = draft.OnCallSupport
	ts.TaskDescription = draft.TaskDescription
	ts.TotalNumberOfHours = ts.TotalHours()
	ts.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, comments *string) error {
	ts, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	ts.Status = status
	ts.Comments = comments
	now := time.Now()
	switch status {
	case StatusApproved:
		ts.ApprovedAt = &now
	case StatusRejected:
		ts.RejectedAt = &now
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	for i, rid := range m.order {
		if rid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockRepository) CountsByManager(ctx context.Context, managerID string) (Counts, error) {
	records, _ := m.ListByManager(ctx, managerID)
	return CountByStatus(records), nil
}

type mockNotifier struct {
	calls []Timesheet
	err   error
}

func (n *mockNotifier) NotifyStatusChange(ctx context.Context, ts *Timesheet) error {
	n.calls = append(n.calls, *ts)
	return n.err
}

// ============================================================================
// HELPERS
// ============================================================================

func newTestService(repo Repository) *Service {
	return NewService(repo, nil, nil, nil, slog.Default())
}

func createRequest() CreateTimesheetRequest {
	return CreateTimesheetRequest{
		Draft:        validDraft(),
		EmployeeID:   "E1001",
		EmployeeName: "Avery Collins",
		EmailID:      "avery.collins@example.com",
		ManagerID:    "M2001",
	}
}

func mustSubmit(t *testing.T, svc *Service) *Timesheet {
	t.Helper()
	ts, err := svc.Submit(context.Background(), createRequest())
	require.NoError(t, err)
	return ts
}

// ============================================================================
// TESTS
// ============================================================================

func TestSubmitCreatesPending(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	ts := mustSubmit(t, svc)

	assert.Equal(t, StatusPending, ts.Status)
	assert.NotEqual(t, uuid.Nil, ts.ID)
	assert.Equal(t, 42.0, ts.TotalNumberOfHours)
	assert.Nil(t, ts.Comments)
	assert.False(t, ts.SubmissionDate.IsZero())
}

func TestSubmitInvalidDraft(t *testing.T) {
	svc := newTestService(newMockRepository())

	req := createRequest()
	req.Draft.ClientName = ""
	_, err := svc.Submit(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSubmitMissingIdentity(t *testing.T) {
	svc := newTestService(newMockRepository())

	req := createRequest()
	req.ManagerID = ""
	_, err := svc.Submit(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSubmitDuplicatePeriod(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	mustSubmit(t, svc)
	_, err := svc.Submit(context.Background(), createRequest())

	require.ErrorIs(t, err, ErrDuplicate)
}

func TestSubmitHonorsSubmissionDate(t *testing.T) {
	svc := newTestService(newMockRepository())

	req := createRequest()
	req.SubmissionDate = "2026-08-01T09:30:00Z"
	ts, err := svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 2026, ts.SubmissionDate.Year())
	assert.Equal(t, time.August, ts.SubmissionDate.Month())
}

func TestApproveTransition(t *testing.T) {
	repo := newMockRepository()
	notifier := &mockNotifier{}
	svc := NewService(repo, nil, notifier, nil, slog.Default())

	ts := mustSubmit(t, svc)
	approved, err := svc.Approve(context.Background(), ts.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, StatusApproved, notifier.calls[0].Status)
}

func TestRejectAttachesComment(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	ts := mustSubmit(t, svc)
	rejected, err := svc.Reject(context.Background(), ts.ID, "incomplete")

	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	require.NotNil(t, rejected.Comments)
	assert.Equal(t, "incomplete", *rejected.Comments)
	assert.NotNil(t, rejected.RejectedAt)
}

func TestTerminalRecordsAreImmutable(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	ts := mustSubmit(t, svc)
	_, err := svc.Approve(context.Background(), ts.ID)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), ts.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Reject(context.Background(), ts.ID, "nope")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Update(context.Background(), ts.ID, validDraft())
	assert.ErrorIs(t, err, ErrInvalidStatus)

	err = svc.Delete(context.Background(), ts.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdatePendingKeepsStatus(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	ts := mustSubmit(t, svc)
	draft := validDraft()
	draft.NumberOfHours = "35"
	draft.ExtraHours = ""

	updated, err := svc.Update(context.Background(), ts.ID, draft)

	require.NoError(t, err)
	assert.Equal(t, StatusPending, updated.Status)
	assert.Equal(t, 35.0, updated.NumberOfHours)
	assert.Equal(t, 35.0, updated.TotalNumberOfHours)
	assert.Equal(t, ts.EmployeeID, updated.EmployeeID)
}

func TestUpdateRevalidatesDraft(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	ts := mustSubmit(t, svc)
	draft := validDraft()
	draft.StartDate = "2026-09-04"
	draft.EndDate = "2026-09-01"

	_, err := svc.Update(context.Background(), ts.ID, draft)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "start date is before the end date")
}

func TestDeleteRemovesPending(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	ts := mustSubmit(t, svc)
	require.NoError(t, svc.Delete(context.Background(), ts.ID))

	_, err := svc.Get(context.Background(), ts.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUnknownRecord(t *testing.T) {
	svc := newTestService(newMockRepository())
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountsFoldByStatus(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	first := mustSubmit(t, svc)
	second, err := svc.Submit(context.Background(), func() CreateTimesheetRequest {
		req := createRequest()
		req.Draft.StartDate = "2026-08-31"
		req.Draft.EndDate = "2026-09-04"
		return req
	}())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), first.ID)
	require.NoError(t, err)
	_, err = svc.Reject(context.Background(), second.ID, "late")
	require.NoError(t, err)

	counts, err := svc.Counts(context.Background(), "M2001")
	require.NoError(t, err)
	assert.Equal(t, Counts{Total: 2, Pending: 0, Approved: 1, Rejected: 1}, counts)
}

func TestNotifierFailureDoesNotBlockApproval(t *testing.T) {
	repo := newMockRepository()
	notifier := &mockNotifier{err: errors.New("smtp down")}
	svc := NewService(repo, nil, notifier, nil, slog.Default())

	ts := mustSubmit(t, svc)
	approved, err := svc.Approve(context.Background(), ts.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
}

func TestManagerOverview(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	mustSubmit(t, svc)

	overview, err := svc.ManagerOverview(context.Background(), "M2001")
	require.NoError(t, err)
	assert.Len(t, overview.Submissions, 1)
	assert.Equal(t, 1, overview.Counts.Pending)
}
