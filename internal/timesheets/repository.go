package timesheets

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtl-hr/timesheet-hub/internal/platform/db"
)

var (
	ErrNotFound  = errors.New("timesheet not found")
	ErrDuplicate = errors.New("timesheet already exists for the period")
)

// Repository persists timesheets.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id uuid.UUID) (*Timesheet, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Timesheet, error)
	ListByManager(ctx context.Context, managerID string) ([]Timesheet, error)
	Create(ctx context.Context, ts Timesheet) error
	Update(ctx context.Context, id uuid.UUID, draft ValidDraft) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, comments *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountsByManager(ctx context.Context, managerID string) (Counts, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const timesheetColumns = `id, start_date, end_date, number_of_hours, extra_hours,
client_name, project_name, task_type, work_location, reporting_manager,
on_call_support, task_description, employee_id, employee_name, email_id,
manager_id, status, comments, submission_date, approved_at, rejected_at,
created_at, updated_at`

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Timesheet, error) {
	row := r.db.QueryRow(ctx, `SELECT `+timesheetColumns+` FROM timesheets WHERE id = $1`, id)
	ts, err := scanTimesheet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ts, nil
}

// ListByEmployee returns the employee's submissions in submission order
// (oldest first); display ordering is a caller policy.
func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]Timesheet, error) {
	return r.list(ctx, `SELECT `+timesheetColumns+` FROM timesheets
WHERE employee_id = $1 ORDER BY submission_date ASC, id ASC`, employeeID)
}

func (r *repository) ListByManager(ctx context.Context, managerID string) ([]Timesheet, error) {
	return r.list(ctx, `SELECT `+timesheetColumns+` FROM timesheets
WHERE manager_id = $1 ORDER BY submission_date ASC, id ASC`, managerID)
}

func (r *repository) list(ctx context.Context, query string, arg string) ([]Timesheet, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *ts)
	}
	return records, rows.Err()
}

func (r *repository) Create(ctx context.Context, ts Timesheet) error {
	_, err := r.db.Exec(ctx, `INSERT INTO timesheets (`+timesheetColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		ts.ID,
		pgtype.Date{Time: ts.StartDate.Time, Valid: true},
		pgtype.Date{Time: ts.EndDate.Time, Valid: true},
		ts.NumberOfHours,
		ts.ExtraHours,
		ts.ClientName,
		ts.ProjectName,
		ts.TaskType,
		ts.WorkLocation,
		ts.ReportingManager,
		ts.OnCallSupport,
		textOrNull(ts.TaskDescription),
		ts.EmployeeID,
		ts.EmployeeName,
		textOrNull(ts.EmailID),
		ts.ManagerID,
		string(ts.Status),
		ts.Comments,
		ts.SubmissionDate,
		ts.ApprovedAt,
		ts.RejectedAt,
		ts.CreatedAt,
		ts.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, draft ValidDraft) error {
	tag, err := r.db.Exec(ctx, `UPDATE timesheets SET
start_date = $2, end_date = $3, number_of_hours = $4, extra_hours = $5,
client_name = $6, project_name = $7, task_type = $8, work_location = $9,
reporting_manager = $10, on_call_support = $11, task_description = $12,
updated_at = NOW()
WHERE id = $1`,
		id,
		pgtype.Date{Time: draft.StartDate.Time, Valid: true},
		pgtype.Date{Time: draft.EndDate.Time, Valid: true},
		draft.NumberOfHours,
		draft.ExtraHours,
		draft.ClientName,
		draft.ProjectName,
		draft.TaskType,
		draft.WorkLocation,
		draft.ReportingManager,
		draft.OnCallSupport,
		textOrNull(draft.TaskDescription),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, comments *string) error {
	var approvedAt, rejectedAt pgtype.Timestamptz
	now := time.Now()
	switch status {
	case StatusApproved:
		approvedAt = pgtype.Timestamptz{Time: now, Valid: true}
	case StatusRejected:
		rejectedAt = pgtype.Timestamptz{Time: now, Valid: true}
	}

	tag, err := r.db.Exec(ctx, `UPDATE timesheets SET
status = $2, comments = $3, approved_at = COALESCE($4, approved_at),
rejected_at = COALESCE($5, rejected_at), updated_at = NOW()
WHERE id = $1`,
		id, string(status), comments, approvedAt, rejectedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM timesheets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CountsByManager(ctx context.Context, managerID string) (Counts, error) {
	var c Counts
	err := r.db.QueryRow(ctx, `SELECT
COUNT(*),
COUNT(*) FILTER (WHERE status = 'PENDING'),
COUNT(*) FILTER (WHERE status = 'APPROVED'),
COUNT(*) FILTER (WHERE status = 'REJECTED')
FROM timesheets WHERE manager_id = $1`, managerID).
		Scan(&c.Total, &c.Pending, &c.Approved, &c.Rejected)
	return c, err
}

func scanTimesheet(row pgx.Row) (*Timesheet, error) {
	var ts Timesheet
	var startDate, endDate pgtype.Date
	var taskDescription, emailID, comments pgtype.Text
	var approvedAt, rejectedAt pgtype.Timestamptz
	var status string

	err := row.Scan(
		&ts.ID, &startDate, &endDate, &ts.NumberOfHours, &ts.ExtraHours,
		&ts.ClientName, &ts.ProjectName, &ts.TaskType, &ts.WorkLocation,
		&ts.ReportingManager, &ts.OnCallSupport, &taskDescription,
		&ts.EmployeeID, &ts.EmployeeName, &emailID, &ts.ManagerID,
		&status, &comments, &ts.SubmissionDate, &approvedAt, &rejectedAt,
		&ts.CreatedAt, &ts.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ts.StartDate = Date{startDate.Time}
	ts.EndDate = Date{endDate.Time}
	ts.Status = Status(status)
	if taskDescription.Valid {
		ts.TaskDescription = taskDescription.String
	}
	if emailID.Valid {
		ts.EmailID = emailID.String
	}
	if comments.Valid {
		val := comments.String
		ts.Comments = &val
	}
	if approvedAt.Valid {
		val := approvedAt.Time
		ts.ApprovedAt = &val
	}
	if rejectedAt.Valid {
		val := rejectedAt.Time
		ts.RejectedAt = &val
	}
	ts.TotalNumberOfHours = ts.TotalHours()
	return &ts, nil
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
