package shared

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApprovalAction enumerates workflow log actions.
type ApprovalAction string

const (
	// ApprovalSubmit marks a submit action.
	ApprovalSubmit ApprovalAction = "SUBMIT"
	// ApprovalApprove marks an approve action.
	ApprovalApprove ApprovalAction = "APPROVE"
	// ApprovalReject marks a reject action.
	ApprovalReject ApprovalAction = "REJECT"
	// ApprovalEdit marks an edit of a pending record.
	ApprovalEdit ApprovalAction = "EDIT"
	// ApprovalDelete marks a withdrawal of a pending record.
	ApprovalDelete ApprovalAction = "DELETE"
)

// ApprovalLog is a single workflow history entry for a timesheet.
type ApprovalLog struct {
	ID          int64
	TimesheetID uuid.UUID
	ActorID     string
	Action      ApprovalAction
	Note        string
	At          time.Time
}

// ApprovalRecorder persists workflow history.
type ApprovalRecorder struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewApprovalRecorder constructs ApprovalRecorder.
func NewApprovalRecorder(pool *pgxpool.Pool, logger *slog.Logger) *ApprovalRecorder {
	return &ApprovalRecorder{pool: pool, logger: logger}
}

// Record writes a history entry. A nil recorder is a no-op so the history
// trail never blocks the workflow itself.
func (r *ApprovalRecorder) Record(ctx context.Context, log ApprovalLog) error {
	if r == nil {
		return nil
	}
	if log.TimesheetID == uuid.Nil {
		return errors.New("approval timesheet id required")
	}
	if log.ActorID == "" {
		return errors.New("approval actor required")
	}
	if log.Action == "" {
		return errors.New("approval action required")
	}
	at := log.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO approvals (timesheet_id, actor_id, action, note, at)
VALUES ($1, $2, $3, $4, $5)`, log.TimesheetID, log.ActorID, string(log.Action), log.Note, at)
	if err != nil {
		r.logger.Error("record approval", slog.Any("error", err))
		return err
	}
	return nil
}

// List returns the history for one timesheet, oldest first.
func (r *ApprovalRecorder) List(ctx context.Context, timesheetID uuid.UUID) ([]ApprovalLog, error) {
	if r == nil {
		return nil, errors.New("approval recorder not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT id, timesheet_id, actor_id, action, note, at
FROM approvals WHERE timesheet_id = $1 ORDER BY at ASC`, timesheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var logs []ApprovalLog
	for rows.Next() {
		var l ApprovalLog
		var action string
		if err := rows.Scan(&l.ID, &l.TimesheetID, &l.ActorID, &action, &l.Note, &l.At); err != nil {
			return nil, err
		}
		l.Action = ApprovalAction(action)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
